// Package block describes block values as the game sends and accepts them:
// a numeric type ID plus an auxiliary data value (wool colour, slab kind,
// facing and so on).
package block

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is a block type identifier.
type ID int

// Block is a block type with its data value.
type Block struct {
	ID   ID
	Data int
}

// Of returns a block of type id with data 0.
func Of(id ID) Block {
	return Block{ID: id}
}

// WithData returns a copy of b with the given data value.
func (b Block) WithData(data int) Block {
	b.Data = data
	return b
}

// String returns the wire form: "id", or "id,data" when data is non-zero.
func (b Block) String() string {
	if b.Data == 0 {
		return strconv.Itoa(int(b.ID))
	}
	return strconv.Itoa(int(b.ID)) + "," + strconv.Itoa(b.Data)
}

// Args returns the block as separate request arguments.
func (b Block) Args() []any {
	if b.Data == 0 {
		return []any{int(b.ID)}
	}
	return []any{int(b.ID), b.Data}
}

// Decode parses the wire form "id" or "id,data".
func Decode(s string) (Block, error) {
	s = strings.TrimSpace(s)
	idPart, dataPart, hasData := strings.Cut(s, ",")

	id, err := strconv.Atoi(strings.TrimSpace(idPart))
	if err != nil {
		return Block{}, fmt.Errorf("block id %q: %w", idPart, err)
	}
	b := Block{ID: ID(id)}
	if hasData {
		data, err := strconv.Atoi(strings.TrimSpace(dataPart))
		if err != nil {
			return Block{}, fmt.Errorf("block data %q: %w", dataPart, err)
		}
		b.Data = data
	}
	return b, nil
}

// Parse accepts a block written by a person: "id", "id:data" or "id,data".
func Parse(s string) (Block, error) {
	return Decode(strings.Replace(s, ":", ",", 1))
}
