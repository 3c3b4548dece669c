package minecraft

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lawnchairsociety/mcpi/connection"
	"github.com/lawnchairsociety/mcpi/geom"
)

// BlockEvent is a block hit with the sword by a player.
type BlockEvent struct {
	Pos      geom.Tile
	Face     int
	EntityID int
}

func (e BlockEvent) String() string {
	return fmt.Sprintf("BlockEvent(hit,%s,%d,%d)", e.Pos, e.Face, e.EntityID)
}

// PollBlockHits returns and clears the block hits queued since the last
// poll, oldest first.
func (mc *Minecraft) PollBlockHits() ([]BlockEvent, error) {
	reply, err := mc.conn.Call("events.block.hits")
	if err != nil {
		return nil, err
	}
	events, err := parseBlockHits(reply)
	if err != nil {
		return nil, &connection.ResponseError{Op: "events.block.hits", Raw: reply, Err: err}
	}
	return events, nil
}

// ClearEvents drops every queued event.
func (mc *Minecraft) ClearEvents() error {
	return mc.conn.Send("events.clear")
}

// parseBlockHits decodes "x,y,z,face,entity|x,y,z,face,entity|...".
func parseBlockHits(reply string) ([]BlockEvent, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, nil
	}

	var events []BlockEvent
	for _, item := range strings.Split(reply, "|") {
		fields := strings.Split(item, ",")
		if len(fields) != 5 {
			return nil, fmt.Errorf("hit %q: want 5 fields, got %d", item, len(fields))
		}
		var v [5]int
		for i, f := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, fmt.Errorf("hit %q: %w", item, err)
			}
			v[i] = n
		}
		events = append(events, BlockEvent{
			Pos:      geom.T(v[0], v[1], v[2]),
			Face:     v[3],
			EntityID: v[4],
		})
	}
	return events, nil
}
