// Package geom holds the position types exchanged with the game and their
// wire forms ("x,y,z").
package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tile is an integer block position.
type Tile struct {
	X, Y, Z int
}

// Vec3 is an exact position, for players and entities.
type Vec3 struct {
	X, Y, Z float64
}

// T is shorthand for Tile{x, y, z}.
func T(x, y, z int) Tile {
	return Tile{X: x, Y: y, Z: z}
}

func (t Tile) String() string {
	return fmt.Sprintf("%d,%d,%d", t.X, t.Y, t.Z)
}

// Add returns the component-wise sum.
func (t Tile) Add(o Tile) Tile {
	return Tile{t.X + o.X, t.Y + o.Y, t.Z + o.Z}
}

// Vec3 converts to an exact position at the block's corner.
func (t Tile) Vec3() Vec3 {
	return Vec3{float64(t.X), float64(t.Y), float64(t.Z)}
}

func (v Vec3) String() string {
	return formatFloat(v.X) + "," + formatFloat(v.Y) + "," + formatFloat(v.Z)
}

// Tile returns the block containing v.
func (v Vec3) Tile() Tile {
	return Tile{
		X: int(math.Floor(v.X)),
		Y: int(math.Floor(v.Y)),
		Z: int(math.Floor(v.Z)),
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// splitXYZ returns the three coordinate fields of s. Anything after the
// third value's first whitespace-separated token is ignored, since some
// servers append extra data to position replies.
func splitXYZ(s string) ([3]string, error) {
	var out [3]string
	parts := strings.SplitN(strings.TrimSpace(s), ",", 3)
	if len(parts) != 3 {
		return out, fmt.Errorf("want 3 comma-separated values, got %d in %q", len(parts), s)
	}
	out[0] = strings.TrimSpace(parts[0])
	out[1] = strings.TrimSpace(parts[1])
	third := strings.Fields(parts[2])
	if len(third) == 0 {
		return out, fmt.Errorf("missing z value in %q", s)
	}
	out[2] = third[0]
	if i := strings.IndexByte(out[2], ','); i >= 0 {
		out[2] = out[2][:i]
	}
	return out, nil
}

// ParseVec3 decodes "x,y,z" into a Vec3.
func ParseVec3(s string) (Vec3, error) {
	fields, err := splitXYZ(s)
	if err != nil {
		return Vec3{}, err
	}
	var v [3]float64
	for i, f := range fields {
		v[i], err = strconv.ParseFloat(f, 64)
		if err != nil {
			return Vec3{}, fmt.Errorf("coordinate %d: %w", i, err)
		}
	}
	return Vec3{v[0], v[1], v[2]}, nil
}

// ParseTile decodes "x,y,z" into a Tile. Fractional values are floored.
func ParseTile(s string) (Tile, error) {
	fields, err := splitXYZ(s)
	if err != nil {
		return Tile{}, err
	}
	var v [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			fl, ferr := strconv.ParseFloat(f, 64)
			if ferr != nil {
				return Tile{}, fmt.Errorf("coordinate %d: %w", i, err)
			}
			n = int(math.Floor(fl))
		}
		v[i] = n
	}
	return Tile{v[0], v[1], v[2]}, nil
}
