package minecraft

import (
	"github.com/lawnchairsociety/mcpi/block"
	"github.com/lawnchairsociety/mcpi/geom"
	"github.com/lawnchairsociety/mcpi/raster"
)

// Drawing places shapes made of blocks.
type Drawing struct {
	mc *Minecraft
}

// NewDrawing returns a Drawing that places blocks through mc.
func NewDrawing(mc *Minecraft) *Drawing {
	return &Drawing{mc: mc}
}

// Line draws a straight line of b from 'from' to 'to', both included, and
// returns how many blocks were placed. Each block is its own
// world.setBlock request. On error the blocks placed so far stay.
func (d *Drawing) Line(b block.Block, from, to geom.Tile) (int, error) {
	return d.Points(b, raster.Line(from, to))
}

// Points places b at every point in order.
func (d *Drawing) Points(b block.Block, points []geom.Tile) (int, error) {
	for i, p := range points {
		if err := d.mc.SetBlock(p, b); err != nil {
			return i, err
		}
	}
	return len(points), nil
}
