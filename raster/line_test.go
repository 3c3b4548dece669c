package raster

import (
	"reflect"
	"testing"

	"github.com/lawnchairsociety/mcpi/geom"
)

func TestLineSinglePoint(t *testing.T) {
	got := Line(geom.T(0, 0, 0), geom.T(0, 0, 0))
	want := []geom.Tile{geom.T(0, 0, 0)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Line = %v, want %v", got, want)
	}
}

func TestLineAlongX(t *testing.T) {
	got := Line(geom.T(0, 0, 0), geom.T(4, 0, 0))
	want := []geom.Tile{
		geom.T(0, 0, 0), geom.T(1, 0, 0), geom.T(2, 0, 0), geom.T(3, 0, 0), geom.T(4, 0, 0),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Line = %v, want %v", got, want)
	}
}

func TestLineDiagonal(t *testing.T) {
	from, to := geom.T(-1, 1, 1), geom.T(5, 3, -1)
	got := Line(from, to)
	want := []geom.Tile{
		geom.T(-1, 1, 1),
		geom.T(0, 1, 1),
		geom.T(1, 2, 0),
		geom.T(2, 2, 0),
		geom.T(3, 2, 0),
		geom.T(4, 3, -1),
		geom.T(5, 3, -1),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Line = %v, want %v", got, want)
	}
	for i := 1; i < len(got); i++ {
		if got[i].X-got[i-1].X != 1 {
			t.Errorf("step %d: x moved by %d, want 1", i, got[i].X-got[i-1].X)
		}
	}
}

func TestLineDrivingAxis(t *testing.T) {
	tests := []struct {
		name     string
		from, to geom.Tile
		driving  func(geom.Tile) int
	}{
		{"y", geom.T(0, 0, 0), geom.T(1, -5, 2), func(p geom.Tile) int { return p.Y }},
		{"z", geom.T(3, 3, 3), geom.T(1, 4, 10), func(p geom.Tile) int { return p.Z }},
		{"tie x over y", geom.T(0, 0, 0), geom.T(3, 3, 1), func(p geom.Tile) int { return p.X }},
		{"tie y over z", geom.T(0, 0, 0), geom.T(1, 4, -4), func(p geom.Tile) int { return p.Y }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := Line(tt.from, tt.to)
			for i := 1; i < len(points); i++ {
				d := tt.driving(points[i]) - tt.driving(points[i-1])
				if d != 1 && d != -1 {
					t.Errorf("step %d: driving axis moved by %d", i, d)
				}
			}
		})
	}
}

func TestLineProperties(t *testing.T) {
	ends := []geom.Tile{
		geom.T(0, 0, 0), geom.T(7, 2, -3), geom.T(-6, 6, 1), geom.T(2, -9, 4),
		geom.T(5, 5, 5), geom.T(-3, -3, 8), geom.T(0, 1, 0),
	}
	for _, from := range ends {
		for _, to := range ends {
			points := Line(from, to)
			if points[0] != from {
				t.Errorf("Line(%v,%v) starts at %v", from, to, points[0])
			}
			if last := points[len(points)-1]; last != to {
				t.Errorf("Line(%v,%v) ends at %v", from, to, last)
			}
			want := max(abs(to.X-from.X), abs(to.Y-from.Y), abs(to.Z-from.Z)) + 1
			if len(points) != want {
				t.Errorf("Line(%v,%v) has %d points, want %d", from, to, len(points), want)
			}
			for i := 1; i < len(points); i++ {
				a, b := points[i-1], points[i]
				if a == b {
					t.Errorf("Line(%v,%v) repeats %v", from, to, a)
				}
				if abs(a.X-b.X) > 1 || abs(a.Y-b.Y) > 1 || abs(a.Z-b.Z) > 1 {
					t.Errorf("Line(%v,%v) jumps from %v to %v", from, to, a, b)
				}
			}
		}
	}
}
