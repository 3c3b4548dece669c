// Package raster converts geometric shapes into the block positions that
// approximate them.
package raster

import "github.com/lawnchairsociety/mcpi/geom"

// Line returns the blocks of the straight segment from 'from' to 'to' using
// 3-D Bresenham. Both endpoints are included and consecutive points differ
// by at most one in every axis.
//
// The driving axis is the one with the largest extent, with ties going to
// x, then y, then z.
func Line(from, to geom.Tile) []geom.Tile {
	dx, dy, dz := abs(to.X-from.X), abs(to.Y-from.Y), abs(to.Z-from.Z)
	xs, ys, zs := step(from.X, to.X), step(from.Y, to.Y), step(from.Z, to.Z)

	switch {
	case dx >= dy && dx >= dz:
		return walk(from, dx, dy, dz, func(p *geom.Tile) (*int, *int, *int) {
			return &p.X, &p.Y, &p.Z
		}, to.X, xs, ys, zs)
	case dy >= dx && dy >= dz:
		return walk(from, dy, dx, dz, func(p *geom.Tile) (*int, *int, *int) {
			return &p.Y, &p.X, &p.Z
		}, to.Y, ys, xs, zs)
	default:
		return walk(from, dz, dy, dx, func(p *geom.Tile) (*int, *int, *int) {
			return &p.Z, &p.Y, &p.X
		}, to.Z, zs, ys, xs)
	}
}

// walk steps the driving axis one unit at a time until it reaches target,
// moving the two secondary axes whenever their error term turns
// non-negative. axes maps a point to its (driving, first, second)
// coordinates.
func walk(from geom.Tile, d, d1, d2 int, axes func(*geom.Tile) (*int, *int, *int), target, s, s1, s2 int) []geom.Tile {
	points := make([]geom.Tile, 0, d+1)
	points = append(points, from)

	p := from
	drive, a1, a2 := axes(&p)
	e1, e2 := 2*d1-d, 2*d2-d
	for *drive != target {
		*drive += s
		if e1 >= 0 {
			*a1 += s1
			e1 -= 2 * d
		}
		if e2 >= 0 {
			*a2 += s2
			e2 -= 2 * d
		}
		e1 += 2 * d1
		e2 += 2 * d2
		points = append(points, p)
	}
	return points
}

func step(from, to int) int {
	if to > from {
		return 1
	}
	return -1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
