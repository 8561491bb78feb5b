package raster

import (
	"image/color"
	"math"

	"github.com/tomz197/polyfill/internal/geom"
)

// Line draws a line between two points using Bresenham's algorithm.
// Endpoints are rounded to the nearest pixel; pixels outside b are skipped.
func Line(b Buffer, p1, p2 geom.Point, c color.RGBA) {
	x1, y1 := int(math.Round(p1.X)), int(math.Round(p1.Y))
	x2, y2 := int(math.Round(p2.X)), int(math.Round(p2.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		b.Put(x1, y1, c)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Outline draws the closed boundary of poly.
func Outline(b Buffer, poly []geom.Point, c color.RGBA) {
	n := len(poly)
	if n < 2 {
		for _, p := range poly {
			Line(b, p, p, c)
		}
		return
	}
	for i := range n {
		Line(b, poly[i], poly[(i+1)%n], c)
	}
}

// Marker draws a plus-shaped marker of the given arm length centred on p.
func Marker(b Buffer, p geom.Point, arm int, c color.RGBA) {
	d := float64(arm)
	Line(b, geom.Pt(p.X-d, p.Y), geom.Pt(p.X+d, p.Y), c)
	Line(b, geom.Pt(p.X, p.Y-d), geom.Pt(p.X, p.Y+d), c)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
