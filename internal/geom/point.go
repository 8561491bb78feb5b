// Package geom provides the planar primitives shared by the hull and fill
// engines: orientation, segment intersection, point-in-polygon and
// distance helpers.
package geom

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Point is a 2D coordinate in screen space (y grows downward).
type Point = vec.Vec2

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// DistSq returns the squared Euclidean distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistSq(p1, p2 Point) float64 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between two points.
func Distance(p1, p2 Point) float64 {
	return math.Sqrt(DistSq(p1, p2))
}

// Unique returns pts with exact duplicates removed, keeping the first
// occurrence of each point.
func Unique(pts []Point) []Point {
	seen := make(map[Point]struct{}, len(pts))
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the given points.
// An empty slice yields the zero rectangle.
func Bounds(pts []Point) rect.Rect {
	if len(pts) == 0 {
		return rect.Rect{}
	}
	b := rect.Rect{LLx: pts[0].X, LLy: pts[0].Y, URx: pts[0].X, URy: pts[0].Y}
	for _, p := range pts[1:] {
		b.LLx = min(b.LLx, p.X)
		b.LLy = min(b.LLy, p.Y)
		b.URx = max(b.URx, p.X)
		b.URy = max(b.URy, p.Y)
	}
	return b
}
