package geom

import "seehuhn.de/go/geom/vec"

// PointInPolygon reports whether pt lies inside poly using even-odd ray
// casting toward +x. Horizontal edges never count as crossings, and a point
// counts as left of an edge only when it is strictly less than the crossing
// x. Polygons with fewer than three vertices contain nothing.
func PointInPolygon(pt Point, poly []Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	inside := false
	p1 := poly[n-1]
	for _, p2 := range poly {
		if p1.Y != p2.Y && pt.Y > min(p1.Y, p2.Y) && pt.Y <= max(p1.Y, p2.Y) {
			xInters := (pt.Y-p1.Y)*(p2.X-p1.X)/(p2.Y-p1.Y) + p1.X
			if pt.X < xInters {
				inside = !inside
			}
		}
		p1 = p2
	}
	return inside
}

// IsConvex reports whether every consecutive vertex triple of poly turns the
// same way. Collinear triples are ignored.
func IsConvex(poly []Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	var cw, ccw bool
	for i := range n {
		switch Orient(poly[i], poly[(i+1)%n], poly[(i+2)%n]) {
		case Clockwise:
			cw = true
		case CounterClockwise:
			ccw = true
		}
		if cw && ccw {
			return false
		}
	}
	return true
}

// Winding reports the traversal direction of poly in the same convention as
// Orient, from the sign of the shoelace sum. Degenerate polygons are
// Collinear.
func Winding(poly []Point) Orientation {
	var sum float64
	n := len(poly)
	for i := range n {
		p, q := poly[i], poly[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	switch {
	case sum < 0:
		return Clockwise
	case sum > 0:
		return CounterClockwise
	}
	return Collinear
}

// Normal is the unit normal of one polygon edge, anchored at the edge's
// midpoint.
type Normal struct {
	Mid Point
	Dir vec.Vec2
}

// InternalNormals returns one normal per edge of poly, rotating each edge
// vector (dx, dy) to (dy, -dx). The normals point inward when poly runs
// counter-clockwise on screen, which Orient reports as Clockwise because y
// grows downward. Other windings are not corrected. Zero-length edges get a
// zero direction.
func InternalNormals(poly []Point) []Normal {
	n := len(poly)
	if n < 3 {
		return nil
	}

	normals := make([]Normal, 0, n)
	for i := range n {
		p1, p2 := poly[i], poly[(i+1)%n]
		d := p2.Sub(p1)
		dir := vec.Vec2{X: d.Y, Y: -d.X}
		if l := dir.Length(); l != 0 {
			dir = dir.Mul(1 / l)
		}
		normals = append(normals, Normal{
			Mid: p1.Add(p2).Mul(0.5),
			Dir: dir,
		})
	}
	return normals
}

// SegmentPolygonIntersections returns the points where segment a-b crosses
// the edges of poly, in edge order. Edges that only overlap the segment
// collinearly contribute nothing, since they have no unique crossing point.
func SegmentPolygonIntersections(a, b Point, poly []Point) []Point {
	var out []Point
	n := len(poly)
	for i := range n {
		p1, p2 := poly[i], poly[(i+1)%n]
		if !SegmentsIntersect(a, b, p1, p2) {
			continue
		}
		if pt, ok := IntersectionPoint(a, b, p1, p2); ok {
			out = append(out, pt)
		}
	}
	return out
}
