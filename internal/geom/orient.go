package geom

// Orientation classifies the turn made by three ordered points.
type Orientation int

const (
	Collinear Orientation = iota
	Clockwise
	CounterClockwise
)

func (o Orientation) String() string {
	switch o {
	case Collinear:
		return "collinear"
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	}
	return "unknown"
}

// Orient returns the orientation of the triple (p, q, r), computed from the
// sign of (q.y-p.y)(r.x-q.x) - (q.x-p.x)(r.y-q.y). A positive value is
// Clockwise, a negative one CounterClockwise.
func Orient(p, q, r Point) Orientation {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case val > 0:
		return Clockwise
	case val < 0:
		return CounterClockwise
	}
	return Collinear
}

// OnSegment reports whether q lies within the bounding box of p and r,
// boundaries included. The caller guarantees that p, q and r are collinear.
func OnSegment(p, q, r Point) bool {
	return q.X <= max(p.X, r.X) && q.X >= min(p.X, r.X) &&
		q.Y <= max(p.Y, r.Y) && q.Y >= min(p.Y, r.Y)
}

// SegmentsIntersect reports whether the closed segments p1-q1 and p2-q2
// share at least one point. Collinear overlaps count as intersecting.
func SegmentsIntersect(p1, q1, p2, q2 Point) bool {
	o1 := Orient(p1, q1, p2)
	o2 := Orient(p1, q1, q2)
	o3 := Orient(p2, q2, p1)
	o4 := Orient(p2, q2, q1)

	if o1 != Collinear && o2 != Collinear && o3 != Collinear && o4 != Collinear {
		if o1 != o2 && o3 != o4 {
			return true
		}
	}

	switch {
	case o1 == Collinear && OnSegment(p1, p2, q1):
		return true
	case o2 == Collinear && OnSegment(p1, q2, q1):
		return true
	case o3 == Collinear && OnSegment(p2, p1, q2):
		return true
	case o4 == Collinear && OnSegment(p2, q1, q2):
		return true
	}
	return false
}

// IntersectionPoint returns the unique point shared by segments p1-q1 and
// p2-q2. Parallel and collinear segments have no unique point, so ok is
// false for them even when SegmentsIntersect reports an overlap.
func IntersectionPoint(p1, q1, p2, q2 Point) (pt Point, ok bool) {
	x1, y1 := p1.X, p1.Y
	x2, y2 := q1.X, q1.Y
	x3, y3 := p2.X, p2.Y
	x4, y4 := q2.X, q2.Y

	den := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if den == 0 {
		return Point{}, false
	}

	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / den
	u := -((x1-x2)*(y1-y3) - (y1-y2)*(x1-x3)) / den
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, false
	}
	return Point{X: x1 + t*(x2-x1), Y: y1 + t*(y2-y1)}, true
}
