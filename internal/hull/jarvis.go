package hull

import (
	"cmp"
	"slices"

	"github.com/tomz197/polyfill/internal/geom"
)

// JarvisMarch returns the convex hull of pts by gift wrapping, starting at
// the point with the smallest x (smallest y on ties). Each step selects the
// candidate with no other point CounterClockwise of it, preferring the
// farther point on collinear ties. pts must not contain duplicates.
//
// If the march collects more hull points than there are input points the
// partial hull is returned with ErrIterationCeiling.
func JarvisMarch(pts []geom.Point) ([]geom.Point, error) {
	if len(pts) < 3 {
		return slices.Clone(pts), nil
	}

	start := slices.MinFunc(pts, func(a, b geom.Point) int {
		return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y))
	})

	var hull []geom.Point
	current := start
	for {
		hull = append(hull, current)

		next := pts[0]
		if next == current {
			next = pts[1]
		}
		for _, p := range pts {
			if p == current {
				continue
			}
			switch geom.Orient(current, next, p) {
			case geom.CounterClockwise:
				next = p
			case geom.Collinear:
				if geom.DistSq(current, p) > geom.DistSq(current, next) {
					next = p
				}
			}
		}

		current = next
		if current == start {
			return hull, nil
		}
		if len(hull) > len(pts) {
			return hull, ErrIterationCeiling
		}
	}
}
