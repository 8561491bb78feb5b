package hull

import (
	"cmp"
	"slices"

	"github.com/tomz197/polyfill/internal/geom"
)

// GrahamScan returns the convex hull of pts, starting at the point with
// the smallest y (smallest x on ties) and continuing in CounterClockwise
// order as reported by geom.Orient. pts must not contain duplicates.
func GrahamScan(pts []geom.Point) []geom.Point {
	if len(pts) < 3 {
		return slices.Clone(pts)
	}

	pivot := slices.MinFunc(pts, func(a, b geom.Point) int {
		return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X))
	})

	rest := make([]geom.Point, 0, len(pts)-1)
	for _, p := range pts {
		if p != pivot {
			rest = append(rest, p)
		}
	}

	// Every other point lies at or below the pivot row, so polar angles
	// fall in [0, pi) and the cross product orders them without atan2.
	slices.SortFunc(rest, func(a, b geom.Point) int {
		switch geom.Orient(pivot, a, b) {
		case geom.CounterClockwise:
			return -1
		case geom.Clockwise:
			return 1
		}
		return cmp.Compare(geom.DistSq(pivot, a), geom.DistSq(pivot, b))
	})

	// Collapse angle ties, keeping only the farthest point of each run.
	chain := []geom.Point{pivot}
	for _, p := range rest {
		if len(chain) > 1 && geom.Orient(pivot, chain[len(chain)-1], p) == geom.Collinear {
			chain[len(chain)-1] = p
			continue
		}
		chain = append(chain, p)
	}
	if len(chain) < 3 {
		return chain
	}

	stack := make([]geom.Point, 0, len(chain))
	for _, p := range chain {
		for len(stack) >= 2 && geom.Orient(stack[len(stack)-2], stack[len(stack)-1], p) != geom.CounterClockwise {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, p)
	}
	return stack
}
