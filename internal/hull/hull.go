// Package hull computes convex hulls of planar point sets.
//
// Two independent algorithms are provided over the same contract: the
// input is a set of distinct points, the output an ordered hull polygon
// with collinear boundary points removed. Inputs with fewer than three
// points are returned unchanged.
package hull

import (
	"errors"
	"fmt"

	"github.com/tomz197/polyfill/internal/geom"
)

var (
	// ErrInsufficientVertices reports fewer than three unique input points.
	ErrInsufficientVertices = errors.New("hull: fewer than 3 unique points")

	// ErrIterationCeiling reports that Jarvis March produced more hull
	// points than there are input points, which only happens on
	// degenerate input.
	ErrIterationCeiling = errors.New("hull: iteration ceiling exceeded")
)

// Method selects a hull algorithm.
type Method int

const (
	Graham Method = iota
	Jarvis
)

func (m Method) String() string {
	switch m {
	case Graham:
		return "graham"
	case Jarvis:
		return "jarvis"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Compute de-duplicates pts and runs the selected algorithm. When fewer
// than three unique points remain, they are returned together with
// ErrInsufficientVertices so the caller can still display them.
func Compute(m Method, pts []geom.Point) ([]geom.Point, error) {
	unique := geom.Unique(pts)
	if len(unique) < 3 {
		return unique, ErrInsufficientVertices
	}

	switch m {
	case Graham:
		return GrahamScan(unique), nil
	case Jarvis:
		return JarvisMarch(unique)
	}
	return nil, fmt.Errorf("hull: unknown method %v", m)
}
