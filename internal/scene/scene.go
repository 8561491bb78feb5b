// Package scene holds the named demo polygons shown by the viewer and the
// snapshot endpoint, and renders a finished fill of one of them headlessly.
package scene

import (
	"errors"
	"fmt"
	"image"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/tomz197/polyfill/internal/geom"
)

var (
	// ErrUnknownScene is returned by ByName for names not in the catalogue.
	ErrUnknownScene = errors.New("scene: unknown scene")

	// ErrSeedFormat is returned by ParseSeed for text that is not "x,y".
	ErrSeedFormat = errors.New("seed must look like x,y")
)

// Scene is a polygon with a seed point inside it and a chord segment used to
// demonstrate segment/polygon intersection. Polygons run counter-clockwise
// on screen unless noted, so their internal normals point inward.
type Scene struct {
	Name    string
	Polygon []geom.Point
	Seed    image.Point
	Chord   [2]geom.Point
}

// Clone returns a deep copy of s.
func (s Scene) Clone() Scene {
	s.Polygon = slices.Clone(s.Polygon)
	return s
}

// WithSeed returns a copy of s with a different seed.
func (s Scene) WithSeed(p image.Point) Scene {
	s = s.Clone()
	s.Seed = p
	return s
}

func pts(xy ...float64) []geom.Point {
	out := make([]geom.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, geom.Pt(xy[i], xy[i+1]))
	}
	return out
}

// pentagram returns the five-pointed star drawn as one self-intersecting
// path. Its centre pentagon is outside under the even-odd rule.
func pentagram(cx, cy, r float64) []geom.Point {
	out := make([]geom.Point, 5)
	for k := range out {
		a := (-90 + 144*float64(k)) * math.Pi / 180
		out[k] = geom.Pt(math.Round(cx+r*math.Cos(a)), math.Round(cy+r*math.Sin(a)))
	}
	return out
}

var catalogue = []Scene{
	{
		Name:    "square",
		Polygon: pts(10, 10, 10, 50, 50, 50, 50, 10),
		Seed:    image.Pt(30, 30),
		Chord:   [2]geom.Point{geom.Pt(2, 30), geom.Pt(94, 30)},
	},
	{
		Name:    "triangle",
		Polygon: pts(48, 4, 8, 58, 88, 58),
		Seed:    image.Pt(48, 40),
		Chord:   [2]geom.Point{geom.Pt(2, 20), geom.Pt(94, 50)},
	},
	{
		Name:    "arrow",
		Polygon: pts(8, 32, 40, 58, 40, 44, 88, 44, 88, 20, 40, 20, 40, 6),
		Seed:    image.Pt(60, 32),
		Chord:   [2]geom.Point{geom.Pt(20, 2), geom.Pt(70, 62)},
	},
	{
		Name:    "u",
		Polygon: pts(10, 8, 10, 58, 80, 58, 80, 8, 60, 8, 60, 44, 30, 44, 30, 8),
		Seed:    image.Pt(20, 50),
		Chord:   [2]geom.Point{geom.Pt(2, 30), geom.Pt(94, 30)},
	},
	{
		Name:    "pentagram",
		Polygon: pentagram(48, 32, 28),
		Seed:    image.Pt(48, 15),
		Chord:   [2]geom.Point{geom.Pt(2, 28), geom.Pt(94, 28)},
	},
}

// All returns copies of every scene in menu order.
func All() []Scene {
	out := make([]Scene, len(catalogue))
	for i, s := range catalogue {
		out[i] = s.Clone()
	}
	return out
}

// Names returns the scene names in menu order.
func Names() []string {
	names := make([]string, len(catalogue))
	for i, s := range catalogue {
		names[i] = s.Name
	}
	return names
}

// ByName returns a copy of the named scene.
func ByName(name string) (Scene, error) {
	for _, s := range catalogue {
		if s.Name == name {
			return s.Clone(), nil
		}
	}
	return Scene{}, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// ParseSeed parses a seed pixel written as "x,y". Spaces around either
// number are ignored.
func ParseSeed(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return image.Point{}, ErrSeedFormat
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return image.Point{}, fmt.Errorf("%w: %v", ErrSeedFormat, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return image.Point{}, fmt.Errorf("%w: %v", ErrSeedFormat, err)
	}
	return image.Pt(x, y), nil
}
