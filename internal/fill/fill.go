// Package fill rasterizes simple polygons into a raster.Buffer.
//
// Three strategies are provided: an edge-table/active-edge-list scanline
// filler and two seed fills (pixel-granular 8-connected and span based).
// Each one is an explicit state machine: a Sequence whose Next method
// performs one unit of work and reports it as a Step, so a caller can pause
// between steps, repaint, or drain the sequence to completion.
package fill

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/tomz197/polyfill/internal/geom"
	"github.com/tomz197/polyfill/internal/raster"
)

var (
	// ErrExhausted is returned by Next after the final step.
	ErrExhausted = errors.New("fill: sequence exhausted")

	// ErrInsufficientVertices reports a polygon with fewer than 3 unique
	// vertices.
	ErrInsufficientVertices = errors.New("fill: polygon has fewer than 3 unique vertices")

	// ErrSeedOutsideBuffer reports a seed pixel outside the buffer.
	ErrSeedOutsideBuffer = errors.New("fill: seed point outside buffer")

	// ErrSeedOutsidePolygon reports a seed pixel whose centre is not inside
	// the polygon.
	ErrSeedOutsidePolygon = errors.New("fill: seed point outside polygon")

	// ErrUnknownAlgorithm reports an Algorithm value New cannot dispatch.
	ErrUnknownAlgorithm = errors.New("fill: unknown algorithm")
)

// Algorithm selects a fill strategy.
type Algorithm int

const (
	ScanlineETAEL Algorithm = iota
	SeedFillSimple
	SeedFillScanline
)

var algorithmNames = []string{
	ScanlineETAEL:    "scanline_et_ael",
	SeedFillSimple:   "seed_fill_simple",
	SeedFillScanline: "seed_fill_scanline",
}

// Algorithms lists every supported strategy in menu order.
var Algorithms = []Algorithm{ScanlineETAEL, SeedFillSimple, SeedFillScanline}

func (a Algorithm) String() string {
	if a >= 0 && int(a) < len(algorithmNames) {
		return algorithmNames[a]
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// NeedsSeed reports whether the strategy expands from a seed point.
func (a Algorithm) NeedsSeed() bool {
	return a == SeedFillSimple || a == SeedFillScanline
}

// ParseAlgorithm returns the Algorithm whose String form is name.
func ParseAlgorithm(name string) (Algorithm, error) {
	if i := slices.Index(algorithmNames, name); i >= 0 {
		return Algorithm(i), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Step records one unit of work.
type Step struct {
	Status  string // human-readable description of the step
	Mutated bool   // whether the step wrote to the buffer
	Filled  int    // pixels written by the sequence so far
	Final   bool   // whether this is the last step
	Err     error  // set on a final step that refused to fill
}

// Sequence is a resumable fill. Next performs one step; after the final
// step it returns ErrExhausted. A Sequence cannot be restarted.
type Sequence interface {
	Next() (Step, error)
}

// Params describes one fill request.
type Params struct {
	Polygon []geom.Point
	Seed    image.Point // ignored by ScanlineETAEL
	Color   color.RGBA
}

// New constructs the state machine for alg. The polygon is copied, so the
// caller may keep editing its own slice.
func New(alg Algorithm, buf raster.Buffer, p Params) (Sequence, error) {
	switch alg {
	case ScanlineETAEL:
		return NewScanline(buf, p.Polygon, p.Color), nil
	case SeedFillSimple:
		return NewSimple(buf, p.Polygon, p.Seed, p.Color), nil
	case SeedFillScanline:
		return NewSpan(buf, p.Polygon, p.Seed, p.Color), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, alg)
}

// base holds the state shared by all strategies.
type base struct {
	buf      raster.Buffer
	poly     []geom.Point
	distinct int // unique vertices in poly
	color    color.RGBA
	filled   int
	done     bool
}

func newBase(buf raster.Buffer, poly []geom.Point, c color.RGBA) base {
	return base{buf: buf, poly: slices.Clone(poly), distinct: len(geom.Unique(poly)), color: c}
}

func (b *base) put(x, y int) {
	b.buf.Put(x, y, b.color)
	b.filled++
}

func (b *base) step(status string, mutated bool) Step {
	return Step{Status: status, Mutated: mutated, Filled: b.filled}
}

func (b *base) finish(status string, err error) Step {
	b.done = true
	return Step{Status: status, Filled: b.filled, Final: true, Err: err}
}

func (b *base) fail(err error) Step {
	return b.finish("error: "+err.Error(), err)
}

// inside reports whether the centre of pixel (x, y) lies in the polygon.
func (b *base) inside(x, y int) bool {
	return geom.PointInPolygon(geom.Pt(float64(x)+0.5, float64(y)+0.5), b.poly)
}

// fillable reports whether a seed fill may paint pixel (x, y).
func (b *base) fillable(x, y int) bool {
	return raster.InBounds(b.buf, x, y) && b.buf.Get(x, y) != b.color && b.inside(x, y)
}

// checkSeed validates a seed fill request before any pixel is written.
func (b *base) checkSeed(seed image.Point) error {
	switch {
	case b.distinct < 3:
		return ErrInsufficientVertices
	case !raster.InBounds(b.buf, seed.X, seed.Y):
		return ErrSeedOutsideBuffer
	case !b.inside(seed.X, seed.Y):
		return ErrSeedOutsidePolygon
	}
	return nil
}
