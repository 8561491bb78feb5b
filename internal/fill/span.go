package fill

import (
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/tomz197/polyfill/internal/geom"
	"github.com/tomz197/polyfill/internal/raster"
)

// Span is a scanline seed fill: each step paints one horizontal span and
// pushes a single seed for every unfilled run touching it from above or
// below.
type Span struct {
	base
	seed    image.Point
	started bool
	stack   []image.Point
}

// NewSpan returns a span seed fill of poly starting at seed.
func NewSpan(buf raster.Buffer, poly []geom.Point, seed image.Point, c color.RGBA) *Span {
	return &Span{base: newBase(buf, poly, c), seed: seed}
}

// Pending returns a copy of the seed stack, bottom first.
func (s *Span) Pending() []image.Point { return slices.Clone(s.stack) }

func (s *Span) Next() (Step, error) {
	if s.done {
		return Step{}, ErrExhausted
	}
	if !s.started {
		s.started = true
		if err := s.checkSeed(s.seed); err != nil {
			return s.fail(err), nil
		}
		if s.buf.Get(s.seed.X, s.seed.Y) == s.color {
			return s.finish(fmt.Sprintf("seed %v already filled, nothing to do", s.seed), nil), nil
		}
		s.stack = append(s.stack, s.seed)
		return s.step(fmt.Sprintf("seed %v pushed, stack=1", s.seed), false), nil
	}

	for len(s.stack) > 0 {
		p := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		if !s.fillable(p.X, p.Y) {
			continue
		}

		xl, xr := p.X, p.X
		for s.fillable(xl-1, p.Y) {
			xl--
		}
		for s.fillable(xr+1, p.Y) {
			xr++
		}
		for x := xl; x <= xr; x++ {
			s.put(x, p.Y)
		}
		s.pushRuns(xl, xr, p.Y-1)
		s.pushRuns(xl, xr, p.Y+1)

		return s.step(fmt.Sprintf("y=%d span [%d..%d], stack=%d", p.Y, xl, xr, len(s.stack)), true), nil
	}
	return s.finish(fmt.Sprintf("span seed fill complete: %d pixels", s.filled), nil), nil
}

// pushRuns pushes the leftmost pixel of each maximal fillable run on row y
// within [xl, xr].
func (s *Span) pushRuns(xl, xr, y int) {
	if y < 0 || y >= s.buf.Height() {
		return
	}
	inRun := false
	for x := xl; x <= xr; x++ {
		if !s.fillable(x, y) {
			inRun = false
			continue
		}
		if !inRun {
			s.stack = append(s.stack, image.Pt(x, y))
			inRun = true
		}
	}
}
