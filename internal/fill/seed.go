package fill

import (
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/tomz197/polyfill/internal/geom"
	"github.com/tomz197/polyfill/internal/raster"
)

// neighbours8 is the visiting order of the simple seed fill.
var neighbours8 = [...]image.Point{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Simple is an 8-connected seed fill driven by a FIFO queue. Pixels are
// painted when they are enqueued, so the buffer colour doubles as the
// visited mark.
type Simple struct {
	base
	seed    image.Point
	started bool
	queue   []image.Point
}

// NewSimple returns a pixel-granular seed fill of poly starting at seed.
func NewSimple(buf raster.Buffer, poly []geom.Point, seed image.Point, c color.RGBA) *Simple {
	return &Simple{base: newBase(buf, poly, c), seed: seed}
}

// Pending returns a copy of the queued pixels.
func (s *Simple) Pending() []image.Point { return slices.Clone(s.queue) }

func (s *Simple) Next() (Step, error) {
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
		s.put(s.seed.X, s.seed.Y)
		s.queue = append(s.queue, s.seed)
		return s.step(fmt.Sprintf("seed %v painted, queue=1", s.seed), true), nil
	}

	if len(s.queue) == 0 {
		return s.finish(fmt.Sprintf("simple seed fill complete: %d pixels", s.filled), nil), nil
	}
	p := s.queue[0]
	s.queue = s.queue[1:]
	added := 0
	for _, d := range neighbours8 {
		n := p.Add(d)
		if s.fillable(n.X, n.Y) {
			s.put(n.X, n.Y)
			s.queue = append(s.queue, n)
			added++
		}
	}
	return s.step(fmt.Sprintf("pixel %v: +%d, queue=%d", p, added, len(s.queue)), added > 0), nil
}
