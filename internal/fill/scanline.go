package fill

import (
	"cmp"
	"fmt"
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/tomz197/polyfill/internal/geom"
	"github.com/tomz197/polyfill/internal/raster"
)

// ActiveEdge is one edge-table or active-edge-list entry.
type ActiveEdge struct {
	YMax     int     // last scanline the edge covers
	X        float64 // x at the current scanline
	InvSlope float64 // dx/dy; +Inf for vertical edges
}

func (e ActiveEdge) String() string {
	return fmt.Sprintf("{ymax:%d x:%.2f dx/dy:%.2f}", e.YMax, e.X, e.InvSlope)
}

func (e *ActiveEdge) advance() {
	if !math.IsInf(e.InvSlope, 0) {
		e.X += e.InvSlope
	}
}

type scanPhase int

const (
	phaseBuild scanPhase = iota
	phaseSweep
)

// Scanline fills a polygon with an edge table and an active edge list.
// Each Next call after the build phase processes one scanline inside the
// buffer.
type Scanline struct {
	base
	phase scanPhase
	top   int // first row held by the table
	end   int // exclusive
	y     int
	table [][]ActiveEdge
	ael   []ActiveEdge
}

// NewScanline returns a scanline fill of poly in colour c.
func NewScanline(buf raster.Buffer, poly []geom.Point, c color.RGBA) *Scanline {
	return &Scanline{base: newBase(buf, poly, c)}
}

// Scanline returns the next scanline to be processed.
func (s *Scanline) Scanline() int { return s.y }

// Active returns a copy of the active edge list.
func (s *Scanline) Active() []ActiveEdge { return slices.Clone(s.ael) }

func (s *Scanline) Next() (Step, error) {
	if s.done {
		return Step{}, ErrExhausted
	}
	if s.phase == phaseBuild {
		return s.build(), nil
	}
	return s.sweep(), nil
}

func (s *Scanline) build() Step {
	if s.distinct < 3 {
		return s.fail(ErrInsufficientVertices)
	}

	b := geom.Bounds(s.poly)
	minY, maxY := math.Floor(b.LLy), math.Floor(b.URy)
	h := float64(s.buf.Height())
	if minY >= h || maxY < 0 {
		return s.finish(fmt.Sprintf("polygon rows %.0f..%.0f lie outside the buffer, nothing to fill", minY, maxY), nil)
	}

	// The table only holds rows that can be painted. Edges starting above
	// the buffer enter at row 0 with x already advanced to that row.
	s.top = int(max(minY, 0))
	s.end = int(min(maxY, h))
	s.table = make([][]ActiveEdge, s.end-s.top)
	edges := 0
	for i, p1 := range s.poly {
		p2 := s.poly[(i+1)%len(s.poly)]
		x0, y0 := math.Floor(p1.X), math.Floor(p1.Y)
		x1, y1 := math.Floor(p2.X), math.Floor(p2.Y)
		if y0 == y1 {
			continue
		}
		if y0 > y1 {
			x0, y0, x1, y1 = x1, y1, x0, y0
		}
		first := max(y0, float64(s.top))
		last := min(y1, float64(s.end))
		if first >= last {
			continue
		}

		e := ActiveEdge{YMax: int(last) - 1, X: x0, InvSlope: math.Inf(1)}
		if x0 != x1 {
			e.InvSlope = (x1 - x0) / (y1 - y0)
			e.X += e.InvSlope * (first - y0)
		}
		row := int(first) - s.top
		s.table[row] = append(s.table[row], e)
		edges++
	}

	s.y = s.top
	s.phase = phaseSweep
	return s.step(fmt.Sprintf("edge table built: min_y=%.0f max_y=%.0f edges=%d", minY, maxY, edges), false)
}

func (s *Scanline) sweep() Step {
	if s.y >= s.end {
		return s.finish(fmt.Sprintf("scanline fill complete: %d pixels", s.filled), nil)
	}

	y := s.y
	s.ael = append(s.ael, s.table[y-s.top]...)
	slices.SortStableFunc(s.ael, func(a, b ActiveEdge) int { return cmp.Compare(a.X, b.X) })
	status := fmt.Sprintf("y=%d AEL=%s", y, formatAEL(s.ael))
	painted := s.paintRow(y)

	s.ael = slices.DeleteFunc(s.ael, func(e ActiveEdge) bool { return e.YMax <= y })
	for i := range s.ael {
		s.ael[i].advance()
	}
	s.y++
	return s.step(status, painted > 0)
}

// paintRow fills the spans between AEL pairs on row y.
func (s *Scanline) paintRow(y int) int {
	n := 0
	w := float64(s.buf.Width())
	for i := 0; i+1 < len(s.ael); i += 2 {
		xs := max(math.Ceil(s.ael[i].X), 0)
		xe := min(math.Floor(s.ael[i+1].X), w-1)
		if xs > xe {
			continue
		}
		for x := int(xs); x <= int(xe); x++ {
			s.put(x, y)
			n++
		}
	}
	return n
}

func formatAEL(ael []ActiveEdge) string {
	parts := make([]string, len(ael))
	for i, e := range ael {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
