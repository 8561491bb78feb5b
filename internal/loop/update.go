package loop

import (
	"errors"
	"fmt"
	"image"

	"github.com/tomz197/polyfill/internal/config"
	"github.com/tomz197/polyfill/internal/fill"
	"github.com/tomz197/polyfill/internal/geom"
	"github.com/tomz197/polyfill/internal/hull"
	"github.com/tomz197/polyfill/internal/input"
	"github.com/tomz197/polyfill/internal/scene"
	"github.com/tomz197/polyfill/internal/stepper"
)

// apply performs one user action.
func (c *Client) apply(a input.Action) {
	s := c.state
	switch a {
	case input.ActionQuit:
		s.Running = false
	case input.ActionStep:
		if c.ensureRunner() {
			s.Mode = ModeStepping
			c.advance(1)
		}
	case input.ActionRun:
		if c.ensureRunner() {
			s.Mode = ModeRunning
		}
	case input.ActionClear:
		c.reset()
		s.Status = "cleared"
	case input.ActionScanline:
		c.selectAlgorithm(fill.ScanlineETAEL)
	case input.ActionSeedSimple:
		c.selectAlgorithm(fill.SeedFillSimple)
	case input.ActionSeedSpan:
		c.selectAlgorithm(fill.SeedFillScanline)
	case input.ActionPrevScene:
		c.selectScene(s.SceneIndex - 1)
	case input.ActionNextScene:
		c.selectScene(s.SceneIndex + 1)
	case input.ActionGraham:
		c.toggleHull(hull.Graham)
	case input.ActionJarvis:
		c.toggleHull(hull.Jarvis)
	case input.ActionConvexity:
		if geom.IsConvex(s.Scene.Polygon) {
			s.Message = fmt.Sprintf("%s is convex", s.Scene.Name)
		} else {
			s.Message = fmt.Sprintf("%s is not convex", s.Scene.Name)
		}
	case input.ActionNormals:
		s.ShowNormals = !s.ShowNormals
		if s.ShowNormals {
			s.Message = fmt.Sprintf("internal normals, winding %v", geom.Winding(s.Scene.Polygon))
		}
	case input.ActionIntersect:
		c.toggleChord()
	case input.ActionInside:
		c.reportInside()
	case input.ActionSeedUp:
		c.moveSeed(image.Pt(0, -1))
	case input.ActionSeedDown:
		c.moveSeed(image.Pt(0, 1))
	case input.ActionSeedLeft:
		c.moveSeed(image.Pt(-1, 0))
	case input.ActionSeedRight:
		c.moveSeed(image.Pt(1, 0))
	}
}

// update advances a running fill by a few steps per frame.
func (c *Client) update() {
	if c.state.Mode == ModeRunning {
		c.advance(c.stepsPerFrame)
	}
}

// ensureRunner starts a fill when none is in progress. It reports false
// when the previous fill already finished.
func (c *Client) ensureRunner() bool {
	s := c.state
	if s.Runner != nil {
		if s.Runner.Done() {
			s.Message = "fill finished, press c to clear"
			return false
		}
		return true
	}

	seq, err := fill.New(s.Algorithm, c.canvas, fill.Params{
		Polygon: s.Scene.Polygon,
		Seed:    s.Scene.Seed,
		Color:   config.FillColor,
	})
	if err != nil {
		s.Message = err.Error()
		c.logger.Error("cannot start fill", "alg", s.Algorithm, "err", err)
		return false
	}
	s.Runner = stepper.New(seq)
	s.scan, _ = seq.(*fill.Scanline)
	c.logger.Debug("fill started", "scene", s.Scene.Name, "alg", s.Algorithm, "seed", s.Scene.Seed)
	return true
}

// advance performs up to n fill steps.
func (c *Client) advance(n int) {
	s := c.state
	for range n {
		st, err := s.Runner.Step()
		if errors.Is(err, fill.ErrExhausted) {
			s.Mode = ModeDone
			return
		}
		if err != nil {
			s.Message = err.Error()
			s.Mode = ModeDone
			return
		}

		s.Status = st.Status
		s.Filled = st.Filled
		c.logger.Debug("fill step", "n", s.Runner.Steps(), "status", st.Status)
		if st.Final {
			s.Mode = ModeDone
			if st.Err != nil {
				s.Message = st.Err.Error()
				c.logger.Warn("fill refused", "scene", s.Scene.Name, "alg", s.Algorithm, "err", st.Err)
			} else {
				c.logger.Info("fill finished", "scene", s.Scene.Name, "alg", s.Algorithm,
					"pixels", st.Filled, "steps", s.Runner.Steps())
			}
			return
		}
	}
}

// reset abandons the current fill and clears the buffer.
func (c *Client) reset() {
	s := c.state
	s.Runner = nil
	s.scan = nil
	s.Mode = ModeIdle
	s.Filled = 0
	s.Message = ""
	c.canvas.Clear(config.Background)
}

func (c *Client) selectAlgorithm(alg fill.Algorithm) {
	c.reset()
	c.state.Algorithm = alg
	c.state.Status = "algorithm " + alg.String()
}

func (c *Client) selectScene(idx int) {
	scenes := scene.All()
	idx = ((idx % len(scenes)) + len(scenes)) % len(scenes)

	c.reset()
	s := c.state
	s.SceneIndex = idx
	s.Scene = scenes[idx]
	s.Status = "scene " + s.Scene.Name
	s.ShowHull = false
	s.Hull = nil
	s.Intersections = nil
	if s.ShowChord {
		c.computeIntersections()
	}
}

// toggleHull shows the hull computed by m, or hides it when m is already
// shown.
func (c *Client) toggleHull(m hull.Method) {
	s := c.state
	if s.ShowHull && s.HullMethod == m {
		s.ShowHull = false
		s.Message = ""
		return
	}

	h, err := hull.Compute(m, s.Scene.Polygon)
	s.HullMethod = m
	s.Hull = h
	s.ShowHull = true
	switch {
	case err != nil:
		s.Message = fmt.Sprintf("%v hull: %v", m, err)
		c.logger.Warn("hull", "method", m, "err", err)
	default:
		s.Message = fmt.Sprintf("%v hull: %d of %d vertices", m, len(h), len(s.Scene.Polygon))
	}
}

func (c *Client) toggleChord() {
	s := c.state
	s.ShowChord = !s.ShowChord
	if !s.ShowChord {
		s.Intersections = nil
		s.Message = ""
		return
	}
	c.computeIntersections()
}

func (c *Client) computeIntersections() {
	s := c.state
	p := s.Scene.Chord
	s.Intersections = geom.SegmentPolygonIntersections(p[0], p[1], s.Scene.Polygon)
	s.Message = fmt.Sprintf("chord of length %.1f crosses the outline %d times",
		geom.Distance(p[0], p[1]), len(s.Intersections))
}

// reportInside tests the centre of the seed pixel against the polygon.
func (c *Client) reportInside() {
	s := c.state
	seed := s.Scene.Seed
	centre := geom.Pt(float64(seed.X)+0.5, float64(seed.Y)+0.5)
	if geom.PointInPolygon(centre, s.Scene.Polygon) {
		s.Message = fmt.Sprintf("pixel %v is inside %s", seed, s.Scene.Name)
	} else {
		s.Message = fmt.Sprintf("pixel %v is outside %s", seed, s.Scene.Name)
	}
}

// moveSeed nudges the seed point. Moving the seed restarts the fill.
func (c *Client) moveSeed(d image.Point) {
	s := c.state
	seed := s.Scene.Seed.Add(d)
	seed.X = max(0, min(seed.X, c.canvas.Width()-1))
	seed.Y = max(0, min(seed.Y, c.canvas.Height()-1))
	if s.Runner != nil {
		c.reset()
	}
	s.Scene = s.Scene.WithSeed(seed)
	s.Status = fmt.Sprintf("seed %v", seed)
}
