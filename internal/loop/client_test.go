package loop

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/polyfill/internal/config"
	"github.com/tomz197/polyfill/internal/fill"
	"github.com/tomz197/polyfill/internal/hull"
	"github.com/tomz197/polyfill/internal/input"
	"github.com/tomz197/polyfill/internal/raster"
	"github.com/tomz197/polyfill/internal/scene"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func newTestClient(t *testing.T, opts ClientOptions) *Client {
	t.Helper()
	opts.TermSizeFunc = fixedSize(120, 40)
	opts.Logger = log.New(io.Discard)
	c, err := NewClient(nil, io.Discard, opts)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// runToEnd keeps calling update until the fill finishes.
func runToEnd(t *testing.T, c *Client) {
	t.Helper()
	for range 100000 {
		if c.state.Mode != ModeRunning {
			return
		}
		c.update()
	}
	t.Fatal("fill never finished")
}

func TestRunAlgorithms(t *testing.T) {
	tests := []struct {
		key  input.Action
		alg  fill.Algorithm
		want int
	}{
		{input.ActionScanline, fill.ScanlineETAEL, 1640},
		{input.ActionSeedSimple, fill.SeedFillSimple, 1600},
		{input.ActionSeedSpan, fill.SeedFillScanline, 1600},
	}
	for _, tt := range tests {
		t.Run(tt.alg.String(), func(t *testing.T) {
			c := newTestClient(t, ClientOptions{Scene: "square"})
			c.apply(tt.key)
			if c.state.Algorithm != tt.alg {
				t.Fatalf("algorithm = %v, want %v", c.state.Algorithm, tt.alg)
			}
			c.apply(input.ActionRun)
			runToEnd(t, c)

			if c.state.Mode != ModeDone {
				t.Errorf("mode = %v, want done", c.state.Mode)
			}
			if got := raster.Count(c.canvas, config.FillColor); got != tt.want {
				t.Errorf("canvas has %d fill pixels, want %d", got, tt.want)
			}
			if c.state.Filled != tt.want {
				t.Errorf("state.Filled = %d, want %d", c.state.Filled, tt.want)
			}

			c.apply(input.ActionStep)
			if !strings.Contains(c.state.Message, "finished") {
				t.Errorf("stepping a finished fill: message %q", c.state.Message)
			}

			c.apply(input.ActionClear)
			if c.state.Runner != nil || c.state.Mode != ModeIdle {
				t.Error("clear kept the runner")
			}
			if got := raster.Count(c.canvas, config.FillColor); got != 0 {
				t.Errorf("clear left %d fill pixels", got)
			}
		})
	}
}

func TestSingleStep(t *testing.T) {
	c := newTestClient(t, ClientOptions{Scene: "square", Algorithm: fill.SeedFillScanline})
	c.apply(input.ActionStep)
	if c.state.Mode != ModeStepping || c.state.Runner.Steps() != 1 {
		t.Fatalf("mode=%v steps=%d after one step", c.state.Mode, c.state.Runner.Steps())
	}
	c.apply(input.ActionStep)
	if c.state.Filled != 40 {
		t.Errorf("after the first span Filled = %d, want 40", c.state.Filled)
	}
	if !strings.HasPrefix(c.state.Status, "y=30 span") {
		t.Errorf("status = %q", c.state.Status)
	}
	c.update()
	if c.state.Runner.Steps() != 2 {
		t.Error("update advanced a stepping fill")
	}
}

func TestSceneNavigation(t *testing.T) {
	c := newTestClient(t, ClientOptions{})
	names := scene.Names()
	if c.state.Scene.Name != names[0] {
		t.Fatalf("first scene = %q", c.state.Scene.Name)
	}
	c.apply(input.ActionPrevScene)
	if c.state.Scene.Name != names[len(names)-1] {
		t.Errorf("prev from first = %q, want %q", c.state.Scene.Name, names[len(names)-1])
	}
	c.apply(input.ActionNextScene)
	c.apply(input.ActionNextScene)
	if c.state.Scene.Name != names[1] {
		t.Errorf("scene = %q, want %q", c.state.Scene.Name, names[1])
	}
}

func TestGeometryCommands(t *testing.T) {
	c := newTestClient(t, ClientOptions{Scene: "arrow"})

	c.apply(input.ActionConvexity)
	if c.state.Message != "arrow is not convex" {
		t.Errorf("convexity message %q", c.state.Message)
	}

	c.apply(input.ActionGraham)
	if !c.state.ShowHull || c.state.HullMethod != hull.Graham {
		t.Fatal("graham hull not shown")
	}
	graham := len(c.state.Hull)
	c.apply(input.ActionJarvis)
	if c.state.HullMethod != hull.Jarvis || len(c.state.Hull) != graham {
		t.Errorf("jarvis hull has %d vertices, graham %d", len(c.state.Hull), graham)
	}
	c.apply(input.ActionJarvis)
	if c.state.ShowHull {
		t.Error("second j did not hide the hull")
	}

	c.apply(input.ActionIntersect)
	if !c.state.ShowChord || len(c.state.Intersections) == 0 {
		t.Errorf("chord shows %d intersections", len(c.state.Intersections))
	}
	c.apply(input.ActionIntersect)
	if c.state.ShowChord || c.state.Intersections != nil {
		t.Error("chord not hidden")
	}

	c.apply(input.ActionNormals)
	if !c.state.ShowNormals || !strings.Contains(c.state.Message, "winding") {
		t.Errorf("normals message %q", c.state.Message)
	}
}

func TestMoveSeed(t *testing.T) {
	c := newTestClient(t, ClientOptions{Scene: "square", Algorithm: fill.SeedFillSimple})
	c.apply(input.ActionStep)
	c.apply(input.ActionSeedRight)
	c.apply(input.ActionSeedUp)
	if c.state.Scene.Seed != image.Pt(31, 29) {
		t.Errorf("seed = %v, want (31,29)", c.state.Scene.Seed)
	}
	if c.state.Runner != nil {
		t.Error("moving the seed kept the old fill")
	}

	c = newTestClient(t, ClientOptions{Scene: "square", Seed: &image.Point{X: 0, Y: 0}})
	c.apply(input.ActionSeedLeft)
	if c.state.Scene.Seed != image.Pt(0, 0) {
		t.Errorf("seed moved off the canvas: %v", c.state.Scene.Seed)
	}
}

func TestInsideQuery(t *testing.T) {
	tests := []struct {
		seed image.Point
		want string
	}{
		{image.Pt(30, 30), "pixel (30,30) is inside square"},
		{image.Pt(2, 2), "pixel (2,2) is outside square"},
		{image.Pt(49, 30), "pixel (49,30) is inside square"},
		{image.Pt(50, 30), "pixel (50,30) is outside square"},
	}
	for _, tt := range tests {
		c := newTestClient(t, ClientOptions{Scene: "square", Seed: &tt.seed})
		c.apply(input.ActionInside)
		if c.state.Message != tt.want {
			t.Errorf("seed %v: message %q, want %q", tt.seed, c.state.Message, tt.want)
		}
		if c.state.Runner != nil {
			t.Errorf("seed %v: query started a fill", tt.seed)
		}
	}
}

func TestScanlineRowInHUD(t *testing.T) {
	c := newTestClient(t, ClientOptions{Scene: "square"})
	if strings.Contains(c.hudLines()[0], "row") {
		t.Errorf("idle summary %q shows a row", c.hudLines()[0])
	}
	c.apply(input.ActionStep)
	if got := c.hudLines()[0]; !strings.HasSuffix(got, "| next row 10") {
		t.Errorf("after building the table summary = %q", got)
	}
	c.apply(input.ActionStep)
	if got := c.hudLines()[0]; !strings.HasSuffix(got, "| next row 11") {
		t.Errorf("after the first row summary = %q", got)
	}

	c.apply(input.ActionSeedSpan)
	c.apply(input.ActionStep)
	if strings.Contains(c.hudLines()[0], "row") {
		t.Errorf("seed fill summary %q shows a row", c.hudLines()[0])
	}
}

func TestStepsPerFrame(t *testing.T) {
	tests := []struct {
		opt, want int
	}{
		{0, config.RunStepsPerFrame},
		{1, 1},
		{10, 10},
	}
	for _, tt := range tests {
		c := newTestClient(t, ClientOptions{Scene: "square", StepsPerFrame: tt.opt})
		c.apply(input.ActionRun)
		c.update()
		if got := c.state.Runner.Steps(); got != tt.want {
			t.Errorf("StepsPerFrame %d: %d steps after one frame, want %d", tt.opt, got, tt.want)
		}
	}
}

func TestSeedOutsidePolygon(t *testing.T) {
	c := newTestClient(t, ClientOptions{Scene: "square", Algorithm: fill.SeedFillSimple, Seed: &image.Point{X: 2, Y: 2}})
	c.apply(input.ActionStep)
	if c.state.Mode != ModeDone || !strings.Contains(c.state.Message, "outside polygon") {
		t.Errorf("mode=%v message=%q", c.state.Mode, c.state.Message)
	}
	if got := raster.Count(c.canvas, config.FillColor); got != 0 {
		t.Errorf("%d pixels written", got)
	}
}

func TestUnknownScene(t *testing.T) {
	_, err := NewClient(nil, io.Discard, ClientOptions{Scene: "nope", Logger: log.New(io.Discard)})
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("NewClient error = %v", err)
	}
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		w, h                   int
		rw, rh, offCol, offRow int
	}{
		{80, 20, 80, 20, 0, 0},
		{config.MaxTermWidth, config.MaxTermHeight, config.MaxTermWidth, config.MaxTermHeight, 0, 0},
		{config.MaxTermWidth + 10, config.MaxTermHeight + 4, config.MaxTermWidth, config.MaxTermHeight, 5, 2},
	}
	for _, tt := range tests {
		rw, rh, oc, or := clampTermSize(tt.w, tt.h)
		if rw != tt.rw || rh != tt.rh || oc != tt.offCol || or != tt.offRow {
			t.Errorf("clampTermSize(%d, %d) = %d %d %d %d", tt.w, tt.h, rw, rh, oc, or)
		}
	}
}

func TestRunQuits(t *testing.T) {
	var out bytes.Buffer
	c, err := NewClient(bufio.NewReader(strings.NewReader("3nnq")), &out, ClientOptions{
		TermSizeFunc: fixedSize(120, 40),
		Logger:       log.New(io.Discard),
		Scene:        "square",
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if ctx.Err() != nil {
		t.Fatal("Run did not stop on q")
	}
	if c.state.Algorithm != fill.SeedFillScanline || c.state.Filled != 40 {
		t.Errorf("alg=%v filled=%d after 3nn", c.state.Algorithm, c.state.Filled)
	}
	got := out.String()
	if !strings.Contains(got, "\033[?25l") || !strings.HasSuffix(got, "\033[H\033[2J\033[?25h") {
		t.Errorf("output does not hide and restore the cursor")
	}
	if !strings.Contains(got, helpLine[:20]) && !strings.Contains(got, "square |") {
		t.Error("HUD missing from output")
	}
}
