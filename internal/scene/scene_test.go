package scene

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/tomz197/polyfill/internal/config"
	"github.com/tomz197/polyfill/internal/fill"
	"github.com/tomz197/polyfill/internal/geom"
	"github.com/tomz197/polyfill/internal/raster"
)

func TestCatalogue(t *testing.T) {
	for _, s := range All() {
		t.Run(s.Name, func(t *testing.T) {
			if len(s.Polygon) < 3 {
				t.Fatalf("polygon has %d vertices", len(s.Polygon))
			}
			c := geom.Pt(float64(s.Seed.X)+0.5, float64(s.Seed.Y)+0.5)
			if !geom.PointInPolygon(c, s.Polygon) {
				t.Errorf("seed %v is outside the polygon", s.Seed)
			}
			b := geom.Bounds(s.Polygon)
			if b.LLx < 0 || b.LLy < 0 || b.URx >= config.CanvasWidth || b.URy >= config.CanvasHeight {
				t.Errorf("bounds %v exceed the canvas", b)
			}
			if s.Name != "pentagram" {
				if got := geom.Winding(s.Polygon); got != geom.Clockwise {
					t.Errorf("winding = %v, want screen counter-clockwise", got)
				}
			}
		})
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		s, err := ByName(name)
		if err != nil || s.Name != name {
			t.Errorf("ByName(%q) = %v, %v", name, s.Name, err)
		}
	}
	if _, err := ByName("dodecahedron"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("ByName(unknown) error = %v", err)
	}

	// Copies are independent of the catalogue.
	s, _ := ByName("square")
	s.Polygon[0] = geom.Pt(0, 0)
	again, _ := ByName("square")
	if again.Polygon[0] == geom.Pt(0, 0) {
		t.Error("ByName returned a shared polygon slice")
	}
}

func TestWithSeed(t *testing.T) {
	s, _ := ByName("square")
	moved := s.WithSeed(image.Pt(12, 12))
	if moved.Seed != image.Pt(12, 12) || s.Seed != image.Pt(30, 30) {
		t.Errorf("WithSeed: original %v, moved %v", s.Seed, moved.Seed)
	}
}

func TestRender(t *testing.T) {
	for _, s := range All() {
		for _, alg := range fill.Algorithms {
			t.Run(s.Name+"/"+alg.String(), func(t *testing.T) {
				steps := 0
				img, last, err := Render(context.Background(), s, alg, config.CanvasWidth, config.CanvasHeight, func(fill.Step) { steps++ })
				if err != nil {
					t.Fatal(err)
				}
				if !last.Final || last.Err != nil || last.Filled == 0 {
					t.Errorf("final step = %+v", last)
				}
				if steps == 0 {
					t.Error("callback never ran")
				}
				if raster.Count(img, config.FillColor) == 0 {
					t.Error("no fill pixels in the snapshot")
				}
				v := s.Polygon[0]
				if got := img.Get(int(v.X), int(v.Y)); got != config.OutlineColor {
					t.Errorf("vertex %v colour = %v, want outline", v, got)
				}
			})
		}
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, _ := ByName("square")
	if _, _, err := Render(ctx, s, fill.SeedFillSimple, 64, 64, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Render error = %v, want context.Canceled", err)
	}
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		in      string
		want    image.Point
		wantErr bool
	}{
		{"30,30", image.Pt(30, 30), false},
		{" 4 , 7 ", image.Pt(4, 7), false},
		{"-1,2", image.Pt(-1, 2), false},
		{"30", image.Point{}, true},
		{"a,b", image.Point{}, true},
		{"1,", image.Point{}, true},
	}
	for _, tt := range tests {
		got, err := ParseSeed(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSeed(%q) error = %v", tt.in, err)
			continue
		}
		if err != nil && !errors.Is(err, ErrSeedFormat) {
			t.Errorf("ParseSeed(%q) error %v does not wrap ErrSeedFormat", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseSeed(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
