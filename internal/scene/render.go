package scene

import (
	"context"
	"fmt"

	"github.com/tomz197/polyfill/internal/config"
	"github.com/tomz197/polyfill/internal/fill"
	"github.com/tomz197/polyfill/internal/geom"
	"github.com/tomz197/polyfill/internal/raster"
	"github.com/tomz197/polyfill/internal/stepper"
)

// Render fills s with alg on a fresh width×height image, then draws the
// polygon outline and, for seed fills, the seed marker on top. onStep, when
// non-nil, sees every fill step. The final fill step is returned even when
// the fill itself refused to run; its Err says why.
func Render(ctx context.Context, s Scene, alg fill.Algorithm, width, height int, onStep func(fill.Step)) (*raster.Image, fill.Step, error) {
	img := raster.NewImage(width, height)
	img.Clear(config.Background)

	seq, err := fill.New(alg, img, fill.Params{Polygon: s.Polygon, Seed: s.Seed, Color: config.FillColor})
	if err != nil {
		return nil, fill.Step{}, err
	}
	last, err := stepper.New(seq).Run(ctx, onStep)
	if err != nil {
		return nil, last, fmt.Errorf("scene %s: %w", s.Name, err)
	}

	raster.Outline(img, s.Polygon, config.OutlineColor)
	if alg.NeedsSeed() {
		raster.Marker(img, geom.Pt(float64(s.Seed.X), float64(s.Seed.Y)), 1, config.SeedColor)
	}
	return img, last, nil
}
