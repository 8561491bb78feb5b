package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// MaxScale bounds the magnification factor accepted by Magnify.
const MaxScale = 32

// Magnify copies b into a new image scaled up by an integer factor with
// nearest-neighbour sampling, so each pixel becomes a visible square.
func Magnify(b Buffer, scale int) (*image.RGBA, error) {
	if scale < 1 || scale > MaxScale {
		return nil, fmt.Errorf("raster: scale %d out of range [1, %d]", scale, MaxScale)
	}

	src := image.NewRGBA(image.Rect(0, 0, b.Width(), b.Height()))
	for y := range b.Height() {
		for x := range b.Width() {
			src.SetRGBA(x, y, b.Get(x, y))
		}
	}
	if scale == 1 {
		return src, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.Width()*scale, b.Height()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// EncodePNG writes b to w as a PNG magnified by scale.
func EncodePNG(w io.Writer, b Buffer, scale int) error {
	img, err := Magnify(b, scale)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	return nil
}
