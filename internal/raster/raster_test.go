package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var red = color.RGBA{R: 255, A: 255}

func TestImageBounds(t *testing.T) {
	m := NewImage(4, 3)
	if m.Width() != 4 || m.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", m.Width(), m.Height())
	}

	m.Put(3, 2, red)
	m.Put(-1, 0, red)
	m.Put(4, 0, red)
	m.Put(0, 3, red)

	if got := m.Get(3, 2); got != red {
		t.Errorf("Get(3, 2) = %v, want %v", got, red)
	}
	if got := m.Get(-1, 0); got != (color.RGBA{}) {
		t.Errorf("Get outside = %v, want zero", got)
	}
	if got := Count(m, red); got != 1 {
		t.Errorf("Count = %d, want 1 (out-of-bounds writes must be ignored)", got)
	}
	if diff := cmp.Diff([]image.Point{{3, 2}}, Pixels(m, red)); diff != "" {
		t.Errorf("Pixels mismatch (-want +got):\n%s", diff)
	}

	m.Clear(red)
	if got := Count(m, red); got != 12 {
		t.Errorf("Count after Clear = %d, want 12", got)
	}
}

func TestMagnify(t *testing.T) {
	m := NewImage(2, 2)
	m.Put(1, 0, red)

	img, err := Magnify(m, 3)
	if err != nil {
		t.Fatalf("Magnify: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 6, 6) {
		t.Fatalf("bounds = %v, want 6x6", got)
	}
	for y := range 6 {
		for x := range 6 {
			want := color.RGBA{}
			if x >= 3 && y < 3 {
				want = red
			}
			if got := img.RGBAAt(x, y); got != want {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}

	for _, scale := range []int{0, -2, MaxScale + 1} {
		if _, err := Magnify(m, scale); err == nil {
			t.Errorf("Magnify(scale=%d) succeeded", scale)
		}
	}
}

func TestEncodePNG(t *testing.T) {
	m := NewImage(5, 4)
	m.Put(2, 1, red)

	var buf bytes.Buffer
	if err := EncodePNG(&buf, m, 2); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 10, 8) {
		t.Errorf("decoded bounds = %v, want 10x8", got)
	}
	r, _, _, a := img.At(5, 3).RGBA()
	if r != 0xffff || a != 0xffff {
		t.Errorf("magnified pixel not red: r=%x a=%x", r, a)
	}
}
