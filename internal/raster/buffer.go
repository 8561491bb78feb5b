// Package raster defines the pixel buffer the fill engines write to and an
// in-memory implementation backed by image.RGBA.
package raster

import (
	"image"
	"image/color"
)

// Buffer is a fixed-size grid of colours addressed by (x, y) with
// 0 <= x < Width() and 0 <= y < Height(). Get outside the grid returns the
// zero colour and Put outside the grid is ignored.
//
// A Buffer is written by at most one fill operation at a time; callers
// serialize access.
type Buffer interface {
	Width() int
	Height() int
	Get(x, y int) color.RGBA
	Put(x, y int, c color.RGBA)
}

// InBounds reports whether (x, y) addresses a pixel of b.
func InBounds(b Buffer, x, y int) bool {
	return x >= 0 && x < b.Width() && y >= 0 && y < b.Height()
}

// Image is a Buffer stored in an *image.RGBA with its origin at (0, 0).
type Image struct {
	img *image.RGBA
}

// NewImage returns a transparent width×height buffer.
func NewImage(width, height int) *Image {
	return &Image{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the buffer width in pixels.
func (m *Image) Width() int { return m.img.Rect.Dx() }

// Height returns the buffer height in pixels.
func (m *Image) Height() int { return m.img.Rect.Dy() }

// Get returns the colour at (x, y).
func (m *Image) Get(x, y int) color.RGBA {
	if !InBounds(m, x, y) {
		return color.RGBA{}
	}
	return m.img.RGBAAt(x, y)
}

// Put sets the colour at (x, y).
func (m *Image) Put(x, y int, c color.RGBA) {
	if !InBounds(m, x, y) {
		return
	}
	m.img.SetRGBA(x, y, c)
}

// Clear resets every pixel to c.
func (m *Image) Clear(c color.RGBA) {
	for y := range m.Height() {
		for x := range m.Width() {
			m.img.SetRGBA(x, y, c)
		}
	}
}

// RGBA exposes the backing image for encoding.
func (m *Image) RGBA() *image.RGBA { return m.img }

// Count returns the number of pixels equal to c.
func Count(b Buffer, c color.RGBA) int {
	n := 0
	for y := range b.Height() {
		for x := range b.Width() {
			if b.Get(x, y) == c {
				n++
			}
		}
	}
	return n
}

// Pixels returns the coordinates of every pixel equal to c, row by row.
func Pixels(b Buffer, c color.RGBA) []image.Point {
	var out []image.Point
	for y := range b.Height() {
		for x := range b.Width() {
			if b.Get(x, y) == c {
				out = append(out, image.Pt(x, y))
			}
		}
	}
	return out
}
