// Package draw renders pixel buffers to a terminal using half-block
// characters, two pixels per cell.
package draw

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/tomz197/polyfill/internal/raster"
)

// Canvas is a pixel buffer with an overlay layer, rendered with 2x vertical
// resolution using half-block characters. The fill layer is what Get and Put
// address, so a Canvas can be handed to the fill engines directly. The
// overlay holds outlines and markers and is drawn on top; transparent
// overlay pixels show the fill layer.
type Canvas struct {
	fill    *raster.Image
	overlay *raster.Image

	termWidth  int // Visible terminal columns
	termHeight int // Visible terminal rows

	// Offset for centering the render area when terminal is larger than the canvas.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	prev      []cell          // Last rendered cell per terminal position
	renderBuf strings.Builder // Buffer for batching render output
}

type cell struct {
	top, bottom color.RGBA
	valid       bool
}

// NewCanvas creates a width×height pixel canvas. Its render area starts as
// the full canvas (width columns, height/2 rows).
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		fill:    raster.NewImage(width, height),
		overlay: raster.NewImage(width, height),
	}
	c.Resize(width, (height+1)/2)
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.fill.Width() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.fill.Height() }

// Get returns the fill layer colour at (x, y).
func (c *Canvas) Get(x, y int) color.RGBA { return c.fill.Get(x, y) }

// Put sets the fill layer colour at (x, y).
func (c *Canvas) Put(x, y int, col color.RGBA) { c.fill.Put(x, y, col) }

var _ raster.Buffer = (*Canvas)(nil)

// Overlay returns the layer drawn on top of the fill layer.
func (c *Canvas) Overlay() raster.Buffer { return c.overlay }

// Clear resets the fill layer to bg.
func (c *Canvas) Clear(bg color.RGBA) { c.fill.Clear(bg) }

// ClearOverlay makes the overlay fully transparent.
func (c *Canvas) ClearOverlay() { c.overlay.Clear(color.RGBA{}) }

// Fill returns the fill layer as an image buffer, e.g. for PNG export.
func (c *Canvas) Fill() *raster.Image { return c.fill }

// Resize sets the visible render area in terminal cells. The area never
// exceeds the canvas itself.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(0, min(termWidth, c.Width()))
	termHeight = max(0, min(termHeight, (c.Height()+1)/2))
	if termWidth != c.termWidth || termHeight != c.termHeight || c.prev == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.prev = make([]cell, termWidth*termHeight)
	}
}

// ForceRedraw makes the next Render emit every cell.
func (c *Canvas) ForceRedraw() {
	clear(c.prev)
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the visible column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the visible row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// pixel returns the composed colour at (x, y).
func (c *Canvas) pixel(x, y int) color.RGBA {
	if o := c.overlay.Get(x, y); o.A != 0 {
		return o
	}
	return c.fill.Get(x, y)
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the cells that changed since the previous Render. Each cell
// shows its top pixel as the foreground and its bottom pixel as the
// background of an upper half block.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	var fg, bg color.RGBA
	styled := false
	for row := range c.termHeight {
		for col := range c.termWidth {
			cur := cell{
				top:    c.pixel(col, row*2),
				bottom: c.pixel(col, row*2+1),
				valid:  true,
			}
			i := row*c.termWidth + col
			if c.prev[i] == cur {
				continue
			}
			c.prev[i] = cur

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			if !styled || cur.top != fg {
				c.renderBuf.WriteString(Fg(cur.top))
				fg = cur.top
			}
			if !styled || cur.bottom != bg {
				c.renderBuf.WriteString(Bg(cur.bottom))
				bg = cur.bottom
			}
			styled = true
			c.renderBuf.WriteRune(BlockUpperHalf)
		}
	}
	if styled {
		c.renderBuf.WriteString(ColorReset)
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data[:min(len(data), maxChunkSize)]
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the canvas on either axis.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	bar := strings.Repeat("─", c.termWidth)
	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, bar)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, bar)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, bar)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, bar)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}
