package loop

import (
	"fmt"

	"github.com/tomz197/polyfill/internal/config"
	"github.com/tomz197/polyfill/internal/geom"
	"github.com/tomz197/polyfill/internal/raster"
)

const helpLine = "n step  r run  c clear  1-3 alg  [ ] scene  g/j hull  x convex  m normals  i chord  p inside  wasd seed  q quit"

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	c.drawOverlay()

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}
	c.drawHUD()

	return c.chunkWriter.Flush()
}

// drawOverlay redraws outlines and markers on top of the fill.
func (c *Client) drawOverlay() {
	s := c.state
	c.canvas.ClearOverlay()
	o := c.canvas.Overlay()

	if s.ShowChord {
		raster.Line(o, s.Scene.Chord[0], s.Scene.Chord[1], config.ChordColor)
	}
	raster.Outline(o, s.Scene.Polygon, config.OutlineColor)
	if s.ShowHull {
		raster.Outline(o, s.Hull, config.HullColor)
	}
	if s.ShowNormals {
		for _, n := range geom.InternalNormals(s.Scene.Polygon) {
			raster.Line(o, n.Mid, n.Mid.Add(n.Dir.Mul(config.NormalLength)), config.NormalColor)
		}
	}
	for _, p := range s.Intersections {
		raster.Marker(o, p, config.MarkerArm, config.ChordColor)
	}
	if s.Algorithm.NeedsSeed() {
		seed := geom.Pt(float64(s.Scene.Seed.X), float64(s.Scene.Seed.Y))
		raster.Marker(o, seed, config.MarkerArm, config.SeedColor)
	}
}

// drawHUD writes the status lines below the canvas.
func (c *Client) drawHUD() {
	width := c.canvas.TerminalWidth()
	row := c.canvas.TerminalHeight() + 1
	if c.canvas.OffsetRow() >= 1 {
		row++ // below the border
	}

	for i, line := range c.hudLines() {
		c.chunkWriter.WriteAt(1, row+i, truncate(line, width))
	}
}

// hudLines returns the summary, the last step status and the message line.
func (c *Client) hudLines() []string {
	s := c.state
	summary := fmt.Sprintf("%s | %s | %s | filled %d", s.Scene.Name, s.Algorithm, s.Mode, s.Filled)
	if s.scan != nil && s.Mode != ModeDone {
		summary += fmt.Sprintf(" | next row %d", s.scan.Scanline())
	}

	lines := []string{summary, s.Status, s.Message}
	if s.isInactive {
		lines[2] = fmt.Sprintf("idle: disconnecting in %d seconds, press any key", config.InactivityDisconnectUser-config.InactivityWarnUser)
	} else if s.Message == "" {
		lines[2] = helpLine
	}
	return lines
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}
