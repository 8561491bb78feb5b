// Package loop runs one interactive fill viewer per terminal: it reads key
// presses, advances the selected fill and repaints the canvas every frame.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/polyfill/internal/config"
	"github.com/tomz197/polyfill/internal/draw"
	"github.com/tomz197/polyfill/internal/fill"
	"github.com/tomz197/polyfill/internal/input"
	"github.com/tomz197/polyfill/internal/scene"
)

// Client handles rendering and input for a single terminal.
type Client struct {
	state        *State
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates output for chunked writes
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger

	stepsPerFrame int // fill steps per frame in run mode
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
	Algorithm    fill.Algorithm
	Scene        string       // Scene name; empty selects the first scene
	Seed         *image.Point // Overrides the scene's seed when set

	// StepsPerFrame is the run-mode speed; zero selects
	// config.RunStepsPerFrame.
	StepsPerFrame int
}

// NewClient creates a viewer reading keys from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	steps := opts.StepsPerFrame
	if steps <= 0 {
		steps = config.RunStepsPerFrame
	}

	idx := 0
	if opts.Scene != "" {
		idx = slices.Index(scene.Names(), opts.Scene)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, opts.Scene)
		}
	}
	state := NewState(idx, opts.Algorithm)
	if opts.Seed != nil {
		state.Scene.Seed = *opts.Seed
	}

	canvas := draw.NewCanvas(config.CanvasWidth, config.CanvasHeight)
	canvas.Clear(config.Background)

	c := &Client{
		state:        state,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, 0, 0),
		writer:       w,
		termSizeFunc: termSizeFunc,
		logger:       logger,

		stepsPerFrame: steps,
	}
	if r != nil {
		c.inputStream = input.StartStream(r)
	}
	return c, nil
}

// State exposes the session state.
func (c *Client) State() *State { return c.state }

// Canvas exposes the canvas the fills write to.
func (c *Client) Canvas() *draw.Canvas { return c.canvas }

// Run starts the client loop. Blocks until the user quits, the input ends,
// the session goes idle for too long, or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	c.updateScreen()

	for c.state.Running {
		frameStart := time.Now()

		if ctx.Err() != nil {
			break
		}

		c.processInput()
		c.updateScreen()
		c.update()

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			select {
			case <-ctx.Done():
			case <-time.After(config.TargetFrameTime - elapsed):
			}
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads pending key presses and applies them.
func (c *Client) processInput() {
	if c.inputStream == nil {
		return
	}
	actions, raw := input.ReadActions(c.inputStream)

	if len(raw) > 0 {
		c.state.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.state.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting idle session")
		c.state.Running = false
	} else if time.Since(c.state.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	for _, a := range actions {
		c.apply(a)
	}
	if c.inputStream.Closed() {
		c.state.Running = false
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvasRows := max(0, renderHeight-config.HUDRows)

	if renderWidth != c.canvas.TerminalWidth() || canvasRows != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, canvasRows)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
