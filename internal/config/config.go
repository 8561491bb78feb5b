package config

import (
	"image/color"
	"time"
)

// Canvas size in pixels. Each terminal cell shows two vertically stacked
// pixels, so the canvas needs CanvasWidth columns and CanvasHeight/2 rows.
const (
	CanvasWidth  = 96
	CanvasHeight = 64
)

// Max render resolution (in terminal cells). Larger terminals get the
// canvas centered with a border.
const (
	HUDRows       = 3 // status lines below the canvas
	MaxTermWidth  = CanvasWidth
	MaxTermHeight = CanvasHeight/2 + HUDRows
)

// Overlay geometry.
const (
	NormalLength = 4.0 // pixels drawn along each internal normal
	MarkerArm    = 1   // arm length of seed and intersection markers
)

// Colours.
var (
	Background   = color.RGBA{R: 16, G: 16, B: 24, A: 255}
	FillColor    = color.RGBA{R: 64, G: 160, B: 255, A: 255}
	OutlineColor = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	HullColor    = color.RGBA{R: 255, G: 200, B: 40, A: 255}
	SeedColor    = color.RGBA{R: 255, G: 64, B: 64, A: 255}
	NormalColor  = color.RGBA{R: 80, G: 220, B: 120, A: 255}
	ChordColor   = color.RGBA{R: 220, G: 80, B: 220, A: 255}
)

// Viewer timing.
const (
	TargetFPS        = 30
	TargetFrameTime  = time.Second / TargetFPS
	RunStepsPerFrame = 4 // steps drained per frame in run mode
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Snapshot limits for the HTTP endpoint.
const (
	DefaultSnapshotScale = 6
)
