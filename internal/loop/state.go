package loop

import (
	"time"

	"github.com/tomz197/polyfill/internal/fill"
	"github.com/tomz197/polyfill/internal/geom"
	"github.com/tomz197/polyfill/internal/hull"
	"github.com/tomz197/polyfill/internal/scene"
	"github.com/tomz197/polyfill/internal/stepper"
)

// Mode is the phase of the current fill.
type Mode int

const (
	ModeIdle     Mode = iota // No fill started since the last reset
	ModeStepping             // Advancing one step per key press
	ModeRunning              // Draining a few steps every frame
	ModeDone                 // Final step reached
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeStepping:
		return "stepping"
	case ModeRunning:
		return "running"
	case ModeDone:
		return "done"
	}
	return "unknown"
}

// State holds everything one viewer session shows.
type State struct {
	Running bool // Session loop running

	SceneIndex int
	Scene      scene.Scene
	Algorithm  fill.Algorithm

	Runner *stepper.Runner // nil until the first step after a reset
	scan   *fill.Scanline  // set when Runner drives a scanline fill
	Mode   Mode
	Status string // Status of the most recent fill step
	Filled int    // Pixels written by the current fill

	Message string // Result of the last geometry command

	ShowHull   bool
	HullMethod hull.Method
	Hull       []geom.Point

	ShowNormals bool

	ShowChord     bool
	Intersections []geom.Point

	lastInput  time.Time
	isInactive bool
}

// NewState creates a session showing the given scene.
func NewState(idx int, alg fill.Algorithm) *State {
	scenes := scene.All()
	idx = ((idx % len(scenes)) + len(scenes)) % len(scenes)
	return &State{
		Running:    true,
		SceneIndex: idx,
		Scene:      scenes[idx],
		Algorithm:  alg,
		Status:     "press n to step, r to run",
		lastInput:  time.Now(),
	}
}
