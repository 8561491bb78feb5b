// Package input turns raw terminal bytes into viewer actions.
package input

import (
	"bufio"
)

// Action is one discrete viewer command.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionStep         // advance the fill by one step
	ActionRun          // drain the fill to completion
	ActionClear        // reset the buffer and the fill
	ActionScanline     // select the edge-table scanline fill
	ActionSeedSimple   // select the simple seed fill
	ActionSeedSpan     // select the span seed fill
	ActionPrevScene    // previous polygon
	ActionNextScene    // next polygon
	ActionGraham       // overlay the Graham scan hull
	ActionJarvis       // overlay the Jarvis march hull
	ActionConvexity    // report whether the polygon is convex
	ActionNormals      // toggle internal normal vectors
	ActionIntersect    // toggle the chord line and its intersections
	ActionInside       // report whether the seed pixel lies in the polygon
	ActionSeedUp       // move the seed point
	ActionSeedDown
	ActionSeedLeft
	ActionSeedRight
)

var actionNames = map[Action]string{
	ActionNone:       "none",
	ActionQuit:       "quit",
	ActionStep:       "step",
	ActionRun:        "run",
	ActionClear:      "clear",
	ActionScanline:   "scanline",
	ActionSeedSimple: "seed-simple",
	ActionSeedSpan:   "seed-span",
	ActionPrevScene:  "prev-scene",
	ActionNextScene:  "next-scene",
	ActionGraham:     "graham",
	ActionJarvis:     "jarvis",
	ActionConvexity:  "convexity",
	ActionNormals:    "normals",
	ActionIntersect:  "intersect",
	ActionInside:     "inside",
	ActionSeedUp:     "seed-up",
	ActionSeedDown:   "seed-down",
	ActionSeedLeft:   "seed-left",
	ActionSeedRight:  "seed-right",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// keyActions maps single bytes to actions.
var keyActions = map[byte]Action{
	'q': ActionQuit, 'Q': ActionQuit, 0x03: ActionQuit, // Ctrl+C in raw mode
	'n': ActionStep, ' ': ActionStep,
	'r': ActionRun, '\r': ActionRun, '\n': ActionRun,
	'c': ActionClear,
	'1': ActionScanline,
	'2': ActionSeedSimple,
	'3': ActionSeedSpan,
	'[': ActionPrevScene,
	']': ActionNextScene,
	'g': ActionGraham,
	'j': ActionJarvis,
	'x': ActionConvexity,
	'm': ActionNormals,
	'i': ActionIntersect,
	'p': ActionInside,
	'w': ActionSeedUp,
	's': ActionSeedDown,
	'a': ActionSeedLeft,
	'd': ActionSeedRight,
}

// Parse converts a chunk of raw terminal input into actions, in order.
// Arrow key escape sequences move the seed point; unknown bytes and
// other three-byte CSI sequences are dropped.
func Parse(buf []byte) []Action {
	var out []Action
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			var a Action
			switch buf[i+2] {
			case 'A':
				a = ActionSeedUp
			case 'B':
				a = ActionSeedDown
			case 'C':
				a = ActionSeedRight
			case 'D':
				a = ActionSeedLeft
			}
			if a != ActionNone {
				out = append(out, a)
			}
			i += 2
			continue
		}

		if a, ok := keyActions[b]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error (including io.EOF).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Drain returns every byte currently available without blocking.
func (s *Stream) Drain() []byte {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
}

// Closed reports whether the underlying reader has ended. It becomes true
// once Drain observes the end of input.
func (s *Stream) Closed() bool { return s.closed }

// ReadActions drains the stream and parses the bytes.
func ReadActions(s *Stream) (actions []Action, raw []byte) {
	raw = s.Drain()
	return Parse(raw), raw
}
