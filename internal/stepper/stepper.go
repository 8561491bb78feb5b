// Package stepper drives a fill.Sequence either one step at a time or to
// completion with a per-step callback.
package stepper

import (
	"context"
	"errors"

	"github.com/tomz197/polyfill/internal/fill"
)

// Runner wraps exactly one fill sequence. It is not restartable: build a
// new sequence and a new Runner to fill again.
type Runner struct {
	seq   fill.Sequence
	last  fill.Step
	steps int
	done  bool
}

// New returns a Runner around seq.
func New(seq fill.Sequence) *Runner {
	return &Runner{seq: seq}
}

// Step advances the sequence by one unit of work. Once the final step has
// been returned, Step returns fill.ErrExhausted.
func (r *Runner) Step() (fill.Step, error) {
	if r.done {
		return fill.Step{}, fill.ErrExhausted
	}
	st, err := r.seq.Next()
	if err != nil {
		if errors.Is(err, fill.ErrExhausted) {
			r.done = true
		}
		return fill.Step{}, err
	}
	r.last = st
	r.steps++
	if st.Final {
		r.done = true
	}
	return st, nil
}

// Run drains the sequence, passing every step to onStep (which may be nil).
// It checks ctx between steps and returns ctx.Err() if it is cancelled,
// leaving the remaining steps for a later call. On completion it returns
// the final step. Calling Run on a finished Runner returns fill.ErrExhausted.
func (r *Runner) Run(ctx context.Context, onStep func(fill.Step)) (fill.Step, error) {
	if r.done {
		return r.last, fill.ErrExhausted
	}
	for {
		if err := ctx.Err(); err != nil {
			return r.last, err
		}
		st, err := r.Step()
		if err != nil {
			return r.last, err
		}
		if onStep != nil {
			onStep(st)
		}
		if st.Final {
			return st, nil
		}
	}
}

// Done reports whether the final step has been produced.
func (r *Runner) Done() bool { return r.done }

// Last returns the most recent step.
func (r *Runner) Last() fill.Step { return r.last }

// Steps returns how many steps have been produced.
func (r *Runner) Steps() int { return r.steps }
