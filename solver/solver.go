// Package solver: the shared fit-loop harness embedded by concrete solvers.
package solver

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/lvlopt/ndarray"
)

// Base carries the state, status and loop bookkeeping shared by every
// concrete solver. A solver embeds Base and calls fit with its step
// function; Base drives stopping, logging and writeback.
type Base struct {
	opts   Options
	state  State
	status Status
	iters  int
}

// Status reports the solver's lifecycle state.
func (b *Base) Status() Status { return b.status }

// Iterations reports how many iterations the last Fit performed.
func (b *Base) Iterations() int { return b.iters }

// Var returns a deep copy of a state variable from the last Fit.
func (b *Base) Var(name string) (*ndarray.Array, error) {
	if b.state == nil {
		return nil, ErrNotFitted
	}
	v, ok := b.state[name]
	if !ok {
		return nil, ErrMissingVar
	}

	return v.Clone(), nil
}

// Stats returns a deep copy of the terminal state.
func (b *Base) Stats() (State, error) {
	if b.state == nil {
		return nil, ErrNotFitted
	}

	return b.state.clone(), nil
}

// fit runs the loop: step → stop-check → cadenced logging and writeback →
// terminal status. An exhausted budget sets StatusMaxIter and returns nil;
// only step or collaborator failures surface as errors.
func (b *Base) fit(opts Options, state State, step func(it int) error) error {
	b.opts, b.state, b.iters = opts, state, 0
	b.status = StatusRunning

	for it := 1; it <= opts.MaxIter; it++ {
		if err := step(it); err != nil {
			b.status = StatusUninitialized
			return err
		}
		b.iters = it

		done, err := opts.Stop.Done(b.state)
		if err != nil {
			b.status = StatusUninitialized
			return err
		}

		if done || it%opts.LogEvery == 0 {
			opts.Logger.Debug("solver iteration",
				zap.Int("iteration", it),
				zap.Float64("criterion", opts.Stop.Value()),
				zap.Bool("done", done))
		}
		if opts.Writer != nil && (done || it%opts.WriteEvery == 0) {
			if werr := opts.Writer.Write(it, b.state.clone()); werr != nil {
				b.status = StatusUninitialized
				return werr
			}
		}

		if done {
			b.status = StatusConverged
			return nil
		}
	}

	b.status = StatusMaxIter
	if opts.Writer != nil && b.iters%opts.WriteEvery != 0 {
		return opts.Writer.Write(b.iters, b.state.clone())
	}

	return nil
}
