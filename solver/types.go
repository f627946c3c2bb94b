// Package solver: statuses, state, criteria and sentinel errors.
package solver

import (
	"errors"

	"github.com/katalvlaran/lvlopt/ndarray"
)

var (
	// ErrNotFitted is returned by accessors before Fit has run.
	ErrNotFitted = errors.New("solver: Fit has not been run")

	// ErrMissingVar is returned when a state variable does not exist.
	ErrMissingVar = errors.New("solver: state variable not found")

	// ErrBadOption is returned for out-of-range option values.
	ErrBadOption = errors.New("solver: invalid option value")

	// ErrBadRHS is returned when the right-hand side does not match the
	// operator's shape.
	ErrBadRHS = errors.New("solver: right-hand side shape mismatch")
)

// Status is a solver's lifecycle state.
type Status int

const (
	// StatusUninitialized: Fit has not been called.
	StatusUninitialized Status = iota

	// StatusRunning: the fit loop is in progress.
	StatusRunning

	// StatusConverged: the stopping criterion fired.
	StatusConverged

	// StatusMaxIter: the iteration budget ran out. Terminal, not an error.
	StatusMaxIter
)

// String implements fmt.Stringer for Status.
func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusRunning:
		return "running"
	case StatusConverged:
		return "converged"
	case StatusMaxIter:
		return "max-iter"
	default:
		return "unknown"
	}
}

// State is a solver's named working variables, mutated in place by each
// iteration. Snapshots (writeback, Stats) deep-copy it first.
type State map[string]*ndarray.Array

// clone deep-copies every variable.
func (s State) clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v.Clone()
	}

	return out
}

// Criterion is a pluggable stopping rule, consulted once per iteration.
type Criterion interface {
	// Done inspects the current state and reports whether to stop.
	Done(s State) (bool, error)

	// Value reports the scalar the last Done call measured, for logging.
	Value() float64
}
