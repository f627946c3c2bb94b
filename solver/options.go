// Package solver: functional options for Fit.
package solver

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/lvlopt/ndarray"
)

// Options configures a single Fit run.
type Options struct {
	// X0 is the starting point. nil means the zero vector shaped like the
	// right-hand side.
	X0 *ndarray.Array

	// Stop overrides the solver's default stopping criterion.
	Stop Criterion

	// MaxIter is the iteration budget. Default 10_000.
	MaxIter int

	// Writer receives cadenced state snapshots; nil disables writeback.
	Writer Writer

	// WriteEvery is the writeback cadence in iterations. Default 100;
	// the terminal state is always written when a Writer is set.
	WriteEvery int

	// Logger receives per-cadence progress entries. Default zap.NewNop().
	Logger *zap.Logger

	// LogEvery is the logging cadence in iterations. Default 100.
	LogEvery int
}

// DefaultOptions returns the baseline Fit configuration.
func DefaultOptions() Options {
	return Options{
		MaxIter:    10_000,
		WriteEvery: 100,
		Logger:     zap.NewNop(),
		LogEvery:   100,
	}
}

// Option mutates Options.
type Option func(*Options)

// WithX0 sets the starting point.
func WithX0(x0 *ndarray.Array) Option {
	return func(o *Options) { o.X0 = x0 }
}

// WithStop replaces the solver's default stopping criterion.
func WithStop(c Criterion) Option {
	return func(o *Options) { o.Stop = c }
}

// WithMaxIter sets the iteration budget.
func WithMaxIter(n int) Option {
	return func(o *Options) { o.MaxIter = n }
}

// WithWriteback attaches a snapshot Writer at the given cadence.
func WithWriteback(w Writer, every int) Option {
	return func(o *Options) {
		o.Writer = w
		o.WriteEvery = every
	}
}

// WithLogger attaches a zap logger for progress entries.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithLogEvery sets the logging cadence.
func WithLogEvery(n int) Option {
	return func(o *Options) { o.LogEvery = n }
}

// validate applies defaults and rejects out-of-range values.
func (o *Options) validate() error {
	if o.MaxIter < 1 || o.WriteEvery < 1 || o.LogEvery < 1 {
		return ErrBadOption
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return nil
}
