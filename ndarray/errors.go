// Package ndarray: sentinel error set.
// All public constructors and operations MUST return these sentinels and
// tests MUST check them via errors.Is. No operation panics on user input.
package ndarray

import "errors"

var (
	// ErrBadShape is returned when a requested shape is invalid
	// (empty, or any axis < 1).
	ErrBadShape = errors.New("ndarray: invalid shape")

	// ErrShapeMismatch indicates incompatible shapes between operands of a
	// binary operation, or data whose length does not match its shape.
	ErrShapeMismatch = errors.New("ndarray: shape mismatch")

	// ErrOutOfRange indicates a flat or row index outside valid bounds.
	ErrOutOfRange = errors.New("ndarray: index out of range")

	// ErrNoSort marks a backend that cannot sort (chunked/lazy storage).
	// Callers must fall back to a sort-free algorithm.
	ErrNoSort = errors.New("ndarray: backend cannot sort")

	// ErrNilArray indicates a nil *Array operand.
	ErrNilArray = errors.New("ndarray: nil array")
)
