// Package precision: width register and coercion boundary.
// This file defines the Width enum, the guarded process-wide register with
// its Set/Current/Reset lifecycle, and the Coerce helpers used by every
// public numeric entry point.
package precision

import "sync"

// Width selects the working floating-point width for the whole process.
type Width int

const (
	// Double keeps full float64 precision. Default.
	Double Width = iota

	// Single rounds every boundary value through float32.
	Single
)

// DefaultWidth is the width restored by Reset and active at startup.
const DefaultWidth = Double

// register guards the current width. A plain RWMutex cell: reads dominate
// (one per boundary crossing), writes happen only on Set/Reset.
var register = struct {
	mu sync.RWMutex
	w  Width
}{w: DefaultWidth}

// Set installs w as the process-wide working width.
// Concurrency-safe; takes effect for all subsequent boundary crossings.
func Set(w Width) {
	register.mu.Lock()
	register.w = w
	register.mu.Unlock()
}

// Current reports the active working width.
func Current() Width {
	register.mu.RLock()
	defer register.mu.RUnlock()

	return register.w
}

// Reset restores DefaultWidth.
func Reset() { Set(DefaultWidth) }

// Coerce expresses v in the current working width.
// Identity under Double; a float32 round-trip under Single.
func Coerce(v float64) float64 {
	if Current() == Single {
		return float64(float32(v))
	}

	return v
}

// CoerceSlice expresses every element of vs in the current working width,
// in place, and returns vs for chaining. No-op under Double.
func CoerceSlice(vs []float64) []float64 {
	if Current() != Single {
		return vs
	}
	for i, v := range vs {
		vs[i] = float64(float32(v))
	}

	return vs
}
