// Package rootfind: Brent's method.
//
// Algorithm outline:
//  1. Maintain a bracket (a, b, c) with f(b)·f(c) ≤ 0 and b the best
//     iterate so far.
//  2. Each iteration attempts inverse quadratic interpolation (three
//     distinct points) or a secant step (two), falling back to bisection
//     whenever the candidate leaves the bracket or converges too slowly.
//  3. Stop when the half-bracket is below tolerance or f(b) == 0.
//
// Complexity: superlinear on smooth f; never worse than bisection's
// O(log((b-a)/tol)) function evaluations.
package rootfind

import (
	"errors"
	"math"
)

var (
	// ErrBadInterval indicates a degenerate bracket (a >= b, or a
	// non-finite endpoint).
	ErrBadInterval = errors.New("rootfind: invalid bracket interval")

	// ErrNoBracket indicates f(a) and f(b) do not straddle zero. This is a
	// fatal invariant violation on the caller's side; it is never retried.
	ErrNoBracket = errors.New("rootfind: bracket does not contain a sign change")

	// ErrMaxIter indicates the iteration cap was reached before the
	// tolerance was met.
	ErrMaxIter = errors.New("rootfind: maximum iterations exceeded")
)

// Default tolerances; mirror the defaults of the reference brentq routine.
const (
	// DefaultTol is the absolute x-tolerance declared converged.
	DefaultTol = 1e-12

	// DefaultMaxIter caps the iteration count; 100 covers any bracket
	// representable in float64 at DefaultTol.
	DefaultMaxIter = 100
)

// Options configures Brent. The zero value is NOT valid; use
// DefaultOptions and override fields as needed.
type Options struct {
	// Tol is the absolute convergence tolerance on x.
	Tol float64

	// MaxIter caps the number of iterations.
	MaxIter int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{Tol: DefaultTol, MaxIter: DefaultMaxIter}
}

// Brent finds a root of f in [a, b]. opts may be nil for defaults.
//
// Returns ErrBadInterval on a degenerate bracket, ErrNoBracket when the
// endpoints do not straddle zero, ErrMaxIter on non-convergence.
func Brent(f func(float64) float64, a, b float64, opts *Options) (float64, error) {
	o := DefaultOptions()
	if opts != nil {
		if opts.Tol > 0 {
			o.Tol = opts.Tol
		}
		if opts.MaxIter > 0 {
			o.MaxIter = opts.MaxIter
		}
	}

	if !(a < b) || math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return 0, ErrBadInterval
	}

	fa, fb := f(a), f(b)
	switch {
	case fa == 0:
		return a, nil
	case fb == 0:
		return b, nil
	case (fa > 0) == (fb > 0):
		return 0, ErrNoBracket
	}

	// c mirrors the contrapoint; d is the current step, e the one before
	// (used to judge whether interpolation is shrinking fast enough).
	c, fc := b, fb
	var d, e float64

	for iter := 0; iter < o.MaxIter; iter++ {
		if (fb > 0) == (fc > 0) {
			// b and c no longer straddle the root: rebracket from a.
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			// Keep b the best iterate.
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 2*machEps*math.Abs(b) + 0.5*o.Tol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			return b, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			// Attempt inverse quadratic interpolation (secant when a == c).
			var p, q float64
			s := fb / fa
			if a == c {
				p = 2 * xm * s
				q = 1 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			min1 := 3*xm*q - math.Abs(tol1*q)
			min2 := math.Abs(e * q)
			if 2*p < math.Min(min1, min2) {
				// Interpolation accepted.
				e = d
				d = p / q
			} else {
				// Interpolation unacceptable: bisect.
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = f(b)
	}

	return b, ErrMaxIter
}

// machEps is the float64 unit roundoff.
var machEps = math.Nextafter(1, 2) - 1
