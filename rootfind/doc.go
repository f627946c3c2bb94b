// Package rootfind provides bracketed scalar root-finding for the proximal
// algorithms in lvlopt.
//
// The single entry point is Brent: given f continuous on [a, b] with
// f(a)·f(b) ≤ 0, it returns x with f(x) ≈ 0, combining bisection, secant
// steps and inverse quadratic interpolation (the scheme behind scipy's
// brentq). Bisection guarantees convergence; the interpolation steps give
// superlinear speed on well-behaved functions.
//
// Contracts:
//   - The bracket MUST contain a sign change. Callers derive brackets
//     analytically from their problem's convexity; a violated bracket is a
//     fatal internal-invariant error (ErrNoBracket), never retried.
//   - f must be deterministic; no retries are performed anywhere.
//
// Errors: ErrNoBracket, ErrBadInterval, ErrMaxIter.
package rootfind
