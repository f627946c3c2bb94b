// Package precision defines the process-wide working floating-point width
// and the boundary helpers that coerce values through it.
//
// Every public numeric entry point in lvlopt (functional apply/prox/gradient,
// solver fit) rounds its inputs through the current width before computing
// and returns values already expressed in that width. The core algorithms
// never assume a fixed width themselves — they call through this boundary.
//
// The width is explicit process-wide configuration with a defined lifecycle:
//
//	precision.Set(precision.Single) // opt into float32 rounding
//	defer precision.Reset()         // restore the default (Double)
//
// At the default Double width every Coerce call is the identity, so the
// boundary costs nothing unless narrowing was requested.
package precision
