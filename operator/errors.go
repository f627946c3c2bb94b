// Package operator: sentinel error set.
// All constructors and capability accessors MUST return these sentinels;
// tests check them via errors.Is. Contract violations are fatal and never
// recovered internally.
package operator

import "errors"

var (
	// ErrShapeMismatch indicates operand dimensions incompatible in a
	// composition or an apply/adjoint/gradient/prox call.
	ErrShapeMismatch = errors.New("operator: shape mismatch")

	// ErrCapability indicates an operation outside the operator's
	// capability set (e.g. Adjoint on a non-linear operator, Hessian on a
	// domain-agnostic quadratic functional).
	ErrCapability = errors.New("operator: capability violation")

	// ErrNilOperator indicates a nil operand passed to the algebra.
	ErrNilOperator = errors.New("operator: nil operator")

	// ErrBadParameter indicates an out-of-contract numeric parameter
	// (tau <= 0, mu <= 0, NaN scale factor, dim < 1).
	ErrBadParameter = errors.New("operator: invalid parameter")
)
