// Package norms: sentinel errors and shared helpers.
package norms

import (
	"errors"
	"math"

	"github.com/katalvlaran/lvlopt/ndarray"
	"github.com/katalvlaran/lvlopt/operator"
	"github.com/katalvlaran/lvlopt/precision"
)

var (
	// ErrBadDim is returned when a dimension is negative (use
	// operator.DomainAgnostic for an unspecified one).
	ErrBadDim = errors.New("norms: invalid dimension")

	// ErrBadRadius is returned when a ball radius is not strictly positive.
	ErrBadRadius = errors.New("norms: radius must be > 0")

	// ErrBadTau is returned when a prox step size is not strictly positive.
	ErrBadTau = errors.New("norms: tau must be > 0")
)

// funcShape is the shape of a functional on R^dim.
func funcShape(dim int) operator.Shape {
	return operator.Shape{Codomain: 1, Domain: dim}
}

// sqrtDimOrInf is the closed-form ℓ2 Lipschitz bound √dim, degraded to
// +Inf for a domain-agnostic functional.
func sqrtDimOrInf(dim int) float64 {
	if dim == operator.DomainAgnostic {
		return math.Inf(1)
	}

	return math.Sqrt(float64(dim))
}

// boundary coerces x through the working precision, copying only when the
// width actually narrows.
func boundary(x *ndarray.Array) *ndarray.Array {
	if precision.Current() == precision.Double {
		return x
	}
	out := x.Clone()
	precision.CoerceSlice(out.Data())

	return out
}

// checkProxIn validates the common prox contract.
func checkProxIn(s operator.Shape, x *ndarray.Array, tau float64) error {
	if tau <= 0 || math.IsNaN(tau) {
		return ErrBadTau
	}

	return operator.ValidateIn(s, x)
}

// AsLoss anchors a functional at data d: the returned operator evaluates
// f(x − d), preserving f's bounds and prox (see operator.ShiftLoss).
func AsLoss(op operator.Operator, d *ndarray.Array) (*operator.Generic, error) {
	return operator.ShiftLoss(op, d)
}

// relu returns max(v, 0) elementwise using (v + |v|)/2, staying on the
// backend interface.
func relu(be ndarray.Backend, v *ndarray.Array) (*ndarray.Array, error) {
	s, err := be.Add(v, be.Abs(v))
	if err != nil {
		return nil, err
	}

	return be.Scale(s, 0.5), nil
}
