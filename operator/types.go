// Package operator: Shape, Property/Props and the capability interfaces.
package operator

import (
	"github.com/katalvlaran/lvlopt/ndarray"
)

// DomainAgnostic marks an unspecified domain size: the operator accepts any
// input dimension. Closed-form bound computation is disabled in this state
// and algorithms that need a concrete dimension fail with ErrCapability.
const DomainAgnostic = 0

// Shape is the (codomain, domain) size pair of an operator. Immutable after
// construction. Codomain is always ≥ 1; Domain is ≥ 1 or DomainAgnostic.
type Shape struct {
	// Codomain is the output dimension (1 for functionals).
	Codomain int

	// Domain is the input dimension, or DomainAgnostic.
	Domain int
}

// Agnostic reports whether the domain size is unspecified.
func (s Shape) Agnostic() bool { return s.Domain == DomainAgnostic }

// Property is one orthogonal capability tag.
type Property uint8

const (
	// Linear marks a linear operator (Adjoint is legal).
	Linear Property = 1 << iota

	// Differentiable marks a differentiable functional (Gradient is legal).
	Differentiable

	// Proximable marks a proximable functional (Prox is legal).
	Proximable

	// SelfAdjoint marks a linear operator equal to its adjoint.
	SelfAdjoint

	// PositiveDefinite marks a self-adjoint operator with positive spectrum.
	PositiveDefinite

	// Unitary marks a norm-preserving linear operator.
	Unitary

	// Quadratic marks a quadratic functional (Hessian is legal).
	Quadratic
)

// Props is a set of Property tags, fixed at construction and composed by
// set union/intersection when building composite operators.
type Props uint8

// NewProps builds a set from individual tags.
func NewProps(ps ...Property) Props {
	var out Props
	for _, p := range ps {
		out |= Props(p)
	}

	return out
}

// Has reports whether every given tag is in the set.
func (p Props) Has(ps ...Property) bool {
	for _, q := range ps {
		if p&Props(q) == 0 {
			return false
		}
	}

	return true
}

// Union returns the set union.
func (p Props) Union(q Props) Props { return p | q }

// Intersect returns the set intersection.
func (p Props) Intersect(q Props) Props { return p & q }

// With returns p with the given tags added.
func (p Props) With(ps ...Property) Props { return p | NewProps(ps...) }

// Without returns p with the given tags removed.
func (p Props) Without(ps ...Property) Props { return p &^ NewProps(ps...) }

// Operator is the base capability: a mapping between real vector spaces
// with known shape, property tags and a Lipschitz upper bound.
//
// Apply evaluates the mapping on a batched array: the innermost axis is the
// input dimension, every leading axis an independent instance. Functionals
// (Codomain == 1) return keep-dims (..., 1) results.
type Operator interface {
	Shape() Shape
	Props() Props

	// Lipschitz returns a valid upper bound on the Lipschitz constant
	// (+Inf when unknown), never an exact value.
	Lipschitz() float64

	Apply(x *ndarray.Array) (*ndarray.Array, error)
}

// LinOp is a linear operator: Adjoint is legal. For a self-adjoint
// operator Adjoint and Apply coincide.
type LinOp interface {
	Operator
	Adjoint(x *ndarray.Array) (*ndarray.Array, error)
}

// DiffFunc is a differentiable functional: Gradient is legal and
// DiffLipschitz bounds the gradient's Lipschitz constant.
type DiffFunc interface {
	Operator
	DiffLipschitz() float64
	Gradient(x *ndarray.Array) (*ndarray.Array, error)
}

// ProxFunc is a proximable functional. Prox returns
// argmin_z f(z) + 1/(2·tau)·‖z−x‖₂², batched per leading axis; tau > 0.
type ProxFunc interface {
	Operator
	Prox(x *ndarray.Array, tau float64) (*ndarray.Array, error)
}

// QuadFunc is a quadratic functional: its gradient is affine and Hessian
// returns the constant linear operator of second derivatives.
type QuadFunc interface {
	DiffFunc
	Hessian() (LinOp, error)
}

// AsLinOp gates op behind the Linear capability.
func AsLinOp(op Operator) (LinOp, error) {
	if op == nil {
		return nil, ErrNilOperator
	}
	if l, ok := op.(LinOp); ok && op.Props().Has(Linear) {
		return l, nil
	}

	return nil, ErrCapability
}

// AsDiffFunc gates op behind the Differentiable capability.
func AsDiffFunc(op Operator) (DiffFunc, error) {
	if op == nil {
		return nil, ErrNilOperator
	}
	if d, ok := op.(DiffFunc); ok && op.Props().Has(Differentiable) {
		return d, nil
	}

	return nil, ErrCapability
}

// AsProxFunc gates op behind the Proximable capability.
func AsProxFunc(op Operator) (ProxFunc, error) {
	if op == nil {
		return nil, ErrNilOperator
	}
	if p, ok := op.(ProxFunc); ok && op.Props().Has(Proximable) {
		return p, nil
	}

	return nil, ErrCapability
}

// AsQuadFunc gates op behind the Quadratic capability.
func AsQuadFunc(op Operator) (QuadFunc, error) {
	if op == nil {
		return nil, ErrNilOperator
	}
	if q, ok := op.(QuadFunc); ok && op.Props().Has(Quadratic) {
		return q, nil
	}

	return nil, ErrCapability
}

// ValidateIn enforces the shape contract of an apply-like call: the input's
// innermost dimension must match the operator's domain unless the operator
// is domain-agnostic.
func ValidateIn(s Shape, x *ndarray.Array) error {
	if x == nil {
		return ndarray.ErrNilArray
	}
	if !s.Agnostic() && x.Dim() != s.Domain {
		return ErrShapeMismatch
	}

	return nil
}
