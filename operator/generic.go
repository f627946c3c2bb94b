// Package operator: the composite carrier.
// Every algebra constructor returns a *Generic: a capability-gated operator
// whose behaviors are closures over its operands (shared, not copied) and
// whose bounds were computed once at construction.
package operator

import (
	"github.com/katalvlaran/lvlopt/ndarray"
)

// Generic is the concrete operator produced by the composition algebra.
// Its capability tags decide which behaviors are populated; calling an
// operation whose tag is absent returns ErrCapability.
type Generic struct {
	shape Shape
	props Props
	lip   float64
	dlip  float64

	apply   func(*ndarray.Array) (*ndarray.Array, error)
	adjoint func(*ndarray.Array) (*ndarray.Array, error)
	grad    func(*ndarray.Array) (*ndarray.Array, error)
	prox    func(*ndarray.Array, float64) (*ndarray.Array, error)
	hess    func() (LinOp, error)
}

// Shape reports the composite's (codomain, domain) pair.
func (g *Generic) Shape() Shape { return g.shape }

// Props reports the composed capability set.
func (g *Generic) Props() Props { return g.props }

// Lipschitz reports the bound computed at construction.
func (g *Generic) Lipschitz() float64 { return g.lip }

// DiffLipschitz reports the gradient's Lipschitz bound.
func (g *Generic) DiffLipschitz() float64 { return g.dlip }

// Apply evaluates the composite mapping.
func (g *Generic) Apply(x *ndarray.Array) (*ndarray.Array, error) {
	if err := ValidateIn(g.shape, x); err != nil {
		return nil, err
	}

	return g.apply(x)
}

// Adjoint evaluates the adjoint mapping; Linear capability required.
func (g *Generic) Adjoint(x *ndarray.Array) (*ndarray.Array, error) {
	if g.adjoint == nil || !g.props.Has(Linear) {
		return nil, ErrCapability
	}

	return g.adjoint(x)
}

// Gradient evaluates the gradient; Differentiable capability required.
func (g *Generic) Gradient(x *ndarray.Array) (*ndarray.Array, error) {
	if g.grad == nil || !g.props.Has(Differentiable) {
		return nil, ErrCapability
	}
	if err := ValidateIn(g.shape, x); err != nil {
		return nil, err
	}

	return g.grad(x)
}

// Prox evaluates the proximal operator; Proximable capability and tau > 0
// required.
func (g *Generic) Prox(x *ndarray.Array, tau float64) (*ndarray.Array, error) {
	if g.prox == nil || !g.props.Has(Proximable) {
		return nil, ErrCapability
	}
	if tau <= 0 {
		return nil, ErrBadParameter
	}
	if err := ValidateIn(g.shape, x); err != nil {
		return nil, err
	}

	return g.prox(x, tau)
}

// Hessian returns the constant second-derivative operator; Quadratic
// capability required.
func (g *Generic) Hessian() (LinOp, error) {
	if g.hess == nil || !g.props.Has(Quadratic) {
		return nil, ErrCapability
	}

	return g.hess()
}

// diffLipschitzOf reads the gradient bound of op, +Inf when op is not
// differentiable (conservative default).
func diffLipschitzOf(op Operator) float64 {
	if d, err := AsDiffFunc(op); err == nil {
		return d.DiffLipschitz()
	}

	return inf
}
