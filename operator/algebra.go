// Package operator: composition algebra.
// Sum, scaling, composition, adjoint and Gram constructors. Each composite
// owns references to its operands (shared, not copied) and computes its own
// bounds once, here, from the operands' bounds:
//
//	lip(A+B) ≤ lip(A) + lip(B)
//	lip(c·A)  = |c|·lip(A)
//	lip(A∘B) ≤ lip(A)·lip(B)
package operator

import (
	"math"

	"github.com/katalvlaran/lvlopt/ndarray"
)

var inf = math.Inf(1)

// addBound combines Lipschitz bounds of a sum; +Inf is absorbing.
func addBound(a, b float64) float64 { return a + b }

// mulBound combines Lipschitz bounds of a composition or scaling.
// Zero annihilates even against +Inf: a zero-Lipschitz factor maps
// everything to a constant, so the composite is constant too.
func mulBound(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}

	return a * b
}

// sumShape resolves the shape of A+B: equal codomains; a concrete domain
// wins over an agnostic one, two concrete domains must agree.
func sumShape(a, b Shape) (Shape, error) {
	if a.Codomain != b.Codomain {
		return Shape{}, ErrShapeMismatch
	}
	switch {
	case a.Agnostic():
		return Shape{Codomain: a.Codomain, Domain: b.Domain}, nil
	case b.Agnostic() || a.Domain == b.Domain:
		return a, nil
	default:
		return Shape{}, ErrShapeMismatch
	}
}

// Add builds the sum A+B with apply = apply_A + apply_B and
// lip ≤ lip_A + lip_B.
//
// Capability propagation (set intersection):
//   - Linear, SelfAdjoint, PositiveDefinite survive when both operands
//     carry them; the adjoint is the sum of adjoints.
//   - Differentiable survives pairwise; gradient is the sum of gradients,
//     diff-Lipschitz bounds add.
//   - Quadratic survives pairwise; the Hessian is the sum of Hessians.
//   - Proximable does NOT survive (no closed form for a sum's prox).
func Add(a, b Operator) (*Generic, error) {
	if a == nil || b == nil {
		return nil, ErrNilOperator
	}
	shape, err := sumShape(a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}

	props := a.Props().Intersect(b.Props()).Without(Unitary, Proximable)
	la, ea := AsLinOp(a)
	lb, eb := AsLinOp(b)
	if ea != nil || eb != nil {
		props = props.Without(Linear, SelfAdjoint, PositiveDefinite)
	}
	da, ea := AsDiffFunc(a)
	db, eb := AsDiffFunc(b)
	if ea != nil || eb != nil {
		props = props.Without(Differentiable, Quadratic)
	}
	qa, ea := AsQuadFunc(a)
	qb, eb := AsQuadFunc(b)
	if ea != nil || eb != nil {
		props = props.Without(Quadratic)
	}

	g := &Generic{
		shape: shape,
		props: props,
		lip:   addBound(a.Lipschitz(), b.Lipschitz()),
		dlip:  inf,
		apply: func(x *ndarray.Array) (*ndarray.Array, error) {
			ya, err := a.Apply(x)
			if err != nil {
				return nil, err
			}
			yb, err := b.Apply(x)
			if err != nil {
				return nil, err
			}

			return ndarray.BackendFor(x).Add(ya, yb)
		},
	}

	if props.Has(Linear) {
		g.adjoint = func(x *ndarray.Array) (*ndarray.Array, error) {
			ya, err := la.Adjoint(x)
			if err != nil {
				return nil, err
			}
			yb, err := lb.Adjoint(x)
			if err != nil {
				return nil, err
			}

			return ndarray.BackendFor(x).Add(ya, yb)
		}
	}

	if props.Has(Differentiable) {
		g.dlip = addBound(da.DiffLipschitz(), db.DiffLipschitz())
		g.grad = func(x *ndarray.Array) (*ndarray.Array, error) {
			ya, err := da.Gradient(x)
			if err != nil {
				return nil, err
			}
			yb, err := db.Gradient(x)
			if err != nil {
				return nil, err
			}

			return ndarray.BackendFor(x).Add(ya, yb)
		}
	}

	if props.Has(Quadratic) {
		g.hess = func() (LinOp, error) {
			ha, err := qa.Hessian()
			if err != nil {
				return nil, err
			}
			hb, err := qb.Hessian()
			if err != nil {
				return nil, err
			}
			sum, err := Add(ha, hb)
			if err != nil {
				return nil, err
			}

			return AsLinOp(sum)
		}
	}

	return g, nil
}

// Scale builds c·A with lip = |c|·lip(A).
//
// Capability propagation:
//   - Linear and SelfAdjoint survive; PositiveDefinite only for c > 0;
//     Unitary only for |c| == 1.
//   - Differentiable survives; dlip scales by |c|.
//   - Quadratic survives; the Hessian scales by c.
//   - Proximable survives only for c > 0, via prox_{c·f}(x,τ) = prox_f(x, cτ).
func Scale(a Operator, c float64) (*Generic, error) {
	if a == nil {
		return nil, ErrNilOperator
	}
	if math.IsNaN(c) {
		return nil, ErrBadParameter
	}

	props := a.Props()
	if c <= 0 {
		props = props.Without(PositiveDefinite, Proximable)
	}
	if math.Abs(c) != 1 {
		props = props.Without(Unitary)
	}
	la, el := AsLinOp(a)
	if el != nil {
		props = props.Without(Linear, SelfAdjoint, PositiveDefinite, Unitary)
	}
	da, ed := AsDiffFunc(a)
	if ed != nil {
		props = props.Without(Differentiable, Quadratic)
	}
	pa, ep := AsProxFunc(a)
	if ep != nil {
		props = props.Without(Proximable)
	}
	qa, eq := AsQuadFunc(a)
	if eq != nil {
		props = props.Without(Quadratic)
	}

	g := &Generic{
		shape: a.Shape(),
		props: props,
		lip:   mulBound(math.Abs(c), a.Lipschitz()),
		dlip:  inf,
		apply: func(x *ndarray.Array) (*ndarray.Array, error) {
			y, err := a.Apply(x)
			if err != nil {
				return nil, err
			}

			return ndarray.BackendFor(x).Scale(y, c), nil
		},
	}

	if props.Has(Linear) {
		g.adjoint = func(x *ndarray.Array) (*ndarray.Array, error) {
			y, err := la.Adjoint(x)
			if err != nil {
				return nil, err
			}

			return ndarray.BackendFor(x).Scale(y, c), nil
		}
	}

	if props.Has(Differentiable) {
		g.dlip = mulBound(math.Abs(c), da.DiffLipschitz())
		g.grad = func(x *ndarray.Array) (*ndarray.Array, error) {
			y, err := da.Gradient(x)
			if err != nil {
				return nil, err
			}

			return ndarray.BackendFor(x).Scale(y, c), nil
		}
	}

	if props.Has(Proximable) {
		g.prox = func(x *ndarray.Array, tau float64) (*ndarray.Array, error) {
			return pa.Prox(x, tau*c)
		}
	}

	if props.Has(Quadratic) {
		g.hess = func() (LinOp, error) {
			h, err := qa.Hessian()
			if err != nil {
				return nil, err
			}
			sc, err := Scale(h, c)
			if err != nil {
				return nil, err
			}

			return AsLinOp(sc)
		}
	}

	return g, nil
}

// Compose builds A∘B with lip ≤ lip(A)·lip(B). Legal only when B's
// codomain matches A's domain (a domain-agnostic A accepts any B).
//
// Capability propagation:
//   - Linear survives pairwise; adjoint is Bᵀ∘Aᵀ.
//   - When A is a differentiable functional and B is linear, the chain
//     rule gives gradient(x) = Bᵀ·∇A(Bx) and dlip ≤ dlip(A)·lip(B)².
func Compose(a, b Operator) (*Generic, error) {
	if a == nil || b == nil {
		return nil, ErrNilOperator
	}
	if !a.Shape().Agnostic() && a.Shape().Domain != b.Shape().Codomain {
		return nil, ErrShapeMismatch
	}

	shape := Shape{Codomain: a.Shape().Codomain, Domain: b.Shape().Domain}

	var props Props
	g := &Generic{
		shape: shape,
		lip:   mulBound(a.Lipschitz(), b.Lipschitz()),
		dlip:  inf,
		apply: func(x *ndarray.Array) (*ndarray.Array, error) {
			y, err := b.Apply(x)
			if err != nil {
				return nil, err
			}

			return a.Apply(y)
		},
	}

	if a.Props().Has(Linear) && b.Props().Has(Linear) {
		props = props.With(Linear)
		la, _ := AsLinOp(a)
		lb, _ := AsLinOp(b)
		g.adjoint = func(x *ndarray.Array) (*ndarray.Array, error) {
			y, err := la.Adjoint(x)
			if err != nil {
				return nil, err
			}

			return lb.Adjoint(y)
		}
	}

	if a.Props().Has(Differentiable) && b.Props().Has(Linear) {
		props = props.With(Differentiable)
		da, _ := AsDiffFunc(a)
		lb, _ := AsLinOp(b)
		g.dlip = mulBound(da.DiffLipschitz(), mulBound(b.Lipschitz(), b.Lipschitz()))
		g.grad = func(x *ndarray.Array) (*ndarray.Array, error) {
			bx, err := b.Apply(x)
			if err != nil {
				return nil, err
			}
			gy, err := da.Gradient(bx)
			if err != nil {
				return nil, err
			}

			return lb.Adjoint(gy)
		}
	}

	g.props = props

	return g, nil
}

// AdjointOf wraps a linear operator into its adjoint, swapping Apply and
// Adjoint. On a self-adjoint operator this is the identity wrapper.
// The operand must have a concrete domain (the swapped shape needs it).
func AdjointOf(op Operator) (LinOp, error) {
	l, err := AsLinOp(op)
	if err != nil {
		return nil, err
	}
	if op.Props().Has(SelfAdjoint) {
		return l, nil
	}
	if op.Shape().Agnostic() {
		return nil, ErrCapability
	}

	return &Generic{
		shape:   Shape{Codomain: op.Shape().Domain, Domain: op.Shape().Codomain},
		props:   op.Props(),
		lip:     op.Lipschitz(),
		dlip:    inf,
		apply:   l.Adjoint,
		adjoint: l.Apply,
	}, nil
}

// Gram builds Aᵀ∘A for a linear operator A: a self-adjoint,
// positive-(semi)definite operator on A's domain, the workhorse of
// normal-equation least-squares solves. lip ≤ lip(A)².
// The operand must have a concrete domain.
func Gram(op Operator) (*Generic, error) {
	l, err := AsLinOp(op)
	if err != nil {
		return nil, err
	}
	if op.Shape().Agnostic() {
		return nil, ErrCapability
	}

	d := op.Shape().Domain
	apply := func(x *ndarray.Array) (*ndarray.Array, error) {
		y, err := l.Apply(x)
		if err != nil {
			return nil, err
		}

		return l.Adjoint(y)
	}

	return &Generic{
		shape:   Shape{Codomain: d, Domain: d},
		props:   NewProps(Linear, SelfAdjoint, PositiveDefinite),
		lip:     mulBound(op.Lipschitz(), op.Lipschitz()),
		dlip:    inf,
		apply:   apply,
		adjoint: apply,
	}, nil
}

// Hessian returns the constant second-derivative operator of a quadratic
// functional. ErrCapability when op is not quadratic or is domain-agnostic
// (a concrete dimension is required to build the operator).
func Hessian(op Operator) (LinOp, error) {
	q, err := AsQuadFunc(op)
	if err != nil {
		return nil, err
	}

	return q.Hessian()
}
