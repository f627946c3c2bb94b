// Package operator: Moreau-envelope smoothing and loss shifting.
package operator

import (
	"github.com/katalvlaran/lvlopt/ndarray"
	"github.com/katalvlaran/lvlopt/precision"
)

// MoreauEnvelope smooths a proximable functional f with parameter mu > 0
// into a differentiable functional g:
//
//	g(x)  = f(prox_f(x, mu)) + 1/(2·mu)·‖prox_f(x, mu) − x‖₂²
//	∇g(x) = (x − prox_f(x, mu)) / mu
//
// with diff-Lipschitz bound exactly 1/mu. This is how non-smooth
// functionals gain a well-defined gradient for gradient-based solvers.
func MoreauEnvelope(op Operator, mu float64) (*Generic, error) {
	f, err := AsProxFunc(op)
	if err != nil {
		return nil, err
	}
	if mu <= 0 {
		return nil, ErrBadParameter
	}
	mu = precision.Coerce(mu)

	envelope := func(x *ndarray.Array) (*ndarray.Array, error) {
		be := ndarray.BackendFor(x)
		p, err := f.Prox(x, mu)
		if err != nil {
			return nil, err
		}
		fp, err := f.Apply(p)
		if err != nil {
			return nil, err
		}
		diff, err := be.Sub(p, x)
		if err != nil {
			return nil, err
		}
		n := be.Norm(diff, ndarray.Ord2)
		sq, err := be.Mul(n, n)
		if err != nil {
			return nil, err
		}

		return be.Add(fp, be.Scale(sq, 0.5/mu))
	}

	gradient := func(x *ndarray.Array) (*ndarray.Array, error) {
		be := ndarray.BackendFor(x)
		p, err := f.Prox(x, mu)
		if err != nil {
			return nil, err
		}
		diff, err := be.Sub(x, p)
		if err != nil {
			return nil, err
		}

		return be.Scale(diff, 1/mu), nil
	}

	return &Generic{
		shape: op.Shape(),
		props: NewProps(Differentiable),
		lip:   op.Lipschitz(),
		dlip:  1 / mu,
		apply: envelope,
		grad:  gradient,
	}, nil
}

// ShiftLoss builds h(x) = f(x − d) for fixed data d: the loss of f
// anchored at d. Lipschitz bounds are preserved — only the evaluation
// point shifts. d must be a single instance (1-D); it broadcasts across
// batch rows on every call.
//
// Capability propagation: Differentiable, Proximable and Quadratic
// survive (∇h(x) = ∇f(x−d); prox_h(x,τ) = d + prox_f(x−d, τ); the
// Hessian is unchanged). Linearity does not (h is affine).
func ShiftLoss(op Operator, d *ndarray.Array) (*Generic, error) {
	if op == nil {
		return nil, ErrNilOperator
	}
	if d == nil {
		return nil, ndarray.ErrNilArray
	}
	if d.Batch() != 1 {
		return nil, ErrShapeMismatch
	}
	if !op.Shape().Agnostic() && d.Dim() != op.Shape().Domain {
		return nil, ErrShapeMismatch
	}

	data := d.Clone()
	precision.CoerceSlice(data.Data())
	shape := Shape{Codomain: op.Shape().Codomain, Domain: data.Dim()}

	props := op.Props().Without(Linear, SelfAdjoint, PositiveDefinite, Unitary)
	df, ed := AsDiffFunc(op)
	if ed != nil {
		props = props.Without(Differentiable, Quadratic)
	}
	pf, ep := AsProxFunc(op)
	if ep != nil {
		props = props.Without(Proximable)
	}
	qf, eq := AsQuadFunc(op)
	if eq != nil {
		props = props.Without(Quadratic)
	}

	// shifted returns x − d with d broadcast across batch rows.
	shifted := func(x *ndarray.Array) (*ndarray.Array, error) {
		dd, err := tile(data, x)
		if err != nil {
			return nil, err
		}

		return ndarray.BackendFor(x).Sub(x, dd)
	}

	g := &Generic{
		shape: shape,
		props: props,
		lip:   op.Lipschitz(),
		dlip:  diffLipschitzOf(op),
		apply: func(x *ndarray.Array) (*ndarray.Array, error) {
			s, err := shifted(x)
			if err != nil {
				return nil, err
			}

			return op.Apply(s)
		},
	}

	if props.Has(Differentiable) {
		g.grad = func(x *ndarray.Array) (*ndarray.Array, error) {
			s, err := shifted(x)
			if err != nil {
				return nil, err
			}

			return df.Gradient(s)
		}
	}

	if props.Has(Proximable) {
		g.prox = func(x *ndarray.Array, tau float64) (*ndarray.Array, error) {
			s, err := shifted(x)
			if err != nil {
				return nil, err
			}
			p, err := pf.Prox(s, tau)
			if err != nil {
				return nil, err
			}
			dd, err := tile(data, x)
			if err != nil {
				return nil, err
			}

			return ndarray.BackendFor(x).Add(p, dd)
		}
	}

	if props.Has(Quadratic) {
		g.hess = qf.Hessian
	}

	return g, nil
}
