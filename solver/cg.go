// Package solver: the Conjugate Gradient method.
package solver

import (
	"github.com/katalvlaran/lvlopt/ndarray"
	"github.com/katalvlaran/lvlopt/operator"
	"github.com/katalvlaran/lvlopt/precision"
)

// defaultResidualEps is the default explicit-residual threshold for CG.
const defaultResidualEps = 1e-4

// CG solves Ax = b for a square positive-definite linear operator A with
// the Conjugate Gradient recurrence. Batched right-hand sides run one
// independent system per row; a row that converges early freezes while the
// rest keep iterating.
type CG struct {
	Base

	a operator.LinOp
}

// NewCG validates that op is a positive-definite square linear operator
// (operator.ErrCapability otherwise).
func NewCG(op operator.Operator) (*CG, error) {
	if op == nil {
		return nil, operator.ErrNilOperator
	}
	if !op.Props().Has(operator.PositiveDefinite) {
		return nil, operator.ErrCapability
	}
	a, err := operator.AsLinOp(op)
	if err != nil {
		return nil, err
	}
	s := op.Shape()
	if s.Agnostic() || s.Codomain != s.Domain {
		return nil, operator.ErrShapeMismatch
	}

	return &CG{a: a}, nil
}

// ratio divides two keep-dims reductions per row, mapping 0/0 to 0: a
// converged row has a zero search direction and must freeze, not NaN out.
func ratio(be ndarray.Backend, num, den *ndarray.Array) *ndarray.Array {
	out := be.Copy(num)
	nd, dd := out.Data(), den.Data()
	for i := range nd {
		if dd[i] == 0 {
			nd[i] = 0
			continue
		}
		nd[i] /= dd[i]
	}

	return out
}

// Fit runs CG on right-hand side b. The default stopping criterion is the
// explicit residual ‖b − Ax‖₂ < 1e-4 on every batch row, recomputed from
// scratch rather than trusting the recurrence residual's drift.
func (s *CG) Fit(b *ndarray.Array, opts ...Option) error {
	if b == nil {
		return ndarray.ErrNilArray
	}
	if b.Dim() != s.a.Shape().Codomain {
		return ErrBadRHS
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return err
	}

	be := ndarray.BackendFor(b)
	rhs := b.Clone()
	precision.CoerceSlice(rhs.Data())

	var (
		x   *ndarray.Array
		err error
	)
	if o.X0 != nil {
		if !ndarray.SameShape(o.X0, rhs) {
			return ErrBadRHS
		}
		x = o.X0.Clone()
		precision.CoerceSlice(x.Data())
	} else if x, err = be.Zeros(rhs.Shape()...); err != nil {
		return err
	}

	if o.Stop == nil {
		c := NewAbsError("x", defaultResidualEps)
		c.Transform = func(cur *ndarray.Array) (*ndarray.Array, error) {
			ax, aerr := s.a.Apply(cur)
			if aerr != nil {
				return nil, aerr
			}

			return ndarray.BackendFor(cur).Sub(rhs, ax)
		}
		o.Stop = c
	}

	ax, err := s.a.Apply(x)
	if err != nil {
		return err
	}
	r, err := be.Sub(rhs, ax)
	if err != nil {
		return err
	}
	rs, err := be.Dot(r, r)
	if err != nil {
		return err
	}

	state := State{"x": x, "residual": r, "direction": r.Clone()}

	step := func(int) error {
		ap, serr := s.a.Apply(state["direction"])
		if serr != nil {
			return serr
		}
		pap, serr := be.Dot(state["direction"], ap)
		if serr != nil {
			return serr
		}
		alpha := ratio(be, rs, pap)

		xNext, serr := be.AddScaled(state["x"], alpha, state["direction"])
		if serr != nil {
			return serr
		}
		rNext, serr := be.AddScaled(state["residual"], be.Scale(alpha, -1), ap)
		if serr != nil {
			return serr
		}
		rsNext, serr := be.Dot(rNext, rNext)
		if serr != nil {
			return serr
		}
		beta := ratio(be, rsNext, rs)
		pNext, serr := be.AddScaled(rNext, beta, state["direction"])
		if serr != nil {
			return serr
		}

		state["x"], state["residual"], state["direction"] = xNext, rNext, pNext
		rs = rsNext

		return nil
	}

	return s.fit(o, state, step)
}

// Solution returns a copy of the current iterate x.
func (s *CG) Solution() (*ndarray.Array, error) { return s.Var("x") }
