// Package norms: ball indicator functionals and their projections.
package norms

import (
	"math"

	"github.com/katalvlaran/lvlopt/ndarray"
	"github.com/katalvlaran/lvlopt/operator"
	"github.com/katalvlaran/lvlopt/precision"
	"github.com/katalvlaran/lvlopt/rootfind"
)

// indicator maps a per-row membership predicate to {0, +Inf} keep-dims.
func indicator(be ndarray.Backend, x *ndarray.Array, inside func(b int) (bool, error)) (*ndarray.Array, error) {
	shape := x.Shape()
	shape[len(shape)-1] = 1
	out, err := ndarray.Zeros(x.Kind(), shape...)
	if err != nil {
		return nil, err
	}
	for b := 0; b < x.Batch(); b++ {
		in, err := inside(b)
		if err != nil {
			return nil, err
		}
		if !in {
			_ = out.Set(b, math.Inf(1))
		}
	}

	return out, nil
}

// ---------- ℓ1 ball ----------

// L1Ball is the indicator of {x : Σ|xᵢ| ≤ r}. Its prox, for any τ, is the
// Euclidean projection: soft-thresholding at the level μ* that lands the
// result exactly on the ball's boundary, found by Brent root-finding.
type L1Ball struct {
	dim    int
	radius float64
}

// NewL1Ball builds the ℓ1 ball of radius r > 0 on R^dim
// (operator.DomainAgnostic allowed).
func NewL1Ball(dim int, r float64) (*L1Ball, error) {
	if dim < 0 {
		return nil, ErrBadDim
	}
	if r <= 0 || math.IsNaN(r) {
		return nil, ErrBadRadius
	}

	return &L1Ball{dim: dim, radius: precision.Coerce(r)}, nil
}

// Radius reports the ball's radius.
func (f *L1Ball) Radius() float64 { return f.radius }

func (f *L1Ball) Shape() operator.Shape { return funcShape(f.dim) }
func (f *L1Ball) Props() operator.Props { return operator.NewProps(operator.Proximable) }
func (f *L1Ball) Lipschitz() float64    { return math.Inf(1) }

// Apply returns 0 per row inside the ball, +Inf outside.
func (f *L1Ball) Apply(x *ndarray.Array) (*ndarray.Array, error) {
	if err := operator.ValidateIn(f.Shape(), x); err != nil {
		return nil, err
	}
	x = boundary(x)
	be := ndarray.BackendFor(x)
	mass := be.Norm(x, ndarray.Ord1)

	return indicator(be, x, func(b int) (bool, error) {
		v, err := mass.At(b)
		return v <= f.radius, err
	})
}

// Prox projects each row onto the ball. Rows already inside pass through;
// the rest are soft-thresholded at the level μ* solving
// Σ max(|x| − μ, 0) = r, bracketed in (0, max|x|).
func (f *L1Ball) Prox(x *ndarray.Array, tau float64) (*ndarray.Array, error) {
	if err := checkProxIn(f.Shape(), x, tau); err != nil {
		return nil, err
	}
	x = boundary(x)
	be := ndarray.BackendFor(x)

	out, err := be.Zeros(x.Shape()...)
	if err != nil {
		return nil, err
	}
	for b := 0; b < x.Batch(); b++ {
		row, err := x.RowView(b)
		if err != nil {
			return nil, err
		}
		dst, err := out.RowView(b)
		if err != nil {
			return nil, err
		}

		mass := first(be.Norm(row, ndarray.Ord1))
		if mass <= f.radius {
			copy(dst.Data(), row.Data())
			continue
		}

		aux := func(mu float64) float64 {
			return first(be.Norm(be.SoftThreshold(row, mu), ndarray.Ord1)) - f.radius
		}
		mu, err := rootfind.Brent(aux, 0, first(be.MaxAbs(row)), nil)
		if err != nil {
			return nil, err
		}
		copy(dst.Data(), be.SoftThreshold(row, mu).Data())
	}
	precision.CoerceSlice(out.Data())

	return out, nil
}

// ---------- ℓ2 ball ----------

// L2Ball is the indicator of {x : ‖x‖₂ ≤ r}. Its prox rescales each row
// radially onto the sphere when outside.
type L2Ball struct {
	dim    int
	radius float64
}

// NewL2Ball builds the ℓ2 ball of radius r > 0 on R^dim
// (operator.DomainAgnostic allowed).
func NewL2Ball(dim int, r float64) (*L2Ball, error) {
	if dim < 0 {
		return nil, ErrBadDim
	}
	if r <= 0 || math.IsNaN(r) {
		return nil, ErrBadRadius
	}

	return &L2Ball{dim: dim, radius: precision.Coerce(r)}, nil
}

// Radius reports the ball's radius.
func (f *L2Ball) Radius() float64 { return f.radius }

func (f *L2Ball) Shape() operator.Shape { return funcShape(f.dim) }
func (f *L2Ball) Props() operator.Props { return operator.NewProps(operator.Proximable) }
func (f *L2Ball) Lipschitz() float64    { return math.Inf(1) }

// Apply returns 0 per row inside the ball, +Inf outside.
func (f *L2Ball) Apply(x *ndarray.Array) (*ndarray.Array, error) {
	if err := operator.ValidateIn(f.Shape(), x); err != nil {
		return nil, err
	}
	x = boundary(x)
	be := ndarray.BackendFor(x)
	n := be.Norm(x, ndarray.Ord2)

	return indicator(be, x, func(b int) (bool, error) {
		v, err := n.At(b)
		return v <= f.radius, err
	})
}

// Prox scales each row by r/max(‖x‖₂, r): the identity inside the ball,
// the radial projection outside, with no per-row branching.
func (f *L2Ball) Prox(x *ndarray.Array, tau float64) (*ndarray.Array, error) {
	if err := checkProxIn(f.Shape(), x, tau); err != nil {
		return nil, err
	}
	x = boundary(x)
	be := ndarray.BackendFor(x)

	n := be.Norm(x, ndarray.Ord2)
	floor := be.Shift(be.SoftThreshold(n, f.radius), f.radius) // max(‖x‖₂, r)
	rArr := be.Shift(be.Scale(n, 0), f.radius)
	alpha, err := be.Div(rArr, floor)
	if err != nil {
		return nil, err
	}
	zero, err := be.Zeros(x.Shape()...)
	if err != nil {
		return nil, err
	}

	return be.AddScaled(zero, alpha, x)
}

// ---------- ℓ∞ ball ----------

// LInfBall is the indicator of {x : max|xᵢ| ≤ r}. Its prox clips
// magnitudes to r elementwise.
type LInfBall struct {
	dim    int
	radius float64
}

// NewLInfBall builds the ℓ∞ ball of radius r > 0 on R^dim
// (operator.DomainAgnostic allowed).
func NewLInfBall(dim int, r float64) (*LInfBall, error) {
	if dim < 0 {
		return nil, ErrBadDim
	}
	if r <= 0 || math.IsNaN(r) {
		return nil, ErrBadRadius
	}

	return &LInfBall{dim: dim, radius: precision.Coerce(r)}, nil
}

// Radius reports the ball's radius.
func (f *LInfBall) Radius() float64 { return f.radius }

func (f *LInfBall) Shape() operator.Shape { return funcShape(f.dim) }
func (f *LInfBall) Props() operator.Props { return operator.NewProps(operator.Proximable) }
func (f *LInfBall) Lipschitz() float64    { return math.Inf(1) }

// Apply returns 0 per row inside the ball, +Inf outside.
func (f *LInfBall) Apply(x *ndarray.Array) (*ndarray.Array, error) {
	if err := operator.ValidateIn(f.Shape(), x); err != nil {
		return nil, err
	}
	x = boundary(x)
	be := ndarray.BackendFor(x)
	m := be.MaxAbs(x)

	return indicator(be, x, func(b int) (bool, error) {
		v, err := m.At(b)
		return v <= f.radius, err
	})
}

// Prox clips each entry's magnitude to r, preserving sign.
func (f *LInfBall) Prox(x *ndarray.Array, tau float64) (*ndarray.Array, error) {
	if err := checkProxIn(f.Shape(), x, tau); err != nil {
		return nil, err
	}
	x = boundary(x)
	out := ndarray.BackendFor(x).ClampAbs(x, f.radius)
	precision.CoerceSlice(out.Data())

	return out, nil
}
