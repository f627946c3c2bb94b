// Package norms: the ℓ1, ℓ2, squared-ℓ2 and ℓ∞ norm functionals.
//
// Each functional implements the operator capability interfaces it is
// entitled to; the prox contract is always
//
//	prox_f(x, τ) = argmin_z f(z) + 1/(2τ)·‖z−x‖₂²
//
// realized by a closed form or a bracketed root-finding procedure.
package norms

import (
	"math"

	"github.com/katalvlaran/lvlopt/ndarray"
	"github.com/katalvlaran/lvlopt/operator"
	"github.com/katalvlaran/lvlopt/precision"
	"github.com/katalvlaran/lvlopt/rootfind"
)

// first reads element 0 of a reduced (length ≥ 1) array.
func first(a *ndarray.Array) float64 {
	v, _ := a.At(0)
	return v
}

// ---------- ℓ1 norm ----------

// L1Norm is f(x) = Σ|xᵢ| with prox = soft-thresholding at τ.
// Lipschitz bound √dim (+Inf when domain-agnostic).
type L1Norm struct {
	dim int
	lip float64
}

// NewL1Norm builds the ℓ1 norm on R^dim (operator.DomainAgnostic allowed).
func NewL1Norm(dim int) (*L1Norm, error) {
	if dim < 0 {
		return nil, ErrBadDim
	}

	return &L1Norm{dim: dim, lip: sqrtDimOrInf(dim)}, nil
}

func (f *L1Norm) Shape() operator.Shape { return funcShape(f.dim) }
func (f *L1Norm) Props() operator.Props { return operator.NewProps(operator.Proximable) }
func (f *L1Norm) Lipschitz() float64    { return f.lip }

// Apply returns Σ|xᵢ| per batch row.
func (f *L1Norm) Apply(x *ndarray.Array) (*ndarray.Array, error) {
	if err := operator.ValidateIn(f.Shape(), x); err != nil {
		return nil, err
	}
	x = boundary(x)

	return ndarray.BackendFor(x).Norm(x, ndarray.Ord1), nil
}

// Prox soft-thresholds: sign(x)·max(0, |x|−τ).
func (f *L1Norm) Prox(x *ndarray.Array, tau float64) (*ndarray.Array, error) {
	if err := checkProxIn(f.Shape(), x, tau); err != nil {
		return nil, err
	}
	x, tau = boundary(x), precision.Coerce(tau)

	return ndarray.BackendFor(x).SoftThreshold(x, tau), nil
}

// ---------- ℓ2 norm ----------

// L2Norm is f(x) = ‖x‖₂ with prox shrinking toward zero by the factor
// 1 − τ/max(‖x‖₂, τ). Lipschitz bound 1.
type L2Norm struct {
	dim int
}

// NewL2Norm builds the ℓ2 norm on R^dim (operator.DomainAgnostic allowed).
func NewL2Norm(dim int) (*L2Norm, error) {
	if dim < 0 {
		return nil, ErrBadDim
	}

	return &L2Norm{dim: dim}, nil
}

func (f *L2Norm) Shape() operator.Shape { return funcShape(f.dim) }
func (f *L2Norm) Props() operator.Props { return operator.NewProps(operator.Proximable) }
func (f *L2Norm) Lipschitz() float64    { return 1 }

// Apply returns ‖x‖₂ per batch row.
func (f *L2Norm) Apply(x *ndarray.Array) (*ndarray.Array, error) {
	if err := operator.ValidateIn(f.Shape(), x); err != nil {
		return nil, err
	}
	x = boundary(x)

	return ndarray.BackendFor(x).Norm(x, ndarray.Ord2), nil
}

// Prox shrinks each row toward zero: a zero row (norm ≤ τ collapses to
// factor 0 ≤ · < 1) never divides by zero thanks to the max(‖x‖₂, τ) floor.
func (f *L2Norm) Prox(x *ndarray.Array, tau float64) (*ndarray.Array, error) {
	if err := checkProxIn(f.Shape(), x, tau); err != nil {
		return nil, err
	}
	x, tau = boundary(x), precision.Coerce(tau)
	be := ndarray.BackendFor(x)

	n := be.Norm(x, ndarray.Ord2)
	// max(‖x‖₂, τ) == max(0, ‖x‖₂−τ) + τ, keeping everything on the backend.
	floor := be.Shift(be.SoftThreshold(n, tau), tau)
	tauArr := be.Shift(be.Scale(n, 0), tau)
	ratio, err := be.Div(tauArr, floor)
	if err != nil {
		return nil, err
	}
	alpha := be.Shift(be.Scale(ratio, -1), 1) // 1 − τ/max(‖x‖₂, τ), per row

	zero, err := be.Zeros(x.Shape()...)
	if err != nil {
		return nil, err
	}

	return be.AddScaled(zero, alpha, x)
}

// ---------- squared ℓ2 norm ----------

// SquaredL2Norm is f(x) = ‖x‖₂², a quadratic functional: gradient 2x,
// prox x/(2τ+1), Hessian the identity operator. diff-Lipschitz bound 2.
type SquaredL2Norm struct {
	dim int
}

// NewSquaredL2Norm builds ‖·‖₂² on R^dim (operator.DomainAgnostic allowed).
func NewSquaredL2Norm(dim int) (*SquaredL2Norm, error) {
	if dim < 0 {
		return nil, ErrBadDim
	}

	return &SquaredL2Norm{dim: dim}, nil
}

func (f *SquaredL2Norm) Shape() operator.Shape { return funcShape(f.dim) }

func (f *SquaredL2Norm) Props() operator.Props {
	return operator.NewProps(operator.Differentiable, operator.Proximable, operator.Quadratic)
}

func (f *SquaredL2Norm) Lipschitz() float64     { return math.Inf(1) }
func (f *SquaredL2Norm) DiffLipschitz() float64 { return 2 }

// Apply returns ‖x‖₂² per batch row.
func (f *SquaredL2Norm) Apply(x *ndarray.Array) (*ndarray.Array, error) {
	if err := operator.ValidateIn(f.Shape(), x); err != nil {
		return nil, err
	}
	x = boundary(x)
	be := ndarray.BackendFor(x)
	n := be.Norm(x, ndarray.Ord2)

	return be.Mul(n, n)
}

// Gradient returns 2x.
func (f *SquaredL2Norm) Gradient(x *ndarray.Array) (*ndarray.Array, error) {
	if err := operator.ValidateIn(f.Shape(), x); err != nil {
		return nil, err
	}
	x = boundary(x)

	return ndarray.BackendFor(x).Scale(x, 2), nil
}

// Prox is the closed form x/(2τ+1).
func (f *SquaredL2Norm) Prox(x *ndarray.Array, tau float64) (*ndarray.Array, error) {
	if err := checkProxIn(f.Shape(), x, tau); err != nil {
		return nil, err
	}
	x, tau = boundary(x), precision.Coerce(tau)

	return ndarray.BackendFor(x).Scale(x, 1/(2*tau+1)), nil
}

// Hessian returns the identity operator on the functional's domain.
// A concrete dimension is required to build it: domain-agnostic
// functionals fail with operator.ErrCapability.
func (f *SquaredL2Norm) Hessian() (operator.LinOp, error) {
	if f.dim == operator.DomainAgnostic {
		return nil, operator.ErrCapability
	}

	return operator.Identity(f.dim)
}

// ---------- ℓ∞ norm ----------

// LInfNorm is f(x) = max|xᵢ|. Its prox is found by bisection root-finding
// on Σmax(|x|−μ, 0) − τ = 0 over [0, max|x|], then clipping magnitudes at
// the root. Lipschitz bound √dim (+Inf when domain-agnostic).
type LInfNorm struct {
	dim int
	lip float64
}

// NewLInfNorm builds the ℓ∞ norm on R^dim (operator.DomainAgnostic allowed).
func NewLInfNorm(dim int) (*LInfNorm, error) {
	if dim < 0 {
		return nil, ErrBadDim
	}

	return &LInfNorm{dim: dim, lip: sqrtDimOrInf(dim)}, nil
}

func (f *LInfNorm) Shape() operator.Shape { return funcShape(f.dim) }
func (f *LInfNorm) Props() operator.Props { return operator.NewProps(operator.Proximable) }
func (f *LInfNorm) Lipschitz() float64    { return f.lip }

// Apply returns max|xᵢ| per batch row.
func (f *LInfNorm) Apply(x *ndarray.Array) (*ndarray.Array, error) {
	if err := operator.ValidateIn(f.Shape(), x); err != nil {
		return nil, err
	}
	x = boundary(x)

	return ndarray.BackendFor(x).MaxAbs(x), nil
}

// Prox solves each batch row independently: a zero row passes through, a
// row whose total mass is at most τ collapses to zero, otherwise the clip
// level μ* is bracketed in (0, max|x|) by convexity and found with Brent.
func (f *LInfNorm) Prox(x *ndarray.Array, tau float64) (*ndarray.Array, error) {
	if err := checkProxIn(f.Shape(), x, tau); err != nil {
		return nil, err
	}
	x, tau = boundary(x), precision.Coerce(tau)
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

		m := first(be.MaxAbs(row))
		if m == 0 {
			copy(dst.Data(), row.Data())
			continue
		}
		mass := first(be.Norm(row, ndarray.Ord1))
		if mass <= tau {
			// The threshold consumes the whole row; the minimizer is 0.
			continue
		}

		aux := func(mu float64) float64 {
			return first(be.Norm(be.SoftThreshold(row, mu), ndarray.Ord1)) - tau
		}
		mu, err := rootfind.Brent(aux, 0, m, nil)
		if err != nil {
			return nil, err
		}
		copy(dst.Data(), be.ClampAbs(row, mu).Data())
	}
	precision.CoerceSlice(out.Data())

	return out, nil
}
