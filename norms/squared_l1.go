// Package norms: the squared ℓ1 norm and its two prox algorithms.
package norms

import (
	"math"

	"github.com/katalvlaran/lvlopt/ndarray"
	"github.com/katalvlaran/lvlopt/operator"
	"github.com/katalvlaran/lvlopt/precision"
	"github.com/katalvlaran/lvlopt/rootfind"
)

// ProxMethod selects the algorithm behind SquaredL1Norm.Prox.
type ProxMethod int

const (
	// ProxSort sorts each row's magnitudes once and locates the threshold
	// by a linear scan. O(n·log n) per row; needs a sortable backend.
	ProxSort ProxMethod = iota

	// ProxRoot finds the threshold by Brent root-finding on a scalar
	// auxiliary function, touching the row only through elementwise
	// backend kernels. The choice for backends that cannot sort.
	ProxRoot
)

// String implements fmt.Stringer for ProxMethod.
func (m ProxMethod) String() string {
	switch m {
	case ProxSort:
		return "sort"
	case ProxRoot:
		return "root"
	default:
		return "unknown"
	}
}

// SquaredL1Options configures SquaredL1Norm.
type SquaredL1Options struct {
	// Method is the preferred prox algorithm. A ProxSort preference is
	// silently downgraded to ProxRoot per call when the input's backend
	// cannot sort.
	Method ProxMethod
}

// DefaultSquaredL1Options prefers the sort-based prox.
func DefaultSquaredL1Options() SquaredL1Options {
	return SquaredL1Options{Method: ProxSort}
}

// SquaredL1Norm is f(x) = (Σ|xᵢ|)². Non-smooth, proximable; the prox has
// no elementwise closed form and is computed per batch row by either a
// sort-and-scan threshold search or Brent root-finding (see ProxMethod).
// Both routes land on the same soft-threshold-like shrinkage and agree to
// within root-finder tolerance.
type SquaredL1Norm struct {
	dim  int
	opts SquaredL1Options
}

// NewSquaredL1Norm builds (Σ|·|)² on R^dim (operator.DomainAgnostic
// allowed). opts == nil means DefaultSquaredL1Options.
func NewSquaredL1Norm(dim int, opts *SquaredL1Options) (*SquaredL1Norm, error) {
	if dim < 0 {
		return nil, ErrBadDim
	}
	o := DefaultSquaredL1Options()
	if opts != nil {
		o = *opts
	}
	if o.Method != ProxSort && o.Method != ProxRoot {
		return nil, operator.ErrBadParameter
	}

	return &SquaredL1Norm{dim: dim, opts: o}, nil
}

func (f *SquaredL1Norm) Shape() operator.Shape { return funcShape(f.dim) }
func (f *SquaredL1Norm) Props() operator.Props { return operator.NewProps(operator.Proximable) }
func (f *SquaredL1Norm) Lipschitz() float64    { return math.Inf(1) }

// Apply returns (Σ|xᵢ|)² per batch row.
func (f *SquaredL1Norm) Apply(x *ndarray.Array) (*ndarray.Array, error) {
	if err := operator.ValidateIn(f.Shape(), x); err != nil {
		return nil, err
	}
	x = boundary(x)
	be := ndarray.BackendFor(x)
	n := be.Norm(x, ndarray.Ord1)

	return be.Mul(n, n)
}

// Prox dispatches per the configured method, falling back to the root
// algorithm when the backend refuses to sort.
func (f *SquaredL1Norm) Prox(x *ndarray.Array, tau float64) (*ndarray.Array, error) {
	if err := checkProxIn(f.Shape(), x, tau); err != nil {
		return nil, err
	}
	x, tau = boundary(x), precision.Coerce(tau)
	be := ndarray.BackendFor(x)

	if f.opts.Method == ProxSort && be.CanSort() {
		return f.proxSort(be, x, tau)
	}

	return f.proxRoot(be, x, tau)
}

// proxSort computes the prox by the sorted-cumsum threshold search.
//
// Per row: let z = |x| sorted descending and c its running sum. The test
// values t_k = z_k − (2τ / (1 + 2τ·k))·c_k, k = 1..n, are decreasing in
// sign; the last strictly positive one fixes the soft threshold
// μ = (2τ / (1 + 2τ·k*))·c_{k*}. A row with no positive test value (only
// possible for the all-zero row) passes through unchanged.
func (f *SquaredL1Norm) proxSort(be ndarray.Backend, x *ndarray.Array, tau float64) (*ndarray.Array, error) {
	z, err := be.SortAbsDesc(x)
	if err != nil {
		return nil, err
	}
	c := be.CumSum(z)

	out, err := be.Zeros(x.Shape()...)
	if err != nil {
		return nil, err
	}
	dim := x.Dim()
	for b := 0; b < x.Batch(); b++ {
		zd := z.Data()[b*dim : (b+1)*dim]
		cd := c.Data()[b*dim : (b+1)*dim]

		mu, found := 0.0, false
		for k := dim - 1; k >= 0; k-- {
			w := 2 * tau / (1 + 2*tau*float64(k+1))
			if zd[k]-w*cd[k] > 0 {
				mu, found = w*cd[k], true
				break
			}
		}

		row, err := x.RowView(b)
		if err != nil {
			return nil, err
		}
		dst, err := out.RowView(b)
		if err != nil {
			return nil, err
		}
		if !found {
			copy(dst.Data(), row.Data())
			continue
		}
		copy(dst.Data(), be.SoftThreshold(row, mu).Data())
	}
	precision.CoerceSlice(out.Data())

	return out, nil
}

// proxRoot computes the prox by scalar root-finding.
//
// Per row: the dual variable μ solves Σ max(|x|·√(τ/μ) − 2τ, 0) = 1 and
// is bracketed by [1e-12, max(x²)/(4τ)] — the auxiliary function is
// strictly positive near 0 and −1 at the upper end. With
// λ = max(|x|·√(τ/μ*) − 2τ, 0) the minimizer is λ·x / (λ + 2τ)
// elementwise. A zero row short-circuits to itself.
func (f *SquaredL1Norm) proxRoot(be ndarray.Backend, x *ndarray.Array, tau float64) (*ndarray.Array, error) {
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
			continue
		}

		lamOf := func(mu float64) (*ndarray.Array, error) {
			scaled := be.Shift(be.Scale(be.Abs(row), math.Sqrt(tau/mu)), -2*tau)
			return relu(be, scaled)
		}
		aux := func(mu float64) float64 {
			lam, lerr := lamOf(mu)
			if lerr != nil {
				return math.NaN()
			}
			return first(be.Sum(lam)) - 1
		}

		mu, err := rootfind.Brent(aux, 1e-12, m*m/(4*tau), nil)
		if err != nil {
			return nil, err
		}
		lam, err := lamOf(mu)
		if err != nil {
			return nil, err
		}
		num, err := be.Mul(lam, row)
		if err != nil {
			return nil, err
		}
		y, err := be.Div(num, be.Shift(lam, 2*tau))
		if err != nil {
			return nil, err
		}
		copy(dst.Data(), y.Data())
	}
	precision.CoerceSlice(out.Data())

	return out, nil
}
