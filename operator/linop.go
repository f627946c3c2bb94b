// Package operator: concrete linear leaves.
// Identity, ExplicitLinOp (matrix-backed) and ExplicitLinFunc
// (vector-backed linear functional).
package operator

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlopt/ndarray"
	"github.com/katalvlaran/lvlopt/precision"
)

// IdentityOp is the identity on R^dim: simultaneously linear,
// self-adjoint, positive-definite and unitary, with Lipschitz bound 1.
type IdentityOp struct {
	dim int
}

// Identity builds the identity operator on R^dim, dim ≥ 1.
func Identity(dim int) (*IdentityOp, error) {
	if dim < 1 {
		return nil, ErrBadParameter
	}

	return &IdentityOp{dim: dim}, nil
}

func (o *IdentityOp) Shape() Shape { return Shape{Codomain: o.dim, Domain: o.dim} }

func (o *IdentityOp) Props() Props {
	return NewProps(Linear, SelfAdjoint, PositiveDefinite, Unitary)
}

func (o *IdentityOp) Lipschitz() float64 { return 1 }

// Apply returns a coerced copy of x.
func (o *IdentityOp) Apply(x *ndarray.Array) (*ndarray.Array, error) {
	if err := ValidateIn(o.Shape(), x); err != nil {
		return nil, err
	}
	out := x.Clone()
	precision.CoerceSlice(out.Data())

	return out, nil
}

// Adjoint equals Apply (self-adjoint).
func (o *IdentityOp) Adjoint(x *ndarray.Array) (*ndarray.Array, error) { return o.Apply(x) }

// ExplicitLinOp is a linear operator backed by a dense gonum matrix:
// apply(x) = Mx per batch row, adjoint(y) = Mᵀy. The Lipschitz bound is
// the Frobenius norm of M — a valid (not tight) upper bound on the
// spectral norm.
type ExplicitLinOp struct {
	m    *mat.Dense
	mT   *mat.Dense
	lip  float64
	rows int
	cols int
}

// FromMatrix wraps m (shared, not copied) as an ExplicitLinOp.
func FromMatrix(m *mat.Dense) (*ExplicitLinOp, error) {
	if m == nil {
		return nil, ErrNilOperator
	}
	r, c := m.Dims()
	if r < 1 || c < 1 {
		return nil, ErrBadParameter
	}
	var mT mat.Dense
	mT.CloneFrom(m.T())

	return &ExplicitLinOp{
		m:    m,
		mT:   &mT,
		lip:  mat.Norm(m, 2), // Frobenius
		rows: r,
		cols: c,
	}, nil
}

func (o *ExplicitLinOp) Shape() Shape { return Shape{Codomain: o.rows, Domain: o.cols} }

func (o *ExplicitLinOp) Props() Props { return NewProps(Linear) }

func (o *ExplicitLinOp) Lipschitz() float64 { return o.lip }

// matVec applies an (r×c) matrix to every batch row of x.
func matVec(m *mat.Dense, r, c int, x *ndarray.Array) (*ndarray.Array, error) {
	shape := x.Shape()
	shape[len(shape)-1] = r
	out, err := ndarray.Zeros(x.Kind(), shape...)
	if err != nil {
		return nil, err
	}
	var y mat.VecDense
	for b := 0; b < x.Batch(); b++ {
		row, err := x.RowView(b)
		if err != nil {
			return nil, err
		}
		y.MulVec(m, mat.NewVecDense(c, row.Data()))
		dst, err := out.RowView(b)
		if err != nil {
			return nil, err
		}
		copy(dst.Data(), y.RawVector().Data)
	}
	precision.CoerceSlice(out.Data())

	return out, nil
}

// Apply returns Mx per batch row.
func (o *ExplicitLinOp) Apply(x *ndarray.Array) (*ndarray.Array, error) {
	if err := ValidateIn(o.Shape(), x); err != nil {
		return nil, err
	}

	return matVec(o.m, o.rows, o.cols, x)
}

// Adjoint returns Mᵀy per batch row.
func (o *ExplicitLinOp) Adjoint(y *ndarray.Array) (*ndarray.Array, error) {
	if err := ValidateIn(Shape{Codomain: o.cols, Domain: o.rows}, y); err != nil {
		return nil, err
	}

	return matVec(o.mT, o.cols, o.rows, y)
}

// ExplicitLinFunc is the linear functional x ↦ ⟨v, x⟩: linear and
// differentiable with constant gradient v, lip = ‖v‖₂, diff-lip = 0.
type ExplicitLinFunc struct {
	vec []float64
	lip float64
}

// FromVector wraps a copy of v as an ExplicitLinFunc; v must be non-empty.
func FromVector(v []float64) (*ExplicitLinFunc, error) {
	if len(v) == 0 {
		return nil, ErrBadParameter
	}
	vc := precision.CoerceSlice(append([]float64(nil), v...))
	l := 0.0
	for _, e := range vc {
		l += e * e
	}

	return &ExplicitLinFunc{vec: vc, lip: math.Sqrt(l)}, nil
}

func (o *ExplicitLinFunc) Shape() Shape { return Shape{Codomain: 1, Domain: len(o.vec)} }

func (o *ExplicitLinFunc) Props() Props { return NewProps(Linear, Differentiable) }

func (o *ExplicitLinFunc) Lipschitz() float64 { return o.lip }

func (o *ExplicitLinFunc) DiffLipschitz() float64 { return 0 }

// Apply returns ⟨v, x⟩ per batch row, keep-dims.
func (o *ExplicitLinFunc) Apply(x *ndarray.Array) (*ndarray.Array, error) {
	if err := ValidateIn(o.Shape(), x); err != nil {
		return nil, err
	}
	be := ndarray.BackendFor(x)
	v, err := ndarray.New(x.Kind(), o.vec, len(o.vec))
	if err != nil {
		return nil, err
	}
	vv, err := tile(v, x)
	if err != nil {
		return nil, err
	}
	out, err := be.Dot(x, vv)
	if err != nil {
		return nil, err
	}
	precision.CoerceSlice(out.Data())

	return out, nil
}

// Adjoint maps a (..., 1) scalar array s to s·v per batch row.
func (o *ExplicitLinFunc) Adjoint(s *ndarray.Array) (*ndarray.Array, error) {
	if s == nil {
		return nil, ndarray.ErrNilArray
	}
	if s.Dim() != 1 {
		return nil, ErrShapeMismatch
	}
	shape := s.Shape()
	shape[len(shape)-1] = len(o.vec)
	out, err := ndarray.Zeros(s.Kind(), shape...)
	if err != nil {
		return nil, err
	}
	for b := 0; b < s.Batch(); b++ {
		c, err := s.At(b)
		if err != nil {
			return nil, err
		}
		dst, err := out.RowView(b)
		if err != nil {
			return nil, err
		}
		for i, e := range o.vec {
			_ = dst.Set(i, c*e)
		}
	}
	precision.CoerceSlice(out.Data())

	return out, nil
}

// Gradient is the constant v broadcast to x's shape.
func (o *ExplicitLinFunc) Gradient(x *ndarray.Array) (*ndarray.Array, error) {
	if err := ValidateIn(o.Shape(), x); err != nil {
		return nil, err
	}
	v, err := ndarray.New(x.Kind(), o.vec, len(o.vec))
	if err != nil {
		return nil, err
	}

	return tile(v, x)
}

// tile broadcasts a 1-D array d across the batch rows of ref, producing an
// array with ref's shape and kind.
func tile(d, ref *ndarray.Array) (*ndarray.Array, error) {
	if d.Dim() != ref.Dim() || d.Batch() != 1 {
		return nil, ErrShapeMismatch
	}
	out, err := ndarray.Zeros(ref.Kind(), ref.Shape()...)
	if err != nil {
		return nil, err
	}
	src, dim := d.Data(), ref.Dim()
	for b := 0; b < ref.Batch(); b++ {
		copy(out.Data()[b*dim:(b+1)*dim], src)
	}

	return out, nil
}
