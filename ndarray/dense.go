// Package ndarray: dense backend.
// Eager in-memory kernels; reductions and recurrences delegate to
// gonum/floats, elementwise kernels are plain loops over the flat buffer.
package ndarray

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// denseB is the process-wide dense strategy. Stateless, safe for
// concurrent use.
var denseB Backend = denseBackend{}

type denseBackend struct{}

func (denseBackend) Kind() Kind    { return Dense }
func (denseBackend) CanSort() bool { return true }

// like allocates an uninitialized result with x's shape and kind.
func like(x *Array) *Array {
	return &Array{
		shape: append([]int(nil), x.shape...),
		data:  make([]float64, len(x.data)),
		kind:  x.kind,
	}
}

// likeReduced allocates a keep-dims reduction result for x.
func likeReduced(x *Array) *Array {
	shape := reducedShape(x.shape)

	return &Array{
		shape: shape,
		data:  make([]float64, x.Batch()),
		kind:  x.kind,
	}
}

func (denseBackend) Zeros(shape ...int) (*Array, error) { return Zeros(Dense, shape...) }

func (denseBackend) Copy(x *Array) *Array { return x.Clone() }

func (denseBackend) Abs(x *Array) *Array {
	out := like(x)
	for i, v := range x.data {
		out.data[i] = math.Abs(v)
	}

	return out
}

func (denseBackend) Sign(x *Array) *Array {
	out := like(x)
	for i, v := range x.data {
		switch {
		case v > 0:
			out.data[i] = 1
		case v < 0:
			out.data[i] = -1
		}
	}

	return out
}

func (denseBackend) Scale(x *Array, c float64) *Array {
	out := like(x)
	floats.ScaleTo(out.data, c, x.data)

	return out
}

func (denseBackend) Shift(x *Array, c float64) *Array {
	out := like(x)
	for i, v := range x.data {
		out.data[i] = v + c
	}

	return out
}

func (denseBackend) Add(x, y *Array) (*Array, error) {
	if err := checkBinary(x, y); err != nil {
		return nil, err
	}
	out := like(x)
	floats.AddTo(out.data, x.data, y.data)

	return out, nil
}

func (denseBackend) Sub(x, y *Array) (*Array, error) {
	if err := checkBinary(x, y); err != nil {
		return nil, err
	}
	out := like(x)
	floats.SubTo(out.data, x.data, y.data)

	return out, nil
}

func (denseBackend) Mul(x, y *Array) (*Array, error) {
	if err := checkBinary(x, y); err != nil {
		return nil, err
	}
	out := like(x)
	floats.MulTo(out.data, x.data, y.data)

	return out, nil
}

func (denseBackend) Div(x, y *Array) (*Array, error) {
	if err := checkBinary(x, y); err != nil {
		return nil, err
	}
	out := like(x)
	floats.DivTo(out.data, x.data, y.data)

	return out, nil
}

func (denseBackend) ClampAbs(x *Array, bound float64) *Array {
	out := like(x)
	clampAbsKernel(out.data, x.data, bound)

	return out
}

func (denseBackend) SoftThreshold(x *Array, tau float64) *Array {
	out := like(x)
	softThresholdKernel(out.data, x.data, tau)

	return out
}

func (denseBackend) Sum(x *Array) *Array {
	out, d := likeReduced(x), x.Dim()
	for b := 0; b < x.Batch(); b++ {
		out.data[b] = floats.Sum(x.data[b*d : (b+1)*d])
	}

	return out
}

func (denseBackend) Dot(x, y *Array) (*Array, error) {
	if err := checkBinary(x, y); err != nil {
		return nil, err
	}
	out, d := likeReduced(x), x.Dim()
	for b := 0; b < x.Batch(); b++ {
		out.data[b] = floats.Dot(x.data[b*d:(b+1)*d], y.data[b*d:(b+1)*d])
	}

	return out, nil
}

func (denseBackend) Norm(x *Array, ord Ord) *Array {
	out, d := likeReduced(x), x.Dim()
	l := normExponent(ord)
	for b := 0; b < x.Batch(); b++ {
		out.data[b] = floats.Norm(x.data[b*d:(b+1)*d], l)
	}

	return out
}

func (denseBackend) MaxAbs(x *Array) *Array {
	out, d := likeReduced(x), x.Dim()
	for b := 0; b < x.Batch(); b++ {
		out.data[b] = maxAbsKernel(x.data[b*d : (b+1)*d])
	}

	return out
}

func (denseBackend) CumSum(x *Array) *Array {
	out, d := like(x), x.Dim()
	for b := 0; b < x.Batch(); b++ {
		floats.CumSum(out.data[b*d:(b+1)*d], x.data[b*d:(b+1)*d])
	}

	return out
}

func (denseBackend) AddScaled(y, alpha, x *Array) (*Array, error) {
	if err := checkAddScaled(y, alpha, x); err != nil {
		return nil, err
	}
	out, d := like(y), y.Dim()
	for b := 0; b < y.Batch(); b++ {
		floats.AddScaledTo(out.data[b*d:(b+1)*d], y.data[b*d:(b+1)*d], alpha.data[b], x.data[b*d:(b+1)*d])
	}

	return out, nil
}

func (denseBackend) SortAbsDesc(x *Array) (*Array, error) {
	out, d := like(x), x.Dim()
	for i, v := range x.data {
		out.data[i] = math.Abs(v)
	}
	for b := 0; b < x.Batch(); b++ {
		sort.Sort(sort.Reverse(sort.Float64Slice(out.data[b*d : (b+1)*d])))
	}

	return out, nil
}

// ---------- shared kernels & validators ----------

// checkBinary validates operands of an elementwise binary operation.
func checkBinary(x, y *Array) error {
	if x == nil || y == nil {
		return ErrNilArray
	}
	if !SameShape(x, y) {
		return ErrShapeMismatch
	}

	return nil
}

// checkAddScaled validates the broadcast recurrence y + alpha⊙x:
// y and x share a shape, alpha carries the keep-dims reduced shape.
func checkAddScaled(y, alpha, x *Array) error {
	if y == nil || alpha == nil || x == nil {
		return ErrNilArray
	}
	if !SameShape(y, x) {
		return ErrShapeMismatch
	}
	if alpha.Dim() != 1 || alpha.Batch() != y.Batch() {
		return ErrShapeMismatch
	}

	return nil
}

// normExponent maps Ord to the exponent floats.Norm expects.
func normExponent(ord Ord) float64 {
	switch ord {
	case Ord1:
		return 1
	case OrdInf:
		return math.Inf(1)
	default:
		return 2
	}
}

// maxAbsKernel returns max_i |row[i]| (0 for an empty row).
func maxAbsKernel(row []float64) float64 {
	m := 0.0
	for _, v := range row {
		if a := math.Abs(v); a > m {
			m = a
		}
	}

	return m
}

// softThresholdKernel writes sign(src)*max(0, |src|-tau) into dst.
func softThresholdKernel(dst, src []float64, tau float64) {
	for i, v := range src {
		a := math.Abs(v) - tau
		switch {
		case a <= 0:
			dst[i] = 0
		case v > 0:
			dst[i] = a
		default:
			dst[i] = -a
		}
	}
}

// clampAbsKernel writes sign(src)*min(|src|, bound) into dst.
func clampAbsKernel(dst, src []float64, bound float64) {
	for i, v := range src {
		a := math.Abs(v)
		if a > bound {
			a = bound
		}
		if v < 0 {
			a = -a
		}
		dst[i] = a
	}
}
