// Package ndarray: the Array value.
// This file defines the batched array type, its constructors, accessors, and
// shape helpers. Backends (dense.go, chunked.go) build on these primitives.
package ndarray

// Kind tags the storage strategy of an Array and selects its Backend.
type Kind int

const (
	// Dense marks eager, in-memory storage. Default.
	Dense Kind = iota

	// Chunked marks block-wise storage standing in for lazily-evaluated or
	// distributed arrays. Its backend cannot sort.
	Chunked
)

// String returns the tag name, for logs and test failure messages.
func (k Kind) String() string {
	if k == Chunked {
		return "chunked"
	}

	return "dense"
}

// Array is a row-major batched array of float64 values.
//
// shape lists the axes, innermost last; data holds the elements flattened
// row-major. The innermost axis is the problem dimension, every leading axis
// an independent problem instance. Shape is immutable after construction.
type Array struct {
	shape []int
	data  []float64
	kind  Kind
}

// numel returns the element count implied by shape, or -1 on invalid shape.
func numel(shape []int) int {
	if len(shape) == 0 {
		return -1
	}
	n := 1
	for _, s := range shape {
		if s < 1 {
			return -1
		}
		n *= s
	}

	return n
}

// Zeros creates a zero-filled Array of the given kind and shape.
// Complexity: O(prod(shape)) time and memory.
func Zeros(kind Kind, shape ...int) (*Array, error) {
	n := numel(shape)
	if n < 0 {
		return nil, ErrBadShape
	}

	return &Array{
		shape: append([]int(nil), shape...),
		data:  make([]float64, n),
		kind:  kind,
	}, nil
}

// New creates an Array of the given kind and shape backed by a copy of data.
// len(data) must equal prod(shape).
func New(kind Kind, data []float64, shape ...int) (*Array, error) {
	n := numel(shape)
	if n < 0 {
		return nil, ErrBadShape
	}
	if len(data) != n {
		return nil, ErrShapeMismatch
	}

	return &Array{
		shape: append([]int(nil), shape...),
		data:  append([]float64(nil), data...),
		kind:  kind,
	}, nil
}

// FromSlice wraps vs as a 1-D Dense Array (copying the values).
// Convenience for the common single-instance case.
func FromSlice(vs []float64) *Array {
	arr, _ := New(Dense, vs, len(vs))
	return arr
}

// Kind reports the storage tag.
func (a *Array) Kind() Kind { return a.kind }

// Shape returns a copy of the axis list.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Dim returns the innermost (problem) axis length.
func (a *Array) Dim() int { return a.shape[len(a.shape)-1] }

// Batch returns the number of independent problem instances, i.e. the
// product of all leading axes (1 for a 1-D array).
func (a *Array) Batch() int { return len(a.data) / a.Dim() }

// Len returns the total element count.
func (a *Array) Len() int { return len(a.data) }

// Data exposes the backing slice. Shared, not copied: intended for backends
// and tests; mutating it mutates the Array.
func (a *Array) Data() []float64 { return a.data }

// At returns the element at flat index i.
func (a *Array) At(i int) (float64, error) {
	if i < 0 || i >= len(a.data) {
		return 0, ErrOutOfRange
	}

	return a.data[i], nil
}

// Set stores v at flat index i.
func (a *Array) Set(i int, v float64) error {
	if i < 0 || i >= len(a.data) {
		return ErrOutOfRange
	}
	a.data[i] = v

	return nil
}

// Clone returns a deep copy (same kind, same shape, copied buffer).
func (a *Array) Clone() *Array {
	return &Array{
		shape: append([]int(nil), a.shape...),
		data:  append([]float64(nil), a.data...),
		kind:  a.kind,
	}
}

// RowView returns a 1-D view of batch row b, sharing storage with a.
// Mutations through the view are visible in the parent.
func (a *Array) RowView(b int) (*Array, error) {
	if b < 0 || b >= a.Batch() {
		return nil, ErrOutOfRange
	}
	d := a.Dim()

	return &Array{
		shape: []int{d},
		data:  a.data[b*d : (b+1)*d],
		kind:  a.kind,
	}, nil
}

// SameShape reports whether a and b have identical axis lists.
func SameShape(a, b *Array) bool {
	if len(a.shape) != len(b.shape) {
		return false
	}
	for i := range a.shape {
		if a.shape[i] != b.shape[i] {
			return false
		}
	}

	return true
}

// reducedShape returns shape with the innermost axis collapsed to 1
// (keep-dims reduction result shape).
func reducedShape(shape []int) []int {
	out := append([]int(nil), shape...)
	out[len(out)-1] = 1

	return out
}
