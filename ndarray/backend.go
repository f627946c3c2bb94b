// Package ndarray: the backend strategy interface and its dispatcher.
// Core algorithm code is backend-agnostic: it obtains a Backend once per
// call via BackendFor and only issues the operations below.
package ndarray

// Ord selects the norm computed by Backend.Norm.
type Ord int

const (
	// Ord1 is the sum of magnitudes along the last axis.
	Ord1 Ord = iota

	// Ord2 is the Euclidean norm along the last axis.
	Ord2

	// OrdInf is the maximum magnitude along the last axis.
	OrdInf
)

// Backend is the strategy interface every lvlopt algorithm is written
// against. All operations are batched: elementwise kernels apply to every
// element, reductions collapse the innermost axis with keep-dims semantics
// (result shape (..., 1)). Implementations must preserve the input's Kind
// on every result.
type Backend interface {
	// Kind reports which arrays this backend serves.
	Kind() Kind

	// CanSort reports whether SortAbsDesc is available. Chunked/lazy
	// storage answers false; callers must use a sort-free algorithm.
	CanSort() bool

	// Zeros allocates a zero-filled array of this backend's kind.
	Zeros(shape ...int) (*Array, error)

	// Copy returns a deep copy of x.
	Copy(x *Array) *Array

	// Abs returns |x| elementwise.
	Abs(x *Array) *Array

	// Sign returns sign(x) elementwise (sign(0) == 0).
	Sign(x *Array) *Array

	// Scale returns c*x elementwise.
	Scale(x *Array, c float64) *Array

	// Shift returns x+c elementwise.
	Shift(x *Array, c float64) *Array

	// Add returns x+y. Shapes must match.
	Add(x, y *Array) (*Array, error)

	// Sub returns x-y. Shapes must match.
	Sub(x, y *Array) (*Array, error)

	// Mul returns the elementwise (Hadamard) product. Shapes must match.
	Mul(x, y *Array) (*Array, error)

	// Div returns the elementwise quotient. Shapes must match.
	Div(x, y *Array) (*Array, error)

	// ClampAbs returns sign(x)*min(|x|, bound) elementwise.
	ClampAbs(x *Array, bound float64) *Array

	// SoftThreshold returns sign(x)*max(0, |x|-tau) elementwise.
	SoftThreshold(x *Array, tau float64) *Array

	// Sum reduces the last axis: out[b] = sum_i x[b,i].
	Sum(x *Array) *Array

	// Dot reduces the last axis of the elementwise product:
	// out[b] = sum_i x[b,i]*y[b,i]. Shapes must match.
	Dot(x, y *Array) (*Array, error)

	// Norm reduces the last axis to the requested norm.
	Norm(x *Array, ord Ord) *Array

	// MaxAbs reduces the last axis to max_i |x[b,i]|.
	MaxAbs(x *Array) *Array

	// CumSum returns the running sum along the last axis (same shape).
	CumSum(x *Array) *Array

	// AddScaled returns y + alpha⊙x where alpha has the keep-dims reduced
	// shape (..., 1) and broadcasts along the last axis. The per-batch
	// scalar recurrences of iterative solvers are built on this.
	AddScaled(y, alpha, x *Array) (*Array, error)

	// SortAbsDesc returns |x| with each batch row sorted descending.
	// ErrNoSort when CanSort() is false.
	SortAbsDesc(x *Array) (*Array, error)
}

// BackendFor selects the strategy serving a, from its Kind tag.
func BackendFor(a *Array) Backend {
	if a.kind == Chunked {
		return chunkedB
	}

	return denseB
}

// ByKind selects the strategy serving arrays of kind k.
func ByKind(k Kind) Backend {
	if k == Chunked {
		return chunkedB
	}

	return denseB
}
