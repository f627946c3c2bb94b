// Package ndarray provides the batched array value used throughout lvlopt
// and the backend strategy interface its numerics are written against.
//
// 🚀 The array model
//
//	An Array is a row-major, flat float64 buffer with an explicit shape.
//	The innermost axis is the problem dimension; every leading axis is an
//	independent problem instance ("batch"). All backend operations treat
//	the last axis as the reduction axis and batches in lockstep — there is
//	no cross-batch coordination of any kind.
//
// ✨ The backend strategy
//
//	Core algorithm code never touches the buffer directly: it calls through
//	the Backend interface (elementwise kernels, last-axis reductions,
//	cumulative sums, magnitude sorting). The implementation is selected
//	once per call from the array's Kind tag:
//		• Dense   — eager in-memory kernels built on gonum/floats
//		• Chunked — block-wise evaluation standing in for lazily-evaluated
//		  or distributed storage; reports CanSort() == false so callers
//		  fall back to sort-free algorithms
//
// Contracts:
//   - Shape is immutable after construction.
//   - Binary operations require identical shapes (ErrShapeMismatch).
//   - Reductions return keep-dims results: shape (..., 1).
//   - RowView shares storage with its parent; mutate with care.
//
// Errors: ErrBadShape, ErrShapeMismatch, ErrOutOfRange, ErrNoSort.
package ndarray
