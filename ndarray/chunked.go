// Package ndarray: chunked backend.
// Stands in for lazily-evaluated or distributed storage: every kernel walks
// the buffer in fixed-size blocks and reductions accumulate block partials,
// mirroring how a deferred backend would schedule the work. Sorting is
// unavailable (CanSort() == false), so callers take sort-free code paths —
// exactly the constraint a real distributed array imposes.
package ndarray

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// chunkLen is the block size of the chunked walk. Small enough to exercise
// multi-block paths in tests, large enough to keep loop overhead negligible.
const chunkLen = 64

// chunkedB is the process-wide chunked strategy. Stateless, safe for
// concurrent use.
var chunkedB Backend = chunkedBackend{}

type chunkedBackend struct{}

func (chunkedBackend) Kind() Kind    { return Chunked }
func (chunkedBackend) CanSort() bool { return false }

// blocks invokes f over consecutive [lo, hi) block bounds of a length-n buffer.
func blocks(n int, f func(lo, hi int)) {
	for lo := 0; lo < n; lo += chunkLen {
		hi := lo + chunkLen
		if hi > n {
			hi = n
		}
		f(lo, hi)
	}
}

func (chunkedBackend) Zeros(shape ...int) (*Array, error) { return Zeros(Chunked, shape...) }

func (chunkedBackend) Copy(x *Array) *Array { return x.Clone() }

func (chunkedBackend) Abs(x *Array) *Array {
	out := like(x)
	blocks(len(x.data), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out.data[i] = math.Abs(x.data[i])
		}
	})

	return out
}

func (chunkedBackend) Sign(x *Array) *Array {
	out := like(x)
	blocks(len(x.data), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			switch v := x.data[i]; {
			case v > 0:
				out.data[i] = 1
			case v < 0:
				out.data[i] = -1
			}
		}
	})

	return out
}

func (chunkedBackend) Scale(x *Array, c float64) *Array {
	out := like(x)
	blocks(len(x.data), func(lo, hi int) {
		floats.ScaleTo(out.data[lo:hi], c, x.data[lo:hi])
	})

	return out
}

func (chunkedBackend) Shift(x *Array, c float64) *Array {
	out := like(x)
	blocks(len(x.data), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out.data[i] = x.data[i] + c
		}
	})

	return out
}

func (chunkedBackend) Add(x, y *Array) (*Array, error) {
	if err := checkBinary(x, y); err != nil {
		return nil, err
	}
	out := like(x)
	blocks(len(x.data), func(lo, hi int) {
		floats.AddTo(out.data[lo:hi], x.data[lo:hi], y.data[lo:hi])
	})

	return out, nil
}

func (chunkedBackend) Sub(x, y *Array) (*Array, error) {
	if err := checkBinary(x, y); err != nil {
		return nil, err
	}
	out := like(x)
	blocks(len(x.data), func(lo, hi int) {
		floats.SubTo(out.data[lo:hi], x.data[lo:hi], y.data[lo:hi])
	})

	return out, nil
}

func (chunkedBackend) Mul(x, y *Array) (*Array, error) {
	if err := checkBinary(x, y); err != nil {
		return nil, err
	}
	out := like(x)
	blocks(len(x.data), func(lo, hi int) {
		floats.MulTo(out.data[lo:hi], x.data[lo:hi], y.data[lo:hi])
	})

	return out, nil
}

func (chunkedBackend) Div(x, y *Array) (*Array, error) {
	if err := checkBinary(x, y); err != nil {
		return nil, err
	}
	out := like(x)
	blocks(len(x.data), func(lo, hi int) {
		floats.DivTo(out.data[lo:hi], x.data[lo:hi], y.data[lo:hi])
	})

	return out, nil
}

func (chunkedBackend) ClampAbs(x *Array, bound float64) *Array {
	out := like(x)
	blocks(len(x.data), func(lo, hi int) {
		clampAbsKernel(out.data[lo:hi], x.data[lo:hi], bound)
	})

	return out
}

func (chunkedBackend) SoftThreshold(x *Array, tau float64) *Array {
	out := like(x)
	blocks(len(x.data), func(lo, hi int) {
		softThresholdKernel(out.data[lo:hi], x.data[lo:hi], tau)
	})

	return out
}

// rowReduce folds each batch row block by block with partial accumulators.
func rowReduce(x *Array, fold func(acc float64, block []float64) float64) *Array {
	out, d := likeReduced(x), x.Dim()
	for b := 0; b < x.Batch(); b++ {
		row, acc := x.data[b*d:(b+1)*d], 0.0
		blocks(d, func(lo, hi int) {
			acc = fold(acc, row[lo:hi])
		})
		out.data[b] = acc
	}

	return out
}

func (chunkedBackend) Sum(x *Array) *Array {
	return rowReduce(x, func(acc float64, block []float64) float64 {
		return acc + floats.Sum(block)
	})
}

func (chunkedBackend) Dot(x, y *Array) (*Array, error) {
	if err := checkBinary(x, y); err != nil {
		return nil, err
	}
	out, d := likeReduced(x), x.Dim()
	for b := 0; b < x.Batch(); b++ {
		xr, yr, acc := x.data[b*d:(b+1)*d], y.data[b*d:(b+1)*d], 0.0
		blocks(d, func(lo, hi int) {
			acc += floats.Dot(xr[lo:hi], yr[lo:hi])
		})
		out.data[b] = acc
	}

	return out, nil
}

func (chunkedBackend) Norm(x *Array, ord Ord) *Array {
	switch ord {
	case Ord1:
		return rowReduce(x, func(acc float64, block []float64) float64 {
			return acc + floats.Norm(block, 1)
		})
	case OrdInf:
		return chunkedB.MaxAbs(x)
	default:
		// Accumulate squared partials, take the root once per row.
		out := rowReduce(x, func(acc float64, block []float64) float64 {
			n := floats.Norm(block, 2)
			return acc + n*n
		})
		for b := range out.data {
			out.data[b] = math.Sqrt(out.data[b])
		}

		return out
	}
}

func (chunkedBackend) MaxAbs(x *Array) *Array {
	return rowReduce(x, func(acc float64, block []float64) float64 {
		if m := maxAbsKernel(block); m > acc {
			return m
		}
		return acc
	})
}

func (chunkedBackend) CumSum(x *Array) *Array {
	out, d := like(x), x.Dim()
	for b := 0; b < x.Batch(); b++ {
		row, res, carry := x.data[b*d:(b+1)*d], out.data[b*d:(b+1)*d], 0.0
		blocks(d, func(lo, hi int) {
			floats.CumSum(res[lo:hi], row[lo:hi])
			floats.AddConst(carry, res[lo:hi])
			carry = res[hi-1]
		})
	}

	return out
}

func (chunkedBackend) AddScaled(y, alpha, x *Array) (*Array, error) {
	if err := checkAddScaled(y, alpha, x); err != nil {
		return nil, err
	}
	out, d := like(y), y.Dim()
	for b := 0; b < y.Batch(); b++ {
		yr, xr, res, a := y.data[b*d:(b+1)*d], x.data[b*d:(b+1)*d], out.data[b*d:(b+1)*d], alpha.data[b]
		blocks(d, func(lo, hi int) {
			floats.AddScaledTo(res[lo:hi], yr[lo:hi], a, xr[lo:hi])
		})
	}

	return out, nil
}

// SortAbsDesc is unavailable: a deferred backend cannot materialize a
// global per-row ordering. Callers fall back to root-based algorithms.
func (chunkedBackend) SortAbsDesc(_ *Array) (*Array, error) {
	return nil, ErrNoSort
}
