package ndarray_test

import (
	"testing"

	"github.com/katalvlaran/lvlopt/ndarray"
)

func benchArray(b *testing.B, kind ndarray.Kind, n int) *ndarray.Array {
	b.Helper()
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i%17) - 8
	}
	a, err := ndarray.New(kind, data, n)
	if err != nil {
		b.Fatal(err)
	}
	return a
}

func benchKernels(b *testing.B, kind ndarray.Kind) {
	x := benchArray(b, kind, 4096)
	be := ndarray.ByKind(kind)

	b.Run("SoftThreshold", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = be.SoftThreshold(x, 1.5)
		}
	})
	b.Run("Norm2", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = be.Norm(x, ndarray.Ord2)
		}
	})
	b.Run("CumSum", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = be.CumSum(x)
		}
	})
}

func BenchmarkDenseBackend(b *testing.B)   { benchKernels(b, ndarray.Dense) }
func BenchmarkChunkedBackend(b *testing.B) { benchKernels(b, ndarray.Chunked) }
