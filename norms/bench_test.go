package norms_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvlopt/ndarray"
	"github.com/katalvlaran/lvlopt/norms"
)

const benchDim = 1024

func benchInput(b *testing.B, kind ndarray.Kind) *ndarray.Array {
	b.Helper()
	data := make([]float64, benchDim)
	for i := range data {
		data[i] = math.Sin(float64(i)) * 3
	}
	a, err := ndarray.New(kind, data, benchDim)
	if err != nil {
		b.Fatal(err)
	}
	return a
}

func BenchmarkL1Norm_Prox(b *testing.B) {
	f, err := norms.NewL1Norm(benchDim)
	if err != nil {
		b.Fatal(err)
	}
	x := benchInput(b, ndarray.Dense)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.Prox(x, 0.5); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSquaredL1Norm_ProxSort(b *testing.B) {
	f, err := norms.NewSquaredL1Norm(benchDim, &norms.SquaredL1Options{Method: norms.ProxSort})
	if err != nil {
		b.Fatal(err)
	}
	x := benchInput(b, ndarray.Dense)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.Prox(x, 0.5); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSquaredL1Norm_ProxRoot(b *testing.B) {
	f, err := norms.NewSquaredL1Norm(benchDim, &norms.SquaredL1Options{Method: norms.ProxRoot})
	if err != nil {
		b.Fatal(err)
	}
	x := benchInput(b, ndarray.Dense)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.Prox(x, 0.5); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLInfNorm_Prox(b *testing.B) {
	f, err := norms.NewLInfNorm(benchDim)
	if err != nil {
		b.Fatal(err)
	}
	x := benchInput(b, ndarray.Dense)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.Prox(x, 2); err != nil {
			b.Fatal(err)
		}
	}
}
