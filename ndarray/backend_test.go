package ndarray_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvlopt/ndarray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBatched builds a (2, 4) array of the given kind with fixed values.
func newBatched(t *testing.T, kind ndarray.Kind) *ndarray.Array {
	t.Helper()
	a, err := ndarray.New(kind, []float64{-3, -2, -1, 0, 1, 2, 3, 4}, 2, 4)
	require.NoError(t, err)

	return a
}

// TestBackendFor_DispatchesOnKind verifies the per-call strategy selection.
func TestBackendFor_DispatchesOnKind(t *testing.T) {
	d := newBatched(t, ndarray.Dense)
	c := newBatched(t, ndarray.Chunked)

	assert.Equal(t, ndarray.Dense, ndarray.BackendFor(d).Kind())
	assert.True(t, ndarray.BackendFor(d).CanSort())
	assert.Equal(t, ndarray.Chunked, ndarray.BackendFor(c).Kind())
	assert.False(t, ndarray.BackendFor(c).CanSort())
}

// TestElementwiseKernels checks Abs/Sign/Scale/Shift/SoftThreshold/ClampAbs
// on both backends; results must agree elementwise and keep the input kind.
func TestElementwiseKernels(t *testing.T) {
	for _, kind := range []ndarray.Kind{ndarray.Dense, ndarray.Chunked} {
		be := ndarray.ByKind(kind)
		x := newBatched(t, kind)

		assert.Equal(t, []float64{3, 2, 1, 0, 1, 2, 3, 4}, be.Abs(x).Data(), kind.String())
		assert.Equal(t, []float64{-1, -1, -1, 0, 1, 1, 1, 1}, be.Sign(x).Data(), kind.String())
		assert.Equal(t, []float64{-6, -4, -2, 0, 2, 4, 6, 8}, be.Scale(x, 2).Data(), kind.String())
		assert.Equal(t, []float64{-2, -1, 0, 1, 2, 3, 4, 5}, be.Shift(x, 1).Data(), kind.String())
		assert.Equal(t, []float64{-2, -1, 0, 0, 0, 1, 2, 3}, be.SoftThreshold(x, 1).Data(), kind.String())
		assert.Equal(t, []float64{-2, -2, -1, 0, 1, 2, 2, 2}, be.ClampAbs(x, 2).Data(), kind.String())
		assert.Equal(t, kind, be.Abs(x).Kind(), "result must keep the input kind")
	}
}

// TestBinaryKernels checks Add/Sub/Mul/Div/Dot agreement and shape guards.
func TestBinaryKernels(t *testing.T) {
	for _, kind := range []ndarray.Kind{ndarray.Dense, ndarray.Chunked} {
		be := ndarray.ByKind(kind)
		x := newBatched(t, kind)
		y := be.Shift(x, 5) // [2,3,4,5,6,7,8,9]: strictly positive, safe divisor

		sum, err := be.Add(x, y)
		require.NoError(t, err)
		assert.Equal(t, []float64{-1, 1, 3, 5, 7, 9, 11, 13}, sum.Data(), kind.String())

		diff, err := be.Sub(y, x)
		require.NoError(t, err)
		assert.Equal(t, []float64{5, 5, 5, 5, 5, 5, 5, 5}, diff.Data(), kind.String())

		prod, err := be.Mul(x, y)
		require.NoError(t, err)
		assert.Equal(t, []float64{-6, -6, -4, 0, 6, 14, 24, 36}, prod.Data(), kind.String())

		quot, err := be.Div(prod, y)
		require.NoError(t, err)
		assert.Equal(t, x.Data(), quot.Data(), kind.String())

		dot, err := be.Dot(x, x)
		require.NoError(t, err)
		assert.Equal(t, []float64{14, 30}, dot.Data(), kind.String())
		assert.Equal(t, []int{2, 1}, dot.Shape(), "reductions keep dims")

		short := ndarray.FromSlice([]float64{1, 2})
		_, err = be.Add(x, short)
		assert.ErrorIs(t, err, ndarray.ErrShapeMismatch, kind.String())
	}
}

// TestReductions checks Sum/Norm/MaxAbs/CumSum per batch row.
func TestReductions(t *testing.T) {
	for _, kind := range []ndarray.Kind{ndarray.Dense, ndarray.Chunked} {
		be := ndarray.ByKind(kind)
		x := newBatched(t, kind) // rows: [-3,-2,-1,0], [1,2,3,4]

		assert.Equal(t, []float64{-6, 10}, be.Sum(x).Data(), kind.String())
		assert.Equal(t, []float64{6, 10}, be.Norm(x, ndarray.Ord1).Data(), kind.String())
		assert.InDeltaSlice(t, []float64{math.Sqrt(14), math.Sqrt(30)}, be.Norm(x, ndarray.Ord2).Data(), 1e-12, kind.String())
		assert.Equal(t, []float64{3, 4}, be.Norm(x, ndarray.OrdInf).Data(), kind.String())
		assert.Equal(t, []float64{3, 4}, be.MaxAbs(x).Data(), kind.String())
		assert.Equal(t, []float64{-3, -5, -6, -6, 1, 3, 6, 10}, be.CumSum(x).Data(), kind.String())
	}
}

// TestChunked_MultiBlockAgreement runs reductions on rows longer than one
// chunk and compares against the dense backend.
func TestChunked_MultiBlockAgreement(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	data := make([]float64, 3*200) // 200 > chunk size, forces block carries
	for i := range data {
		data[i] = rng.NormFloat64()
	}

	d, err := ndarray.New(ndarray.Dense, data, 3, 200)
	require.NoError(t, err)
	c, err := ndarray.New(ndarray.Chunked, data, 3, 200)
	require.NoError(t, err)

	db, cb := ndarray.ByKind(ndarray.Dense), ndarray.ByKind(ndarray.Chunked)

	assert.InDeltaSlice(t, db.Sum(d).Data(), cb.Sum(c).Data(), 1e-9)
	assert.InDeltaSlice(t, db.Norm(d, ndarray.Ord2).Data(), cb.Norm(c, ndarray.Ord2).Data(), 1e-9)
	assert.InDeltaSlice(t, db.CumSum(d).Data(), cb.CumSum(c).Data(), 1e-9)

	alpha, err := ndarray.New(ndarray.Dense, []float64{0.5, -1, 2}, 3, 1)
	require.NoError(t, err)
	wantAS, err := db.AddScaled(d, alpha, d)
	require.NoError(t, err)
	gotAS, err := cb.AddScaled(c, alpha, c)
	require.NoError(t, err)
	assert.InDeltaSlice(t, wantAS.Data(), gotAS.Data(), 1e-9)
}

// TestSortAbsDesc checks dense sorting and the chunked refusal.
func TestSortAbsDesc(t *testing.T) {
	d := newBatched(t, ndarray.Dense)
	sorted, err := ndarray.BackendFor(d).SortAbsDesc(d)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 2, 1, 0, 4, 3, 2, 1}, sorted.Data())

	c := newBatched(t, ndarray.Chunked)
	_, err = ndarray.BackendFor(c).SortAbsDesc(c)
	assert.ErrorIs(t, err, ndarray.ErrNoSort)
}

// TestAddScaled_Broadcast verifies the per-batch scalar recurrence.
func TestAddScaled_Broadcast(t *testing.T) {
	be := ndarray.ByKind(ndarray.Dense)
	x := newBatched(t, ndarray.Dense)
	alpha, err := ndarray.New(ndarray.Dense, []float64{2, -1}, 2, 1)
	require.NoError(t, err)

	got, err := be.AddScaled(x, alpha, x) // x + alpha*x
	require.NoError(t, err)
	assert.Equal(t, []float64{-9, -6, -3, 0, 0, 0, 0, 0}, got.Data())

	bad := ndarray.FromSlice([]float64{1})
	_, err = be.AddScaled(x, bad, x)
	assert.ErrorIs(t, err, ndarray.ErrShapeMismatch, "alpha batch must match")
}
