package solver_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlopt/ndarray"
	"github.com/katalvlaran/lvlopt/operator"
	"github.com/katalvlaran/lvlopt/solver"
)

const sysDim = 10

// spdSystem builds the SPD operator MᵀM from a fixed diagonally dominant
// 10×10 matrix.
func spdSystem(t *testing.T) *operator.Generic {
	t.Helper()
	data := make([]float64, sysDim*sysDim)
	for i := 0; i < sysDim; i++ {
		for j := 0; j < sysDim; j++ {
			data[i*sysDim+j] = 0.1 * float64((i*3+j*5)%7)
		}
		data[i*sysDim+i] += 3
	}
	m, err := operator.FromMatrix(mat.NewDense(sysDim, sysDim, data))
	require.NoError(t, err)
	g, err := operator.Gram(m)
	require.NoError(t, err)
	return g
}

func rhsFor(t *testing.T, a operator.Operator, xStar *ndarray.Array) *ndarray.Array {
	t.Helper()
	b, err := a.Apply(xStar)
	require.NoError(t, err)
	return b
}

func TestCG_SolvesSPDSystem(t *testing.T) {
	a := spdSystem(t)

	xData := make([]float64, sysDim)
	for i := range xData {
		xData[i] = float64(i%4) - 1.5
	}
	xStar, err := ndarray.New(ndarray.Dense, xData, sysDim)
	require.NoError(t, err)

	cg, err := solver.NewCG(a)
	require.NoError(t, err)
	require.NoError(t, cg.Fit(rhsFor(t, a, xStar)))

	assert.Equal(t, solver.StatusConverged, cg.Status())
	assert.Greater(t, cg.Iterations(), 0)

	x, err := cg.Solution()
	require.NoError(t, err)
	assert.InDeltaSlice(t, xStar.Data(), x.Data(), 1e-3)
}

func TestCG_BatchedRHS(t *testing.T) {
	a := spdSystem(t)

	xData := make([]float64, 2*sysDim)
	for i := range xData {
		xData[i] = float64(i%5) * 0.5
	}
	xStar, err := ndarray.New(ndarray.Dense, xData, 2, sysDim)
	require.NoError(t, err)

	cg, err := solver.NewCG(a)
	require.NoError(t, err)
	require.NoError(t, cg.Fit(rhsFor(t, a, xStar)))

	x, err := cg.Solution()
	require.NoError(t, err)
	assert.Equal(t, []int{2, sysDim}, x.Shape())
	assert.InDeltaSlice(t, xStar.Data(), x.Data(), 1e-3)
}

func TestCG_MaxIterIsTerminalNotError(t *testing.T) {
	a := spdSystem(t)
	cg, err := solver.NewCG(a)
	require.NoError(t, err)

	xStar, err := ndarray.New(ndarray.Dense, make([]float64, sysDim), sysDim)
	require.NoError(t, err)
	b := rhsFor(t, a, xStar)
	// Nonzero RHS so two iterations cannot reach the threshold.
	require.NoError(t, b.Set(0, 100))

	require.NoError(t, cg.Fit(b, solver.WithMaxIter(2)))
	assert.Equal(t, solver.StatusMaxIter, cg.Status())
	assert.Equal(t, 2, cg.Iterations())
}

func TestCG_CustomStopAndX0(t *testing.T) {
	a := spdSystem(t)
	cg, err := solver.NewCG(a)
	require.NoError(t, err)

	xData := make([]float64, sysDim)
	for i := range xData {
		xData[i] = 1
	}
	xStar, err := ndarray.New(ndarray.Dense, xData, sysDim)
	require.NoError(t, err)

	// Warm start at the exact solution: the recurrence residual is zero
	// and a residual-based criterion fires on the first check.
	require.NoError(t, cg.Fit(rhsFor(t, a, xStar),
		solver.WithX0(xStar),
		solver.WithStop(solver.NewAbsError("residual", 1e-8))))

	assert.Equal(t, solver.StatusConverged, cg.Status())
	assert.Equal(t, 1, cg.Iterations())
}

func TestCG_Writeback(t *testing.T) {
	a := spdSystem(t)
	cg, err := solver.NewCG(a)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "state.gob")
	w, err := solver.NewSnapshotWriter(path)
	require.NoError(t, err)

	xData := make([]float64, sysDim)
	for i := range xData {
		xData[i] = float64(i) * 0.25
	}
	xStar, err := ndarray.New(ndarray.Dense, xData, sysDim)
	require.NoError(t, err)

	require.NoError(t, cg.Fit(rhsFor(t, a, xStar), solver.WithWriteback(w, 1)))

	it, state, err := solver.ReadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, cg.Iterations(), it)

	x, err := cg.Solution()
	require.NoError(t, err)
	require.Contains(t, state, "x")
	assert.Equal(t, x.Data(), state["x"].Data())
}

func TestNewCG_RequiresPositiveDefinite(t *testing.T) {
	m, err := operator.FromMatrix(mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	require.NoError(t, err)

	_, err = solver.NewCG(m)
	assert.ErrorIs(t, err, operator.ErrCapability)
}

func TestCG_BadInputs(t *testing.T) {
	a := spdSystem(t)
	cg, err := solver.NewCG(a)
	require.NoError(t, err)

	_, err = cg.Solution()
	assert.ErrorIs(t, err, solver.ErrNotFitted)

	short, err := ndarray.New(ndarray.Dense, []float64{1, 2}, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, cg.Fit(short), solver.ErrBadRHS)

	good, err := ndarray.New(ndarray.Dense, make([]float64, sysDim), sysDim)
	require.NoError(t, err)
	assert.ErrorIs(t, cg.Fit(good, solver.WithMaxIter(0)), solver.ErrBadOption)
}
