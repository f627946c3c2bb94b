package ndarray_test

import (
	"testing"

	"github.com/katalvlaran/lvlopt/ndarray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestZeros_ShapeValidation checks fail-fast rejection of invalid shapes.
func TestZeros_ShapeValidation(t *testing.T) {
	_, err := ndarray.Zeros(ndarray.Dense)
	assert.ErrorIs(t, err, ndarray.ErrBadShape, "empty shape must be rejected")

	_, err = ndarray.Zeros(ndarray.Dense, 3, 0)
	assert.ErrorIs(t, err, ndarray.ErrBadShape, "zero axis must be rejected")

	a, err := ndarray.Zeros(ndarray.Dense, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, a.Shape())
	assert.Equal(t, 3, a.Dim())
	assert.Equal(t, 2, a.Batch())
	assert.Equal(t, 6, a.Len())
}

// TestNew_DataLengthMustMatchShape checks the data/shape contract.
func TestNew_DataLengthMustMatchShape(t *testing.T) {
	_, err := ndarray.New(ndarray.Dense, []float64{1, 2, 3}, 2, 2)
	assert.ErrorIs(t, err, ndarray.ErrShapeMismatch)

	a, err := ndarray.New(ndarray.Dense, []float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	v, err := a.At(3)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
}

// TestRowView_SharesStorage verifies views alias the parent buffer.
func TestRowView_SharesStorage(t *testing.T) {
	a, err := ndarray.New(ndarray.Dense, []float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)

	row, err := a.RowView(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, row.Data())

	require.NoError(t, row.Set(0, 9))
	v, err := a.At(2)
	require.NoError(t, err)
	assert.Equal(t, 9.0, v, "view mutation must be visible in the parent")

	_, err = a.RowView(2)
	assert.ErrorIs(t, err, ndarray.ErrOutOfRange)
}

// TestClone_IsDeep verifies Clone detaches the buffer.
func TestClone_IsDeep(t *testing.T) {
	a := ndarray.FromSlice([]float64{1, 2, 3})
	b := a.Clone()
	require.NoError(t, b.Set(0, -1))

	v, err := a.At(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v, "clone mutation must not touch the original")
	assert.Equal(t, a.Kind(), b.Kind())
}
