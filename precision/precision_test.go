package precision_test

import (
	"testing"

	"github.com/katalvlaran/lvlopt/precision"
	"github.com/stretchr/testify/assert"
)

// TestDefaultWidthIsDouble verifies the startup width and that Coerce is the
// identity under Double.
func TestDefaultWidthIsDouble(t *testing.T) {
	precision.Reset()

	assert.Equal(t, precision.Double, precision.Current(), "startup width must be Double")

	v := 0.1234567890123456789
	assert.Equal(t, v, precision.Coerce(v), "Coerce must be identity under Double")
}

// TestSingleRoundsThroughFloat32 verifies narrowing and the Reset lifecycle.
func TestSingleRoundsThroughFloat32(t *testing.T) {
	precision.Set(precision.Single)
	defer precision.Reset()

	v := 0.1234567890123456789
	want := float64(float32(v))
	assert.Equal(t, want, precision.Coerce(v), "Single must round through float32")
	assert.NotEqual(t, v, precision.Coerce(v), "narrowing must lose the float64 tail")

	vs := []float64{1.0000000001, 2.0000000002}
	got := precision.CoerceSlice(vs)
	assert.Equal(t, float64(float32(1.0000000001)), got[0], "slice coercion element 0")
	assert.Equal(t, float64(float32(2.0000000002)), got[1], "slice coercion element 1")
}

// TestResetRestoresDefault verifies Reset restores Double after Set(Single).
func TestResetRestoresDefault(t *testing.T) {
	precision.Set(precision.Single)
	precision.Reset()

	assert.Equal(t, precision.Double, precision.Current(), "Reset must restore Double")
}
