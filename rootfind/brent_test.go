package rootfind_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvlopt/rootfind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBrent_Polynomial finds the positive root of x^2 - 2.
func TestBrent_Polynomial(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }

	x, err := rootfind.Brent(f, 0, 2, nil)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, x, 1e-10)
}

// TestBrent_Transcendental finds the root of cos(x) - x.
func TestBrent_Transcendental(t *testing.T) {
	f := func(x float64) float64 { return math.Cos(x) - x }

	x, err := rootfind.Brent(f, 0, 1, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.7390851332151607, x, 1e-10)
}

// TestBrent_EndpointRoot returns an endpoint when it is already a root.
func TestBrent_EndpointRoot(t *testing.T) {
	f := func(x float64) float64 { return x }

	x, err := rootfind.Brent(f, 0, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, x)
}

// TestBrent_NoBracket rejects brackets without a sign change.
func TestBrent_NoBracket(t *testing.T) {
	f := func(x float64) float64 { return x*x + 1 }

	_, err := rootfind.Brent(f, -1, 1, nil)
	assert.ErrorIs(t, err, rootfind.ErrNoBracket)
}

// TestBrent_BadInterval rejects degenerate or non-finite brackets.
func TestBrent_BadInterval(t *testing.T) {
	f := func(x float64) float64 { return x }

	_, err := rootfind.Brent(f, 1, 1, nil)
	assert.ErrorIs(t, err, rootfind.ErrBadInterval)

	_, err = rootfind.Brent(f, 2, 1, nil)
	assert.ErrorIs(t, err, rootfind.ErrBadInterval)

	_, err = rootfind.Brent(f, math.Inf(-1), 1, nil)
	assert.ErrorIs(t, err, rootfind.ErrBadInterval)
}

// TestBrent_MaxIter surfaces non-convergence under an absurdly small cap.
func TestBrent_MaxIter(t *testing.T) {
	f := func(x float64) float64 { return math.Tanh(1e6*(x-0.123456789)) + 1e-9*x }
	opts := rootfind.DefaultOptions()
	opts.MaxIter = 2

	_, err := rootfind.Brent(f, 0, 1, &opts)
	assert.ErrorIs(t, err, rootfind.ErrMaxIter)
}

// TestBrent_TinyBracketConstant works on the squared-l1 auxiliary bracket
// shape: lower endpoint 1e-12 with a steeply decreasing function.
func TestBrent_TinyBracketConstant(t *testing.T) {
	// sum(max(|x|*sqrt(tau/mu) - 2*tau, 0)) - 1 for |x| = 3, tau = 0.5.
	tau := 0.5
	f := func(mu float64) float64 {
		return math.Max(3*math.Sqrt(tau/mu)-2*tau, 0) - 1
	}

	hi := 9.0 / (4 * tau)
	mu, err := rootfind.Brent(f, 1e-12, hi, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, f(mu), 1e-9)
}
