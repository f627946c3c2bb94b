// Package solver: stopping criteria.
package solver

import (
	"math"

	"github.com/katalvlaran/lvlopt/ndarray"
)

// AbsError stops when the norm of a (possibly transformed) state variable
// drops below Eps across every batch row. The measured scalar is the
// worst row, so a batched fit stops only when all instances are done.
type AbsError struct {
	// Name is the state variable to measure.
	Name string

	// Eps is the threshold; the criterion fires when the measured norm is
	// strictly below it.
	Eps float64

	// Ord is the norm to take along each row. Default ndarray.Ord2.
	Ord ndarray.Ord

	// Transform, when set, maps the variable before measuring — e.g. the
	// explicit residual b − Ax computed from x.
	Transform func(*ndarray.Array) (*ndarray.Array, error)

	value float64
}

// NewAbsError measures ‖s[name]‖₂ against eps.
func NewAbsError(name string, eps float64) *AbsError {
	return &AbsError{Name: name, Eps: eps, Ord: ndarray.Ord2}
}

// Done implements Criterion.
func (c *AbsError) Done(s State) (bool, error) {
	v, ok := s[c.Name]
	if !ok {
		return false, ErrMissingVar
	}
	if c.Transform != nil {
		t, err := c.Transform(v)
		if err != nil {
			return false, err
		}
		v = t
	}

	norms := ndarray.BackendFor(v).Norm(v, c.Ord)
	worst := math.Inf(-1)
	for _, n := range norms.Data() {
		if n > worst {
			worst = n
		}
	}
	c.value = worst

	return worst < c.Eps, nil
}

// Value implements Criterion.
func (c *AbsError) Value() float64 { return c.value }
