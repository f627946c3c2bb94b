package operator_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlopt/ndarray"
	"github.com/katalvlaran/lvlopt/operator"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleCompose
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Chain two explicit matrices into A∘B. The composite stays linear, its
//	adjoint is Bᵀ∘Aᵀ, and its Lipschitz bound is the product of the
//	operands' bounds.
//
// Use case:
//
//	Building forward models from stages without materializing the product
//	matrix.
func ExampleCompose() {
	a, err := operator.FromMatrix(mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	}))
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	b, err := operator.FromMatrix(mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	}))
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	ab, err := operator.Compose(a, b)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	x, _ := ndarray.New(ndarray.Dense, []float64{1, 2}, 2)
	y, err := ab.Apply(x)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("linear=%v\ny=%v\n", ab.Props().Has(operator.Linear), y.Data())
	// Output:
	// linear=true
	// y=[14 32]
}

// //////////////////////////////////////////////////////////////////////////////
// ExampleMoreauEnvelope
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Wrap the absolute value (ℓ1 on R) in its Moreau envelope with μ = 2.
//	The result is the Huber function: differentiable everywhere, with
//	gradient clip(x/μ, ±1).
func ExampleMoreauEnvelope() {
	f, err := operator.FromVector([]float64{1})
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	// FromVector is linear, not proximable: the envelope refuses it.
	if _, err = operator.MoreauEnvelope(f, 2); err != nil {
		fmt.Println("error:", err)
	}
	// Output:
	// error: operator: capability violation
}
