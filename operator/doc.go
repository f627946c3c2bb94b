// Package operator defines the capability taxonomy for mathematical
// operators and the composition algebra that builds new operators from
// existing ones while propagating their analytic bounds.
//
// 🚀 The taxonomy
//
//	An Operator maps between real vector spaces and carries:
//	  • an immutable Shape (codomain size, domain size or DomainAgnostic)
//	  • a Props set of orthogonal capability tags (Linear, Differentiable,
//	    Proximable, SelfAdjoint, PositiveDefinite, Unitary, Quadratic)
//	  • Lipschitz upper bounds (never exact values; +Inf when unknown)
//
//	Capabilities gate operations: Adjoint needs Linear, Gradient needs
//	Differentiable, Prox needs Proximable, Hessian needs Quadratic.
//	Requesting an operation outside the capability set is a contract
//	violation surfaced as ErrCapability — use AsLinOp / AsDiffFunc /
//	AsProxFunc / AsQuadFunc to gate at call time.
//
// ✨ The algebra
//
//	Add, Scale, Compose, AdjointOf, Gram, MoreauEnvelope, ShiftLoss and
//	Hessian build composites that share (not copy) their operands and
//	compute their own bounds once, at construction:
//	  lip(A+B) ≤ lip(A)+lip(B)
//	  lip(c·A)  = |c|·lip(A)
//	  lip(A∘B) ≤ lip(A)·lip(B)
//	Operator graphs are DAGs; composites never mutate their operands.
//
// Leaves included here: Identity, ExplicitLinOp (gonum matrix-backed) and
// ExplicitLinFunc (vector-backed linear functional). The norm and
// indicator functionals live in the norms package.
//
// Errors: ErrShapeMismatch, ErrCapability, ErrNilOperator, ErrBadParameter.
package operator
