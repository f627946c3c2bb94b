// Package norms provides the leaf proximable functionals of lvlopt: the
// ℓ1/ℓ2/ℓ∞ norms, their squared variants, and the ball indicator
// functions — each with a closed-form apply and a dedicated
// proximal-operator algorithm.
//
// 🚀 The functionals
//
//	Functional      apply(x)        prox(x, τ) algorithm
//	---------       --------        --------------------
//	L1Norm          Σ|xᵢ|           soft-threshold at τ
//	L2Norm          ‖x‖₂            shrink toward zero by 1 − τ/max(‖x‖₂, τ)
//	SquaredL2Norm   ‖x‖₂²           closed form x/(2τ+1); quadratic, Hessian = identity
//	SquaredL1Norm   (Σ|xᵢ|)²        sort-based threshold search, or Brent
//	                                root-finding when sorting is unsuitable
//	L∞Norm          max|xᵢ|         bisection on Σmax(|x|−μ,0) − τ, then clip
//	L1Ball(r)       indicator       project: root-find the threshold, soft-threshold
//	L2Ball(r)       indicator       project: rescale onto the sphere
//	L∞Ball(r)       indicator       project: clip magnitudes to r
//
// Every apply and prox is batched: the innermost axis is the functional's
// own axis, all leading axes are independent problem instances evaluated
// in lockstep. apply returns keep-dims (..., 1) results.
//
// Edge-case policy: every ball/norm prox is a no-op on inputs that already
// satisfy the constraint or are exactly zero — no needless root-finding,
// no divide-by-zero. Root-finding brackets are derived analytically from
// convexity; a missing sign change is a fatal numerical error.
//
// Constructors accept operator.DomainAgnostic as the dimension; closed-form
// Lipschitz bounds then degrade to +Inf.
//
// Errors: ErrBadDim, ErrBadRadius, ErrBadTau.
package norms
