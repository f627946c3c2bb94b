// Package lvlopt is your in-memory toolkit for composing mathematical
// operators and solving the convex problems they describe — from proximal
// building blocks to batched iterative solvers.
//
// 🚀 What is lvlopt?
//
//	A library that models operators (linear maps, differentiable and
//	proximable functionals) as composable values with known analytic
//	properties, and feeds them to iterative solvers:
//		• Operator algebra: sum, scale, composition, adjoint, Gram,
//		  Moreau-envelope smoothing, loss shifting, with correct
//		  propagation of Lipschitz bounds
//		• Norm & indicator functionals: l1/l2/l-inf norms, squared norms,
//		  ball indicators, each with a closed-form apply and a dedicated
//		  proximal-operator algorithm
//		• Solvers: a generic fit/step/stop framework with Conjugate
//		  Gradient as the flagship instance
//		• Batched arrays: leading axes are independent problem instances,
//		  solved in lockstep through a pluggable backend
//
// ✨ Why choose lvlopt?
//
//   - Capability-aware – adjoint/gradient/prox are gated by explicit
//     operator properties, checked at call time
//   - Rock-solid guarantees – strict sentinel errors, fail-fast shape
//     validation, deterministic algorithms
//   - Backend-agnostic – core code only speaks the ndarray strategy
//     interface; dense and chunked implementations ship in the box
//   - Extensible – bring your own stopping criterion, writeback sink,
//     or zap logger
//
// Under the hood, everything is organized into focused subpackages:
//
//	precision/ — process-wide working-precision boundary
//	ndarray/   — batched arrays + backend strategy (dense, chunked)
//	rootfind/  — bracketed scalar root-finding (Brent)
//	operator/  — capability taxonomy & composition algebra
//	norms/     — norm and ball-indicator functionals with prox algorithms
//	solver/    — fit/step/stop framework, stopping criteria, CG
//
// Quick sketch:
//
//	A, _ := operator.Gram(lin)       // A = L*L, positive definite
//	cg, _ := solver.NewCG(A)
//	_ = cg.Fit(b)                    // min_x 0.5*x'Ax - x'b
//	x, _ := cg.Solution()
//
// Dive into examples/ for full walkthroughs.
//
//	go get github.com/katalvlaran/lvlopt
package lvlopt
