// Package solver provides the iterative solver framework of lvlopt and its
// first concrete instance, the Conjugate Gradient method.
//
// 🚀 The framework
//
// A solver owns a named State (variables mutated in place each iteration)
// and drives a fit loop: init → step → stop-check → cadenced snapshot
// writeback → terminal Status. Stopping is delegated to a Criterion; the
// default for CG is the explicit residual ‖b − Ax‖₂ dropping below 1e-4.
//
// Exhausting the iteration budget is a reported terminal state
// (StatusMaxIter), never an error: partial solutions are still solutions.
//
// 🚀 Collaborators
//
//   - Criterion — pluggable stopping rule (AbsError ships in the box).
//   - Writer — snapshot sink; SnapshotWriter persists gob-encoded,
//     deep-copied state with an atomic rename, so a crash mid-write never
//     corrupts the previous snapshot.
//   - *zap.Logger — optional per-cadence progress logging, Nop by default.
//
// ✨ Quick start
//
//	cg, _ := solver.NewCG(a)                 // a: positive-definite LinOp
//	_ = cg.Fit(b, solver.WithMaxIter(500))
//	x, _ := cg.Solution()
//
// All solver entry points are batched: a right-hand side with leading axes
// runs one independent problem instance per row, in lockstep.
package solver
