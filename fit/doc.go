// Package fit is the public entry point of the module: it validates input,
// routes each request to the right fitter, applies the quality gates that
// decide when the linearized method's answer is trustworthy, and runs the
// multi-start selection used when a single attempt is not good enough.
//
// Routing policy:
//
//   - Birch-Murnaghan 3rd order with nothing locked → the linearized fitter
//     (package linfit). Its result must pass the quality gates
//     R² > 0.5, B0 ∈ [20, 800] GPa, B0′ ∈ [2, 8]; otherwise the call
//     degrades — with a log line when a logger is configured — to the
//     bounded nonlinear fitter.
//   - Every other model, and any fit with locked parameters → the bounded
//     nonlinear fitter (package nlfit), seeded by the data-driven guess.
//
// A Fitter is immutable configuration: bounds, iteration caps and the
// regularization strength, fixed at construction. It holds no fit-scoped
// state, so one Fitter may serve concurrent goroutines; each call returns a
// fresh record owned by its caller. There is no cancellation — a fit runs
// to its iteration ceiling; callers needing a wall-clock timeout run the
// fit on a worker they can abandon.
//
// Fit-level failures degrade to a classified error (degenerate system,
// no convergence, infeasible bounds), never a panic; only malformed
// configuration fails fast, at New.
package fit
