// Package nlfit is the bounded nonlinear fallback fitter: box-constrained
// least squares over a model's native parameter vector, for every model the
// linearized fitter does not cover and for any fit with locked parameters.
//
// Two methods share one contract:
//
//   - MethodLevenbergMarquardt (default) — a projected trust-region
//     Levenberg–Marquardt iteration with a numeric Jacobian. Steps are
//     damped by an adaptive μ on the normal equations and clamped to the
//     box; the damping grows until a step reduces the cost.
//   - MethodNelderMead — derivative-free simplex search via
//     gonum.org/v1/gonum/optimize with a quadratic penalty outside the box;
//     used by the multi-start selector as a final attempt when LM fails.
//
// Bounds collapse to a point for locked parameters, which removes them from
// the optimization entirely. Weighting is uniform — unlike the linearized
// fitter there is no strain emphasis. Convergence tolerance is tight
// (1e-10) with a high evaluation budget (10000).
//
// Refine implements the locked-parameter refiner: a small-window refit
// (default ±5% with minimum absolute deltas) of only the unlocked
// parameters around an accepted base record, so a user can nudge one value
// without disturbing the rest. Refining with every parameter locked returns
// the base unchanged.
//
// Failure is a normal outcome here, not a crash: ErrNoConvergence and
// ErrInfeasibleBounds classify it for the caller, who typically logs and
// falls through to the next strategy.
package nlfit
