// Package linfit implements the linearized third-order Birch-Murnaghan
// fitter: a strain/stress linearization plus Tikhonov-regularized weighted
// linear regression, wrapped in an iterative V0 refinement.
//
// 🚀 Why linearize?
//
//	A naive unconstrained 3-parameter nonlinear fit of the BM3 model is
//	divergence-prone: B0′ runs away whenever the data barely constrain the
//	curvature. The BM3 model, however, becomes *exactly linear* after a
//	change of variables. For a trial V0, define per point
//
//	  f = ½[(V0/V)^⅔ − 1]              (Eulerian strain)
//	  F = P / [3·f·(1+2f)^2.5]         (normalized stress)
//
//	then BM3 is F = B0 + B0·(B0′−4)·f — a straight line in f. The hard
//	3-parameter problem collapses into a nested 1-D search over V0 plus an
//	exact weighted linear regression for (B0, B0′−4) at each trial V0.
//
// Algorithm outline:
//
//  1. Seed V0 from the data-driven guess.
//  2. At the current V0, drop ambient samples (|P| < 0.1 GPa, where F is a
//     0/0 ratio dominated by noise) and solve the regularized weighted
//     normal equations (AᵀWA + λR)β = AᵀWF over the rest, where W holds
//     weights wᵢ = 1/(fᵢ²+0.001) renormalized to sum to n (up-weighting
//     low-strain points), R selects only the slope term, and λ = Strength ×
//     mean weight. The penalty pulls B0′ softly toward the literature
//     default 4.0 when the data cannot constrain it — this is what prevents
//     runaway B0′.
//  3. Validate B0 ∈ [20, 800] and B0′ ∈ [2, 8]; on violation keep the
//     current V0 and go to the final pass.
//  4. Evaluate candidate V0 perturbations (0, ±1%, ±2%) restricted to
//     values above max(V), keep the RMSE-minimizing one, and apply the
//     damped update V0 ← 0.8·V0 + 0.2·V0_best. Stop after MaxIterations or
//     once the relative V0 change drops below 1e-6.
//  5. Final pass: redo the regression at the converged V0, derive standard
//     errors from the weighted 2×2 covariance s²(AᵀWA+λR)⁻¹, and clamp an
//     out-of-range B0′ to its nearest bound with a closed-form B0-only
//     re-solve (the clamped B0′ reports a zero error and BpFixed=true).
//
// The candidate search in step 4 sits behind the VolumeSearcher interface so
// alternative strategies can be tested independently; FixedStepSearch is the
// behavior-compatible default.
//
// Errors:
//   - ErrSingularSystem — degenerate/collinear strain range; no result.
//     Callers should escalate to the bounded nonlinear fitter.
//   - ErrBadOptions — malformed configuration, failed fast.
package linfit
