// Package guess derives starting values (V0, B0, B0′) for an
// equation-of-state fit directly from the measured pressure–volume data.
//
// The estimate is deterministic and side-effect free:
//
//  1. Sort samples by ascending pressure (on a private copy).
//  2. V0 = volume at the lowest pressure; when that pressure exceeds
//     0.5 GPa, extrapolate V at P = 0 through a least-squares line over the
//     lowest-pressure points instead.
//  3. Force V0 ≥ 1.005 × max(V) so the starting point is physically valid.
//  4. B0 = −V0 × mean finite-difference slope dP/dV over the lowest-pressure
//     points, clamped to [80, 300] GPa; 150 GPa when fewer than 4 samples
//     are available.
//  5. B0′ = 4.0, the literature default.
//
// The output feeds both the linearized Birch-Murnaghan fitter (as the seed
// of its V0 refinement) and the bounded nonlinear fitter (as its starting
// vector).
package guess
