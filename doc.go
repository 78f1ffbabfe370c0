// Package eosfit fits equation-of-state (EoS) compression models to
// measured pressure–volume data from high-pressure X-ray diffraction.
//
// 🚀 What is eosfit?
//
//	A numeric library that takes parallel volume (Å³) and pressure (GPa)
//	samples and recovers physically-bounded EoS parameters — the ambient
//	volume V0, the bulk modulus B0 and its pressure derivatives — together
//	with 1-sigma uncertainties and goodness-of-fit statistics:
//	  • Seven analytic models: Murnaghan, Birch-Murnaghan (2nd/3rd/4th
//	    order), Vinet, Tait and Natural Strain
//	  • A strain-linearized, Tikhonov-regularized fitter for the
//	    Birch-Murnaghan 3rd-order model that avoids the divergence failure
//	    mode of naive 3-parameter nonlinear optimization
//	  • A bounded trust-region nonlinear fitter for every other model and
//	    as a fallback when the linear method fails its quality gates
//	  • Parameter locking and small-window refinement for interactive use
//	  • A multi-start selector that keeps the best of several attempts
//
// ✨ Why choose eosfit?
//
//   - Graceful degradation – every fit failure is a classified error, never
//     a panic; callers escalate from linear to nonlinear to multi-start
//   - Immutable results – each fit returns a fresh parameter record; fitter
//     configuration is read-only, so concurrent fits are safe
//   - Honest statistics – R², RMSE and reduced χ² on every record, with
//     covariance-derived standard errors
//
// The module is organized as one package per component:
//
//	eos/    — model formulas, the Kind enum, the Params record, statistics
//	guess/  — data-driven starting values for (V0, B0, B0′)
//	linfit/ — the linearized third-order Birch-Murnaghan fitter
//	nlfit/  — bounded nonlinear least squares + locked-parameter refinement
//	fit/    — façade: validation, quality gates, multi-start selection
//
// Quick start:
//
//	cfg := fit.DefaultConfig()
//	cfg.Kind = eos.BirchMurnaghan3
//	f, err := fit.New(cfg)
//	if err != nil { ... }
//	params, err := f.Fit(volumes, pressures)
//
// All units are GPa and Å³ throughout; no conversion happens inside.
package eosfit
