// Package eos defines the equation-of-state model library shared by every
// fitter in the module: the closed set of model kinds, the pure pressure
// formulas, the immutable fitted-parameter record, and the goodness-of-fit
// statistics attached to each record.
//
// Models (all pressures in GPa, volumes in Å³):
//
//	Murnaghan        P = (B0/B0′)·[(V0/V)^B0′ − 1]
//	BirchMurnaghan2  P = 3·B0·f·(1+2f)^2.5,            f = ½[(V0/V)^⅔ − 1]
//	BirchMurnaghan3  BM2 × [1 + 1.5·(B0′−4)·f]
//	BirchMurnaghan4  BM3 + quadratic-in-f correction depending on B0″
//	Vinet            P = 3·B0·(1−η)/η²·exp[1.5·(B0′−1)·(1−η)], η = (V/V0)^⅓
//	Tait             Murnaghan with effective exponent c = B0′ + B0·B0″/B0′
//	NaturalStrain    P = −B0·fₙ·[1 − 0.5·(B0′−2)·fₙ],  fₙ = ln(V/V0)
//
// Every formula is deterministic, vectorized and side-effect free. Volumes
// must be strictly positive; a physically meaningful fit additionally needs
// V0 ≥ max(V), but the formulas stay evaluable outside that range.
//
// Dispatch from a Kind to its formula goes through a table built once at
// package init — no reflection, no per-call map construction.
//
// Errors (sentinel):
//
//	– ErrUnknownKind       if a Kind is outside the closed set.
//	– ErrLengthMismatch    if V and P differ in length.
//	– ErrTooFewPoints      if fewer than 3 samples are supplied.
//	– ErrNonPositiveVolume if any volume is ≤ 0.
package eos
