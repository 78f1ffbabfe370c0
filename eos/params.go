package eos

import "fmt"

// Params is the immutable value object produced by every fit: the fitted
// parameters with their 1-sigma standard errors, plus goodness-of-fit
// statistics. A fresh record is created by each fit invocation; records are
// plain values and never alias one another.
//
// Invariants: V0 > 0 for any record produced by a fitter; a constrained
// BirchMurnaghan3 fit has Bp ∈ [2, 8]; R2 ≤ 1 (negative for poor fits);
// N equals the input sample count.
type Params struct {
	Kind Kind

	V0    float64 // zero-pressure volume, Å³
	V0Err float64
	B0    float64 // zero-pressure bulk modulus, GPa
	B0Err float64
	Bp    float64 // B0′, first pressure derivative of B0
	BpErr float64
	Bpp   float64 // B0″, second pressure derivative (BM4/Tait), GPa⁻¹
	BppErr float64

	// BpFixed marks Bp as clamped to a bound and not refined; its BpErr is
	// reported as 0 in that case, which is distinct from "perfectly known".
	BpFixed bool

	E0 float64 // reference energy; carried for consumers, not fitted here

	R2      float64 // coefficient of determination in P–V space
	RMSE    float64 // root-mean-square pressure error, GPa
	RedChi2 float64 // reduced chi-square of the fitted residuals
	N       int     // number of samples the record was fitted to
}

// Predict evaluates this record's model at the volumes v.
func (p Params) Predict(v []float64) ([]float64, error) {
	return Pressure(p.Kind, v, p)
}

// Vector returns the model's native parameter vector: {V0, B0} for BM2,
// {V0, B0, B0′, B0″} for BM4, {V0, B0, B0′} otherwise.
func (p Params) Vector() []float64 {
	switch p.Kind.NumParams() {
	case 2:
		return []float64{p.V0, p.B0}
	case 4:
		return []float64{p.V0, p.B0, p.Bp, p.Bpp}
	default:
		return []float64{p.V0, p.B0, p.Bp}
	}
}

// FromVector builds a Params record of the given kind from a native
// parameter vector (the inverse of Params.Vector). BM2 records get the
// conventional fixed B0′ = 4.
func FromVector(kind Kind, x []float64) (Params, error) {
	if !kind.Valid() {
		return Params{}, ErrUnknownKind
	}
	if len(x) != kind.NumParams() {
		return Params{}, fmt.Errorf("eos: %s expects %d parameters, got %d",
			kind, kind.NumParams(), len(x))
	}

	p := Params{Kind: kind, V0: x[0], B0: x[1]}
	switch kind.NumParams() {
	case 2:
		p.Bp = 4 // implied by the 2nd-order truncation
	case 4:
		p.Bp, p.Bpp = x[2], x[3]
	default:
		p.Bp = x[2]
	}

	return p, nil
}

// String renders the record for logs and dialogs.
func (p Params) String() string {
	return fmt.Sprintf("%s: V0=%.4f±%.4f Å³  B0=%.2f±%.2f GPa  B0′=%.3f±%.3f  R²=%.5f RMSE=%.4f GPa (n=%d)",
		p.Kind, p.V0, p.V0Err, p.B0, p.B0Err, p.Bp, p.BpErr, p.R2, p.RMSE, p.N)
}
