package eos

import "math"

// modelFunc evaluates one model's pressure at every volume in v using the
// parameter record p, writing into a fresh slice.
type modelFunc func(v []float64, p Params) []float64

// dispatch maps each Kind to its pressure formula. Built once at init so the
// hot path is a bounds check plus an indexed call.
var dispatch [numKinds]modelFunc

func init() {
	dispatch = [numKinds]modelFunc{
		Murnaghan:       murnaghanPressure,
		BirchMurnaghan2: birch2Pressure,
		BirchMurnaghan3: birch3Pressure,
		BirchMurnaghan4: birch4Pressure,
		Vinet:           vinetPressure,
		Tait:            taitPressure,
		NaturalStrain:   naturalStrainPressure,
	}
}

// Pressure evaluates model kind at the volumes v with parameters p and
// returns the predicted pressures in GPa. Volumes must be strictly positive;
// values outside (0, V0] are evaluated but not physically interpretable.
//
// This is the read path used for residual and extrapolation plots.
func Pressure(kind Kind, v []float64, p Params) ([]float64, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	if err := validateVolumes(v); err != nil {
		return nil, err
	}

	return dispatch[kind](v, p), nil
}

// eulerianStrain returns the Eulerian strain f = ½[(V0/V)^⅔ − 1].
func eulerianStrain(v, v0 float64) float64 {
	return 0.5 * (math.Pow(v0/v, 2.0/3.0) - 1)
}

func murnaghanPressure(v []float64, p Params) []float64 {
	out := make([]float64, len(v))
	for i, vi := range v {
		out[i] = p.B0 / p.Bp * (math.Pow(p.V0/vi, p.Bp) - 1)
	}

	return out
}

func birch2Pressure(v []float64, p Params) []float64 {
	out := make([]float64, len(v))
	for i, vi := range v {
		f := eulerianStrain(vi, p.V0)
		out[i] = 3 * p.B0 * f * math.Pow(1+2*f, 2.5)
	}

	return out
}

func birch3Pressure(v []float64, p Params) []float64 {
	out := make([]float64, len(v))
	for i, vi := range v {
		f := eulerianStrain(vi, p.V0)
		out[i] = 3 * p.B0 * f * math.Pow(1+2*f, 2.5) * (1 + 1.5*(p.Bp-4)*f)
	}

	return out
}

func birch4Pressure(v []float64, p Params) []float64 {
	// Quadratic-in-f correction coefficient; the 35/9 term restores internal
	// consistency of the 4th-order truncation.
	c4 := 1.5 * (p.B0*p.Bpp + (p.Bp-4)*(p.Bp-3) + 35.0/9.0)
	out := make([]float64, len(v))
	for i, vi := range v {
		f := eulerianStrain(vi, p.V0)
		out[i] = 3 * p.B0 * f * math.Pow(1+2*f, 2.5) *
			(1 + 1.5*(p.Bp-4)*f + c4*f*f)
	}

	return out
}

func vinetPressure(v []float64, p Params) []float64 {
	out := make([]float64, len(v))
	for i, vi := range v {
		eta := math.Cbrt(vi / p.V0)
		out[i] = 3 * p.B0 * (1 - eta) / (eta * eta) *
			math.Exp(1.5*(p.Bp-1)*(1-eta))
	}

	return out
}

// taitPressure reduces exactly to Murnaghan when B0″ vanishes; otherwise the
// B0″ contribution folds into an effective exponent c = B0′ + B0·B0″/B0′.
func taitPressure(v []float64, p Params) []float64 {
	c := p.Bp
	if math.Abs(p.Bpp) >= 1e-12 {
		c = p.Bp + p.B0*p.Bpp/p.Bp
	}
	out := make([]float64, len(v))
	for i, vi := range v {
		out[i] = p.B0 / c * (math.Pow(p.V0/vi, c) - 1)
	}

	return out
}

func naturalStrainPressure(v []float64, p Params) []float64 {
	out := make([]float64, len(v))
	for i, vi := range v {
		fn := math.Log(vi / p.V0)
		out[i] = -p.B0 * fn * (1 - 0.5*(p.Bp-2)*fn)
	}

	return out
}

// BulkModulus returns the isothermal bulk modulus K(V) = −V·dP/dV for model
// kind at each volume in v, via a central finite difference of the model
// pressure. Consumers use it to display K(P) curves alongside a fit.
func BulkModulus(kind Kind, v []float64, p Params) ([]float64, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	if err := validateVolumes(v); err != nil {
		return nil, err
	}

	out := make([]float64, len(v))
	for i, vi := range v {
		h := 1e-6 * vi
		pts := dispatch[kind]([]float64{vi + h, vi - h}, p)
		out[i] = -vi * (pts[0] - pts[1]) / (2 * h)
	}

	return out, nil
}
