package fit

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"

	"github.com/xrdtools/eosfit/eos"
	"github.com/xrdtools/eosfit/guess"
	"github.com/xrdtools/eosfit/linfit"
	"github.com/xrdtools/eosfit/nlfit"
)

// bppStart seeds the B0″ parameter for BM4 fits: inside the default
// [−0.1, 0] box, away from both edges.
const bppStart = -0.02

// Fit fits the configured model to (v, p) and returns a fresh parameter
// record. For Birch-Murnaghan 3rd order the linearized fitter runs first;
// its result is kept only if it passes the quality gates, otherwise the
// call degrades to the bounded nonlinear fitter. All other models go
// straight to the nonlinear fitter, seeded by the data-driven guess.
func (f *Fitter) Fit(v, p []float64) (eos.Params, error) {
	if err := eos.ValidateData(v, p); err != nil {
		return eos.Params{}, err
	}

	if f.cfg.Kind == eos.BirchMurnaghan3 {
		params, err := linfit.Fit(v, p, f.linOpts())
		switch {
		case err != nil:
			f.log(slog.LevelWarn, "linearized fit failed, falling back to nonlinear",
				"model", f.cfg.Kind.String(), "reason", err.Error())
		case !passesGates(params):
			f.log(slog.LevelWarn, "linearized fit failed quality gates, falling back to nonlinear",
				"model", f.cfg.Kind.String(), "r2", params.R2, "b0", params.B0, "bp", params.Bp)
		default:
			return params, nil
		}
	}

	start, err := f.smartStart(v, p)
	if err != nil {
		return eos.Params{}, err
	}

	return nlfit.Fit(f.cfg.Kind, v, p, start, nlfit.Locks{}, f.nlOpts(nlfit.MethodLevenbergMarquardt))
}

// FitWithLocks fits the configured model with the given parameters held
// fixed at their values in start. Locked fits always use the bounded
// nonlinear fitter, regardless of model kind.
func (f *Fitter) FitWithLocks(v, p []float64, start eos.Params, locks nlfit.Locks) (eos.Params, error) {
	if err := eos.ValidateData(v, p); err != nil {
		return eos.Params{}, err
	}

	return nlfit.Fit(f.cfg.Kind, v, p, start, locks, f.nlOpts(nlfit.MethodLevenbergMarquardt))
}

// Refine nudges the unlocked parameters of an accepted record within a
// small window (see nlfit.Refine). A fully locked record is returned
// unchanged.
func (f *Fitter) Refine(v, p []float64, base eos.Params, locks nlfit.Locks) (eos.Params, error) {
	return nlfit.Refine(base, v, p, locks, f.nlOpts(nlfit.MethodLevenbergMarquardt))
}

// passesGates applies the acceptance window for a linearized-fit result.
func passesGates(p eos.Params) bool {
	return p.R2 > GateR2 &&
		p.B0 >= GateB0Min && p.B0 <= GateB0Max &&
		p.Bp >= GateBpMin && p.Bp <= GateBpMax
}

// smartStart builds the data-driven starting record for a nonlinear fit.
func (f *Fitter) smartStart(v, p []float64) (eos.Params, error) {
	g, err := guess.Estimate(v, p)
	if err != nil {
		return eos.Params{}, err
	}

	return eos.Params{V0: g.V0, B0: g.B0, Bp: g.Bp, Bpp: bppStart}, nil
}

// simpleStart is the fixed fallback start: V0 just above the largest
// measured volume, B0 at the generic 150 GPa, B0′ at 4.
func simpleStart(v []float64) eos.Params {
	return eos.Params{V0: 1.05 * floats.Max(v), B0: 150, Bp: 4, Bpp: bppStart}
}
