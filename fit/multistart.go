package fit

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/xrdtools/eosfit/eos"
	"github.com/xrdtools/eosfit/nlfit"
)

// Result is a multi-start outcome: the winning record and the label of the
// strategy that produced it, for interactive callers that report which
// attempt was accepted.
type Result struct {
	Params   eos.Params
	Strategy string
}

// bpStarts are the fixed B0′ starting points tried alongside the smart and
// simple guesses.
var bpStarts = []float64{3.5, 4.0, 4.5}

// FitMultiStart runs the fit under several initial conditions — the smart
// data-driven guess, a simple fixed guess, three fixed B0′ starting points,
// and a final derivative-free Nelder–Mead attempt — and keeps the best
// successful result by R² (descending), breaking ties by RMSE (ascending).
//
// It fails only when every attempt fails, returning ErrAllStrategiesFailed
// with the individual attempt errors joined underneath.
func (f *Fitter) FitMultiStart(v, p []float64) (Result, error) {
	if err := eos.ValidateData(v, p); err != nil {
		return Result{}, err
	}

	smart, smartErr := f.smartStart(v, p)
	if smartErr != nil {
		return Result{}, smartErr
	}
	lmOpts := f.nlOpts(nlfit.MethodLevenbergMarquardt)
	nmOpts := f.nlOpts(nlfit.MethodNelderMead)

	type attempt struct {
		name string
		run  func() (eos.Params, error)
	}
	attempts := []attempt{
		{"smart", func() (eos.Params, error) {
			return f.Fit(v, p)
		}},
		{"simple", func() (eos.Params, error) {
			return nlfit.Fit(f.cfg.Kind, v, p, simpleStart(v), nlfit.Locks{}, lmOpts)
		}},
	}
	for _, bp := range bpStarts {
		start := smart
		start.Bp = bp
		attempts = append(attempts, attempt{
			fmt.Sprintf("bp=%.1f", bp),
			func() (eos.Params, error) {
				return nlfit.Fit(f.cfg.Kind, v, p, start, nlfit.Locks{}, lmOpts)
			},
		})
	}
	attempts = append(attempts, attempt{"nelder-mead", func() (eos.Params, error) {
		return nlfit.Fit(f.cfg.Kind, v, p, smart, nlfit.Locks{}, nmOpts)
	}})

	var (
		best     Result
		haveBest bool
		failures []error
	)
	for _, a := range attempts {
		params, err := a.run()
		if err != nil {
			f.log(slog.LevelDebug, "multi-start attempt failed",
				"strategy", a.name, "reason", err.Error())
			failures = append(failures, fmt.Errorf("%s: %w", a.name, err))

			continue
		}
		if !haveBest || better(params, best.Params) {
			best = Result{Params: params, Strategy: a.name}
			haveBest = true
		}
	}
	if !haveBest {
		return Result{}, fmt.Errorf("%w: %w", ErrAllStrategiesFailed, errors.Join(failures...))
	}

	return best, nil
}

// better ranks candidate records: higher R² wins, equal R² falls back to
// lower RMSE.
func better(a, b eos.Params) bool {
	if a.R2 != b.R2 {
		return a.R2 > b.R2
	}

	return a.RMSE < b.RMSE
}
