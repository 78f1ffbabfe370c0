package linfit

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/xrdtools/eosfit/eos"
	"github.com/xrdtools/eosfit/guess"
)

// Damped V0 update: V0 ← damping·V0 + (1−damping)·V0_best.
const (
	v0Damping  = 0.8
	v0RelTol   = 1e-6
	v0ErrScale = 0.5 // propagated V0 error: 0.5·std(resid)·V0/B0
)

// Fit determines all three BM3 parameters (V0, B0, B0′) from (v, p) via the
// strain/stress linearization described in the package documentation, and
// returns a complete parameter record with standard errors and statistics.
//
// R² and RMSE are computed in P–V space for comparability with the
// nonlinear fitters; reduced χ² comes from the weighted f–F residuals.
//
// Returns ErrSingularSystem (no result) when the strain range is degenerate,
// and the eos validation sentinels for malformed input.
func Fit(v, p []float64, opts Options) (eos.Params, error) {
	if err := opts.validate(); err != nil {
		return eos.Params{}, err
	}
	if err := eos.ValidateData(v, p); err != nil {
		return eos.Params{}, err
	}

	searcher := opts.Searcher
	if searcher == nil {
		searcher = FixedStepSearch{}
	}

	g, err := guess.Estimate(v, p)
	if err != nil {
		return eos.Params{}, err
	}

	vmax := floats.Max(v)
	v0 := g.V0
	history := []float64{v0}

	// cost evaluates the P–V RMSE of the full linearized fit at a candidate
	// V0; the searcher minimizes it.
	cost := func(cand float64) (float64, bool) {
		reg, cerr := solveRegularized(v, p, cand, opts.Strength)
		if cerr != nil || reg.b0 <= 0 {
			return 0, false
		}
		pred := predictBM3(v, cand, reg.b0, reg.slope/reg.b0+4)
		_, rmse := eos.Statistics(p, pred)

		return rmse, true
	}

	for iter := 0; iter < opts.MaxIterations; iter++ {
		reg, serr := solveRegularized(v, p, v0, opts.Strength)
		if serr != nil {
			return eos.Params{}, serr
		}

		bp := reg.slope/reg.b0 + 4
		if reg.b0 < opts.B0Min || reg.b0 > opts.B0Max || bp < opts.BpMin || bp > opts.BpMax {
			// The regression left the physical window; keep the current V0
			// and let the final pass clamp what it can.
			break
		}

		best := searcher.Search(v0, vmax, cost)
		next := v0Damping*v0 + (1-v0Damping)*best
		rel := math.Abs(next-v0) / v0
		v0 = next
		history = append(history, v0)
		if rel < v0RelTol {
			break
		}
	}

	// Final pass at the converged V0.
	reg, serr := solveRegularized(v, p, v0, opts.Strength)
	if serr != nil {
		return eos.Params{}, serr
	}

	b0 := reg.b0
	bp := reg.slope/b0 + 4

	var b0Err, bpErr float64
	if c00, c01, c11, ok := reg.covariance(); ok {
		b0Err = math.Sqrt(math.Max(c00, 0))
		// B0′−4 = slope/B0; first-order propagation including covariance.
		varBp := c11/(b0*b0) +
			c00*reg.slope*reg.slope/math.Pow(b0, 4) -
			2*c01*reg.slope/math.Pow(b0, 3)
		bpErr = math.Sqrt(math.Max(varBp, 0))
	}

	bpFixed := false
	if bp < opts.BpMin || bp > opts.BpMax {
		// Clamp to the nearest bound and re-solve for B0 alone in closed
		// form: with B0′ fixed, F = B0·c with c = 1+(B0′−4)·f, so B0 is the
		// weighted mean of F/c. The zero error marks "not refined".
		bp = math.Min(math.Max(bp, opts.BpMin), opts.BpMax)
		var num, den float64
		for i := range reg.f {
			c := 1 + (bp-4)*reg.f[i]
			num += reg.w[i] * reg.bigF[i] / c
			den += reg.w[i]
		}
		b0 = num / den
		bpErr = 0
		bpFixed = true
	}

	pred := predictBM3(v, v0, b0, bp)
	r2, rmse := eos.Statistics(p, pred)

	// V0 uncertainty: spread of the last iterates when the loop ran long
	// enough, else a propagated estimate from the pressure residuals.
	var v0Err float64
	if len(history) >= 3 {
		v0Err = stat.StdDev(history[len(history)-3:], nil)
	} else {
		resid := make([]float64, len(p))
		floats.SubTo(resid, p, pred)
		v0Err = v0ErrScale * stat.StdDev(resid, nil) * v0 / b0
	}

	fResid := make([]float64, len(reg.f))
	for i := range reg.f {
		fResid[i] = reg.bigF[i] - (b0 + b0*(bp-4)*reg.f[i])
	}

	return eos.Params{
		Kind:    eos.BirchMurnaghan3,
		V0:      v0,
		V0Err:   v0Err,
		B0:      b0,
		B0Err:   b0Err,
		Bp:      bp,
		BpErr:   bpErr,
		BpFixed: bpFixed,
		R2:      r2,
		RMSE:    rmse,
		RedChi2: eos.ReducedChiSquare(fResid, reg.w, len(reg.f)-2),
		N:       len(v),
	}, nil
}

// predictBM3 evaluates the BM3 pressure at v for the given parameters.
func predictBM3(v []float64, v0, b0, bp float64) []float64 {
	pred, _ := eos.Pressure(eos.BirchMurnaghan3, v, eos.Params{
		Kind: eos.BirchMurnaghan3, V0: v0, B0: b0, Bp: bp,
	})

	return pred
}
