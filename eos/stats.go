package eos

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Statistics computes the two user-facing fit-quality scalars in P–V space:
// the coefficient of determination R² (≤ 1, negative for fits worse than the
// mean) and the root-mean-square pressure error in GPa.
//
// obs and pred must have equal, non-zero length; otherwise both scalars are
// NaN.
func Statistics(obs, pred []float64) (r2, rmse float64) {
	n := len(obs)
	if n == 0 || n != len(pred) {
		return math.NaN(), math.NaN()
	}

	r2 = stat.RSquaredFrom(pred, obs, nil)

	var ss float64
	for i := range obs {
		d := obs[i] - pred[i]
		ss += d * d
	}
	rmse = math.Sqrt(ss / float64(n))

	return r2, rmse
}

// ReducedChiSquare returns Σ wᵢ·rᵢ² / dof for residuals r with weights w.
// A nil w means uniform unit weights. Returns NaN when dof ≤ 0, so callers
// with too few degrees of freedom get an unmistakable marker rather than a
// spuriously perfect statistic.
func ReducedChiSquare(resid, w []float64, dof int) float64 {
	if dof <= 0 || len(resid) == 0 {
		return math.NaN()
	}

	var chi2 float64
	for i, r := range resid {
		wi := 1.0
		if w != nil {
			wi = w[i]
		}
		chi2 += wi * r * r
	}

	return chi2 / float64(dof)
}
