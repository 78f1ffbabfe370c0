package eos_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xrdtools/eosfit/eos"
)

// TestStatistics_PerfectFit verifies R² = 1 and RMSE = 0 on an exact match.
func TestStatistics_PerfectFit(t *testing.T) {
	obs := []float64{0, 5.2, 10.8, 17.1}
	r2, rmse := eos.Statistics(obs, append([]float64(nil), obs...))
	assert.Equal(t, 1.0, r2, "exact prediction must score R² = 1")
	assert.Equal(t, 0.0, rmse, "exact prediction must score RMSE = 0")
}

// TestStatistics_KnownResiduals pins the two scalars on a hand-computed case:
// SSres = 0.1, SStot = 5 → R² = 0.98, RMSE = √(0.1/4).
func TestStatistics_KnownResiduals(t *testing.T) {
	obs := []float64{1, 2, 3, 4}
	pred := []float64{1.1, 1.9, 3.2, 3.8}

	r2, rmse := eos.Statistics(obs, pred)
	assert.InDelta(t, 0.98, r2, 1e-12, "R² must match the hand computation")
	assert.InDelta(t, math.Sqrt(0.025), rmse, 1e-12, "RMSE must match the hand computation")
}

// TestStatistics_WorseThanMean verifies R² goes negative when the prediction
// is worse than the constant mean.
func TestStatistics_WorseThanMean(t *testing.T) {
	obs := []float64{1, 2, 3, 4}
	pred := []float64{4, 3, 2, 1} // anti-correlated

	r2, _ := eos.Statistics(obs, pred)
	assert.Negative(t, r2, "anti-correlated prediction must score negative R²")
}

// TestStatistics_MalformedInput verifies the NaN marker on length mismatch
// and empty input.
func TestStatistics_MalformedInput(t *testing.T) {
	r2, rmse := eos.Statistics([]float64{1, 2}, []float64{1})
	assert.True(t, math.IsNaN(r2), "length mismatch must yield NaN R²")
	assert.True(t, math.IsNaN(rmse), "length mismatch must yield NaN RMSE")

	r2, rmse = eos.Statistics(nil, nil)
	assert.True(t, math.IsNaN(r2), "empty input must yield NaN R²")
	assert.True(t, math.IsNaN(rmse), "empty input must yield NaN RMSE")
}

// TestReducedChiSquare_Uniform pins Σrᵢ²/dof with nil (unit) weights.
func TestReducedChiSquare_Uniform(t *testing.T) {
	got := eos.ReducedChiSquare([]float64{1, 2}, nil, 2)
	assert.InDelta(t, 2.5, got, 1e-12, "(1+4)/2 with unit weights")
}

// TestReducedChiSquare_Weighted pins Σwᵢrᵢ²/dof with explicit weights.
func TestReducedChiSquare_Weighted(t *testing.T) {
	got := eos.ReducedChiSquare([]float64{1, 2}, []float64{2, 0.5}, 2)
	assert.InDelta(t, 2.0, got, 1e-12, "(2·1+0.5·4)/2")
}

// TestReducedChiSquare_NoFreedom verifies the NaN marker when dof ≤ 0, so an
// exactly-determined fit cannot masquerade as a perfect one.
func TestReducedChiSquare_NoFreedom(t *testing.T) {
	assert.True(t, math.IsNaN(eos.ReducedChiSquare([]float64{1}, nil, 0)), "dof=0 must yield NaN")
	assert.True(t, math.IsNaN(eos.ReducedChiSquare([]float64{1}, nil, -1)), "dof<0 must yield NaN")
	assert.True(t, math.IsNaN(eos.ReducedChiSquare(nil, nil, 3)), "no residuals must yield NaN")
}

// TestValidateData covers the shared input contract: equal lengths, at least
// 3 samples, strictly positive volumes.
func TestValidateData(t *testing.T) {
	v := []float64{17.5, 17.0, 16.5}
	p := []float64{0, 5.2, 10.8}

	assert.NoError(t, eos.ValidateData(v, p), "well-formed input must pass")

	err := eos.ValidateData(v, p[:2])
	assert.ErrorIs(t, err, eos.ErrLengthMismatch, "unequal lengths must error")

	err = eos.ValidateData(v[:2], p[:2])
	assert.ErrorIs(t, err, eos.ErrTooFewPoints, "two samples cannot constrain three parameters")

	err = eos.ValidateData([]float64{17.5, -1, 16.5}, p)
	assert.ErrorIs(t, err, eos.ErrNonPositiveVolume, "negative volume must error")
}
