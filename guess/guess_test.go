package guess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrdtools/eosfit/eos"
	"github.com/xrdtools/eosfit/guess"
)

// TestEstimate_ExtrapolatesV0 feeds an exact line V = 18 − 0.1·P whose lowest
// pressure is clearly non-ambient; the P = 0 extrapolation must recover the
// intercept, and the slope must give B0 = −V0·dP/dV = 180.
func TestEstimate_ExtrapolatesV0(t *testing.T) {
	p := []float64{1, 5, 10, 15, 20}
	v := []float64{17.9, 17.5, 17.0, 16.5, 16.0}

	g, err := guess.Estimate(v, p)
	require.NoError(t, err)
	assert.InDelta(t, 18.0, g.V0, 1e-9, "exact line must extrapolate to its intercept")
	assert.InDelta(t, 180.0, g.B0, 1e-9, "B0 = −V0 · mean(dP/dV) on an exact line")
	assert.Equal(t, 4.0, g.Bp, "B0′ guess is always the literature default")
}

// TestEstimate_AmbientDataUsesMargin verifies that with a near-ambient lowest
// pressure the guess skips extrapolation and forces V0 just above max(V).
func TestEstimate_AmbientDataUsesMargin(t *testing.T) {
	v := []float64{17.5, 17.0, 16.5, 16.0}
	p := []float64{0.1, 3, 6, 9}

	g, err := guess.Estimate(v, p)
	require.NoError(t, err)
	assert.InDelta(t, 1.005*17.5, g.V0, 1e-9, "ambient data must take the margin-forced volume")
	assert.InDelta(t, 104.3525, g.B0, 1e-3, "B0 from the mean finite-difference slope")
}

// TestEstimate_B0Clamped verifies the [80, 300] clamp on both sides.
func TestEstimate_B0Clamped(t *testing.T) {
	// Very stiff: dP/dV ≈ −400 would put B0 near 4000 GPa.
	g, err := guess.Estimate([]float64{10, 9.9, 9.8, 9.7}, []float64{1, 40, 80, 120})
	require.NoError(t, err)
	assert.Equal(t, 300.0, g.B0, "implausibly stiff slope must clamp to the upper bound")

	// Very soft: dP/dV ≈ −0.5 would put B0 near 11 GPa.
	g, err = guess.Estimate([]float64{20, 18, 16, 14}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 80.0, g.B0, "implausibly soft slope must clamp to the lower bound")
}

// TestEstimate_ShortDataDefaultsB0 verifies the minimum 3-point dataset skips
// the slope estimate entirely.
func TestEstimate_ShortDataDefaultsB0(t *testing.T) {
	g, err := guess.Estimate([]float64{17.5, 17.0, 16.5}, []float64{1, 5, 10})
	require.NoError(t, err)
	assert.Equal(t, 150.0, g.B0, "3 samples are too few for a slope; use the default")
	assert.Greater(t, g.V0, 17.5, "the V0 guess must still sit above every measured volume")
}

// TestEstimate_OrderIndependent verifies the estimate only depends on the
// (V, P) set, not on the order samples arrive in.
func TestEstimate_OrderIndependent(t *testing.T) {
	sorted, err := guess.Estimate(
		[]float64{17.9, 17.5, 17.0, 16.5, 16.0},
		[]float64{1, 5, 10, 15, 20})
	require.NoError(t, err)

	shuffled, err := guess.Estimate(
		[]float64{16.5, 17.9, 16.0, 17.0, 17.5},
		[]float64{15, 1, 20, 10, 5})
	require.NoError(t, err)

	assert.Equal(t, sorted, shuffled, "sample order must not change the estimate")
}

// TestEstimate_DoesNotMutateInput verifies the caller's slices keep their
// original ordering; Estimate sorts internal copies only.
func TestEstimate_DoesNotMutateInput(t *testing.T) {
	v := []float64{16.5, 17.9, 16.0, 17.0, 17.5}
	p := []float64{15, 1, 20, 10, 5}

	_, err := guess.Estimate(v, p)
	require.NoError(t, err)
	assert.Equal(t, []float64{16.5, 17.9, 16.0, 17.0, 17.5}, v, "volumes must not be reordered")
	assert.Equal(t, []float64{15, 1, 20, 10, 5}, p, "pressures must not be reordered")
}

// TestEstimate_RejectsMalformedInput verifies the shared validation sentinels
// pass through untouched.
func TestEstimate_RejectsMalformedInput(t *testing.T) {
	_, err := guess.Estimate([]float64{17.5, 17.0}, []float64{0, 5})
	assert.ErrorIs(t, err, eos.ErrTooFewPoints, "two points must be rejected")

	_, err = guess.Estimate([]float64{17.5, 17.0, -1}, []float64{0, 5, 10})
	assert.ErrorIs(t, err, eos.ErrNonPositiveVolume, "negative volume must be rejected")
}
