package fit_test

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrdtools/eosfit/eos"
	"github.com/xrdtools/eosfit/fit"
	"github.com/xrdtools/eosfit/nlfit"
)

// measured returns a realistic 8-point compression dataset with an ambient
// sample, the shape of data a diffraction run actually produces.
func measured() (v, p []float64) {
	return []float64{17.5, 17.0, 16.5, 16.0, 15.5, 15.0, 14.5, 14.0},
		[]float64{0, 5.2, 10.8, 17.1, 24.2, 32.1, 41.0, 51.0}
}

// softBM3 generates noise-free data for an implausibly soft material
// (B0 = 10 GPa), which the linearized fitter recovers faithfully but whose
// B0 falls outside the acceptance window.
func softBM3(t *testing.T) (v, p []float64) {
	t.Helper()
	v = make([]float64, 10)
	for i := range v {
		v[i] = 11.5/1.005 - 0.15*float64(i)
	}
	p, err := eos.Pressure(eos.BirchMurnaghan3, v, eos.Params{V0: 11.5, B0: 10, Bp: 4})
	require.NoError(t, err)

	return v, p
}

// TestNew_Validation covers the fail-fast configuration checks.
func TestNew_Validation(t *testing.T) {
	_, err := fit.New(fit.DefaultConfig())
	assert.NoError(t, err, "the default configuration must construct")

	cfg := fit.DefaultConfig()
	cfg.Kind = eos.Kind(99)
	_, err = fit.New(cfg)
	assert.ErrorIs(t, err, fit.ErrBadConfig, "unknown kind must fail at construction")

	cfg = fit.DefaultConfig()
	cfg.Strength = 0
	_, err = fit.New(cfg)
	assert.ErrorIs(t, err, fit.ErrBadConfig, "non-positive strength must fail at construction")

	cfg = fit.DefaultConfig()
	cfg.MaxIterations = 0
	_, err = fit.New(cfg)
	assert.ErrorIs(t, err, fit.ErrBadConfig, "zero iterations must fail at construction")

	cfg = fit.DefaultConfig()
	cfg.Bounds.BpMin, cfg.Bounds.BpMax = 7, 2
	_, err = fit.New(cfg)
	assert.ErrorIs(t, err, fit.ErrBadConfig, "inverted bounds must fail at construction")
}

// TestFitter_FitBM3 runs the default (linearized) route on measured data and
// checks the full record: plausible parameters, tight fit, uncertainties.
func TestFitter_FitBM3(t *testing.T) {
	f, err := fit.New(fit.DefaultConfig())
	require.NoError(t, err)

	v, p := measured()
	got, err := f.Fit(v, p)
	require.NoError(t, err)

	assert.Equal(t, eos.BirchMurnaghan3, got.Kind)
	assert.Greater(t, got.V0, 17.5, "V0 must sit above every measured volume")
	assert.Less(t, got.V0, 17.9)
	assert.Greater(t, got.B0, 120.0)
	assert.Less(t, got.B0, 160.0)
	assert.InDelta(t, 4.0, got.Bp, 0.5)
	assert.Greater(t, got.R2, 0.99, "the measured curve must be fit tightly")
	assert.Positive(t, got.B0Err)
	assert.Equal(t, 8, got.N)
}

// TestFitter_FitMurnaghan routes a non-BM3 model straight to the nonlinear
// fitter, seeded by the data-driven guess.
func TestFitter_FitMurnaghan(t *testing.T) {
	cfg := fit.DefaultConfig()
	cfg.Kind = eos.Murnaghan
	f, err := fit.New(cfg)
	require.NoError(t, err)

	v, p := measured()
	got, err := f.Fit(v, p)
	require.NoError(t, err)

	assert.Equal(t, eos.Murnaghan, got.Kind)
	assert.Greater(t, got.R2, 0.95, "Murnaghan must still track the measured curve")
	assert.GreaterOrEqual(t, got.V0, 17.5, "the box keeps V0 at or above max(V)")
}

// TestFitter_TooFewPoints verifies a 2-point dataset fails with the shared
// sentinel and no partial record.
func TestFitter_TooFewPoints(t *testing.T) {
	f, err := fit.New(fit.DefaultConfig())
	require.NoError(t, err)

	got, err := f.Fit([]float64{17.5, 17.0}, []float64{0, 5.2})
	assert.ErrorIs(t, err, eos.ErrTooFewPoints, "two samples cannot constrain three parameters")
	assert.Zero(t, got, "no partial record on failure")
}

// TestFitter_GateFallback drives the quality-gate fallback: the linearized
// fitter recovers the soft-material curve faithfully, but its B0 = 10 GPa
// sits outside the acceptance window, so the call must degrade to the
// nonlinear fitter — logged through the configured logger — and still
// converge once the bounds admit the soft solution.
func TestFitter_GateFallback(t *testing.T) {
	var buf bytes.Buffer
	cfg := fit.DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	cfg.Bounds.B0Min = 5 // admit the soft material the default box excludes
	f, err := fit.New(cfg)
	require.NoError(t, err)

	v, p := softBM3(t)
	got, err := f.Fit(v, p)
	require.NoError(t, err, "the nonlinear fallback must converge")

	assert.Contains(t, buf.String(), "quality gates", "the fallback must be logged")
	assert.InEpsilon(t, 10.0, got.B0, 1e-3, "the fallback must recover the soft B0")
	assert.InEpsilon(t, 11.5, got.V0, 1e-3)
	assert.Greater(t, got.R2, 0.999)
}

// TestFitter_FitWithLocks verifies locked fits bypass the linearized route
// and hold the pinned value exactly.
func TestFitter_FitWithLocks(t *testing.T) {
	f, err := fit.New(fit.DefaultConfig())
	require.NoError(t, err)

	v, p := measured()
	start := eos.Params{V0: 17.8, B0: 150, Bp: 4}
	got, err := f.FitWithLocks(v, p, start, nlfit.Locks{V0: true})
	require.NoError(t, err)

	assert.Equal(t, 17.8, got.V0, "the locked V0 must not move")
	assert.Equal(t, 0.0, got.V0Err)
	assert.Greater(t, got.R2, 0.99)
}

// TestFitter_Refine verifies the façade refinement honors locks, including
// the fully locked identity case.
func TestFitter_Refine(t *testing.T) {
	f, err := fit.New(fit.DefaultConfig())
	require.NoError(t, err)

	v, p := measured()
	base, err := f.Fit(v, p)
	require.NoError(t, err)

	allLocked := nlfit.Locks{V0: true, B0: true, Bp: true}
	same, err := f.Refine(v, p, base, allLocked)
	require.NoError(t, err)
	assert.Equal(t, base, same, "a fully locked record must come back unchanged")

	refined, err := f.Refine(v, p, base, nlfit.Locks{V0: true, Bp: true})
	require.NoError(t, err)
	assert.Equal(t, base.V0, refined.V0, "locked V0 must hold through refinement")
	assert.Equal(t, base.Bp, refined.Bp, "locked B0′ must hold through refinement")
	assert.InDelta(t, base.B0, refined.B0, 0.05*base.B0+1e-9, "B0 must stay inside its window")
}

// TestFitter_ConcurrentUse runs one Fitter from many goroutines; every call
// must return the identical record, since a Fitter holds no fit-scoped state.
func TestFitter_ConcurrentUse(t *testing.T) {
	f, err := fit.New(fit.DefaultConfig())
	require.NoError(t, err)

	v, p := measured()
	want, err := f.Fit(v, p)
	require.NoError(t, err)

	const workers = 8
	results := make([]eos.Params, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.Fit(v, p)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i], "worker %d must fit", i)
		assert.Equal(t, want, results[i], "worker %d must reproduce the sequential result", i)
	}
}
