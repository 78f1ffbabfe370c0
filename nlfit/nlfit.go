package nlfit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/xrdtools/eosfit/eos"
)

// Fit runs bounded least squares for model kind over (v, p), starting from
// the parameter values in start (only its numeric fields are read; its Kind
// is ignored). Locked parameters keep their starting value exactly: their
// bound interval collapses to a point and they leave the optimization.
//
// Weighting is uniform — no strain emphasis. On success the returned record
// carries covariance-derived standard errors (zero for locked parameters)
// and the three quality scalars. Failure returns ErrNoConvergence or
// ErrInfeasibleBounds with the model kind identified; callers treat it as a
// normal no-result outcome.
func Fit(kind eos.Kind, v, p []float64, start eos.Params, locks Locks, opts Options) (eos.Params, error) {
	if !kind.Valid() {
		return eos.Params{}, eos.ErrUnknownKind
	}
	if err := opts.validate(); err != nil {
		return eos.Params{}, err
	}
	if err := eos.ValidateData(v, p); err != nil {
		return eos.Params{}, err
	}

	vmax := floats.Max(v)
	b := opts.Bounds
	k := kind.NumParams()

	lo := make([]float64, k)
	hi := make([]float64, k)
	lo[0], hi[0] = b.V0FactorMin*vmax, b.V0FactorMax*vmax
	lo[1], hi[1] = b.B0Min, b.B0Max
	if k >= 3 {
		lo[2], hi[2] = b.BpMin, b.BpMax
	}
	if k == 4 {
		lo[3], hi[3] = b.BppMin, b.BppMax
	}

	x0 := startVector(kind, start)
	if locks.V0 {
		lo[0], hi[0] = x0[0], x0[0]
	}
	if locks.B0 {
		lo[1], hi[1] = x0[1], x0[1]
	}
	if locks.Bp && k >= 3 {
		lo[2], hi[2] = x0[2], x0[2]
	}

	return solveBounded(kind, v, p, x0, lo, hi, opts)
}

// Refinement window: each unlocked parameter may move by 5% of its current
// value, with per-parameter minimum deltas so a near-zero value never gets
// a degenerate zero-width interval.
const (
	refineWindow = 0.05

	minDeltaV0  = 0.01 // Å³
	minDeltaB0  = 1.0  // GPa
	minDeltaBp  = 0.05
	minDeltaBpp = 0.001 // GPa⁻¹
)

// Refine refits only the unlocked parameters of base within a small window
// around their current values, holding locked parameters exactly fixed.
// With every native parameter locked the base record is returned unchanged.
// It exists so a user can nudge a single parameter without disturbing
// already-accepted values elsewhere.
func Refine(base eos.Params, v, p []float64, locks Locks, opts Options) (eos.Params, error) {
	kind := base.Kind
	if !kind.Valid() {
		return eos.Params{}, eos.ErrUnknownKind
	}
	if err := opts.validate(); err != nil {
		return eos.Params{}, err
	}
	if err := eos.ValidateData(v, p); err != nil {
		return eos.Params{}, err
	}

	k := kind.NumParams()
	allLocked := locks.V0 && locks.B0
	if k >= 3 {
		allLocked = allLocked && locks.Bp
	}
	if k == 4 {
		allLocked = false // B0″ has no lock flag and always refines
	}
	if allLocked {
		return base, nil
	}

	x0 := startVector(kind, base)
	minDelta := []float64{minDeltaV0, minDeltaB0, minDeltaBp, minDeltaBpp}

	lo := make([]float64, k)
	hi := make([]float64, k)
	locked := []bool{locks.V0, locks.B0, locks.Bp, false}
	for j := 0; j < k; j++ {
		if locked[j] {
			lo[j], hi[j] = x0[j], x0[j]
			continue
		}
		d := math.Max(refineWindow*math.Abs(x0[j]), minDelta[j])
		lo[j], hi[j] = x0[j]-d, x0[j]+d
	}

	return solveBounded(kind, v, p, x0, lo, hi, opts)
}

// startVector assembles kind's native parameter vector from the numeric
// fields of s.
func startVector(kind eos.Kind, s eos.Params) []float64 {
	switch kind.NumParams() {
	case 2:
		return []float64{s.V0, s.B0}
	case 4:
		return []float64{s.V0, s.B0, s.Bp, s.Bpp}
	default:
		return []float64{s.V0, s.B0, s.Bp}
	}
}

// solveBounded clamps the start into the box, runs the selected method over
// the free parameters and assembles the result record.
func solveBounded(kind eos.Kind, v, p []float64, x0, lo, hi []float64, opts Options) (eos.Params, error) {
	for j := range lo {
		if lo[j] > hi[j] {
			return eos.Params{}, fmt.Errorf("%w: parameter %d window [%g, %g] (model %s)",
				ErrInfeasibleBounds, j, lo[j], hi[j], kind)
		}
	}

	bp := &boxProblem{
		kind: kind,
		v:    v,
		p:    p,
		x:    append([]float64(nil), x0...),
		lo:   lo,
		hi:   hi,
	}
	for j := range lo {
		if lo[j] < hi[j] {
			bp.free = append(bp.free, j)
		}
		// Locked or not, the start must sit inside the box.
		bp.x[j] = math.Min(math.Max(bp.x[j], lo[j]), hi[j])
	}

	var (
		cost float64
		err  error
	)
	switch {
	case len(bp.free) == 0:
		// Everything fixed: nothing to optimize, just score the point.
		cost, err = bp.cost(bp.x)
	case opts.Method == MethodNelderMead:
		cost, err = bp.nelderMead(opts.Tolerance, opts.MaxEvaluations)
	default:
		cost, err = bp.levenbergMarquardt(opts.Tolerance, opts.MaxEvaluations)
	}
	if err != nil {
		return eos.Params{}, fmt.Errorf("%w (model %s)", err, kind)
	}

	return bp.assemble(cost)
}

// assemble builds the final record: parameters from the solved vector,
// standard errors from the covariance, statistics in P–V space.
func (bp *boxProblem) assemble(cost float64) (eos.Params, error) {
	params, err := eos.FromVector(bp.kind, bp.x)
	if err != nil {
		return eos.Params{}, err
	}

	errs := bp.standardErrors(cost)
	params.V0Err = errs[0]
	params.B0Err = errs[1]
	if len(errs) >= 3 {
		params.BpErr = errs[2]
	}
	if len(errs) == 4 {
		params.BppErr = errs[3]
	}

	pred, err := eos.Pressure(bp.kind, bp.v, params)
	if err != nil {
		return eos.Params{}, err
	}
	params.R2, params.RMSE = eos.Statistics(bp.p, pred)
	params.RedChi2 = eos.ReducedChiSquare(residOf(bp.p, pred), nil, len(bp.v)-len(bp.free))
	params.N = len(bp.v)

	return params, nil
}

func residOf(obs, pred []float64) []float64 {
	r := make([]float64, len(obs))
	floats.SubTo(r, obs, pred)

	return r
}
