package nlfit

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the nonlinear fitter.
var (
	// ErrNoConvergence indicates the optimizer exhausted its evaluation
	// budget or stalled without an acceptable step. No result is produced;
	// callers treat this as a normal (logged) outcome.
	ErrNoConvergence = errors.New("nlfit: optimizer failed to converge")

	// ErrInfeasibleBounds indicates an empty box (lower bound above upper).
	ErrInfeasibleBounds = errors.New("nlfit: infeasible parameter bounds")

	// ErrBadOptions indicates invalid fitter configuration.
	ErrBadOptions = errors.New("nlfit: invalid options")
)

// Method selects the bounded optimizer.
type Method int

const (
	// MethodLevenbergMarquardt is the default projected trust-region
	// least-squares iteration.
	MethodLevenbergMarquardt Method = iota

	// MethodNelderMead runs gonum's derivative-free simplex search with a
	// quadratic bound penalty.
	MethodNelderMead
)

// Default configuration values.
const (
	DefaultTolerance      = 1e-10
	DefaultMaxEvaluations = 10000

	DefaultV0FactorMin = 1.0
	DefaultV0FactorMax = 1.5
	DefaultB0Min       = 50.0
	DefaultB0Max       = 500.0
	DefaultBpMin       = 2.0
	DefaultBpMax       = 7.0
	DefaultBppMin      = -0.1
	DefaultBppMax      = 0.0
)

// Bounds is the box for the native parameter vector. V0 bounds are
// expressed as multiples of the largest measured volume, so the box adapts
// to the dataset; the rest are absolute.
type Bounds struct {
	V0FactorMin, V0FactorMax float64 // × max(V)
	B0Min, B0Max             float64 // GPa
	BpMin, BpMax             float64
	BppMin, BppMax           float64 // GPa⁻¹, BM4 only
}

// DefaultBounds returns the production box.
func DefaultBounds() Bounds {
	return Bounds{
		V0FactorMin: DefaultV0FactorMin,
		V0FactorMax: DefaultV0FactorMax,
		B0Min:       DefaultB0Min,
		B0Max:       DefaultB0Max,
		BpMin:       DefaultBpMin,
		BpMax:       DefaultBpMax,
		BppMin:      DefaultBppMin,
		BppMax:      DefaultBppMax,
	}
}

// Locks marks parameters to hold fixed during optimization. A locked
// parameter's bound interval collapses to its starting value.
type Locks struct {
	V0, B0, Bp bool
}

// Any reports whether at least one parameter is locked.
func (l Locks) Any() bool { return l.V0 || l.B0 || l.Bp }

// Options configures the bounded fitter. Start from DefaultOptions.
type Options struct {
	Bounds         Bounds
	Method         Method
	Tolerance      float64
	MaxEvaluations int
}

// DefaultOptions returns the production configuration.
func DefaultOptions() Options {
	return Options{
		Bounds:         DefaultBounds(),
		Method:         MethodLevenbergMarquardt,
		Tolerance:      DefaultTolerance,
		MaxEvaluations: DefaultMaxEvaluations,
	}
}

func (o Options) validate() error {
	if o.Tolerance <= 0 {
		return fmt.Errorf("%w: Tolerance must be positive, got %g", ErrBadOptions, o.Tolerance)
	}
	if o.MaxEvaluations < 1 {
		return fmt.Errorf("%w: MaxEvaluations must be ≥ 1, got %d", ErrBadOptions, o.MaxEvaluations)
	}
	if o.Method != MethodLevenbergMarquardt && o.Method != MethodNelderMead {
		return fmt.Errorf("%w: unknown method %d", ErrBadOptions, int(o.Method))
	}
	b := o.Bounds
	for _, w := range [][2]float64{
		{b.V0FactorMin, b.V0FactorMax},
		{b.B0Min, b.B0Max},
		{b.BpMin, b.BpMax},
		{b.BppMin, b.BppMax},
	} {
		if w[0] > w[1] {
			return fmt.Errorf("%w: bound window [%g, %g] is inverted", ErrInfeasibleBounds, w[0], w[1])
		}
	}

	return nil
}
