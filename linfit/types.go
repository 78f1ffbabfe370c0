package linfit

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the linearized fitter.
var (
	// ErrSingularSystem indicates the regularized linear system could not be
	// solved: the strain range is degenerate or collinear. The fit produces
	// no result; escalate to the nonlinear fallback.
	ErrSingularSystem = errors.New("linfit: regularized linear system is singular")

	// ErrBadOptions indicates invalid fitter configuration.
	ErrBadOptions = errors.New("linfit: invalid options")
)

// Default configuration values.
const (
	// DefaultStrength is the Tikhonov regularization strength; the useful
	// range is roughly 0.1–10, higher pulling B0′ harder toward 4.0.
	DefaultStrength = 1.0

	// DefaultMaxIterations caps the V0 refinement loop.
	DefaultMaxIterations = 10

	// Validity window for the regression output; results outside it stop
	// the V0 refinement and, for B0′, engage the final clamp.
	DefaultB0Min = 20.0
	DefaultB0Max = 800.0
	DefaultBpMin = 2.0
	DefaultBpMax = 8.0
)

// Options configures the linearized fitter. The zero value is not usable;
// start from DefaultOptions.
type Options struct {
	// Strength scales the Tikhonov penalty λ = Strength × mean weight
	// applied to the slope (B0′−4) term.
	Strength float64

	// MaxIterations caps the V0 refinement loop.
	MaxIterations int

	// Validity window for B0 (GPa) and B0′. A mid-loop violation freezes
	// V0; a final-pass B0′ violation clamps to the nearest bound.
	B0Min, B0Max float64
	BpMin, BpMax float64

	// Searcher proposes V0 candidates each iteration. Nil selects
	// FixedStepSearch with the standard step set.
	Searcher VolumeSearcher
}

// DefaultOptions returns the production configuration.
func DefaultOptions() Options {
	return Options{
		Strength:      DefaultStrength,
		MaxIterations: DefaultMaxIterations,
		B0Min:         DefaultB0Min,
		B0Max:         DefaultB0Max,
		BpMin:         DefaultBpMin,
		BpMax:         DefaultBpMax,
	}
}

// validate fails fast on configuration that could not have come from
// DefaultOptions plus sensible edits.
func (o Options) validate() error {
	if o.Strength <= 0 {
		return fmt.Errorf("%w: Strength must be positive, got %g", ErrBadOptions, o.Strength)
	}
	if o.MaxIterations < 1 {
		return fmt.Errorf("%w: MaxIterations must be ≥ 1, got %d", ErrBadOptions, o.MaxIterations)
	}
	if o.B0Min >= o.B0Max {
		return fmt.Errorf("%w: B0 window [%g, %g] is empty", ErrBadOptions, o.B0Min, o.B0Max)
	}
	if o.BpMin >= o.BpMax {
		return fmt.Errorf("%w: B0′ window [%g, %g] is empty", ErrBadOptions, o.BpMin, o.BpMax)
	}

	return nil
}
