package fit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xrdtools/eosfit/eos"
	"github.com/xrdtools/eosfit/linfit"
	"github.com/xrdtools/eosfit/nlfit"
)

// Sentinel errors for the façade.
var (
	// ErrBadConfig indicates configuration rejected at construction time.
	ErrBadConfig = errors.New("fit: invalid configuration")

	// ErrAllStrategiesFailed indicates every multi-start attempt failed;
	// the individual attempt errors are joined underneath.
	ErrAllStrategiesFailed = errors.New("fit: every fitting strategy failed")
)

// Quality gates for accepting a linearized-fit result; failing any of them
// routes the call to the nonlinear fallback.
const (
	GateR2    = 0.5
	GateB0Min = linfit.DefaultB0Min
	GateB0Max = linfit.DefaultB0Max
	GateBpMin = linfit.DefaultBpMin
	GateBpMax = linfit.DefaultBpMax
)

// Config is the read-only configuration of a Fitter.
type Config struct {
	// Kind selects the equation-of-state model.
	Kind eos.Kind

	// Bounds is the box for the nonlinear fitter (V0 as multiples of
	// max(V), B0/B0′/B0″ absolute).
	Bounds nlfit.Bounds

	// MaxIterations caps the linearized fitter's V0 refinement loop.
	MaxIterations int

	// Strength is the Tikhonov regularization strength of the linearized
	// fitter; recommended range 0.1–10, higher pulling B0′ toward 4.0.
	Strength float64

	// Logger, when non-nil, receives fallback and failure diagnostics.
	// The fitters themselves never log; they return classified errors.
	Logger *slog.Logger
}

// DefaultConfig returns the production configuration: BM3, default bounds,
// 10 refinement iterations, regularization strength 1.0, no logger.
func DefaultConfig() Config {
	return Config{
		Kind:          eos.BirchMurnaghan3,
		Bounds:        nlfit.DefaultBounds(),
		MaxIterations: linfit.DefaultMaxIterations,
		Strength:      linfit.DefaultStrength,
	}
}

// Fitter fits one configured model to pressure–volume data. Construction
// validates the configuration; after that the Fitter is immutable and safe
// for concurrent use.
type Fitter struct {
	cfg Config
}

// New validates cfg and returns a ready Fitter. Configuration errors
// (unknown kind, empty windows, non-positive strength) fail fast here and
// nowhere else.
func New(cfg Config) (*Fitter, error) {
	if !cfg.Kind.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrBadConfig, eos.ErrUnknownKind)
	}
	if cfg.Strength <= 0 {
		return nil, fmt.Errorf("%w: Strength must be positive, got %g", ErrBadConfig, cfg.Strength)
	}
	if cfg.MaxIterations < 1 {
		return nil, fmt.Errorf("%w: MaxIterations must be ≥ 1, got %d", ErrBadConfig, cfg.MaxIterations)
	}
	b := cfg.Bounds
	for _, w := range [][2]float64{
		{b.V0FactorMin, b.V0FactorMax},
		{b.B0Min, b.B0Max},
		{b.BpMin, b.BpMax},
		{b.BppMin, b.BppMax},
	} {
		if w[0] > w[1] {
			return nil, fmt.Errorf("%w: bound window [%g, %g] is inverted", ErrBadConfig, w[0], w[1])
		}
	}

	return &Fitter{cfg: cfg}, nil
}

// Kind returns the configured model kind.
func (f *Fitter) Kind() eos.Kind { return f.cfg.Kind }

func (f *Fitter) linOpts() linfit.Options {
	o := linfit.DefaultOptions()
	o.Strength = f.cfg.Strength
	o.MaxIterations = f.cfg.MaxIterations

	return o
}

func (f *Fitter) nlOpts(method nlfit.Method) nlfit.Options {
	o := nlfit.DefaultOptions()
	o.Bounds = f.cfg.Bounds
	o.Method = method

	return o
}

// log writes through the configured logger, if any.
func (f *Fitter) log(level slog.Level, msg string, args ...any) {
	if f.cfg.Logger != nil {
		f.cfg.Logger.Log(context.Background(), level, msg, args...)
	}
}
