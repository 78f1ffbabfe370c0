package eos

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every fitter's input validation. Malformed input
// is rejected here, before any linear algebra can turn it into an opaque
// singularity failure.
var (
	// ErrLengthMismatch indicates V and P sequences of different lengths.
	ErrLengthMismatch = errors.New("eos: volume and pressure slices must have equal length")

	// ErrTooFewPoints indicates fewer than the 3 samples needed to fit.
	ErrTooFewPoints = errors.New("eos: need at least 3 data points to fit")

	// ErrNonPositiveVolume indicates a volume ≤ 0, which no model admits.
	ErrNonPositiveVolume = errors.New("eos: volumes must be strictly positive")
)

// MinPoints is the minimum sample count accepted by any fit; 4 or more is
// recommended for a stable B0 estimate.
const MinPoints = 3

// ValidateData checks the shared input contract: equal lengths, at least
// MinPoints samples, strictly positive volumes.
func ValidateData(v, p []float64) error {
	if len(v) != len(p) {
		return fmt.Errorf("%w: len(V)=%d, len(P)=%d", ErrLengthMismatch, len(v), len(p))
	}
	if len(v) < MinPoints {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, len(v))
	}

	return validateVolumes(v)
}

func validateVolumes(v []float64) error {
	for i, vi := range v {
		if vi <= 0 {
			return fmt.Errorf("%w: v[%d]=%g", ErrNonPositiveVolume, i, vi)
		}
	}

	return nil
}
