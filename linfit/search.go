package linfit

// VolumeSearcher proposes the next trial V0 during the refinement loop.
// Implementations receive the current V0, the largest measured volume vmax
// (candidates at or below vmax are physically invalid and must be skipped),
// and a cost function returning the fit RMSE for a candidate; the boolean is
// false when the candidate could not be evaluated. Search returns the
// cost-minimizing candidate, falling back to v0 itself when nothing better
// can be evaluated.
type VolumeSearcher interface {
	Search(v0, vmax float64, cost func(v0 float64) (rmse float64, ok bool)) float64
}

// FixedStepSearch is the default searcher: a local hill climb over a fixed
// set of multiplicative V0 perturbations, keeping the best by RMSE. The
// standard step set {0, ±1%, ±2%} is kept verbatim for behavioral
// compatibility with the original refinement.
type FixedStepSearch struct {
	// Steps holds V0 multipliers; empty selects DefaultSteps.
	Steps []float64
}

// DefaultSteps is the standard perturbation set: unchanged, ±1%, ±2%.
var DefaultSteps = []float64{1.0, 1.01, 0.99, 1.02, 0.98}

// Search evaluates each stepped candidate above vmax and returns the one
// with the lowest RMSE.
func (s FixedStepSearch) Search(v0, vmax float64, cost func(float64) (float64, bool)) float64 {
	steps := s.Steps
	if len(steps) == 0 {
		steps = DefaultSteps
	}

	best := v0
	bestCost, haveBest := 0.0, false
	for _, m := range steps {
		cand := v0 * m
		if cand <= vmax {
			continue
		}
		c, ok := cost(cand)
		if !ok {
			continue
		}
		if !haveBest || c < bestCost {
			best, bestCost, haveBest = cand, c, true
		}
	}

	return best
}
