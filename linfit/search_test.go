package linfit_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xrdtools/eosfit/linfit"
)

// TestFixedStepSearch_PicksCheapestCandidate verifies the searcher returns
// the stepped candidate with the lowest cost.
func TestFixedStepSearch_PicksCheapestCandidate(t *testing.T) {
	// Cost is minimized at 10.1, which is exactly the +1% candidate of 10.
	cost := func(cand float64) (float64, bool) { return math.Abs(cand - 10.1), true }

	got := linfit.FixedStepSearch{}.Search(10.0, 9.0, cost)
	assert.InDelta(t, 10.1, got, 1e-12, "the +1% candidate minimizes this cost")
}

// TestFixedStepSearch_SkipsUnphysicalCandidates verifies candidates at or
// below vmax never win, even when they would be cheapest.
func TestFixedStepSearch_SkipsUnphysicalCandidates(t *testing.T) {
	// Cost decreases toward small candidates, but everything below vmax=9.95
	// is invalid; of the remainder, the unperturbed 10.0 is cheapest.
	cost := func(cand float64) (float64, bool) { return cand, true }

	got := linfit.FixedStepSearch{}.Search(10.0, 9.95, cost)
	assert.InDelta(t, 10.0, got, 1e-12, "the −1%/−2% candidates sit below vmax and must be skipped")
}

// TestFixedStepSearch_AllCandidatesInvalid verifies the fallback: when no
// candidate is evaluable the current V0 comes back unchanged.
func TestFixedStepSearch_AllCandidatesInvalid(t *testing.T) {
	got := linfit.FixedStepSearch{}.Search(10.0, 20.0, func(float64) (float64, bool) {
		t.Fatal("no candidate above vmax exists; cost must never run")

		return 0, false
	})
	assert.Equal(t, 10.0, got, "with nothing to evaluate the input V0 is returned")
}

// TestFixedStepSearch_SkipsFailedEvaluations verifies candidates whose cost
// cannot be computed are passed over.
func TestFixedStepSearch_SkipsFailedEvaluations(t *testing.T) {
	// Only the unperturbed candidate evaluates; the rest report failure.
	cost := func(cand float64) (float64, bool) {
		if cand != 10.0 {
			return 0, false
		}

		return 1.0, true
	}

	got := linfit.FixedStepSearch{}.Search(10.0, 9.0, cost)
	assert.Equal(t, 10.0, got, "the only evaluable candidate must win")
}

// TestFixedStepSearch_CustomSteps verifies a caller-supplied step set
// replaces the default one.
func TestFixedStepSearch_CustomSteps(t *testing.T) {
	cost := func(cand float64) (float64, bool) { return math.Abs(cand - 11.0), true }

	got := linfit.FixedStepSearch{Steps: []float64{1.0, 1.1}}.Search(10.0, 9.0, cost)
	assert.InDelta(t, 11.0, got, 1e-12, "the +10% custom step minimizes this cost")
}
