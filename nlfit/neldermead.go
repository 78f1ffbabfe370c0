package nlfit

import (
	"math"

	"gonum.org/v1/gonum/optimize"
)

// boundPenalty scales the quadratic penalty applied to simplex vertices
// outside the box; large enough that the optimum always sits inside.
const boundPenalty = 1e9

// nelderMead minimizes the sum of squared residuals over the free
// parameters with gonum's simplex search, enforcing the box through a
// quadratic penalty. It mutates bp.x in place and returns the final
// (penalty-free) cost.
func (bp *boxProblem) nelderMead(tol float64, maxEval int) (float64, error) {
	k := len(bp.free)

	x0 := make([]float64, k)
	for c, j := range bp.free {
		x0[c] = bp.x[j]
	}

	full := append([]float64(nil), bp.x...)
	objective := func(xf []float64) float64 {
		var penalty float64
		for c, j := range bp.free {
			full[j] = xf[c]
			if xf[c] < bp.lo[j] {
				d := bp.lo[j] - xf[c]
				penalty += boundPenalty * d * d
			}
			if xf[c] > bp.hi[j] {
				d := xf[c] - bp.hi[j]
				penalty += boundPenalty * d * d
			}
		}
		ss, err := bp.cost(full)
		if err != nil {
			return math.Inf(1)
		}

		return ss + penalty
	}

	problem := optimize.Problem{Func: objective}
	settings := &optimize.Settings{
		FuncEvaluations: maxEval,
		Converger: &optimize.FunctionConverge{
			Absolute:   tol,
			Iterations: 100,
		},
	}

	result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err != nil {
		return 0, ErrNoConvergence
	}

	for c, j := range bp.free {
		bp.x[j] = result.X[c]
	}
	bp.clampFree(bp.x)

	return bp.cost(bp.x)
}
