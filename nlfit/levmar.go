package nlfit

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/xrdtools/eosfit/eos"
)

// boxProblem is one bounded least-squares instance: minimize
// Σ (model(vᵢ; x) − pᵢ)² over the free entries of x inside [lo, hi].
type boxProblem struct {
	kind   eos.Kind
	v, p   []float64
	x      []float64 // full native vector; locked entries never move
	lo, hi []float64
	free   []int // indices of x with lo < hi

	evals int // model evaluation counter, shared across the whole solve
}

// residuals writes model(v; x) − p into dst and counts one evaluation.
func (bp *boxProblem) residuals(x, dst []float64) error {
	params, err := eos.FromVector(bp.kind, x)
	if err != nil {
		return err
	}
	pred, err := eos.Pressure(bp.kind, bp.v, params)
	if err != nil {
		return err
	}
	for i := range pred {
		dst[i] = pred[i] - bp.p[i]
	}
	bp.evals++

	return nil
}

// cost returns the sum of squared residuals at x.
func (bp *boxProblem) cost(x []float64) (float64, error) {
	r := make([]float64, len(bp.v))
	if err := bp.residuals(x, r); err != nil {
		return 0, err
	}
	var ss float64
	for _, ri := range r {
		ss += ri * ri
	}

	return ss, nil
}

// clampFree projects the free entries of x into the box.
func (bp *boxProblem) clampFree(x []float64) {
	for _, j := range bp.free {
		if x[j] < bp.lo[j] {
			x[j] = bp.lo[j]
		}
		if x[j] > bp.hi[j] {
			x[j] = bp.hi[j]
		}
	}
}

// jacobian fills J (n × len(free)) with forward differences over the free
// parameters, stepping backward when a parameter sits at its upper bound.
func (bp *boxProblem) jacobian(x, r0 []float64, jac *mat.Dense) error {
	n := len(bp.v)
	rh := make([]float64, n)
	xt := make([]float64, len(x))
	for c, j := range bp.free {
		h := 1e-8 * math.Max(math.Abs(x[j]), 1)
		if x[j]+h > bp.hi[j] {
			h = -h
		}
		copy(xt, x)
		xt[j] += h
		if err := bp.residuals(xt, rh); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			jac.Set(i, c, (rh[i]-r0[i])/h)
		}
	}

	return nil
}

// levenbergMarquardt runs the projected damped-least-squares iteration.
// It mutates bp.x in place and returns the final cost.
func (bp *boxProblem) levenbergMarquardt(tol float64, maxEval int) (float64, error) {
	n, k := len(bp.v), len(bp.free)
	r := make([]float64, n)
	if err := bp.residuals(bp.x, r); err != nil {
		return 0, err
	}
	cost := dot(r, r)

	jac := mat.NewDense(n, k, nil)
	mu := 0.0 // initialized from the first JᵀJ diagonal

	for bp.evals < maxEval {
		if err := bp.jacobian(bp.x, r, jac); err != nil {
			return 0, err
		}

		var jtj mat.Dense
		jtj.Mul(jac.T(), jac)
		grad := make([]float64, k)
		for c := 0; c < k; c++ {
			var g float64
			for i := 0; i < n; i++ {
				g += jac.At(i, c) * r[i]
			}
			grad[c] = g
		}
		if maxAbs(grad) < tol {
			break
		}

		if mu == 0 {
			mu = 1e-3 * maxDiag(&jtj)
			if mu <= 0 {
				mu = 1e-3
			}
		}

		// Inner damping loop: grow μ until a step reduces the cost.
		improved := false
		var stepNorm float64
		for bp.evals < maxEval {
			a := mat.NewDense(k, k, nil)
			a.Copy(&jtj)
			for c := 0; c < k; c++ {
				d := jtj.At(c, c)
				if d <= 0 {
					d = 1
				}
				a.Set(c, c, jtj.At(c, c)+mu*d)
			}
			rhs := mat.NewVecDense(k, nil)
			for c := 0; c < k; c++ {
				rhs.SetVec(c, -grad[c])
			}
			var delta mat.VecDense
			if err := delta.SolveVec(a, rhs); err != nil {
				mu *= 2
				if mu > 1e12 {
					return cost, ErrNoConvergence
				}
				continue
			}

			trial := append([]float64(nil), bp.x...)
			stepNorm = 0
			for c, j := range bp.free {
				trial[j] += delta.AtVec(c)
				stepNorm = math.Max(stepNorm, math.Abs(delta.AtVec(c)))
			}
			bp.clampFree(trial)

			trialCost, err := bp.cost(trial)
			if err != nil {
				return cost, err
			}
			if trialCost < cost {
				copy(bp.x, trial)
				improvedBy := cost - trialCost
				cost = trialCost
				mu = math.Max(mu/3, 1e-12)
				improved = true
				if err := bp.residuals(bp.x, r); err != nil {
					return cost, err
				}
				if improvedBy <= tol*math.Max(cost, tol) {
					return cost, nil
				}

				break
			}
			mu *= 2
			if mu > 1e12 {
				return cost, ErrNoConvergence
			}
		}
		if !improved {
			return cost, ErrNoConvergence
		}
		if stepConverged(bp, stepNorm, tol) {
			return cost, nil
		}
	}

	if bp.evals >= maxEval {
		return cost, ErrNoConvergence
	}

	return cost, nil
}

// stepConverged reports whether the last accepted step was negligible
// relative to the free parameter magnitudes.
func stepConverged(bp *boxProblem, stepNorm, tol float64) bool {
	scale := tol
	for _, j := range bp.free {
		scale = math.Max(scale, tol*math.Abs(bp.x[j]))
	}

	return stepNorm <= scale
}

// standardErrors derives per-parameter 1-sigma errors from the covariance
// s²·(JᵀJ)⁻¹ at the solution; locked parameters report zero. A singular
// JᵀJ yields zero errors rather than a failed fit.
func (bp *boxProblem) standardErrors(cost float64) []float64 {
	n, k := len(bp.v), len(bp.free)
	errs := make([]float64, len(bp.x))
	if k == 0 || n <= k {
		return errs
	}

	r := make([]float64, n)
	if err := bp.residuals(bp.x, r); err != nil {
		return errs
	}
	jac := mat.NewDense(n, k, nil)
	if err := bp.jacobian(bp.x, r, jac); err != nil {
		return errs
	}
	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)

	var inv mat.Dense
	if err := inv.Inverse(&jtj); err != nil {
		return errs
	}

	s2 := cost / float64(n-k)
	for c, j := range bp.free {
		errs[j] = math.Sqrt(math.Max(s2*inv.At(c, c), 0))
	}

	return errs
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}

	return s
}

func maxAbs(a []float64) float64 {
	var m float64
	for _, x := range a {
		if ax := math.Abs(x); ax > m {
			m = ax
		}
	}

	return m
}

func maxDiag(m *mat.Dense) float64 {
	r, _ := m.Dims()
	var d float64
	for i := 0; i < r; i++ {
		if m.At(i, i) > d {
			d = m.At(i, i)
		}
	}

	return d
}
