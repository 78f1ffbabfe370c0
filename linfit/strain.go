package linfit

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/xrdtools/eosfit/eos"
)

// zeroStrainEps guards the F normalization: below this |f| the division by
// 3·f·(1+2f)^2.5 is numerically meaningless and the small-strain limit
// P/(3·V0) is used instead.
const zeroStrainEps = 1e-10

// weightFloor is the additive floor in wᵢ = 1/(fᵢ²+weightFloor); it keeps
// near-ambient points strongly but not infinitely up-weighted.
const weightFloor = 1e-3

// ambientPressureGPa is the cutoff below which a sample carries no usable
// stress information: F = P/(3f(1+2f)^2.5) is the ratio of two vanishing
// quantities there, so noise on P near ambient swamps the regression. Such
// samples are left out of the (f, F) solve but still count in the reported
// P–V statistics.
const ambientPressureGPa = 0.1

// strainStress transforms (V, P) into the linearizing coordinates for a
// trial V0: Eulerian strain f and normalized stress F such that the exact
// BM3 model satisfies F = B0 + B0·(B0′−4)·f. Samples with |P| below the
// ambient cutoff are skipped, unless that would leave fewer than MinPoints
// samples, in which case all are kept.
func strainStress(v, p []float64, v0 float64) (f, bigF []float64) {
	n := 0
	for _, pi := range p {
		if math.Abs(pi) >= ambientPressureGPa {
			n++
		}
	}
	keepAll := n < eos.MinPoints

	for i := range v {
		if !keepAll && math.Abs(p[i]) < ambientPressureGPa {
			continue
		}
		fi := 0.5 * (math.Pow(v0/v[i], 2.0/3.0) - 1)
		f = append(f, fi)
		if math.Abs(fi) < zeroStrainEps {
			bigF = append(bigF, p[i]/(3*v0))
			continue
		}
		bigF = append(bigF, p[i]/(3*fi*math.Pow(1+2*fi, 2.5)))
	}

	return f, bigF
}

// strainWeights returns wᵢ = 1/(fᵢ²+0.001) renormalized to sum to n, which
// strongly up-weights low-strain (near-ambient) samples.
func strainWeights(f []float64) []float64 {
	n := len(f)
	w := make([]float64, n)
	for i, fi := range f {
		w[i] = 1 / (fi*fi + weightFloor)
	}
	floats.Scale(float64(n)/floats.Sum(w), w)

	return w
}

// regression holds the outcome of one regularized weighted linear solve in
// (f, F) space: intercept b0 = B0, slope = B0·(B0′−4), plus everything the
// final pass needs to derive standard errors.
type regression struct {
	b0, slope float64
	// normal is the regularized normal matrix AᵀWA + λR (2×2); cov requires
	// its inverse scaled by the residual variance.
	normal *mat.SymDense
	// f, bigF, w are the transformed coordinates the solve was built from.
	f, bigF, w []float64
}

// solveRegularized builds and solves the Tikhonov-regularized weighted
// normal equations at trial v0. The penalty λ = strength × mean(w) is added
// only to the slope diagonal entry, pulling B0′ toward 4.0.
// A singular (or numerically unsolvable) system returns ErrSingularSystem.
func solveRegularized(v, p []float64, v0, strength float64) (regression, error) {
	f, bigF := strainStress(v, p, v0)
	w := strainWeights(f)

	var sw, swf, swff, swF, swfF float64
	for i := range f {
		sw += w[i]
		swf += w[i] * f[i]
		swff += w[i] * f[i] * f[i]
		swF += w[i] * bigF[i]
		swfF += w[i] * f[i] * bigF[i]
	}
	lambda := strength * sw / float64(len(f))

	normal := mat.NewSymDense(2, []float64{
		sw, swf,
		swf, swff + lambda,
	})
	rhs := mat.NewVecDense(2, []float64{swF, swfF})

	var beta mat.VecDense
	if err := beta.SolveVec(normal, rhs); err != nil {
		return regression{}, ErrSingularSystem
	}

	return regression{
		b0:     beta.AtVec(0),
		slope:  beta.AtVec(1),
		normal: normal,
		f:      f,
		bigF:   bigF,
		w:      w,
	}, nil
}

// covariance returns the 2×2 weighted covariance s²·(AᵀWA+λR)⁻¹ of
// (intercept, slope), where s² is the weighted residual variance of the
// regression. ok is false when the normal matrix cannot be inverted.
func (r regression) covariance() (c00, c01, c11 float64, ok bool) {
	n := len(r.f)
	dof := n - 2
	if dof < 1 {
		dof = 1
	}

	var s2 float64
	for i := range r.f {
		resid := r.bigF[i] - (r.b0 + r.slope*r.f[i])
		s2 += r.w[i] * resid * resid
	}
	s2 /= float64(dof)

	var inv mat.Dense
	if err := inv.Inverse(r.normal); err != nil {
		return 0, 0, 0, false
	}

	return s2 * inv.At(0, 0), s2 * inv.At(0, 1), s2 * inv.At(1, 1), true
}
