package guess

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/xrdtools/eosfit/eos"
)

// Reference thresholds for the estimate; values match the behavior the
// surrounding suite has always shipped with.
const (
	// ambientCutoffGPa: below this lowest pressure the ambient volume is
	// taken directly; above it, V0 is extrapolated to P = 0.
	ambientCutoffGPa = 0.5

	// v0Margin forces the V0 guess strictly above the largest measured
	// volume so the seed is physically valid.
	v0Margin = 1.005

	// slopeWindow caps how many lowest-pressure points feed the B0 slope.
	slopeWindow = 5

	// b0Min, b0Max clamp the B0 guess; b0Default is used when the data are
	// too short for a finite-difference estimate.
	b0Min     = 80.0
	b0Max     = 300.0
	b0Default = 150.0

	// bpDefault is the literature default for B0′.
	bpDefault = 4.0
)

// Guess holds the starting values for a fit.
type Guess struct {
	V0 float64 // Å³
	B0 float64 // GPa
	Bp float64 // B0′, dimensionless
}

// byPressure sorts parallel (V, P) slices by ascending pressure.
type byPressure struct{ v, p []float64 }

func (s byPressure) Len() int           { return len(s.p) }
func (s byPressure) Less(i, j int) bool { return s.p[i] < s.p[j] }
func (s byPressure) Swap(i, j int) {
	s.p[i], s.p[j] = s.p[j], s.p[i]
	s.v[i], s.v[j] = s.v[j], s.v[i]
}

// Estimate derives (V0, B0, B0′) starting values from raw data.
// The inputs are not mutated. Validation errors come from eos.ValidateData.
func Estimate(v, p []float64) (Guess, error) {
	if err := eos.ValidateData(v, p); err != nil {
		return Guess{}, err
	}

	// Work on copies; callers keep their original ordering.
	sv := append([]float64(nil), v...)
	sp := append([]float64(nil), p...)
	sort.Sort(byPressure{v: sv, p: sp})

	vmax := floats.Max(sv)

	// V0: volume at minimum pressure, or a P=0 extrapolation when even the
	// lowest measured pressure is clearly non-ambient.
	v0 := sv[0]
	if sp[0] > ambientCutoffGPa {
		k := 3
		if len(sp) < k {
			k = len(sp)
		}
		// Least-squares line V(P) over the k lowest-pressure points; the
		// intercept is the volume at zero pressure.
		alpha, _ := stat.LinearRegression(sp[:k], sv[:k], nil, false)
		if alpha > 0 {
			v0 = alpha
		}
	}
	if v0 < v0Margin*vmax {
		v0 = v0Margin * vmax
	}

	// B0: mean finite-difference slope dP/dV over the lowest-pressure
	// points. Compression means dP/dV < 0, so B0 = −V0·mean(dP/dV).
	b0 := b0Default
	if len(sv) >= 4 {
		m := slopeWindow
		if len(sv) < m {
			m = len(sv)
		}
		var sum float64
		var cnt int
		for i := 0; i < m-1; i++ {
			dv := sv[i+1] - sv[i]
			if dv == 0 {
				continue
			}
			sum += (sp[i+1] - sp[i]) / dv
			cnt++
		}
		if cnt > 0 {
			b0 = -v0 * sum / float64(cnt)
			if b0 < b0Min {
				b0 = b0Min
			}
			if b0 > b0Max {
				b0 = b0Max
			}
		}
	}

	return Guess{V0: v0, B0: b0, Bp: bpDefault}, nil
}
