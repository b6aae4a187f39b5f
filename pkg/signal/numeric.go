package signal

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Numeric guard constants shared across the analysis packages.
const (
	// EpsDiv is the additive epsilon used in guarded divisions so that
	// zero-variance and zero-power inputs stay exception-free.
	EpsDiv = 1e-12

	// MinTimeStep is the minimal increment applied when repairing a
	// non-increasing timestamp.
	MinTimeStep = 1e-6
)

// Finite filters x down to its finite entries (no NaN, no Inf).
func Finite(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// FinitePairs keeps only the index-aligned (t, v) pairs where both entries
// are finite. The inputs are never modified.
func FinitePairs(t, v []float64) (tOut, vOut []float64) {
	n := min(len(t), len(v))
	tOut = make([]float64, 0, n)
	vOut = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if isFinite(t[i]) && isFinite(v[i]) {
			tOut = append(tOut, t[i])
			vOut = append(vOut, v[i])
		}
	}
	return tOut, vOut
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Median returns the median of the finite entries of x, or false when none
// remain.
func Median(x []float64) (float64, bool) {
	m, err := stats.Median(Finite(x))
	if err != nil {
		return 0, false
	}
	return m, true
}

// MedianAbsDev returns the median absolute deviation (median of absolute
// deviations from the median, unscaled) of the finite entries of x.
func MedianAbsDev(x []float64) (float64, bool) {
	mad, err := stats.MedianAbsoluteDeviation(Finite(x))
	if err != nil {
		return 0, false
	}
	return mad, true
}

// SafeDiv divides num by den with the standard additive epsilon guard.
func SafeDiv(num, den float64) float64 {
	return num / (den + EpsDiv)
}
