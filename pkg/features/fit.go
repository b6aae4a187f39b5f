package features

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/rfsense/phasecap/pkg/signal"
)

// LinearFit is the closed-form least-squares fit of y against t yielding the
// slope and the coefficient of determination. With fewer than 2 points both
// results are NaN. R² uses the guarded form 1 - SSres/(SStot+eps) so a
// zero-variance series stays exception-free.
func LinearFit(t, y []float64) (slope, r2 float64) {
	n := min(len(t), len(y))
	if n < 2 {
		return math.NaN(), math.NaN()
	}
	t = t[:n]
	y = y[:n]

	tMean := stat.Mean(t, nil)
	yMean := stat.Mean(y, nil)

	var sxx, sxy float64
	for i := 0; i < n; i++ {
		dt := t[i] - tMean
		sxx += dt * dt
		sxy += dt * (y[i] - yMean)
	}
	slope = signal.SafeDiv(sxy, sxx)
	intercept := yMean - slope*tMean

	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		res := y[i] - (slope*t[i] + intercept)
		ssRes += res * res
		dy := y[i] - yMean
		ssTot += dy * dy
	}
	r2 = 1 - signal.SafeDiv(ssRes, ssTot)
	return slope, r2
}
