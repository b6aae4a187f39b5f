package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearFitExactLine(t *testing.T) {
	// y = 2.5t - 1, no noise: slope recovered exactly, R² ~ 1.
	var ts, ys []float64
	for i := 0; i < 50; i++ {
		x := float64(i) * 0.02
		ts = append(ts, x)
		ys = append(ys, 2.5*x-1)
	}

	slope, r2 := LinearFit(ts, ys)
	assert.InDelta(t, 2.5, slope, 1e-9)
	assert.InDelta(t, 1.0, r2, 1e-9)
}

func TestLinearFitNegativeSlope(t *testing.T) {
	ts := []float64{0, 1, 2, 3}
	ys := []float64{10, 7, 4, 1}

	slope, r2 := LinearFit(ts, ys)
	assert.InDelta(t, -3.0, slope, 1e-9)
	assert.InDelta(t, 1.0, r2, 1e-9)
}

func TestLinearFitTooFewPoints(t *testing.T) {
	slope, r2 := LinearFit([]float64{1}, []float64{2})
	assert.True(t, math.IsNaN(slope))
	assert.True(t, math.IsNaN(r2))
}

func TestLinearFitConstantSeries(t *testing.T) {
	// Zero variance in y: the guarded R² stays finite.
	slope, r2 := LinearFit([]float64{0, 1, 2, 3}, []float64{5, 5, 5, 5})
	assert.InDelta(t, 0.0, slope, 1e-9)
	assert.False(t, math.IsNaN(r2))
	assert.InDelta(t, 1.0, r2, 1e-6)
}
