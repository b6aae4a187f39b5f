package captions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfsense/phasecap/pkg/signal"
)

func rampSeries(n int, dt, slope float64) signal.TimeSeries {
	ts := signal.TimeSeries{
		Time:  make([]float64, n),
		Value: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		ts.Time[i] = float64(i) * dt
		ts.Value[i] = slope * ts.Time[i]
	}
	return ts
}

func TestNewCaptionerValidation(t *testing.T) {
	_, err := NewCaptioner(0, 0.5, nil)
	assert.Error(t, err)
	_, err = NewCaptioner(1.0, -1, nil)
	assert.Error(t, err)
	_, err = NewCaptioner(1.0, 0.5, nil)
	assert.NoError(t, err)
}

func TestCaptionSteepRiseLabelsSharpRise(t *testing.T) {
	c, err := NewCaptioner(1.0, 0.5, nil)
	require.NoError(t, err)

	windows := c.Caption(rampSeries(10, 0.1, 10))
	require.NotEmpty(t, windows)
	for _, w := range windows {
		assert.Equal(t, LabelSharpRise, w.Label, "window %d", w.Index)
	}
}

func TestCaptionSteepDropLabelsSharpDrop(t *testing.T) {
	c, err := NewCaptioner(1.0, 0.5, nil)
	require.NoError(t, err)

	windows := c.Caption(rampSeries(10, 0.1, -10))
	require.NotEmpty(t, windows)
	for _, w := range windows {
		assert.Equal(t, LabelSharpDrop, w.Label)
	}
}

func TestCaptionFlatSeriesLabelsConstant(t *testing.T) {
	c, err := NewCaptioner(1.0, 0.5, nil)
	require.NoError(t, err)

	windows := c.Caption(rampSeries(20, 0.1, 0))
	require.NotEmpty(t, windows)
	for _, w := range windows {
		assert.Equal(t, LabelConstant, w.Label)
	}
}

func TestCaptionWindowIndicesAndBounds(t *testing.T) {
	c, err := NewCaptioner(1.0, 0.5, nil)
	require.NoError(t, err)

	// 0..0.9s: scan starts at 0 and 0.5 only.
	windows := c.Caption(rampSeries(10, 0.1, 10))
	require.Len(t, windows, 2)

	assert.Equal(t, 0, windows[0].Index)
	assert.Equal(t, 1, windows[1].Index)

	// Bounds resolve to actual sample timestamps.
	assert.Equal(t, 0.0, windows[0].Start)
	assert.InDelta(t, 0.9, windows[0].End, 1e-12)
	assert.InDelta(t, 0.5, windows[1].Start, 1e-12)
	assert.InDelta(t, 0.9, windows[1].End, 1e-12)
}

func TestCaptionFinalWindowIsClosed(t *testing.T) {
	// Samples at 0, 0.5, 1.0, 1.5, 2.0 with window 1s, hop 1s. The final
	// admissible window starts at 1.0 and is closed on the right, so the
	// sample at exactly 2.0 contributes.
	series := signal.TimeSeries{
		Time:  []float64{0, 0.5, 1.0, 1.5, 2.0},
		Value: []float64{0, 1, 2, 3, 4},
	}
	c, err := NewCaptioner(1.0, 1.0, nil)
	require.NoError(t, err)

	windows := c.Caption(series)
	require.Len(t, windows, 2)

	last := windows[1]
	assert.Equal(t, 1, last.Index)
	assert.InDelta(t, 2.0, last.End, 1e-12,
		"closed final window includes the sample at the series end boundary")
}

func TestCaptionSkipsSparseWindows(t *testing.T) {
	// A long gap in the middle: windows covering the gap hold <2 samples
	// and are skipped entirely, leaving non-contiguous indices.
	series := signal.TimeSeries{
		Time:  []float64{0, 0.2, 0.4, 0.6, 0.8, 5.0, 5.2, 5.4, 5.6, 5.8},
		Value: []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}
	c, err := NewCaptioner(1.0, 0.5, nil)
	require.NoError(t, err)

	windows := c.Caption(series)
	require.NotEmpty(t, windows)

	indices := make([]int, 0, len(windows))
	for _, w := range windows {
		indices = append(indices, w.Index)
	}
	assert.Contains(t, indices, 0)
	assert.NotContains(t, indices, 4, "windows inside the gap are skipped")
	assert.Contains(t, indices, 10, "scan resumes past the gap")
}

func TestCaptionEmptySeries(t *testing.T) {
	c, err := NewCaptioner(1.0, 0.5, nil)
	require.NoError(t, err)
	assert.Empty(t, c.Caption(signal.TimeSeries{}))
}

func TestCaptionModerateTrend(t *testing.T) {
	// A mild ramp with strong alternation: the in-window std pushes the
	// trend ratio between the 0.4 and 1.5 thresholds.
	series := signal.TimeSeries{
		Time:  []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9},
		Value: []float64{0, 1.55, 0.1, 1.65, 0.2, 1.75, 0.3, 1.85, 0.4, 1.95},
	}
	c, err := NewCaptioner(1.0, 1.0, nil)
	require.NoError(t, err)

	windows := c.Caption(series)
	require.Len(t, windows, 1)
	assert.Equal(t, LabelIncreasing, windows[0].Label)
}
