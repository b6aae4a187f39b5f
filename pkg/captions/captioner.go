package captions

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/rfsense/phasecap/pkg/features"
	"github.com/rfsense/phasecap/pkg/signal"
)

// Classification thresholds on |slope| / (std/window + eps).
const (
	sharpThreshold = 1.5
	trendThreshold = 0.4
)

// Window is one captioned sliding window of a single channel. Index is the
// 0-based scan position; skipped windows leave gaps, so indices are not
// necessarily contiguous. Start and End are resolved to actual sample
// timestamps.
type Window struct {
	Index int     `json:"window_index"`
	Label Label   `json:"label"`
	Start float64 `json:"start_time"`
	End   float64 `json:"end_time"`
}

// Captioner scans a cleaned series with a fixed window and hop, labelling
// the local trend of each window. It is stateless across channels.
type Captioner struct {
	window float64
	hop    float64
	logger *logrus.Entry
}

// NewCaptioner creates a captioner for the given window and hop lengths, in
// seconds. Both must be positive.
func NewCaptioner(window, hop float64, logger *logrus.Entry) (*Captioner, error) {
	if window <= 0 || hop <= 0 {
		return nil, fmt.Errorf("window and hop must be positive, got window=%g hop=%g", window, hop)
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Captioner{
		window: window,
		hop:    hop,
		logger: logger.WithField("component", "captioner"),
	}, nil
}

// Caption scans the series and returns one labelled window per scan position
// that holds at least 2 samples. Window k covers the half-open interval
// [T0+k·hop, T0+k·hop+window); the final admissible window is closed on the
// right so a sample sitting exactly on the series' end boundary is included.
func (c *Captioner) Caption(series signal.TimeSeries) []Window {
	n := series.Len()
	if n == 0 {
		return nil
	}

	t0 := series.Time[0]
	tLast := series.Time[n-1]

	// Number of admissible scan positions: starts at or before
	// tLast - eps.
	count := 0
	for t0+float64(count)*c.hop <= tLast-signal.EpsDiv {
		count++
	}

	windows := make([]Window, 0, count)
	for k := 0; k < count; k++ {
		start := t0 + float64(k)*c.hop
		end := start + c.window
		closed := k == count-1

		lo, hi := c.windowSpan(series.Time, start, end, closed)
		if hi-lo < 2 {
			continue
		}

		tw := series.Time[lo:hi]
		xw := series.Value[lo:hi]
		windows = append(windows, Window{
			Index: k,
			Label: c.classify(tw, xw),
			Start: resolveBound(tw, 0, start),
			End:   resolveBound(tw, len(tw)-1, end),
		})
	}

	c.logger.WithFields(logrus.Fields{
		"scan_positions": count,
		"windows":        len(windows),
	}).Debug("captioned series")

	return windows
}

// windowSpan locates the [lo, hi) index range of samples inside the window.
// Time is strictly increasing, so the range is contiguous.
func (c *Captioner) windowSpan(t []float64, start, end float64, closed bool) (lo, hi int) {
	lo = 0
	for lo < len(t) && t[lo] < start {
		lo++
	}
	hi = lo
	for hi < len(t) && (t[hi] < end || (closed && t[hi] <= end)) {
		hi++
	}
	return lo, hi
}

// classify labels the in-window trend from the fitted slope scaled by the
// window's own variability.
func (c *Captioner) classify(t, x []float64) Label {
	slope, _ := features.LinearFit(t, x)

	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))

	var ss float64
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	std := math.Sqrt(ss / float64(len(x)))

	ratio := math.Abs(slope) / (std/c.window + signal.EpsDiv)
	switch {
	case ratio >= sharpThreshold && slope > 0:
		return LabelSharpRise
	case ratio >= sharpThreshold && slope < 0:
		return LabelSharpDrop
	case ratio >= trendThreshold && slope > 0:
		return LabelIncreasing
	case ratio >= trendThreshold && slope < 0:
		return LabelDecreasing
	default:
		return LabelConstant
	}
}

// resolveBound snaps a nominal window bound to the sample timestamp at idx,
// falling back to the nominal bound when the window holds no samples.
func resolveBound(tw []float64, idx int, nominal float64) float64 {
	if idx < 0 || idx >= len(tw) {
		return nominal
	}
	return tw[idx]
}
