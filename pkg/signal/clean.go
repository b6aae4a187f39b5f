package signal

import (
	"fmt"
	"math"
)

// TimeSeries is one cleaned channel: timestamps in seconds paired
// index-for-index with values. Time is strictly increasing.
type TimeSeries struct {
	Time  []float64 `json:"time"`
	Value []float64 `json:"value"`
}

// Len returns the number of samples in the series.
func (ts TimeSeries) Len() int {
	return len(ts.Time)
}

// Table is a column-oriented record set: one shared time column plus named
// value channels of the same length.
type Table struct {
	Time     []float64
	Channels map[string][]float64
}

// CleanTable filters a raw table down to the rows usable for analysis and
// repairs the time axis. A row survives when its timestamp is finite and at
// least one of the required channels holds a finite value. Fewer than
// minRows surviving rows is an INSUFFICIENT_ROWS failure for the whole file.
//
// The caller's slices are never modified; the returned table is built from
// copies. After cleaning the time column is strictly increasing: any
// non-increasing step is set to the previous timestamp plus MinTimeStep.
func CleanTable(file string, raw Table, required []string, minRows int) (Table, *AnalysisError) {
	keep := make([]int, 0, len(raw.Time))
	for i, t := range raw.Time {
		if !isFinite(t) {
			continue
		}
		for _, name := range required {
			col := raw.Channels[name]
			if i < len(col) && isFinite(col[i]) {
				keep = append(keep, i)
				break
			}
		}
	}

	if len(keep) < minRows {
		return Table{}, NewAnalysisError(file, ErrCodeInsufficientRows,
			fmt.Sprintf("only %d valid rows after cleaning, need at least %d", len(keep), minRows), nil)
	}

	out := Table{
		Time:     make([]float64, len(keep)),
		Channels: make(map[string][]float64, len(raw.Channels)),
	}
	for j, i := range keep {
		out.Time[j] = raw.Time[i]
	}
	for name, col := range raw.Channels {
		vals := make([]float64, len(keep))
		for j, i := range keep {
			if i < len(col) {
				vals[j] = col[i]
			} else {
				vals[j] = math.NaN()
			}
		}
		out.Channels[name] = vals
	}

	repairMonotonic(out.Time)
	return out, nil
}

// repairMonotonic forces t to be strictly increasing in place. Lossy but
// deterministic: a non-increasing timestamp becomes its predecessor plus
// MinTimeStep.
func repairMonotonic(t []float64) {
	for i := 1; i < len(t); i++ {
		if t[i] <= t[i-1] {
			t[i] = t[i-1] + MinTimeStep
		}
	}
}

// Channel extracts one cleaned per-channel series from the table, dropping
// any remaining pairs where the channel value is not finite.
func (tb Table) Channel(name string) TimeSeries {
	t, v := FinitePairs(tb.Time, tb.Channels[name])
	return TimeSeries{Time: t, Value: v}
}
