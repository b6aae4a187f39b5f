package captions

import "sort"

// StructuralRow aggregates the labels of up to four channels for one window
// index. StartTime is the minimum and EndTime the maximum over every
// channel-level window sharing the index, so the merged span can exceed any
// single channel's own window span. Unset labels stay empty.
type StructuralRow struct {
	WindowIndex int     `json:"window_index" yaml:"window_index"`
	StartTime   float64 `json:"start_time" yaml:"start_time"`
	EndTime     float64 `json:"end_time" yaml:"end_time"`

	Tag1Residual Label `json:"tag1_residual_label,omitempty" yaml:"tag1_residual_label,omitempty"`
	Tag2Residual Label `json:"tag2_residual_label,omitempty" yaml:"tag2_residual_label,omitempty"`
	Tag1Detrend  Label `json:"tag1_detrend_label,omitempty" yaml:"tag1_detrend_label,omitempty"`
	Tag2Detrend  Label `json:"tag2_detrend_label,omitempty" yaml:"tag2_detrend_label,omitempty"`
}

func (r *StructuralRow) setLabel(ch Channel, l Label) {
	switch ch {
	case ChannelTag1Residual:
		r.Tag1Residual = l
	case ChannelTag2Residual:
		r.Tag2Residual = l
	case ChannelTag1Detrend:
		r.Tag1Detrend = l
	case ChannelTag2Detrend:
		r.Tag2Detrend = l
	}
}

// Merge aligns the per-channel caption sequences by window index into one
// structural table. Channels are visited in canonical order; the first
// channel contributing an index seeds the row's bounds, later contributors
// widen them to the min start and max end. Rows come back sorted ascending
// by window index.
func Merge(perChannel map[Channel][]Window) []StructuralRow {
	builders := make(map[int]*StructuralRow)

	for _, ch := range Channels {
		for _, w := range perChannel[ch] {
			row, ok := builders[w.Index]
			if !ok {
				row = &StructuralRow{
					WindowIndex: w.Index,
					StartTime:   w.Start,
					EndTime:     w.End,
				}
				builders[w.Index] = row
			} else {
				if w.Start < row.StartTime {
					row.StartTime = w.Start
				}
				if w.End > row.EndTime {
					row.EndTime = w.End
				}
			}
			row.setLabel(ch, w.Label)
		}
	}

	rows := make([]StructuralRow, 0, len(builders))
	for _, row := range builders {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].WindowIndex < rows[j].WindowIndex
	})
	return rows
}
