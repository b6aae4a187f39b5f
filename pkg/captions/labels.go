package captions

// Label is the discrete trend classification of one window.
type Label string

const (
	LabelSharpRise  Label = "sharp rise"
	LabelSharpDrop  Label = "sharp drop"
	LabelIncreasing Label = "increasing"
	LabelDecreasing Label = "decreasing"
	LabelConstant   Label = "constant"
)

// Channel identifies one of the four phase channels of a recording.
type Channel string

const (
	ChannelTag1Residual Channel = "tag1_residual"
	ChannelTag2Residual Channel = "tag2_residual"
	ChannelTag1Detrend  Channel = "tag1_detrend"
	ChannelTag2Detrend  Channel = "tag2_detrend"
)

// Channels lists every channel in its canonical order. Merging iterates in
// this order so results never depend on map iteration.
var Channels = [4]Channel{
	ChannelTag1Residual,
	ChannelTag2Residual,
	ChannelTag1Detrend,
	ChannelTag2Detrend,
}

// TimeColumn is the shared timestamp column of an input table.
const TimeColumn = "time_s"

// Column returns the input-table column name carrying this channel.
func (c Channel) Column() string {
	return string(c) + "_rad"
}

// RequiredColumns lists every value column an input table must provide, in
// diagnostic order.
func RequiredColumns() []string {
	cols := make([]string, 0, len(Channels))
	for _, c := range Channels {
		cols = append(cols, c.Column())
	}
	return cols
}
