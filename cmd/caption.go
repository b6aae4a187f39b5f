package cmd

import (
	"github.com/spf13/cobra"
)

var (
	captionWindow float64
	captionHop    float64
)

// captionCmd represents the caption command
var captionCmd = &cobra.Command{
	Use:   "caption [flags] [record-tables...]",
	Short: "Produce the merged structural label table",
	Long: `Scan each cleaned channel with a sliding window, label the local
trend of every window (sharp rise, sharp drop, increasing, decreasing,
constant) and merge the four channels into one aligned table keyed by
window index, with consensus time bounds.

Examples:
  # Caption with the default 1.0s window / 0.5s hop
  phasecap caption lab-run-01.json

  # Finer structure
  phasecap caption --window 0.5 --hop 0.25 -o yaml recordings/*.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCaption,
}

func init() {
	rootCmd.AddCommand(captionCmd)

	captionCmd.Flags().Float64Var(&captionWindow, "window", 0,
		"window length in seconds (overrides config)")
	captionCmd.Flags().Float64Var(&captionHop, "hop", 0,
		"hop length in seconds (overrides config)")
}

func runCaption(cmd *cobra.Command, args []string) error {
	result, cfg, err := runAnalysis(cmd, args, captionWindow, captionHop)
	if err != nil {
		return err
	}
	return renderStructural(cmd.OutOrStdout(), result, cfg)
}
