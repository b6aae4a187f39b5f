package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/rfsense/phasecap/configs"
	"github.com/rfsense/phasecap/internal/pipeline"
	"github.com/rfsense/phasecap/pkg/features"
)

// renderFeatures writes the feature table in the configured format.
func renderFeatures(w io.Writer, result *pipeline.RunResult, cfg *configs.Config) error {
	switch cfg.OutputFormat {
	case "json":
		return renderJSON(w, result)
	case "yaml":
		return renderYAML(w, result)
	default:
		return renderFeatureTable(w, result, cfg.Output.Precision)
	}
}

// renderStructural writes the structural table in the configured format.
func renderStructural(w io.Writer, result *pipeline.RunResult, cfg *configs.Config) error {
	switch cfg.OutputFormat {
	case "json":
		return renderJSON(w, result)
	case "yaml":
		return renderYAML(w, result)
	default:
		return renderStructuralTable(w, result, cfg.Output.Precision)
	}
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(v)
}

// renderFeatureTable prints the key descriptor columns; json/yaml carry the
// full set.
func renderFeatureTable(w io.Writer, result *pipeline.RunResult, precision int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tCHANNEL\tN\tFS_HZ\tMEAN\tSTD\tSLOPE\tR2\tCENTROID_HZ\tENTROPY_BITS\tDOM_HZ")

	for _, file := range result.Files {
		for _, rec := range file.Features {
			fv := rec.Features
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				rec.File, rec.Channel, fv.SampleCount,
				cell(fv.SamplingRate, precision),
				cell(fv.Mean, precision),
				cell(fv.Std, precision),
				cell(fv.TrendSlope, precision),
				cell(fv.TrendR2, precision),
				cell(fv.SpectralCentroid, precision),
				cell(fv.SpectralEntropy, precision),
				cell(fv.DominantFreq, precision))
		}
	}
	return tw.Flush()
}

func renderStructuralTable(w io.Writer, result *pipeline.RunResult, precision int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tWINDOW\tSTART_S\tEND_S\tTAG1_RESIDUAL\tTAG2_RESIDUAL\tTAG1_DETREND\tTAG2_DETREND")

	for _, file := range result.Files {
		for _, row := range file.Structural {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				file.File, row.WindowIndex,
				strconv.FormatFloat(row.StartTime, 'f', precision, 64),
				strconv.FormatFloat(row.EndTime, 'f', precision, 64),
				row.Tag1Residual, row.Tag2Residual, row.Tag1Detrend, row.Tag2Detrend)
		}
	}
	return tw.Flush()
}

// cell formats an optional value for table output; unavailable prints as a
// dash.
func cell(v features.Value, precision int) string {
	f, ok := v.Float64()
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(f, 'f', precision, 64)
}
