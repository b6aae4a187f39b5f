package pipeline

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfsense/phasecap/internal/ingest"
	"github.com/rfsense/phasecap/pkg/captions"
	"github.com/rfsense/phasecap/pkg/signal"
)

func testConfig() Config {
	return Config{
		WindowSeconds:  1.0,
		HopSeconds:     0.5,
		MinRows:        8,
		MaxConcurrency: 4,
	}
}

// fullTable builds a valid five-column record table with n samples at 10Hz.
func fullTable(n int) ingest.Columns {
	cols := ingest.Columns{
		"time_s":            make([]float64, n),
		"tag1_residual_rad": make([]float64, n),
		"tag2_residual_rad": make([]float64, n),
		"tag1_detrend_rad":  make([]float64, n),
		"tag2_detrend_rad":  make([]float64, n),
	}
	for i := 0; i < n; i++ {
		t := float64(i) * 0.1
		cols["time_s"][i] = t
		cols["tag1_residual_rad"][i] = math.Sin(2 * math.Pi * 3 * t)
		cols["tag2_residual_rad"][i] = 10 * t
		cols["tag1_detrend_rad"][i] = 0.5
		cols["tag2_detrend_rad"][i] = -10 * t
	}
	return cols
}

func TestAnalyzeTableMissingColumnsDiagnostic(t *testing.T) {
	a, err := NewAnalyzer(testConfig(), nil)
	require.NoError(t, err)

	cols := ingest.Columns{
		"time_s":            {0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7},
		"tag1_residual_rad": {1, 2, 3, 4, 5, 6, 7, 8},
	}

	_, err = a.AnalyzeTable("partial.json", cols)
	require.Error(t, err)

	var aerr *signal.AnalysisError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, signal.ErrCodeMissingColumns, aerr.Code)
	assert.Equal(t,
		"missing required columns: tag2_residual_rad, tag1_detrend_rad, tag2_detrend_rad",
		aerr.Message)
}

func TestAnalyzeTableInsufficientRows(t *testing.T) {
	a, err := NewAnalyzer(testConfig(), nil)
	require.NoError(t, err)

	_, err = a.AnalyzeTable("tiny.json", fullTable(5))
	require.Error(t, err)

	var aerr *signal.AnalysisError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, signal.ErrCodeInsufficientRows, aerr.Code)
}

func TestAnalyzeTableProducesBothArtifacts(t *testing.T) {
	a, err := NewAnalyzer(testConfig(), nil)
	require.NoError(t, err)

	result, err := a.AnalyzeTable("run.json", fullTable(40))
	require.NoError(t, err)

	require.Len(t, result.Features, 4, "one feature record per channel")
	for _, rec := range result.Features {
		assert.Equal(t, 40, rec.Features.SampleCount)
		assert.True(t, rec.Features.Mean.Valid())
		assert.True(t, rec.Features.SpectralCentroid.Valid())
	}

	require.NotEmpty(t, result.Structural)
	for i := 1; i < len(result.Structural); i++ {
		assert.Greater(t, result.Structural[i].WindowIndex, result.Structural[i-1].WindowIndex)
	}
	for _, row := range result.Structural {
		assert.LessOrEqual(t, row.StartTime, row.EndTime)
	}
}

func TestAnalyzeTableChannelLabels(t *testing.T) {
	a, err := NewAnalyzer(testConfig(), nil)
	require.NoError(t, err)

	result, err := a.AnalyzeTable("run.json", fullTable(40))
	require.NoError(t, err)

	// tag2_residual rises steeply, tag2_detrend falls steeply,
	// tag1_detrend is flat.
	for _, row := range result.Structural {
		assert.Equal(t, captions.LabelSharpRise, row.Tag2Residual)
		assert.Equal(t, captions.LabelSharpDrop, row.Tag2Detrend)
		assert.Equal(t, captions.LabelConstant, row.Tag1Detrend)
	}
}

func TestAnalyzeTableIsIdempotent(t *testing.T) {
	a, err := NewAnalyzer(testConfig(), nil)
	require.NoError(t, err)

	cols := fullTable(40)
	first, err := a.AnalyzeTable("run.json", cols)
	require.NoError(t, err)
	second, err := a.AnalyzeTable("run.json", cols)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical input must yield bit-identical results")
}

func TestRunCollectsSkipsAndContinues(t *testing.T) {
	a, err := NewAnalyzer(testConfig(), nil)
	require.NoError(t, err)

	inputs := []Input{
		{Name: "b-good.json", Columns: fullTable(40)},
		{Name: "a-bad.json", Columns: ingest.Columns{"time_s": {0, 1}}},
		{Name: "c-good.json", Columns: fullTable(24)},
	}

	result, err := a.Run(context.Background(), inputs)
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, "b-good.json", result.Files[0].File, "results sorted by file name")
	assert.Equal(t, "c-good.json", result.Files[1].File)

	require.Len(t, result.Skips, 1)
	assert.Equal(t, "a-bad.json", result.Skips[0].File)
	assert.Equal(t, signal.ErrCodeMissingColumns, result.Skips[0].Code)
}

func TestRunSequentialAndConcurrentAgree(t *testing.T) {
	inputs := []Input{
		{Name: "x.json", Columns: fullTable(40)},
		{Name: "y.json", Columns: fullTable(32)},
		{Name: "z.json", Columns: fullTable(16)},
	}

	seqCfg := testConfig()
	seqCfg.MaxConcurrency = 1
	seq, err := NewAnalyzer(seqCfg, nil)
	require.NoError(t, err)

	conCfg := testConfig()
	conCfg.MaxConcurrency = 8
	con, err := NewAnalyzer(conCfg, nil)
	require.NoError(t, err)

	a, err := seq.Run(context.Background(), inputs)
	require.NoError(t, err)
	b, err := con.Run(context.Background(), inputs)
	require.NoError(t, err)

	assert.Equal(t, a, b, "fan-out must not change results")
}

func TestRunHonorsContextCancellation(t *testing.T) {
	a, err := NewAnalyzer(testConfig(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = a.Run(ctx, []Input{{Name: "x.json", Columns: fullTable(40)}})
	assert.ErrorIs(t, err, context.Canceled)
}
