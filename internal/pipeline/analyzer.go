package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rfsense/phasecap/internal/ingest"
	"github.com/rfsense/phasecap/pkg/captions"
	"github.com/rfsense/phasecap/pkg/features"
	"github.com/rfsense/phasecap/pkg/signal"
)

// MinValidRows is the default minimum cleaned row count for a file to be
// analyzed at all.
const MinValidRows = 8

// Config holds the analysis parameters consumed by the core.
type Config struct {
	// WindowSeconds and HopSeconds drive the structural captioner.
	WindowSeconds float64
	HopSeconds    float64
	// MinRows is the cleaned-row threshold below which a file is skipped.
	MinRows int
	// MaxConcurrency bounds the per-file fan-out in Run. Values below 1
	// mean sequential processing.
	MaxConcurrency int
}

// Analyzer runs the extraction-and-captioning flow for record tables: schema
// check, cleaning, per-channel feature extraction and captioning, and the
// cross-channel structural merge.
type Analyzer struct {
	cfg       Config
	extractor *features.Extractor
	captioner *captions.Captioner
	logger    *logrus.Entry
}

// Input names one record table awaiting analysis.
type Input struct {
	Name    string
	Columns ingest.Columns
}

// NewAnalyzer creates an analyzer. Window and hop must be positive.
func NewAnalyzer(cfg Config, logger *logrus.Entry) (*Analyzer, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	logger = logger.WithField("component", "analyzer")

	captioner, err := captions.NewCaptioner(cfg.WindowSeconds, cfg.HopSeconds, logger)
	if err != nil {
		return nil, err
	}
	if cfg.MinRows <= 0 {
		cfg.MinRows = MinValidRows
	}

	return &Analyzer{
		cfg:       cfg,
		extractor: features.NewExtractor(logger),
		captioner: captioner,
		logger:    logger,
	}, nil
}

// AnalyzeTable processes one record table. Schema and insufficient-row
// failures come back as *signal.AnalysisError; degenerate per-feature cases
// never do, they surface as unavailable values or missing windows.
func (a *Analyzer) AnalyzeTable(name string, cols ingest.Columns) (*FileResult, error) {
	if missing := missingColumns(cols); len(missing) > 0 {
		return nil, signal.NewAnalysisError(name, signal.ErrCodeMissingColumns,
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil)
	}

	raw := signal.Table{
		Time:     cols[captions.TimeColumn],
		Channels: make(map[string][]float64, len(captions.Channels)),
	}
	for _, col := range captions.RequiredColumns() {
		raw.Channels[col] = cols[col]
	}

	cleaned, aerr := signal.CleanTable(name, raw, captions.RequiredColumns(), a.cfg.MinRows)
	if aerr != nil {
		return nil, aerr
	}

	result := &FileResult{File: name}
	perChannel := make(map[captions.Channel][]captions.Window, len(captions.Channels))

	for _, ch := range captions.Channels {
		series := cleaned.Channel(ch.Column())
		result.Features = append(result.Features, FeatureRecord{
			File:     name,
			Channel:  ch,
			Features: a.extractor.Extract(series),
		})
		perChannel[ch] = a.captioner.Caption(series)
	}

	result.Structural = captions.Merge(perChannel)

	a.logger.WithFields(logrus.Fields{
		"file":            name,
		"rows":            len(cleaned.Time),
		"structural_rows": len(result.Structural),
	}).Info("analyzed record table")

	return result, nil
}

// Run analyzes a batch of tables. Skipped files are collected as
// diagnostics, never aborting the run. Files fan out across at most
// MaxConcurrency goroutines; results are re-sorted by name afterwards so
// output is identical regardless of scheduling.
func (a *Analyzer) Run(ctx context.Context, inputs []Input) (*RunResult, error) {
	workers := a.cfg.MaxConcurrency
	if workers < 1 {
		workers = 1
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		sem    = make(chan struct{}, workers)
		result RunResult
	)

	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(in Input) {
			defer wg.Done()
			defer func() { <-sem }()

			fileResult, err := a.AnalyzeTable(in.Name, in.Columns)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				var aerr *signal.AnalysisError
				code := signal.ErrCodeInvalidInput
				if errors.As(err, &aerr) {
					code = aerr.Code
				}
				a.logger.WithFields(logrus.Fields{
					"file": in.Name,
					"code": code,
				}).Warn(err.Error())
				result.Skips = append(result.Skips, Skip{File: in.Name, Code: code, Reason: err.Error()})
				return
			}
			result.Files = append(result.Files, *fileResult)
		}(in)
	}
	wg.Wait()

	sort.Slice(result.Files, func(i, j int) bool { return result.Files[i].File < result.Files[j].File })
	sort.Slice(result.Skips, func(i, j int) bool { return result.Skips[i].File < result.Skips[j].File })
	return &result, nil
}

// missingColumns returns the required columns absent from the table, in
// diagnostic order: the time column first, then the channel columns.
func missingColumns(cols ingest.Columns) []string {
	var missing []string
	if _, ok := cols[captions.TimeColumn]; !ok {
		missing = append(missing, captions.TimeColumn)
	}
	for _, col := range captions.RequiredColumns() {
		if _, ok := cols[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}
