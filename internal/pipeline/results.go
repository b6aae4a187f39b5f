package pipeline

import (
	"github.com/rfsense/phasecap/pkg/captions"
	"github.com/rfsense/phasecap/pkg/features"
)

// FeatureRecord is one row of the feature table: the descriptor set of one
// channel of one file.
type FeatureRecord struct {
	File     string                 `json:"file" yaml:"file"`
	Channel  captions.Channel       `json:"channel" yaml:"channel"`
	Features features.FeatureVector `json:"features" yaml:"features"`
}

// FileResult holds both artifacts derived from one recording.
type FileResult struct {
	File       string                   `json:"file" yaml:"file"`
	Features   []FeatureRecord          `json:"features" yaml:"features"`
	Structural []captions.StructuralRow `json:"structural" yaml:"structural"`
}

// Skip records a file that was rejected before analysis, with the
// human-readable diagnostic.
type Skip struct {
	File   string `json:"file" yaml:"file"`
	Code   string `json:"code" yaml:"code"`
	Reason string `json:"reason" yaml:"reason"`
}

// RunResult aggregates a whole batch: analyzed files plus skip diagnostics.
type RunResult struct {
	Files []FileResult `json:"files" yaml:"files"`
	Skips []Skip       `json:"skips,omitempty" yaml:"skips,omitempty"`
}
