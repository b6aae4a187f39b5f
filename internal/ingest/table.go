// Package ingest is the input boundary of the analysis core. Upstream
// collaborators own file parsing; this package only decodes the neutral
// record-table form they hand over: a JSON object of named column arrays,
// e.g. {"time_s": [...], "tag1_residual_rad": [...], ...}. Null entries
// decode as NaN and are dropped by cleaning.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
)

// Columns is a raw column-oriented record table keyed by column name.
type Columns map[string][]float64

// Decode reads one JSON record table.
func Decode(r io.Reader) (Columns, error) {
	var raw map[string][]*float64
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding record table: %w", err)
	}

	cols := make(Columns, len(raw))
	for name, vals := range raw {
		col := make([]float64, len(vals))
		for i, v := range vals {
			if v == nil {
				col[i] = math.NaN()
			} else {
				col[i] = *v
			}
		}
		cols[name] = col
	}
	return cols, nil
}

// LoadFile decodes the record table stored at path.
func LoadFile(path string) (Columns, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
