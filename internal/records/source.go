// Package records provides the record source contract, CSV decoding, and
// schema normalization for employee rows.
package records

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
)

// RawRecord is one decoded source row keyed by column name, before
// normalization into the canonical schema.
type RawRecord map[string]any

// Source yields the ordered batch of raw records for a run. A fetch failure
// aborts the integrate stage.
type Source interface {
	Fetch(ctx context.Context) ([]RawRecord, error)
}

// CSVSource reads raw records from a headed CSV file.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a CSVSource for the given file path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

// Fetch decodes the CSV into raw records, preserving row order. The first
// row is the header; every cell is kept as a string for normalization to
// coerce later.
func (s *CSVSource) Fetch(ctx context.Context) ([]RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record source %s: %w", s.Path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse record source %s: %w", s.Path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("record source %s is empty", s.Path)
	}

	header := rows[0]
	out := make([]RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(RawRecord, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// StaticSource serves a fixed batch of records, used in tests and demos.
type StaticSource struct {
	Records []RawRecord
	Err     error
}

// Fetch returns the fixed batch, or the configured error.
func (s *StaticSource) Fetch(_ context.Context) ([]RawRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Records, nil
}
