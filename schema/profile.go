package schema

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// PROFILE — Heuristic Column Inspection
// ============================================================================
// Inspects raw CSV and reports, per column: inferred type, role, null and
// distinct counts, numeric bounds and a few sample values.
//
// Classification per column:
//   1. 80%+ of non-null values parse as numbers → numeric, else string
//   2. numeric → measure; string → dimension
//   3. cardinality hint from the distinct count
// ============================================================================

// Profile summarises a CSV dataset.
type Profile struct {
	Rows    int             `json:"rows" yaml:"rows"`
	Columns []ColumnProfile `json:"columns" yaml:"columns"`
}

// ColumnProfile summarises one column.
type ColumnProfile struct {
	Header          string   `json:"header" yaml:"header"`
	Key             string   `json:"key" yaml:"key"`
	Role            Role     `json:"role" yaml:"role"`
	Numeric         bool     `json:"numeric" yaml:"numeric"`
	Distinct        int      `json:"distinct" yaml:"distinct"`
	Nulls           int      `json:"nulls" yaml:"nulls"`
	Min             *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max             *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Samples         []string `json:"samples" yaml:"samples"`
	CardinalityHint string   `json:"cardinalityHint" yaml:"cardinalityHint"`
}

// ProfileOptions controls profiling behavior.
type ProfileOptions struct {
	SampleSize int // Max rows to inspect (0 = all)
	MaxSamples int // Sample values kept per column
}

// DefaultProfileOptions returns sensible defaults.
func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{MaxSamples: 5}
}

// ProfileCSV inspects CSV data and returns a per-column profile.
func ProfileCSV(data []byte, opts ...ProfileOptions) (*Profile, error) {
	opt := DefaultProfileOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	var rows [][]string
	for opt.SampleSize <= 0 || len(rows) < opt.SampleSize {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, row)
	}

	profile := &Profile{Rows: len(rows), Columns: make([]ColumnProfile, len(headers))}
	for i, h := range headers {
		profile.Columns[i] = profileColumn(h, i, rows, opt.MaxSamples)
	}
	return profile, nil
}

func profileColumn(header string, index int, rows [][]string, maxSamples int) ColumnProfile {
	col := ColumnProfile{
		Header: strings.TrimSpace(header),
		Key:    ToSnakeCase(header),
		Role:   RoleDimension,
	}

	unique := make(map[string]bool)
	var values []string
	for _, row := range rows {
		if index >= len(row) || isNull(row[index]) {
			col.Nulls++
			continue
		}
		v := strings.TrimSpace(row[index])
		values = append(values, v)
		unique[v] = true
	}
	col.Distinct = len(unique)
	col.Samples = collectSamples(unique, maxSamples)
	col.CardinalityHint = cardinalityHint(col.Distinct)

	numbers := make([]float64, 0, len(values))
	for _, v := range values {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			numbers = append(numbers, f)
		}
	}
	if len(numbers) > 0 && float64(len(numbers)) >= 0.8*float64(len(values)) {
		col.Numeric = true
		col.Role = RoleMeasure
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, f := range numbers {
			lo, hi = math.Min(lo, f), math.Max(hi, f)
		}
		col.Min, col.Max = &lo, &hi
	}
	return col
}

func isNull(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "null", "NULL", "N/A", "n/a", "NaN":
		return true
	}
	return false
}

func cardinalityHint(distinct int) string {
	switch {
	case distinct <= 10:
		return "low"
	case distinct <= 100:
		return "medium"
	default:
		return "high"
	}
}

// collectSamples picks up to maxSamples values in sorted order.
func collectSamples(unique map[string]bool, maxSamples int) []string {
	samples := make([]string, 0, len(unique))
	for v := range unique {
		samples = append(samples, v)
	}
	sort.Strings(samples)
	if maxSamples > 0 && len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples
}
