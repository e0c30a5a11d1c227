package helpers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spektr-org/launchdash/launch"
	"github.com/spektr-org/launchdash/schema"
)

// ============================================================================
// CSV HELPER — Parses launch CSV data into a launch.Table
// ============================================================================
// The header row is resolved through the schema, so column order and extra
// columns do not matter. Any unreadable row fails the whole load.
// ============================================================================

// ErrEmptyDataset is returned when the CSV has a header but no data rows.
var ErrEmptyDataset = errors.New("dataset has no rows")

// LoadCSV reads the file at path and parses it into a launch.Table.
func LoadCSV(path string) (*launch.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	tbl, err := ParseCSV(data, schema.Launch())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tbl, nil
}

// ParseCSV parses CSV bytes into a launch.Table using sch for column lookup.
func ParseCSV(data []byte, sch schema.Config) (*launch.Table, error) {
	records, err := ParseRecords(bytes.NewReader(data), sch)
	if err != nil {
		return nil, err
	}
	return launch.NewTable(records)
}

// ParseRecords reads launch records from r.
func ParseRecords(r io.Reader, sch schema.Config) ([]launch.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	index, err := sch.Resolve(headers)
	if err != nil {
		return nil, err
	}

	var records []launch.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)

		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	return records, nil
}

func parseRow(row []string, index map[string]int) (launch.Record, error) {
	field := func(key string) string {
		i := index[key]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	payload, err := strconv.ParseFloat(field(schema.KeyPayloadMass), 64)
	if err != nil {
		return launch.Record{}, fmt.Errorf("payload mass %q: %w", field(schema.KeyPayloadMass), err)
	}
	flag, err := strconv.ParseFloat(field(schema.KeyClass), 64)
	if err != nil {
		return launch.Record{}, fmt.Errorf("class %q: %w", field(schema.KeyClass), err)
	}
	outcome, err := launch.ParseOutcome(flag)
	if err != nil {
		return launch.Record{}, err
	}

	rec := launch.Record{
		Site:            field(schema.KeyLaunchSite),
		PayloadMassKg:   payload,
		BoosterCategory: field(schema.KeyBoosterCategory),
		Outcome:         outcome,
	}
	if rec.Site == "" {
		return launch.Record{}, errors.New("empty launch site")
	}
	if err := rec.Validate(); err != nil {
		return launch.Record{}, err
	}
	return rec, nil
}
