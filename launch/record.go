// Package launch holds the launch-records domain: the immutable table loaded
// at startup and the two dashboard queries computed over it.
package launch

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/schema"
)

// ErrEmptyTable is returned by NewTable when no records are given.
var ErrEmptyTable = errors.New("launch table has no records")

// Outcome is the result of a launch. Its numeric value is the dataset's
// class flag.
type Outcome int

const (
	Failure Outcome = 0
	Success Outcome = 1
)

// ParseOutcome converts a class flag to an Outcome.
func ParseOutcome(flag float64) (Outcome, error) {
	switch flag {
	case 0:
		return Failure, nil
	case 1:
		return Success, nil
	}
	return Failure, fmt.Errorf("outcome flag must be 0 or 1, got %v", flag)
}

// Flag returns the class value (0 or 1).
func (o Outcome) Flag() float64 { return float64(o) }

func (o Outcome) String() string {
	if o == Success {
		return "Success"
	}
	return "Failure"
}

// Record is one historical launch.
type Record struct {
	Site            string  `json:"site" yaml:"site"`
	PayloadMassKg   float64 `json:"payloadMassKg" yaml:"payloadMassKg"`
	BoosterCategory string  `json:"boosterCategory" yaml:"boosterCategory"`
	Outcome         Outcome `json:"outcome" yaml:"outcome"`
}

// Validate checks the record invariants.
func (r Record) Validate() error {
	if math.IsNaN(r.PayloadMassKg) || math.IsInf(r.PayloadMassKg, 0) || r.PayloadMassKg < 0 {
		return fmt.Errorf("payload mass must be a non-negative number, got %v", r.PayloadMassKg)
	}
	if r.Outcome != Success && r.Outcome != Failure {
		return fmt.Errorf("invalid outcome %d", r.Outcome)
	}
	return nil
}

var adapter = engine.NewDomainAdapter[Record]().
	Dimension(schema.KeyLaunchSite, func(r Record) string { return r.Site }).
	Dimension(schema.KeyBoosterCategory, func(r Record) string { return r.BoosterCategory }).
	Dimension(outcomeKey, func(r Record) string { return r.Outcome.String() }).
	Measure(schema.KeyPayloadMass, func(r Record) float64 { return r.PayloadMassKg }).
	Measure(schema.KeyClass, func(r Record) float64 { return r.Outcome.Flag() })

// outcomeKey is a derived dimension holding "Success"/"Failure".
const outcomeKey = "outcome"

// Table is the ordered, read-only launch dataset. Build it once with
// NewTable and share the pointer; nothing mutates it afterwards.
type Table struct {
	records []Record
	view    engine.RecordView
	sites   []string
	min     float64
	max     float64
}

// NewTable validates and copies records into an immutable table.
func NewTable(records []Record) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	t := &Table{records: slices.Clone(records)}
	t.view = adapter.Bind(t.records)
	t.sites = engine.UniqueValues(t.view, schema.KeyLaunchSite)
	t.min = engine.MinMeasure(t.view, schema.KeyPayloadMass)
	t.max = engine.MaxMeasure(t.view, schema.KeyPayloadMass)
	return t, nil
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// At returns the i-th record.
func (t *Table) At(i int) Record { return t.records[i] }

// Records returns a copy of all records.
func (t *Table) Records() []Record { return slices.Clone(t.records) }

// Sites returns the distinct launch sites in first-appearance order.
func (t *Table) Sites() []string { return slices.Clone(t.sites) }

// HasSite reports whether any record was launched from site.
func (t *Table) HasSite(site string) bool { return slices.Contains(t.sites, site) }

// PayloadBounds returns the smallest and largest payload mass.
func (t *Table) PayloadBounds() (lo, hi float64) { return t.min, t.max }

// FullRange is the payload range covering every record.
func (t *Table) FullRange() PayloadRange { return PayloadRange{Low: t.min, High: t.max} }

// View exposes the table to the analytics engine without copying.
func (t *Table) View() engine.RecordView { return t.view }

// All yields every record in table order.
func (t *Table) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, r := range t.records {
			if !yield(r) {
				return
			}
		}
	}
}

// Select lazily yields the records whose payload lies in r and, unless site
// is AllSites, whose site equals site. Table order is preserved.
func (t *Table) Select(site SiteSelector, r PayloadRange) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, rec := range t.records {
			if !r.Contains(rec.PayloadMassKg) || !site.Matches(rec.Site) {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}
