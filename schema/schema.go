package schema

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ============================================================================
// SCHEMA — Describes the shape of a dataset for the loader and the engine
// ============================================================================
// Columns are matched by snake-cased header, so "Launch Site" and
// "launch_site" resolve to the same key. Extra columns are ignored.
// ============================================================================

// ErrMissingColumn is returned when a required column is absent from a header row.
var ErrMissingColumn = errors.New("missing required column")

// Role tells whether a column is used for grouping/filtering or for arithmetic.
type Role string

const (
	RoleDimension Role = "dimension"
	RoleMeasure   Role = "measure"
)

// Column keys of the launch dataset.
const (
	KeyLaunchSite      = "launch_site"
	KeyPayloadMass     = "payload_mass_(kg)"
	KeyBoosterCategory = "booster_version_category"
	KeyClass           = "class"
)

// Config describes the complete shape of a dataset.
type Config struct {
	Name    string       `json:"name" yaml:"name"`
	Columns []ColumnMeta `json:"columns" yaml:"columns"`
}

// ColumnMeta describes one column.
type ColumnMeta struct {
	Key         string `json:"key" yaml:"key"`
	Header      string `json:"header" yaml:"header"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Role        Role   `json:"role" yaml:"role"`
	Required    bool   `json:"required" yaml:"required"`
}

// Launch returns the schema of the launch-records CSV.
func Launch() Config {
	return Config{
		Name: "SpaceX Launch Records",
		Columns: []ColumnMeta{
			{Key: KeyLaunchSite, Header: "Launch Site", DisplayName: "Launch Site", Role: RoleDimension, Required: true},
			{Key: KeyPayloadMass, Header: "Payload Mass (kg)", DisplayName: "Payload Mass (kg)", Role: RoleMeasure, Required: true},
			{Key: KeyBoosterCategory, Header: "Booster Version Category", DisplayName: "Booster Version Category", Role: RoleDimension, Required: true},
			{Key: KeyClass, Header: "class", DisplayName: "Launch Outcome", Role: RoleMeasure, Required: true},
		},
	}
}

// Column returns the metadata for key, if present.
func (c Config) Column(key string) (ColumnMeta, bool) {
	for _, col := range c.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return ColumnMeta{}, false
}

// DisplayName returns the caption for key, falling back to the key itself.
func (c Config) DisplayName(key string) string {
	if col, ok := c.Column(key); ok && col.DisplayName != "" {
		return col.DisplayName
	}
	return key
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	return c.keys(RoleDimension)
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	return c.keys(RoleMeasure)
}

func (c Config) keys(role Role) []string {
	var keys []string
	for _, col := range c.Columns {
		if col.Role == role {
			keys = append(keys, col.Key)
		}
	}
	return keys
}

// Resolve maps each schema column key to its position in headers.
// Every missing required column is reported in one wrapped ErrMissingColumn.
func (c Config) Resolve(headers []string) (map[string]int, error) {
	positions := make(map[string]int, len(headers))
	for i, h := range headers {
		key := ToSnakeCase(h)
		if _, dup := positions[key]; !dup {
			positions[key] = i
		}
	}

	index := make(map[string]int, len(c.Columns))
	var missing []string
	for _, col := range c.Columns {
		pos, ok := positions[col.Key]
		if !ok {
			if col.Required {
				missing = append(missing, fmt.Sprintf("%q", col.Header))
			}
			continue
		}
		index[col.Key] = pos
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}

// ToSnakeCase converts "Column Name" or "columnName" → "column_name".
func ToSnakeCase(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))

	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			prev := rune(s[i-1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}

	s = strings.ToLower(result.String())
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}
