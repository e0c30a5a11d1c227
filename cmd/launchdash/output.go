package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/launch"
	"github.com/spektr-org/launchdash/schema"
)

// ============================================================================
// STRUCTURED OUTPUT — json, pretty, yaml
// ============================================================================

// writeStructured handles the formats shared by every command. It reports
// false for formats it does not handle.
func writeStructured(w io.Writer, v interface{}, format string) (bool, error) {
	switch format {
	case "json", "pretty":
		return true, writeJSON(w, v, format)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to marshal output: %w", err)
		}
		return true, enc.Close()
	}
	return false, nil
}

func writeJSON(w io.Writer, v interface{}, format string) error {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// ============================================================================
// DISTRIBUTION
// ============================================================================

func writeDistribution(w io.Writer, d launch.Distribution, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if ok, err := writeStructured(w, d, format); ok {
		return err
	}

	labelHeader, valueHeader := "Outcome", "Count"
	if d.Site.IsAll() {
		labelHeader, valueHeader = "Launch Site", "Successes"
	}

	if format == "csv" {
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{labelHeader, valueHeader})
		for _, s := range d.Slices {
			_ = cw.Write([]string{s.Label, fmtNum(s.Value)})
		}
		cw.Flush()
		return cw.Error()
	}

	var sb strings.Builder
	sb.WriteString(d.Title + "\n")
	total := d.Total()
	if len(d.Slices) == 0 || total == 0 {
		sb.WriteString("No launches match this selection.\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}
	for _, s := range d.Slices {
		sb.WriteString(fmt.Sprintf("  %-16s %6s  %5.1f%%\n", s.Label, fmtNum(s.Value), s.Value/total*100))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// ============================================================================
// SCATTER
// ============================================================================

// writeScatter prints s; the text format also lists the selected rows from
// rows when it is non-nil.
func writeScatter(w io.Writer, s launch.Scatter, rows *engine.TableData, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if ok, err := writeStructured(w, s, format); ok {
		return err
	}

	var sb strings.Builder
	sb.WriteString(s.Title + "\n")
	successes := 0
	for _, r := range s.Rows {
		if r.Outcome == launch.Success {
			successes++
		}
	}
	sb.WriteString(fmt.Sprintf("  %d launches, %d successful, payload %s kg\n",
		len(s.Rows), successes, formatRange(s.Range)))
	for _, series := range s.Chart.Series {
		ok := 0
		for _, p := range series.Points {
			if p.Y == launch.Success.Flag() {
				ok++
			}
		}
		sb.WriteString(fmt.Sprintf("  %-8s %3d launches, %3d successful\n", series.Name, len(series.Points), ok))
	}
	if rows != nil && len(rows.Rows) > 0 {
		sb.WriteString(renderTable(rows))
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// ============================================================================
// TABLES
// ============================================================================

// writeTable prints engine table data; csv uses the column labels as header.
func writeTable(w io.Writer, td *engine.TableData, format string) error {
	if ok, err := writeStructured(w, td, format); ok {
		return err
	}

	if format == "csv" {
		cw := csv.NewWriter(w)
		header := make([]string, 0, len(td.Columns))
		for _, c := range td.Columns {
			header = append(header, c.Label)
		}
		_ = cw.Write(header)
		_ = cw.WriteAll(td.Rows)
		return cw.Error()
	}

	var sb strings.Builder
	sb.WriteString(td.Title + "\n")
	if len(td.Rows) == 0 {
		sb.WriteString("No launches match this selection.\n")
	} else {
		sb.WriteString(renderTable(td))
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// renderTable draws engine table data with a lipgloss table.
func renderTable(td *engine.TableData) string {
	headers := make([]string, 0, len(td.Columns))
	for _, c := range td.Columns {
		headers = append(headers, c.Label)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(td.Rows...)
	return t.Render()
}

// writeRecordsCSV streams the selected records, one CSV row each, using the
// dataset's own column headers.
func writeRecordsCSV(w io.Writer, records iter.Seq[launch.Record]) error {
	sch := schema.Launch()
	header := make([]string, 0, 4)
	for _, key := range []string{schema.KeyLaunchSite, schema.KeyPayloadMass, schema.KeyBoosterCategory, schema.KeyClass} {
		col, _ := sch.Column(key)
		header = append(header, col.Header)
	}

	cw := csv.NewWriter(w)
	_ = cw.Write(header)
	for r := range records {
		_ = cw.Write([]string{r.Site, fmtNum(r.PayloadMassKg), r.BoosterCategory, fmtNum(r.Outcome.Flag())})
	}
	cw.Flush()
	return cw.Error()
}

// ============================================================================
// HELPERS
// ============================================================================

func fmtNum(v float64) string {
	return engine.FormatNumber(v)
}

func formatRange(r launch.PayloadRange) string {
	return fmt.Sprintf("%s–%s", fmtNum(r.Low), fmtNum(r.High))
}
