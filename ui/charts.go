package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/x/ansi"

	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/launch"
)

const (
	minPlotWidth = 20
	labelWidth   = 14
)

// renderPie draws the outcome distribution as one proportional bar per
// slice with its share and raw value.
func renderPie(d launch.Distribution, bar progress.Model, st Styles) string {
	var sb strings.Builder
	sb.WriteString(st.Title.Render(d.Title))
	sb.WriteString("\n\n")

	total := d.Total()
	if len(d.Slices) == 0 || total == 0 {
		sb.WriteString(st.Muted.Render("No launches match this selection."))
		return sb.String()
	}

	for _, s := range d.Slices {
		share := s.Value / total
		sb.WriteString(fmt.Sprintf("%-*s %s %5.1f%%  (%s)\n",
			labelWidth, truncate(s.Label, labelWidth),
			bar.ViewAs(share),
			share*100,
			engine.FormatNumber(s.Value),
		))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderScatter draws the payload scatter as two lanes (Success above,
// Failure below) across the selected payload range, one marker per launch
// coloured by booster category.
func renderScatter(s launch.Scatter, width int, st Styles) string {
	var sb strings.Builder
	sb.WriteString(st.Title.Render(s.Title))
	sb.WriteString("\n\n")

	if s.Chart.IsEmpty() {
		sb.WriteString(st.Muted.Render("No launches in this payload range."))
		return sb.String()
	}

	plotWidth := max(minPlotWidth, width-labelWidth-4)
	lanes := map[float64][]string{
		launch.Success.Flag(): blankLane(plotWidth),
		launch.Failure.Flag(): blankLane(plotWidth),
	}
	for _, series := range s.Chart.Series {
		marker := dot(series.Color)
		for _, p := range series.Points {
			if lane, ok := lanes[p.Y]; ok {
				lane[column(p.X, s.Range, plotWidth)] = marker
			}
		}
	}

	for _, o := range []launch.Outcome{launch.Success, launch.Failure} {
		sb.WriteString(fmt.Sprintf("%-*s │%s\n", labelWidth, o.String(), strings.Join(lanes[o.Flag()], "")))
	}
	sb.WriteString(fmt.Sprintf("%-*s └%s\n", labelWidth, "", strings.Repeat("─", plotWidth)))

	lo, hi := engine.FormatNumber(s.Range.Low), engine.FormatNumber(s.Range.High)
	gap := max(1, plotWidth-len(lo)-len(hi))
	sb.WriteString(st.Axis.Render(fmt.Sprintf("%-*s  %s%s%s", labelWidth, "", lo, strings.Repeat(" ", gap), hi)))
	sb.WriteString("\n")
	sb.WriteString(st.Axis.Render(fmt.Sprintf("%-*s  %s", labelWidth, "", s.Chart.XAxis)))
	sb.WriteString("\n\n")

	legend := make([]string, 0, len(s.Chart.Series))
	for _, series := range s.Chart.Series {
		legend = append(legend, fmt.Sprintf("%s %s (%d)", dot(series.Color), series.Name, len(series.Points)))
	}
	sb.WriteString(strings.Join(legend, "   "))
	return sb.String()
}

func blankLane(width int) []string {
	lane := make([]string, width)
	for i := range lane {
		lane[i] = " "
	}
	return lane
}

// column maps x within r onto [0, width).
func column(x float64, r launch.PayloadRange, width int) int {
	span := r.High - r.Low
	if span <= 0 {
		return 0
	}
	col := int(math.Round((x - r.Low) / span * float64(width-1)))
	return min(max(col, 0), width-1)
}

// truncate shortens s to at most l terminal cells.
func truncate(s string, l int) string {
	return ansi.Truncate(s, l, "...")
}
