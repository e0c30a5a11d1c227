package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from QuerySpec + Groups / View
// ============================================================================
// Column discovery uses view.DimensionKeys()/MeasureKeys() instead of
// inspecting concrete row types.
// ============================================================================

// BuildTable produces a TableData. Aggregation "none" lists every row of the
// view; anything else lists one row per group.
func BuildTable(spec QuerySpec, groups []Group, view RecordView) *TableData {
	if spec.Aggregation == AggNone {
		return buildListTable(spec, view)
	}
	return buildAggregatedTable(spec, groups)
}

// ============================================================================
// LIST TABLE — Row per record
// ============================================================================

func buildListTable(spec QuerySpec, view RecordView) *TableData {
	table := &TableData{
		Title:   spec.Title,
		Columns: []Column{},
		Rows:    [][]string{},
	}
	if view == nil {
		return table
	}

	dimKeys := view.DimensionKeys()
	mesKeys := view.MeasureKeys()
	for _, key := range dimKeys {
		table.Columns = append(table.Columns, Column{
			Key:   key,
			Label: LabelForDimension(key),
			Type:  "text",
			Align: "left",
		})
	}
	for _, key := range mesKeys {
		table.Columns = append(table.Columns, Column{
			Key:   key,
			Label: LabelForDimension(key),
			Type:  "number",
			Align: "right",
		})
	}

	for i := 0; i < view.Len(); i++ {
		row := make([]string, 0, len(table.Columns))
		for _, key := range dimKeys {
			row = append(row, view.Dimension(i, key))
		}
		for _, key := range mesKeys {
			row = append(row, FormatNumber(view.Measure(i, key)))
		}
		table.Rows = append(table.Rows, row)
	}

	table.Summary = &Summary{
		Label:  "Total",
		Values: map[string]string{"count": FormatInt(view.Len())},
	}
	return table
}

// ============================================================================
// AGGREGATED TABLE — Summary rows
// ============================================================================

func buildAggregatedTable(spec QuerySpec, groups []Group) *TableData {
	groupLabel := "Group"
	if len(spec.GroupBy) > 0 {
		groupLabel = axisLabel(spec.Labels.X, spec.GroupBy[0])
	}
	valueLabel := spec.Labels.Y
	if valueLabel == "" {
		valueLabel = LabelForAggregation(spec.Aggregation)
	}

	table := &TableData{
		Title: spec.Title,
		Columns: []Column{
			{Key: "group", Label: groupLabel, Type: "text", Align: "left"},
			{Key: "value", Label: valueLabel, Type: "number", Align: "right"},
			{Key: "count", Label: "Count", Type: "number", Align: "center"},
		},
		Rows: make([][]string, 0, len(groups)),
	}

	var totalValue float64
	var totalCount int
	for _, g := range groups {
		table.Rows = append(table.Rows, []string{
			g.Label,
			FormatNumber(RoundTo2(g.Value)),
			fmt.Sprintf("%d", g.Count),
		})
		totalValue += g.Value
		totalCount += g.Count
	}

	table.Summary = &Summary{
		Label: "Total",
		Values: map[string]string{
			"value": FormatNumber(RoundTo2(totalValue)),
			"count": fmt.Sprintf("%d", totalCount),
		},
	}
	return table
}
