package engine

// ============================================================================
// CHART BUILDER — Produces ChartConfig from QuerySpec + Groups / View
// ============================================================================
// Categorical charts (pie, bar) are built from aggregated groups.
// Scatter charts are built straight from the filtered view: one point per
// row, one series per ColorBy value.
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Palette returns the color assigned to the i-th series.
func Palette(i int) string {
	return defaultColors[i%len(defaultColors)]
}

// BuildChart produces a ChartConfig from a QuerySpec, aggregated groups and
// the filtered view. An empty input yields a chart with empty series, never nil.
func BuildChart(spec QuerySpec, groups []Group, view RecordView) *ChartConfig {
	chartType := spec.Visualize
	if chartType == "" {
		chartType = VisualizeBar
	}

	config := &ChartConfig{
		ChartType:  chartType,
		Title:      spec.Title,
		ShowLegend: true,
		ShowGrid:   chartType != VisualizePie,
	}

	if chartType == VisualizeScatter {
		config.XAxis = axisLabel(spec.Labels.X, spec.XMeasure)
		config.YAxis = axisLabel(spec.Labels.Y, spec.YMeasure)
		config.Series = buildScatterSeries(spec, view)
	} else {
		// Pie charts have no axes.
		if chartType != VisualizePie {
			if len(spec.GroupBy) > 0 {
				config.XAxis = axisLabel(spec.Labels.X, spec.GroupBy[0])
			}
			config.YAxis = spec.Labels.Y
			if config.YAxis == "" {
				config.YAxis = LabelForAggregation(spec.Aggregation)
			}
		}
		config.Series = buildSingleSeries(groups, spec.Title)
	}

	config.Colors = assignColors(len(config.Series))
	if chartType == VisualizePie && len(config.Series) == 1 {
		config.Colors = assignColors(len(config.Series[0].Data))
	}
	return config
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSingleSeries(groups []Group, seriesName string) []ChartSeries {
	if seriesName == "" {
		seriesName = "Value"
	}

	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Label: g.Label,
			Value: RoundTo2(g.Value),
		})
	}

	return []ChartSeries{{
		Name: seriesName,
		Data: points,
	}}
}

func buildScatterSeries(spec QuerySpec, view RecordView) []ChartSeries {
	if view == nil || view.Len() == 0 {
		return []ChartSeries{}
	}

	index := make(map[string]int)
	var series []ChartSeries
	for i := 0; i < view.Len(); i++ {
		name := "Value"
		if spec.ColorBy != "" {
			name = view.Dimension(i, spec.ColorBy)
		}
		idx, ok := index[name]
		if !ok {
			idx = len(series)
			index[name] = idx
			series = append(series, ChartSeries{Name: name, Color: Palette(idx)})
		}
		series[idx].Points = append(series[idx].Points, ScatterPoint{
			X: view.Measure(i, spec.XMeasure),
			Y: view.Measure(i, spec.YMeasure),
		})
	}
	return series
}

func axisLabel(override, key string) string {
	if override != "" {
		return override
	}
	return LabelForDimension(key)
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = Palette(i)
	}
	return colors
}
