package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Test Data ─────────────────────────────────────────────────────────────────

type testRow struct {
	site    string
	booster string
	payload float64
	class   float64
}

var testAdapter = NewDomainAdapter[testRow]().
	Dimension("booster", func(r testRow) string { return r.booster }).
	Dimension("launch_site", func(r testRow) string { return r.site }).
	Measure("class", func(r testRow) float64 { return r.class }).
	Measure("payload", func(r testRow) float64 { return r.payload })

var keyAdapter = NewDomainAdapter[string]().
	Dimension("k", func(s string) string { return s })

func launchRows() RecordView {
	return testAdapter.Bind([]testRow{
		{"KSC", "v1", 5000, 1},
		{"KSC", "v1", 3000, 0},
		{"VAFB", "v2", 7000, 1},
		{"CCAFS", "v2", 0, 0},
	})
}

// ============================================================================
// FILTERS
// ============================================================================

func TestApplyFilters_ExactMatch(t *testing.T) {
	view := launchRows()

	ksc := ApplyFilters(view, Filters{Dimensions: map[string][]string{"launch_site": {"KSC"}}})
	assert.Equal(t, 2, ksc.Len())

	lower := ApplyFilters(view, Filters{Dimensions: map[string][]string{"launch_site": {"ksc"}}})
	assert.Equal(t, 0, lower.Len(), "site matching is case-sensitive")

	either := ApplyFilters(view, Filters{Dimensions: map[string][]string{"launch_site": {"KSC", "VAFB"}}})
	assert.Equal(t, 3, either.Len())
}

func TestApplyFilters_EmptyReturnsSameView(t *testing.T) {
	view := launchRows()
	assert.Same(t, view, ApplyFilters(view, Filters{}))
}

func TestApplyRange_Inclusive(t *testing.T) {
	view := launchRows()

	got := ApplyRange(view, Range{Measure: "payload", Low: 3000, High: 7000})
	require.Equal(t, 3, got.Len())
	assert.Equal(t, 5000.0, got.Measure(0, "payload"))
	assert.Equal(t, 3000.0, got.Measure(1, "payload"))
	assert.Equal(t, 7000.0, got.Measure(2, "payload"))

	inverted := ApplyRange(view, Range{Measure: "payload", Low: 7000, High: 3000})
	assert.Equal(t, 0, inverted.Len())
}

func TestSourceIndex_ThroughNestedSubViews(t *testing.T) {
	view := launchRows()
	v2 := ApplyFilters(view, Filters{Dimensions: map[string][]string{"booster": {"v2"}}})
	nested := ApplyRange(v2, Range{Measure: "payload", Low: 0, High: 100})

	require.Equal(t, 1, nested.Len())
	assert.Equal(t, 3, SourceIndex(nested, 0))
	assert.Equal(t, 2, SourceIndex(view, 2))
}

// ============================================================================
// AGGREGATION
// ============================================================================

func TestGroupAndAggregate_SumPreservesFirstAppearance(t *testing.T) {
	groups := GroupAndAggregate(launchRows(), QuerySpec{
		GroupBy:     []string{"launch_site"},
		Aggregation: AggSum,
	}, "class")

	got := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		got = append(got, ChartPoint{Label: g.Label, Value: g.Value})
	}
	want := []ChartPoint{{"KSC", 1}, {"VAFB", 1}, {"CCAFS", 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupAndAggregate_OrderThenStableSort(t *testing.T) {
	view := keyAdapter.Bind([]string{"b", "a", "c", "c"})

	groups := GroupAndAggregate(view, QuerySpec{
		GroupBy:     []string{"k"},
		Aggregation: AggCount,
		Order:       []string{"a", "b"},
		SortBy:      "value_desc",
	}, "")

	keys := []string{}
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"c", "a", "b"}, keys)
}

func TestGroupAndAggregate_EmptyView(t *testing.T) {
	assert.Nil(t, GroupAndAggregate(testAdapter.Bind(nil), QuerySpec{GroupBy: []string{"k"}}, "x"))
}

func TestGroupAndAggregate_Aggregations(t *testing.T) {
	cases := map[string][]float64{
		AggSum:   {8000, 7000},
		AggCount: {2, 2},
		AggAvg:   {4000, 3500},
		AggMin:   {3000, 0},
		AggMax:   {5000, 7000},
	}
	for agg, want := range cases {
		t.Run(agg, func(t *testing.T) {
			groups := GroupAndAggregate(launchRows(), QuerySpec{
				GroupBy:     []string{"booster"},
				Aggregation: agg,
			}, "payload")
			got := []float64{}
			for _, g := range groups {
				got = append(got, g.Value)
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestSortGroupsAndLimit(t *testing.T) {
	view := keyAdapter.Bind([]string{"b", "a", "c", "c", "b", "c"})
	cases := map[string][]string{
		"":           {"b", "a"},
		"value_desc": {"c", "b"},
		"value_asc":  {"a", "b"},
		"label_asc":  {"a", "b"},
		"label_desc": {"c", "b"},
	}
	for sortBy, want := range cases {
		t.Run(sortBy, func(t *testing.T) {
			groups := GroupAndAggregate(view, QuerySpec{
				GroupBy:     []string{"k"},
				Aggregation: AggCount,
				SortBy:      sortBy,
				Limit:       2,
			}, "")
			keys := []string{}
			for _, g := range groups {
				keys = append(keys, g.Key)
			}
			assert.Equal(t, want, keys)
		})
	}
}

func TestMinMaxMeasure(t *testing.T) {
	view := launchRows()
	assert.Equal(t, 0.0, MinMeasure(view, "payload"))
	assert.Equal(t, 7000.0, MaxMeasure(view, "payload"))
	assert.Equal(t, 0.0, MaxMeasure(testAdapter.Bind(nil), "payload"))
}

func TestUniqueValues(t *testing.T) {
	assert.Equal(t, []string{"KSC", "VAFB", "CCAFS"}, UniqueValues(launchRows(), "launch_site"))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatInt(1234567))
	assert.Equal(t, "-1,000", FormatInt(-1000))
	assert.Equal(t, "9600", FormatNumber(9600))
	assert.Equal(t, "2.50", FormatNumber(2.5))
	assert.Equal(t, "Payload Mass (kg)", LabelForDimension("payload_mass_(kg)"))
}

// ============================================================================
// EXECUTE
// ============================================================================

func TestExecute_PieChart(t *testing.T) {
	res, err := Execute(QuerySpec{
		GroupBy:     []string{"launch_site"},
		Aggregation: AggSum,
		Visualize:   VisualizePie,
		Title:       "Successes",
	}, launchRows(), WithDefaultMeasure("class"))
	require.NoError(t, err)

	assert.Equal(t, "chart", res.Type)
	assert.Equal(t, 4, res.Count)
	require.Len(t, res.ChartConfig.Series, 1)
	assert.Len(t, res.ChartConfig.Series[0].Data, 3)
	assert.Len(t, res.ChartConfig.Colors, 3)
	assert.False(t, res.ChartConfig.ShowGrid)
	assert.Empty(t, res.ChartConfig.XAxis, "pie charts have no axes")
	assert.Empty(t, res.ChartConfig.YAxis)
}

func TestExecute_BarChartAxes(t *testing.T) {
	res, err := Execute(QuerySpec{
		GroupBy:     []string{"launch_site"},
		Aggregation: AggSum,
		Visualize:   VisualizeBar,
		Labels:      Labels{Y: "Successes"},
	}, launchRows(), WithDefaultMeasure("class"))
	require.NoError(t, err)

	assert.Equal(t, VisualizeBar, res.ChartConfig.ChartType)
	assert.True(t, res.ChartConfig.ShowGrid)
	assert.Equal(t, "Launch Site", res.ChartConfig.XAxis)
	assert.Equal(t, "Successes", res.ChartConfig.YAxis)
	assert.Equal(t, []ChartPoint{{"KSC", 1}, {"VAFB", 1}, {"CCAFS", 0}}, res.ChartConfig.Series[0].Data)
}

func TestExecute_ScatterSplitsSeriesByColor(t *testing.T) {
	res, err := Execute(QuerySpec{
		Range:     &Range{Measure: "payload", Low: 3000, High: 8000},
		Visualize: VisualizeScatter,
		XMeasure:  "payload",
		YMeasure:  "class",
		ColorBy:   "booster",
		Labels:    Labels{Y: "Launch Outcome"},
	}, launchRows())
	require.NoError(t, err)

	want := []ChartSeries{
		{Name: "v1", Color: Palette(0), Points: []ScatterPoint{{5000, 1}, {3000, 0}}},
		{Name: "v2", Color: Palette(1), Points: []ScatterPoint{{7000, 1}}},
	}
	if diff := cmp.Diff(want, res.ChartConfig.Series); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Payload", res.ChartConfig.XAxis)
	assert.Equal(t, "Launch Outcome", res.ChartConfig.YAxis)
}

func TestExecute_EmptySelectionIsNotAnError(t *testing.T) {
	res, err := Execute(QuerySpec{
		Filters:     Filters{Dimensions: map[string][]string{"launch_site": {"Nowhere"}}},
		GroupBy:     []string{"launch_site"},
		Aggregation: AggCount,
		Visualize:   VisualizePie,
	}, launchRows())
	require.NoError(t, err)
	require.NotNil(t, res.ChartConfig)
	assert.True(t, res.ChartConfig.IsEmpty())
	assert.Equal(t, 0, res.Count)
}

func TestExecute_ListTable(t *testing.T) {
	res, err := Execute(QuerySpec{
		Filters:     Filters{Dimensions: map[string][]string{"launch_site": {"KSC"}}},
		Aggregation: AggNone,
		Visualize:   VisualizeTable,
	}, launchRows())
	require.NoError(t, err)

	require.Equal(t, "table", res.Type)
	assert.Len(t, res.TableData.Columns, 4)
	assert.Equal(t, [][]string{{"v1", "KSC", "1", "5000"}, {"v1", "KSC", "0", "3000"}}, res.TableData.Rows)
	assert.Equal(t, "2", res.TableData.Summary.Values["count"])
}

func TestExecute_AggregatedTable(t *testing.T) {
	res, err := Execute(QuerySpec{
		GroupBy:     []string{"launch_site"},
		Aggregation: AggSum,
		Measure:     "class",
		Visualize:   VisualizeTable,
	}, launchRows())
	require.NoError(t, err)

	assert.Equal(t, "Launch Site", res.TableData.Columns[0].Label)
	assert.Equal(t, []string{"KSC", "1", "2"}, res.TableData.Rows[0])
	assert.Equal(t, "2", res.TableData.Summary.Values["value"])
}

func TestExecute_InvalidSpec(t *testing.T) {
	cases := map[string]QuerySpec{
		"unknown visualization": {Visualize: "radar"},
		"scatter without axes":  {Visualize: VisualizeScatter},
		"range without measure": {Range: &Range{Low: 1, High: 2}},
		"two group dimensions":  {GroupBy: []string{"a", "b"}},
	}
	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Execute(spec, launchRows())
			assert.True(t, errors.Is(err, ErrInvalidSpec), "got %v", err)
		})
	}
}

func TestExecute_Idempotent(t *testing.T) {
	spec := QuerySpec{
		Range:     &Range{Measure: "payload", Low: 0, High: 10000},
		Visualize: VisualizeScatter,
		XMeasure:  "payload",
		YMeasure:  "class",
		ColorBy:   "booster",
	}
	view := launchRows()
	first, err := Execute(spec, view)
	require.NoError(t, err)
	second, err := Execute(spec, view)
	require.NoError(t, err)
	if diff := cmp.Diff(first.ChartConfig, second.ChartConfig); diff != "" {
		t.Errorf("re-run differs (-first +second):\n%s", diff)
	}
}
