package engine

// ============================================================================
// ENGINE TYPES — Filter/Aggregate Contracts and Render-Ready Output
// ============================================================================
// The engine reads rows through RecordView, narrows them with Filters and
// Range, groups/aggregates them, and hands back chart or table configs.
//
// Dependency: engine has ZERO external dependencies.
// ============================================================================

// ============================================================================
// QUERYSPEC — What the engine should compute
// ============================================================================

// Visualization kinds understood by BuildChart.
const (
	VisualizePie     = "pie"
	VisualizeScatter = "scatter"
	VisualizeBar     = "bar"
	VisualizeTable   = "table"
)

// Aggregations understood by GroupAndAggregate.
const (
	AggSum   = "sum"
	AggCount = "count"
	AggAvg   = "avg"
	AggMin   = "min"
	AggMax   = "max"
	AggNone  = "none"
)

// QuerySpec defines what the engine should compute.
type QuerySpec struct {
	Filters     Filters  `json:"filters"`               // Which records to include
	Range       *Range   `json:"range,omitempty"`       // Inclusive measure bounds
	Aggregation string   `json:"aggregation"`           // "sum", "count", "avg", "max", "min", "none"
	Measure     string   `json:"measure"`               // Which measure to aggregate (empty → use default)
	GroupBy     []string `json:"groupBy"`               // Dimension keys: ["launch_site"]
	Order       []string `json:"order,omitempty"`       // Explicit group order applied before SortBy
	SortBy      string   `json:"sortBy"`                // "value_desc", "value_asc", "alpha_asc", "label_desc"
	Limit       int      `json:"limit"`                 // 0 = all
	Visualize   string   `json:"visualize"`             // "pie", "scatter", "bar", "table"
	Title       string   `json:"title"`                 // Chart/table title
	XMeasure    string   `json:"xMeasure,omitempty"`    // Scatter: x coordinate measure
	YMeasure    string   `json:"yMeasure,omitempty"`    // Scatter: y coordinate measure
	ColorBy     string   `json:"colorBy,omitempty"`     // Scatter: dimension splitting points into series
	Labels      Labels   `json:"labels,omitempty"`      // Axis label overrides
}

// Labels overrides the axis captions derived from keys.
type Labels struct {
	X string `json:"x,omitempty"`
	Y string `json:"y,omitempty"`
}

// Filters define which records to include.
// Keys are dimension names. Values are allowed values.
// OR within a dimension, AND across dimensions. Empty = all.
// Matching is exact (case-sensitive).
type Filters struct {
	Dimensions map[string][]string `json:"dimensions"`
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	if f.Dimensions == nil {
		return true
	}
	for _, vals := range f.Dimensions {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Range bounds a measure on both ends, inclusive.
type Range struct {
	Measure string  `json:"measure"`
	Low     float64 `json:"low"`
	High    float64 `json:"high"`
}

// Contains reports whether v lies within [Low, High].
func (r Range) Contains(v float64) bool {
	return r.Low <= v && v <= r.High
}

// ============================================================================
// RESULT — Render-ready output
// ============================================================================

// Result is the engine's render-ready output.
type Result struct {
	Type  string `json:"type"` // "chart", "table"
	Title string `json:"title"`
	Count int    `json:"count"` // records that survived filtering

	// Exactly one of these is populated based on Type:
	ChartConfig *ChartConfig `json:"chartConfig,omitempty"`
	TableData   *TableData   `json:"tableData,omitempty"`

	Groups []Group    `json:"groups,omitempty"`
	View   RecordView `json:"-"` // filtered rows, zero-copy
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group represents a grouped/aggregated result.
// Builders convert these into ChartConfig or TableData.
type Group struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Value float64    `json:"value"`
	Count int        `json:"count"`
	View  RecordView `json:"-"` // Sub-view for records in this group (zero-copy)
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// IsEmpty reports whether no series carries any data.
func (c *ChartConfig) IsEmpty() bool {
	if c == nil {
		return true
	}
	for _, s := range c.Series {
		if len(s.Data) > 0 || len(s.Points) > 0 {
			return false
		}
	}
	return true
}

// ChartSeries represents a data series in a chart.
// Categorical charts fill Data; scatter charts fill Points.
type ChartSeries struct {
	Name   string         `json:"name"`
	Data   []ChartPoint   `json:"data,omitempty"`
	Points []ScatterPoint `json:"points,omitempty"`
	Color  string         `json:"color,omitempty"`
}

// ChartPoint represents a single categorical data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ScatterPoint is one (x, y) observation.
type ScatterPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals or aggregations for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}
