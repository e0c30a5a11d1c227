package launch

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/schema"
)

// Chart titles and axis captions.
const (
	TitleAllSitesDistribution = "Total Success Launches by Site"
	TitleAllSitesScatter      = "Payload vs Outcome for All Sites"
	AxisPayload               = "Payload Mass (kg)"
	AxisOutcome               = "Launch Outcome"
	AxisSite                  = "Launch Site"
	AxisSuccesses             = "Successful Launches"
	AxisLaunches              = "Launches"
)

// ErrInvalidSummary is returned for SummaryOptions PayloadSummary cannot run.
var ErrInvalidSummary = errors.New("invalid summary options")

// Slice is one labelled value of the outcome-distribution chart.
type Slice struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// Distribution is the outcome-distribution (pie) chart data.
type Distribution struct {
	Title  string              `json:"title" yaml:"title"`
	Site   SiteSelector        `json:"site" yaml:"site"`
	Slices []Slice             `json:"slices" yaml:"slices"`
	Chart  *engine.ChartConfig `json:"chart" yaml:"-"`
}

// Total sums every slice value.
func (d Distribution) Total() float64 {
	var total float64
	for _, s := range d.Slices {
		total += s.Value
	}
	return total
}

// Scatter is the payload-vs-outcome chart data.
type Scatter struct {
	Title string              `json:"title" yaml:"title"`
	Site  SiteSelector        `json:"site" yaml:"site"`
	Range PayloadRange        `json:"range" yaml:"range"`
	Rows  []Record            `json:"rows" yaml:"rows"`
	Chart *engine.ChartConfig `json:"chart" yaml:"-"`
}

// DistributionOption adjusts the outcome-distribution query.
type DistributionOption func(*engine.QuerySpec)

// AsBar renders the distribution as a bar chart, with axis captions,
// instead of a pie.
func AsBar() DistributionOption {
	return func(spec *engine.QuerySpec) { spec.Visualize = engine.VisualizeBar }
}

// OutcomeDistribution computes the pie chart for site.
//
// For AllSites there is one slice per site holding the sum of its outcome
// flags, i.e. its success count. For a single site there is a Success and a
// Failure slice (zero-count categories are dropped), larger first with
// Success winning ties. A site absent from the table yields no slices.
func OutcomeDistribution(t *Table, site SiteSelector, opts ...DistributionOption) Distribution {
	spec := engine.QuerySpec{Visualize: engine.VisualizePie}
	if site.IsAll() {
		spec.Title = TitleAllSitesDistribution
		spec.Labels = engine.Labels{X: AxisSite, Y: AxisSuccesses}
		spec.GroupBy = []string{schema.KeyLaunchSite}
		spec.Aggregation = engine.AggSum
		spec.Measure = schema.KeyClass
	} else {
		spec.Title = fmt.Sprintf("Success vs Failure for site %s", site)
		spec.Labels = engine.Labels{X: AxisOutcome, Y: AxisLaunches}
		spec.Filters = siteFilter(site)
		spec.GroupBy = []string{outcomeKey}
		spec.Aggregation = engine.AggCount
		spec.Order = []string{Success.String(), Failure.String()}
		spec.SortBy = "value_desc"
	}
	for _, opt := range opts {
		opt(&spec)
	}

	res := mustExecute(spec, t.View())

	d := Distribution{
		Title:  spec.Title,
		Site:   site,
		Slices: make([]Slice, 0, len(res.Groups)),
		Chart:  res.ChartConfig,
	}
	for _, g := range res.Groups {
		d.Slices = append(d.Slices, Slice{Label: g.Label, Value: g.Value})
	}
	return d
}

// PayloadScatter computes the scatter chart for site within r. Each
// selected record is a point (payload, outcome flag) coloured by booster
// category. A range with Low > High selects nothing.
func PayloadScatter(t *Table, site SiteSelector, r PayloadRange) Scatter {
	spec := selectionSpec(site, r)
	spec.Visualize = engine.VisualizeScatter
	spec.XMeasure = schema.KeyPayloadMass
	spec.YMeasure = schema.KeyClass
	spec.ColorBy = schema.KeyBoosterCategory

	res := mustExecute(spec, t.View())

	s := Scatter{
		Title: spec.Title,
		Site:  site,
		Range: r,
		Rows:  make([]Record, 0, res.View.Len()),
		Chart: res.ChartConfig,
	}
	for i := 0; i < res.View.Len(); i++ {
		s.Rows = append(s.Rows, t.At(engine.SourceIndex(res.View, i)))
	}
	return s
}

// PayloadTable lists the records PayloadScatter selects, one row each.
func PayloadTable(t *Table, site SiteSelector, r PayloadRange) *engine.TableData {
	spec := selectionSpec(site, r)
	spec.Visualize = engine.VisualizeTable
	spec.Aggregation = engine.AggNone
	return mustExecute(spec, t.View()).TableData
}

// Summary groupings accepted by SummaryOptions.By.
const (
	ByBooster = "booster"
	BySite    = "site"
	ByOutcome = "outcome"
)

var summaryDimensions = map[string]string{
	ByBooster: schema.KeyBoosterCategory,
	BySite:    schema.KeyLaunchSite,
	ByOutcome: outcomeKey,
}

var (
	summaryAggregations = []string{engine.AggAvg, engine.AggMin, engine.AggMax, engine.AggSum, engine.AggCount}
	summarySorts        = []string{"", "value_desc", "value_asc", "label_asc", "label_desc"}
)

// SummaryOptions shapes PayloadSummary. Zero values mean: group by
// booster category, average payload, first-appearance order, no limit.
type SummaryOptions struct {
	By          string `json:"by" yaml:"by"`
	Aggregation string `json:"aggregation" yaml:"aggregation"`
	SortBy      string `json:"sortBy" yaml:"sortBy"`
	Limit       int    `json:"limit" yaml:"limit"`
}

func (o SummaryOptions) withDefaults() SummaryOptions {
	if o.By == "" {
		o.By = ByBooster
	}
	if o.Aggregation == "" {
		o.Aggregation = engine.AggAvg
	}
	return o
}

// Validate reports the first unsupported option.
func (o SummaryOptions) Validate() error {
	o = o.withDefaults()
	if _, ok := summaryDimensions[o.By]; !ok {
		return fmt.Errorf("%w: unknown grouping %q", ErrInvalidSummary, o.By)
	}
	if !slices.Contains(summaryAggregations, o.Aggregation) {
		return fmt.Errorf("%w: unknown aggregation %q", ErrInvalidSummary, o.Aggregation)
	}
	if !slices.Contains(summarySorts, o.SortBy) {
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidSummary, o.SortBy)
	}
	if o.Limit < 0 {
		return fmt.Errorf("%w: negative limit %d", ErrInvalidSummary, o.Limit)
	}
	return nil
}

// PayloadSummary aggregates the payload mass of the records PayloadScatter
// selects, one row per group.
func PayloadSummary(t *Table, site SiteSelector, r PayloadRange, opts SummaryOptions) (*engine.TableData, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	spec := selectionSpec(site, r)
	spec.Title = fmt.Sprintf("Payload by %s", opts.By)
	if !site.IsAll() {
		spec.Title += fmt.Sprintf(" for site %s", site)
	}
	spec.Visualize = engine.VisualizeTable
	spec.GroupBy = []string{summaryDimensions[opts.By]}
	spec.Aggregation = opts.Aggregation
	spec.SortBy = opts.SortBy
	spec.Limit = opts.Limit
	spec.Labels = engine.Labels{Y: AxisLaunches}
	if opts.Aggregation != engine.AggCount {
		spec.Labels.Y = fmt.Sprintf("%s %s", engine.LabelForAggregation(opts.Aggregation), AxisPayload)
	}
	if opts.By == ByOutcome {
		spec.Labels.X = AxisOutcome
	}

	res, err := engine.Execute(spec, t.View(), engine.WithDefaultMeasure(schema.KeyPayloadMass))
	if err != nil {
		return nil, err
	}
	return res.TableData, nil
}

// selectionSpec filters by site and payload range and carries the scatter
// title and axis captions.
func selectionSpec(site SiteSelector, r PayloadRange) engine.QuerySpec {
	spec := engine.QuerySpec{
		Range:  &engine.Range{Measure: schema.KeyPayloadMass, Low: r.Low, High: r.High},
		Labels: engine.Labels{X: AxisPayload, Y: AxisOutcome},
		Title:  TitleAllSitesScatter,
	}
	if !site.IsAll() {
		spec.Title = fmt.Sprintf("Payload vs Outcome for site %s", site)
		spec.Filters = siteFilter(site)
	}
	return spec
}

func siteFilter(site SiteSelector) engine.Filters {
	return engine.Filters{Dimensions: map[string][]string{schema.KeyLaunchSite: {string(site)}}}
}

// mustExecute runs a spec built in this package; an error means the spec
// itself is wrong.
func mustExecute(spec engine.QuerySpec, view engine.RecordView) *engine.Result {
	res, err := engine.Execute(spec, view)
	if err != nil {
		panic(fmt.Sprintf("launch: %v", err))
	}
	return res
}
