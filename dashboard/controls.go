package dashboard

import (
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/spektr-org/launchdash/launch"
)

// Control and output identifiers.
const (
	SiteDropdownID  = "site-dropdown"
	PayloadSliderID = "payload-slider"
	PieChartID      = "success-pie-chart"
	ScatterChartID  = "success-payload-scatter-chart"
)

const (
	AllSitesLabel     = "All Sites"
	SitePlaceholder   = "Select a Launch Site here"
	DefaultSliderStep = 1000
)

// DropdownOption is one entry of the site dropdown.
type DropdownOption struct {
	Label string              `json:"label"`
	Value launch.SiteSelector `json:"value"`
}

// SiteDropdown is the launch-site selector control.
type SiteDropdown struct {
	ID          string              `json:"id"`
	Options     []DropdownOption    `json:"options"`
	Value       launch.SiteSelector `json:"value"`
	Placeholder string              `json:"placeholder"`
	Searchable  bool                `json:"searchable"`
}

func newSiteDropdown(t *launch.Table) SiteDropdown {
	sites := t.Sites()
	opts := make([]DropdownOption, 0, len(sites)+1)
	opts = append(opts, DropdownOption{Label: AllSitesLabel, Value: launch.AllSites})
	for _, s := range sites {
		opts = append(opts, DropdownOption{Label: s, Value: launch.SiteSelector(s)})
	}
	return SiteDropdown{
		ID:          SiteDropdownID,
		Options:     opts,
		Value:       launch.AllSites,
		Placeholder: SitePlaceholder,
		Searchable:  true,
	}
}

// Index returns the position of the current value in Options, or -1.
func (d SiteDropdown) Index() int {
	return slices.IndexFunc(d.Options, func(o DropdownOption) bool { return o.Value == d.Value })
}

// Search returns the options whose label contains query, ignoring case.
func (d SiteDropdown) Search(query string) []DropdownOption {
	if query == "" {
		return slices.Clone(d.Options)
	}
	var out []DropdownOption
	for _, o := range d.Options {
		if containsFold(o.Label, query) {
			out = append(out, o)
		}
	}
	return out
}

// PayloadSlider is the two-handle payload-mass range control.
type PayloadSlider struct {
	ID    string              `json:"id"`
	Min   float64             `json:"min"`
	Max   float64             `json:"max"`
	Step  float64             `json:"step"`
	Marks map[int]string      `json:"marks"`
	Value launch.PayloadRange `json:"value"`
}

func newPayloadSlider(t *launch.Table, step float64) PayloadSlider {
	lo, hi := t.PayloadBounds()
	return PayloadSlider{
		ID:   PayloadSliderID,
		Min:  lo,
		Max:  hi,
		Step: step,
		Marks: map[int]string{
			int(lo): strconv.Itoa(int(lo)),
			int(hi): strconv.Itoa(int(hi)),
		},
		Value: launch.PayloadRange{Low: lo, High: hi},
	}
}

// Clamp limits both handles of r to [Min, Max] and swaps them when Low > High.
// NaN handles fall back to the matching bound.
func (s PayloadSlider) Clamp(r launch.PayloadRange) launch.PayloadRange {
	low, high := r.Low, r.High
	if math.IsNaN(low) {
		low = s.Min
	}
	if math.IsNaN(high) {
		high = s.Max
	}
	if low > high {
		low, high = high, low
	}
	return launch.PayloadRange{
		Low:  math.Min(math.Max(low, s.Min), s.Max),
		High: math.Min(math.Max(high, s.Min), s.Max),
	}
}

// Nudge moves one handle by steps slider steps and returns the clamped range.
// Handles never cross: a handle pushed past the other stops at it.
func (s PayloadSlider) Nudge(r launch.PayloadRange, high bool, steps int) launch.PayloadRange {
	delta := float64(steps) * s.Step
	if high {
		r.High = math.Max(r.High+delta, r.Low)
	} else {
		r.Low = math.Min(r.Low+delta, r.High)
	}
	return s.Clamp(r)
}

// Controls is a snapshot of both controls.
type Controls struct {
	Site    SiteDropdown  `json:"site"`
	Payload PayloadSlider `json:"payload"`
}

func (c Controls) clone() Controls {
	c.Site.Options = slices.Clone(c.Site.Options)
	c.Payload.Marks = maps.Clone(c.Payload.Marks)
	return c
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
