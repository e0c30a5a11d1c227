// Package dashboard binds the dashboard controls to the two launch queries.
//
// A Dashboard holds the current control state and the latest chart outputs.
// Every control transition is one render cycle: the outputs bound to that
// control are recomputed once each and subscribers receive an Update. A
// Dashboard is driven from a single goroutine (the UI event loop) and is
// not safe for concurrent use.
package dashboard

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spektr-org/launchdash/launch"
)

// State is the control state the outputs are derived from.
type State struct {
	Site  launch.SiteSelector `json:"site"`
	Range launch.PayloadRange `json:"range"`
}

// Update describes one completed render cycle.
type Update struct {
	Cycle   string   `json:"cycle"`
	Control string   `json:"control"`
	Outputs []string `json:"outputs"`
	State   State    `json:"state"`
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dashboard) { d.logger = logger.Named("dashboard") }
}

// WithSliderStep sets the payload slider step in kilograms.
func WithSliderStep(step float64) Option {
	return func(d *Dashboard) {
		if step > 0 {
			d.step = step
		}
	}
}

// Dashboard is the control-to-query state machine.
type Dashboard struct {
	table    *launch.Table
	logger   *zap.Logger
	step     float64
	controls Controls
	bindings map[string][]string
	renders  map[string]func(State)
	subs     []func(Update)

	pie     launch.Distribution
	scatter launch.Scatter
}

// New builds a dashboard over t in its initial state ("ALL", full payload
// range) with the standard bindings: the site dropdown drives both charts,
// the payload slider drives the scatter chart. Both outputs are computed
// once before New returns.
func New(t *launch.Table, opts ...Option) *Dashboard {
	d := &Dashboard{
		table:    t,
		logger:   zap.NewNop(),
		step:     DefaultSliderStep,
		bindings: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.controls = Controls{
		Site:    newSiteDropdown(t),
		Payload: newPayloadSlider(t, d.step),
	}
	d.renders = map[string]func(State){
		PieChartID: func(s State) { d.pie = launch.OutcomeDistribution(d.table, s.Site) },
		ScatterChartID: func(s State) {
			d.scatter = launch.PayloadScatter(d.table, s.Site, s.Range)
		},
	}

	d.mustBind(SiteDropdownID, PieChartID, ScatterChartID)
	d.mustBind(PayloadSliderID, ScatterChartID)

	state := d.State()
	for _, id := range []string{PieChartID, ScatterChartID} {
		d.renders[id](state)
	}
	d.logger.Debug("dashboard initialised",
		zap.Int("sites", len(d.controls.Site.Options)-1),
		zap.Stringer("range", state.Range),
	)
	return d
}

// Bind sets the outputs recomputed when control changes, replacing any
// previous binding for it.
func (d *Dashboard) Bind(control string, outputs ...string) error {
	if control != SiteDropdownID && control != PayloadSliderID {
		return fmt.Errorf("unknown control %q", control)
	}
	for _, out := range outputs {
		if _, ok := d.renders[out]; !ok {
			return fmt.Errorf("unknown output %q", out)
		}
	}
	d.bindings[control] = slices.Compact(slices.Clone(outputs))
	return nil
}

func (d *Dashboard) mustBind(control string, outputs ...string) {
	if err := d.Bind(control, outputs...); err != nil {
		panic(err)
	}
}

// Bindings returns the outputs bound to control.
func (d *Dashboard) Bindings(control string) []string {
	return slices.Clone(d.bindings[control])
}

// Subscribe registers fn to be called after every render cycle.
func (d *Dashboard) Subscribe(fn func(Update)) {
	d.subs = append(d.subs, fn)
}

// SelectSite is the site-dropdown transition. A site that is not in the
// table is accepted and renders empty charts.
func (d *Dashboard) SelectSite(site launch.SiteSelector) Update {
	d.controls.Site.Value = site
	return d.render(SiteDropdownID)
}

// SetPayloadRange is the payload-slider transition. The range is clamped
// to the slider bounds before any query runs.
func (d *Dashboard) SetPayloadRange(r launch.PayloadRange) Update {
	d.controls.Payload.Value = d.controls.Payload.Clamp(r)
	return d.render(PayloadSliderID)
}

func (d *Dashboard) render(control string) Update {
	start := time.Now()
	state := d.State()
	outputs := d.Bindings(control)
	for _, id := range outputs {
		d.renders[id](state)
	}

	u := Update{
		Cycle:   uuid.New().String(),
		Control: control,
		Outputs: outputs,
		State:   state,
	}
	d.logger.Debug("render cycle",
		zap.String("cycle", u.Cycle),
		zap.String("control", control),
		zap.Strings("outputs", outputs),
		zap.String("site", string(state.Site)),
		zap.Stringer("range", state.Range),
		zap.Duration("took", time.Since(start)),
	)
	for _, fn := range d.subs {
		fn(u)
	}
	return u
}

// State returns the current control state.
func (d *Dashboard) State() State {
	return State{Site: d.controls.Site.Value, Range: d.controls.Payload.Value}
}

// Controls returns a snapshot of the controls.
func (d *Dashboard) Controls() Controls { return d.controls.clone() }

// Pie returns the latest outcome-distribution output.
func (d *Dashboard) Pie() launch.Distribution { return d.pie }

// Scatter returns the latest payload-scatter output.
func (d *Dashboard) Scatter() launch.Scatter { return d.scatter }

// Table returns the table the dashboard reads.
func (d *Dashboard) Table() *launch.Table { return d.table }
