package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/launch"
)

func newQueryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run one dashboard query and print the result",
		Long: `Runs a single dashboard query over the launch table and prints it.

Formats:
  json      Full JSON output (default)
  pretty    Pretty-printed JSON
  yaml      YAML (chart rendering config omitted)
  text      Human-readable summary
  csv       Chart data as CSV (ready for Sheets/Excel)`,
	}
	cmd.AddCommand(newOutcomeCmd(a), newPayloadCmd(a), newSummaryCmd(a))
	return cmd
}

// warnUnknownSite logs a site selector that names no site in the table.
// The query still runs and renders empty.
func (a *app) warnUnknownSite(sel launch.SiteSelector) {
	if !sel.IsAll() && !a.table.HasSite(string(sel)) {
		a.logger.Warn("site not in table", zap.String("site", string(sel)))
	}
}

// payloadRange resolves --low/--high against the table's payload bounds.
func (a *app) payloadRange(cmd *cobra.Command, low, high float64) launch.PayloadRange {
	r := a.table.FullRange()
	if cmd.Flags().Changed("low") {
		r.Low = low
	}
	if cmd.Flags().Changed("high") {
		r.High = high
	}
	if !r.Valid() {
		a.logger.Warn("payload range is inverted", zap.Stringer("range", r))
	}
	return r
}

func newOutcomeCmd(a *app) *cobra.Command {
	var site, format, chart string
	cmd := &cobra.Command{
		Use:   "outcome",
		Short: "Launch outcome distribution (pie chart data)",
		Example: `  launchdash query outcome
  launchdash query outcome --site "KSC LC-39A" --format text
  launchdash query outcome --chart bar --format pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []launch.DistributionOption
			switch chart {
			case engine.VisualizePie:
			case engine.VisualizeBar:
				opts = append(opts, launch.AsBar())
			default:
				return fmt.Errorf("unknown chart %q (want pie or bar)", chart)
			}
			sel := launch.SiteSelector(site)
			a.warnUnknownSite(sel)
			d := launch.OutcomeDistribution(a.table, sel, opts...)
			return writeDistribution(cmd.OutOrStdout(), d, format)
		},
	}
	cmd.Flags().StringVar(&site, "site", string(launch.AllSites), `launch site, or "ALL"`)
	cmd.Flags().StringVar(&chart, "chart", engine.VisualizePie, "chart type: pie or bar")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, pretty, yaml, text, csv")
	return cmd
}

func newPayloadCmd(a *app) *cobra.Command {
	var (
		site      string
		format    string
		low, high float64
	)
	cmd := &cobra.Command{
		Use:   "payload",
		Short: "Payload mass vs outcome (scatter chart data)",
		Long: `Selects launches whose payload mass lies in [low, high] (inclusive),
optionally restricted to one site. Unset bounds default to the table's
payload bounds. A low bound above the high bound selects nothing.`,
		Example: `  launchdash query payload --low 2000 --high 5000 --format csv
  launchdash query payload --site "VAFB SLC-4E" --format text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.payloadRange(cmd, low, high)
			sel := launch.SiteSelector(site)
			a.warnUnknownSite(sel)
			if format == "csv" {
				return writeRecordsCSV(cmd.OutOrStdout(), a.table.Select(sel, r))
			}
			s := launch.PayloadScatter(a.table, sel, r)
			var rows *engine.TableData
			if format == "text" {
				rows = launch.PayloadTable(a.table, sel, r)
			}
			return writeScatter(cmd.OutOrStdout(), s, rows, format)
		},
	}
	cmd.Flags().StringVar(&site, "site", string(launch.AllSites), `launch site, or "ALL"`)
	cmd.Flags().Float64Var(&low, "low", 0, "lowest payload mass in kg (default table minimum)")
	cmd.Flags().Float64Var(&high, "high", 0, "highest payload mass in kg (default table maximum)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, pretty, yaml, text, csv")
	return cmd
}

func newSummaryCmd(a *app) *cobra.Command {
	var (
		site, format string
		low, high    float64
		opts         launch.SummaryOptions
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate payload mass of the selected launches",
		Long: `Groups the launches "query payload" would select and aggregates their
payload mass per group.

Groupings: booster, site, outcome
Aggregations: avg, min, max, sum, count
Sorts: value_desc, value_asc, label_asc, label_desc (default first appearance)`,
		Example: `  launchdash query summary --by booster --agg max --sort value_desc --limit 3
  launchdash query summary --site "KSC LC-39A" --by outcome --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			r := a.payloadRange(cmd, low, high)
			sel := launch.SiteSelector(site)
			a.warnUnknownSite(sel)
			td, err := launch.PayloadSummary(a.table, sel, r, opts)
			if err != nil {
				return err
			}
			a.logger.Debug("payload summary",
				zap.String("by", opts.By),
				zap.String("aggregation", opts.Aggregation),
				zap.Int("groups", len(td.Rows)),
			)
			return writeTable(cmd.OutOrStdout(), td, format)
		},
	}
	cmd.Flags().StringVar(&site, "site", string(launch.AllSites), `launch site, or "ALL"`)
	cmd.Flags().Float64Var(&low, "low", 0, "lowest payload mass in kg (default table minimum)")
	cmd.Flags().Float64Var(&high, "high", 0, "highest payload mass in kg (default table maximum)")
	cmd.Flags().StringVar(&opts.By, "by", launch.ByBooster, "grouping: booster, site, outcome")
	cmd.Flags().StringVar(&opts.Aggregation, "agg", engine.AggAvg, "aggregation: avg, min, max, sum, count")
	cmd.Flags().StringVar(&opts.SortBy, "sort", "", "group order: value_desc, value_asc, label_asc, label_desc")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "keep at most this many groups (0 keeps all)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: json, pretty, yaml, text, csv")
	return cmd
}

func checkFormat(format string) error {
	switch format {
	case "json", "pretty", "yaml", "text", "csv":
		return nil
	}
	return fmt.Errorf("unknown format %q (want json, pretty, yaml, text or csv)", format)
}
