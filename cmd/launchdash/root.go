package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spektr-org/launchdash/helpers"
	"github.com/spektr-org/launchdash/internal/config"
	"github.com/spektr-org/launchdash/internal/logging"
	"github.com/spektr-org/launchdash/launch"
)

// skipLoad marks commands that run without the launch table.
const skipLoad = "launchdash/skip-load"

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"data":        "data",
	"listen":      "listen",
	"log.level":   "log-level",
	"log.format":  "log-format",
	"slider.step": "slider-step",
}

// app carries what every command needs once PersistentPreRunE has run.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	logger  *zap.Logger
	logOpts []zap.Option
	table   *launch.Table
}

// newRootCmd builds the command tree. logOpts are applied to the logger
// setup builds.
func newRootCmd(logOpts ...zap.Option) *cobra.Command {
	a := &app{logger: zap.NewNop(), logOpts: logOpts}

	root := &cobra.Command{
		Use:   "launchdash",
		Short: "SpaceX launch records dashboard",
		Long: `launchdash loads a table of historical SpaceX launches and derives two
linked charts from it: launch outcomes per site (pie) and payload mass
versus outcome coloured by booster category (scatter).

Run "launchdash tui" for the terminal dashboard or "launchdash serve" for
the web dashboard.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./launchdash.yaml if present)")
	flags.String("data", "", "launch CSV path (default spacex_launch_dash.csv)")
	flags.String("log-level", "", "log level: debug, info, warn, error (default info)")
	flags.String("log-format", "", "log format: json or console (default console)")

	root.AddCommand(
		newServeCmd(a),
		newTUICmd(a),
		newQueryCmd(a),
		newInspectCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup resolves configuration, builds the logger and loads the table.
// A table that fails to load aborts the command.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	v, err := config.New(a.cfgFile)
	if err != nil {
		return err
	}
	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.v, a.cfg = v, cfg

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.logger = logger.WithOptions(a.logOpts...)
	a.logger.Debug("config resolved",
		zap.String("file", v.ConfigFileUsed()),
		zap.String("data", cfg.Data),
	)

	if cmd.Annotations[skipLoad] == "true" {
		return nil
	}

	table, err := helpers.LoadCSV(cfg.Data)
	if err != nil {
		a.logger.Error("failed to load launch data", zap.String("path", cfg.Data), zap.Error(err))
		return err
	}
	lo, hi := table.PayloadBounds()
	a.logger.Info("launch data loaded",
		zap.String("path", cfg.Data),
		zap.Int("records", table.Len()),
		zap.Int("sites", len(table.Sites())),
		zap.Float64("payload_min", lo),
		zap.Float64("payload_max", hi),
	)
	a.table = table
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print version and exit",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "launchdash %s\n", version)
		},
	}
}
