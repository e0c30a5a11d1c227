package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/spektr-org/launchdash/dashboard"
	"github.com/spektr-org/launchdash/ui"
)

func newTUICmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := dashboard.New(a.table,
				dashboard.WithLogger(a.logger),
				dashboard.WithSliderStep(a.cfg.Slider.Step),
			)
			p := tea.NewProgram(ui.New(d),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			_, err := p.Run()
			return err
		},
	}
	cmd.Flags().Float64("slider-step", 0, "payload slider step in kg (default 1000)")
	return cmd
}
