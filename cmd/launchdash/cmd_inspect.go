package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/schema"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		format     string
		sampleSize int
		maxSamples int
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Profile the columns of the launch CSV",
		Long: `Prints, per column of the configured CSV: inferred role, distinct and
null counts, numeric bounds and a few sample values. Works on files the
dashboard itself would reject.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipLoad: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(a.cfg.Data)
			if err != nil {
				return fmt.Errorf("failed to read dataset: %w", err)
			}
			profile, err := schema.ProfileCSV(data, schema.ProfileOptions{
				SampleSize: sampleSize,
				MaxSamples: maxSamples,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ok, err := writeStructured(out, profile, format); ok {
				return err
			}
			if format != "text" {
				return fmt.Errorf("unknown format %q (want json, pretty, yaml or text)", format)
			}
			return writeProfileTable(out, profile)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: json, pretty, yaml, text")
	cmd.Flags().IntVar(&sampleSize, "sample", 0, "rows to inspect (0 = all)")
	cmd.Flags().IntVar(&maxSamples, "samples", schema.DefaultProfileOptions().MaxSamples, "sample values shown per column")
	return cmd
}

func writeProfileTable(w io.Writer, p *schema.Profile) error {
	td := &engine.TableData{
		Columns: []engine.Column{
			{Label: "Column"}, {Label: "Key"}, {Label: "Role"}, {Label: "Distinct"},
			{Label: "Nulls"}, {Label: "Min"}, {Label: "Max"}, {Label: "Samples"},
		},
	}
	for _, c := range p.Columns {
		lo, hi := "", ""
		if c.Min != nil {
			lo, hi = engine.FormatNumber(*c.Min), engine.FormatNumber(*c.Max)
		}
		td.Rows = append(td.Rows, []string{
			c.Header,
			c.Key,
			string(c.Role),
			fmt.Sprintf("%d (%s)", c.Distinct, c.CardinalityHint),
			fmt.Sprintf("%d", c.Nulls),
			lo, hi,
			strings.Join(c.Samples, ", "),
		})
	}
	_, err := fmt.Fprintf(w, "%d rows\n%s\n", p.Rows, renderTable(td))
	return err
}
