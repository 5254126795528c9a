// cmd/quant.go
package cmd

import (
	"github.com/spf13/cobra"

	"peflow/config"
	"peflow/internal/app"
)

var quantOpts struct {
	input      string
	output     string
	experiment string
	noHeader   bool
	record     bool
	runName    string
}

var quantCmd = &cobra.Command{
	Use:   "quant",
	Short: "Aggregate quantifier batch output into per-design summaries",
	Long: `quant joins the quantifier's per-amplicon editing-outcome counts
against the experiment's design entries, pools replicates, and writes one
summary row per design. Samples that cannot be matched to a design are kept
as their own rows rather than dropped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		return app.Quant(cmd.Context(), logger(), app.QuantOptions{
			Config:     cfg,
			Input:      quantOpts.input,
			Output:     quantOpts.output,
			Experiment: quantOpts.experiment,
			NoHeader:   quantOpts.noHeader,
			Record:     quantOpts.record,
			RunName:    quantOpts.runName,
		})
	},
}

func init() {
	f := quantCmd.Flags()
	f.StringVarP(&quantOpts.input, "input", "i", "", "quantifier batch quantification TSV")
	f.StringVarP(&quantOpts.output, "output", "o", "summary.tsv", "summary TSV destination")
	f.StringVarP(&quantOpts.experiment, "experiment", "e", "", "experiment name (optional when the database has one)")
	f.BoolVar(&quantOpts.noHeader, "no-header", false, "omit the header row")
	f.BoolVar(&quantOpts.record, "record", false, "record pooled per-sample data points in the database")
	f.StringVar(&quantOpts.runName, "run-name", "", "sequencing run name (required with --record)")
	cobra.CheckErr(quantCmd.MarkFlagRequired("input"))
	rootCmd.AddCommand(quantCmd)
}
