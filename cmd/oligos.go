// cmd/oligos.go
package cmd

import (
	"github.com/spf13/cobra"

	"peflow/config"
	"peflow/internal/app"
)

var oligoOpts struct {
	input      string
	output     string
	experiment string
	prefix     string
	scaffold2  bool
}

var oligosCmd = &cobra.Command{
	Use:   "oligos",
	Short: "Turn a design CSV into an oligo ordering sheet",
	Long: `oligos reads the design tool's CSV export, records the protospacer
and per-entry extension sequences in the database, names and scores the
matching design entries, and writes a vendor-ready ordering sheet with one
sense/antisense pair per oligo.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		return app.Oligos(cmd.Context(), logger(), app.OligoOptions{
			Config:     cfg,
			Input:      oligoOpts.input,
			Output:     oligoOpts.output,
			Experiment: oligoOpts.experiment,
			Prefix:     oligoOpts.prefix,
			Scaffold2:  oligoOpts.scaffold2,
		})
	},
}

func init() {
	f := oligosCmd.Flags()
	f.StringVarP(&oligoOpts.input, "input", "i", "", "design CSV from the design tool")
	f.StringVarP(&oligoOpts.output, "output", "o", "order.csv", "ordering sheet CSV destination")
	f.StringVarP(&oligoOpts.experiment, "experiment", "e", "", "experiment name (optional when the database has one)")
	f.StringVarP(&oligoOpts.prefix, "prefix", "p", "", "oligo name prefix, e.g. the locus name")
	f.BoolVar(&oligoOpts.scaffold2, "scaffold2", false, "emit extensions on the alternate sgRNA scaffold")
	cobra.CheckErr(oligosCmd.MarkFlagRequired("input"))
	cobra.CheckErr(oligosCmd.MarkFlagRequired("prefix"))
	rootCmd.AddCommand(oligosCmd)
}
