// cmd/runsheet.go
package cmd

import (
	"github.com/spf13/cobra"

	"peflow/config"
	"peflow/internal/app"
)

var runsheetOpts struct {
	samples    string
	output     string
	experiment string
	amplicon   string
	scaffold   string
}

var runsheetCmd = &cobra.Command{
	Use:   "runsheet",
	Short: "Generate the quantifier batch settings file for a sequencing run",
	Long: `runsheet joins a sequencing sample sheet (name, fastq_r1, fastq_r2)
against the experiment's design entries and writes the batch settings file
the quantifier consumes: per sample, the pegRNA extension plus the shared
amplicon, scaffold, and spacer sequences.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		return app.Runsheet(cmd.Context(), logger(), app.RunsheetOptions{
			Config:     cfg,
			Samples:    runsheetOpts.samples,
			Output:     runsheetOpts.output,
			Experiment: runsheetOpts.experiment,
			Amplicon:   runsheetOpts.amplicon,
			Scaffold:   runsheetOpts.scaffold,
		})
	},
}

func init() {
	f := runsheetCmd.Flags()
	f.StringVarP(&runsheetOpts.samples, "samples", "s", "", "sample sheet TSV (name, fastq_r1, fastq_r2)")
	f.StringVarP(&runsheetOpts.output, "output", "o", "batch.tsv", "batch settings TSV destination")
	f.StringVarP(&runsheetOpts.experiment, "experiment", "e", "", "experiment name (optional when the database has one)")
	f.StringVar(&runsheetOpts.amplicon, "amplicon", "", "file holding the amplicon sequence")
	f.StringVar(&runsheetOpts.scaffold, "scaffold", "", "file holding the sgRNA scaffold sequence")
	cobra.CheckErr(runsheetCmd.MarkFlagRequired("samples"))
	cobra.CheckErr(runsheetCmd.MarkFlagRequired("amplicon"))
	cobra.CheckErr(runsheetCmd.MarkFlagRequired("scaffold"))
	rootCmd.AddCommand(runsheetCmd)
}
