// cmd/export.go
package cmd

import (
	"github.com/spf13/cobra"

	"peflow/config"
	"peflow/internal/app"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every recorded data point as one flat CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		return app.Export(cmd.Context(), logger(), app.ExportOptions{
			Config: cfg,
			Output: exportOutput,
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "export.csv", "export CSV destination")
	rootCmd.AddCommand(exportCmd)
}
