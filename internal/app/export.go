// internal/app/export.go
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"peflow/config"
	"peflow/internal/store"
	"peflow/internal/writers"
)

// ExportOptions configures the flat data-point export.
type ExportOptions struct {
	Config config.Config
	Output string
}

// Export writes every recorded data point joined with its design metadata
// as one flat CSV.
func Export(ctx context.Context, log *slog.Logger, opts ExportOptions) error {
	db, err := store.Open(opts.Config.DB)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.ExportRows(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("database has no recorded data points")
	}

	err = writers.Atomic(opts.Output, func(w io.Writer) error {
		return writers.WriteExportCSV(w, rows)
	})
	if err != nil {
		return err
	}
	log.Info("export written", "data_points", len(rows), "output", opts.Output)
	return nil
}
