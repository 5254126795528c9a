// internal/app/oligos.go
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"peflow-core/design"
	"peflow-core/oligo"

	"peflow/config"
	"peflow/internal/store"
	"peflow/internal/writers"
)

// OligoOptions configures ordering sheet generation from a design CSV.
type OligoOptions struct {
	Config     config.Config
	Input      string // design CSV from the upstream design tool
	Output     string // ordering CSV destination
	Experiment string
	Prefix     string // oligo name prefix, e.g. "HEK3"
	Scaffold2  bool   // emit extensions on the alternate scaffold
}

// Oligos turns a design CSV into an ordering sheet and records the designs
// in the database: protospacer, per-entry extensions, names, and scores.
func Oligos(ctx context.Context, log *slog.Logger, opts OligoOptions) error {
	if opts.Prefix == "" {
		return fmt.Errorf("--prefix is required")
	}
	sheet, err := oligo.LoadSheet(opts.Input)
	if err != nil {
		return err
	}

	db, err := store.Open(opts.Config.DB)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	expt, err := pickExperiment(ctx, db, opts.Experiment)
	if err != nil {
		return err
	}
	if err := db.EnsureWritableTables(ctx); err != nil {
		return err
	}
	if err := db.SetEditSite(ctx, expt.ID, sheet.EditPosition, sheet.PAM, sheet.PAMStrand); err != nil {
		return err
	}
	if err := db.UpsertProtospacer(ctx, expt.ID, sheet.ProtospacerSense, sheet.ProtospacerAntisense); err != nil {
		return err
	}

	orders := []oligo.Order{{
		Name:      opts.Prefix + "_spacer",
		Sense:     sheet.ProtospacerSense,
		Antisense: sheet.ProtospacerAntisense,
	}}
	skipped := 0
	for _, row := range sheet.Rows {
		sense, anti := row.ExtensionSense, row.ExtensionAntisense
		if opts.Scaffold2 {
			if sense, err = oligo.SwapScaffold(sense); err != nil {
				return fmt.Errorf("%s P%d_R%d: %w", opts.Prefix, row.PBS, row.RTT, err)
			}
			anti = oligo.RevComp(sense)
		}

		key := design.Key{PBS: row.PBS, RTT: row.RTT}
		name := fmt.Sprintf("%s_%s", opts.Prefix, key)
		entryID, err := db.EntryID(ctx, expt.ID, key)
		if err != nil {
			log.Warn("no design entry for sheet row", "design", key.String())
			skipped++
			continue
		}
		if err := db.SetEntryNameScore(ctx, entryID, name, row.Score); err != nil {
			return err
		}
		if err := db.InsertExtension(ctx, entryID, sense, anti); err != nil {
			return err
		}
		orders = append(orders, oligo.Order{Name: name, Sense: sense, Antisense: anti})
	}

	err = writers.Atomic(opts.Output, func(w io.Writer) error {
		return writers.WriteOligoCSV(w, orders)
	})
	if err != nil {
		return err
	}
	log.Info("ordering sheet written",
		"experiment", expt.Name,
		"oligos", len(orders),
		"skipped", skipped,
		"output", opts.Output)
	return nil
}
