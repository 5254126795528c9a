// internal/app/quant.go
// Package app wires the core pipeline to files, the design database, and the
// log. One Run function per subcommand; fatal errors bubble up, per-record
// problems land in the run report and are logged.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"peflow-core/aggregate"
	"peflow-core/quant"
	"peflow-core/report"
	"peflow-core/resolve"

	"peflow/config"
	"peflow/internal/store"
	"peflow/internal/writers"
)

// QuantOptions configures one aggregation run.
type QuantOptions struct {
	Config     config.Config
	Input      string // quantifier batch TSV
	Output     string // summary TSV destination
	Experiment string // experiment name; optional when the database has one
	NoHeader   bool

	// Write pooled per-sample data points back into the database.
	Record  bool
	RunName string
}

// Quant runs the aggregation pipeline: load, resolve, aggregate, emit.
// The output file appears atomically or not at all.
func Quant(ctx context.Context, log *slog.Logger, opts QuantOptions) error {
	if opts.Record && opts.RunName == "" {
		return fmt.Errorf("--record requires --run-name")
	}
	convs, err := config.LoadConventions(opts.Config.Conventions)
	if err != nil {
		return err
	}
	table, err := config.LoadCategories(opts.Config.Categories)
	if err != nil {
		return err
	}

	db, err := store.Open(opts.Config.DB)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	// The experiment lookup and the quantification table load independently.
	var (
		expt    store.Experiment
		records []quant.Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expt, err = pickExperiment(gctx, db, opts.Experiment)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = quant.Load(opts.Input)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	dset, err := db.Designs(ctx, expt.ID)
	if err != nil {
		return err
	}

	var rep report.Report
	resolved := resolve.NewResolver(dset, convs).Resolve(records, &rep)
	summaries := aggregate.New(table).Aggregate(dset, resolved, &rep)

	err = writers.Atomic(opts.Output, func(w io.Writer) error {
		return writers.WriteSummaryTSV(w, summaries, opts.Config.Precision, !opts.NoHeader)
	})
	if err != nil {
		return err
	}

	logReport(log, &rep)
	log.Info("summary written",
		"experiment", expt.Name,
		"designs", len(dset),
		"samples", len(records),
		"rows", len(summaries),
		"output", opts.Output)

	if opts.Record {
		return recordDataPoints(ctx, log, db, expt.ID, opts.RunName, resolved)
	}
	return nil
}

// The quantifier's raw labels backing the recorded per-sample metrics.
const (
	labelCorrect   = "Prime-edited:Unmodified"
	labelIncorrect = "Prime-edited:Modified"
	labelScaffold  = "Scaffold-incorporated:Modified"
)

// sampleMetrics computes the recorded percentages for one sample.
func sampleMetrics(q quant.Record) (correct, incorrect, scaffold float64, ok bool) {
	if q.Total == 0 {
		return 0, 0, 0, false
	}
	pct := func(label string) float64 {
		for _, c := range q.Counts {
			if c.Label == label {
				return float64(c.Reads) / float64(q.Total) * 100
			}
		}
		return 0
	}
	return pct(labelCorrect), pct(labelIncorrect), pct(labelScaffold), true
}

func recordDataPoints(ctx context.Context, log *slog.Logger, db *store.Store, experimentID, runName string, resolved []resolve.Resolved) error {
	if err := db.EnsureWritableTables(ctx); err != nil {
		return err
	}
	runID, err := db.InsertRun(ctx, runName, experimentID)
	if err != nil {
		return err
	}

	added := 0
	for _, r := range resolved {
		if r.Status != resolve.StatusResolved {
			continue
		}
		correct, incorrect, scaffold, ok := sampleMetrics(r.Quant)
		if !ok {
			log.Warn("skipping zero-read sample", "sample", r.Quant.Sample)
			continue
		}
		drugID, err := db.DrugID(ctx, r.Meta.Drug)
		if err != nil {
			return err
		}
		err = db.InsertDataPoint(ctx, store.DataPoint{
			EntryID:   r.Design.EntryID,
			Correct:   correct,
			Incorrect: incorrect,
			Scaffold:  scaffold,
			Editor:    r.Meta.Editor,
			Replicate: r.Meta.Replicate,
			RunID:     runID,
			DrugID:    drugID,
		})
		if err != nil {
			return err
		}
		added++
	}
	log.Info("run recorded", "run", runName, "data_points", added)
	return nil
}
