// internal/app/runsheet.go
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"peflow-core/design"
	"peflow-core/report"
	"peflow-core/runsheet"

	"peflow/config"
	"peflow/internal/store"
	"peflow/internal/writers"
)

// RunsheetOptions configures batch settings file generation.
type RunsheetOptions struct {
	Config     config.Config
	Samples    string // sample sheet TSV: name, fastq_r1, fastq_r2
	Output     string
	Experiment string
	Amplicon   string // file holding the amplicon sequence
	Scaffold   string // file holding the scaffold sequence
}

// Runsheet joins a sequencing sample sheet against the experiment's design
// entries and writes the quantifier batch settings file.
func Runsheet(ctx context.Context, log *slog.Logger, opts RunsheetOptions) error {
	amplicon, err := readSequenceFile(opts.Amplicon)
	if err != nil {
		return err
	}
	scaffold, err := readSequenceFile(opts.Scaffold)
	if err != nil {
		return err
	}
	samples, err := runsheet.LoadSamples(opts.Samples)
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
	spacer, _, err := db.Protospacer(ctx, expt.ID)
	if err != nil {
		return err
	}
	extensions, err := db.Extensions(ctx, expt.ID)
	if err != nil {
		return err
	}
	find := func(k design.Key) (string, bool) {
		ext, ok := extensions[k]
		return ext, ok
	}

	var rep report.Report
	rows := runsheet.Build(samples, find, amplicon, scaffold, spacer, &rep)
	logReport(log, &rep)
	if len(rows) == 0 {
		return fmt.Errorf("no samples matched a design entry")
	}

	err = writers.Atomic(opts.Output, func(w io.Writer) error {
		return writers.WriteRunsheetTSV(w, rows)
	})
	if err != nil {
		return err
	}
	log.Info("runsheet written",
		"experiment", expt.Name,
		"samples", len(samples),
		"rows", len(rows),
		"output", opts.Output)
	return nil
}

// readSequenceFile reads a single bare sequence from a text file.
func readSequenceFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	seq := strings.TrimSpace(string(b))
	if seq == "" {
		return "", fmt.Errorf("%s: empty sequence file", path)
	}
	return seq, nil
}
