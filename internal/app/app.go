// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"

	"peflow-core/report"

	"peflow/internal/store"
)

// pickExperiment resolves the experiment a run operates on. An explicit name
// wins; otherwise the database must hold exactly one experiment.
func pickExperiment(ctx context.Context, db *store.Store, name string) (store.Experiment, error) {
	if name != "" {
		return db.ExperimentByName(ctx, name)
	}
	expts, err := db.Experiments(ctx)
	if err != nil {
		return store.Experiment{}, err
	}
	switch len(expts) {
	case 0:
		return store.Experiment{}, fmt.Errorf("database has no experiments")
	case 1:
		return expts[0], nil
	default:
		return store.Experiment{}, fmt.Errorf("database has %d experiments; pick one with --experiment", len(expts))
	}
}

func logReport(log *slog.Logger, rep *report.Report) {
	for _, line := range rep.Lines() {
		log.Warn(line)
	}
}
