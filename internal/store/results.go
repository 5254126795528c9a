// internal/store/results.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// NoneDrugID is the fixed id of the default "no drug" row.
const NoneDrugID = "00000000-0000-0000-0000-000000000000"

// DataPoint is one recorded per-sample measurement.
type DataPoint struct {
	EntryID   string
	Correct   float64 // percent of total reads carrying the intended edit
	Incorrect float64
	Scaffold  float64
	Editor    string
	Replicate int
	RunID     string
	DrugID    string
}

// InsertRun records a new quantification run and returns its id.
func (s *Store) InsertRun(ctx context.Context, runName, experimentID string) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO runs (id, run_name, experiment_id) VALUES (?, ?, ?)`,
		id, runName, experimentID)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// DrugID resolves a drug code to a drugs row, creating the row on first
// sight. An empty code is the default "None" drug.
func (s *Store) DrugID(ctx context.Context, code string) (string, error) {
	if code == "" {
		return NoneDrugID, nil
	}
	var id string
	err := s.DB.QueryRowContext(ctx, `SELECT id FROM drugs WHERE name = ?`, code).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("drug %q: %w", code, err)
	}
	id = uuid.NewString()
	if _, err := s.DB.ExecContext(ctx,
		`INSERT INTO drugs (id, name, description) VALUES (?, ?, '')`, id, code); err != nil {
		return "", fmt.Errorf("drug %q: %w", code, err)
	}
	return id, nil
}

// InsertDataPoint records one per-sample measurement.
func (s *Store) InsertDataPoint(ctx context.Context, dp DataPoint) error {
	drug := dp.DrugID
	if drug == "" {
		drug = NoneDrugID
	}
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO data_points
			(id, experiment_entry_id, correct_edits, incorrect_edits,
			 scaffold_incorporated, prime_editor, replicate, run_id, drug_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), dp.EntryID, dp.Correct, dp.Incorrect,
		dp.Scaffold, dp.Editor, dp.Replicate, dp.RunID, drug)
	if err != nil {
		return fmt.Errorf("insert data point: %w", err)
	}
	return nil
}

// ExportRow is one line of the flat data-point export.
type ExportRow struct {
	Experiment string
	Run        string
	Editor     string
	PBS        int
	RTT        int
	Replicate  int
	Correct    float64
	Incorrect  float64
	Scaffold   float64
}

// ExportRows joins every recorded data point with its design and run,
// ordered for a stable export.
func (s *Store) ExportRows(ctx context.Context) ([]ExportRow, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT e.name, r.run_name, d.prime_editor, ee.pbs, ee.rtt, d.replicate,
		       d.correct_edits, d.incorrect_edits, d.scaffold_incorporated
		FROM data_points d
		JOIN experiment_entries ee ON d.experiment_entry_id = ee.id
		JOIN experiments e ON ee.experiment_id = e.id
		JOIN runs r ON d.run_id = r.id
		ORDER BY e.name, r.run_name, d.prime_editor, ee.pbs, ee.rtt, d.replicate`)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []ExportRow
	for rows.Next() {
		var x ExportRow
		if err := rows.Scan(&x.Experiment, &x.Run, &x.Editor, &x.PBS, &x.RTT,
			&x.Replicate, &x.Correct, &x.Incorrect, &x.Scaffold); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		out = append(out, x)
	}
	return out, rows.Err()
}
