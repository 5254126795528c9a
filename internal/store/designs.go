// internal/store/designs.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"peflow-core/design"
)

// Experiment is one row of the experiments table.
type Experiment struct {
	ID         string
	Name       string
	Variant    string
	Chromosome string
	Location   string
	Edit       string
	Date       string
}

// Experiments lists all experiments, newest first.
func (s *Store) Experiments(ctx context.Context) ([]Experiment, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, name,
		       COALESCE(variant, ''), COALESCE(chromosome, ''),
		       COALESCE(genomic_location, ''), COALESCE(edit, ''), COALESCE(date, '')
		FROM experiments
		ORDER BY date DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("experiments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Experiment
	for rows.Next() {
		var e Experiment
		if err := rows.Scan(&e.ID, &e.Name, &e.Variant, &e.Chromosome, &e.Location, &e.Edit, &e.Date); err != nil {
			return nil, fmt.Errorf("experiments: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ExperimentByName finds one experiment by its name.
func (s *Store) ExperimentByName(ctx context.Context, name string) (Experiment, error) {
	var e Experiment
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, name,
		       COALESCE(variant, ''), COALESCE(chromosome, ''),
		       COALESCE(genomic_location, ''), COALESCE(edit, ''), COALESCE(date, '')
		FROM experiments WHERE name = ?`, name).
		Scan(&e.ID, &e.Name, &e.Variant, &e.Chromosome, &e.Location, &e.Edit, &e.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return Experiment{}, fmt.Errorf("experiment %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Experiment{}, fmt.Errorf("experiment %q: %w", name, err)
	}
	return e, nil
}

// Designs loads all design records of one experiment. An unnamed entry gets
// the synthesized P<pbs>_R<rtt> identifier.
func (s *Store) Designs(ctx context.Context, experimentID string) ([]design.Record, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT ee.id, COALESCE(ee.name, ''), ee.pbs, ee.rtt, COALESCE(ee.score, ''),
		       e.name, COALESCE(e.variant, ''), COALESCE(e.chromosome, ''),
		       COALESCE(e.genomic_location, ''), COALESCE(e.edit, '')
		FROM experiment_entries ee
		JOIN experiments e ON ee.experiment_id = e.id
		WHERE ee.experiment_id = ?`, experimentID)
	if err != nil {
		return nil, fmt.Errorf("designs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []design.Record
	for rows.Next() {
		var (
			r          design.Record
			chromosome string
			location   string
		)
		if err := rows.Scan(&r.EntryID, &r.ID, &r.PBS, &r.RTT, &r.Score,
			&r.Experiment, &r.Variant, &chromosome, &location, &r.Edit); err != nil {
			return nil, fmt.Errorf("designs: %w", err)
		}
		if r.ID == "" {
			r.ID = r.Key().String()
		}
		if chromosome != "" || location != "" {
			r.Locus = chromosome + ":" + location
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("designs: %w", err)
	}
	design.Sort(out)
	return out, nil
}

// Protospacer returns the experiment's protospacer pair.
func (s *Store) Protospacer(ctx context.Context, experimentID string) (sense, antisense string, err error) {
	err = s.DB.QueryRowContext(ctx,
		`SELECT sense, antisense FROM protospacers WHERE experiment_id = ?`, experimentID).
		Scan(&sense, &antisense)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", fmt.Errorf("protospacer: %w", ErrNotFound)
	}
	if err != nil {
		return "", "", fmt.Errorf("protospacer: %w", err)
	}
	return sense, antisense, nil
}

// Extensions returns the extension sense sequence per design key for one
// experiment.
func (s *Store) Extensions(ctx context.Context, experimentID string) (map[design.Key]string, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT ee.pbs, ee.rtt, x.sense
		FROM extensions x
		JOIN experiment_entries ee ON x.experiment_entry_id = ee.id
		WHERE ee.experiment_id = ?`, experimentID)
	if err != nil {
		return nil, fmt.Errorf("extensions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := map[design.Key]string{}
	for rows.Next() {
		var (
			k     design.Key
			sense string
		)
		if err := rows.Scan(&k.PBS, &k.RTT, &sense); err != nil {
			return nil, fmt.Errorf("extensions: %w", err)
		}
		out[k] = sense
	}
	return out, rows.Err()
}

// EntryID finds the entry primary key for a design key within an experiment.
func (s *Store) EntryID(ctx context.Context, experimentID string, key design.Key) (string, error) {
	var id string
	err := s.DB.QueryRowContext(ctx,
		`SELECT id FROM experiment_entries WHERE experiment_id = ? AND pbs = ? AND rtt = ?`,
		experimentID, key.PBS, key.RTT).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("entry %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("entry %s: %w", key, err)
	}
	return id, nil
}
