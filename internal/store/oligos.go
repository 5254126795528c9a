// internal/store/oligos.go
package store

import (
	"context"
	"fmt"
)

// UpsertProtospacer stores the experiment's protospacer pair, replacing any
// previous one.
func (s *Store) UpsertProtospacer(ctx context.Context, experimentID, sense, antisense string) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO protospacers (experiment_id, sense, antisense)
		VALUES (?, ?, ?)
		ON CONFLICT(experiment_id) DO UPDATE SET sense = excluded.sense, antisense = excluded.antisense`,
		experimentID, sense, antisense)
	if err != nil {
		return fmt.Errorf("upsert protospacer: %w", err)
	}
	return nil
}

// InsertExtension stores one entry's extension pair.
func (s *Store) InsertExtension(ctx context.Context, entryID, sense, antisense string) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO extensions (experiment_entry_id, sense, antisense) VALUES (?, ?, ?)`,
		entryID, sense, antisense)
	if err != nil {
		return fmt.Errorf("insert extension: %w", err)
	}
	return nil
}

// SetEntryNameScore fills in an entry's oligo-sheet name and design score.
func (s *Store) SetEntryNameScore(ctx context.Context, entryID, name, score string) error {
	_, err := s.DB.ExecContext(ctx,
		`UPDATE experiment_entries SET name = ?, score = ? WHERE id = ?`, name, score, entryID)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}

// SetEditSite fills in the experiment's edit-site annotation from the design
// sheet.
func (s *Store) SetEditSite(ctx context.Context, experimentID, editPosition, pam, pamStrand string) error {
	_, err := s.DB.ExecContext(ctx,
		`UPDATE experiments SET edit_position = ?, pam = ?, pam_strand = ? WHERE id = ?`,
		editPosition, pam, pamStrand, experimentID)
	if err != nil {
		return fmt.Errorf("update experiment: %w", err)
	}
	return nil
}
