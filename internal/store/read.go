package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a program ID has no record.
var ErrNotFound = errors.New("program not found")

// ProgramRecord is one stored program row.
type ProgramRecord struct {
	ID        string
	Source    string
	OpCount   int
	CreatedAt string
}

// GetProgram fetches one program by its content-addressed ID.
func (s *Store) GetProgram(ctx context.Context, id string) (*ProgramRecord, error) {
	var rec ProgramRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, op_count, created_at
		FROM programs
		WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Source, &rec.OpCount, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query program: %w", err)
	}
	return &rec, nil
}

// ListPrograms returns every stored program, newest first, ties broken
// by ID for a stable order.
func (s *Store) ListPrograms(ctx context.Context) ([]ProgramRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, op_count, created_at
		FROM programs
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query programs: %w", err)
	}
	defer rows.Close()

	var recs []ProgramRecord
	for rows.Next() {
		var rec ProgramRecord
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.OpCount, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan program row: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate programs: %w", err)
	}
	return recs, nil
}

// ProgramsUsing returns the IDs of stored programs containing at least
// one instance of the given mnemonic, in ID order.
func (s *Store) ProgramsUsing(ctx context.Context, mnemonic string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT program_id
		FROM program_ops
		WHERE mnemonic = ?
		ORDER BY program_id
	`, mnemonic)
	if err != nil {
		return nil, fmt.Errorf("failed to query program ops: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan op row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ops: %w", err)
	}
	return ids, nil
}
