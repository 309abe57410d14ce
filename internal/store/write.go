package store

import (
	"context"
	"fmt"

	"github.com/tensorhost/dialect/internal/ir"
)

// RecordProgram persists a validated program and its per-operation
// index. The program's content-addressed ID is the primary key, so
// recording the same program twice is a no-op; the ID is returned
// either way.
//
// The write is transactional: the program row and its op rows land
// together or not at all.
func (s *Store) RecordProgram(ctx context.Context, prog *ir.Program, source string) (string, error) {
	id, err := ir.ProgramID(prog)
	if err != nil {
		return "", fmt.Errorf("failed to compute program ID: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO programs (id, source, op_count)
		VALUES (?, ?, ?)
	`, id, source, len(prog.Ops))
	if err != nil {
		return "", fmt.Errorf("failed to insert program: %w", err)
	}

	// Rows affected is 0 when the program was already recorded; the
	// op index is keyed by the same ID and is already present too.
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		for i, op := range prog.Ops {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO program_ops (program_id, idx, mnemonic)
				VALUES (?, ?, ?)
			`, id, i, op.Mnemonic); err != nil {
				return "", fmt.Errorf("failed to insert op %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return id, nil
}
