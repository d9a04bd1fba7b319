package db

import (
	"context"
	"fmt"
)

// SaveMatchLog appends an audit record under a timestamp-derived name.
// Rows are only ever inserted; nothing updates or deletes them.
func (s *Store) SaveMatchLog(ctx context.Context, name, content string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO match_logs (name, content) VALUES ($1, $2)`,
		name, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save match log %s: %w", name, err)
	}
	return nil
}
