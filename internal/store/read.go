package store

import (
	"context"
	"fmt"
)

// ReadHistory returns up to limit records, newest first (by enqueue
// timestamp, then id for a stable order). limit <= 0 returns everything.
func (s *Store) ReadHistory(ctx context.Context, limit int) ([]Reconfiguration, error) {
	query := `
		SELECT id, target, configuration, priority, timestamp, status, detail
		FROM reconfigurations
		ORDER BY timestamp DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer rows.Close()

	var out []Reconfiguration
	for rows.Next() {
		var rec Reconfiguration
		if err := rows.Scan(&rec.ID, &rec.Target, &rec.Configuration,
			&rec.Priority, &rec.Timestamp, &rec.Status, &rec.Detail); err != nil {
			return nil, fmt.Errorf("read history: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return out, nil
}

// CountByStatus returns the number of records per status.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM reconfigurations GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("count by status: %w", err)
		}
		out[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	return out, nil
}
