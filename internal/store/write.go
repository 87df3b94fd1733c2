package store

import (
	"context"
	"fmt"
)

// Reconfiguration is one finished history record.
// Configuration is the request's parameter mapping serialized to JSON.
type Reconfiguration struct {
	ID            string  `json:"id"`
	Target        string  `json:"target"`
	Configuration string  `json:"configuration"`
	Priority      int     `json:"priority"`
	Timestamp     float64 `json:"timestamp"`
	Status        string  `json:"status"` // "completed" or "failed"
	Detail        string  `json:"detail"`
}

// WriteReconfiguration appends a history record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are
// silently ignored.
func (s *Store) WriteReconfiguration(ctx context.Context, rec Reconfiguration) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reconfigurations
		(id, target, configuration, priority, timestamp, status, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.Target,
		rec.Configuration,
		rec.Priority,
		rec.Timestamp,
		rec.Status,
		rec.Detail,
	)
	if err != nil {
		return fmt.Errorf("write reconfiguration: %w", err)
	}
	return nil
}
