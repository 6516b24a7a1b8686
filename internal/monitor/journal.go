package monitor

import (
	"context"
	"fmt"

	"risk-core/pkg/db"
)

// Journal is an insert-only audit trail of breach alerts. It is never read
// back into core state; restarts begin with a clean slate.
type Journal struct {
	db *db.Database
}

// NewJournal wraps an open database.
func NewJournal(database *db.Database) *Journal {
	return &Journal{db: database}
}

// Record appends one alert row.
func (j *Journal) Record(ctx context.Context, message string) error {
	_, err := j.db.DB.ExecContext(ctx,
		`INSERT INTO alerts (message) VALUES (?)`, message)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// Count returns the number of journaled alerts.
func (j *Journal) Count(ctx context.Context) (int, error) {
	var n int
	err := j.db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM alerts`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count alerts: %w", err)
	}
	return n, nil
}
