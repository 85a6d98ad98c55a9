package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// Run is the audit record of one extraction. It holds counts and timing only,
// never transcript text or extracted content.
type Run struct {
	ID         uuid.UUID      `json:"id"`
	SessionID  string         `json:"session_id"`
	Generation uint64         `json:"generation"`
	Backend    string         `json:"backend"`
	Status     string         `json:"status"`
	Segments   int            `json:"segments"`
	Statements int            `json:"statements"`
	Categories map[string]int `json:"categories"`
	OutOfRange []int          `json:"out_of_range"`
	Error      string         `json:"error,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// RecordRun inserts one audit record.
func (s *Store) RecordRun(ctx context.Context, r Run) error {
	if r.Categories == nil {
		r.Categories = map[string]int{}
	}
	if r.OutOfRange == nil {
		r.OutOfRange = []int{}
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO extraction_runs (id, session_id, generation, backend, status, segments, statements, categories, out_of_range, error, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		r.ID, r.SessionID, int64(r.Generation), r.Backend, r.Status, r.Segments, r.Statements,
		r.Categories, r.OutOfRange, r.Error, r.StartedAt, r.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert extraction run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, generation, backend, status, segments, statements, categories, out_of_range, error, started_at, finished_at
		FROM extraction_runs
		ORDER BY started_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query extraction runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var (
			r   Run
			gen int64
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &gen, &r.Backend, &r.Status, &r.Segments, &r.Statements,
			&r.Categories, &r.OutOfRange, &r.Error, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan extraction run: %w", err)
		}
		r.Generation = uint64(gen)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate extraction runs: %w", err)
	}
	return runs, nil
}
