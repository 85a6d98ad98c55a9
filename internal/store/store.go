package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS extraction_runs (
	id           UUID PRIMARY KEY,
	session_id   TEXT NOT NULL,
	generation   BIGINT NOT NULL,
	backend      TEXT NOT NULL,
	status       TEXT NOT NULL,
	segments     INT NOT NULL DEFAULT 0,
	statements   INT NOT NULL DEFAULT 0,
	categories   JSONB NOT NULL DEFAULT '{}',
	out_of_range INT[] NOT NULL DEFAULT '{}',
	error        TEXT NOT NULL DEFAULT '',
	started_at   TIMESTAMPTZ NOT NULL,
	finished_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS extraction_runs_started_at_idx ON extraction_runs (started_at DESC);
`

// EnsureSchema creates the audit table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
