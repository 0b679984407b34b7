package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS tracker_state (
    id TEXT PRIMARY KEY,
    state JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresStore keeps one JSONB document per tracker id.
type PostgresStore struct {
	pool *pgxpool.Pool
	id   string
}

func NewPostgresStore(ctx context.Context, url, trackerID string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create tracker_state: %w", err)
	}

	log.Printf("✅ Postgres store ready: tracker=%s", trackerID)
	return &PostgresStore{pool: pool, id: trackerID}, nil
}

func (s *PostgresStore) Load(ctx context.Context) (*TrackerState, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, "SELECT state FROM tracker_state WHERE id = $1", s.id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return NewTrackerState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load tracker %s: %w", s.id, err)
	}
	return decodeState(data)
}

func (s *PostgresStore) Save(ctx context.Context, state *TrackerState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO tracker_state (id, state, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET state = EXCLUDED.state, updated_at = NOW()
	`, s.id, string(data))
	if err != nil {
		return fmt.Errorf("save tracker %s: %w", s.id, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
