package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fitness-tracker/internal/config"
)

var (
	// ErrCorruptState is returned when stored content cannot be decoded.
	ErrCorruptState = errors.New("stored tracker state is malformed")
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Store loads and saves the whole TrackerState. A missing state is not an
// error: Load returns NewTrackerState() instead.
type Store interface {
	Load(ctx context.Context) (*TrackerState, error)
	Save(ctx context.Context, state *TrackerState) error
	Close() error
}

// Open builds the Store selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.FilePath), nil
	case config.BackendSQLite:
		db, err := New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return NewRepository(db), nil
	case config.BackendPostgres:
		return NewPostgresStore(ctx, cfg.PostgresURL, cfg.TrackerID)
	case config.BackendRedis:
		return NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

func encodeState(state *TrackerState) ([]byte, error) {
	return json.MarshalIndent(state, "", "  ")
}

func decodeState(data []byte) (*TrackerState, error) {
	state := NewTrackerState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	state.normalize()
	return state, nil
}
