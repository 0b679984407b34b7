package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository is the sqlite-backed Store. Save replaces every row inside one
// transaction so the tables always mirror a single TrackerState.
type Repository struct {
	Db *Database
}

func NewRepository(db *Database) *Repository {
	return &Repository{Db: db}
}

func (r *Repository) Load(ctx context.Context) (*TrackerState, error) {
	state := NewTrackerState()

	err := r.Db.db.QueryRowContext(ctx,
		"SELECT steps, calories_burned FROM counters WHERE id = 1",
	).Scan(&state.Steps, &state.CaloriesBurned)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("load counters: %w", err)
	}

	sessions, err := r.Db.db.QueryContext(ctx, `
		SELECT id, name, duration_minutes, calories_burned, timestamp
		FROM exercise_sessions
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	defer sessions.Close()
	for sessions.Next() {
		var s ExerciseSession
		if err := sessions.Scan(&s.ID, &s.Name, &s.DurationMinutes, &s.CaloriesBurned, &s.Timestamp); err != nil {
			return nil, err
		}
		state.ExerciseSessions = append(state.ExerciseSessions, s)
	}
	if err := sessions.Err(); err != nil {
		return nil, err
	}

	weights, err := r.Db.db.QueryContext(ctx, "SELECT weight_kg, date FROM weight_records ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("load weight records: %w", err)
	}
	defer weights.Close()
	for weights.Next() {
		var w WeightRecord
		if err := weights.Scan(&w.WeightKg, &w.Date); err != nil {
			return nil, err
		}
		state.WeightRecords = append(state.WeightRecords, w)
	}
	if err := weights.Err(); err != nil {
		return nil, err
	}

	sleeps, err := r.Db.db.QueryContext(ctx, "SELECT hours_slept, date FROM sleep_records ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("load sleep records: %w", err)
	}
	defer sleeps.Close()
	for sleeps.Next() {
		var s SleepRecord
		if err := sleeps.Scan(&s.HoursSlept, &s.Date); err != nil {
			return nil, err
		}
		state.SleepRecords = append(state.SleepRecords, s)
	}
	if err := sleeps.Err(); err != nil {
		return nil, err
	}

	goals, err := r.Db.db.QueryContext(ctx, "SELECT name, target_value, current_value FROM goals")
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}
	defer goals.Close()
	for goals.Next() {
		var name string
		var g Goal
		if err := goals.Scan(&name, &g.TargetValue, &g.CurrentValue); err != nil {
			return nil, err
		}
		state.Goals[name] = g
	}
	if err := goals.Err(); err != nil {
		return nil, err
	}

	return state, nil
}

func (r *Repository) Save(ctx context.Context, state *TrackerState) error {
	tx, err := r.Db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"exercise_sessions", "weight_records", "sleep_records", "goals"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO counters (id, steps, calories_burned)
		VALUES (1, ?, ?)
	`, state.Steps, state.CaloriesBurned); err != nil {
		return fmt.Errorf("save counters: %w", err)
	}

	for _, s := range state.ExerciseSessions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO exercise_sessions (id, name, duration_minutes, calories_burned, timestamp)
			VALUES (?, ?, ?, ?, ?)
		`, s.ID, s.Name, s.DurationMinutes, s.CaloriesBurned, s.Timestamp); err != nil {
			return fmt.Errorf("save session %s: %w", s.ID, err)
		}
	}

	for _, w := range state.WeightRecords {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO weight_records (weight_kg, date) VALUES (?, ?)", w.WeightKg, w.Date,
		); err != nil {
			return fmt.Errorf("save weight record: %w", err)
		}
	}

	for _, s := range state.SleepRecords {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO sleep_records (hours_slept, date) VALUES (?, ?)", s.HoursSlept, s.Date,
		); err != nil {
			return fmt.Errorf("save sleep record: %w", err)
		}
	}

	for name, g := range state.Goals {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO goals (name, target_value, current_value) VALUES (?, ?, ?)",
			name, g.TargetValue, g.CurrentValue,
		); err != nil {
			return fmt.Errorf("save goal %q: %w", name, err)
		}
	}

	return tx.Commit()
}

func (r *Repository) Close() error {
	return r.Db.Close()
}
