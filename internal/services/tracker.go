package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"
	"sync"

	"fitness-tracker/internal/database"
	"fitness-tracker/internal/utils"

	"github.com/google/uuid"
)

var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrNegativeValue = errors.New("value cannot be negative")
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrOverflow      = errors.New("counter would overflow")
)

// AchievementFunc is called after a goal update leaves the goal at or above
// its target.
type AchievementFunc func(name string, goal database.Goal)

// TrackerService owns the in-memory TrackerState. Every mutation is persisted
// through the Store before it becomes visible; a failed save leaves the
// previous state in place.
type TrackerService struct {
	mu            sync.Mutex
	store         database.Store
	state         *database.TrackerState
	clock         utils.Clock
	out           io.Writer
	onAchievement AchievementFunc
}

func NewTrackerService(ctx context.Context, store database.Store, clock utils.Clock) (*TrackerService, error) {
	state, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tracker state: %w", err)
	}
	if clock == nil {
		clock = utils.ClockIn(nil)
	}

	log.Printf("✅ Tracker loaded: steps=%d, sessions=%d, goals=%d",
		state.Steps, len(state.ExerciseSessions), len(state.Goals))

	return &TrackerService{
		store: store,
		state: state,
		clock: clock,
		out:   os.Stdout,
	}, nil
}

// SetOutput redirects the user-facing feedback lines.
func (ts *TrackerService) SetOutput(w io.Writer) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.out = w
}

func (ts *TrackerService) OnAchievement(fn AchievementFunc) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.onAchievement = fn
}

// State returns a copy of the current state.
func (ts *TrackerService) State() *database.TrackerState {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.state.Clone()
}

func (ts *TrackerService) Summary() string {
	return FormatSummary(ts.State())
}

// mutate applies fn to a copy of the state and persists it. ts.mu must be held.
func (ts *TrackerService) mutate(ctx context.Context, fn func(s *database.TrackerState) error) error {
	next := ts.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := ts.store.Save(ctx, next); err != nil {
		log.Printf("❌ Failed to save tracker state: %v", err)
		return fmt.Errorf("save tracker state: %w", err)
	}
	ts.state = next
	return nil
}

func (ts *TrackerService) printf(format string, args ...any) {
	fmt.Fprintf(ts.out, format+"\n", args...)
}

func (ts *TrackerService) AddSteps(ctx context.Context, n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("steps %d: %w", n, ErrNegativeValue)
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	err := ts.mutate(ctx, func(s *database.TrackerState) error {
		if s.Steps > math.MaxInt-n {
			return fmt.Errorf("steps: %w", ErrOverflow)
		}
		s.Steps += n
		return nil
	})
	if err != nil {
		return 0, err
	}

	ts.printf("Added %d steps. Total steps: %d", n, ts.state.Steps)
	return ts.state.Steps, nil
}

func (ts *TrackerService) AddCalories(ctx context.Context, n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("calories %d: %w", n, ErrNegativeValue)
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	err := ts.mutate(ctx, func(s *database.TrackerState) error {
		if s.CaloriesBurned > math.MaxInt-n {
			return fmt.Errorf("calories: %w", ErrOverflow)
		}
		s.CaloriesBurned += n
		return nil
	})
	if err != nil {
		return 0, err
	}

	ts.printf("Added %d calories. Total calories burned: %d", n, ts.state.CaloriesBurned)
	return ts.state.CaloriesBurned, nil
}

// AddExerciseSession records a session and adds its calories to the
// aggregate counter once, in the same save.
func (ts *TrackerService) AddExerciseSession(ctx context.Context, name string, durationMinutes float64, calories int) (database.ExerciseSession, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return database.ExerciseSession{}, fmt.Errorf("exercise: %w", ErrEmptyName)
	}
	if durationMinutes < 0 || calories < 0 {
		return database.ExerciseSession{}, fmt.Errorf("exercise %q: %w", name, ErrNegativeValue)
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	session := database.ExerciseSession{
		ID:              uuid.NewString(),
		Name:            name,
		DurationMinutes: durationMinutes,
		CaloriesBurned:  calories,
		Timestamp:       utils.FormatTimestamp(ts.clock()),
	}

	err := ts.mutate(ctx, func(s *database.TrackerState) error {
		if s.CaloriesBurned > math.MaxInt-calories {
			return fmt.Errorf("calories: %w", ErrOverflow)
		}
		s.ExerciseSessions = append(s.ExerciseSessions, session)
		s.CaloriesBurned += calories
		return nil
	})
	if err != nil {
		return database.ExerciseSession{}, err
	}

	ts.printf("Logged %s: %s min, %d kcal. Total calories burned: %d",
		name, utils.FormatNumber(durationMinutes), calories, ts.state.CaloriesBurned)
	return session, nil
}

func (ts *TrackerService) AddWeightRecord(ctx context.Context, weightKg float64) (database.WeightRecord, error) {
	if weightKg < 0 {
		return database.WeightRecord{}, fmt.Errorf("weight: %w", ErrNegativeValue)
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	record := database.WeightRecord{WeightKg: weightKg, Date: utils.FormatDate(ts.clock())}
	err := ts.mutate(ctx, func(s *database.TrackerState) error {
		s.WeightRecords = append(s.WeightRecords, record)
		return nil
	})
	if err != nil {
		return database.WeightRecord{}, err
	}

	ts.printf("Recorded weight: %s kg on %s", utils.FormatNumber(weightKg), record.Date)
	return record, nil
}

func (ts *TrackerService) AddSleepRecord(ctx context.Context, hoursSlept float64) (database.SleepRecord, error) {
	if hoursSlept < 0 {
		return database.SleepRecord{}, fmt.Errorf("sleep: %w", ErrNegativeValue)
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	record := database.SleepRecord{HoursSlept: hoursSlept, Date: utils.FormatDate(ts.clock())}
	err := ts.mutate(ctx, func(s *database.TrackerState) error {
		s.SleepRecords = append(s.SleepRecords, record)
		return nil
	})
	if err != nil {
		return database.SleepRecord{}, err
	}

	ts.printf("Recorded sleep: %s hours on %s", utils.FormatNumber(hoursSlept), record.Date)
	return record, nil
}
