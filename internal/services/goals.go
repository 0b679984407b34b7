package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"fitness-tracker/internal/database"
	"fitness-tracker/internal/utils"
)

// SetGoal inserts or replaces a goal, resetting its progress to zero.
func (ts *TrackerService) SetGoal(ctx context.Context, name string, targetValue float64) (database.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return database.Goal{}, fmt.Errorf("goal: %w", ErrEmptyName)
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	goal := database.Goal{TargetValue: targetValue}
	err := ts.mutate(ctx, func(s *database.TrackerState) error {
		s.Goals[name] = goal
		return nil
	})
	if err != nil {
		return database.Goal{}, err
	}

	ts.printf("Goal set: %s -> %s", name, utils.FormatNumber(targetValue))
	return goal, nil
}

// UpdateGoal adds delta to a goal's progress. achieved is true whenever the
// resulting value is at or above the target; the goal is kept either way.
func (ts *TrackerService) UpdateGoal(ctx context.Context, name string, delta float64) (goal database.Goal, achieved bool, err error) {
	name = strings.TrimSpace(name)
	if delta < 0 {
		return database.Goal{}, false, fmt.Errorf("goal %q: %w", name, ErrNegativeValue)
	}

	ts.mu.Lock()
	if _, ok := ts.state.Goals[name]; !ok {
		ts.printf("Goal %q not found.", name)
		ts.mu.Unlock()
		return database.Goal{}, false, fmt.Errorf("%q: %w", name, ErrGoalNotFound)
	}

	err = ts.mutate(ctx, func(s *database.TrackerState) error {
		g := s.Goals[name]
		g.CurrentValue += delta
		s.Goals[name] = g
		return nil
	})
	if err != nil {
		ts.mu.Unlock()
		return database.Goal{}, false, err
	}

	goal = ts.state.Goals[name]
	achieved = goal.Achieved()
	ts.printf("Goal %s: %s/%s", name, utils.FormatNumber(goal.CurrentValue), utils.FormatNumber(goal.TargetValue))
	if achieved {
		ts.printf("🏆 Congratulations! You achieved your goal: %s", name)
	}
	hook := ts.onAchievement
	ts.mu.Unlock()

	if achieved {
		log.Printf("🏆 Goal achieved: %s", name)
		if hook != nil {
			hook(name, goal)
		}
	}
	return goal, achieved, nil
}

// EnsureGoals seeds the given goals that do not exist yet. Existing goals and
// their progress are left alone.
func (ts *TrackerService) EnsureGoals(ctx context.Context, defaults map[string]float64) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	var missing []string
	for name := range defaults {
		if _, ok := ts.state.Goals[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)

	err := ts.mutate(ctx, func(s *database.TrackerState) error {
		for _, name := range missing {
			s.Goals[name] = database.Goal{TargetValue: defaults[name]}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("🎯 Seeded default goals: %s", strings.Join(missing, ", "))
	return nil
}
