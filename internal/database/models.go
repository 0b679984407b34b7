package database

import "sort"

type ExerciseSession struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes float64 `json:"duration_minutes"`
	CaloriesBurned  int     `json:"calories_burned"`
	Timestamp       string  `json:"timestamp"`
}

type WeightRecord struct {
	WeightKg float64 `json:"weight_kg"`
	Date     string  `json:"date"`
}

type SleepRecord struct {
	HoursSlept float64 `json:"hours_slept"`
	Date       string  `json:"date"`
}

type Goal struct {
	TargetValue  float64 `json:"target_value"`
	CurrentValue float64 `json:"current_value"`
}

// Achieved reports whether the goal has reached its target.
func (g Goal) Achieved() bool {
	return g.CurrentValue >= g.TargetValue
}

// TrackerState is the full aggregate persisted by a Store.
type TrackerState struct {
	Steps            int               `json:"steps"`
	CaloriesBurned   int               `json:"calories_burned"`
	ExerciseSessions []ExerciseSession `json:"exercise_sessions"`
	WeightRecords    []WeightRecord    `json:"weight_records"`
	SleepRecords     []SleepRecord     `json:"sleep_records"`
	Goals            map[string]Goal   `json:"goals"`
}

// NewTrackerState returns the all-zero state used when nothing is stored yet.
func NewTrackerState() *TrackerState {
	return &TrackerState{
		ExerciseSessions: []ExerciseSession{},
		WeightRecords:    []WeightRecord{},
		SleepRecords:     []SleepRecord{},
		Goals:            map[string]Goal{},
	}
}

// Clone returns a deep copy.
func (s *TrackerState) Clone() *TrackerState {
	c := &TrackerState{
		Steps:            s.Steps,
		CaloriesBurned:   s.CaloriesBurned,
		ExerciseSessions: append([]ExerciseSession{}, s.ExerciseSessions...),
		WeightRecords:    append([]WeightRecord{}, s.WeightRecords...),
		SleepRecords:     append([]SleepRecord{}, s.SleepRecords...),
		Goals:            make(map[string]Goal, len(s.Goals)),
	}
	for name, g := range s.Goals {
		c.Goals[name] = g
	}
	return c
}

// GoalNames returns goal names sorted lexicographically.
func (s *TrackerState) GoalNames() []string {
	names := make([]string, 0, len(s.Goals))
	for name := range s.Goals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// normalize replaces nil collections left by decoders with empty ones.
func (s *TrackerState) normalize() {
	if s.ExerciseSessions == nil {
		s.ExerciseSessions = []ExerciseSession{}
	}
	if s.WeightRecords == nil {
		s.WeightRecords = []WeightRecord{}
	}
	if s.SleepRecords == nil {
		s.SleepRecords = []SleepRecord{}
	}
	if s.Goals == nil {
		s.Goals = map[string]Goal{}
	}
}
