package services

import (
	"fmt"
	"strings"

	"fitness-tracker/internal/database"
	"fitness-tracker/internal/utils"
)

// FormatSummary renders the state as plain text. Lists keep insertion order,
// goals are sorted by name so the output is stable.
func FormatSummary(state *database.TrackerState) string {
	var b strings.Builder

	b.WriteString("📊 Fitness Summary\n")
	b.WriteString(fmt.Sprintf("Steps: %d\n", state.Steps))
	b.WriteString(fmt.Sprintf("Calories burned: %d\n", state.CaloriesBurned))

	b.WriteString("\nExercise sessions:\n")
	if len(state.ExerciseSessions) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, s := range state.ExerciseSessions {
		b.WriteString(fmt.Sprintf("  - %s: %s min, %d kcal (%s)\n",
			s.Name, utils.FormatNumber(s.DurationMinutes), s.CaloriesBurned, s.Timestamp))
	}

	b.WriteString("\nWeight records:\n")
	if len(state.WeightRecords) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, w := range state.WeightRecords {
		b.WriteString(fmt.Sprintf("  - %s kg (%s)\n", utils.FormatNumber(w.WeightKg), w.Date))
	}

	b.WriteString("\nSleep records:\n")
	if len(state.SleepRecords) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, s := range state.SleepRecords {
		b.WriteString(fmt.Sprintf("  - %s h (%s)\n", utils.FormatNumber(s.HoursSlept), s.Date))
	}

	b.WriteString("\nGoals:\n")
	if len(state.Goals) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, name := range state.GoalNames() {
		g := state.Goals[name]
		b.WriteString(fmt.Sprintf("  %s %s: %s/%s (%s)\n",
			utils.GetGoalStatusEmoji(g.Achieved()), name,
			utils.FormatNumber(g.CurrentValue), utils.FormatNumber(g.TargetValue),
			utils.GetGoalStatusText(g.Achieved())))
	}

	return b.String()
}
