package services

import (
	"fmt"
	"strings"
	"time"

	"fitness-tracker/internal/database"
	"fitness-tracker/internal/utils"
)

type WeeklyReport struct {
	Start        time.Time
	End          time.Time
	Sessions     int
	Minutes      float64
	Calories     int
	SleepNights  int
	AvgSleep     float64
	WeightChange float64
	HasWeight    bool
	Insights     []string
}

type AnalyticsService struct {
	tracker *TrackerService
	clock   utils.Clock
}

func NewAnalyticsService(tracker *TrackerService, clock utils.Clock) *AnalyticsService {
	if clock == nil {
		clock = utils.ClockIn(nil)
	}
	return &AnalyticsService{
		tracker: tracker,
		clock:   clock,
	}
}

func (as *AnalyticsService) GetWeeklyReport() WeeklyReport {
	return BuildWeeklyReport(as.tracker.State(), as.clock())
}

// BuildWeeklyReport aggregates the seven calendar days ending at now.
// Records whose date cannot be parsed are skipped.
func BuildWeeklyReport(state *database.TrackerState, now time.Time) WeeklyReport {
	loc := now.Location()
	report := WeeklyReport{
		Start: utils.StartOfDay(now).AddDate(0, 0, -6),
		End:   now,
	}
	inWindow := func(t time.Time) bool {
		return !t.Before(report.Start) && !t.After(report.End)
	}

	for _, s := range state.ExerciseSessions {
		ts, err := utils.ParseTimestamp(s.Timestamp, loc)
		if err != nil || !inWindow(ts) {
			continue
		}
		report.Sessions++
		report.Minutes += s.DurationMinutes
		report.Calories += s.CaloriesBurned
	}

	var sleepTotal float64
	for _, s := range state.SleepRecords {
		d, err := utils.ParseDate(s.Date, loc)
		if err != nil || !inWindow(d) {
			continue
		}
		report.SleepNights++
		sleepTotal += s.HoursSlept
	}
	if report.SleepNights > 0 {
		report.AvgSleep = sleepTotal / float64(report.SleepNights)
	}

	var first, last *database.WeightRecord
	for i := range state.WeightRecords {
		w := &state.WeightRecords[i]
		d, err := utils.ParseDate(w.Date, loc)
		if err != nil || !inWindow(d) {
			continue
		}
		if first == nil {
			first = w
		}
		last = w
	}
	if first != nil {
		report.HasWeight = true
		report.WeightChange = last.WeightKg - first.WeightKg
	}

	report.Insights = generateInsights(report)
	return report
}

func generateInsights(r WeeklyReport) []string {
	var insights []string

	switch {
	case r.Sessions == 0:
		insights = append(insights, "💪 No workouts logged this week, time to move!")
	case r.Sessions >= 5:
		insights = append(insights, "🎯 Great week of training! Keep it up")
	default:
		insights = append(insights, "📈 Good progress, there's room to grow")
	}

	if r.SleepNights > 0 && r.AvgSleep < 7 {
		insights = append(insights, "😴 Average sleep is under 7 hours. Check your evening routine")
	}

	if r.HasWeight && r.WeightChange < 0 {
		insights = append(insights, fmt.Sprintf("⚖️ Weight down %s kg this week", utils.FormatNumber(-r.WeightChange)))
	}

	return insights
}

func FormatWeeklyReport(r WeeklyReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📅 Week %s to %s\n", utils.FormatDate(r.Start), utils.FormatDate(r.End)))
	b.WriteString(fmt.Sprintf("Workouts: %d (%s min, %d kcal)\n", r.Sessions, utils.FormatNumber(r.Minutes), r.Calories))
	if r.SleepNights > 0 {
		b.WriteString(fmt.Sprintf("Average sleep: %.1f h over %d nights\n", r.AvgSleep, r.SleepNights))
	} else {
		b.WriteString("Average sleep: no records\n")
	}
	if r.HasWeight {
		b.WriteString(fmt.Sprintf("Weight change: %+.1f kg\n", r.WeightChange))
	}
	if len(r.Insights) > 0 {
		b.WriteString("\n" + strings.Join(r.Insights, "\n") + "\n")
	}

	return b.String()
}
