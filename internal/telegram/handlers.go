package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fitness-tracker/internal/services"
	"fitness-tracker/internal/social"
	"fitness-tracker/internal/utils"
)

// handlers.go - chat command handlers. Each returns the reply text.

const helpText = `🏃 Fitness Tracker

Commands:
/summary - all totals, records and goals
/week - last 7 days report
/steps N - add steps
/calories N - add burned calories
/exercise NAME MINUTES CALORIES - log a workout
/weight KG - record weight
/sleep HOURS - record sleep
/goal NAME TARGET - set a goal
/progress NAME DELTA - add progress to a goal
/share TEXT - share a milestone
/help - this message

Example:
/exercise Running 30 300`

type commandHandler func(ctx context.Context, args string) string

type CommandRouter struct {
	services *services.ServiceManager
	handlers map[string]commandHandler
}

func NewCommandRouter(sm *services.ServiceManager) *CommandRouter {
	r := &CommandRouter{
		services: sm,
		handlers: make(map[string]commandHandler),
	}
	r.registerHandlers()
	return r
}

func (r *CommandRouter) registerHandlers() {
	r.handlers["start"] = r.handleHelp
	r.handlers["help"] = r.handleHelp
	r.handlers["summary"] = r.handleSummary
	r.handlers["week"] = r.handleWeek
	r.handlers["steps"] = r.handleSteps
	r.handlers["calories"] = r.handleCalories
	r.handlers["exercise"] = r.handleExercise
	r.handlers["weight"] = r.handleWeight
	r.handlers["sleep"] = r.handleSleep
	r.handlers["goal"] = r.handleGoal
	r.handlers["progress"] = r.handleProgress
	r.handlers["share"] = r.handleShare
}

// Handle runs a command given without its leading slash.
func (r *CommandRouter) Handle(ctx context.Context, command, args string) string {
	handler, ok := r.handlers[strings.ToLower(command)]
	if !ok {
		return "❌ Unknown command. Use /help"
	}
	return handler(ctx, strings.TrimSpace(args))
}

func (r *CommandRouter) handleHelp(ctx context.Context, args string) string {
	return helpText
}

func (r *CommandRouter) handleSummary(ctx context.Context, args string) string {
	return r.services.Tracker.Summary()
}

func (r *CommandRouter) handleWeek(ctx context.Context, args string) string {
	return services.FormatWeeklyReport(r.services.Analytics.GetWeeklyReport())
}

func (r *CommandRouter) handleSteps(ctx context.Context, args string) string {
	n, err := strconv.Atoi(args)
	if err != nil {
		return "❌ Format: /steps N"
	}
	total, err := r.services.Tracker.AddSteps(ctx, n)
	if err != nil {
		return errorReply(err)
	}
	return fmt.Sprintf("👟 +%d steps. Total: %d", n, total)
}

func (r *CommandRouter) handleCalories(ctx context.Context, args string) string {
	n, err := strconv.Atoi(args)
	if err != nil {
		return "❌ Format: /calories N"
	}
	total, err := r.services.Tracker.AddCalories(ctx, n)
	if err != nil {
		return errorReply(err)
	}
	return fmt.Sprintf("🔥 +%d kcal. Total: %d", n, total)
}

func (r *CommandRouter) handleExercise(ctx context.Context, args string) string {
	name, minutes, calories, err := parseExerciseArgs(args)
	if err != nil {
		return "❌ Format: /exercise NAME MINUTES CALORIES"
	}
	session, err := r.services.Tracker.AddExerciseSession(ctx, name, minutes, calories)
	if err != nil {
		return errorReply(err)
	}
	return fmt.Sprintf("🏋️ %s logged: %s min, %d kcal\n⏰ %s",
		session.Name, utils.FormatNumber(session.DurationMinutes), session.CaloriesBurned, session.Timestamp)
}

func (r *CommandRouter) handleWeight(ctx context.Context, args string) string {
	kg, err := strconv.ParseFloat(args, 64)
	if err != nil {
		return "❌ Format: /weight KG"
	}
	record, err := r.services.Tracker.AddWeightRecord(ctx, kg)
	if err != nil {
		return errorReply(err)
	}
	return fmt.Sprintf("⚖️ %s kg recorded for %s", utils.FormatNumber(record.WeightKg), record.Date)
}

func (r *CommandRouter) handleSleep(ctx context.Context, args string) string {
	hours, err := strconv.ParseFloat(args, 64)
	if err != nil {
		return "❌ Format: /sleep HOURS"
	}
	record, err := r.services.Tracker.AddSleepRecord(ctx, hours)
	if err != nil {
		return errorReply(err)
	}
	return fmt.Sprintf("😴 %s h recorded for %s", utils.FormatNumber(record.HoursSlept), record.Date)
}

func (r *CommandRouter) handleGoal(ctx context.Context, args string) string {
	name, target, err := parseNameValue(args)
	if err != nil {
		return "❌ Format: /goal NAME TARGET"
	}
	if _, err := r.services.Tracker.SetGoal(ctx, name, target); err != nil {
		return errorReply(err)
	}
	return fmt.Sprintf("🎯 Goal %s set to %s", name, utils.FormatNumber(target))
}

func (r *CommandRouter) handleProgress(ctx context.Context, args string) string {
	name, delta, err := parseNameValue(args)
	if err != nil {
		return "❌ Format: /progress NAME DELTA"
	}
	goal, achieved, err := r.services.Tracker.UpdateGoal(ctx, name, delta)
	if err != nil {
		return errorReply(err)
	}
	reply := fmt.Sprintf("📈 %s: %s/%s", name, utils.FormatNumber(goal.CurrentValue), utils.FormatNumber(goal.TargetValue))
	if achieved {
		reply += "\n🏆 Goal achieved!"
	}
	return reply
}

func (r *CommandRouter) handleShare(ctx context.Context, args string) string {
	if args == "" {
		return "❌ Format: /share TEXT"
	}
	if err := r.services.Share.ShareProgress(ctx, args); err != nil {
		var rejected *social.RejectedError
		if errors.As(err, &rejected) {
			return fmt.Sprintf("❌ Error sharing progress: %s", rejected.Body)
		}
		return "❌ Error sharing progress"
	}
	return "✅ Progress shared successfully!"
}

func errorReply(err error) string {
	switch {
	case errors.Is(err, services.ErrGoalNotFound):
		return "❌ Goal not found. Create it with /goal NAME TARGET"
	case errors.Is(err, services.ErrNegativeValue):
		return "❌ Values cannot be negative"
	case errors.Is(err, services.ErrOverflow):
		return "❌ That number is too large"
	case errors.Is(err, services.ErrEmptyName):
		return "❌ Name cannot be empty"
	default:
		return "❌ Failed to save, try again later"
	}
}

// parseExerciseArgs splits "NAME MINUTES CALORIES"; the name may contain spaces.
func parseExerciseArgs(args string) (name string, minutes float64, calories int, err error) {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		return "", 0, 0, fmt.Errorf("expected NAME MINUTES CALORIES, got %q", args)
	}
	n := len(fields)
	minutes, err = strconv.ParseFloat(fields[n-2], 64)
	if err != nil {
		return "", 0, 0, err
	}
	calories, err = strconv.Atoi(fields[n-1])
	if err != nil {
		return "", 0, 0, err
	}
	return strings.Join(fields[:n-2], " "), minutes, calories, nil
}

// parseNameValue splits "NAME VALUE"; the name may contain spaces.
func parseNameValue(args string) (string, float64, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return "", 0, fmt.Errorf("expected NAME VALUE, got %q", args)
	}
	n := len(fields)
	value, err := strconv.ParseFloat(fields[n-1], 64)
	if err != nil {
		return "", 0, err
	}
	return strings.Join(fields[:n-1], " "), value, nil
}
