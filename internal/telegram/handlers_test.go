package telegram

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"fitness-tracker/internal/database"
	"fitness-tracker/internal/services"
	"fitness-tracker/internal/social"
	"fitness-tracker/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, shareStatus int) *CommandRouter {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(shareStatus)
		w.Write([]byte("nope"))
	}))
	t.Cleanup(server.Close)

	store := database.NewFileStore(filepath.Join(t.TempDir(), "fitness_data.json"))
	clock := utils.FixedClock(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC))
	sm, err := services.NewServiceManager(context.Background(), store, social.NewHTTPPoster(server.URL, "t", time.Second), clock)
	require.NoError(t, err)
	sm.Tracker.SetOutput(&bytes.Buffer{})
	sm.Share.SetOutput(&bytes.Buffer{})
	return NewCommandRouter(sm)
}

func TestCommandRouter_Tracking(t *testing.T) {
	r := newTestRouter(t, http.StatusOK)
	ctx := context.Background()

	assert.Equal(t, "👟 +1500 steps. Total: 1500", r.Handle(ctx, "steps", "1500"))
	assert.Equal(t, "👟 +500 steps. Total: 2000", r.Handle(ctx, "STEPS", " 500 "))
	assert.Equal(t, "❌ Format: /steps N", r.Handle(ctx, "steps", "lots"))
	assert.Equal(t, "❌ Values cannot be negative", r.Handle(ctx, "steps", "-1"))

	assert.Equal(t, "🏋️ Morning Run logged: 30 min, 300 kcal\n⏰ 2026-10-19 08:00:00",
		r.Handle(ctx, "exercise", "Morning Run 30 300"))
	assert.Equal(t, "🔥 +20 kcal. Total: 320", r.Handle(ctx, "calories", "20"))
	assert.Equal(t, "⚖️ 72.5 kg recorded for 2026-10-19", r.Handle(ctx, "weight", "72.5"))
	assert.Equal(t, "😴 7 h recorded for 2026-10-19", r.Handle(ctx, "sleep", "7"))

	summary := r.Handle(ctx, "summary", "")
	assert.Contains(t, summary, "Steps: 2000")
	assert.Contains(t, summary, "Calories burned: 320")
	assert.Contains(t, r.Handle(ctx, "week", ""), "Workouts: 1")
}

func TestCommandRouter_Goals(t *testing.T) {
	r := newTestRouter(t, http.StatusOK)
	ctx := context.Background()

	assert.Equal(t, "❌ Goal not found. Create it with /goal NAME TARGET", r.Handle(ctx, "progress", "run 1"))
	assert.Equal(t, "🎯 Goal run 5k set to 3", r.Handle(ctx, "goal", "run 5k 3"))
	assert.Equal(t, "📈 run 5k: 2/3", r.Handle(ctx, "progress", "run 5k 2"))
	assert.Equal(t, "📈 run 5k: 3/3\n🏆 Goal achieved!", r.Handle(ctx, "progress", "run 5k 1"))
}

func TestCommandRouter_Share(t *testing.T) {
	ctx := context.Background()

	ok := newTestRouter(t, http.StatusOK)
	assert.Equal(t, "✅ Progress shared successfully!", ok.Handle(ctx, "share", "Completed a 5K run!"))
	assert.Equal(t, "❌ Format: /share TEXT", ok.Handle(ctx, "share", ""))

	denied := newTestRouter(t, http.StatusForbidden)
	assert.Equal(t, "❌ Error sharing progress: nope", denied.Handle(ctx, "share", "Completed a 5K run!"))
}

func TestCommandRouter_Unknown(t *testing.T) {
	r := newTestRouter(t, http.StatusOK)
	assert.Equal(t, "❌ Unknown command. Use /help", r.Handle(context.Background(), "dance", ""))
	assert.Equal(t, helpText, r.Handle(context.Background(), "start", ""))
}

func TestParseExerciseArgs(t *testing.T) {
	name, minutes, calories, err := parseExerciseArgs("Hill Sprints 12.5 180")
	require.NoError(t, err)
	assert.Equal(t, "Hill Sprints", name)
	assert.Equal(t, 12.5, minutes)
	assert.Equal(t, 180, calories)

	_, _, _, err = parseExerciseArgs("Run 30")
	assert.Error(t, err)
	_, _, _, err = parseExerciseArgs("Run 30 lots")
	assert.Error(t, err)
}
