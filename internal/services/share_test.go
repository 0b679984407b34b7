package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"fitness-tracker/internal/database"
	"fitness-tracker/internal/social"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareProgress(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantOutput string
		wantErr    bool
	}{
		{
			name:       "ok",
			status:     http.StatusOK,
			body:       `{"id": 1}`,
			wantOutput: "Progress shared successfully!\n",
		},
		{
			name:       "forbidden",
			status:     http.StatusForbidden,
			body:       `{"errors":"forbidden"}`,
			wantOutput: "Error sharing progress: {\"errors\":\"forbidden\"}\n",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var posted string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				buf := new(bytes.Buffer)
				buf.ReadFrom(r.Body)
				posted = buf.String()
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			out := &bytes.Buffer{}
			share := NewShareService(social.NewHTTPPoster(server.URL, "token", time.Second))
			share.SetOutput(out)

			err := share.ShareProgress(context.Background(), "Completed a 5K run!")

			assert.Equal(t, tt.wantOutput, out.String())
			assert.JSONEq(t, `{"status":"Just reached a new fitness milestone! Completed a 5K run!"}`, posted)
			if tt.wantErr {
				var rejected *social.RejectedError
				require.True(t, errors.As(err, &rejected))
				assert.Equal(t, tt.status, rejected.StatusCode)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type recordingSender struct {
	messages []string
}

func (s *recordingSender) SendMessage(text string) error {
	s.messages = append(s.messages, text)
	return nil
}

func (s *recordingSender) Post(ctx context.Context, status string) error {
	return s.SendMessage(status)
}

func TestServiceManager_RoutesAchievementsAndShares(t *testing.T) {
	store := database.NewFileStore(filepath.Join(t.TempDir(), "fitness_data.json"))
	ctx := context.Background()

	sm, err := NewServiceManager(ctx, store, nil, nil)
	require.NoError(t, err)
	sm.Tracker.SetOutput(&bytes.Buffer{})
	sm.Share.SetOutput(&bytes.Buffer{})

	sender := &recordingSender{}
	sm.SetNotificationSender(sender)
	sm.SetPoster(sender)

	_, err = sm.Tracker.SetGoal(ctx, "run", 1)
	require.NoError(t, err)
	_, _, err = sm.Tracker.UpdateGoal(ctx, "run", 1)
	require.NoError(t, err)

	require.NoError(t, sm.Share.ShareProgress(ctx, "5K"))

	assert.Equal(t, []string{
		"🏆 Goal achieved: run (1/1)",
		"Just reached a new fitness milestone! 5K",
	}, sender.messages)

	sm.Notification.SendDailySummary()
	assert.Contains(t, sender.messages[2], "📊 Fitness Summary")
	sm.Notification.SendWeeklyReport()
	assert.Contains(t, sender.messages[3], "📅 Week")
}
