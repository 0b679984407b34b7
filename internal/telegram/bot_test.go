package telegram

import (
	"context"
	"net/http"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func commandUpdate(chatID int64, text, command string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(command) + 1},
		},
	}}
}

func TestBot_IgnoresOtherChats(t *testing.T) {
	r := newTestRouter(t, http.StatusOK)
	b := &Bot{chatID: 1, router: r}
	ctx := context.Background()

	b.handleUpdate(ctx, commandUpdate(2, "/steps 100", "steps"))
	b.handleUpdate(ctx, commandUpdate(-1, "/goal steps 10", "goal"))

	state := r.services.Tracker.State()
	assert.Equal(t, 0, state.Steps)
	assert.Empty(t, state.Goals)
}

func TestBot_SkipsUpdatesWithoutCommand(t *testing.T) {
	r := newTestRouter(t, http.StatusOK)
	b := &Bot{chatID: 1, router: r}
	ctx := context.Background()

	b.handleUpdate(ctx, tgbotapi.Update{})
	b.handleUpdate(ctx, tgbotapi.Update{Message: &tgbotapi.Message{
		Text: "steps 100",
		Chat: &tgbotapi.Chat{ID: 1},
	}})

	assert.Equal(t, 0, r.services.Tracker.State().Steps)
}
