package telegram

import (
	"context"
	"testing"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotIDFromToken(t *testing.T) {
	id, err := botIDFromToken("123456:ABC-DEF")
	require.NoError(t, err)
	assert.Equal(t, int64(123456), id)

	for _, token := range []string{"", "test-token-123", "abc:def", "-5:x"} {
		_, err := botIDFromToken(token)
		assert.Error(t, err, token)
	}
}

func TestNewBot_RequiresToken(t *testing.T) {
	_, err := NewBot("", zerolog.Nop())
	assert.Error(t, err)
}

func TestHandleDefault_Delegates(t *testing.T) {
	b := &Bot{logger: zerolog.Nop()}
	update := &models.Update{ID: 1}

	// no handler yet
	b.handleDefault(context.Background(), nil, update)

	var got *models.Update
	b.SetDefaultHandler(func(_ context.Context, _ *tgbot.Bot, u *models.Update) {
		got = u
	})
	b.handleDefault(context.Background(), nil, update)

	assert.Same(t, update, got)
}
