// Package telegram contains Telegram bot infrastructure
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
)

// Bot wraps the Telegram bot for infrastructure layer
type Bot struct {
	bot    *tgbot.Bot
	id     int64
	logger zerolog.Logger

	mu             sync.RWMutex
	defaultHandler tgbot.HandlerFunc
}

// NewBot creates a new Telegram bot wrapper
func NewBot(token string, logger zerolog.Logger) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}

	id, err := botIDFromToken(token)
	if err != nil {
		return nil, err
	}

	b := &Bot{
		id:     id,
		logger: logger,
	}

	opts := []tgbot.Option{
		tgbot.WithDefaultHandler(b.handleDefault),
		tgbot.WithErrorsHandler(func(err error) {
			logger.Error().Err(err).Msg("Telegram polling error")
		}),
	}

	bot, err := tgbot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	b.bot = bot

	logger.Info().Int64("bot_id", id).Msg("Telegram bot created successfully")

	return b, nil
}

// Raw returns the underlying telegram bot for handler registration
func (b *Bot) Raw() *tgbot.Bot {
	return b.bot
}

// ID returns the bot's own user id
func (b *Bot) ID() int64 {
	return b.id
}

// SetDefaultHandler sets the handler for updates no registered handler matched
func (b *Bot) SetDefaultHandler(h tgbot.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.defaultHandler = h
}

// Start starts the bot (blocking call)
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info().Msg("Starting Telegram bot...")
	b.bot.Start(ctx)
	b.logger.Info().Msg("Telegram bot stopped")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() error {
	b.logger.Info().Msg("Stopping Telegram bot...")
	return nil
}

func (b *Bot) handleDefault(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	b.mu.RLock()
	h := b.defaultHandler
	b.mu.RUnlock()

	if h == nil {
		b.logger.Debug().Int64("update_id", update.ID).Msg("No default handler, update ignored")
		return
	}
	h(ctx, bot, update)
}

// botIDFromToken extracts the bot user id from a Bot API token
func botIDFromToken(token string) (int64, error) {
	prefix, _, ok := strings.Cut(token, ":")
	if !ok {
		return 0, fmt.Errorf("malformed telegram token")
	}

	id, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("malformed telegram token: invalid bot id")
	}
	return id, nil
}
