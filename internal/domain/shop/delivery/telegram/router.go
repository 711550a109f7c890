package telegram

import (
	"context"
	"runtime/debug"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/consts"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/deps"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/usecase/buissines"
)

// Router registers Telegram bot handlers
type Router struct {
	handlers *Handlers
	uc       *buissines.UseCase
	locker   deps.UserLocker
	logger   zerolog.Logger
}

// NewRouter creates new Telegram router
func NewRouter(handlers *Handlers, uc *buissines.UseCase, locker deps.UserLocker, logger zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		uc:       uc,
		locker:   locker,
		logger:   logger,
	}
}

// RegisterRoutes registers all command handlers on the bot and returns the wrapped default handler
func (r *Router) RegisterRoutes(bot *tgbot.Bot) tgbot.HandlerFunc {
	h := r.handlers

	exact := map[string]tgbot.HandlerFunc{
		consts.CommandStart.Slash():          h.HandleStart,
		consts.CommandHelp.Slash():           h.HandleHelp,
		consts.CommandPlans.Slash():          h.HandlePlans,
		consts.CommandSubscriptions.Slash():  h.HandleSubscriptions,
		consts.CommandPayments.Slash():       h.HandlePayments,
		consts.CommandDemo.Slash():           h.HandleDemo,
		consts.CommandHealth.Slash():         h.HandleHealth,
		consts.CommandCancel.Slash():         h.HandleCancel,
		consts.CommandAddChannel.Slash():     h.HandleAddChannel,
		consts.CommandManageChannels.Slash(): h.HandleManageChannels,
		consts.CommandPending.Slash():        h.HandlePending,

		consts.ButtonPlans:           h.HandlePlans,
		consts.ButtonSubscriptions:   h.HandleSubscriptions,
		consts.ButtonPayments:        h.HandlePayments,
		consts.ButtonSupport:         h.HandleSupport,
		consts.ButtonDemo:            h.HandleDemo,
		consts.ButtonHelp:            h.HandleHelp,
		consts.ButtonAddChannel:      h.HandleAddChannel,
		consts.ButtonManageChannels:  h.HandleManageChannels,
		consts.ButtonPendingPayments: h.HandlePending,
		consts.ButtonAllAccess:       h.HandleAllAccess,
	}
	for pattern, handler := range exact {
		bot.RegisterHandler(tgbot.HandlerTypeMessageText, pattern, tgbot.MatchTypeExact, r.wrap(handler))
	}

	// Commands with arguments
	prefix := map[string]tgbot.HandlerFunc{
		consts.CommandChannelOn.Slash():  h.HandleChannelOn,
		consts.CommandChannelOff.Slash(): h.HandleChannelOff,
		consts.CommandAllAccess.Slash():  h.HandleAllAccess,
		consts.CommandApprove.Slash():    h.HandleApprove,
		consts.CommandReject.Slash():     h.HandleReject,
		consts.CommandRegrant.Slash():    h.HandleRegrant,
	}
	for pattern, handler := range prefix {
		bot.RegisterHandler(tgbot.HandlerTypeMessageText, pattern, tgbot.MatchTypePrefix, r.wrap(handler))
	}

	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "", tgbot.MatchTypePrefix, r.wrap(h.HandleCallback))

	r.logger.Info().
		Int("exact", len(exact)).
		Int("prefix", len(prefix)).
		Msg("All Telegram command handlers registered successfully")

	return r.wrap(h.HandleDefault)
}

// wrap applies panic recovery, user tracking and per-user serialization to a handler
func (r *Router) wrap(next tgbot.HandlerFunc) tgbot.HandlerFunc {
	return r.recoverer(r.serialize(r.touchUser(next)))
}

// recoverer keeps a panicking handler from taking down the update loop
func (r *Router) recoverer(next tgbot.HandlerFunc) tgbot.HandlerFunc {
	return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error().
					Interface("panic", rec).
					Int64("update_id", update.ID).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic in Telegram handler")
			}
		}()
		next(ctx, bot, update)
	}
}

// serialize processes the updates of one user one at a time
func (r *Router) serialize(next tgbot.HandlerFunc) tgbot.HandlerFunc {
	return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
		user := updateUser(update)
		if user == nil {
			next(ctx, bot, update)
			return
		}

		unlock, err := r.locker.Lock(ctx, user.ID)
		if err != nil {
			r.logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to acquire user lock, update dropped")
			return
		}
		defer unlock()

		next(ctx, bot, update)
	}
}

// touchUser records the sender of every update
func (r *Router) touchUser(next tgbot.HandlerFunc) tgbot.HandlerFunc {
	return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
		if user := updateUser(update); user != nil && !user.IsBot {
			if err := r.uc.TouchUser(ctx, actorFromUser(user)); err != nil {
				r.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("Failed to record user")
			}
		}
		next(ctx, bot, update)
	}
}
