package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/deps"
	pkgerrors "github.com/Alokchauhan110/Premium-Plan/pkg/errors"
)

// accessAttempts is the number of tries per provider call
const accessAttempts = 2

// chatAPI is the part of *tgbot.Bot used to manage channel membership
type chatAPI interface {
	GetChatMember(ctx context.Context, params *tgbot.GetChatMemberParams) (*models.ChatMember, error)
	CreateChatInviteLink(ctx context.Context, params *tgbot.CreateChatInviteLinkParams) (*models.ChatInviteLink, error)
	UnbanChatMember(ctx context.Context, params *tgbot.UnbanChatMemberParams) (bool, error)
}

// AccessProvider implements deps.AccessProvider over the Bot API
type AccessProvider struct {
	bot            chatAPI
	botID          int64
	requestTimeout time.Duration
	limiter        *rate.Limiter
	logger         zerolog.Logger
}

// NewAccessProvider creates a new AccessProvider. ratePerSecond bounds the calls made towards Telegram
func NewAccessProvider(bot *tgbot.Bot, botID int64, requestTimeout time.Duration, ratePerSecond float64, logger zerolog.Logger) *AccessProvider {
	return newAccessProvider(bot, botID, requestTimeout, ratePerSecond, logger)
}

func newAccessProvider(bot chatAPI, botID int64, requestTimeout time.Duration, ratePerSecond float64, logger zerolog.Logger) *AccessProvider {
	burst := int(ratePerSecond)
	if burst < 1 {
		burst = 1
	}

	return &AccessProvider{
		bot:            bot,
		botID:          botID,
		requestTimeout: requestTimeout,
		limiter:        rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		logger:         logger,
	}
}

// GetMembershipStatus implements deps.AccessProvider interface
func (p *AccessProvider) GetMembershipStatus(ctx context.Context, channelRef string) (deps.MemberStatus, error) {
	var status deps.MemberStatus

	err := p.call(ctx, "getChatMember", channelRef, func(ctx context.Context) error {
		member, err := p.bot.GetChatMember(ctx, &tgbot.GetChatMemberParams{
			ChatID: chatID(channelRef),
			UserID: p.botID,
		})
		if err != nil {
			return err
		}
		status = deps.MemberStatus(member.Type)
		return nil
	})
	if err != nil {
		return "", err
	}

	return status, nil
}

// CreateInviteLink implements deps.AccessProvider interface
func (p *AccessProvider) CreateInviteLink(ctx context.Context, channelRef string) (string, error) {
	var link string

	err := p.call(ctx, "createChatInviteLink", channelRef, func(ctx context.Context) error {
		invite, err := p.bot.CreateChatInviteLink(ctx, &tgbot.CreateChatInviteLinkParams{
			ChatID: chatID(channelRef),
			Name:   "Premium access",
		})
		if err != nil {
			return err
		}
		if invite == nil || invite.InviteLink == "" {
			return fmt.Errorf("empty invite link")
		}
		link = invite.InviteLink
		return nil
	})
	if err != nil {
		return "", err
	}

	return link, nil
}

// GrantMembership implements deps.AccessProvider interface.
// Unbanning with OnlyIfBanned is a no-op for users who were never removed
func (p *AccessProvider) GrantMembership(ctx context.Context, channelRef string, userID int64) error {
	return p.call(ctx, "unbanChatMember", channelRef, func(ctx context.Context) error {
		_, err := p.bot.UnbanChatMember(ctx, &tgbot.UnbanChatMemberParams{
			ChatID:       chatID(channelRef),
			UserID:       userID,
			OnlyIfBanned: true,
		})
		return err
	})
}

// call runs fn under the rate limiter and the request timeout, retrying once
func (p *AccessProvider) call(ctx context.Context, method, channelRef string, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= accessAttempts; attempt++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return pkgerrors.WrapProviderError(err, "telegram %s cancelled", method)
		}

		callCtx, cancel := context.WithTimeout(ctx, p.requestTimeout)
		lastErr = fn(callCtx)
		cancel()

		if lastErr == nil {
			return nil
		}

		p.logger.Warn().
			Err(lastErr).
			Str("method", method).
			Str("channel_ref", channelRef).
			Int("attempt", attempt).
			Msg("Telegram call failed")

		if ctx.Err() != nil {
			break
		}
	}

	return pkgerrors.WrapProviderError(lastErr, "telegram %s failed", method)
}

// chatID converts a stored channel reference into a Bot API chat id
func chatID(channelRef string) any {
	if id, err := strconv.ParseInt(channelRef, 10, 64); err == nil {
		return id
	}
	if strings.HasPrefix(channelRef, "@") {
		return channelRef
	}
	return "@" + channelRef
}
