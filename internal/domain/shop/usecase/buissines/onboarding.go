package buissines

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/consts"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/deps"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/dto"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
	shoperrors "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/errors"
	pkgerrors "github.com/Alokchauhan110/Premium-Plan/pkg/errors"
)

// StartOnboarding opens the channel onboarding dialogue for an administrator
func (uc *UseCase) StartOnboarding(ctx context.Context, actor dto.Actor) (*dto.Reply, error) {
	if err := uc.requireAdmin(actor); err != nil {
		return nil, err
	}

	session, err := uc.repos.Sessions.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	session.ResetOnboarding()
	session.OnboardingState = entities.OnboardingAwaitingName
	if err := uc.saveSession(ctx, session); err != nil {
		return nil, err
	}

	uc.logger.Info().Int64("user_id", actor.ID).Msg("Channel onboarding started")
	return &dto.Reply{Text: renderOnboardingName()}, nil
}

// CancelDialogue returns the onboarding dialogue to idle from any state
func (uc *UseCase) CancelDialogue(ctx context.Context, actor dto.Actor) (*dto.Reply, error) {
	session, err := uc.repos.Sessions.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	wasActive := session.InOnboarding()
	session.ResetOnboarding()
	if err := uc.saveSession(ctx, session); err != nil {
		return nil, err
	}

	keyboard := mainKeyboard()
	if uc.IsAdmin(actor.ID) {
		keyboard = adminKeyboard()
	}
	return &dto.Reply{Text: renderCancelled(wasActive), Keyboard: keyboard}, nil
}

// HandleDialogueInput advances the onboarding dialogue.
// It returns ErrNoActiveDialogue when the actor is idle so the caller can route the message elsewhere
func (uc *UseCase) HandleDialogueInput(ctx context.Context, actor dto.Actor, msg dto.IncomingMessage) (*dto.Reply, error) {
	session, err := uc.repos.Sessions.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !session.InOnboarding() {
		return nil, shoperrors.ErrNoActiveDialogue
	}

	switch session.OnboardingState {
	case entities.OnboardingAwaitingName:
		return uc.acceptName(ctx, session, msg)
	case entities.OnboardingAwaitingPrice:
		return uc.acceptPrice(ctx, session, msg)
	case entities.OnboardingAwaitingDemo:
		return uc.acceptDemo(ctx, session, msg)
	case entities.OnboardingAwaitingForward:
		return uc.acceptForward(ctx, actor, session, msg)
	default:
		uc.logger.Warn().
			Int64("user_id", actor.ID).
			Str("state", string(session.OnboardingState)).
			Msg("Unknown onboarding state, resetting")
		session.ResetOnboarding()
		if err := uc.saveSession(ctx, session); err != nil {
			return nil, err
		}
		return nil, shoperrors.ErrNoActiveDialogue
	}
}

func (uc *UseCase) acceptName(ctx context.Context, session *entities.Session, msg dto.IncomingMessage) (*dto.Reply, error) {
	name := strings.TrimSpace(msg.Text)
	if name == "" {
		return nil, shoperrors.ErrEmptyChannelName
	}
	if err := ValidateChannelKey(NormalizeKey(name)); err != nil {
		return nil, err
	}

	session.DraftName = name
	session.OnboardingState = entities.OnboardingAwaitingPrice
	if err := uc.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return &dto.Reply{Text: renderOnboardingPrice(name, uc.settings.CurrencySymbol)}, nil
}

func (uc *UseCase) acceptPrice(ctx context.Context, session *entities.Session, msg dto.IncomingMessage) (*dto.Reply, error) {
	price, err := ParsePrice(msg.Text)
	if err != nil {
		return nil, err
	}

	session.DraftPrice = price
	session.OnboardingState = entities.OnboardingAwaitingDemo
	if err := uc.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return &dto.Reply{Text: renderOnboardingDemo(price, uc.settings.CurrencySymbol)}, nil
}

func (uc *UseCase) acceptDemo(ctx context.Context, session *entities.Session, msg dto.IncomingMessage) (*dto.Reply, error) {
	link := strings.TrimSpace(msg.Text)
	if strings.EqualFold(link, consts.SkipDemo) {
		link = ""
	}

	session.DraftDemoLink = link
	session.OnboardingState = entities.OnboardingAwaitingForward
	if err := uc.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return &dto.Reply{Text: renderOnboardingForward()}, nil
}

// acceptForward validates the forwarded channel, mints its invite link and creates it.
// Every failure before creation keeps the dialogue in AwaitingForward
func (uc *UseCase) acceptForward(ctx context.Context, actor dto.Actor, session *entities.Session, msg dto.IncomingMessage) (*dto.Reply, error) {
	if msg.Forward == nil || msg.Forward.Kind != dto.ForwardFromChannel {
		return nil, shoperrors.ErrNotChannelForward
	}
	channelRef := strconv.FormatInt(msg.Forward.ChatID, 10)

	status, err := uc.access.GetMembershipStatus(ctx, channelRef)
	if err != nil {
		uc.logger.Warn().Err(err).Str("channel_ref", channelRef).Msg("Failed to check bot membership")
		if pkgerrors.IsProviderError(err) {
			return nil, err
		}
		return nil, pkgerrors.WrapProviderError(err, "failed to check bot membership in %s", channelRef)
	}
	if status != deps.MemberStatusAdministrator {
		return nil, fmt.Errorf("%w: status %s", shoperrors.ErrBotNotAdmin, status)
	}

	inviteLink, err := uc.access.CreateInviteLink(ctx, channelRef)
	if err != nil {
		uc.logger.Warn().Err(err).Str("channel_ref", channelRef).Msg("Failed to create invite link")
		if pkgerrors.IsProviderError(err) {
			return nil, err
		}
		return nil, pkgerrors.WrapProviderError(err, "failed to create invite link")
	}

	key := NormalizeKey(session.DraftName)
	ch, err := uc.CreateChannel(ctx, dto.NewChannel{
		Key:         key,
		Name:        session.DraftName,
		ExternalRef: channelRef,
		Price:       session.DraftPrice,
		DemoLink:    session.DraftDemoLink,
		InviteLink:  inviteLink,
		CreatedBy:   actor.ID,
	})
	if err != nil {
		if !pkgerrors.IsConflictError(err) {
			return nil, err
		}
		session.ResetOnboarding()
		if saveErr := uc.saveSession(ctx, session); saveErr != nil {
			return nil, saveErr
		}
		return nil, err
	}

	session.ResetOnboarding()
	if err := uc.saveSession(ctx, session); err != nil {
		return nil, err
	}

	return &dto.Reply{Text: renderChannelCreated(ch, uc.settings.CurrencySymbol)}, nil
}

func (uc *UseCase) saveSession(ctx context.Context, session *entities.Session) error {
	session.UpdatedAt = uc.now().UTC()
	return uc.repos.Sessions.Save(ctx, session)
}
