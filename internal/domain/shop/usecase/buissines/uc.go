// Package buissines contains business logic for the shop domain
package buissines

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/deps"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/dto"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
	shoperrors "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/errors"
)

// Settings holds the shop configuration used by the use case
type Settings struct {
	AdminIDs            []int64
	AllAccessName       string
	AllAccessPrice      float64
	CurrencySymbol      string
	PaymentInstructions string
}

// Dependencies groups the collaborators of the use case.
// Archive, Files and Queue may be nil
type Dependencies struct {
	Repos     *deps.Repositories
	Messenger deps.Messenger
	Access    deps.AccessProvider
	Files     deps.FileDownloader
	Archive   deps.ProofArchive
	Events    deps.EventPublisher
	Queue     deps.NotificationQueue
	Metrics   deps.ShopMetrics
}

// UseCase contains business logic for catalog, onboarding and purchase operations
type UseCase struct {
	repos     *deps.Repositories
	messenger deps.Messenger
	access    deps.AccessProvider
	files     deps.FileDownloader
	archive   deps.ProofArchive
	events    deps.EventPublisher
	queue     deps.NotificationQueue
	metrics   deps.ShopMetrics
	settings  Settings
	admins    map[int64]struct{}
	now       func() time.Time
	newID     func() string
	logger    zerolog.Logger
}

// NewUseCase creates a new UseCase instance
func NewUseCase(d Dependencies, settings Settings, logger zerolog.Logger) *UseCase {
	admins := make(map[int64]struct{}, len(settings.AdminIDs))
	for _, id := range settings.AdminIDs {
		admins[id] = struct{}{}
	}

	return &UseCase{
		repos:     d.Repos,
		messenger: d.Messenger,
		access:    d.Access,
		files:     d.Files,
		archive:   d.Archive,
		events:    d.Events,
		queue:     d.Queue,
		metrics:   d.Metrics,
		settings:  settings,
		admins:    admins,
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    logger,
	}
}

// IsAdmin reports whether userID is a configured administrator
func (uc *UseCase) IsAdmin(userID int64) bool {
	_, ok := uc.admins[userID]
	return ok
}

func (uc *UseCase) requireAdmin(actor dto.Actor) error {
	if !uc.IsAdmin(actor.ID) {
		uc.logger.Warn().Int64("user_id", actor.ID).Msg("Non-admin attempted an admin operation")
		return shoperrors.ErrNotAdmin
	}
	return nil
}

// TouchUser records the actor, refreshing display name and handle
func (uc *UseCase) TouchUser(ctx context.Context, actor dto.Actor) error {
	user := &entities.User{
		ID:          actor.ID,
		DisplayName: actor.DisplayName,
		Handle:      actor.Handle,
		JoinedAt:    uc.now().UTC(),
		Active:      true,
	}
	if err := uc.repos.Users.Upsert(ctx, user); err != nil {
		return fmt.Errorf("failed to touch user: %w", err)
	}
	return nil
}

// Start handles /start
func (uc *UseCase) Start(ctx context.Context, actor dto.Actor) (*dto.Reply, error) {
	uc.logger.Info().
		Int64("user_id", actor.ID).
		Str("handle", actor.Handle).
		Msg("User started bot")

	if uc.IsAdmin(actor.ID) {
		return &dto.Reply{Text: renderAdminWelcome(actor), Keyboard: adminKeyboard()}, nil
	}
	return &dto.Reply{Text: renderWelcome(actor), Keyboard: mainKeyboard()}, nil
}

// Help handles /help
func (uc *UseCase) Help(ctx context.Context, actor dto.Actor) (*dto.Reply, error) {
	return &dto.Reply{Text: renderHelp(uc.IsAdmin(actor.ID))}, nil
}

// MainMenu returns the inline main menu
func (uc *UseCase) MainMenu(ctx context.Context) (*dto.Reply, error) {
	return &dto.Reply{Text: renderMainMenu(), Keyboard: mainMenuInline()}, nil
}

// Support tells the actor how to reach the administrators
func (uc *UseCase) Support(ctx context.Context) (*dto.Reply, error) {
	return &dto.Reply{Text: renderSupport(len(uc.settings.AdminIDs) > 0)}, nil
}

// Health answers /health
func (uc *UseCase) Health(ctx context.Context) (*dto.Reply, error) {
	return &dto.Reply{Text: "✅ Bot is running healthy!"}, nil
}

// publish sends an event, logging failures since events are informational
func (uc *UseCase) publish(ctx context.Context, event dto.ShopEvent) {
	event.OccurredAt = uc.now().UTC()
	if err := uc.events.Publish(ctx, event); err != nil {
		uc.logger.Warn().Err(err).
			Str("type", event.Type).
			Str("payment_id", event.PaymentID).
			Msg("Failed to publish shop event")
	}
}
