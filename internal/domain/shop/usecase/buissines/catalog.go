package buissines

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/callback"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/dto"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
	shoperrors "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/errors"
	pkgerrors "github.com/Alokchauhan110/Premium-Plan/pkg/errors"
)

// NormalizeKey derives a channel key from its display name
func NormalizeKey(name string) string {
	return strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(name))
}

// ValidateChannelKey checks that key is not reserved and fits into offer and purchase callbacks
func ValidateChannelKey(key string) error {
	if entities.IsReservedKey(key) {
		return fmt.Errorf("%w: %s", shoperrors.ErrReservedChannelName, key)
	}
	for _, data := range []callback.Data{callback.SelectOffer(key), callback.Purchase(key)} {
		if _, err := callback.Encode(data); err != nil {
			return fmt.Errorf("%w: %s", shoperrors.ErrChannelNameTooLong, key)
		}
	}
	return nil
}

// ParsePrice parses a positive finite price
func ParsePrice(text string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, shoperrors.ErrInvalidPrice
	}
	return price, nil
}

// EnsureAllAccessPlan seeds the all-access plan on first start
func (uc *UseCase) EnsureAllAccessPlan(ctx context.Context) error {
	plan := &entities.AllAccessPlan{
		Name:   uc.settings.AllAccessName,
		Price:  uc.settings.AllAccessPrice,
		Active: true,
	}
	if err := uc.repos.Plans.EnsureSeeded(ctx, plan); err != nil {
		return fmt.Errorf("failed to ensure all-access plan: %w", err)
	}

	uc.logger.Info().
		Str("name", plan.Name).
		Float64("price", plan.Price).
		Bool("active", plan.Active).
		Msg("All-access plan ready")
	return nil
}

// ListOffers returns active channels in creation order followed by the all-access plan when active
func (uc *UseCase) ListOffers(ctx context.Context) ([]entities.Offer, error) {
	channels, err := uc.repos.Channels.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	offers := make([]entities.Offer, 0, len(channels)+1)
	for _, ch := range channels {
		offers = append(offers, channelOffer(ch))
	}

	plan, err := uc.allAccessPlan(ctx)
	if err != nil {
		return nil, err
	}
	if plan != nil && plan.Active {
		offers = append(offers, planOffer(plan))
	}

	return offers, nil
}

// GetOffer returns an active offer by key
func (uc *UseCase) GetOffer(ctx context.Context, key string) (*entities.Offer, error) {
	if key == entities.AllAccessKey {
		plan, err := uc.allAccessPlan(ctx)
		if err != nil {
			return nil, err
		}
		if plan == nil || !plan.Active {
			return nil, fmt.Errorf("%w: %s", shoperrors.ErrOfferNotFound, key)
		}
		offer := planOffer(plan)
		return &offer, nil
	}

	ch, err := uc.repos.Channels.GetByKey(ctx, key)
	if err != nil {
		if pkgerrors.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", shoperrors.ErrOfferNotFound, key)
		}
		return nil, err
	}
	if !ch.Active {
		return nil, fmt.Errorf("%w: %s", shoperrors.ErrOfferNotFound, key)
	}

	offer := channelOffer(*ch)
	return &offer, nil
}

// CreateChannel stores a channel produced by onboarding
func (uc *UseCase) CreateChannel(ctx context.Context, in dto.NewChannel) (*entities.Channel, error) {
	if entities.IsReservedKey(in.Key) {
		return nil, fmt.Errorf("%w: %s", shoperrors.ErrChannelKeyTaken, in.Key)
	}
	if err := ValidateChannelKey(in.Key); err != nil {
		return nil, err
	}

	ch := &entities.Channel{
		Key:         in.Key,
		Name:        in.Name,
		ExternalRef: in.ExternalRef,
		Price:       in.Price,
		DemoLink:    in.DemoLink,
		InviteLink:  in.InviteLink,
		Active:      true,
		CreatedAt:   uc.now().UTC(),
		CreatedBy:   in.CreatedBy,
	}
	if err := uc.repos.Channels.Create(ctx, ch); err != nil {
		return nil, err
	}

	uc.metrics.RecordChannelCreated()
	uc.publish(ctx, dto.ShopEvent{Type: dto.EventChannelCreated, PlanKey: ch.Key, ActorID: in.CreatedBy, Amount: ch.Price})

	uc.logger.Info().
		Str("channel_key", ch.Key).
		Str("channel_ref", ch.ExternalRef).
		Int64("created_by", in.CreatedBy).
		Msg("Channel created")

	return ch, nil
}

// Browse lists the offers with an inline keyboard
func (uc *UseCase) Browse(ctx context.Context) (*dto.Reply, error) {
	offers, err := uc.ListOffers(ctx)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return &dto.Reply{Text: renderNoOffers()}, nil
	}
	return &dto.Reply{
		Text:     renderOffers(offers, uc.settings.CurrencySymbol),
		Keyboard: uc.offersKeyboard(offers),
	}, nil
}

// DemoLinks lists active offers that carry a demo link
func (uc *UseCase) DemoLinks(ctx context.Context) (*dto.Reply, error) {
	offers, err := uc.ListOffers(ctx)
	if err != nil {
		return nil, err
	}

	var withDemo []entities.Offer
	for _, o := range offers {
		if o.DemoLink != "" {
			withDemo = append(withDemo, o)
		}
	}
	return &dto.Reply{Text: renderDemoLinks(withDemo)}, nil
}

// ListChannels returns every channel including inactive ones
func (uc *UseCase) ListChannels(ctx context.Context, actor dto.Actor) ([]entities.Channel, error) {
	if err := uc.requireAdmin(actor); err != nil {
		return nil, err
	}
	return uc.repos.Channels.ListAll(ctx)
}

// ManageChannels renders every channel for administrators
func (uc *UseCase) ManageChannels(ctx context.Context, actor dto.Actor) (*dto.Reply, error) {
	channels, err := uc.ListChannels(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &dto.Reply{Text: renderManageChannels(channels, uc.settings.CurrencySymbol)}, nil
}

// SetChannelActive shows or hides a channel from the offers
func (uc *UseCase) SetChannelActive(ctx context.Context, actor dto.Actor, key string, active bool) (*dto.Reply, error) {
	if err := uc.requireAdmin(actor); err != nil {
		return nil, err
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, pkgerrors.NewValidationError("channel key is required")
	}
	if err := uc.repos.Channels.SetActive(ctx, key, active); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Int64("admin_id", actor.ID).
		Str("channel_key", key).
		Bool("active", active).
		Msg("Channel visibility changed")

	return &dto.Reply{Text: renderChannelToggled(key, active)}, nil
}

// AllAccessStatus renders the all-access plan for administrators
func (uc *UseCase) AllAccessStatus(ctx context.Context, actor dto.Actor) (*dto.Reply, error) {
	if err := uc.requireAdmin(actor); err != nil {
		return nil, err
	}
	plan, err := uc.repos.Plans.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.Reply{Text: renderAllAccessStatus(plan, uc.settings.CurrencySymbol)}, nil
}

// SetAllAccessActive toggles the all-access plan
func (uc *UseCase) SetAllAccessActive(ctx context.Context, actor dto.Actor, active bool) (*dto.Reply, error) {
	if err := uc.requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := uc.repos.Plans.SetActive(ctx, active); err != nil {
		return nil, err
	}

	uc.logger.Info().Int64("admin_id", actor.ID).Bool("active", active).Msg("All-access plan toggled")
	return uc.AllAccessStatus(ctx, actor)
}

// SetAllAccessPrice changes the all-access price
func (uc *UseCase) SetAllAccessPrice(ctx context.Context, actor dto.Actor, priceText string) (*dto.Reply, error) {
	if err := uc.requireAdmin(actor); err != nil {
		return nil, err
	}
	price, err := ParsePrice(priceText)
	if err != nil {
		return nil, err
	}
	if err := uc.repos.Plans.SetPrice(ctx, price); err != nil {
		return nil, err
	}

	uc.logger.Info().Int64("admin_id", actor.ID).Float64("price", price).Msg("All-access price changed")
	return uc.AllAccessStatus(ctx, actor)
}

// allAccessPlan returns the plan or nil when it was never seeded
func (uc *UseCase) allAccessPlan(ctx context.Context) (*entities.AllAccessPlan, error) {
	plan, err := uc.repos.Plans.Get(ctx)
	if err != nil {
		if errors.Is(err, shoperrors.ErrPlanNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return plan, nil
}

// planNames maps every known plan key to its display name, inactive channels included
func (uc *UseCase) planNames(ctx context.Context) (map[string]string, error) {
	channels, err := uc.repos.Channels.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(channels)+1)
	for _, ch := range channels {
		names[ch.Key] = ch.Name
	}

	names[entities.AllAccessKey] = uc.settings.AllAccessName
	plan, err := uc.allAccessPlan(ctx)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		names[entities.AllAccessKey] = plan.Name
	}
	return names, nil
}

func channelOffer(ch entities.Channel) entities.Offer {
	return entities.Offer{
		Key:      ch.Key,
		Name:     ch.Name,
		Price:    ch.Price,
		DemoLink: ch.DemoLink,
	}
}

func planOffer(plan *entities.AllAccessPlan) entities.Offer {
	return entities.Offer{
		Key:       entities.AllAccessKey,
		Name:      plan.Name,
		Price:     plan.Price,
		AllAccess: true,
	}
}
