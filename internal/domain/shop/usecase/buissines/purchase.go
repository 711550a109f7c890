package buissines

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/consts"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/dto"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
	shoperrors "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/errors"
	pkgerrors "github.com/Alokchauhan110/Premium-Plan/pkg/errors"
)

// paymentHistoryLimit bounds the buyer's payment status listing
const paymentHistoryLimit = 10

// SelectOffer shows the details of an offer
func (uc *UseCase) SelectOffer(ctx context.Context, key string) (*dto.Reply, error) {
	offer, err := uc.GetOffer(ctx, key)
	if err != nil {
		return nil, err
	}
	return &dto.Reply{
		Text:     renderOffer(offer, uc.settings.CurrencySymbol),
		Keyboard: uc.offerKeyboard(offer),
	}, nil
}

// Checkout creates or reuses the buyer's pending payment for an offer and marks the session as awaiting proof
func (uc *UseCase) Checkout(ctx context.Context, actor dto.Actor, key string) (*dto.Reply, error) {
	offer, err := uc.GetOffer(ctx, key)
	if err != nil {
		return nil, err
	}

	underReview, err := uc.repos.Payments.FindByUserPlan(ctx, actor.ID, offer.Key, entities.PaymentStatusSubmitted)
	if err != nil {
		return nil, err
	}
	if len(underReview) > 0 {
		return nil, fmt.Errorf("%w: %s", shoperrors.ErrPaymentUnderReview, underReview[0].ID)
	}

	pending, err := uc.repos.Payments.FindByUserPlan(ctx, actor.ID, offer.Key, entities.PaymentStatusPending)
	if err != nil {
		return nil, err
	}

	var payment *entities.PendingPayment
	if len(pending) > 0 {
		payment = &pending[0]
		// the price may have changed since the first checkout
		if payment.Amount != offer.Price {
			if err := uc.repos.Payments.SetAmount(ctx, payment.ID, offer.Price); err != nil {
				return nil, err
			}
			payment.Amount = offer.Price
		}
	} else {
		payment = &entities.PendingPayment{
			ID:        uc.newID(),
			UserID:    actor.ID,
			PlanKey:   offer.Key,
			Amount:    offer.Price,
			Status:    entities.PaymentStatusPending,
			CreatedAt: uc.now().UTC(),
		}
		if err := uc.repos.Payments.Create(ctx, payment); err != nil {
			return nil, err
		}
	}

	session, err := uc.repos.Sessions.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	session.PendingPlanKey = offer.Key
	session.PendingPaymentID = payment.ID
	if err := uc.saveSession(ctx, session); err != nil {
		return nil, err
	}

	uc.metrics.RecordCheckout(offer.Key)
	uc.logger.Info().
		Int64("user_id", actor.ID).
		Str("plan_key", offer.Key).
		Str("payment_id", payment.ID).
		Bool("reused", len(pending) > 0).
		Msg("Checkout initiated")

	return &dto.Reply{
		Text:     renderCheckout(offer, payment, uc.settings.PaymentInstructions, uc.settings.CurrencySymbol),
		Keyboard: backToPlansKeyboard(),
	}, nil
}

// SubmitProof attaches a payment proof to the buyer's checkout and notifies administrators.
// It returns ErrNoPendingCheckout when the buyer has no checkout in progress
func (uc *UseCase) SubmitProof(ctx context.Context, actor dto.Actor, proof dto.Proof) (*dto.Reply, error) {
	if proof.FileID == "" || (proof.Kind != entities.ProofKindPhoto && proof.Kind != entities.ProofKindDocument) {
		return nil, shoperrors.ErrUnsupportedProof
	}

	session, err := uc.repos.Sessions.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !session.HasPendingCheckout() {
		return nil, shoperrors.ErrNoPendingCheckout
	}

	payment, err := uc.repos.Payments.GetByID(ctx, session.PendingPaymentID)
	if err != nil && !pkgerrors.IsNotFoundError(err) {
		return nil, err
	}
	if payment == nil || payment.Status != entities.PaymentStatusPending {
		session.ClearCheckout()
		if err := uc.saveSession(ctx, session); err != nil {
			return nil, err
		}
		return nil, shoperrors.ErrNoPendingCheckout
	}

	submittedAt := uc.now().UTC()
	if err := uc.repos.Payments.MarkSubmitted(ctx, payment.ID, proof, submittedAt); err != nil {
		return nil, err
	}

	uc.archiveProof(ctx, payment.ID, proof)

	session.ClearCheckout()
	if err := uc.saveSession(ctx, session); err != nil {
		return nil, err
	}

	uc.metrics.RecordProofSubmitted(payment.PlanKey)
	uc.publish(ctx, dto.ShopEvent{
		Type:      dto.EventPaymentSubmitted,
		PaymentID: payment.ID,
		UserID:    actor.ID,
		PlanKey:   payment.PlanKey,
		Amount:    payment.Amount,
	})

	planName := uc.planName(ctx, payment.PlanKey)
	uc.dispatchNotification(ctx, dto.ProofNotification{
		PaymentID:   payment.ID,
		UserID:      actor.ID,
		DisplayName: actor.DisplayName,
		Handle:      actor.Handle,
		PlanKey:     payment.PlanKey,
		PlanName:    planName,
		Amount:      payment.Amount,
		FileID:      proof.FileID,
		Kind:        proof.Kind,
		SubmittedAt: submittedAt,
	})

	uc.logger.Info().
		Int64("user_id", actor.ID).
		Str("plan_key", payment.PlanKey).
		Str("payment_id", payment.ID).
		Str("kind", string(proof.Kind)).
		Msg("Payment proof submitted")

	return &dto.Reply{Text: renderProofReceived(planName)}, nil
}

// archiveProof copies the proof to object storage when an archive is configured
func (uc *UseCase) archiveProof(ctx context.Context, paymentID string, proof dto.Proof) {
	if uc.archive == nil || uc.files == nil {
		return
	}

	file, err := uc.files.Download(ctx, proof.FileID)
	if err != nil {
		uc.logger.Warn().Err(err).Str("payment_id", paymentID).Msg("Failed to download payment proof")
		return
	}

	key, err := uc.archive.Archive(ctx, paymentID, file)
	if err != nil {
		uc.logger.Warn().Err(err).Str("payment_id", paymentID).Msg("Failed to archive payment proof")
		return
	}

	if err := uc.repos.Payments.SetArchiveKey(ctx, paymentID, key); err != nil {
		uc.logger.Warn().Err(err).Str("payment_id", paymentID).Msg("Failed to store proof archive key")
	}
}

// dispatchNotification hands the notification to the queue, falling back to inline delivery
func (uc *UseCase) dispatchNotification(ctx context.Context, n dto.ProofNotification) {
	if uc.queue != nil {
		err := uc.queue.EnqueueProofNotification(ctx, n)
		if err == nil {
			return
		}
		if !errors.Is(err, shoperrors.ErrQueueDisabled) {
			uc.logger.Warn().Err(err).Str("payment_id", n.PaymentID).Msg("Failed to enqueue admin notification, notifying inline")
		}
	}

	if err := uc.NotifyAdmins(ctx, n); err != nil {
		uc.logger.Error().Err(err).Str("payment_id", n.PaymentID).Msg("Admin notification failed")
	}
}

// NotifyAdmins sends the proof with ready-to-use decision commands to every administrator.
// Per-admin failures are logged; an error is returned only when no administrator was reached
func (uc *UseCase) NotifyAdmins(ctx context.Context, n dto.ProofNotification) error {
	caption := renderAdminNotification(n, uc.settings.CurrencySymbol)

	failed := 0
	for _, adminID := range uc.settings.AdminIDs {
		var err error
		if n.Kind == entities.ProofKindDocument {
			err = uc.messenger.SendDocument(ctx, adminID, n.FileID, caption)
		} else {
			err = uc.messenger.SendPhoto(ctx, adminID, n.FileID, caption)
		}
		if err != nil {
			failed++
			uc.logger.Error().Err(err).
				Int64("admin_id", adminID).
				Str("payment_id", n.PaymentID).
				Msg("Failed to notify admin")
		}
	}

	if len(uc.settings.AdminIDs) > 0 && failed == len(uc.settings.AdminIDs) {
		return fmt.Errorf("failed to notify any administrator about payment %s", n.PaymentID)
	}
	return nil
}

// ParsePaymentRef parses the arguments of /approve and /reject.
// One argument is a payment id, two arguments are a user id and a plan key
func ParsePaymentRef(args []string) (dto.PaymentRef, []string, error) {
	switch {
	case len(args) == 0:
		return dto.PaymentRef{}, nil, shoperrors.ErrInvalidPaymentRef
	case len(args) >= 2:
		if userID, err := parseUserID(args[0]); err == nil {
			return dto.PaymentRef{UserID: userID, PlanKey: args[1]}, args[2:], nil
		}
	}

	if _, err := parseUserID(args[0]); err == nil {
		return dto.PaymentRef{}, nil, fmt.Errorf("%w: a user id needs a plan key", shoperrors.ErrInvalidPaymentRef)
	}
	return dto.PaymentRef{PaymentID: args[0]}, args[1:], nil
}

func parseUserID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("user id must be positive: %d", id)
	}
	return id, nil
}

// resolvePayment finds the payment a reference points at
func (uc *UseCase) resolvePayment(ctx context.Context, ref dto.PaymentRef) (*entities.PendingPayment, error) {
	if ref.ByID() {
		return uc.repos.Payments.GetByID(ctx, ref.PaymentID)
	}

	planKey := ref.PlanKey
	if planKey == entities.LegacyAllAccessKey {
		planKey = entities.AllAccessKey
	}

	submitted, err := uc.repos.Payments.FindByUserPlan(ctx, ref.UserID, planKey, entities.PaymentStatusSubmitted)
	if err != nil {
		return nil, err
	}
	switch len(submitted) {
	case 1:
		return &submitted[0], nil
	case 0:
	default:
		return nil, fmt.Errorf("%w: user %d plan %s", shoperrors.ErrAmbiguousPayment, ref.UserID, planKey)
	}

	for _, status := range []entities.PaymentStatus{
		entities.PaymentStatusPending,
		entities.PaymentStatusApproved,
		entities.PaymentStatusRejected,
	} {
		others, err := uc.repos.Payments.FindByUserPlan(ctx, ref.UserID, planKey, status)
		if err != nil {
			return nil, err
		}
		if len(others) > 0 {
			return nil, fmt.Errorf("%w: user %d plan %s is %s", shoperrors.ErrPaymentNotSubmitted, ref.UserID, planKey, status)
		}
	}
	return nil, fmt.Errorf("%w: user %d plan %s", shoperrors.ErrPaymentNotFound, ref.UserID, planKey)
}

// Approve confirms a submitted payment, creates the subscription and delivers access.
// Grant and invoice failures are reported in the result and never undo the approval
func (uc *UseCase) Approve(ctx context.Context, admin dto.Actor, ref dto.PaymentRef) (*dto.ApprovalResult, error) {
	if err := uc.requireAdmin(admin); err != nil {
		return nil, err
	}

	payment, err := uc.resolvePayment(ctx, ref)
	if err != nil {
		return nil, err
	}
	if payment.Status != entities.PaymentStatusSubmitted {
		return nil, fmt.Errorf("%w: %s is %s", shoperrors.ErrPaymentNotSubmitted, payment.ID, payment.Status)
	}

	now := uc.now().UTC()
	sub := &entities.Subscription{
		UserID:           payment.UserID,
		PlanKey:          payment.PlanKey,
		StartAt:          now,
		EndAt:            now.Add(entities.SubscriptionPeriod),
		Active:           true,
		PaymentConfirmed: true,
	}
	if err := uc.repos.Payments.Approve(ctx, payment.ID, admin.ID, now, sub); err != nil {
		return nil, err
	}

	payment.Status = entities.PaymentStatusApproved
	payment.DecidedAt = &now
	decidedBy := admin.ID
	payment.DecidedBy = &decidedBy

	uc.metrics.RecordApproval(payment.PlanKey)
	uc.publish(ctx, dto.ShopEvent{
		Type:      dto.EventPaymentApproved,
		PaymentID: payment.ID,
		UserID:    payment.UserID,
		PlanKey:   payment.PlanKey,
		Amount:    payment.Amount,
		ActorID:   admin.ID,
	})

	uc.logger.Info().
		Int64("admin_id", admin.ID).
		Int64("user_id", payment.UserID).
		Str("plan_key", payment.PlanKey).
		Str("payment_id", payment.ID).
		Time("end_at", sub.EndAt).
		Msg("Payment approved")

	result, err := uc.deliver(ctx, payment, sub)
	if err != nil {
		return nil, fmt.Errorf("payment %s approved but access delivery failed, use %s: %w",
			payment.ID, consts.CommandRegrant.Slash(), err)
	}
	result.Message = renderApprovalSummary(result, "Payment approved", uc.settings.CurrencySymbol)
	return result, nil
}

// Regrant re-runs membership grants and the invoice of an approved payment
func (uc *UseCase) Regrant(ctx context.Context, admin dto.Actor, paymentID string) (*dto.ApprovalResult, error) {
	if err := uc.requireAdmin(admin); err != nil {
		return nil, err
	}

	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, shoperrors.ErrInvalidPaymentRef
	}

	payment, err := uc.repos.Payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != entities.PaymentStatusApproved {
		return nil, fmt.Errorf("%w: %s is %s", shoperrors.ErrPaymentNotApproved, payment.ID, payment.Status)
	}

	sub, err := uc.repos.Subscriptions.GetByPaymentID(ctx, payment.ID)
	if err != nil {
		return nil, err
	}

	result, err := uc.deliver(ctx, payment, sub)
	if err != nil {
		return nil, err
	}

	uc.logger.Info().
		Int64("admin_id", admin.ID).
		Str("payment_id", payment.ID).
		Int("failed_grants", len(result.FailedGrants())).
		Msg("Access re-granted")

	result.Message = renderApprovalSummary(result, "Access re-sent", uc.settings.CurrencySymbol)
	return result, nil
}

// deliver grants membership to every entitled channel and sends the invoice
func (uc *UseCase) deliver(ctx context.Context, payment *entities.PendingPayment, sub *entities.Subscription) (*dto.ApprovalResult, error) {
	result := &dto.ApprovalResult{Payment: payment, Subscription: sub}

	channels, planName, err := uc.entitledChannels(ctx, payment.PlanKey)
	if err != nil {
		return nil, err
	}
	result.PlanName = planName

	if len(channels) == 0 && payment.PlanKey != entities.AllAccessKey {
		uc.metrics.RecordGrantFailure(payment.PlanKey)
		result.Grants = append(result.Grants, dto.GrantResult{
			ChannelKey: payment.PlanKey,
			Err:        fmt.Errorf("%w: %s", shoperrors.ErrChannelNotFound, payment.PlanKey),
		})
	}

	for _, ch := range channels {
		grant := dto.GrantResult{
			ChannelKey:  ch.Key,
			ChannelName: ch.Name,
			InviteLink:  ch.InviteLink,
		}
		if err := uc.access.GrantMembership(ctx, ch.ExternalRef, payment.UserID); err != nil {
			grant.Err = err
			uc.metrics.RecordGrantFailure(ch.Key)
			uc.logger.Error().Err(err).
				Int64("user_id", payment.UserID).
				Str("channel_key", ch.Key).
				Str("payment_id", payment.ID).
				Msg("Failed to grant channel membership")
		}
		result.Grants = append(result.Grants, grant)
	}

	invoice := renderInvoice(planName, payment.Amount, sub.EndAt, result.Grants, uc.settings.CurrencySymbol)
	if err := uc.messenger.SendMessage(ctx, payment.UserID, invoice, nil); err != nil {
		result.InvoiceErr = err
		uc.logger.Error().Err(err).
			Int64("user_id", payment.UserID).
			Str("payment_id", payment.ID).
			Msg("Failed to send invoice")
		return result, nil
	}

	result.InvoiceSent = true
	sub.InvoiceSent = true
	if err := uc.repos.Subscriptions.MarkInvoiceSent(ctx, sub.ID); err != nil {
		uc.logger.Warn().Err(err).Str("payment_id", payment.ID).Msg("Failed to mark invoice sent")
	}
	return result, nil
}

// entitledChannels returns the channels a plan grants and the plan's display name.
// A single-channel plan grants its channel even after deactivation since the buyer already paid
func (uc *UseCase) entitledChannels(ctx context.Context, planKey string) ([]entities.Channel, string, error) {
	if planKey == entities.AllAccessKey {
		channels, err := uc.repos.Channels.ListActive(ctx)
		if err != nil {
			return nil, "", err
		}
		return channels, uc.planName(ctx, planKey), nil
	}

	ch, err := uc.repos.Channels.GetByKey(ctx, planKey)
	if err != nil {
		if pkgerrors.IsNotFoundError(err) {
			uc.logger.Error().Str("channel_key", planKey).Msg("Paid channel no longer exists")
			return nil, planKey, nil
		}
		return nil, "", err
	}
	return []entities.Channel{*ch}, ch.Name, nil
}

// Reject declines a submitted payment and tells the buyer why
func (uc *UseCase) Reject(ctx context.Context, admin dto.Actor, ref dto.PaymentRef, reason string) (*dto.Reply, error) {
	if err := uc.requireAdmin(admin); err != nil {
		return nil, err
	}

	payment, err := uc.resolvePayment(ctx, ref)
	if err != nil {
		return nil, err
	}
	if payment.Status != entities.PaymentStatusSubmitted {
		return nil, fmt.Errorf("%w: %s is %s", shoperrors.ErrPaymentNotSubmitted, payment.ID, payment.Status)
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = consts.DefaultRejectReason
	}

	if err := uc.repos.Payments.Reject(ctx, payment.ID, admin.ID, uc.now().UTC(), reason); err != nil {
		return nil, err
	}

	if err := uc.messenger.SendMessage(ctx, payment.UserID, renderRejected(reason), nil); err != nil {
		uc.logger.Warn().Err(err).
			Int64("user_id", payment.UserID).
			Str("payment_id", payment.ID).
			Msg("Failed to notify buyer about rejection")
	}

	uc.metrics.RecordRejection(payment.PlanKey)
	uc.publish(ctx, dto.ShopEvent{
		Type:      dto.EventPaymentRejected,
		PaymentID: payment.ID,
		UserID:    payment.UserID,
		PlanKey:   payment.PlanKey,
		Amount:    payment.Amount,
		ActorID:   admin.ID,
		Reason:    reason,
	})

	uc.logger.Info().
		Int64("admin_id", admin.ID).
		Int64("user_id", payment.UserID).
		Str("payment_id", payment.ID).
		Str("reason", reason).
		Msg("Payment rejected")

	return &dto.Reply{Text: renderRejectSummary(payment, reason)}, nil
}

// MySubscriptions lists the buyer's subscriptions with derived expiry
func (uc *UseCase) MySubscriptions(ctx context.Context, actor dto.Actor) (*dto.Reply, error) {
	subs, err := uc.repos.Subscriptions.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return &dto.Reply{Text: renderNoSubscriptions(), Keyboard: showPlansKeyboard()}, nil
	}

	names, err := uc.planNames(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.Reply{Text: renderSubscriptions(subs, names, uc.now().UTC())}, nil
}

// PaymentStatus lists the buyer's latest payments
func (uc *UseCase) PaymentStatus(ctx context.Context, actor dto.Actor) (*dto.Reply, error) {
	payments, err := uc.repos.Payments.ListByUser(ctx, actor.ID, paymentHistoryLimit)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return &dto.Reply{Text: renderNoPayments(), Keyboard: showPlansKeyboard()}, nil
	}

	names, err := uc.planNames(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.Reply{Text: renderPayments(payments, names, uc.settings.CurrencySymbol)}, nil
}

// ListPendingPayments returns submitted payments joined with their buyers
func (uc *UseCase) ListPendingPayments(ctx context.Context, admin dto.Actor) ([]dto.PendingPaymentView, error) {
	if err := uc.requireAdmin(admin); err != nil {
		return nil, err
	}

	payments, err := uc.repos.Payments.ListByStatus(ctx, entities.PaymentStatusSubmitted)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.UserID)
	}
	users, err := uc.repos.Users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names, err := uc.planNames(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.PendingPaymentView, 0, len(payments))
	for _, p := range payments {
		view := dto.PendingPaymentView{Payment: p, PlanName: names[p.PlanKey]}
		if view.PlanName == "" {
			view.PlanName = p.PlanKey
		}
		if u, ok := users[p.UserID]; ok {
			view.DisplayName = u.DisplayName
			view.Handle = u.Handle
		}
		views = append(views, view)
	}
	return views, nil
}

// PendingPayments renders the payments awaiting review
func (uc *UseCase) PendingPayments(ctx context.Context, admin dto.Actor) (*dto.Reply, error) {
	views, err := uc.ListPendingPayments(ctx, admin)
	if err != nil {
		return nil, err
	}
	return &dto.Reply{Text: renderPendingPayments(views, uc.settings.CurrencySymbol)}, nil
}

// planName returns the display name of a plan key, the key itself when unknown
func (uc *UseCase) planName(ctx context.Context, planKey string) string {
	names, err := uc.planNames(ctx)
	if err != nil {
		uc.logger.Warn().Err(err).Str("plan_key", planKey).Msg("Failed to resolve plan name")
		return planKey
	}
	if name, ok := names[planKey]; ok && name != "" {
		return name
	}
	return planKey
}
