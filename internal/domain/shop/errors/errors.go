// Package errors contains domain-specific errors for the shop domain
package errors

import (
	pkgerrors "github.com/Alokchauhan110/Premium-Plan/pkg/errors"
)

// Domain errors for shop operations
var (
	ErrOfferNotFound        = pkgerrors.NewNotFoundError("offer not found")
	ErrChannelNotFound      = pkgerrors.NewNotFoundError("channel not found")
	ErrPaymentNotFound      = pkgerrors.NewNotFoundError("payment not found")
	ErrPlanNotFound         = pkgerrors.NewNotFoundError("all-access plan not found")
	ErrChannelKeyTaken      = pkgerrors.NewConflictError("channel key already exists")
	ErrNotAdmin             = pkgerrors.NewPermissionError("only administrators can do this")
	ErrPaymentNotSubmitted  = pkgerrors.NewStateError("payment is not awaiting review")
	ErrPaymentNotApproved   = pkgerrors.NewStateError("payment is not approved")
	ErrPaymentUnderReview   = pkgerrors.NewStateError("a payment for this plan is already under review")
	ErrAmbiguousPayment     = pkgerrors.NewStateError("more than one payment matches")
	ErrNoPendingCheckout    = pkgerrors.NewStateError("no checkout in progress")
	ErrNoActiveDialogue     = pkgerrors.NewStateError("no onboarding dialogue in progress")
	ErrEmptyChannelName     = pkgerrors.NewValidationError("channel name cannot be empty")
	ErrReservedChannelName  = pkgerrors.NewValidationError("channel name is reserved for the all-access plan, choose another one")
	ErrChannelNameTooLong   = pkgerrors.NewValidationError("channel name is too long, choose a shorter one")
	ErrInvalidPrice         = pkgerrors.NewValidationError("price must be a positive number")
	ErrNotChannelForward    = pkgerrors.NewValidationError("message is not forwarded from a channel")
	ErrBotNotAdmin          = pkgerrors.NewValidationError("bot is not an administrator of the channel")
	ErrUnsupportedProof     = pkgerrors.NewValidationError("payment proof must be a photo or a document")
	ErrInvalidPaymentRef    = pkgerrors.NewValidationError("invalid payment reference")
	ErrCallbackTooLong      = pkgerrors.NewValidationError("callback data exceeds 64 bytes")
	ErrUnknownCallback      = pkgerrors.NewValidationError("unknown callback data")
	ErrQueueDisabled        = pkgerrors.NewInternalError("notification queue is disabled")
)
