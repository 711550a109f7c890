// Package dto contains data transfer objects for the shop domain
package dto

import (
	"time"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
)

// Actor identifies the Telegram user behind an update
type Actor struct {
	ID          int64
	DisplayName string
	Handle      string
}

// Button is an inline keyboard button. Exactly one of CallbackData or URL is set
type Button struct {
	Text         string
	CallbackData string
	URL          string
}

// Keyboard is either an inline keyboard attached to a message or a reply keyboard
type Keyboard struct {
	Inline [][]Button
	Reply  [][]string
}

// Reply is a message addressed to the actor who triggered an operation
type Reply struct {
	Text     string
	Keyboard *Keyboard
}

// ForwardKind is the origin type of a forwarded message
type ForwardKind string

const (
	ForwardFromChannel ForwardKind = "channel"
	ForwardFromUser    ForwardKind = "user"
	ForwardFromChat    ForwardKind = "chat"
	ForwardHidden      ForwardKind = "hidden_user"
)

// ForwardOrigin describes where a forwarded message came from
type ForwardOrigin struct {
	Kind     ForwardKind
	ChatID   int64
	Title    string
	Username string
}

// IncomingMessage is free-form input consumed by the onboarding dialogue
type IncomingMessage struct {
	Text    string
	Forward *ForwardOrigin
}

// Proof is a payment proof uploaded by a buyer
type Proof struct {
	FileID string
	Kind   entities.ProofKind
}

// File is downloaded file content
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ProofNotification carries everything needed to notify administrators about a submitted proof
type ProofNotification struct {
	PaymentID   string             `json:"payment_id"`
	UserID      int64              `json:"user_id"`
	DisplayName string             `json:"display_name"`
	Handle      string             `json:"handle"`
	PlanKey     string             `json:"plan_key"`
	PlanName    string             `json:"plan_name"`
	Amount      float64            `json:"amount"`
	FileID      string             `json:"file_id"`
	Kind        entities.ProofKind `json:"kind"`
	SubmittedAt time.Time          `json:"submitted_at"`
}

// PaymentRef addresses a payment either by id or by (user, plan)
type PaymentRef struct {
	PaymentID string
	UserID    int64
	PlanKey   string
}

// ByID reports whether the reference carries a payment id
func (r PaymentRef) ByID() bool {
	return r.PaymentID != ""
}

// GrantResult is the outcome of granting access to one channel
type GrantResult struct {
	ChannelKey  string
	ChannelName string
	InviteLink  string
	Err         error
}

// ApprovalResult is the outcome of Approve and Regrant
type ApprovalResult struct {
	Payment      *entities.PendingPayment
	Subscription *entities.Subscription
	PlanName     string
	Grants       []GrantResult
	InvoiceSent  bool
	InvoiceErr   error
	Message      string
}

// FailedGrants returns the grants that failed
func (r *ApprovalResult) FailedGrants() []GrantResult {
	var failed []GrantResult
	for _, g := range r.Grants {
		if g.Err != nil {
			failed = append(failed, g)
		}
	}
	return failed
}

// NewChannel is the input of channel creation
type NewChannel struct {
	Key         string
	Name        string
	ExternalRef string
	Price       float64
	DemoLink    string
	InviteLink  string
	CreatedBy   int64
}

// PendingPaymentView is a submitted payment joined with its buyer
type PendingPaymentView struct {
	Payment     entities.PendingPayment
	DisplayName string
	Handle      string
	PlanName    string
}

// Shop event types published to Kafka
const (
	EventPaymentSubmitted = "payment.submitted"
	EventPaymentApproved  = "payment.approved"
	EventPaymentRejected  = "payment.rejected"
	EventChannelCreated   = "channel.created"
)

// ShopEvent is a lifecycle event published to the events topic
type ShopEvent struct {
	Type       string    `json:"type"`
	PaymentID  string    `json:"payment_id,omitempty"`
	UserID     int64     `json:"user_id,omitempty"`
	PlanKey    string    `json:"plan_key,omitempty"`
	Amount     float64   `json:"amount,omitempty"`
	ActorID    int64     `json:"actor_id,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
