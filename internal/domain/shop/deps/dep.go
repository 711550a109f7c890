// Package deps contains interface definitions for the shop domain dependencies
package deps

import (
	"context"
	"time"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/dto"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
)

// UserRepository defines interface for user data access
type UserRepository interface {
	// Upsert creates the user or refreshes display name and handle, keeping joined_at
	Upsert(ctx context.Context, user *entities.User) error

	// GetByIDs returns the users with the given ids keyed by id
	GetByIDs(ctx context.Context, ids []int64) (map[int64]entities.User, error)
}

// ChannelRepository defines interface for channel data access
type ChannelRepository interface {
	// Create inserts a channel, returning a ConflictError when the key exists
	Create(ctx context.Context, channel *entities.Channel) error

	// ListActive returns active channels in creation order
	ListActive(ctx context.Context) ([]entities.Channel, error)

	// ListAll returns every channel in creation order
	ListAll(ctx context.Context) ([]entities.Channel, error)

	// GetByKey returns a channel by key regardless of its active flag
	GetByKey(ctx context.Context, key string) (*entities.Channel, error)

	// SetActive toggles the active flag of a channel
	SetActive(ctx context.Context, key string, active bool) error
}

// PlanRepository defines interface for the all-access plan singleton
type PlanRepository interface {
	// EnsureSeeded inserts plan unless a row already exists
	EnsureSeeded(ctx context.Context, plan *entities.AllAccessPlan) error

	// Get returns the singleton plan
	Get(ctx context.Context) (*entities.AllAccessPlan, error)

	// SetActive toggles the plan
	SetActive(ctx context.Context, active bool) error

	// SetPrice changes the plan price
	SetPrice(ctx context.Context, price float64) error
}

// SubscriptionRepository defines interface for subscription data access
type SubscriptionRepository interface {
	// ListByUser returns the user's subscriptions, latest end date first
	ListByUser(ctx context.Context, userID int64) ([]entities.Subscription, error)

	// GetByPaymentID returns the subscription created by a payment
	GetByPaymentID(ctx context.Context, paymentID string) (*entities.Subscription, error)

	// MarkInvoiceSent flags the invoice of a subscription as delivered
	MarkInvoiceSent(ctx context.Context, id uint) error
}

// PaymentRepository defines interface for pending payment data access
type PaymentRepository interface {
	// Create inserts a new payment
	Create(ctx context.Context, payment *entities.PendingPayment) error

	// GetByID returns a payment by id
	GetByID(ctx context.Context, id string) (*entities.PendingPayment, error)

	// FindByUserPlan returns the user's payments for a plan in the given status
	FindByUserPlan(ctx context.Context, userID int64, planKey string, status entities.PaymentStatus) ([]entities.PendingPayment, error)

	// ListByStatus returns payments in a status, newest first
	ListByStatus(ctx context.Context, status entities.PaymentStatus) ([]entities.PendingPayment, error)

	// ListByUser returns the user's payments, newest first
	ListByUser(ctx context.Context, userID int64, limit int) ([]entities.PendingPayment, error)

	// MarkSubmitted moves a pending payment to submitted with its proof
	MarkSubmitted(ctx context.Context, id string, proof dto.Proof, at time.Time) error

	// SetAmount reprices a payment that is still pending
	SetAmount(ctx context.Context, id string, amount float64) error

	// SetArchiveKey stores where the proof was archived
	SetArchiveKey(ctx context.Context, id, key string) error

	// Approve moves a submitted payment to approved and inserts subscription in one transaction
	Approve(ctx context.Context, id string, adminID int64, at time.Time, subscription *entities.Subscription) error

	// Reject moves a submitted payment to rejected
	Reject(ctx context.Context, id string, adminID int64, at time.Time, reason string) error
}

// SessionRepository defines interface for per-user session persistence
type SessionRepository interface {
	// Get returns the user's session, an idle one when none is stored
	Get(ctx context.Context, userID int64) (*entities.Session, error)

	// Save stores the session
	Save(ctx context.Context, session *entities.Session) error
}

// Repositories groups the store of the shop domain
type Repositories struct {
	Users         UserRepository
	Channels      ChannelRepository
	Plans         PlanRepository
	Subscriptions SubscriptionRepository
	Payments      PaymentRepository
	Sessions      SessionRepository
}

// Messenger sends chat messages on behalf of the bot
type Messenger interface {
	// SendMessage sends an HTML message with an optional keyboard
	SendMessage(ctx context.Context, chatID int64, text string, keyboard *dto.Keyboard) error

	// EditMessage replaces the text and inline keyboard of a sent message
	EditMessage(ctx context.Context, chatID int64, messageID int, text string, keyboard *dto.Keyboard) error

	// SendPhoto sends a photo by Telegram file id
	SendPhoto(ctx context.Context, chatID int64, fileRef, caption string) error

	// SendDocument sends a document by Telegram file id
	SendDocument(ctx context.Context, chatID int64, fileRef, caption string) error

	// AnswerCallback acknowledges a callback query
	AnswerCallback(ctx context.Context, callbackID string) error
}

// MemberStatus is the membership status of a user in a channel
type MemberStatus string

const (
	MemberStatusOwner         MemberStatus = "creator"
	MemberStatusAdministrator MemberStatus = "administrator"
	MemberStatusMember        MemberStatus = "member"
	MemberStatusRestricted    MemberStatus = "restricted"
	MemberStatusLeft          MemberStatus = "left"
	MemberStatusBanned        MemberStatus = "kicked"
)

// AccessProvider manages channel membership through the chat platform
type AccessProvider interface {
	// GetMembershipStatus returns the bot's own status in the channel
	GetMembershipStatus(ctx context.Context, channelRef string) (MemberStatus, error)

	// CreateInviteLink mints an invite link for the channel
	CreateInviteLink(ctx context.Context, channelRef string) (string, error)

	// GrantMembership lifts any ban so the user can join through the invite link
	GrantMembership(ctx context.Context, channelRef string, userID int64) error
}

// FileDownloader fetches uploaded files from the chat platform
type FileDownloader interface {
	Download(ctx context.Context, fileID string) (*dto.File, error)
}

// ProofArchive stores payment proofs outside the chat platform
type ProofArchive interface {
	// Archive stores file under the payment and returns the object key
	Archive(ctx context.Context, paymentID string, file *dto.File) (string, error)
}

// EventPublisher publishes shop lifecycle events
type EventPublisher interface {
	Publish(ctx context.Context, event dto.ShopEvent) error
}

// NotificationQueue hands admin notifications to the fan-out worker
type NotificationQueue interface {
	EnqueueProofNotification(ctx context.Context, notification dto.ProofNotification) error
}

// AdminNotifier delivers a proof notification to every administrator
type AdminNotifier interface {
	NotifyAdmins(ctx context.Context, notification dto.ProofNotification) error
}

// UserLocker serializes the updates of one user
type UserLocker interface {
	// Lock blocks until the user's lock is held or ctx is done
	Lock(ctx context.Context, userID int64) (unlock func(), err error)
}

// ShopMetrics records shop business metrics
type ShopMetrics interface {
	RecordCheckout(planKey string)
	RecordProofSubmitted(planKey string)
	RecordApproval(planKey string)
	RecordRejection(planKey string)
	RecordGrantFailure(channelKey string)
	RecordChannelCreated()
}
