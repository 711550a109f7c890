// Package entities contains domain entities for the shop domain
package entities

import (
	"time"
)

// AllAccessKey is the reserved offer key of the all-access plan
const AllAccessKey = "all-access"

// LegacyAllAccessKey is the key older callbacks and admin commands use for the all-access plan
const LegacyAllAccessKey = "server_premium"

// IsReservedKey reports whether key addresses the all-access plan and can't be a channel key
func IsReservedKey(key string) bool {
	return key == AllAccessKey || key == LegacyAllAccessKey
}

// SubscriptionPeriod is the fixed lifetime of a subscription
const SubscriptionPeriod = 30 * 24 * time.Hour

// User represents a Telegram user who interacted with the bot
type User struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false"`
	DisplayName string    `gorm:"type:varchar(255)"`
	Handle      string    `gorm:"type:varchar(255)"`
	JoinedAt    time.Time `gorm:"not null"`
	Active      bool      `gorm:"not null;default:true"`
}

func (User) TableName() string {
	return "users"
}

// Channel represents a private channel sold as an offer
type Channel struct {
	ID          uint      `gorm:"primaryKey"`
	Key         string    `gorm:"column:channel_key;type:varchar(255);uniqueIndex;not null"`
	Name        string    `gorm:"type:varchar(255);not null"`
	ExternalRef string    `gorm:"column:external_channel_ref;type:varchar(64);not null"`
	Price       float64   `gorm:"not null"`
	DemoLink    string    `gorm:"type:text"`
	InviteLink  string    `gorm:"type:text;not null"`
	Active      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
	CreatedBy   int64     `gorm:"not null"`
}

func (Channel) TableName() string {
	return "channels"
}

// AllAccessPlan is the singleton plan granting every active channel
type AllAccessPlan struct {
	ID                  uint     `gorm:"primaryKey"`
	Name                string   `gorm:"type:varchar(255);not null"`
	Price               float64  `gorm:"not null"`
	IncludedChannelKeys []string `gorm:"serializer:json;type:text"`
	Active              bool     `gorm:"not null;default:true"`
}

func (AllAccessPlan) TableName() string {
	return "all_access_plans"
}

// Subscription is a 30 day entitlement created by an approved payment
type Subscription struct {
	ID               uint      `gorm:"primaryKey"`
	PaymentID        string    `gorm:"type:varchar(36);uniqueIndex;not null"`
	UserID           int64     `gorm:"index;not null"`
	PlanKey          string    `gorm:"type:varchar(255);not null"`
	StartAt          time.Time `gorm:"not null"`
	EndAt            time.Time `gorm:"not null"`
	Active           bool      `gorm:"not null;default:true"`
	PaymentConfirmed bool      `gorm:"not null;default:false"`
	InvoiceSent      bool      `gorm:"not null;default:false"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// Expired reports whether the subscription ended before now
func (s *Subscription) Expired(now time.Time) bool {
	return !now.Before(s.EndAt)
}

// DaysLeft returns the number of whole days until expiry, zero once expired
func (s *Subscription) DaysLeft(now time.Time) int {
	if s.Expired(now) {
		return 0
	}
	return int(s.EndAt.Sub(now).Hours() / 24)
}

// PaymentStatus is the lifecycle state of a pending payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSubmitted PaymentStatus = "submitted"
	PaymentStatusApproved  PaymentStatus = "approved"
	PaymentStatusRejected  PaymentStatus = "rejected"
)

// ProofKind is the kind of file a buyer uploaded as payment proof
type ProofKind string

const (
	ProofKindPhoto    ProofKind = "photo"
	ProofKindDocument ProofKind = "document"
)

// PendingPayment tracks a checkout from creation to an admin decision
type PendingPayment struct {
	ID              string        `gorm:"type:varchar(36);primaryKey"`
	UserID          int64         `gorm:"index;not null"`
	PlanKey         string        `gorm:"type:varchar(255);not null"`
	Amount          float64       `gorm:"not null"`
	ProofReference  string        `gorm:"type:text"`
	ProofKind       ProofKind     `gorm:"type:varchar(16)"`
	ProofArchiveKey string        `gorm:"type:text"`
	Status          PaymentStatus `gorm:"type:varchar(16);index;not null"`
	CreatedAt       time.Time     `gorm:"not null"`
	SubmittedAt     *time.Time
	DecidedAt       *time.Time
	DecidedBy       *int64
	RejectReason    string `gorm:"type:text"`
}

func (PendingPayment) TableName() string {
	return "pending_payments"
}

// OnboardingState is the position of an admin in the channel onboarding dialogue
type OnboardingState string

const (
	OnboardingIdle            OnboardingState = "idle"
	OnboardingAwaitingName    OnboardingState = "awaiting_name"
	OnboardingAwaitingPrice   OnboardingState = "awaiting_price"
	OnboardingAwaitingDemo    OnboardingState = "awaiting_demo"
	OnboardingAwaitingForward OnboardingState = "awaiting_forward"
)

// Session is the persisted per-user conversation state
type Session struct {
	UserID           int64           `gorm:"primaryKey;autoIncrement:false"`
	PendingPlanKey   string          `gorm:"type:varchar(255)"`
	PendingPaymentID string          `gorm:"type:varchar(36)"`
	OnboardingState  OnboardingState `gorm:"type:varchar(32);not null;default:idle"`
	DraftName        string          `gorm:"type:varchar(255)"`
	DraftPrice       float64
	DraftDemoLink    string `gorm:"type:text"`
	UpdatedAt        time.Time
}

func (Session) TableName() string {
	return "sessions"
}

// HasPendingCheckout reports whether the session carries a checkout marker
func (s *Session) HasPendingCheckout() bool {
	return s.PendingPaymentID != ""
}

// ClearCheckout drops the checkout marker
func (s *Session) ClearCheckout() {
	s.PendingPlanKey = ""
	s.PendingPaymentID = ""
}

// ResetOnboarding returns the dialogue to idle and clears every draft field
func (s *Session) ResetOnboarding() {
	s.OnboardingState = OnboardingIdle
	s.DraftName = ""
	s.DraftPrice = 0
	s.DraftDemoLink = ""
}

// InOnboarding reports whether the dialogue is past idle
func (s *Session) InOnboarding() bool {
	return s.OnboardingState != "" && s.OnboardingState != OnboardingIdle
}

// Offer is a purchasable item, a channel or the all-access plan
type Offer struct {
	Key       string
	Name      string
	Price     float64
	DemoLink  string
	AllAccess bool
}
