// Package metrics contains Prometheus metrics of the bot
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the shop. Implements deps.ShopMetrics
type Metrics struct {
	// Purchase flow
	CheckoutsTotal       *prometheus.CounterVec
	ProofsSubmittedTotal *prometheus.CounterVec
	ApprovalsTotal       *prometheus.CounterVec
	RejectionsTotal      *prometheus.CounterVec

	// Access delivery
	GrantFailuresTotal *prometheus.CounterVec

	// Catalog
	ChannelsCreatedTotal prometheus.Counter
}

var (
	// DefaultMetrics is the default metrics instance
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics(prometheus.DefaultRegisterer)
	})
	return DefaultMetrics
}

// NewMetrics creates a new Metrics instance registered on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CheckoutsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "premium_bot_checkouts_total",
				Help: "Total number of checkouts started",
			},
			[]string{"plan_key"},
		),
		ProofsSubmittedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "premium_bot_proofs_submitted_total",
				Help: "Total number of payment proofs submitted",
			},
			[]string{"plan_key"},
		),
		ApprovalsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "premium_bot_payments_approved_total",
				Help: "Total number of approved payments",
			},
			[]string{"plan_key"},
		),
		RejectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "premium_bot_payments_rejected_total",
				Help: "Total number of rejected payments",
			},
			[]string{"plan_key"},
		),
		GrantFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "premium_bot_grant_failures_total",
				Help: "Total number of channel access grants that failed",
			},
			[]string{"channel_key"},
		),
		ChannelsCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "premium_bot_channels_created_total",
			Help: "Total number of premium channels added",
		}),
	}
}

// RecordCheckout records a started checkout
func (m *Metrics) RecordCheckout(planKey string) {
	m.CheckoutsTotal.WithLabelValues(label(planKey)).Inc()
}

// RecordProofSubmitted records a submitted payment proof
func (m *Metrics) RecordProofSubmitted(planKey string) {
	m.ProofsSubmittedTotal.WithLabelValues(label(planKey)).Inc()
}

// RecordApproval records an approved payment
func (m *Metrics) RecordApproval(planKey string) {
	m.ApprovalsTotal.WithLabelValues(label(planKey)).Inc()
}

// RecordRejection records a rejected payment
func (m *Metrics) RecordRejection(planKey string) {
	m.RejectionsTotal.WithLabelValues(label(planKey)).Inc()
}

// RecordGrantFailure records a failed channel grant
func (m *Metrics) RecordGrantFailure(channelKey string) {
	m.GrantFailuresTotal.WithLabelValues(label(channelKey)).Inc()
}

// RecordChannelCreated records a newly added channel
func (m *Metrics) RecordChannelCreated() {
	m.ChannelsCreatedTotal.Inc()
}

func label(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
