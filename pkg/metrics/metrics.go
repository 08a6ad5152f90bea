package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IntentionsSubmitted counts accepted public join requests.
	IntentionsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_intentions_submitted_total",
			Help: "Total number of submitted intentions",
		},
	)

	// IntentionTransitions counts admin status changes by target status.
	IntentionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_intention_transitions_total",
			Help: "Total number of intention status transitions",
		},
		[]string{"status"},
	)

	// InvitationsMinted counts invitations created by approval or explicit generation.
	InvitationsMinted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_invitations_minted_total",
			Help: "Total number of invitations minted",
		},
		[]string{"source"},
	)

	// InvitationsConsumed counts registrations by result (success|used|not_found|mismatch|conflict).
	InvitationsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_invitations_consumed_total",
			Help: "Total number of invitation consumption attempts",
		},
		[]string{"result"},
	)

	// LoginAttempts records member login attempts by result (success|failure).
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_login_attempts_total",
			Help: "Total number of member login attempts",
		},
		[]string{"result"},
	)

	// ReferralsCreated counts created referrals.
	ReferralsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_referrals_created_total",
			Help: "Total number of referrals created",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
