package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by the counters below.
const (
	OutcomeOK            = "ok"
	OutcomeEmpty         = "empty"
	OutcomeQueryFailure  = "query_failure"
	OutcomeDeliveryError = "delivery_error"
	OutcomeConfigMissing = "config_missing"
)

// Message kinds.
const (
	KindDigest        = "digest"
	KindNewSubscriber = "new_subscriber"
	KindTest          = "test"
	KindAlert         = "alert"
)

var (
	ReminderRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tanbih_reminder_runs_total",
		Help: "Scheduled reminder runs by outcome.",
	}, []string{"outcome"})

	MessagesDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tanbih_messages_delivered_total",
		Help: "Messages handed to the Telegram sink by kind and outcome.",
	}, []string{"kind", "outcome"})
)
