package worker

import (
	"context"
	"time"

	"tanbih-bot/internal/stories/subs"
)

type (
	// Subscriptions answers the expiring-window query.
	Subscriptions interface {
		ListExpiring(ctx context.Context, windowDays int) ([]*subs.Subscription, time.Time, error)
	}

	// Sink delivers one formatted message, single attempt.
	Sink interface {
		Deliver(ctx context.Context, text string, parseMode string) error
	}

	// DigestComposer builds the reminder digest. ok is false when there is
	// nothing to send.
	DigestComposer interface {
		BuildDigest(records []*subs.Subscription, todayStart time.Time) (text string, ok bool)
	}

	// Localizer resolves alert templates.
	Localizer interface {
		Get(lang, key string, params map[string]interface{}) string
	}
)
