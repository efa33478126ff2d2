package subs

import (
	"context"
	"time"

	"tanbih-bot/internal/apperr"
)

// Service answers the one question the reminder job asks: which active
// subscriptions expire inside the forward window. The clock is injected so
// the selection is deterministic under test.
type Service struct {
	storage  Storage
	appID    string
	ownerUID string
	location *time.Location
	now      func() time.Time
}

func NewService(storage Storage, appID, ownerUID string, location *time.Location, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		storage:  storage,
		appID:    appID,
		ownerUID: ownerUID,
		location: location,
		now:      now,
	}
}

// ListExpiring returns active subscriptions whose expiry falls inside
// [today 00:00, today+windowDays 23:59:59.999], ordered by ascending expiry,
// together with the window's todayStart used for days-remaining math.
func (s *Service) ListExpiring(ctx context.Context, windowDays int) ([]*Subscription, time.Time, error) {
	if windowDays < 0 {
		return nil, time.Time{}, &apperr.ValidationFailureError{
			Field:  "windowDays",
			Reason: "must not be negative",
		}
	}

	todayStart, cutoff := Window(s.now(), windowDays, s.location)

	subscriptions, err := s.storage.ListSubscriptions(ctx, ListCriteria{
		AppID:      s.appID,
		OwnerUID:   s.ownerUID,
		Statuses:   []Status{StatusActive},
		ExpiryFrom: &todayStart,
		ExpiryTo:   &cutoff,
	})
	if err != nil {
		return nil, time.Time{}, &apperr.QueryFailureError{
			Path: CollectionPath(s.appID, s.ownerUID),
			Err:  err,
		}
	}

	return subscriptions, todayStart, nil
}
