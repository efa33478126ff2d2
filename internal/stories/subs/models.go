package subs

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusExpired  Status = "expired"
)

// Subscription is an externally owned record: the relay only reads it.
// Optional fields are pointers; an absent field produces no output line.
type Subscription struct {
	ID          int64
	AppID       string
	OwnerUID    string
	PhoneNumber *string
	Status      Status
	StartDate   *time.Time
	ExpiryDate  time.Time
	Price       *float64
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListCriteria narrows a subscriptions query. AppID and OwnerUID are always
// set by the service: every read is tenant-and-namespace scoped.
type ListCriteria struct {
	AppID      string
	OwnerUID   string
	Statuses   []Status
	ExpiryFrom *time.Time
	ExpiryTo   *time.Time
	Limit      int
}

// CollectionPath renders the store path convention the query service honors:
// records live under a tenant-and-namespace-scoped collection.
func CollectionPath(appID, ownerUID string) string {
	return fmt.Sprintf("artifacts/%s/users/%s/subscriptions", appID, ownerUID)
}

// Window computes the reminder window for a wall-clock instant: from the
// start of "today" in loc through the end of the day windowDays later.
// Both bounds are inclusive.
func Window(now time.Time, windowDays int, loc *time.Location) (time.Time, time.Time) {
	now = now.In(loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	cutoff := todayStart.AddDate(0, 0, windowDays).
		Add(24*time.Hour - time.Millisecond)
	return todayStart, cutoff
}
