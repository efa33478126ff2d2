package notify

import (
	"strconv"
	"strings"
	"time"

	"tanbih-bot/internal/apperr"
)

// dateLayouts are the accepted inbound date formats. Anything else fails
// closed: an unparseable date is rejected instead of rendered.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// FlexNumber accepts a JSON number or a numeric string, which is what web
// clients actually send for the price field. Empty string and null are
// recorded as absent, never as zero.
type FlexNumber struct {
	value float64
	valid bool
}

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	n.value, n.valid = v, true
	return nil
}

// FlexInt accepts a JSON number or an integer-like string, with the same
// absent semantics as FlexNumber.
type FlexInt struct {
	value int
	valid bool
}

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	n.value, n.valid = v, true
	return nil
}

// EventPayload is the raw inbound request body.
type EventPayload struct {
	PhoneNumber string     `json:"phoneNumber"`
	Price       FlexNumber `json:"price"`
	StartDate   *string    `json:"startDate"`
	ExpiryDate  *string    `json:"expiryDate"`
	Duration    FlexInt    `json:"duration"`
}

// Event is a validated new-subscriber event, ready for composition.
// The relay never persists it.
type Event struct {
	PhoneNumber  string
	Price        *float64
	StartDate    *time.Time
	ExpiryDate   *time.Time
	DurationDays *int
}

// ParseEvent validates the payload. phoneNumber is required; the optional
// fields are independently validated for parseability.
func ParseEvent(payload EventPayload) (*Event, error) {
	if strings.TrimSpace(payload.PhoneNumber) == "" {
		return nil, &apperr.ValidationFailureError{
			Field:  "phoneNumber",
			Reason: "is required",
		}
	}

	event := &Event{PhoneNumber: payload.PhoneNumber}

	if payload.Price.valid {
		if payload.Price.value < 0 {
			return nil, &apperr.ValidationFailureError{
				Field:  "price",
				Reason: "must not be negative",
			}
		}
		price := payload.Price.value
		event.Price = &price
	}

	if payload.StartDate != nil && *payload.StartDate != "" {
		t, err := parseDate(*payload.StartDate)
		if err != nil {
			return nil, &apperr.ValidationFailureError{
				Field:  "startDate",
				Reason: "is not a recognized date",
			}
		}
		event.StartDate = &t
	}

	if payload.ExpiryDate != nil && *payload.ExpiryDate != "" {
		t, err := parseDate(*payload.ExpiryDate)
		if err != nil {
			return nil, &apperr.ValidationFailureError{
				Field:  "expiryDate",
				Reason: "is not a recognized date",
			}
		}
		event.ExpiryDate = &t
	}

	if payload.Duration.valid {
		days := payload.Duration.value
		if days <= 0 {
			return nil, &apperr.ValidationFailureError{
				Field:  "duration",
				Reason: "must be a positive number of days",
			}
		}
		event.DurationDays = &days
	}

	return event, nil
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
