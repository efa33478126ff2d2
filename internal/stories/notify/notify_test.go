package notify

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"

	"tanbih-bot/internal/apperr"
	"tanbih-bot/internal/locale"
	"tanbih-bot/internal/localization"
)

func newTestComposer(t *testing.T) *Composer {
	t.Helper()

	localizer, err := localization.NewService()
	if err != nil {
		t.Fatalf("localization.NewService: %v", err)
	}
	formatter, err := locale.NewFormatter("ar", "en", "UTC")
	if err != nil {
		t.Fatalf("locale.NewFormatter: %v", err)
	}

	return NewComposer(localizer, formatter, "ar", "د.ع")
}

func TestPayloadUnmarshalFlexibleTypes(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedPrice *float64
		expectedDays  *int
	}{
		{
			name:          "numeric price and duration",
			body:          `{"phoneNumber":"0770","price":5000,"duration":30}`,
			expectedPrice: lo.ToPtr(5000.0),
			expectedDays:  lo.ToPtr(30),
		},
		{
			name:          "string price and duration",
			body:          `{"phoneNumber":"0770","price":"5000","duration":"30"}`,
			expectedPrice: lo.ToPtr(5000.0),
			expectedDays:  lo.ToPtr(30),
		},
		{
			name: "fields absent",
			body: `{"phoneNumber":"0770"}`,
		},
		{
			name: "empty strings mean absent",
			body: `{"phoneNumber":"0770","price":"","duration":""}`,
		},
		{
			name: "nulls mean absent",
			body: `{"phoneNumber":"0770","price":null,"duration":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload EventPayload
			if err := json.Unmarshal([]byte(tt.body), &payload); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			event, err := ParseEvent(payload)
			if err != nil {
				t.Fatalf("ParseEvent: %v", err)
			}

			switch {
			case tt.expectedPrice == nil && event.Price != nil:
				t.Errorf("expected no price, got %v", *event.Price)
			case tt.expectedPrice != nil && (event.Price == nil || *event.Price != *tt.expectedPrice):
				t.Errorf("price = %v, want %v", event.Price, *tt.expectedPrice)
			}

			switch {
			case tt.expectedDays == nil && event.DurationDays != nil:
				t.Errorf("expected no duration, got %v", *event.DurationDays)
			case tt.expectedDays != nil && (event.DurationDays == nil || *event.DurationDays != *tt.expectedDays):
				t.Errorf("duration = %v, want %v", event.DurationDays, *tt.expectedDays)
			}
		})
	}
}

func TestParseEventValidation(t *testing.T) {
	tests := []struct {
		name          string
		payload       EventPayload
		expectedField string
	}{
		{
			name:          "missing phone number",
			payload:       EventPayload{},
			expectedField: "phoneNumber",
		},
		{
			name:          "blank phone number",
			payload:       EventPayload{PhoneNumber: "   "},
			expectedField: "phoneNumber",
		},
		{
			name: "negative price",
			payload: EventPayload{
				PhoneNumber: "0770",
				Price:       FlexNumber{value: -5, valid: true},
			},
			expectedField: "price",
		},
		{
			name: "unparseable start date fails closed",
			payload: EventPayload{
				PhoneNumber: "0770",
				StartDate:   lo.ToPtr("not-a-date"),
			},
			expectedField: "startDate",
		},
		{
			name: "unparseable expiry date fails closed",
			payload: EventPayload{
				PhoneNumber: "0770",
				ExpiryDate:  lo.ToPtr("31-31-2025"),
			},
			expectedField: "expiryDate",
		},
		{
			name: "zero duration",
			payload: EventPayload{
				PhoneNumber: "0770",
				Duration:    FlexInt{value: 0, valid: true},
			},
			expectedField: "duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEvent(tt.payload)

			var validationErr *apperr.ValidationFailureError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationFailureError, got %v", err)
			}
			if validationErr.Field != tt.expectedField {
				t.Errorf("Field = %q, want %q", validationErr.Field, tt.expectedField)
			}
		})
	}
}

func TestParseEventDateLayouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "plain date", input: "2025-06-20"},
		{name: "rfc3339", input: "2025-06-20T00:00:00Z"},
		{name: "slash format", input: "20/06/2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := ParseEvent(EventPayload{
				PhoneNumber: "0770",
				ExpiryDate:  &tt.input,
			})
			if err != nil {
				t.Fatalf("ParseEvent: %v", err)
			}
			if event.ExpiryDate == nil {
				t.Fatal("expected a parsed expiry date")
			}
			y, m, d := event.ExpiryDate.Date()
			if y != 2025 || m != time.June || d != 20 {
				t.Errorf("parsed %v, want 2025-06-20", event.ExpiryDate)
			}
		})
	}
}

func TestComposePhoneOnly(t *testing.T) {
	composer := newTestComposer(t)

	text := composer.Compose(Event{PhoneNumber: "07701234567"})

	want := "✅ *مشترك جديد تمت إضافته للنظام:*\n\n" +
		"📞 *رقم الهاتف:* `07701234567`\n\n" +
		"✨ بالتوفيق في خدمته!"
	if text != want {
		t.Errorf("message = %q, want %q", text, want)
	}
}

func TestComposeAllFields(t *testing.T) {
	composer := newTestComposer(t)

	start := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	text := composer.Compose(Event{
		PhoneNumber:  "07701234567",
		Price:        lo.ToPtr(25000.0),
		StartDate:    &start,
		ExpiryDate:   &expiry,
		DurationDays: lo.ToPtr(30),
	})

	for _, fragment := range []string{
		"`07701234567`",
		"25,000 د.ع",
		"15 يونيو 2025",
		"15 يوليو 2025",
		"30 يوم",
	} {
		if !strings.Contains(text, fragment) {
			t.Errorf("message missing %q: %q", fragment, text)
		}
	}
}
