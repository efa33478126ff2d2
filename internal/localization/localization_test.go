package localization

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	s, err := NewService()
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	tests := []struct {
		name     string
		lang     string
		key      string
		params   map[string]interface{}
		expected string
	}{
		{
			name:     "arabic plain key",
			lang:     "ar",
			key:      "reminder.phone_unspecified",
			expected: "غير محدد",
		},
		{
			name:     "english plain key",
			lang:     "en",
			key:      "reminder.phone_unspecified",
			expected: "unspecified",
		},
		{
			name:     "placeholder substitution",
			lang:     "ar",
			key:      "reminder.phone_line",
			params:   map[string]interface{}{"phone": "07701234567"},
			expected: "📞 *07701234567*",
		},
		{
			name:     "numeric placeholder",
			lang:     "en",
			key:      "new_subscriber.duration_line",
			params:   map[string]interface{}{"days": 30},
			expected: "⏳ *Subscription length:* 30 day(s)",
		},
		{
			name:     "unknown key returns the key",
			lang:     "ar",
			key:      "reminder.no_such_key",
			expected: "reminder.no_such_key",
		},
		{
			name:     "empty language falls back to arabic",
			lang:     "",
			key:      "reminder.phone_unspecified",
			expected: "غير محدد",
		},
		{
			name:     "unknown language falls back to arabic",
			lang:     "xx",
			key:      "reminder.phone_unspecified",
			expected: "غير محدد",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Get(tt.lang, tt.key, tt.params); got != tt.expected {
				t.Errorf("Get(%q, %q) = %q, want %q", tt.lang, tt.key, got, tt.expected)
			}
		})
	}
}

func TestGetMultilineTemplates(t *testing.T) {
	s, err := NewService()
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	got := s.Get("ar", "alerts.reminder_failure", map[string]interface{}{"error": "store unreachable"})
	if !strings.Contains(got, "store unreachable") {
		t.Errorf("alert should embed the error text, got %q", got)
	}
	if !strings.Contains(got, "```") {
		t.Errorf("alert should keep the code fence, got %q", got)
	}
}
