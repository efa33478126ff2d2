package reminder

import (
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"

	"tanbih-bot/internal/locale"
	"tanbih-bot/internal/localization"
	"tanbih-bot/internal/stories/subs"
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

func testTodayStart() time.Time {
	return time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
}

func activeSub(expiry time.Time) *subs.Subscription {
	return &subs.Subscription{
		Status:     subs.StatusActive,
		ExpiryDate: expiry,
	}
}

func TestBuildDigestEmpty(t *testing.T) {
	composer := newTestComposer(t)

	text, ok := composer.BuildDigest(nil, testTodayStart())
	if ok {
		t.Errorf("expected no digest for an empty record set, got %q", text)
	}
}

func TestBuildDigestSingleRecord(t *testing.T) {
	composer := newTestComposer(t)
	todayStart := testTodayStart()

	record := activeSub(todayStart.AddDate(0, 0, 1))
	record.PhoneNumber = lo.ToPtr("07701234567")
	record.Price = lo.ToPtr(5000.0)

	text, ok := composer.BuildDigest([]*subs.Subscription{record}, todayStart)
	if !ok {
		t.Fatal("expected a digest")
	}

	want := "🔔 *تنبيهات انتهاء الاشتراكات القادمة:*\n\n" +
		"📞 *07701234567*\n" +
		"   - ينتهي في: *16 يونيو 2025* (باقي 1 يوم/أيام)\n" +
		"   - السعر: 5,000 د.ع"
	if text != want {
		t.Errorf("digest = %q, want %q", text, want)
	}
}

func TestBuildDigestOptionalFields(t *testing.T) {
	composer := newTestComposer(t)
	todayStart := testTodayStart()

	t.Run("missing phone renders the placeholder", func(t *testing.T) {
		record := activeSub(todayStart)

		text, _ := composer.BuildDigest([]*subs.Subscription{record}, todayStart)
		if !strings.Contains(text, "غير محدد") {
			t.Errorf("expected the unspecified-phone placeholder, got %q", text)
		}
	})

	t.Run("absent price omits the price line", func(t *testing.T) {
		record := activeSub(todayStart)

		text, _ := composer.BuildDigest([]*subs.Subscription{record}, todayStart)
		if strings.Contains(text, "السعر") {
			t.Errorf("expected no price line, got %q", text)
		}
	})

	t.Run("short notes render verbatim", func(t *testing.T) {
		record := activeSub(todayStart)
		record.Notes = lo.ToPtr(strings.Repeat("a", 50))

		text, _ := composer.BuildDigest([]*subs.Subscription{record}, todayStart)
		if !strings.Contains(text, strings.Repeat("a", 50)) {
			t.Errorf("expected 50-char notes verbatim, got %q", text)
		}
		if strings.Contains(text, "...") {
			t.Errorf("expected no ellipsis for 50-char notes, got %q", text)
		}
	})

	t.Run("long notes are truncated with an ellipsis", func(t *testing.T) {
		record := activeSub(todayStart)
		record.Notes = lo.ToPtr(strings.Repeat("a", 51))

		text, _ := composer.BuildDigest([]*subs.Subscription{record}, todayStart)
		if !strings.Contains(text, strings.Repeat("a", 50)+"...") {
			t.Errorf("expected 50 chars plus ellipsis, got %q", text)
		}
		if strings.Contains(text, strings.Repeat("a", 51)) {
			t.Errorf("expected the 51st char to be cut, got %q", text)
		}
	})

	t.Run("arabic notes are truncated on rune boundaries", func(t *testing.T) {
		record := activeSub(todayStart)
		record.Notes = lo.ToPtr(strings.Repeat("م", 60))

		text, _ := composer.BuildDigest([]*subs.Subscription{record}, todayStart)
		if !strings.Contains(text, strings.Repeat("م", 50)+"...") {
			t.Errorf("expected 50 runes plus ellipsis, got %q", text)
		}
	})
}

func TestBuildDigestOrdering(t *testing.T) {
	composer := newTestComposer(t)
	todayStart := testTodayStart()

	first := activeSub(todayStart)
	first.PhoneNumber = lo.ToPtr("07700000001")
	second := activeSub(todayStart.AddDate(0, 0, 2))
	second.PhoneNumber = lo.ToPtr("07700000002")

	text, _ := composer.BuildDigest([]*subs.Subscription{first, second}, todayStart)

	posFirst := strings.Index(text, "07700000001")
	posSecond := strings.Index(text, "07700000002")
	if posFirst < 0 || posSecond < 0 {
		t.Fatalf("both records must appear in the digest, got %q", text)
	}
	if posFirst > posSecond {
		t.Error("digest order must follow the input (ascending expiry) order")
	}

	if !strings.Contains(text, "\n\n📞 *07700000002*") {
		t.Errorf("records must be separated by a blank line, got %q", text)
	}
}

func TestDaysRemaining(t *testing.T) {
	todayStart := testTodayStart()

	tests := []struct {
		name     string
		expiry   time.Time
		expected int
	}{
		{name: "expires today", expiry: todayStart, expected: 0},
		{name: "expires tomorrow", expiry: todayStart.AddDate(0, 0, 1), expected: 1},
		{name: "expires in two days", expiry: todayStart.AddDate(0, 0, 2), expected: 2},
		{name: "partial day rounds up", expiry: todayStart.Add(36 * time.Hour), expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysRemaining(tt.expiry, todayStart); got != tt.expected {
				t.Errorf("DaysRemaining() = %d, want %d", got, tt.expected)
			}
		})
	}
}
