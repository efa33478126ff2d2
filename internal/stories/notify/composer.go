package notify

import (
	"strings"

	"tanbih-bot/internal/locale"
)

// Localizer resolves message templates from the embedded catalog.
type Localizer interface {
	Get(lang, key string, params map[string]interface{}) string
}

// Composer renders one message per validated new-subscriber event. Absent
// optional fields produce no line, never a placeholder.
type Composer struct {
	localizer      Localizer
	formatter      *locale.Formatter
	lang           string
	currencySymbol string
}

func NewComposer(localizer Localizer, formatter *locale.Formatter, lang, currencySymbol string) *Composer {
	return &Composer{
		localizer:      localizer,
		formatter:      formatter,
		lang:           lang,
		currencySymbol: currencySymbol,
	}
}

func (c *Composer) Compose(event Event) string {
	lines := []string{
		c.localizer.Get(c.lang, "new_subscriber.header", nil),
		"",
		c.localizer.Get(c.lang, "new_subscriber.phone_line", map[string]interface{}{
			"phone": event.PhoneNumber,
		}),
	}

	if event.Price != nil {
		lines = append(lines, c.localizer.Get(c.lang, "new_subscriber.price_line", map[string]interface{}{
			"price": c.formatter.FormatMoney(*event.Price, c.currencySymbol),
		}))
	}

	if event.StartDate != nil {
		lines = append(lines, c.localizer.Get(c.lang, "new_subscriber.start_date_line", map[string]interface{}{
			"date": c.formatter.FormatDate(*event.StartDate),
		}))
	}

	if event.ExpiryDate != nil {
		lines = append(lines, c.localizer.Get(c.lang, "new_subscriber.expiry_date_line", map[string]interface{}{
			"date": c.formatter.FormatDate(*event.ExpiryDate),
		}))
	}

	if event.DurationDays != nil {
		lines = append(lines, c.localizer.Get(c.lang, "new_subscriber.duration_line", map[string]interface{}{
			"days": *event.DurationDays,
		}))
	}

	lines = append(lines, "", c.localizer.Get(c.lang, "new_subscriber.footer", nil))

	return strings.Join(lines, "\n")
}
