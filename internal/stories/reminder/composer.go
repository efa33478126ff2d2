package reminder

import (
	"math"
	"strings"
	"time"

	"github.com/samber/lo"

	"tanbih-bot/internal/locale"
	"tanbih-bot/internal/stories/subs"
)

const maxNotesLength = 50

// Composer turns an ordered record list into the single digest message
// handed to the sink. It is stateless: every scheduled run rebuilds the
// digest from scratch, so a record reappears daily while it stays in-window.
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

// BuildDigest returns the composed digest and true, or "" and false when
// there is nothing to report. An empty digest must never reach the sink.
func (c *Composer) BuildDigest(records []*subs.Subscription, todayStart time.Time) (string, bool) {
	if len(records) == 0 {
		return "", false
	}

	blocks := lo.Map(records, func(record *subs.Subscription, _ int) string {
		return c.renderRecord(record, todayStart)
	})

	header := c.localizer.Get(c.lang, "reminder.header", nil)
	return header + "\n\n" + strings.Join(blocks, "\n\n"), true
}

func (c *Composer) renderRecord(record *subs.Subscription, todayStart time.Time) string {
	phone := c.localizer.Get(c.lang, "reminder.phone_unspecified", nil)
	if record.PhoneNumber != nil && *record.PhoneNumber != "" {
		phone = *record.PhoneNumber
	}

	lines := []string{
		c.localizer.Get(c.lang, "reminder.phone_line", map[string]interface{}{
			"phone": phone,
		}),
		c.localizer.Get(c.lang, "reminder.expiry_line", map[string]interface{}{
			"date": c.formatter.FormatDate(record.ExpiryDate),
			"days": DaysRemaining(record.ExpiryDate, todayStart),
		}),
	}

	if record.Price != nil {
		lines = append(lines, c.localizer.Get(c.lang, "reminder.price_line", map[string]interface{}{
			"price": c.formatter.FormatMoney(*record.Price, c.currencySymbol),
		}))
	}

	if record.Notes != nil && *record.Notes != "" {
		lines = append(lines, c.localizer.Get(c.lang, "reminder.notes_line", map[string]interface{}{
			"notes": truncateNotes(*record.Notes),
		}))
	}

	return strings.Join(lines, "\n")
}

// DaysRemaining is ceil((expiry - todayStart) / 1 day). Non-negative for any
// record inside the query window.
func DaysRemaining(expiry, todayStart time.Time) int {
	return int(math.Ceil(expiry.Sub(todayStart).Hours() / 24))
}

// truncateNotes cuts free text to the first maxNotesLength runes plus an
// ellipsis marker. Rune-based so Arabic text is never split mid-character.
func truncateNotes(notes string) string {
	runes := []rune(notes)
	if len(runes) <= maxNotesLength {
		return notes
	}
	return string(runes[:maxNotesLength]) + "..."
}
