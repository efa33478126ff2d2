package locale

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var monthNames = map[string][12]string{
	"ar": {
		"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
		"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
	},
	"en": {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

var weekdayNames = map[string][7]string{
	"ar": {"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت"},
	"en": {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
}

var dayPeriods = map[string][2]string{
	"ar": {"ص", "م"},
	"en": {"AM", "PM"},
}

var listSeparators = map[string]string{
	"ar": "، ",
	"en": ", ",
}

// Formatter renders dates and amounts for outbound messages. The date
// language, number language and timezone are independent: the reference
// deployment shows Arabic calendar dates with Western digit grouping.
type Formatter struct {
	dateLang string
	printer  *message.Printer
	location *time.Location
}

func NewFormatter(dateLang, numberLang, timezone string) (*Formatter, error) {
	if _, ok := monthNames[dateLang]; !ok {
		return nil, fmt.Errorf("unsupported date language: %q", dateLang)
	}

	tag, err := language.Parse(numberLang)
	if err != nil {
		return nil, fmt.Errorf("parse number language %q: %w", numberLang, err)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}

	return &Formatter{
		dateLang: dateLang,
		printer:  message.NewPrinter(tag),
		location: loc,
	}, nil
}

func (f *Formatter) Location() *time.Location {
	return f.location
}

// FormatDate renders a long calendar form: day, full month name, year.
func (f *Formatter) FormatDate(t time.Time) string {
	t = t.In(f.location)
	months := monthNames[f.dateLang]
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// FormatDateTime renders a full localized timestamp with weekday and a
// 12-hour clock, used by the diagnostic test message.
func (f *Formatter) FormatDateTime(t time.Time) string {
	t = t.In(f.location)
	weekdays := weekdayNames[f.dateLang]
	periods := dayPeriods[f.dateLang]

	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	period := periods[0]
	if t.Hour() >= 12 {
		period = periods[1]
	}

	sep := listSeparators[f.dateLang]
	return fmt.Sprintf("%s%s%s%s%d:%02d %s",
		weekdays[t.Weekday()], sep, f.FormatDate(t), sep, hour, t.Minute(), period)
}

// FormatNumber renders an amount with locale-aware thousands separators.
func (f *Formatter) FormatNumber(v float64) string {
	return f.printer.Sprintf("%v", number.Decimal(v))
}

// FormatMoney appends the configured currency symbol to a grouped amount.
func (f *Formatter) FormatMoney(v float64, currencySymbol string) string {
	return f.FormatNumber(v) + " " + currencySymbol
}
