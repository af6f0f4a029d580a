package dates

import (
	"strconv"
	"strings"
	"time"
)

// CalendarDate is a date with no time-of-day component.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// genitiveMonths maps Russian genitive month names to months.
var genitiveMonths = map[string]time.Month{
	"января":   time.January,
	"февраля":  time.February,
	"марта":    time.March,
	"апреля":   time.April,
	"мая":      time.May,
	"июня":     time.June,
	"июля":     time.July,
	"августа":  time.August,
	"сентября": time.September,
	"октября":  time.October,
	"ноября":   time.November,
	"декабря":  time.December,
}

// ParseRussianComposite reads strings shaped like "15 марта 2024" or
// "15-17 марта 2024"; only the first day of a range is kept. Tokens must be
// fully numeric where numbers are expected, so "15abc" is rejected rather than
// read as 15.
func ParseRussianComposite(input string) (CalendarDate, bool) {
	parts := strings.Fields(input)
	if len(parts) < 3 {
		return CalendarDate{}, false
	}

	dayToken, _, _ := strings.Cut(parts[0], "-")
	day, err := strconv.Atoi(dayToken)
	if err != nil {
		return CalendarDate{}, false
	}

	month, ok := genitiveMonths[strings.ToLower(parts[1])]
	if !ok {
		return CalendarDate{}, false
	}

	year, err := strconv.Atoi(parts[2])
	if err != nil || year <= 0 {
		return CalendarDate{}, false
	}

	d := CalendarDate{Year: year, Month: month, Day: day}
	// No rollover: "31 февраля" is rejected, not read as early March.
	if !d.valid() {
		return CalendarDate{}, false
	}
	return d, true
}

// ParseDisplay reads the DD.MM.YYYY display form.
func ParseDisplay(input string) (CalendarDate, bool) {
	t, err := time.Parse(DisplayLayout, strings.TrimSpace(input))
	if err != nil {
		return CalendarDate{}, false
	}
	return FromTime(t), true
}

// ParseCalendarDate accepts a composite string, the display form or an ISO
// date, in that order. Zoned ISO timestamps take their calendar day in loc.
func ParseCalendarDate(input string, loc *time.Location) (CalendarDate, bool) {
	if d, ok := ParseRussianComposite(input); ok {
		return d, true
	}
	if d, ok := ParseDisplay(input); ok {
		return d, true
	}
	if t, err := ParseISO(input, loc); err == nil {
		return FromTime(t), true
	}
	return CalendarDate{}, false
}

// FromTime drops the time of day from t, in t's own location.
func FromTime(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// DaysUntil counts whole calendar days from c to other; negative when other is earlier.
func (c CalendarDate) DaysUntil(other CalendarDate) int {
	return int(other.utc().Sub(c.utc()).Hours() / 24)
}

func (c CalendarDate) String() string {
	return c.utc().Format(DisplayLayout)
}

func (c CalendarDate) utc() time.Time {
	return time.Date(c.Year, c.Month, c.Day, 0, 0, 0, 0, time.UTC)
}

func (c CalendarDate) valid() bool {
	if c.Day < 1 {
		return false
	}
	t := c.utc()
	return t.Day() == c.Day && t.Month() == c.Month
}
