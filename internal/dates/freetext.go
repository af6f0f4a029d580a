package dates

import (
	"fmt"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

// freeTextLanguages are the languages organizers type dates in.
var freeTextLanguages = []string{"ru", "en"}

// ParseFreeText reads a human-entered date such as "15 марта 2024 10:00",
// "2024-03-15" or "tomorrow". Relative expressions resolve against now, and
// values without a zone are taken in now's location.
func ParseFreeText(input string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrUnparseable)
	}
	if t, err := ParseISO(s, now.Location()); err == nil {
		return t, nil
	}

	cfg := &dps.Configuration{
		Languages:       freeTextLanguages,
		CurrentTime:     now,
		DefaultTimezone: now.Location(),
	}
	dt, err := dps.Parse(cfg, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrUnparseable, input, err)
	}
	if dt.Time.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, input)
	}
	return dt.Time, nil
}
