// Package dates converts hackathon date values between the backend's ISO-8601
// timestamps, legacy Russian composite strings ("15-17 марта 2024") and the
// DD.MM.YYYY display form, and answers relative "how soon" questions about them.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DisplayLayout is the Russian-locale date format used for rendering.
const DisplayLayout = "02.01.2006"

// ErrUnparseable is returned when no known date layout matches an input.
var ErrUnparseable = errors.New("unparseable date")

// zonedLayouts carry an explicit offset and are converted into the display location.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
}

// naiveLayouts have no offset; FastAPI emits these for naive datetimes.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatToDisplay renders an ISO-8601 value as DD.MM.YYYY in the local timezone.
// Empty input yields "". Input that is not a recognizable timestamp is returned
// unchanged, since it is assumed to already be human readable.
func FormatToDisplay(input string) string {
	return FormatToDisplayIn(input, time.Local)
}

// FormatToDisplayIn is FormatToDisplay with an explicit display location.
// Date-only and naive values are calendar values and are never shifted.
func FormatToDisplayIn(input string, loc *time.Location) string {
	if input == "" {
		return ""
	}
	t, err := ParseISO(input, loc)
	if err != nil {
		log.Warn().Str("input", input).Msg("invalid date, leaving as is")
		return input
	}
	return t.Format(DisplayLayout)
}

// ParseISO parses the ISO-8601 shapes the API emits. Values with an offset are
// converted to loc; naive values are interpreted in loc as written.
func ParseISO(input string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, ErrUnparseable
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, input)
}

// FormatISO renders t in the RFC 3339 form the API accepts.
func FormatISO(t time.Time) string {
	return t.Format(time.RFC3339)
}
