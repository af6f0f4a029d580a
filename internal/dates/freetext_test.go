package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFreeText_ISO(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	got, err := ParseFreeText("2024-03-15T10:00:00Z", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC), got)

	got, err = ParseFreeText("2024-03-15", now)
	require.NoError(t, err)
	assert.Equal(t, CalendarDate{2024, time.March, 15}, FromTime(got))
}

func TestParseFreeText_Russian(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	got, err := ParseFreeText("15 марта 2024 10:00", now)
	require.NoError(t, err)
	assert.Equal(t, CalendarDate{2024, time.March, 15}, FromTime(got))
	assert.Equal(t, 10, got.Hour())
}

func TestParseFreeText_Empty(t *testing.T) {
	_, err := ParseFreeText("  ", time.Now())
	assert.ErrorIs(t, err, ErrUnparseable)
}
