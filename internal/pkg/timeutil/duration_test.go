package timeutil

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElapsedMinutes(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2024-05-01T09:00:00", "2024-05-01T10:30:00", 90},
		{"2024-05-01T09:00", "2024-05-01T09:45", 45},
		{"2024-05-01T09:00:00", "2024-05-01T09:00:29", 0},
		{"2024-05-01T09:00:00", "2024-05-01T09:00:30", 1},
		{"2024-05-01T23:30:00", "2024-05-02T00:15:00", 45},
		{"2024-05-01 08:00:00", "2024-05-01 16:00:00", 480},
	}
	for _, c := range cases {
		got, err := ElapsedMinutes(c.start, c.end)
		require.NoError(t, err, "%s -> %s", c.start, c.end)
		assert.Equal(t, c.want, got, "%s -> %s", c.start, c.end)
	}
}

func TestElapsedMinutes_ParseError(t *testing.T) {
	_, err := ElapsedMinutes("not-a-time", "2024-05-01T10:00:00")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "start", pe.Field)
	assert.Equal(t, "not-a-time", pe.Value)

	_, err = ElapsedMinutes("2024-05-01T10:00:00", "")
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "end", pe.Field)
}

func TestParseTimestamp_KeepsOffset(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)

	zoned, err := ParseTimestamp("2024-05-01T02:00:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, zoned.Location())

	local, err := ParseTimestamp("2024-05-01T09:00:00", loc)
	require.NoError(t, err)
	assert.Equal(t, loc, local.Location())
	assert.True(t, zoned.Equal(local))
}

func TestIsToday(t *testing.T) {
	now := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

	ok, err := IsToday("2024-05-01T07:15:00", now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsToday("2024-04-30T23:59:59", now)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = IsToday("yesterday", now)
	assert.ErrorIs(t, err, ErrParse)
}

func TestStartOfDayAndDateKey(t *testing.T) {
	ts := time.Date(2024, 2, 29, 13, 45, 10, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
	assert.Equal(t, "2024-02-29", DateKey(ts))
	assert.Equal(t, "2024-02-29T13:45:10", FormatLocal(ts))
}
