package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	d, err := ParseCalendarDate("2024-01-05", loc)
	require.NoError(t, err)

	// The date must stay January 5th in the given zone, never shift a day.
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 5, d.Day())
	assert.Equal(t, loc, d.Location())
}

func TestParseCalendarDateInvalid(t *testing.T) {
	for _, s := range []string{"", "2024", "2024-01", "not-a-date", "2024-xx-05"} {
		_, err := ParseCalendarDate(s, time.UTC)
		assert.Error(t, err, "input %q", s)
	}
}

func TestDaysBetween(t *testing.T) {
	today := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		date string
		want int
	}{
		{"2026-09-01", 0},
		{"2026-08-31", 1},
		{"2026-08-11", 21},
		{"2026-09-02", -1},
	}
	for _, tt := range tests {
		got, err := DaysBetween(tt.date, today)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "date %s", tt.date)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-07", "2024-03-07"},
		{"3/7/2024", "2024-03-07"},
		{"03/07/2024", "2024-03-07"},
		{"2024/03/07", "2024-03-07"},
		{"Mar 7, 2024", "2024-03-07"},
		{"7 Mar 2024", "2024-03-07"},
	}
	for _, tt := range tests {
		got := NormalizeDate(tt.in)
		require.NotNil(t, got, "input %q", tt.in)
		assert.Equal(t, tt.want, *got, "input %q", tt.in)
	}

	assert.Nil(t, NormalizeDate(""))
	assert.Nil(t, NormalizeDate("   "))
	assert.Nil(t, NormalizeDate("last tuesday"))
}
