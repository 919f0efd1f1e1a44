package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical stored form for calendar dates.
const DateLayout = "2006-01-02"

// ParseCalendarDate parses a YYYY-MM-DD string into a local-midnight time by
// splitting it into components. It deliberately avoids time.Parse with a
// timezone-aware layout: a date like "2024-01-05" means January 5th wherever
// the server runs, and going through UTC shifts it across midnight for half
// the world.
func ParseCalendarDate(s string, loc *time.Location) (time.Time, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 3)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", s)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

// DaysBetween returns the whole calendar days elapsed from the date string to
// "today" (negative if the date is in the future).
func DaysBetween(dateStr string, today time.Time) (int, error) {
	d, err := ParseCalendarDate(dateStr, today.Location())
	if err != nil {
		return 0, err
	}
	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return int(todayMidnight.Sub(d).Hours() / 24), nil
}

// csvDateLayouts are the formats accepted from imported spreadsheets.
var csvDateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// NormalizeDate reparses a free-form date from a CSV cell and returns the
// canonical YYYY-MM-DD form. Unparseable input yields nil, not an error: a bad
// date cell should not sink the row.
func NormalizeDate(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			out := t.Format(DateLayout)
			return &out
		}
	}
	return nil
}
