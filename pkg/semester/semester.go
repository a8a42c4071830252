// Package semester implements the HSLU academic calendar: mapping calendar
// dates to semester codes like "H24" (autumn 2024) or "F25" (spring 2025).
package semester

import (
	"fmt"
	"time"
)

// The study period nominally starts on the 20th of September (autumn) or
// February (spring), rolled back to the preceding Monday when the 20th is not
// itself a Monday.
const nominalStartDay = 20

// startMonday returns the Monday on or before the 20th of the given month.
func startMonday(year int, month time.Month) time.Time {
	d := time.Date(year, month, nominalStartDay, 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// StartOfAutumn returns the day of month the autumn study period starts in
// the given year.
func StartOfAutumn(year int) int {
	return startMonday(year, time.September).Day()
}

// StartOfSpring returns the day of month the spring study period starts in
// the given year.
func StartOfSpring(year int) int {
	return startMonday(year, time.February).Day()
}

// FromDate classifies a date into its semester code.
//
// September days before the autumn start Monday still belong to the previous
// spring, February days before the spring start Monday still belong to the
// previous autumn. October through January count as autumn, March through
// August as spring. The year component is always the date's own two-digit
// year, matching how MyCampus labels enrollments.
func FromDate(t time.Time) string {
	day := t.Day()
	month := int(t.Month())
	year := t.Year()

	var season byte
	switch {
	case month == 9 && day < StartOfAutumn(year):
		season = 'F'
	case month == 9:
		season = 'H'
	case month == 2 && day < StartOfSpring(year):
		season = 'H'
	case month == 2:
		season = 'F'
	case month >= 10 || month < 2:
		season = 'H'
	default:
		season = 'F'
	}

	return fmt.Sprintf("%c%02d", season, year%100)
}

// Current returns the semester code for the given moment, usually time.Now().
func Current(now time.Time) string {
	return FromDate(now)
}

// Valid reports whether s looks like a semester code ("H24", "F25", ...).
func Valid(s string) bool {
	if len(s) != 3 {
		return false
	}
	if s[0] != 'H' && s[0] != 'F' {
		return false
	}
	return s[1] >= '0' && s[1] <= '9' && s[2] >= '0' && s[2] <= '9'
}

// PeriodStart returns the calendar date (UTC midnight) the study period of
// the given semester code begins. Two-digit years are interpreted as 20xx.
func PeriodStart(code string) (time.Time, error) {
	if !Valid(code) {
		return time.Time{}, fmt.Errorf("invalid semester code %q", code)
	}
	year := 2000 + int(code[1]-'0')*10 + int(code[2]-'0')
	month := time.September
	if code[0] == 'F' {
		month = time.February
	}
	return startMonday(year, month), nil
}
