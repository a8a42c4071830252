// Package schedule derives weekly timetable slots from the raw occurrence
// date strings the catalogue API publishes per module event.
package schedule

import (
	"fmt"
	"strings"
	"time"
)

// FormatAsynchronous is the lesson format label of modules without a fixed
// weekly schedule.
const FormatAsynchronous = "Asynchron"

// weekdayCodes are the German two-letter weekday codes, indexed by
// time.Weekday (Sunday first).
var weekdayCodes = [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"}

// Slot is one weekly recurring occurrence of a module.
type Slot struct {
	Weekday string `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// Weekday returns the time.Weekday for a slot's German weekday code.
func (s Slot) Time() (time.Weekday, bool) {
	for i, code := range weekdayCodes {
		if code == s.Weekday {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// Extract turns raw occurrence strings of the form
// "DD.MM.YYYY T HH:MM/HH:MM" into a deduplicated list of weekly slots.
//
// Modules with an asynchronous lesson format have no weekly schedule and
// yield nil. The weekday is derived from the embedded calendar date; a
// recurring class appears once per physical week in the input but only its
// distinct weekday+time pattern matters. Slots keep their insertion order.
func Extract(dates []string, lessonFormat string) ([]Slot, error) {
	if lessonFormat == FormatAsynchronous {
		return nil, nil
	}

	seen := make(map[Slot]bool)
	var slots []Slot

	for _, raw := range dates {
		slot, err := parseOccurrence(raw)
		if err != nil {
			return nil, err
		}
		if !seen[slot] {
			seen[slot] = true
			slots = append(slots, slot)
		}
	}

	return slots, nil
}

// parseOccurrence splits one raw occurrence string into its weekly slot.
func parseOccurrence(raw string) (Slot, error) {
	parts := strings.SplitN(raw, "T", 2)
	if len(parts) != 2 {
		return Slot{}, fmt.Errorf("occurrence %q has no time component", raw)
	}

	dateStr := strings.TrimSpace(parts[0])
	times := strings.SplitN(strings.TrimSpace(parts[1]), "/", 2)
	if len(times) != 2 {
		return Slot{}, fmt.Errorf("occurrence %q has no start/end time range", raw)
	}

	day, err := time.Parse("02.01.2006", dateStr)
	if err != nil {
		return Slot{}, fmt.Errorf("occurrence %q has an invalid date: %w", raw, err)
	}

	return Slot{
		Weekday: weekdayCodes[day.Weekday()],
		Start:   strings.TrimSpace(times[0]),
		End:     strings.TrimSpace(times[1]),
	}, nil
}
