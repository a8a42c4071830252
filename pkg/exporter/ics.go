// Package exporter renders a semester's weekly schedule as an iCalendar
// document importable into any calendar app.
package exporter

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/A5TEX/HSLU-Module-Master/pkg/semester"
	"github.com/A5TEX/HSLU-Module-Master/pkg/student"
)

// recurrenceWeeks is the length of one study period in teaching weeks.
const recurrenceWeeks = 14

// GenerateICS writes the weekly schedule of one semester as an ICS calendar.
// Each distinct weekly slot becomes a recurring event anchored at its first
// occurrence in the study period.
func GenerateICS(rec *student.Record, semesterCode string, w io.Writer) error {
	periodStart, err := semester.PeriodStart(semesterCode)
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation("Europe/Zurich")
	if err != nil {
		return fmt.Errorf("could not load timezone: %w", err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	for i, e := range rec.ExpandScheduleForSemester(semesterCode) {
		slot := e.Schedule[0]

		weekday, ok := slot.Time()
		if !ok {
			continue // Skip slots with an unknown weekday code
		}

		startClock, err := time.Parse("15:04", slot.Start)
		if err != nil {
			continue // Skip invalid times
		}
		endClock, err := time.Parse("15:04", slot.End)
		if err != nil {
			continue
		}

		// First occurrence of this weekday on or after the period start.
		offset := (int(weekday) - int(periodStart.Weekday()) + 7) % 7
		day := periodStart.AddDate(0, 0, offset)

		startTime := time.Date(day.Year(), day.Month(), day.Day(),
			startClock.Hour(), startClock.Minute(), 0, 0, loc)
		endTime := time.Date(day.Year(), day.Month(), day.Day(),
			endClock.Hour(), endClock.Minute(), 0, 0, loc)

		event := cal.AddEvent(fmt.Sprintf("%s-%d", startTime.Format("20060102T150405Z"), i))
		event.SetCreatedTime(time.Now())
		event.SetDtStampTime(time.Now())
		event.SetModifiedAt(time.Now())
		event.SetStartAt(startTime)
		event.SetEndAt(endTime)
		event.SetSummary(e.ModuleName)
		event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", recurrenceWeeks))

		description := fmt.Sprintf("Type: %s\nSemester: %s", e.ModuleType, e.Semester)
		event.SetDescription(description)
	}

	return cal.SerializeTo(w)
}
