package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/A5TEX/HSLU-Module-Master/pkg/student"
)

// timetableDays are the weekday columns of the grid, Monday first. Sunday is
// omitted; HSLU schedules no classes there.
var timetableDays = []struct {
	code  string
	label string
}{
	{"Mo", "Montag"},
	{"Di", "Dienstag"},
	{"Mi", "Mittwoch"},
	{"Do", "Donnerstag"},
	{"Fr", "Freitag"},
	{"Sa", "Samstag"},
}

// RenderTimetable renders the weekly schedule of one semester, one block per
// weekday with the day's classes sorted by start time. Modules without a
// fixed schedule are listed separately.
func RenderTimetable(rec *student.Record, semesterCode string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", accentStyle.Bold(true).Render("Timetable "+semesterCode))

	entries := rec.ExpandScheduleForSemester(semesterCode)
	byDay := make(map[string][]student.Enrollment)
	for _, e := range entries {
		day := e.Schedule[0].Weekday
		byDay[day] = append(byDay[day], e)
	}

	if len(entries) == 0 {
		fmt.Fprintf(&b, "\n%s\n", faintStyle.Render("No scheduled classes."))
	}

	for _, day := range timetableDays {
		classes := byDay[day.code]
		if len(classes) == 0 {
			continue
		}
		sort.SliceStable(classes, func(i, j int) bool {
			return classes[i].Schedule[0].Start < classes[j].Schedule[0].Start
		})

		fmt.Fprintf(&b, "\n%s\n", accentStyle.Render(day.label))
		for _, c := range classes {
			slot := c.Schedule[0]
			fmt.Fprintf(&b, "  %s - %s  %s %s\n",
				slot.Start, slot.End, c.ModuleName, faintStyle.Render(c.ModuleType))
		}
	}

	var async []string
	for _, m := range rec.ModulesForSemester(semesterCode) {
		if len(m.Schedule) == 0 {
			async = append(async, m.ModuleName)
		}
	}
	if len(async) > 0 {
		fmt.Fprintf(&b, "\n%s %s\n", faintStyle.Render("No fixed schedule:"), strings.Join(async, ", "))
	}

	return b.String()
}
