package tui

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/A5TEX/HSLU-Module-Master/pkg/catalogue"
	"github.com/A5TEX/HSLU-Module-Master/pkg/reconcile"
	"github.com/A5TEX/HSLU-Module-Master/pkg/student"
)

const progressBarWidth = 30

// ectsBucket is one dashboard section: the module type it counts and the
// requirements key it is measured against.
type ectsBucket struct {
	title       string
	moduleType  string
	requiredKey string
}

// ectsBuckets returns the dashboard sections in display order. AIML majors
// are published as minors, so that program reads its requirement from the
// Minormodule key.
func ectsBuckets(studyProgram string) []ectsBucket {
	majorKey := "Majormodule"
	if strings.EqualFold(studyProgram, "AIML") {
		majorKey = "Minormodule"
	}
	return []ectsBucket{
		{"Kernmodule", "Kernmodul", "Kernmodule"},
		{"Projektmodule", "Projektmodul", "Projektmodule"},
		{"Major-/Minormodule", "Major-/Minormodul", majorKey},
		{"Erweiterungsmodule", "Erweiterungsmodul", "Erweiterungsmodule"},
		{"Zusatzmodule", "Zusatzmodul", "Zusatzmodule"},
	}
}

// RenderDashboard renders the study progress overview: ECTS per module type
// against the program's requirements, the overall average grade and the
// per-semester breakdown.
//
// requirements may be nil when the program is unknown to the catalogue; the
// progress bars then degrade to plain obtained counts.
func RenderDashboard(rec *student.Record, requirements *catalogue.ECTSRequirements) string {
	var b strings.Builder

	title := rec.StudyProgram
	if full, ok := reconcile.ProgramFullName(rec.StudyProgram); ok {
		title = full
	}
	fmt.Fprintf(&b, "%s\n\n", accentStyle.Bold(true).Render(title))

	for _, bucket := range ectsBuckets(rec.StudyProgram) {
		obtained := rec.ECTSObtainedByType(bucket.moduleType)

		required := 0
		if requirements != nil {
			required = requirements.PerModuleType[bucket.requiredKey]
		}

		fmt.Fprintf(&b, "%s\n", bucket.title)
		if required > 0 {
			fmt.Fprintf(&b, "%s %d / %d ECTS\n\n", renderBar(obtained, required), obtained, required)
		} else {
			fmt.Fprintf(&b, "%d ECTS %s\n\n", obtained, faintStyle.Render("(requirement unknown)"))
		}
	}

	total := rec.ECTSObtainedTotal()
	if requirements != nil && requirements.TotalECTS > 0 {
		fmt.Fprintf(&b, "Total: %d / %d ECTS\n", total, requirements.TotalECTS)
	} else {
		fmt.Fprintf(&b, "Total: %d ECTS\n", total)
	}

	avg := rec.AverageGrade()
	if math.IsNaN(avg) {
		fmt.Fprintf(&b, "Average grade: -\n")
	} else {
		fmt.Fprintf(&b, "Average grade: %.2f\n", avg)
	}

	mode := cases.Title(language.English).String(rec.StudySchedule)
	fmt.Fprintf(&b, "Study schedule: %s (since %s)\n", mode, rec.StartSemester)

	if semesters := rec.Semesters(); len(semesters) > 0 {
		fmt.Fprintf(&b, "\n%s\n", faintStyle.Render("Per semester"))
		for _, sem := range semesters {
			fmt.Fprintf(&b, "  %s  %2d ECTS  avg %.2f\n",
				sem, rec.ECTSForSemester(sem), rec.AverageGradeForSemester(sem))
		}
	}

	return b.String()
}

// renderBar draws a fixed-width progress bar, clamped at full.
func renderBar(obtained, required int) string {
	ratio := float64(obtained) / float64(required)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * progressBarWidth)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
	return accentStyle.Render(bar)
}
