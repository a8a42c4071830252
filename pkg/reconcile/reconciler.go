// Package reconcile merges the raw MyCampus enrollment feed with catalogue
// metadata into the reconciled student record.
package reconcile

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/A5TEX/HSLU-Module-Master/pkg/catalogue"
	"github.com/A5TEX/HSLU-Module-Master/pkg/portal"
	"github.com/A5TEX/HSLU-Module-Master/pkg/schedule"
	"github.com/A5TEX/HSLU-Module-Master/pkg/semester"
	"github.com/A5TEX/HSLU-Module-Master/pkg/student"
)

// CatalogueSource is the slice of the catalogue client the reconciler needs.
type CatalogueSource interface {
	CombinedModuleData(semester string) ([]catalogue.CombinedModule, error)
}

// studyProgramNames maps portal program codes to the degree program names
// the catalogue uses in module offers.
var studyProgramNames = map[string]string{
	"i":    "Informatik",
	"aiml": "Artificial Intelligence & Machine Learning",
	"ics":  "Information & Cyber Security",
	"wi":   "Wirtschaftsinformatik",
	"di":   "Digital Ideation",
}

// ProgramFullName resolves a study program code like "i" or "AIML" to the
// catalogue's degree program name.
func ProgramFullName(code string) (string, bool) {
	name, ok := studyProgramNames[strings.ToLower(code)]
	return name, ok
}

// enrollmentDateLayouts are the date shapes the feed's "from" field has been
// seen to carry.
var enrollmentDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Reconciler matches raw enrollments against the catalogue. It memoizes
// catalogue lookups per semester for the duration of one run, including
// failed fetches: a catalogue failure is a permanent miss for that semester
// within the run.
type Reconciler struct {
	catalogue CatalogueSource
	log       *zap.Logger

	semesterData map[string][]catalogue.CombinedModule
	semesterMiss map[string]bool
}

// New creates a Reconciler reading catalogue data from src.
func New(src CatalogueSource, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{
		catalogue:    src,
		log:          log,
		semesterData: make(map[string][]catalogue.CombinedModule),
		semesterMiss: make(map[string]bool),
	}
}

// Reconcile processes the raw feed sequentially and returns the reconciled
// enrollments. Items that are not real modules (nil ECTS), have no module
// name, an unreadable date, or fall into a semester the catalogue could not
// deliver are skipped; items without a catalogue match degrade to an
// unresolved module type and no schedule. Retakes collapse afterwards.
func (r *Reconciler) Reconcile(items []portal.RawEnrollment, studyProgram string) []student.Enrollment {
	var modules []student.Enrollment

	for _, item := range items {
		if item.Ects == nil {
			continue
		}

		name, ok := moduleShortName(item.Number)
		if !ok {
			r.log.Info("no module name in identifier, skipping",
				zap.String("anlassnumber", item.Number))
			continue
		}

		date, err := parseEnrollmentDate(item.From)
		if err != nil {
			r.log.Info("unreadable enrollment date, skipping",
				zap.String("module", name), zap.String("from", item.From))
			continue
		}
		sem := semester.FromDate(date)

		data, err := r.semesterModules(sem)
		if err != nil {
			r.log.Warn("catalogue unavailable for semester, skipping item",
				zap.String("module", name), zap.String("semester", sem), zap.Error(err))
			continue
		}

		enrollment := student.Enrollment{
			ModuleName: name,
			Semester:   sem,
			Grade:      item.Grade,
			Ects:       int(*item.Ects),
			ModuleType: student.ModuleTypeUndefined,
		}
		if item.Note.Valid {
			note := item.Note.Value
			enrollment.Note = &note
		}

		if match := findModule(data, name); match != nil {
			if moduleType, err := moduleTypeFor(match, studyProgram); err == nil {
				enrollment.ModuleType = moduleType
			} else {
				r.log.Info("module type unresolved",
					zap.String("module", name), zap.Error(err))
			}
			if slots, err := schedule.Extract(match.Dates, match.LessonFormats); err == nil {
				enrollment.Schedule = slots
			} else {
				r.log.Info("schedule unresolved",
					zap.String("module", name), zap.Error(err))
			}
		} else {
			r.log.Info("no catalogue match for module",
				zap.String("module", name), zap.String("semester", sem))
		}

		modules = append(modules, enrollment)
	}

	return collapseRetakes(modules)
}

// semesterModules returns the combined catalogue data for a semester,
// fetching it at most once per run.
func (r *Reconciler) semesterModules(sem string) ([]catalogue.CombinedModule, error) {
	if data, ok := r.semesterData[sem]; ok {
		return data, nil
	}
	if r.semesterMiss[sem] {
		return nil, fmt.Errorf("catalogue miss for semester %s", sem)
	}

	data, err := r.catalogue.CombinedModuleData(sem)
	if err != nil {
		r.semesterMiss[sem] = true
		return nil, err
	}
	r.semesterData[sem] = data
	return data, nil
}

// moduleShortName extracts the module short name from a course identifier:
// the second underscore-delimited segment, truncated at the first period.
// "I.BA_AISO.H2301" yields "AISO".
func moduleShortName(identifier string) (string, bool) {
	parts := strings.Split(identifier, "_")
	if len(parts) < 2 {
		return "", false
	}
	name, _, _ := strings.Cut(parts[1], ".")
	if name == "" {
		return "", false
	}
	return name, true
}

func parseEnrollmentDate(s string) (time.Time, error) {
	for _, layout := range enrollmentDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// findModule locates the catalogue entry for a module short name. Candidates
// are entries whose full identifier contains the name as a substring; an
// ambiguous set is narrowed by preferring a mid-token exact match
// ("_name_"), then an end-token exact match ("_name."). If neither narrows
// the set, the module stays unresolved.
func findModule(data []catalogue.CombinedModule, name string) *catalogue.CombinedModule {
	var matches []*catalogue.CombinedModule
	for i := range data {
		if strings.Contains(data[i].EventoIdentifier, name) {
			matches = append(matches, &data[i])
		}
	}

	switch len(matches) {
	case 0:
		return nil
	case 1:
		return matches[0]
	}

	midToken := "_" + name + "_"
	endToken := "_" + name + "."
	for _, m := range matches {
		if strings.Contains(m.EventoIdentifier, midToken) {
			return m
		}
	}
	for _, m := range matches {
		if strings.Contains(m.EventoIdentifier, endToken) {
			return m
		}
	}
	return nil
}

// moduleTypeFor reads the module type from the offer matching the student's
// degree program.
func moduleTypeFor(m *catalogue.CombinedModule, studyProgram string) (string, error) {
	fullName, ok := ProgramFullName(studyProgram)
	if !ok {
		return "", fmt.Errorf("unknown study program %q", studyProgram)
	}
	for _, offer := range m.ModuleOffers {
		if offer.DegreeProgramme == fullName {
			return offer.ModuleType, nil
		}
	}
	return "", fmt.Errorf("no offer for %s on module %s", fullName, m.ShortName)
}

// collapseRetakes resolves duplicate enrollments sharing a module short
// name. Groups with more than one member keep the members holding a valid
// non-zero mark; when several attempts are marked, all of them survive. If
// no member is marked the whole group is kept as-is.
func collapseRetakes(modules []student.Enrollment) []student.Enrollment {
	order := make([]string, 0, len(modules))
	groups := make(map[string][]student.Enrollment)
	for _, m := range modules {
		if _, ok := groups[m.ModuleName]; !ok {
			order = append(order, m.ModuleName)
		}
		groups[m.ModuleName] = append(groups[m.ModuleName], m)
	}

	var out []student.Enrollment
	for _, name := range order {
		group := groups[name]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}

		var marked []student.Enrollment
		for _, m := range group {
			if m.Note != nil && *m.Note != 0 {
				marked = append(marked, m)
			}
		}
		if len(marked) > 0 {
			out = append(out, marked...)
		} else {
			out = append(out, group...)
		}
	}
	return out
}
