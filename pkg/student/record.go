// Package student holds the reconciled student record and the progress
// statistics derived from it.
package student

import (
	"github.com/A5TEX/HSLU-Module-Master/pkg/schedule"
)

// SchemaVersion is bumped whenever the stored record format changes; loaders
// treat records with any other version as absent so the bootstrap path
// rebuilds them from source.
const SchemaVersion = 1

// ModuleTypeUndefined marks enrollments whose module type could not be
// resolved against the catalogue.
const ModuleTypeUndefined = "undefined"

// Study schedule modes derived from the average ECTS load per semester.
const (
	StudyModeFullTime = "full-time"
	StudyModePartTime = "part-time"
)

// Enrollment is one reconciled completed course: the portal's raw record
// merged with catalogue metadata.
type Enrollment struct {
	ModuleName string `json:"moduleName"`
	Semester   string `json:"semester"`
	// Note is nil when the module was not graded numerically.
	Note       *float64 `json:"note"`
	Grade      string   `json:"grade"`
	Ects       int      `json:"ects"`
	ModuleType string   `json:"moduleType"`
	// Schedule is nil for asynchronous or unresolved modules.
	Schedule []schedule.Slot `json:"schedule"`
}

// Record is the aggregate root cached per student.
type Record struct {
	Version        int          `json:"version"`
	StudyProgram   string       `json:"studyProgram"`
	StudySchedule  string       `json:"studySchedule"`
	StartSemester  string       `json:"startSemester"`
	StudyMajor     string       `json:"studyMajor,omitempty"`
	ModulesVisited []Enrollment `json:"modulesVisited"`
}

// NewRecord builds a record from reconciled enrollments, deriving the start
// semester and study schedule mode.
func NewRecord(studyProgram string, modules []Enrollment) *Record {
	r := &Record{
		Version:        SchemaVersion,
		StudyProgram:   studyProgram,
		ModulesVisited: modules,
	}
	r.StartSemester = r.startSemester()
	r.StudySchedule = r.StudyScheduleMode()
	return r
}

// AddModule appends a manually entered enrollment.
func (r *Record) AddModule(e Enrollment) {
	r.ModulesVisited = append(r.ModulesVisited, e)
}

// RemoveModule deletes all enrollments with the given module name and
// reports whether anything was removed.
func (r *Record) RemoveModule(moduleName string) bool {
	kept := r.ModulesVisited[:0]
	removed := false
	for _, m := range r.ModulesVisited {
		if m.ModuleName == moduleName {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	r.ModulesVisited = kept
	return removed
}

// UpdateModule replaces the first enrollment with a matching module name and
// semester, reporting whether a match was found.
func (r *Record) UpdateModule(e Enrollment) bool {
	for i, m := range r.ModulesVisited {
		if m.ModuleName == e.ModuleName && m.Semester == e.Semester {
			r.ModulesVisited[i] = e
			return true
		}
	}
	return false
}

// ModulesForSemester returns the enrollments of one semester.
func (r *Record) ModulesForSemester(semester string) []Enrollment {
	var out []Enrollment
	for _, m := range r.ModulesVisited {
		if m.Semester == semester {
			out = append(out, m)
		}
	}
	return out
}

// ExpandScheduleForSemester returns the semester's enrollments with modules
// that meet several times a week split into one entry per weekly slot, which
// is the shape the timetable grid consumes.
func (r *Record) ExpandScheduleForSemester(semester string) []Enrollment {
	var out []Enrollment
	for _, m := range r.ModulesForSemester(semester) {
		for _, slot := range m.Schedule {
			single := m
			single.Schedule = []schedule.Slot{slot}
			out = append(out, single)
		}
	}
	return out
}
