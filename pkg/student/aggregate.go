package student

import "math"

// PassingMark is the threshold at or above which a module counts toward
// obtained ECTS.
const PassingMark = 4.0

// fullTimeThreshold is the average ECTS load per semester that separates
// full-time from part-time study.
const fullTimeThreshold = 27

// AverageGrade returns the ECTS-weighted mean mark over all enrollments with
// a valid non-zero mark, or NaN when no such enrollment exists. Marks of 0
// mean "no evaluation" and are excluded.
func (r *Record) AverageGrade() float64 {
	var weighted, ects float64
	for _, m := range r.ModulesVisited {
		if m.Note == nil || *m.Note == 0 {
			continue
		}
		weighted += *m.Note * float64(m.Ects)
		ects += float64(m.Ects)
	}
	if ects == 0 {
		return math.NaN()
	}
	return weighted / ects
}

// AverageGradeForSemester returns the ECTS-weighted mean mark of one
// semester. Unlike AverageGrade it applies no validity guard: ungraded
// enrollments poison the sum and a semester without gradable modules yields
// NaN, which callers are expected to tolerate.
func (r *Record) AverageGradeForSemester(semester string) float64 {
	var weighted, ects float64
	for _, m := range r.ModulesVisited {
		if m.Semester != semester {
			continue
		}
		note := math.NaN()
		if m.Note != nil {
			note = *m.Note
		}
		weighted += note * float64(m.Ects)
		ects += float64(m.Ects)
	}
	return weighted / ects
}

// ECTSObtainedByType sums the credits of passed enrollments of one module
// type.
func (r *Record) ECTSObtainedByType(moduleType string) int {
	total := 0
	for _, m := range r.ModulesVisited {
		if m.ModuleType == moduleType && m.Note != nil && *m.Note >= PassingMark {
			total += m.Ects
		}
	}
	return total
}

// ECTSObtainedTotal sums the credits of all passed enrollments.
func (r *Record) ECTSObtainedTotal() int {
	total := 0
	for _, m := range r.ModulesVisited {
		if m.Note != nil && *m.Note >= PassingMark {
			total += m.Ects
		}
	}
	return total
}

// ECTSForSemester sums the credits of all enrollments in a semester
// regardless of mark: the semester's total load, not its earned credit.
func (r *Record) ECTSForSemester(semester string) int {
	total := 0
	for _, m := range r.ModulesVisited {
		if m.Semester == semester {
			total += m.Ects
		}
	}
	return total
}

// StudyScheduleMode derives full-time or part-time study from the average
// ECTS load across all semesters with at least one enrollment.
func (r *Record) StudyScheduleMode() string {
	perSemester := make(map[string]int)
	for _, m := range r.ModulesVisited {
		if m.Semester != "" {
			perSemester[m.Semester] += m.Ects
		}
	}
	if len(perSemester) == 0 {
		return StudyModePartTime
	}

	total := 0
	for _, ects := range perSemester {
		total += ects
	}
	average := float64(total) / float64(len(perSemester))

	if average >= fullTimeThreshold {
		return StudyModeFullTime
	}
	return StudyModePartTime
}

// startSemester returns the smallest semester code among the enrollments by
// string comparison. Since "F" sorts before "H" this is not always the
// chronologically earliest semester; the behavior is kept for compatibility
// with stored records.
func (r *Record) startSemester() string {
	start := ""
	for _, m := range r.ModulesVisited {
		if m.Semester == "" {
			continue
		}
		if start == "" || m.Semester < start {
			start = m.Semester
		}
	}
	return start
}

// Semesters returns the distinct semester codes present in the record, in
// first-appearance order.
func (r *Record) Semesters() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range r.ModulesVisited {
		if m.Semester != "" && !seen[m.Semester] {
			seen[m.Semester] = true
			out = append(out, m.Semester)
		}
	}
	return out
}
