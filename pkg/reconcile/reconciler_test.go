package reconcile

import (
	"errors"
	"testing"

	"github.com/A5TEX/HSLU-Module-Master/pkg/catalogue"
	"github.com/A5TEX/HSLU-Module-Master/pkg/portal"
	"github.com/A5TEX/HSLU-Module-Master/pkg/student"
)

// fakeCatalogue serves canned per-semester data and counts fetches.
type fakeCatalogue struct {
	data    map[string][]catalogue.CombinedModule
	err     error
	fetches int
}

func (f *fakeCatalogue) CombinedModuleData(semester string) ([]catalogue.CombinedModule, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.data[semester]
	if !ok {
		return nil, errors.New("no such semester")
	}
	return data, nil
}

func ects(v float64) *float64 { return &v }

func combined(identifier, shortName, moduleType string, dates []string, format string) catalogue.CombinedModule {
	return catalogue.CombinedModule{
		Module: catalogue.Module{
			ShortName:        shortName,
			EventoIdentifier: identifier,
			ModuleOffers: []catalogue.ModuleOffer{
				{DegreeProgramme: "Informatik", ModuleType: moduleType},
			},
		},
		LessonFormats: format,
		Dates:         dates,
	}
}

func autumn23Catalogue() *fakeCatalogue {
	return &fakeCatalogue{data: map[string][]catalogue.CombinedModule{
		"H23": {
			combined("I.BA_AISO.H2301", "AISO", "Kernmodul",
				[]string{"18.09.2023T08:50/12:00", "25.09.2023T08:50/12:00"}, "Präsenz"),
			combined("I.BA_ISA.H2301", "ISA", "Erweiterungsmodul",
				[]string{"21.09.2023T14:00/16:00"}, "Asynchron"),
		},
	}}
}

func TestReconcileHappyPath(t *testing.T) {
	src := autumn23Catalogue()
	r := New(src, nil)

	items := []portal.RawEnrollment{
		{
			Number: "I.BA_AISO.H2301",
			From:   "2023-09-18T00:00:00",
			Ects:   ects(6),
			Note:   portal.Mark{Value: 5.0, Valid: true},
			Grade:  "A",
		},
	}

	modules := r.Reconcile(items, "I")
	if len(modules) != 1 {
		t.Fatalf("expected 1 reconciled module, got %d", len(modules))
	}

	m := modules[0]
	if m.ModuleName != "AISO" || m.Semester != "H23" || m.Ects != 6 {
		t.Errorf("unexpected module: %+v", m)
	}
	if m.ModuleType != "Kernmodul" {
		t.Errorf("expected module type Kernmodul, got %q", m.ModuleType)
	}
	if m.Note == nil || *m.Note != 5.0 {
		t.Errorf("expected note 5.0, got %v", m.Note)
	}
	// Two raw occurrences on the same weekday collapse to one slot.
	if len(m.Schedule) != 1 || m.Schedule[0].Weekday != "Mo" {
		t.Errorf("unexpected schedule: %+v", m.Schedule)
	}
}

func TestReconcileDiscardsNilECTS(t *testing.T) {
	r := New(autumn23Catalogue(), nil)

	items := []portal.RawEnrollment{
		{Number: "I.BA_AISO.H2301", From: "2023-09-18T00:00:00", Ects: nil},
	}

	if modules := r.Reconcile(items, "I"); len(modules) != 0 {
		t.Errorf("expected nil-ECTS item to be discarded, got %+v", modules)
	}
}

func TestReconcileSkipsMalformedIdentifiers(t *testing.T) {
	r := New(autumn23Catalogue(), nil)

	items := []portal.RawEnrollment{
		{Number: "NOUNDERSCORE", From: "2023-09-18T00:00:00", Ects: ects(6)},
		{Number: "I.BA_AISO.H2301", From: "garbage", Ects: ects(6)},
	}

	if modules := r.Reconcile(items, "I"); len(modules) != 0 {
		t.Errorf("expected malformed items to be skipped, got %+v", modules)
	}
}

func TestReconcileCatalogueMissSkipsItemNotBatch(t *testing.T) {
	src := autumn23Catalogue()
	r := New(src, nil)

	items := []portal.RawEnrollment{
		// F24 is not in the catalogue; the item is dropped.
		{Number: "I.BA_XX.F2401", From: "2024-03-04T00:00:00", Ects: ects(3)},
		// H23 still reconciles.
		{Number: "I.BA_AISO.H2301", From: "2023-09-18T00:00:00", Ects: ects(6), Note: portal.Mark{Value: 4.5, Valid: true}},
	}

	modules := r.Reconcile(items, "I")
	if len(modules) != 1 || modules[0].ModuleName != "AISO" {
		t.Errorf("expected only AISO to survive, got %+v", modules)
	}
}

func TestReconcileUnmatchedModuleDegrades(t *testing.T) {
	r := New(autumn23Catalogue(), nil)

	items := []portal.RawEnrollment{
		{Number: "I.BA_NOPE.H2301", From: "2023-09-18T00:00:00", Ects: ects(3), Grade: "F"},
	}

	modules := r.Reconcile(items, "I")
	if len(modules) != 1 {
		t.Fatalf("expected the unmatched module to be emitted, got %d", len(modules))
	}
	if modules[0].ModuleType != student.ModuleTypeUndefined {
		t.Errorf("expected sentinel module type, got %q", modules[0].ModuleType)
	}
	if modules[0].Schedule != nil {
		t.Errorf("expected nil schedule, got %+v", modules[0].Schedule)
	}
}

func TestReconcileAsynchronousModuleHasNoSchedule(t *testing.T) {
	r := New(autumn23Catalogue(), nil)

	items := []portal.RawEnrollment{
		{Number: "I.BA_ISA.H2301", From: "2023-09-18T00:00:00", Ects: ects(3), Note: portal.Mark{Value: 5.0, Valid: true}},
	}

	modules := r.Reconcile(items, "I")
	if len(modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(modules))
	}
	if modules[0].Schedule != nil {
		t.Errorf("expected nil schedule for asynchronous module, got %+v", modules[0].Schedule)
	}
	if modules[0].ModuleType != "Erweiterungsmodul" {
		t.Errorf("expected Erweiterungsmodul, got %q", modules[0].ModuleType)
	}
}

func TestReconcileDisambiguatesMatches(t *testing.T) {
	src := &fakeCatalogue{data: map[string][]catalogue.CombinedModule{
		"H23": {
			combined("I.BA_AISO2.H2301", "AISO2", "Erweiterungsmodul", nil, "Präsenz"),
			combined("I.BA_AISO.H2301", "AISO", "Kernmodul", nil, "Präsenz"),
		},
	}}
	r := New(src, nil)

	items := []portal.RawEnrollment{
		{Number: "I.BA_AISO.H2301", From: "2023-09-18T00:00:00", Ects: ects(6)},
	}

	modules := r.Reconcile(items, "I")
	if len(modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(modules))
	}
	// "AISO" is a substring of both identifiers; "_AISO." narrows it to the
	// exact module.
	if modules[0].ModuleType != "Kernmodul" {
		t.Errorf("expected disambiguation to pick AISO (Kernmodul), got %q", modules[0].ModuleType)
	}
}

func TestReconcileRetakeKeepsMarkedAttempt(t *testing.T) {
	r := New(autumn23Catalogue(), nil)

	items := []portal.RawEnrollment{
		{Number: "I.BA_AISO.H2301", From: "2023-09-18T00:00:00", Ects: ects(6), Note: portal.Mark{Value: 0, Valid: true}},
		{Number: "I.BA_AISO.H2301", From: "2023-09-18T00:00:00", Ects: ects(6), Note: portal.Mark{Value: 4.5, Valid: true}},
	}

	modules := r.Reconcile(items, "I")
	if len(modules) != 1 {
		t.Fatalf("expected retake to collapse to 1 module, got %d", len(modules))
	}
	if modules[0].Note == nil || *modules[0].Note != 4.5 {
		t.Errorf("expected the marked attempt to survive, got %+v", modules[0])
	}
}

func TestReconcileRetakeKeepsAllMarkedAttempts(t *testing.T) {
	r := New(autumn23Catalogue(), nil)

	items := []portal.RawEnrollment{
		{Number: "I.BA_AISO.H2301", From: "2023-09-18T00:00:00", Ects: ects(6), Note: portal.Mark{Value: 3.5, Valid: true}},
		{Number: "I.BA_AISO.H2301", From: "2023-09-18T00:00:00", Ects: ects(6), Note: portal.Mark{Value: 4.5, Valid: true}},
	}

	// Known quirk: several validly marked attempts all survive; there is no
	// best-attempt tie-break.
	modules := r.Reconcile(items, "I")
	if len(modules) != 2 {
		t.Errorf("expected both marked attempts to be kept, got %d", len(modules))
	}
}

func TestReconcileMemoizesCatalogueFetches(t *testing.T) {
	src := autumn23Catalogue()
	r := New(src, nil)

	items := []portal.RawEnrollment{
		{Number: "I.BA_AISO.H2301", From: "2023-09-18T00:00:00", Ects: ects(6)},
		{Number: "I.BA_ISA.H2301", From: "2023-10-02T00:00:00", Ects: ects(3)},
	}

	r.Reconcile(items, "I")
	if src.fetches != 1 {
		t.Errorf("expected 1 catalogue fetch for a shared semester, got %d", src.fetches)
	}
}

func TestReconcileMemoizesCatalogueMisses(t *testing.T) {
	src := &fakeCatalogue{err: errors.New("down")}
	r := New(src, nil)

	items := []portal.RawEnrollment{
		{Number: "I.BA_AISO.H2301", From: "2023-09-18T00:00:00", Ects: ects(6)},
		{Number: "I.BA_ISA.H2301", From: "2023-10-02T00:00:00", Ects: ects(3)},
	}

	if modules := r.Reconcile(items, "I"); len(modules) != 0 {
		t.Errorf("expected no modules when the catalogue is down, got %+v", modules)
	}
	// A failed semester is a permanent miss within the run.
	if src.fetches != 1 {
		t.Errorf("expected 1 fetch for a failed semester, got %d", src.fetches)
	}
}

func TestModuleShortName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"I.BA_AISO.H2301", "AISO", true},
		{"I.BA_AISO_EN.H2301", "AISO", true},
		{"NOUNDERSCORE", "", false},
		{"I.BA_.H2301", "", false},
	}
	for _, tt := range tests {
		got, ok := moduleShortName(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("moduleShortName(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
