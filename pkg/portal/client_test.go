package portal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_FetchEnrollments(t *testing.T) {
	mockJSON := `{
		"items": [
			{
				"anlassnumber": "I.BA_AISO.H2301",
				"from": "2023-09-18T00:00:00",
				"ects": 6,
				"note": 5.0,
				"grade": "A"
			},
			{
				"anlassnumber": "I.BA_PTA.H2301",
				"from": "2023-09-18T00:00:00",
				"ects": null,
				"note": "n/a",
				"grade": ""
			}
		]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/de-ch/api/anlasslist/load/") {
			t.Errorf("unexpected feed path %s", r.URL.Path)
		}
		w.Write([]byte(mockJSON))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	items, err := client.FetchEnrollments()
	if err != nil {
		t.Fatalf("FetchEnrollments failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Number != "I.BA_AISO.H2301" || first.Ects == nil || *first.Ects != 6 {
		t.Errorf("unexpected first item: %+v", first)
	}
	if !first.Note.Valid || first.Note.Value != 5.0 {
		t.Errorf("expected numeric note 5.0, got %+v", first.Note)
	}

	// The second row is not a real module: null ECTS, unparseable note.
	second := items[1]
	if second.Ects != nil {
		t.Errorf("expected nil ECTS, got %v", *second.Ects)
	}
	if second.Note.Valid {
		t.Errorf("expected invalid note for %q", "n/a")
	}
}

func TestMark_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in    string
		value float64
		valid bool
	}{
		{`4.5`, 4.5, true},
		{`"4.5"`, 4.5, true},
		{`0`, 0, true},
		{`null`, 0, false},
		{`"keine Note"`, 0, false},
		{`""`, 0, false},
	}

	for _, tt := range tests {
		var m Mark
		if err := json.Unmarshal([]byte(tt.in), &m); err != nil {
			t.Errorf("Unmarshal(%s) failed: %v", tt.in, err)
			continue
		}
		if m.Valid != tt.valid || (tt.valid && m.Value != tt.value) {
			t.Errorf("Unmarshal(%s) = %+v, want value %v valid %v", tt.in, m, tt.value, tt.valid)
		}
	}
}

func TestExtractStudyProgram(t *testing.T) {
	page := `<html><body>
		<a href="/de-ch/service-sites/login">max.BSCI_muster</a>
	</body></html>`

	program, err := ExtractStudyProgram(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ExtractStudyProgram failed: %v", err)
	}
	if program != "I" {
		t.Errorf("expected program I, got %q", program)
	}
}

func TestExtractStudyProgramMissingAnchor(t *testing.T) {
	page := `<html><body><p>logged out</p></body></html>`

	if _, err := ExtractStudyProgram(strings.NewReader(page)); err == nil {
		t.Errorf("expected error when login anchor is missing")
	}
}
