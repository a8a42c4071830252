package catalogue

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

const semesterJSON = `{
	"result": {
		"Modules": [
			{
				"ShortName": "AISO",
				"Name": "Applied Information Security",
				"EventoIdentifier": "I.BA_AISO.H2301",
				"Ects": 6,
				"ModuleOffers": [
					{"DegreeProgramme": "Informatik", "ModuleType": "Kernmodul"}
				]
			},
			{
				"ShortName": "PTA",
				"Name": "Programming Topics",
				"EventoIdentifier": "I.BA_PTA.H2301",
				"Ects": 3,
				"ModuleOffers": []
			}
		],
		"ModuleEvents": [
			{
				"ModuleShortName": "AISO",
				"LessonFormats": "Präsenz",
				"Dates": ["18.09.2023T08:50/12:00"]
			}
		]
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-key"), server
}

func TestClient_CombinedModuleData(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/modules/H23" {
			t.Errorf("expected path /modules/H23, got %s", r.URL.Path)
		}
		if r.Header.Get("X-Access-Key") != "test-key" {
			t.Errorf("expected access key header, got %q", r.Header.Get("X-Access-Key"))
		}
		w.Write([]byte(semesterJSON))
	})

	combined, err := client.CombinedModuleData("H23")
	if err != nil {
		t.Fatalf("CombinedModuleData failed: %v", err)
	}

	if len(combined) != 2 {
		t.Fatalf("expected 2 combined modules, got %d", len(combined))
	}

	aiso := combined[0]
	if aiso.ShortName != "AISO" || aiso.LessonFormats != "Präsenz" || len(aiso.Dates) != 1 {
		t.Errorf("expected AISO joined with its event, got %+v", aiso)
	}

	// PTA has no event record; the outer join keeps it with empty event fields.
	pta := combined[1]
	if pta.ShortName != "PTA" || pta.LessonFormats != "" || pta.Dates != nil {
		t.Errorf("expected PTA without event data, got %+v", pta)
	}
}

func TestClient_CombinedModuleDataIsIdempotent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(semesterJSON))
	})

	first, err := client.CombinedModuleData("H23")
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := client.CombinedModuleData("H23")
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls returned different results:\n%+v\n%+v", first, second)
	}
}

func TestClient_TransportFailures(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		if _, err := client.ModulesForSemester("H23"); err == nil {
			t.Errorf("expected error on 500 response")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		})
		if _, err := client.ModulesForSemester("H23"); err == nil {
			t.Errorf("expected error on malformed body")
		}
	})

	t.Run("unreachable server", func(t *testing.T) {
		client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
		server.Close()
		if _, err := client.ModulesForSemester("H23"); err == nil {
			t.Errorf("expected error when server is down")
		}
	})
}

func TestClient_ECTSRequirements(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Program codes must reach the API lowercased.
		if r.URL.Path != "/ects/i" {
			t.Errorf("expected path /ects/i, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"result": {"TotalECTS": 180, "ectsPerModule": {"Kernmodul": 60, "Projektmodul": 30}}}`))
	})

	reqs, err := client.ECTSRequirements("I")
	if err != nil {
		t.Fatalf("ECTSRequirements failed: %v", err)
	}
	if reqs.TotalECTS != 180 {
		t.Errorf("expected TotalECTS 180, got %d", reqs.TotalECTS)
	}
	if reqs.PerModuleType["Kernmodul"] != 60 {
		t.Errorf("expected 60 Kernmodul credits, got %d", reqs.PerModuleType["Kernmodul"])
	}
}

func TestClient_AvailableSemesters(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/semesters/available" {
			t.Errorf("expected path /semesters/available, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"result": {"semesters": ["F23", "H23", "F24"]}}`))
	})

	semesters, err := client.AvailableSemesters()
	if err != nil {
		t.Fatalf("AvailableSemesters failed: %v", err)
	}
	want := []string{"F23", "H23", "F24"}
	if !reflect.DeepEqual(semesters, want) {
		t.Errorf("AvailableSemesters = %v, want %v", semesters, want)
	}
}
