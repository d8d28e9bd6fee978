package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"parking-violations/internal/models"
	"parking-violations/internal/models/violationapi"
)

// fakeAPI serves the violation API from a fixed in-memory list.
type fakeAPI struct {
	mu         sync.Mutex
	violations []models.Violation
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/violations":
		_ = json.NewEncoder(w).Encode(f.violations)
	case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/violations/"):
		var body violationapi.StatusBody
		_ = json.NewDecoder(r.Body).Decode(&body)
		id := strings.TrimPrefix(r.URL.Path, "/violations/")
		for i := range f.violations {
			if f.violations[i].ID == id {
				f.violations[i].Resolved = body.Resolved
				_ = json.NewEncoder(w).Encode(f.violations[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(violationapi.ErrorBody{Error: "Violation not found"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func runCLI(t *testing.T, api *fakeAPI, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	out := &bytes.Buffer{}
	root := newRootCmd()
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--api", srv.URL, "--utc"}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	api := &fakeAPI{violations: []models.Violation{
		testingViolation("1", "ABC123", false),
		testingViolation("2", "XYZ789", true),
	}}

	out, err := runCLI(t, api, "list", "--search", "xyz")
	if err != nil {
		t.Fatalf("Expected no error, but was %v.", err)
	}
	if !strings.Contains(out, "XYZ789") || strings.Contains(out, "ABC123") {
		t.Errorf("Expected only XYZ789 to be listed, but was %q.", out)
	}
}

func TestShowCommandUnknownID(t *testing.T) {
	api := &fakeAPI{violations: []models.Violation{testingViolation("1", "ABC123", false)}}

	_, err := runCLI(t, api, "show", "404")
	if err == nil || err.Error() != "Violation not found" {
		t.Errorf("Expected Violation not found, but was %v.", err)
	}
}

func TestToggleCommandFlipsStatus(t *testing.T) {
	api := &fakeAPI{violations: []models.Violation{testingViolation("1", "ABC123", false)}}

	out, err := runCLI(t, api, "toggle", "1")
	if err != nil {
		t.Fatalf("Expected no error, but was %v.", err)
	}
	if strings.TrimSpace(out) != "1 ABC123 is now Resolved" {
		t.Errorf("Expected resolved confirmation, but was %q.", out)
	}
	api.mu.Lock()
	defer api.mu.Unlock()
	if !api.violations[0].Resolved {
		t.Errorf("Expected the API to store the resolved status.")
	}
}

func TestToggleCommandExplicitStatus(t *testing.T) {
	api := &fakeAPI{violations: []models.Violation{testingViolation("1", "ABC123", true)}}

	out, err := runCLI(t, api, "toggle", "1", "--resolved=true")
	if err != nil {
		t.Fatalf("Expected no error, but was %v.", err)
	}
	if !strings.Contains(out, "Resolved") || strings.Contains(out, "Unresolved") {
		t.Errorf("Expected status to stay resolved, but was %q.", out)
	}
}

func TestListCommandReportsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(violationapi.ErrorBody{Error: "Network error"})
	}))
	defer srv.Close()

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--api", srv.URL, "list"})

	err := root.ExecuteContext(context.Background())
	if err == nil || err.Error() != "Network error" {
		t.Errorf("Expected Network error, but was %v.", err)
	}
}
