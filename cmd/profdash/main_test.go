package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	callCountsJSON = `[
  {"function": "assign_tas", "calls": 12, "total_time": 0.5312, "avg_time": 0.044267},
  {"function": "evaluate", "calls": 240, "total_time": 1.2, "avg_time": 0.005},
  {"function": "mutate", "calls": 120, "total_time": 0.06, "avg_time": 0.0005}
]`
	finalResultsJSON = `{"overallocation": "3", "conflicts": "1", "undersupport": "0", "unwilling": "2", "unpreferred": "5"}`
	timeProfileJSON  = `[{"function": "assign_tas", "time": 0.53}, {"function": "evaluate", "time": 1.2}]`
	summaryCSV       = "group,overallocation,conflicts\n1,3,1\n2,4,0\n3,2,2\n4,1,0\n5,0,1\n6,9,9\n7,8,8\n"
	profilerText     = `Function                  Calls      Total Time   Avg Time
------------------------------------------------------------
assign_tas                12         0.5312       0.044267
evaluate                  240        1.2000       0.005000
`
)

// newBackend serves canned results under prefix and counts requests.
func newBackend(t *testing.T, prefix string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	routes := map[string]struct {
		body, contentType string
	}{
		"/call-counts":    {callCountsJSON, "application/json"},
		"/final-results":  {finalResultsJSON, "application/json"},
		"/time-profile":   {timeProfileJSON, "application/json"},
		"/summary-csv":    {summaryCSV, "text/csv"},
		"/profiler-table": {profilerText, "text/plain"},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		route, ok := routes[strings.TrimPrefix(r.URL.Path, prefix)]
		if !ok || !strings.HasPrefix(r.URL.Path, prefix) {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", route.contentType)
		w.Write([]byte(route.body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestClient(t *testing.T, base string) *Client {
	t.Helper()
	c, err := NewClient(base, 0, nil)
	if err != nil {
		t.Fatalf("NewClient(%q) returned error: %v", base, err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestRunRenderWritesPage(t *testing.T) {
	backend, _ := newBackend(t, "/api")
	layout, err := DefaultLayout(VariantAPI)
	if err != nil {
		t.Fatalf("DefaultLayout returned error: %v", err)
	}
	client := newTestClient(t, backend.URL+"/api")

	out := filepath.Join(t.TempDir(), "dashboard.html")
	if err := runRender(context.Background(), client, layout, out); err != nil {
		t.Fatalf("runRender returned error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	html := string(data)
	for _, want := range []string{`id="best-solution"`, `id="time-profile-chart"`, "Average Time per Function", "<rect"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestRunRenderReportsBackendFailure(t *testing.T) {
	backend, _ := newBackend(t, "/api")
	layout, _ := DefaultLayout(VariantAPI)
	client := newTestClient(t, backend.URL+"/elsewhere")

	out := filepath.Join(t.TempDir(), "dashboard.html")
	if err := runRender(context.Background(), client, layout, out); err == nil {
		t.Fatalf("expected error when every endpoint is missing")
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected partial page to be written: %v", err)
	}
}

func TestLoadLayoutPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	yaml := `title: Custom
backend: http://results:9000
charts:
  - id: profile
    endpoint: /profiler-table
    source: profiler
    category: function
    value: calls
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write layout: %v", err)
	}

	layout, err := loadLayout(path, "not-a-variant")
	if err != nil {
		t.Fatalf("loadLayout returned error: %v", err)
	}
	if layout.Title != "Custom" || len(layout.Charts) != 1 {
		t.Fatalf("unexpected layout: %+v", layout)
	}

	if _, err := loadLayout("", "not-a-variant"); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}
