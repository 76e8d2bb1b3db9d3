package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLayoutsValidate(t *testing.T) {
	for _, variant := range []string{VariantFlask, VariantAPI} {
		layout, err := DefaultLayout(variant)
		if err != nil {
			t.Fatalf("DefaultLayout(%q) returned error: %v", variant, err)
		}
		if err := layout.Validate(); err != nil {
			t.Fatalf("DefaultLayout(%q) is invalid: %v", variant, err)
		}
		if _, err := NewClient(layout.Backend, 0, nil); err != nil {
			t.Fatalf("DefaultLayout(%q) has unusable backend: %v", variant, err)
		}
	}
}

func TestDefaultLayoutUnknownVariant(t *testing.T) {
	if _, err := DefaultLayout("django"); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}

func TestDefaultLayoutAPIChart(t *testing.T) {
	layout, _ := DefaultLayout(VariantAPI)
	if len(layout.Charts) != 1 {
		t.Fatalf("expected a single chart got %d", len(layout.Charts))
	}
	opts := layout.Charts[0].Options()
	if opts.Scale != 100000 || opts.ValueKey != "avg_time" || opts.CategoryKey != "function" {
		t.Fatalf("unexpected chart options %+v", opts)
	}
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	data := `title: Benchmarks
backend: http://bench:8000/api
panels:
  - id: summary
    title: Summary
    endpoint: /summary-csv
    kind: text
    head_lines: 3
charts:
  - id: calls
    title: Calls
    endpoint: /call-counts
    source: json
    category: function
    value: calls
    sort_by: calls
    top_n: 10
  - id: avg
    endpoint: /profile.txt
    source: profiler
    category: function
    value: avg_time
    scale: 1000
    y_label: Average Time (ms)
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write layout: %v", err)
	}

	layout, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("LoadLayout returned error: %v", err)
	}
	if layout.Backend != "http://bench:8000/api" || len(layout.Panels) != 1 || len(layout.Charts) != 2 {
		t.Fatalf("unexpected layout %+v", layout)
	}
	if p := layout.Panels[0]; p.Kind != PanelText || p.HeadLines != 3 {
		t.Fatalf("unexpected panel %+v", p)
	}
	if c := layout.Charts[0]; c.SortBy != "calls" || c.TopN != 10 {
		t.Fatalf("unexpected chart %+v", c)
	}
	if c := layout.Charts[1]; c.Source != SourceProfiler || c.Scale != 1000 || c.YLabel != "Average Time (ms)" {
		t.Fatalf("unexpected chart %+v", c)
	}
}

func TestLoadLayoutRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte("title: x\ncolour: red\n"), 0644); err != nil {
		t.Fatalf("failed to write layout: %v", err)
	}
	if _, err := LoadLayout(path); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestLayoutValidate(t *testing.T) {
	chart := func(mod func(*ChartSpec)) Layout {
		c := ChartSpec{ID: "c", Endpoint: "/e", Source: SourceJSON, CategoryKey: "k", ValueKey: "v"}
		mod(&c)
		return Layout{Charts: []ChartSpec{c}}
	}
	cases := map[string]struct {
		layout Layout
		want   string
	}{
		"empty id":       {Layout{Panels: []PanelSpec{{Endpoint: "/e", Kind: PanelText}}}, "empty id"},
		"duplicate id":   {Layout{Panels: []PanelSpec{{ID: "c", Endpoint: "/e", Kind: PanelText}}, Charts: chart(func(*ChartSpec) {}).Charts}, "duplicate"},
		"panel endpoint": {Layout{Panels: []PanelSpec{{ID: "p", Kind: PanelText}}}, "missing endpoint"},
		"panel kind":     {Layout{Panels: []PanelSpec{{ID: "p", Endpoint: "/e", Kind: "xml"}}}, "unknown kind"},
		"head lines":     {Layout{Panels: []PanelSpec{{ID: "p", Endpoint: "/e", Kind: PanelText, HeadLines: -1}}}, "head_lines"},
		"chart source":   {chart(func(c *ChartSpec) { c.Source = "csv" }), "unknown source"},
		"chart keys":     {chart(func(c *ChartSpec) { c.ValueKey = "" }), "keys are required"},
		"chart scale":    {chart(func(c *ChartSpec) { c.Scale = -1 }), "negative scale"},
		"chart top n":    {chart(func(c *ChartSpec) { c.TopN = -2 }), "negative top_n"},
		"chart endpoint": {chart(func(c *ChartSpec) { c.Endpoint = "" }), "missing endpoint"},
	}
	for name, tc := range cases {
		err := tc.layout.Validate()
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q got %v", name, tc.want, err)
		}
	}

	if err := chart(func(*ChartSpec) {}).Validate(); err != nil {
		t.Fatalf("expected valid layout got %v", err)
	}
}
