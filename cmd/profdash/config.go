package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const (
	PanelText = "text"
	PanelJSON = "json"

	SourceJSON     = "json"
	SourceProfiler = "profiler"

	// VariantFlask talks to the results service directly on its own port.
	VariantFlask = "flask"
	// VariantAPI goes through a web front end that proxies the service under /api.
	VariantAPI = "api"
)

// PanelSpec describes a text panel and where its content comes from.
type PanelSpec struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Endpoint string `yaml:"endpoint"`
	// Kind is "json" (pretty-printed) or "text" (shown verbatim).
	Kind      string `yaml:"kind"`
	HeadLines int    `yaml:"head_lines"`
}

// ChartSpec describes a bar chart and the endpoint feeding it.
type ChartSpec struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Endpoint string `yaml:"endpoint"`
	// Source is "json" (rows or a flat object) or "profiler" (a profiler
	// summary table in plain text).
	Source      string  `yaml:"source"`
	CategoryKey string  `yaml:"category"`
	ValueKey    string  `yaml:"value"`
	Scale       float64 `yaml:"scale"`
	YLabel      string  `yaml:"y_label"`
	SortBy      string  `yaml:"sort_by"`
	TopN        int     `yaml:"top_n"`
}

func (c ChartSpec) Options() ChartOptions {
	return ChartOptions{
		CategoryKey: c.CategoryKey,
		ValueKey:    c.ValueKey,
		Scale:       c.Scale,
		Title:       c.Title,
		YLabel:      c.YLabel,
	}
}

// Layout is the full description of a dashboard page.
type Layout struct {
	Title   string      `yaml:"title"`
	Backend string      `yaml:"backend"`
	Panels  []PanelSpec `yaml:"panels"`
	Charts  []ChartSpec `yaml:"charts"`
}

// DefaultLayout returns the built-in layout for a deployment variant.
func DefaultLayout(variant string) (Layout, error) {
	switch variant {
	case VariantFlask:
		return Layout{
			Title:   "TA Assignment Results",
			Backend: "http://ta-backend:5001",
			Panels: []PanelSpec{
				{ID: "best-solution", Title: "Best Solution", Endpoint: "/final-results", Kind: PanelJSON},
				{ID: "profiler-summary", Title: "Profiler Summary", Endpoint: "/time-profile", Kind: PanelJSON},
				{ID: "summary-csv", Title: "Summary CSV", Endpoint: "/summary-csv", Kind: PanelText, HeadLines: 6},
			},
			Charts: []ChartSpec{
				{ID: "time-profile-chart", Title: "Time Profile", Endpoint: "/time-profile", Source: SourceJSON, CategoryKey: "function", ValueKey: "time"},
				{ID: "final-results-chart", Title: "Final Results", Endpoint: "/final-results", Source: SourceJSON, CategoryKey: "metric", ValueKey: "value"},
				{ID: "call-counts-chart", Title: "Call Counts", Endpoint: "/call-counts", Source: SourceJSON, CategoryKey: "function", ValueKey: "calls"},
			},
		}, nil
	case VariantAPI:
		return Layout{
			Title:   "TA Assignment Results",
			Backend: "http://localhost:3000/api",
			Panels: []PanelSpec{
				{ID: "best-solution", Title: "Best Solution", Endpoint: "/final-results", Kind: PanelJSON},
				{ID: "profiler-summary", Title: "Profiler Summary", Endpoint: "/call-counts", Kind: PanelJSON},
			},
			Charts: []ChartSpec{
				{
					ID:          "time-profile-chart",
					Title:       "Average Time per Function",
					Endpoint:    "/call-counts",
					Source:      SourceJSON,
					CategoryKey: "function",
					ValueKey:    "avg_time",
					Scale:       100000,
					YLabel:      "Average Time (ms)",
				},
			},
		}, nil
	default:
		return Layout{}, errors.Newf("unknown variant %q (want %q or %q)", variant, VariantFlask, VariantAPI)
	}
}

// LoadLayout reads a YAML layout file and validates it.
func LoadLayout(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, errors.Wrap(err, "open layout")
	}
	defer f.Close()

	var layout Layout
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&layout); err != nil {
		return Layout{}, errors.Wrapf(err, "parse layout %s", path)
	}
	if err := layout.Validate(); err != nil {
		return Layout{}, errors.Wrapf(err, "layout %s", path)
	}
	return layout, nil
}

// Validate checks that every region has a unique id, an endpoint and a known
// kind, and that every chart names the fields it plots.
func (l Layout) Validate() error {
	ids := make(map[string]struct{})
	checkID := func(id string) error {
		if id == "" {
			return errors.New("region with empty id")
		}
		if _, ok := ids[id]; ok {
			return errors.Newf("duplicate region id %q", id)
		}
		ids[id] = struct{}{}
		return nil
	}

	for _, p := range l.Panels {
		if err := checkID(p.ID); err != nil {
			return err
		}
		if p.Endpoint == "" {
			return errors.Newf("panel %q: missing endpoint", p.ID)
		}
		if p.Kind != PanelText && p.Kind != PanelJSON {
			return errors.Newf("panel %q: unknown kind %q", p.ID, p.Kind)
		}
		if p.HeadLines < 0 {
			return errors.Newf("panel %q: negative head_lines", p.ID)
		}
	}

	for _, c := range l.Charts {
		if err := checkID(c.ID); err != nil {
			return err
		}
		if c.Endpoint == "" {
			return errors.Newf("chart %q: missing endpoint", c.ID)
		}
		if c.Source != SourceJSON && c.Source != SourceProfiler {
			return errors.Newf("chart %q: unknown source %q", c.ID, c.Source)
		}
		if c.CategoryKey == "" || c.ValueKey == "" {
			return errors.Newf("chart %q: category and value keys are required", c.ID)
		}
		if c.Scale < 0 {
			return errors.Newf("chart %q: negative scale", c.ID)
		}
		if c.TopN < 0 {
			return errors.Newf("chart %q: negative top_n", c.ID)
		}
	}
	return nil
}
