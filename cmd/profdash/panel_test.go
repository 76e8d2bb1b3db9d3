package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func testPage() *Page {
	return NewPage(Layout{
		Title: "Test",
		Panels: []PanelSpec{
			{ID: "best-solution", Title: "Best Solution"},
			{ID: "summary-csv", Title: "Summary CSV"},
		},
		Charts: []ChartSpec{{ID: "time-profile-chart", Title: "Time Profile"}},
	})
}

func TestRenderPanelText(t *testing.T) {
	page := testPage()
	if err := RenderPanel(page, "summary-csv", "a,b\n1,2\n", 0); err != nil {
		t.Fatalf("RenderPanel returned error: %v", err)
	}
	if got := pageText(t, page, "summary-csv"); got != "a,b\n1,2\n" {
		t.Fatalf("expected raw text got %q", got)
	}
}

func TestRenderPanelJSON(t *testing.T) {
	page := testPage()
	payload := map[string]any{"conflicts": json.Number("1"), "note": "<b>&</b>"}
	if err := RenderPanel(page, "best-solution", payload, 0); err != nil {
		t.Fatalf("RenderPanel returned error: %v", err)
	}
	want := "{\n  \"conflicts\": 1,\n  \"note\": \"<b>&</b>\"\n}"
	if got := pageText(t, page, "best-solution"); got != want {
		t.Fatalf("expected %q got %q", want, got)
	}
}

func TestRenderPanelHeadLines(t *testing.T) {
	page := testPage()
	if err := RenderPanel(page, "summary-csv", summaryCSV, 6); err != nil {
		t.Fatalf("RenderPanel returned error: %v", err)
	}
	got := pageText(t, page, "summary-csv")
	if lines := strings.Split(got, "\n"); len(lines) != 6 {
		t.Fatalf("expected 6 lines got %d: %q", len(lines), got)
	}
	if !strings.HasPrefix(got, "group,overallocation") || strings.Contains(got, "6,9,9") {
		t.Fatalf("unexpected head: %q", got)
	}
}

func TestHeadLinesShortInput(t *testing.T) {
	if got := headLines("a\nb", 6); got != "a\nb" {
		t.Fatalf("expected short text unchanged got %q", got)
	}
}

func TestRenderPanelMissingRegion(t *testing.T) {
	err := RenderPanel(testPage(), "nowhere", "x", 0)
	if !errors.Is(err, ErrNoRegion) {
		t.Fatalf("expected ErrNoRegion got %v", err)
	}
}

func TestPageRenderEscapesPanelText(t *testing.T) {
	page := testPage()
	if err := RenderPanel(page, "best-solution", "<script>alert(1)</script>", 0); err != nil {
		t.Fatalf("RenderPanel returned error: %v", err)
	}
	DrawBarChart(mustSurface(t, page, "time-profile-chart"), []ChartDatum{{"f": "<x>", "v": 1}}, ChartOptions{CategoryKey: "f", ValueKey: "v"})

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	html := buf.String()
	if strings.Contains(html, "<script>alert") || strings.Contains(html, "<x>") {
		t.Fatalf("expected content to be escaped:\n%s", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatalf("expected escaped panel text:\n%s", html)
	}
	if !strings.Contains(html, `<section id="time-profile-chart">`) || !strings.Contains(html, "<svg") {
		t.Fatalf("expected chart section with svg:\n%s", html)
	}
}

func mustSurface(t *testing.T, doc Document, id string) Surface {
	t.Helper()
	s, err := doc.Surface(id)
	if err != nil {
		t.Fatalf("Surface(%q) returned error: %v", id, err)
	}
	return s
}

// pageText returns the current text of panel id.
func pageText(t *testing.T, page *Page, id string) string {
	t.Helper()
	for _, pn := range page.panels {
		if pn.id == id {
			return pn.text
		}
	}
	t.Fatalf("no panel %q", id)
	return ""
}
