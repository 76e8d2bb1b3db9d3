package main

import (
	"context"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// Dashboard fills a Document from the backend according to a Layout.
type Dashboard struct {
	client Fetcher
	layout Layout
}

func NewDashboard(client Fetcher, layout Layout) *Dashboard {
	return &Dashboard{client: client, layout: layout}
}

// Initialize populates doc in three phases, each finished before the next
// starts: text panels, surface setup, charts. A failure stops the sequence,
// so a failed panel fetch leaves every chart undrawn.
func (d *Dashboard) Initialize(ctx context.Context, doc Document) error {
	if err := d.loadPanels(ctx, doc); err != nil {
		return errors.Wrap(err, "load panels")
	}
	SetupSurfaces(doc)
	if err := d.loadCharts(ctx, doc); err != nil {
		return errors.Wrap(err, "load charts")
	}
	return nil
}

// loadPanels fetches all panel payloads concurrently and renders them in
// layout order once every fetch has succeeded.
func (d *Dashboard) loadPanels(ctx context.Context, doc Document) error {
	payloads := make([]any, len(d.layout.Panels))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range d.layout.Panels {
		i, p := i, p
		g.Go(func() error {
			v, err := d.fetchPanel(gctx, p)
			if err != nil {
				return errors.Wrapf(err, "panel %q", p.ID)
			}
			payloads[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, p := range d.layout.Panels {
		if err := RenderPanel(doc, p.ID, payloads[i], p.HeadLines); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dashboard) fetchPanel(ctx context.Context, p PanelSpec) (any, error) {
	if p.Kind == PanelText {
		return d.client.FetchText(ctx, p.Endpoint)
	}
	return d.client.FetchJSON(ctx, p.Endpoint)
}

func (d *Dashboard) loadCharts(ctx context.Context, doc Document) error {
	for _, c := range d.layout.Charts {
		surface, err := doc.Surface(c.ID)
		if err != nil {
			return err
		}
		rows, err := d.chartRows(ctx, c)
		if err != nil {
			return errors.Wrapf(err, "chart %q", c.ID)
		}
		DrawBarChart(surface, rows, c.Options())
	}
	return nil
}

// chartRows fetches and reshapes the rows of one chart.
func (d *Dashboard) chartRows(ctx context.Context, c ChartSpec) ([]ChartDatum, error) {
	var rows []ChartDatum
	switch c.Source {
	case SourceProfiler:
		text, err := d.client.FetchText(ctx, c.Endpoint)
		if err != nil {
			return nil, err
		}
		rows = ProfileDatums(ParseProfile(text))
	default:
		raw, err := d.client.FetchRaw(ctx, c.Endpoint)
		if err != nil {
			return nil, err
		}
		if rows, err = DecodeRows(raw, c.CategoryKey, c.ValueKey); err != nil {
			return nil, err
		}
	}

	if c.SortBy != "" {
		rows = SortRows(rows, c.SortBy)
	}
	return TopRows(rows, c.TopN), nil
}
