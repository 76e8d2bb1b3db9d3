package main

import (
	"fmt"
	"math"
)

const (
	chartWidth    = 800
	chartHeight   = 400
	bandPadding   = 0.1
	valueTicks    = 10
	barFill       = "steelblue"
	chartTextFill = "white"
)

type margin struct {
	top, right, bottom, left float64
}

// The bottom margin leaves room for rotated category labels.
var chartMargin = margin{top: 30, right: 20, bottom: 120, left: 80}

// ChartOptions selects the fields to plot and how to label them.
type ChartOptions struct {
	CategoryKey string
	ValueKey    string
	// Scale multiplies every value before plotting, for magnitudes too small
	// to read. Zero means 1.
	Scale  float64
	Title  string
	YLabel string
}

func (o ChartOptions) scale() float64 {
	if o.Scale == 0 {
		return 1
	}
	return o.Scale
}

func (o ChartOptions) title() string {
	if o.Title != "" {
		return o.Title
	}
	return fmt.Sprintf("%s by %s", o.ValueKey, o.CategoryKey)
}

func (o ChartOptions) yLabel() string {
	if o.YLabel != "" {
		return o.YLabel
	}
	return o.ValueKey
}

// Bar is one plotted rectangle in plot-area coordinates.
type Bar struct {
	Category string
	Value    float64 // scaled
	X, Y     float64
	Width    float64
	Height   float64
}

// BarChart is the computed geometry of a bar chart.
type BarChart struct {
	Band        *BandScale
	Value       *LinearScale
	Bars        []Bar
	Max         float64 // largest finite scaled value, 0 if none
	InnerWidth  float64
	InnerHeight float64
}

// LayoutBarChart computes scales and bars for records without drawing.
// Records are not modified.
func LayoutBarChart(records []ChartDatum, opts ChartOptions) BarChart {
	innerWidth := chartWidth - chartMargin.left - chartMargin.right
	innerHeight := chartHeight - chartMargin.top - chartMargin.bottom

	factor := opts.scale()
	categories := make([]string, len(records))
	values := make([]float64, len(records))
	maxValue := math.Inf(-1)
	for i, d := range records {
		categories[i] = d.Category(opts.CategoryKey)
		values[i] = d.Value(opts.ValueKey) * factor
		if v := values[i]; !math.IsNaN(v) && !math.IsInf(v, 0) && v > maxValue {
			maxValue = v
		}
	}

	// An empty or non-positive domain would collapse the value axis.
	upper := maxValue
	if !(upper > 0) {
		upper = 1
	}
	if math.IsInf(maxValue, -1) {
		maxValue = 0
	}

	chart := BarChart{
		Band:        NewBandScale(categories, 0, innerWidth, bandPadding),
		Value:       NewLinearScale(0, upper, innerHeight, 0).Nice(valueTicks),
		Max:         maxValue,
		InnerWidth:  innerWidth,
		InnerHeight: innerHeight,
	}

	chart.Bars = make([]Bar, len(records))
	for i, v := range values {
		x, _ := chart.Band.Position(categories[i])
		y := innerHeight
		if !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0 {
			y = math.Max(0, chart.Value.Map(v))
		}
		chart.Bars[i] = Bar{
			Category: categories[i],
			Value:    v,
			X:        x,
			Y:        y,
			Width:    chart.Band.Bandwidth(),
			Height:   innerHeight - y,
		}
	}
	return chart
}

// DrawBarChart clears s and draws records as a bar chart with axes, an axis
// title and a chart title. Redrawing the same data yields the same tree.
func DrawBarChart(s Surface, records []ChartDatum, opts ChartOptions) BarChart {
	s.Clear()
	chart := LayoutBarChart(records, opts)

	s.SetAttr("width", num(chartWidth))
	s.SetAttr("height", num(chartHeight))
	s.SetAttr("viewBox", fmt.Sprintf("0 0 %d %d", chartWidth, chartHeight))

	g := el("g", "transform", translate(chartMargin.left, chartMargin.top))
	g.Append(
		bottomAxis(chart.Band, chart.InnerHeight),
		leftAxis(chart.Value, valueTicks),
	)

	bars := el("g", "class", "bars")
	for _, b := range chart.Bars {
		bars.Append(el("rect",
			"x", num(b.X),
			"y", num(b.Y),
			"width", num(b.Width),
			"height", num(b.Height),
			"fill", barFill,
		))
	}
	g.Append(bars)

	g.Append(
		el("text",
			"class", "y-label",
			"x", num(-chart.InnerHeight/2),
			"y", num(-chartMargin.left+20),
			"transform", "rotate(-90)",
			"text-anchor", "middle",
			"font-size", "12px",
			"fill", chartTextFill,
		).WithText(opts.yLabel()),
		el("text",
			"class", "title",
			"x", num(chart.InnerWidth/2),
			"y", "-10",
			"text-anchor", "middle",
			"font-size", "14px",
			"fill", chartTextFill,
		).WithText(opts.title()),
	)

	s.Append(g)
	return chart
}

// SetupSurfaces gives every surface of doc a responsive width and a fixed
// height before any chart is drawn.
func SetupSurfaces(doc Document) {
	for _, s := range doc.Surfaces() {
		s.SetAttr("width", "100%")
		s.SetAttr("height", num(chartHeight))
	}
}
