package main

import "fmt"

const tickSize = 6

func axisGroup(class string, transform string) *Element {
	g := el("g",
		"class", class,
		"fill", "none",
		"font-size", "10",
		"font-family", "sans-serif",
	)
	if transform != "" {
		g.Set("transform", transform)
	}
	return g
}

// bottomAxis draws one tick per band at its centre. Labels are rotated and
// end-anchored so long category names do not overlap.
func bottomAxis(band *BandScale, innerHeight float64) *Element {
	g := axisGroup("axis axis-x", translate(0, innerHeight))
	g.Set("text-anchor", "middle")

	r0, r1 := band.Range()
	g.Append(el("path",
		"class", "domain",
		"stroke", "currentColor",
		"d", fmt.Sprintf("M%s,%dV0H%sV%d", num(r0), tickSize, num(r1), tickSize),
	))

	offset := band.Bandwidth() / 2
	for _, c := range band.Domain() {
		x, _ := band.Position(c)
		tick := el("g", "class", "tick", "opacity", "1", "transform", translate(x+offset, 0))
		tick.Append(
			el("line", "stroke", "currentColor", "y2", num(tickSize)),
			el("text",
				"fill", "currentColor",
				"y", num(tickSize+3),
				"dy", "0.71em",
				"transform", "rotate(-45)",
				"text-anchor", "end",
				"font-size", "10px",
			).WithText(c),
		)
		g.Append(tick)
	}
	return g
}

// leftAxis draws the value scale's ticks with grouped number labels.
func leftAxis(scale *LinearScale, count int) *Element {
	g := axisGroup("axis axis-y", "")
	g.Set("text-anchor", "end")

	r0, r1 := scale.Range()
	g.Append(el("path",
		"class", "domain",
		"stroke", "currentColor",
		"d", fmt.Sprintf("M-%d,%sH0V%sH-%d", tickSize, num(r0), num(r1), tickSize),
	))

	format := scale.TickFormat(count)
	for _, t := range scale.Ticks(count) {
		tick := el("g", "class", "tick", "opacity", "1", "transform", translate(0, scale.Map(t)))
		tick.Append(
			el("line", "stroke", "currentColor", "x2", num(-tickSize)),
			el("text",
				"fill", "currentColor",
				"x", num(-(tickSize+3)),
				"dy", "0.32em",
			).WithText(format(t)),
		)
		g.Append(tick)
	}
	return g
}
