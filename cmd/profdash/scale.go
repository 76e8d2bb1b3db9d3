package main

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// BandScale maps categories to evenly spaced bands across a range.
// Duplicate categories collapse into the band of their first occurrence.
type BandScale struct {
	domain    []string
	index     map[string]int
	r0, r1    float64
	start     float64
	step      float64
	bandwidth float64
}

// NewBandScale lays out the distinct categories over [r0, r1]. padding is the
// fraction of each step left empty between bands and before the first and
// after the last band.
func NewBandScale(categories []string, r0, r1, padding float64) *BandScale {
	s := &BandScale{index: make(map[string]int, len(categories))}
	for _, c := range categories {
		if _, ok := s.index[c]; ok {
			continue
		}
		s.index[c] = len(s.domain)
		s.domain = append(s.domain, c)
	}

	if r1 < r0 {
		r0, r1 = r1, r0
	}
	s.r0, s.r1 = r0, r1
	n := float64(len(s.domain))
	s.step = (r1 - r0) / math.Max(1, n-padding+padding*2)
	s.start = r0 + (r1-r0-s.step*(n-padding))*0.5
	s.bandwidth = s.step * (1 - padding)
	return s
}

// Domain returns the distinct categories in first-occurrence order.
func (s *BandScale) Domain() []string { return s.domain }

func (s *BandScale) Range() (float64, float64) { return s.r0, s.r1 }

func (s *BandScale) Bandwidth() float64 { return s.bandwidth }

func (s *BandScale) Step() float64 { return s.step }

// Position returns the start of category's band.
func (s *BandScale) Position(category string) (float64, bool) {
	i, ok := s.index[category]
	if !ok {
		return 0, false
	}
	return s.start + s.step*float64(i), true
}

// LinearScale maps a continuous domain onto a continuous range.
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

func NewLinearScale(d0, d1, r0, r1 float64) *LinearScale {
	return &LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

func (s *LinearScale) Domain() (float64, float64) { return s.d0, s.d1 }

func (s *LinearScale) Range() (float64, float64) { return s.r0, s.r1 }

// Map converts v from the domain to the range. A zero-width domain maps
// everything to the middle of the range.
func (s *LinearScale) Map(v float64) float64 {
	if s.d1 == s.d0 {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// Nice extends the domain so both ends fall on round tick boundaries.
func (s *LinearScale) Nice(count int) *LinearScale {
	start, stop := s.d0, s.d1
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}

	var prestep float64
	for i := 0; i < 10; i++ {
		step := tickIncrement(start, stop, count)
		if step == 0 || step == prestep {
			break
		}
		if step > 0 {
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		} else {
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		}
		prestep = step
	}

	if reversed {
		start, stop = stop, start
	}
	s.d0, s.d1 = zeroSign(start), zeroSign(stop)
	return s
}

// Ticks returns roughly count round values spanning the domain.
func (s *LinearScale) Ticks(count int) []float64 {
	start, stop := s.d0, s.d1
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}

	i1, i2, inc := tickSpec(start, stop, float64(count))
	if i2 < i1 {
		return nil
	}
	ticks := make([]float64, 0, int(i2-i1)+1)
	for i := i1; i <= i2; i++ {
		if inc < 0 {
			ticks = append(ticks, zeroSign(i/-inc))
		} else {
			ticks = append(ticks, zeroSign(i*inc))
		}
	}
	if reversed {
		for l, r := 0, len(ticks)-1; l < r; l, r = l+1, r-1 {
			ticks[l], ticks[r] = ticks[r], ticks[l]
		}
	}
	return ticks
}

var tickPrinter = message.NewPrinter(language.English)

// TickFormat returns a formatter for the values of Ticks(count): grouped
// thousands and just enough fraction digits to tell neighbouring ticks apart.
func (s *LinearScale) TickFormat(count int) func(float64) string {
	start, stop := s.d0, s.d1
	if stop < start {
		start, stop = stop, start
	}
	precision := 0
	if step := tickStep(start, stop, count); step > 0 && !math.IsInf(step, 0) {
		precision = max(0, -exponent10(step))
	}
	return func(v float64) string {
		return tickPrinter.Sprint(number.Decimal(zeroSign(v), number.Scale(precision)))
	}
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

func niceFactor(err float64) float64 {
	switch {
	case err >= e10:
		return 10
	case err >= e5:
		return 5
	case err >= e2:
		return 2
	default:
		return 1
	}
}

// exponent10 is floor(log10(x)) with the rounding error of math.Log10 at
// exact powers of ten corrected.
func exponent10(x float64) int {
	p := math.Floor(math.Log10(x))
	if math.Pow(10, p+1) <= x {
		p++
	}
	return int(p)
}

// tickIncrement returns the tick step for [start, stop] as either a
// positive step or, for steps below one, the negated reciprocal.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / math.Max(0, float64(count))
	if !(step > 0) || math.IsInf(step, 0) {
		return 0
	}
	power := exponent10(step)
	factor := niceFactor(step / math.Pow(10, float64(power)))
	if power >= 0 {
		return factor * math.Pow(10, float64(power))
	}
	return -math.Pow(10, float64(-power)) / factor
}

func tickStep(start, stop float64, count int) float64 {
	inc := tickIncrement(start, stop, count)
	if inc < 0 {
		return 1 / -inc
	}
	return inc
}

// tickSpec returns the integer tick index range [i1, i2] and the increment.
// A negative increment means tick i is i / -inc.
func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	if !(step > 0) || math.IsInf(step, 0) {
		return 0, -1, 0
	}
	power := exponent10(step)
	factor := niceFactor(step / math.Pow(10, float64(power)))
	if power < 0 {
		inc = math.Pow(10, float64(-power)) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, float64(power)) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// zeroSign turns -0 into 0 so it never prints as "-0".
func zeroSign(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
