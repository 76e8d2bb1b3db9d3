package main

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// profileHeaderLines is the number of leading lines of a profiler table
// (title and column names) that carry no data.
const profileHeaderLines = 2

// ProfileRecord is one row of a profiler summary table:
//
//	Function                  Calls      Total Time   Avg Time
//	assign_tas                12         0.5312       0.044267
//
// Calls is a whole number for well-formed input. All numeric fields are NaN
// when the corresponding token is missing or not a number.
type ProfileRecord struct {
	Function  string  `json:"function"`
	Calls     float64 `json:"calls"`
	TotalTime float64 `json:"total_time"`
	AvgTime   float64 `json:"avg_time"`
}

// ParseProfile parses a whitespace-delimited profiler table. The first two
// lines are discarded, blank lines are skipped, and fields map positionally.
// Malformed rows are kept with NaN fields rather than rejected.
func ParseProfile(raw string) []ProfileRecord {
	lines := strings.Split(raw, "\n")
	if len(lines) <= profileHeaderLines {
		return nil
	}

	var records []ProfileRecord
	for _, line := range lines[profileHeaderLines:] {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		records = append(records, ProfileRecord{
			Function:  fields[0],
			Calls:     fieldFloat(fields, 1),
			TotalTime: fieldFloat(fields, 2),
			AvgTime:   fieldFloat(fields, 3),
		})
	}
	return records
}

func fieldFloat(fields []string, i int) float64 {
	if i >= len(fields) {
		return math.NaN()
	}
	return lenientFloat(fields[i])
}

// numeral matches plain decimal numbers with an optional exponent. Hex,
// underscores, inf and nan are not numbers here.
var numeral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// lenientFloat converts s to a number, yielding NaN instead of an error.
// Blank input is zero.
func lenientFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if !numeral.MatchString(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Datum returns the record as a chart row keyed by its JSON field names.
func (r ProfileRecord) Datum() ChartDatum {
	return ChartDatum{
		"function":   r.Function,
		"calls":      r.Calls,
		"total_time": r.TotalTime,
		"avg_time":   r.AvgTime,
	}
}

// ProfileDatums converts records to chart rows, preserving order.
func ProfileDatums(records []ProfileRecord) []ChartDatum {
	rows := make([]ChartDatum, len(records))
	for i, r := range records {
		rows[i] = r.Datum()
	}
	return rows
}
