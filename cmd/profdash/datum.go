package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"
)

// ChartDatum is a generic chart row. Only the category and value keys
// selected for a chart are read.
type ChartDatum map[string]any

// Category returns the row's category label, or "" when key is absent.
func (d ChartDatum) Category(key string) string {
	v, ok := d[key]
	if !ok {
		return ""
	}
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Value returns the row's numeric value for key. Absent keys and values
// that are not numbers yield NaN.
func (d ChartDatum) Value(key string) float64 {
	v, ok := d[key]
	if !ok {
		return math.NaN()
	}
	switch v := v.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		return lenientFloat(v.String())
	case string:
		return lenientFloat(v)
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return math.NaN()
	}
}

// DecodeRows turns a JSON payload into chart rows. An array yields one row
// per element (non-object elements become empty rows). An object is
// flattened to one row per member, in document order, with the member name
// under categoryKey and its value under valueKey.
func DecodeRows(raw []byte, categoryKey, valueKey string) ([]ChartDatum, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, "decode rows")
	}

	var rows []ChartDatum
	switch tok {
	case json.Delim('['):
		for dec.More() {
			var v any
			if err := dec.Decode(&v); err != nil {
				return nil, errors.Wrapf(err, "decode row %d", len(rows))
			}
			obj, _ := v.(map[string]any)
			if obj == nil {
				obj = map[string]any{}
			}
			rows = append(rows, ChartDatum(obj))
		}
		if _, err := dec.Token(); err != nil {
			return nil, errors.Wrap(err, "decode rows")
		}
	case json.Delim('{'):
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, errors.Wrap(err, "decode member name")
			}
			key, _ := keyTok.(string)
			var v any
			if err := dec.Decode(&v); err != nil {
				return nil, errors.Wrapf(err, "decode member %q", key)
			}
			rows = append(rows, ChartDatum{categoryKey: key, valueKey: v})
		}
		if _, err := dec.Token(); err != nil {
			return nil, errors.Wrap(err, "decode rows")
		}
	case nil:
		// null has no rows
	default:
		return nil, errors.Newf("expected JSON array or object, got %v", tok)
	}
	if err := expectEOF(dec); err != nil {
		return nil, errors.Wrap(err, "decode rows")
	}
	return rows, nil
}

// expectEOF fails unless dec has nothing but whitespace left.
func expectEOF(dec *json.Decoder) error {
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "trailing data after top-level value")
	}
	return errors.Newf("trailing data after top-level value: %v", tok)
}

// SortRows returns a copy of rows ordered by key, largest first. Rows whose
// value is NaN sort last; ties keep their input order.
func SortRows(rows []ChartDatum, key string) []ChartDatum {
	sorted := make([]ChartDatum, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Value(key), sorted[j].Value(key)
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		return a > b
	})
	return sorted
}

// TopRows returns at most n leading rows. n <= 0 keeps them all.
func TopRows(rows []ChartDatum, n int) []ChartDatum {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}
