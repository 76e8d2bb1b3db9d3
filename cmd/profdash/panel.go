package main

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

// RenderPanel replaces the text of panel id with payload. Strings are shown
// as-is; any other value is shown as JSON indented by two spaces. head > 0
// keeps only that many leading lines.
func RenderPanel(doc Document, id string, payload any, head int) error {
	sink, err := doc.Panel(id)
	if err != nil {
		return err
	}
	text, err := panelText(payload)
	if err != nil {
		return errors.Wrapf(err, "panel %q", id)
	}
	sink.SetText(headLines(text, head))
	return nil
}

func panelText(payload any) (string, error) {
	if s, ok := payload.(string); ok {
		return s, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return "", errors.Wrap(err, "format payload")
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// headLines keeps the first n lines of text.
func headLines(text string, n int) string {
	if n <= 0 {
		return text
	}
	lines := strings.SplitN(text, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
