// Package format encodes command output. Structured formats (json, edn) wrap the
// payload in a {"data": ...} envelope; the text format renders for terminals.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	JSON = "json"
	EDN  = "edn"
	Text = "text"
)

func Valid(format string) bool {
	switch strings.TrimSpace(format) {
	case "", JSON, EDN, Text:
		return true
	}
	return false
}

// Write writes v in a structured format. The text format is rendered by the
// typed helpers in text.go instead.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.TrimSpace(format) {
	case "", JSON:
		return WriteJSON(w, v, pretty)
	case EDN:
		return WriteEDN(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
