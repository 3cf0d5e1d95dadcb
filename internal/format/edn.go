package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// WriteEDN writes v as EDN. Values go through encoding/json first so json tags
// decide field names; map keys become kebab-case keywords (projectId -> :project-id).
func WriteEDN(w io.Writer, v any, pretty bool) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}

	var sb strings.Builder
	e := ednWriter{sb: &sb, pretty: pretty}
	e.value(x, 0)
	sb.WriteByte('\n')
	_, err = io.WriteString(w, sb.String())
	return err
}

type ednWriter struct {
	sb     *strings.Builder
	pretty bool
}

func (e ednWriter) value(v any, depth int) {
	switch t := v.(type) {
	case nil:
		e.sb.WriteString("nil")
	case bool:
		e.sb.WriteString(strconv.FormatBool(t))
	case json.Number:
		e.sb.WriteString(t.String())
	case string:
		e.sb.WriteString(strconv.Quote(t))
	case []any:
		e.sb.WriteByte('[')
		for i, item := range t {
			e.sep(i, depth+1)
			e.value(item, depth+1)
		}
		e.close(len(t), depth, ']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.sb.WriteByte('{')
		for i, k := range keys {
			e.sep(i, depth+1)
			e.sb.WriteString(ednKeyword(k))
			e.sb.WriteByte(' ')
			e.value(t[k], depth+1)
		}
		e.close(len(keys), depth, '}')
	default:
		e.sb.WriteString(strconv.Quote(fmt.Sprint(v)))
	}
}

func (e ednWriter) sep(i, depth int) {
	switch {
	case e.pretty:
		e.sb.WriteByte('\n')
		e.sb.WriteString(strings.Repeat("  ", depth))
	case i > 0:
		e.sb.WriteByte(' ')
	}
}

func (e ednWriter) close(n, depth int, c byte) {
	if e.pretty && n > 0 {
		e.sb.WriteByte('\n')
		e.sb.WriteString(strings.Repeat("  ", depth))
	}
	e.sb.WriteByte(c)
}

func ednKeyword(k string) string {
	var sb strings.Builder
	sb.WriteByte(':')
	for i, r := range strings.TrimSpace(k) {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			sb.WriteByte('-')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
