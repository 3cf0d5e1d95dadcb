package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"taskboard/internal/model"
)

var (
	reDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reDateTime = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}$`)
	reHexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// parseDue parses:
// - YYYY-MM-DD (midnight UTC)
// - YYYY-MM-DD HH:MM (UTC)
// - RFC3339 / RFC3339Nano (normalized to UTC)
func parseDue(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, invalidInput("due", "empty date")
	}

	var (
		ts  time.Time
		err error
	)
	switch {
	case reDateOnly.MatchString(s):
		ts, err = time.Parse("2006-01-02", s)
	case reDateTime.MatchString(s):
		ts, err = time.Parse("2006-01-02 15:04", strings.Replace(s, "T", " ", 1))
	default:
		ts, err = time.Parse(time.RFC3339Nano, s)
	}
	if err != nil {
		return nil, invalidInput("due", fmt.Sprintf("%q (expected YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)", s))
	}
	ts = ts.UTC()
	return &ts, nil
}

func parseTitle(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalidInput("title", "must not be empty")
	}
	return s, nil
}

func parseProjectName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalidInput("name", "must not be empty")
	}
	return s, nil
}

func parseColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !reHexColor.MatchString(s) {
		return "", invalidInput("color", fmt.Sprintf("%q (expected #rgb or #rrggbb)", s))
	}
	return strings.ToLower(s), nil
}

func parsePriority(s string) (model.Priority, error) {
	p, err := model.ParsePriority(s)
	if err != nil {
		return "", invalidInput("priority", err.Error())
	}
	return p, nil
}

func parseStatus(s string) (model.Status, error) {
	st, err := model.ParseStatus(s)
	if err != nil {
		return "", invalidInput("status", err.Error())
	}
	return st, nil
}

// parseStatusFilter accepts a status or "all".
func parseStatusFilter(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == model.All {
		return model.All, nil
	}
	st, err := parseStatus(s)
	return string(st), err
}

// parsePriorityFilter accepts a priority or "all".
func parsePriorityFilter(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == model.All {
		return model.All, nil
	}
	p, err := parsePriority(s)
	return string(p), err
}
