// Package view computes derived data from the task and project collections:
// the filtered and sorted task list, per-project counts and analytics.
// Everything here is pure and recomputed on demand.
package view

import (
	"math"
	"sort"
	"strings"
	"time"

	"taskboard/internal/model"
)

// Matches reports whether t passes every active filter. selectedProjectID is the
// project selector; "all" (or empty) disables it.
func Matches(t model.Task, f model.Filters, selectedProjectID string) bool {
	if q := strings.ToLower(f.Search); q != "" {
		if !strings.Contains(strings.ToLower(t.Title), q) && !strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	if f.Status != "" && f.Status != model.All && string(t.Status) != f.Status {
		return false
	}
	if f.Priority != "" && f.Priority != model.All && string(t.Priority) != f.Priority {
		return false
	}
	if selectedProjectID != "" && selectedProjectID != model.All && t.ProjectID != selectedProjectID {
		return false
	}
	return true
}

func Filter(tasks []model.Task, f model.Filters, selectedProjectID string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if Matches(t, f, selectedProjectID) {
			out = append(out, t)
		}
	}
	return out
}

// Sort orders incomplete tasks before completed ones, then by descending Order.
// It sorts in place and is stable for equal keys.
func Sort(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Completed() != b.Completed() {
			return !a.Completed()
		}
		return a.Order > b.Order
	})
}

// Tasks returns the filtered and sorted list shown to the user.
func Tasks(tasks []model.Task, f model.Filters, selectedProjectID string) []model.Task {
	out := Filter(tasks, f, selectedProjectID)
	Sort(out)
	return out
}

// ComputeAnalytics aggregates over the whole collection, ignoring filters.
func ComputeAnalytics(tasks []model.Task, now time.Time) model.Analytics {
	a := model.Analytics{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case model.StatusCompleted:
			a.Completed++
		case model.StatusInProgress:
			a.InProgress++
		}
		if t.Overdue(now) {
			a.Overdue++
		}
	}
	a.CompletionRate = CompletionRate(a.Completed, a.Total)
	return a
}

// CompletionRate is round(100*completed/total), or 0 for an empty collection.
func CompletionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// CountByProject maps project id to the number of tasks referencing it.
func CountByProject(tasks []model.Task) map[string]int {
	out := make(map[string]int, len(tasks))
	for _, t := range tasks {
		out[t.ProjectID]++
	}
	return out
}
