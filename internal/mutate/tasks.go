// Package mutate holds the collection transforms behind every board operation.
//
// Functions never modify their input slices; they return a new collection.
// Callers are responsible for persisting the result and recounting projects.
package mutate

import (
	"time"

	"taskboard/internal/model"
)

// AddTask appends a task built from in. Its order key is strictly greater than any
// existing key so the newest task sorts first.
func AddTask(tasks []model.Task, in model.TaskInput, id string, now time.Time) ([]model.Task, model.Task) {
	t := model.Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		ProjectID:   in.ProjectID,
		Priority:    in.Priority,
		Status:      in.Status,
		DueDate:     copyTime(in.DueDate),
		Assignee:    in.Assignee,
		CreatedAt:   now,
		Order:       nextOrder(tasks, now),
	}
	if t.Completed() {
		c := now
		t.CompletedAt = &c
	}
	out := make([]model.Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	out = append(out, t)
	return out, t
}

// UpdateTask merges patch into the task with the given id. The second result is
// false when no task matched; the collection is then returned unchanged.
func UpdateTask(tasks []model.Task, id string, patch model.TaskPatch, now time.Time) ([]model.Task, bool) {
	idx := indexOfTask(tasks, id)
	if idx < 0 {
		return tasks, false
	}
	out := append([]model.Task(nil), tasks...)
	out[idx] = ApplyTaskPatch(out[idx], patch, now)
	return out, true
}

// ApplyTaskPatch merges patch into t and maintains completedAt: set on a transition
// into completed, kept while completed, cleared otherwise.
func ApplyTaskPatch(t model.Task, patch model.TaskPatch, now time.Time) model.Task {
	prev := t.Status
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.ProjectID != nil {
		t.ProjectID = *patch.ProjectID
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.DueDate != nil {
		t.DueDate = copyTime(patch.DueDate)
	}
	if patch.ClearDueDate {
		t.DueDate = nil
	}
	if patch.Assignee != nil {
		t.Assignee = *patch.Assignee
	}
	if patch.Order != nil {
		t.Order = *patch.Order
	}

	switch {
	case !t.Completed():
		t.CompletedAt = nil
	case prev != model.StatusCompleted || t.CompletedAt == nil:
		c := now
		if c.Before(t.CreatedAt) {
			c = t.CreatedAt
		}
		t.CompletedAt = &c
	}
	return t
}

// DeleteTask removes the task with the given id, reporting whether it existed.
func DeleteTask(tasks []model.Task, id string) ([]model.Task, bool) {
	idx := indexOfTask(tasks, id)
	if idx < 0 {
		return tasks, false
	}
	out := make([]model.Task, 0, len(tasks)-1)
	out = append(out, tasks[:idx]...)
	out = append(out, tasks[idx+1:]...)
	return out, true
}

// ReassignProject moves every task of project from into project to and returns
// how many moved.
func ReassignProject(tasks []model.Task, from, to string) ([]model.Task, int) {
	out := append([]model.Task(nil), tasks...)
	n := 0
	for i := range out {
		if out[i].ProjectID == from {
			out[i].ProjectID = to
			n++
		}
	}
	return out, n
}

// ReorderByIDs assigns fresh order keys so the listed tasks sort first, in the
// listed sequence. Unknown and repeated ids are ignored; other tasks keep their keys.
func ReorderByIDs(tasks []model.Task, ids []string, now time.Time) []model.Task {
	out := append([]model.Task(nil), tasks...)
	seen := map[string]bool{}
	var idxs []int
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if i := indexOfTask(out, id); i >= 0 {
			idxs = append(idxs, i)
		}
	}
	top := nextOrder(tasks, now) + int64(len(idxs)) - 1
	for n, i := range idxs {
		out[i].Order = top - int64(n)
	}
	return out
}

func nextOrder(tasks []model.Task, now time.Time) int64 {
	order := now.UnixMilli()
	for _, t := range tasks {
		if t.Order >= order {
			order = t.Order + 1
		}
	}
	return order
}

func indexOfTask(tasks []model.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
