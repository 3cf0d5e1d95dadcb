package model

import (
	"fmt"
	"strings"
	"time"
)

// DefaultProjectID is the reserved fallback project. It can never be deleted.
const DefaultProjectID = "default"

// All is the sentinel for "no restriction" in filters and project selection.
const All = "all"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q (want low|medium|high|urgent)", s)
	}
	return p, nil
}

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

var Statuses = []Status{StatusTodo, StatusInProgress, StatusCompleted}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Next returns the following status in the todo -> in-progress -> completed -> todo cycle.
// Unknown statuses restart the cycle at todo.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return StatusTodo
	}
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("invalid status %q (want todo|in-progress|completed)", s)
	}
	return st, nil
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ProjectID   string     `json:"projectId"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Assignee    string     `json:"assignee,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// Order is the sort key; larger sorts first.
	Order int64 `json:"order"`
}

func (t Task) Completed() bool { return t.Status == StatusCompleted }

// Overdue reports whether the task has a due date strictly before now and is not completed.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Completed()
}

type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`

	// TaskCount is derived from the task collection and recomputed after every
	// membership change. Never set it by hand.
	TaskCount int `json:"taskCount"`
}

// TaskInput carries the caller-supplied fields of a new task.
// Id, createdAt and order are assigned on creation.
type TaskInput struct {
	Title       string
	Description string
	ProjectID   string
	Priority    Priority
	Status      Status
	DueDate     *time.Time
	Assignee    string
}

// TaskPatch is a partial update; nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	ProjectID   *string
	Priority    *Priority
	Status      *Status
	DueDate     *time.Time
	Assignee    *string
	Order       *int64

	// ClearDueDate removes the due date. It wins over DueDate.
	ClearDueDate bool
}

type ProjectPatch struct {
	Name  *string
	Color *string
}

type Filters struct {
	Search    string `json:"search"`
	Status    string `json:"status"`
	Priority  string `json:"priority"`
	ProjectID string `json:"projectId"`
}

func DefaultFilters() Filters {
	return Filters{Status: All, Priority: All, ProjectID: All}
}

// Normalize fills empty selectors with the "all" sentinel.
func (f Filters) Normalize() Filters {
	if strings.TrimSpace(f.Status) == "" {
		f.Status = All
	}
	if strings.TrimSpace(f.Priority) == "" {
		f.Priority = All
	}
	if strings.TrimSpace(f.ProjectID) == "" {
		f.ProjectID = All
	}
	return f
}

type Analytics struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	InProgress     int `json:"inProgress"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completionRate"`
}
