// Package board owns the task and project collections together with the current
// project selection and filters. Every change goes through a Board method, which
// replaces the in-memory collection, writes it through to persistence and keeps
// project task counts in step with task membership.
//
// A Board is not safe for concurrent use; presentation layers drive it from a
// single goroutine.
package board

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/mutate"
	"taskboard/internal/store"
	"taskboard/internal/view"
)

// Persistence is the durable side of the board. Implementations are best-effort
// and must not fail the caller; see store.Store.
type Persistence interface {
	LoadTasks() []model.Task
	SaveTasks(tasks []model.Task)
	LoadProjects() []model.Project
	SaveProjects(projects []model.Project)
}

// ViewStatePersistence is optionally implemented by a Persistence to remember
// the selection and filters across runs.
type ViewStatePersistence interface {
	LoadViewState() (store.ViewState, bool)
	SaveViewState(vs store.ViewState)
}

// RecoveryReporter is optionally implemented by a Persistence whose stored
// projects could not be read and were replaced by an unsaved stand-in.
type RecoveryReporter interface {
	ProjectsRecovered() bool
}

type Board struct {
	p     Persistence
	log   *log.Logger
	now   func() time.Time
	newID func() string

	defaultProject func() model.Project

	tasks             []model.Task
	projects          []model.Project
	selectedProjectID string
	filters           model.Filters
}

type Option func(*Board)

func WithLogger(l *log.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(b *Board) {
		if fn != nil {
			b.newID = fn
		}
	}
}

// WithDefaultProject supplies the project used when orphaned tasks are found and
// no default project exists.
func WithDefaultProject(fn func() model.Project) Option {
	return func(b *Board) {
		if fn != nil {
			b.defaultProject = fn
		}
	}
}

// New loads both collections, repairs tasks pointing at missing projects,
// recomputes project counts and restores the saved selection when available.
func New(p Persistence, opts ...Option) *Board {
	b := &Board{
		p:                 p,
		log:               log.New(io.Discard),
		now:               time.Now,
		newID:             uuid.NewString,
		selectedProjectID: model.All,
		filters:           model.DefaultFilters(),
	}
	b.defaultProject = func() model.Project {
		return model.Project{ID: model.DefaultProjectID, Name: store.DefaultProjectName, Color: store.DefaultProjectColor, CreatedAt: b.now().UTC()}
	}
	for _, o := range opts {
		o(b)
	}

	b.tasks = p.LoadTasks()
	b.projects = p.LoadProjects()

	if rr, ok := p.(RecoveryReporter); ok && rr.ProjectsRecovered() {
		// Keep task membership and leave both stored blobs alone; the first
		// mutation writes the recovered projects.
		b.projects = mutate.RecoverProjects(b.projects, b.tasks, b.defaultProject())
		b.projects, b.tasks, _ = mutate.RepairOrphans(b.projects, b.tasks, b.defaultProject())
		b.projects = mutate.RecountProjects(b.projects, b.tasks)
		b.log.Warn("stored projects unreadable, rebuilt from task membership", "projects", len(b.projects))
	} else {
		projects, tasks, repaired := mutate.RepairOrphans(b.projects, b.tasks, b.defaultProject())
		if repaired {
			b.log.Warn("reassigned orphaned tasks to default project")
			b.tasks = tasks
			b.p.SaveTasks(b.tasks)
		}
		b.projects = projects
		b.recount()
	}

	if vp, ok := p.(ViewStatePersistence); ok {
		if vs, ok := vp.LoadViewState(); ok {
			b.filters = vs.Filters.Normalize()
			b.selectedProjectID = b.validSelection(vs.SelectedProjectID)
			b.filters.ProjectID = b.selectedProjectID
		}
	}
	return b
}

// recount recomputes every project's task count and persists the projects.
func (b *Board) recount() {
	b.projects = mutate.RecountProjects(b.projects, b.tasks)
	b.p.SaveProjects(b.projects)
}

func (b *Board) stamp() time.Time { return b.now().UTC() }

// Tasks returns the filtered and sorted task list for the current selection.
func (b *Board) Tasks() []model.Task {
	return view.Tasks(b.tasks, b.filters, b.selectedProjectID)
}

// AllTasks returns a copy of the whole task collection in stored order.
func (b *Board) AllTasks() []model.Task {
	return append([]model.Task(nil), b.tasks...)
}

func (b *Board) Projects() []model.Project {
	return append([]model.Project(nil), b.projects...)
}

func (b *Board) Task(id string) (model.Task, bool) {
	for _, t := range b.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (b *Board) Project(id string) (model.Project, bool) {
	for _, p := range b.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

func (b *Board) SelectedProjectID() string { return b.selectedProjectID }

func (b *Board) Filters() model.Filters { return b.filters }

// Analytics aggregates over every task regardless of filters.
func (b *Board) Analytics() model.Analytics {
	return view.ComputeAnalytics(b.tasks, b.now())
}

// Snapshot is everything a presentation layer renders.
type Snapshot struct {
	Tasks             []model.Task    `json:"tasks"`
	Projects          []model.Project `json:"projects"`
	SelectedProjectID string          `json:"selectedProjectId"`
	Filters           model.Filters   `json:"filters"`
	Analytics         model.Analytics `json:"analytics"`
}

func (b *Board) View() Snapshot {
	return Snapshot{
		Tasks:             b.Tasks(),
		Projects:          b.Projects(),
		SelectedProjectID: b.selectedProjectID,
		Filters:           b.filters,
		Analytics:         b.Analytics(),
	}
}
