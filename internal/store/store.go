package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"taskboard/internal/model"
)

const (
	tasksKey    = "taskboard-tasks"
	projectsKey = "taskboard-projects"
	viewKey     = "taskboard-view"
)

const (
	DefaultProjectName  = "My Tasks"
	DefaultProjectColor = "#3b82f6"
)

// ViewState is the last project selection and filter set, restored on relaunch.
// Missing or invalid data is tolerated by callers.
type ViewState struct {
	Version           int           `json:"version"`
	SelectedProjectID string        `json:"selectedProjectId,omitempty"`
	Filters           model.Filters `json:"filters"`
}

// Store is the persistence adapter for the task and project collections.
//
// Every method is best-effort: failures are logged and swallowed, loads degrade to
// empty (tasks) or a synthesized default project (projects). Err reports saves
// that have not succeeded since they failed; LoadErr reports the last read failure.
type Store struct {
	kv  KV
	log *log.Logger
	now func() time.Time

	defaultName  string
	defaultColor string

	// saveErrs holds the failed save per key until that key is saved again.
	saveErrs map[string]*OpError
	loadErr  *OpError

	projectsRecovered bool
}

type Option func(*Store)

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDefaultProject overrides the name and color seeded into the default project.
func WithDefaultProject(name, color string) Option {
	return func(s *Store) {
		if v := strings.TrimSpace(name); v != "" {
			s.defaultName = v
		}
		if v := strings.TrimSpace(color); v != "" {
			s.defaultColor = v
		}
	}
}

func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:           kv,
		log:          log.New(io.Discard),
		now:          time.Now,
		defaultName:  DefaultProjectName,
		defaultColor: DefaultProjectColor,
		saveErrs:     map[string]*OpError{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DefaultProject returns a fresh default project stamped with the current time.
func (s *Store) DefaultProject() model.Project {
	return model.Project{
		ID:        model.DefaultProjectID,
		Name:      s.defaultName,
		Color:     s.defaultColor,
		CreatedAt: s.now().UTC(),
	}
}

func (s *Store) LoadTasks() []model.Task {
	var tasks []model.Task
	if !s.load(tasksKey, &tasks) || tasks == nil {
		return []model.Task{}
	}
	return tasks
}

func (s *Store) SaveTasks(tasks []model.Task) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	s.save(tasksKey, tasks)
}

// LoadProjects never returns an empty slice. An empty or missing collection is
// replaced by the default project, which is persisted before returning. An
// unreadable or corrupt blob yields the default project without overwriting what
// is stored, and ProjectsRecovered reports true until the next projects save.
func (s *Store) LoadProjects() []model.Project {
	var projects []model.Project
	s.projectsRecovered = false
	b, err := s.kv.Get(context.Background(), projectsKey)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		s.fail("load", projectsKey, err)
		s.projectsRecovered = true
		return []model.Project{s.DefaultProject()}
	default:
		if err := json.Unmarshal(b, &projects); err != nil {
			s.log.Warn("discarding corrupt collection", "key", projectsKey, "err", err)
			s.projectsRecovered = true
			return []model.Project{s.DefaultProject()}
		}
	}
	if len(projects) == 0 {
		projects = []model.Project{s.DefaultProject()}
		s.SaveProjects(projects)
	}
	return projects
}

func (s *Store) SaveProjects(projects []model.Project) {
	if projects == nil {
		projects = []model.Project{}
	}
	s.save(projectsKey, projects)
	if _, failed := s.saveErrs[projectsKey]; !failed {
		s.projectsRecovered = false
	}
}

// ProjectsRecovered reports whether the last LoadProjects could not read the
// stored collection and returned a stand-in that has not been saved yet.
func (s *Store) ProjectsRecovered() bool { return s.projectsRecovered }

func (s *Store) LoadViewState() (ViewState, bool) {
	var vs ViewState
	if !s.load(viewKey, &vs) {
		return ViewState{}, false
	}
	vs.Filters = vs.Filters.Normalize()
	return vs, true
}

func (s *Store) SaveViewState(vs ViewState) {
	if vs.Version == 0 {
		vs.Version = 1
	}
	s.save(viewKey, vs)
}

// Err returns a save failure that has not been followed by a successful save of
// the same collection, or nil. Read failures are not reported here; see LoadErr.
func (s *Store) Err() error {
	for _, key := range []string{tasksKey, projectsKey, viewKey} {
		if e, ok := s.saveErrs[key]; ok {
			return e
		}
	}
	return nil
}

// LoadErr returns the most recent read failure, or nil.
func (s *Store) LoadErr() error {
	if s.loadErr == nil {
		return nil
	}
	return s.loadErr
}

func (s *Store) Close() error {
	if s == nil || s.kv == nil {
		return nil
	}
	return s.kv.Close()
}

func (s *Store) load(key string, v any) bool {
	b, err := s.kv.Get(context.Background(), key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		s.fail("load", key, err)
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		s.log.Warn("discarding corrupt collection", "key", key, "err", err)
		return false
	}
	return true
}

func (s *Store) save(key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.fail("save", key, err)
		return
	}
	if err := s.kv.Put(context.Background(), key, b); err != nil {
		s.fail("save", key, err)
		return
	}
	delete(s.saveErrs, key)
}

func (s *Store) fail(op, key string, err error) {
	e := &OpError{Op: op, Key: key, Err: err}
	if op == "save" {
		s.saveErrs[key] = e
		s.log.Error("failed to save", "key", key, "err", err)
		return
	}
	s.loadErr = e
	s.log.Warn("failed to load", "key", key, "err", err)
}

type OpError struct {
	Op  string
	Key string
	Err error
}

func (e *OpError) Error() string { return e.Op + " " + e.Key + ": " + e.Err.Error() }

func (e *OpError) Unwrap() error { return e.Err }
