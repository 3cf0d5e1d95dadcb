package board

import (
	"strings"

	"taskboard/internal/model"
	"taskboard/internal/mutate"
	"taskboard/internal/store"
)

// AddTask creates a task and returns it. Field values are not validated here;
// callers reject empty titles before calling.
func (b *Board) AddTask(in model.TaskInput) model.Task {
	tasks, t := mutate.AddTask(b.tasks, in, b.newID(), b.stamp())
	b.tasks = tasks
	b.p.SaveTasks(b.tasks)
	b.recount()
	b.log.Debug("task added", "id", t.ID, "project", t.ProjectID)
	return t
}

// UpdateTask merges patch into the task. Unknown ids are ignored (ok=false).
func (b *Board) UpdateTask(id string, patch model.TaskPatch) (model.Task, bool) {
	tasks, ok := mutate.UpdateTask(b.tasks, id, patch, b.stamp())
	if !ok {
		b.log.Debug("update of unknown task ignored", "id", id)
		return model.Task{}, false
	}
	b.tasks = tasks
	b.p.SaveTasks(b.tasks)
	b.recount()
	t, _ := b.Task(id)
	b.log.Debug("task updated", "id", id, "status", t.Status)
	return t, true
}

// AdvanceStatus moves the task one step along todo -> in-progress -> completed -> todo.
func (b *Board) AdvanceStatus(id string) (model.Task, bool) {
	t, ok := b.Task(id)
	if !ok {
		return model.Task{}, false
	}
	next := t.Status.Next()
	return b.UpdateTask(id, model.TaskPatch{Status: &next})
}

func (b *Board) DeleteTask(id string) bool {
	tasks, ok := mutate.DeleteTask(b.tasks, id)
	if !ok {
		b.log.Debug("delete of unknown task ignored", "id", id)
		return false
	}
	b.tasks = tasks
	b.p.SaveTasks(b.tasks)
	b.recount()
	b.log.Debug("task deleted", "id", id)
	return true
}

// ReorderTasks replaces the whole collection with tasks, as given. The caller is
// responsible for its validity; project counts are recomputed from it.
func (b *Board) ReorderTasks(tasks []model.Task) {
	b.tasks = append([]model.Task(nil), tasks...)
	b.p.SaveTasks(b.tasks)
	b.recount()
	b.log.Debug("tasks reordered", "count", len(b.tasks))
}

// ReorderByIDs moves the listed tasks to the top in the given sequence.
func (b *Board) ReorderByIDs(ids []string) {
	b.ReorderTasks(mutate.ReorderByIDs(b.tasks, ids, b.stamp()))
}

// AddProject creates a project and returns its id.
func (b *Board) AddProject(name, color string) string {
	projects, p := mutate.AddProject(b.projects, name, color, b.newID(), b.stamp())
	b.projects = projects
	b.p.SaveProjects(b.projects)
	b.log.Debug("project added", "id", p.ID, "name", p.Name)
	return p.ID
}

func (b *Board) UpdateProject(id string, patch model.ProjectPatch) bool {
	projects, ok := mutate.UpdateProject(b.projects, id, patch)
	if !ok {
		b.log.Debug("update of unknown project ignored", "id", id)
		return false
	}
	b.projects = projects
	b.p.SaveProjects(b.projects)
	return true
}

// DeleteProject removes a project and moves its tasks to the default project.
// The default project is never deleted. When the deleted project was selected the
// selection falls back to "all".
func (b *Board) DeleteProject(id string) bool {
	projects, tasks, ok := mutate.DeleteProject(b.projects, b.tasks, id)
	if !ok {
		b.log.Debug("project delete refused", "id", id)
		return false
	}
	b.tasks = tasks
	b.projects = projects
	b.p.SaveTasks(b.tasks)
	b.recount()
	if b.selectedProjectID == id {
		b.SetSelectedProjectID(model.All)
	}
	b.log.Debug("project deleted", "id", id)
	return true
}

// SetSelectedProjectID narrows the task list to one project, or "all".
// Unknown project ids select "all".
func (b *Board) SetSelectedProjectID(id string) {
	b.selectedProjectID = b.validSelection(id)
	b.filters.ProjectID = b.selectedProjectID
	b.saveViewState()
}

// SetFilters replaces the filter set. A non-empty ProjectID also changes the
// selection so the two never disagree.
func (b *Board) SetFilters(f model.Filters) {
	if strings.TrimSpace(f.ProjectID) != "" {
		b.selectedProjectID = b.validSelection(f.ProjectID)
	}
	f = f.Normalize()
	f.ProjectID = b.selectedProjectID
	b.filters = f
	b.saveViewState()
}

func (b *Board) validSelection(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || id == model.All {
		return model.All
	}
	if _, ok := b.Project(id); !ok {
		return model.All
	}
	return id
}

func (b *Board) saveViewState() {
	vp, ok := b.p.(ViewStatePersistence)
	if !ok {
		return
	}
	vp.SaveViewState(store.ViewState{SelectedProjectID: b.selectedProjectID, Filters: b.filters})
}
