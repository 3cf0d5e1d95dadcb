package mutate

import (
	"time"

	"taskboard/internal/model"
	"taskboard/internal/view"
)

func AddProject(projects []model.Project, name, color, id string, now time.Time) ([]model.Project, model.Project) {
	p := model.Project{
		ID:        id,
		Name:      name,
		Color:     color,
		CreatedAt: now,
	}
	out := make([]model.Project, 0, len(projects)+1)
	out = append(out, projects...)
	out = append(out, p)
	return out, p
}

func UpdateProject(projects []model.Project, id string, patch model.ProjectPatch) ([]model.Project, bool) {
	idx := indexOfProject(projects, id)
	if idx < 0 {
		return projects, false
	}
	out := append([]model.Project(nil), projects...)
	if patch.Name != nil {
		out[idx].Name = *patch.Name
	}
	if patch.Color != nil {
		out[idx].Color = *patch.Color
	}
	return out, true
}

// DeleteProject removes project id and moves its tasks into the default project.
// The default project and unknown ids are refused: both collections come back
// unchanged with ok=false.
func DeleteProject(projects []model.Project, tasks []model.Task, id string) ([]model.Project, []model.Task, bool) {
	if id == model.DefaultProjectID {
		return projects, tasks, false
	}
	idx := indexOfProject(projects, id)
	if idx < 0 {
		return projects, tasks, false
	}
	outTasks, _ := ReassignProject(tasks, id, model.DefaultProjectID)
	outProjects := make([]model.Project, 0, len(projects)-1)
	outProjects = append(outProjects, projects[:idx]...)
	outProjects = append(outProjects, projects[idx+1:]...)
	return outProjects, outTasks, true
}

// RecountProjects returns projects with TaskCount recomputed from tasks.
func RecountProjects(projects []model.Project, tasks []model.Task) []model.Project {
	counts := view.CountByProject(tasks)
	out := append([]model.Project(nil), projects...)
	for i := range out {
		out[i].TaskCount = counts[out[i].ID]
	}
	return out
}

// RepairOrphans reassigns tasks whose project no longer exists to the default
// project. If any task needed repair and the default project is missing, def is
// appended. changed reports whether either collection was modified.
func RepairOrphans(projects []model.Project, tasks []model.Task, def model.Project) ([]model.Project, []model.Task, bool) {
	known := make(map[string]bool, len(projects))
	for _, p := range projects {
		known[p.ID] = true
	}
	var out []model.Task
	for i, t := range tasks {
		if known[t.ProjectID] {
			continue
		}
		if out == nil {
			out = append([]model.Task(nil), tasks...)
		}
		out[i].ProjectID = model.DefaultProjectID
	}
	if out == nil {
		return projects, tasks, false
	}
	if !known[model.DefaultProjectID] {
		def.ID = model.DefaultProjectID
		projects = append(append([]model.Project(nil), projects...), def)
	}
	return projects, out, true
}

// RecoverProjects appends a stand-in project for every non-empty project id that
// tasks reference but projects lacks, so membership survives a lost projects
// collection. Stand-ins copy template's color and createdAt.
func RecoverProjects(projects []model.Project, tasks []model.Task, template model.Project) []model.Project {
	known := make(map[string]bool, len(projects))
	for _, p := range projects {
		known[p.ID] = true
	}
	out := append([]model.Project(nil), projects...)
	for _, t := range tasks {
		if t.ProjectID == "" || known[t.ProjectID] {
			continue
		}
		known[t.ProjectID] = true
		out = append(out, model.Project{
			ID:        t.ProjectID,
			Name:      recoveredName(t.ProjectID),
			Color:     template.Color,
			CreatedAt: template.CreatedAt,
		})
	}
	return out
}

func recoveredName(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "Recovered " + id
}

func indexOfProject(projects []model.Project, id string) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}
