package mutate

import (
	"testing"

	"taskboard/internal/model"
)

func TestDeleteProject_ReassignsTasks(t *testing.T) {
	projects := []model.Project{{ID: model.DefaultProjectID}, {ID: "work"}}
	tasks := []model.Task{{ID: "1", ProjectID: "work"}, {ID: "2", ProjectID: model.DefaultProjectID}, {ID: "3", ProjectID: "work"}}

	ps, ts, ok := DeleteProject(projects, tasks, "work")
	if !ok {
		t.Fatalf("expected delete to succeed")
	}
	if len(ps) != 1 || ps[0].ID != model.DefaultProjectID {
		t.Fatalf("unexpected projects: %+v", ps)
	}
	if len(ts) != len(tasks) {
		t.Fatalf("task count changed: %d -> %d", len(tasks), len(ts))
	}
	for _, tk := range ts {
		if tk.ProjectID != model.DefaultProjectID {
			t.Fatalf("task %s still references %s", tk.ID, tk.ProjectID)
		}
	}
}

func TestDeleteProject_RefusesDefaultAndUnknown(t *testing.T) {
	projects := []model.Project{{ID: model.DefaultProjectID, Name: "My Tasks"}}
	tasks := []model.Task{{ID: "1", ProjectID: model.DefaultProjectID}}

	for _, id := range []string{model.DefaultProjectID, "nope"} {
		ps, ts, ok := DeleteProject(projects, tasks, id)
		if ok {
			t.Fatalf("expected delete of %q to be refused", id)
		}
		if len(ps) != 1 || ps[0].Name != "My Tasks" || len(ts) != 1 {
			t.Fatalf("expected unchanged collections for %q", id)
		}
	}
}

func TestUpdateProject(t *testing.T) {
	projects := []model.Project{{ID: "p", Name: "Old", Color: "#000"}}
	name := "New"
	out, ok := UpdateProject(projects, "p", model.ProjectPatch{Name: &name})
	if !ok || out[0].Name != "New" || out[0].Color != "#000" {
		t.Fatalf("unexpected update: ok=%v %+v", ok, out)
	}
	if projects[0].Name != "Old" {
		t.Fatalf("input slice must not be modified")
	}
	if _, ok := UpdateProject(projects, "missing", model.ProjectPatch{Name: &name}); ok {
		t.Fatalf("expected unknown id to miss")
	}
}

func TestRecountProjects(t *testing.T) {
	projects := []model.Project{{ID: "a", TaskCount: 99}, {ID: "b"}, {ID: "c", TaskCount: 5}}
	tasks := []model.Task{{ProjectID: "a"}, {ProjectID: "a"}, {ProjectID: "b"}, {ProjectID: "zzz"}}
	out := RecountProjects(projects, tasks)
	want := map[string]int{"a": 2, "b": 1, "c": 0}
	for _, p := range out {
		if p.TaskCount != want[p.ID] {
			t.Fatalf("project %s: want %d got %d", p.ID, want[p.ID], p.TaskCount)
		}
	}
	if projects[0].TaskCount != 99 {
		t.Fatalf("input slice must not be modified")
	}
}

func TestRepairOrphans(t *testing.T) {
	def := model.Project{Name: "My Tasks"}

	projects := []model.Project{{ID: "work"}}
	tasks := []model.Task{{ID: "1", ProjectID: "work"}, {ID: "2", ProjectID: "gone"}}
	ps, ts, changed := RepairOrphans(projects, tasks, def)
	if !changed {
		t.Fatalf("expected repair")
	}
	if ts[1].ProjectID != model.DefaultProjectID || ts[0].ProjectID != "work" {
		t.Fatalf("unexpected tasks: %+v", ts)
	}
	if len(ps) != 2 || ps[1].ID != model.DefaultProjectID {
		t.Fatalf("expected default project synthesized, got %+v", ps)
	}

	_, _, changed = RepairOrphans(ps, ts, def)
	if changed {
		t.Fatalf("expected no further repair")
	}
}

func TestRecoverProjects_AddsStandInsForReferencedIDs(t *testing.T) {
	template := model.Project{ID: model.DefaultProjectID, Color: "#abc"}
	projects := []model.Project{template}
	tasks := []model.Task{
		{ID: "1", ProjectID: "work"},
		{ID: "2", ProjectID: "work"},
		{ID: "3", ProjectID: model.DefaultProjectID},
		{ID: "4", ProjectID: "0123456789abcdef"},
		{ID: "5"},
	}

	ps := RecoverProjects(projects, tasks, template)
	if len(ps) != 3 {
		t.Fatalf("expected default plus two stand-ins, got %+v", ps)
	}
	if ps[1].ID != "work" || ps[1].Name != "Recovered work" || ps[1].Color != "#abc" {
		t.Fatalf("unexpected stand-in: %+v", ps[1])
	}
	if ps[2].Name != "Recovered 01234567" {
		t.Fatalf("expected shortened name, got %q", ps[2].Name)
	}
	if len(projects) != 1 {
		t.Fatalf("input slice modified")
	}
}
