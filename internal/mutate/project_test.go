package mutate

import (
	"errors"
	"testing"

	"tracker-cli/internal/model"
)

func TestSubmitNewProject(t *testing.T) {
	res, err := SubmitNewProject(nil, ProjectFields{
		Title:    "Alpha",
		Owner:    "Bo",
		Password: "x",
		Category: "Pipeline",
		Priority: "High",
		Progress: 0,
	})
	if err != nil {
		t.Fatalf("SubmitNewProject: %v", err)
	}
	if len(res.Projects) != 1 {
		t.Fatalf("store has %d records, want 1", len(res.Projects))
	}
	p := res.Projects[0]
	if p.Title != "Alpha" || p.Owner != "Bo" || p.Password != "x" {
		t.Fatalf("fields not preserved: %#v", p)
	}
	if p.Category != model.CategoryPipeline {
		t.Fatalf("category = %v", p.Category)
	}
	if p.Priority == nil || *p.Priority != model.PriorityHigh {
		t.Fatalf("priority = %v, want High", p.Priority)
	}
	if p.Progress != 0 {
		t.Fatalf("progress = %d, want 0", p.Progress)
	}
	if p.Team == nil {
		t.Fatal("team should default to []")
	}
}

func TestSubmitNewProject_Validation(t *testing.T) {
	cases := []struct {
		name   string
		fields ProjectFields
		field  string
	}{
		{"missing title", ProjectFields{Owner: "Bo", Password: "x"}, "title"},
		{"missing owner", ProjectFields{Title: "A", Password: "x"}, "owner"},
		{"missing password", ProjectFields{Title: "A", Owner: "Bo"}, "password"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := SubmitNewProject(nil, c.fields)
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != c.field {
				t.Fatalf("field = %q, want %q", ve.Field, c.field)
			}
		})
	}
}

func TestSubmitNewProject_PriorityIgnoredOutsidePipeline(t *testing.T) {
	res, err := SubmitNewProject(nil, ProjectFields{
		Title: "B", Owner: "Bo", Password: "x",
		Category: "Platform", Priority: "High",
	})
	if err != nil {
		t.Fatalf("SubmitNewProject: %v", err)
	}
	if res.Projects[0].Priority != nil {
		t.Fatal("priority should be nil for non-Pipeline projects")
	}
}

func TestSubmitNewProject_RejectsUnknownEnums(t *testing.T) {
	if _, err := SubmitNewProject(nil, ProjectFields{
		Title: "A", Owner: "Bo", Password: "x", Category: "Skunkworks",
	}); err == nil {
		t.Fatal("expected unknown category error")
	}
	if _, err := SubmitNewProject(nil, ProjectFields{
		Title: "A", Owner: "Bo", Password: "x", Status: "Paused",
	}); err == nil {
		t.Fatal("expected unknown status error")
	}
}

func TestSubmitEditedProject_KeepsPasswordWhenBlank(t *testing.T) {
	projects := []model.Project{{Title: "A", Owner: "Bo", Password: "secret"}}
	res, err := SubmitEditedProject(projects, 0, ProjectFields{
		Title: "A2", Owner: "Bo",
	})
	if err != nil {
		t.Fatalf("SubmitEditedProject: %v", err)
	}
	if res.Projects[0].Title != "A2" {
		t.Fatalf("title = %q", res.Projects[0].Title)
	}
	if res.Projects[0].Password != "secret" {
		t.Fatalf("password = %q, want the stored one kept", res.Projects[0].Password)
	}
}

func TestSubmitEditedProject_KeepsSubtasksWhenAbsent(t *testing.T) {
	projects := []model.Project{{
		Title: "A", Owner: "Bo", Password: "x",
		Subtasks: []model.Subtask{
			{Name: "design", Progress: 30},
			{Name: "build", Progress: 50},
		},
		Progress: 40,
	}}

	// The single-line field set carries no subtasks; editing through it must
	// not discard them, and overall progress stays derived.
	res, err := SubmitEditedProject(projects, 0, ProjectFields{
		Title: "A", Owner: "Bo", Progress: 90,
	})
	if err != nil {
		t.Fatalf("SubmitEditedProject: %v", err)
	}
	if len(res.Projects[0].Subtasks) != 2 {
		t.Fatalf("subtasks lost on edit: had 2, now %d", len(res.Projects[0].Subtasks))
	}
	if res.Projects[0].Progress != 40 {
		t.Fatalf("progress = %d, want the derived 40", res.Projects[0].Progress)
	}

	// An explicit subtask list still replaces the stored one.
	res, err = SubmitEditedProject(res.Projects, 0, ProjectFields{
		Title: "A", Owner: "Bo",
		Subtasks: []model.Subtask{{Name: "ship", Progress: 10}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Projects[0].Subtasks) != 1 || res.Projects[0].Subtasks[0].Name != "ship" {
		t.Fatalf("explicit subtasks not applied: %#v", res.Projects[0].Subtasks)
	}
	if res.Projects[0].Progress != 10 {
		t.Fatalf("progress = %d, want re-derived 10", res.Projects[0].Progress)
	}
}

func TestSubmitEditedProject_StaleIndexIsNotFound(t *testing.T) {
	_, err := SubmitEditedProject([]model.Project{{Title: "A"}}, 5, ProjectFields{Title: "B", Owner: "x"})
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDeleteProject_PasswordGate(t *testing.T) {
	projects := []model.Project{{Title: "Alpha", Owner: "Bo", Password: "x"}}

	_, err := DeleteProject(projects, 0, "wrong")
	var ue UnauthorizedError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
	if len(projects) != 1 || projects[0].Title != "Alpha" {
		t.Fatal("store changed after an unauthorized delete")
	}

	res, err := DeleteProject(projects, 0, "x")
	if err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if len(res.Projects) != 0 {
		t.Fatalf("store still has %d records", len(res.Projects))
	}
}

func TestDeleteProject_ByIndexNotTitle(t *testing.T) {
	// Duplicate titles: the positional ref decides which record dies.
	projects := []model.Project{
		{Title: "Dup", Owner: "Bo", Password: "a"},
		{Title: "Dup", Owner: "Ana", Password: "b"},
	}
	res, err := DeleteProject(projects, 1, "b")
	if err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if len(res.Projects) != 1 || res.Projects[0].Owner != "Bo" {
		t.Fatalf("wrong record removed: %#v", res.Projects)
	}
}

func TestUpdateSubtaskProgress(t *testing.T) {
	projects := []model.Project{{
		Title: "A", Owner: "Bo", Password: "x",
		Subtasks: []model.Subtask{{Progress: 10}, {Progress: 30}},
		Progress: 20,
	}}

	res, err := UpdateSubtaskProgress(projects, 0, 1, 90)
	if err != nil {
		t.Fatalf("UpdateSubtaskProgress: %v", err)
	}
	if !res.Changed {
		t.Fatal("expected changed=true")
	}
	if res.Project.Subtasks[1].Progress != 90 {
		t.Fatalf("subtask progress = %d", res.Project.Subtasks[1].Progress)
	}
	if res.Project.Progress != 50 {
		t.Fatalf("overall = %d, want round(mean(10,90)) = 50", res.Project.Progress)
	}

	// Clamping.
	res, err = UpdateSubtaskProgress(res.Projects, 0, 0, 250)
	if err != nil {
		t.Fatal(err)
	}
	if res.Project.Subtasks[0].Progress != 100 {
		t.Fatalf("subtask progress = %d, want clamp to 100", res.Project.Subtasks[0].Progress)
	}
	if res.Project.Progress != 95 {
		t.Fatalf("overall = %d, want 95", res.Project.Progress)
	}

	// No-op value.
	res, err = UpdateSubtaskProgress(res.Projects, 0, 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed {
		t.Fatal("expected changed=false for a no-op update")
	}

	if _, err := UpdateSubtaskProgress(res.Projects, 0, 7, 10); err == nil {
		t.Fatal("expected NotFound for a stale subtask index")
	}
	if _, err := UpdateSubtaskProgress(res.Projects, 3, 0, 10); err == nil {
		t.Fatal("expected NotFound for a stale project index")
	}
}

func TestSetProjectProgress(t *testing.T) {
	projects := []model.Project{{Title: "A", Owner: "Bo", Password: "x", Progress: 10}}
	res, err := SetProjectProgress(projects, 0, 65)
	if err != nil {
		t.Fatal(err)
	}
	if res.Project.Progress != 65 || !res.Changed {
		t.Fatalf("progress = %d changed = %v", res.Project.Progress, res.Changed)
	}

	// Subtask-derived projects ignore the direct value.
	withSubs := []model.Project{{
		Title: "B", Owner: "Bo", Password: "x",
		Subtasks: []model.Subtask{{Progress: 40}}, Progress: 40,
	}}
	res, err = SetProjectProgress(withSubs, 0, 90)
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed || res.Project.Progress != 40 {
		t.Fatalf("derived progress should win: %d (changed=%v)", res.Project.Progress, res.Changed)
	}
}

func TestAuthorizeEdit(t *testing.T) {
	projects := []model.Project{{Title: "A", Password: "x"}}
	if err := AuthorizeEdit(projects, 0, "x"); err != nil {
		t.Fatalf("AuthorizeEdit: %v", err)
	}
	var ue UnauthorizedError
	if err := AuthorizeEdit(projects, 0, "nope"); !errors.As(err, &ue) {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
	var nf NotFoundError
	if err := AuthorizeEdit(projects, 9, "x"); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
