package mutate

import (
	"fmt"
	"strconv"
	"strings"

	"tracker-cli/internal/model"
	"tracker-cli/internal/perm"
)

// ProjectFields carries one form submission's worth of project data.
// Priority is a raw string so callers can pass "" for non-Pipeline projects.
type ProjectFields struct {
	Title            string
	Owner            string
	Team             []string
	BusinessFunction string
	Category         string
	Status           string
	Priority         string
	Target           string
	Confirmed        bool
	Progress         int
	Notes            string
	Bottlenecks      string
	Password         string
	Subtasks         []model.Subtask
}

type ProjectResult struct {
	Projects     []model.Project
	Project      *model.Project
	Changed      bool
	EventPayload map[string]any
}

func buildProject(f ProjectFields) (model.Project, error) {
	if strings.TrimSpace(f.Title) == "" {
		return model.Project{}, ValidationError{Field: "title"}
	}
	if strings.TrimSpace(f.Owner) == "" {
		return model.Project{}, ValidationError{Field: "owner"}
	}
	if strings.TrimSpace(f.Password) == "" {
		return model.Project{}, ValidationError{Field: "password"}
	}

	p := model.Project{
		Title:       strings.TrimSpace(f.Title),
		Owner:       strings.TrimSpace(f.Owner),
		Team:        f.Team,
		Target:      f.Target,
		Confirmed:   f.Confirmed,
		Progress:    f.Progress,
		Notes:       f.Notes,
		Bottlenecks: f.Bottlenecks,
		Password:    f.Password,
		Subtasks:    f.Subtasks,
	}
	if p.Team == nil {
		p.Team = []string{}
	}

	if c, ok := model.ParseCategory(f.Category); ok {
		p.Category = c
	} else if strings.TrimSpace(f.Category) != "" {
		return model.Project{}, fmt.Errorf("unknown category: %q", f.Category)
	}
	if st, ok := model.ParseStatus(f.Status); ok {
		p.Status = st
	} else if strings.TrimSpace(f.Status) != "" {
		return model.Project{}, fmt.Errorf("unknown status: %q", f.Status)
	}
	if f.BusinessFunction != "" {
		p.BusinessFunction = model.BusinessFunction(f.BusinessFunction)
	}

	// Priority only applies to Pipeline projects; anything else keeps nil.
	if p.Category == model.CategoryPipeline && strings.TrimSpace(f.Priority) != "" {
		pr, ok := model.ParsePriority(f.Priority)
		if !ok {
			return model.Project{}, fmt.Errorf("unknown priority: %q", f.Priority)
		}
		p.Priority = &pr
	}

	for i := range p.Subtasks {
		p.Subtasks[i].Progress = model.ClampProgress(p.Subtasks[i].Progress)
	}
	p.RecomputeProgress()
	return p, nil
}

// SubmitNewProject validates and appends a project record.
func SubmitNewProject(projects []model.Project, f ProjectFields) (ProjectResult, error) {
	p, err := buildProject(f)
	if err != nil {
		return ProjectResult{}, err
	}
	projects = append(projects, p)
	return ProjectResult{
		Projects: projects,
		Project:  &projects[len(projects)-1],
		Changed:  true,
		EventPayload: map[string]any{
			"title":    p.Title,
			"owner":    p.Owner,
			"category": p.Category,
		},
	}, nil
}

// SubmitEditedProject replaces the record at index with the submitted
// fields. Fields a submission does not carry are kept from the stored
// record: a blank password keeps the stored one, and a nil subtask list
// keeps the stored subtasks (with overall progress re-derived from them).
func SubmitEditedProject(projects []model.Project, index int, f ProjectFields) (ProjectResult, error) {
	if index < 0 || index >= len(projects) {
		return ProjectResult{}, NotFoundError{Kind: "project", Ref: strconv.Itoa(index)}
	}
	if strings.TrimSpace(f.Password) == "" {
		f.Password = projects[index].Password
	}
	if f.Subtasks == nil {
		f.Subtasks = projects[index].Subtasks
	}
	p, err := buildProject(f)
	if err != nil {
		return ProjectResult{}, err
	}
	projects[index] = p
	return ProjectResult{
		Projects: projects,
		Project:  &projects[index],
		Changed:  true,
		EventPayload: map[string]any{
			"title": p.Title,
			"index": index,
		},
	}, nil
}

// DeleteProject removes the record at index after a password check.
// Identity is positional (the ref in the owning collection), not title, so
// duplicate titles never delete the wrong record.
func DeleteProject(projects []model.Project, index int, password string) (ProjectResult, error) {
	if index < 0 || index >= len(projects) {
		return ProjectResult{}, NotFoundError{Kind: "project", Ref: strconv.Itoa(index)}
	}
	p := projects[index]
	if !perm.Authorize(p.Password, password) {
		return ProjectResult{}, UnauthorizedError{Kind: "project", Ref: p.Title}
	}
	projects = append(projects[:index], projects[index+1:]...)
	return ProjectResult{
		Projects: projects,
		Changed:  true,
		EventPayload: map[string]any{
			"title": p.Title,
		},
	}, nil
}

// UpdateSubtaskProgress clamps newValue into [0,100], applies it to the
// subtask and re-derives the project's overall progress.
func UpdateSubtaskProgress(projects []model.Project, projectIndex, subtaskIndex, newValue int) (ProjectResult, error) {
	if projectIndex < 0 || projectIndex >= len(projects) {
		return ProjectResult{}, NotFoundError{Kind: "project", Ref: strconv.Itoa(projectIndex)}
	}
	p := &projects[projectIndex]
	if subtaskIndex < 0 || subtaskIndex >= len(p.Subtasks) {
		return ProjectResult{}, NotFoundError{Kind: "subtask", Ref: strconv.Itoa(subtaskIndex)}
	}

	v := model.ClampProgress(newValue)
	changed := p.Subtasks[subtaskIndex].Progress != v
	p.Subtasks[subtaskIndex].Progress = v
	p.RecomputeProgress()

	return ProjectResult{
		Projects: projects,
		Project:  p,
		Changed:  changed,
		EventPayload: map[string]any{
			"title":    p.Title,
			"subtask":  subtaskIndex,
			"progress": p.Progress,
		},
	}, nil
}

// SetProjectProgress directly sets overall progress for a project without
// subtasks. Projects with subtasks keep the derived value.
func SetProjectProgress(projects []model.Project, projectIndex, newValue int) (ProjectResult, error) {
	if projectIndex < 0 || projectIndex >= len(projects) {
		return ProjectResult{}, NotFoundError{Kind: "project", Ref: strconv.Itoa(projectIndex)}
	}
	p := &projects[projectIndex]
	v := model.ClampProgress(newValue)
	changed := !p.HasSubtasks() && p.Progress != v
	if !p.HasSubtasks() {
		p.Progress = v
	}
	return ProjectResult{
		Projects: projects,
		Project:  p,
		Changed:  changed,
		EventPayload: map[string]any{
			"title":    p.Title,
			"progress": p.Progress,
		},
	}, nil
}

// AuthorizeEdit checks the project password ahead of an Unlocked session
// transition.
func AuthorizeEdit(projects []model.Project, index int, password string) error {
	if index < 0 || index >= len(projects) {
		return NotFoundError{Kind: "project", Ref: strconv.Itoa(index)}
	}
	if !perm.Authorize(projects[index].Password, password) {
		return UnauthorizedError{Kind: "project", Ref: projects[index].Title}
	}
	return nil
}
