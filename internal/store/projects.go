package store

import (
	"encoding/json"
	"errors"
	"os"
	"sort"
	"strings"

	"tracker-cli/internal/model"
)

// OwnerAll is the identity owner filter.
const OwnerAll = "All"

// LoadProjects reads the projects document wholesale.
//
// A missing file loads as an empty collection. A present-but-malformed file
// is a ParseError. Documents written by the earliest schema revision (an
// object keyed by project title instead of an array) are accepted and
// normalized to the array form.
func (s Store) LoadProjects() ([]model.Project, error) {
	b, err := os.ReadFile(s.projectsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Project{}, nil
		}
		return nil, err
	}

	var projects []model.Project
	arrErr := json.Unmarshal(b, &projects)
	if arrErr != nil {
		legacy, ok := decodeLegacyProjectMap(b)
		if !ok {
			return nil, ParseError{Path: s.projectsPath(), Err: arrErr}
		}
		projects = legacy
	}

	for i := range projects {
		normalizeProject(&projects[i])
	}
	return projects, nil
}

// decodeLegacyProjectMap handles the original map-form document
// ({"Alpha": {...}, ...}); the map key becomes the title. Keys are sorted so
// the normalized array form is deterministic.
func decodeLegacyProjectMap(b []byte) ([]model.Project, bool) {
	var byTitle map[string]model.Project
	if err := json.Unmarshal(b, &byTitle); err != nil {
		return nil, false
	}
	titles := make([]string, 0, len(byTitle))
	for t := range byTitle {
		titles = append(titles, t)
	}
	sort.Strings(titles)

	out := make([]model.Project, 0, len(byTitle))
	for _, t := range titles {
		p := byTitle[t]
		if strings.TrimSpace(p.Title) == "" {
			p.Title = t
		}
		out = append(out, p)
	}
	return out, true
}

func normalizeProject(p *model.Project) {
	if p.Team == nil {
		p.Team = []string{}
	}
	// Old documents carried free-text "details" and "target_period".
	if p.LegacyDetails != "" {
		if strings.TrimSpace(p.Notes) == "" {
			p.Notes = p.LegacyDetails
		} else {
			p.Notes = p.Notes + "\n\n" + p.LegacyDetails
		}
		p.LegacyDetails = ""
	}
	if p.LegacyTargetPeriod != "" {
		if strings.TrimSpace(p.Target) == "" {
			p.Target = p.LegacyTargetPeriod
		}
		p.LegacyTargetPeriod = ""
	}
	if p.Category != model.CategoryPipeline {
		p.Priority = nil
	}
	for i := range p.Subtasks {
		p.Subtasks[i].Progress = model.ClampProgress(p.Subtasks[i].Progress)
	}
	p.RecomputeProgress()
}

// SaveProjects serializes the full collection over the backing document.
// Pretty-printed with 2-space indent to stay diff-friendly with documents
// written by earlier revisions.
func (s Store) SaveProjects(projects []model.Project) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	if projects == nil {
		projects = []model.Project{}
	}
	b, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.projectsPath(), append(b, '\n'))
}

// MutateProjects runs one read-modify-write cycle under the process-wide
// store lock. fn receives the freshly loaded collection and returns the
// collection to persist; returning an error skips the write entirely.
func (s Store) MutateProjects(fn func([]model.Project) ([]model.Project, error)) ([]model.Project, error) {
	mu.Lock()
	defer mu.Unlock()

	projects, err := s.LoadProjects()
	if err != nil {
		return nil, err
	}
	projects, err = fn(projects)
	if err != nil {
		return nil, err
	}
	if err := s.SaveProjects(projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// FilterByOwner returns the projects matching owner; OwnerAll is the
// identity filter. Records missing an owner are never excluded from the
// result set here (they only drop out of the Owners list).
func FilterByOwner(projects []model.Project, owner string) []model.Project {
	if owner == "" || owner == OwnerAll {
		return projects
	}
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out
}

// Owners lists the distinct declared owners in first-seen order. Records
// without an owner contribute nothing.
func Owners(projects []model.Project) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range projects {
		o := strings.TrimSpace(p.Owner)
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	return out
}

// GroupByCategory buckets projects by category, insertion-order stable
// within each bucket. Unknown or missing categories are dropped silently;
// the dashboard simply does not show them.
func GroupByCategory(projects []model.Project) map[model.Category][]model.Project {
	known := map[model.Category]bool{}
	for _, c := range model.Categories {
		known[c] = true
	}
	out := map[model.Category][]model.Project{}
	for _, p := range projects {
		if !known[p.Category] {
			continue
		}
		out[p.Category] = append(out[p.Category], p)
	}
	return out
}
