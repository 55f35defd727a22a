package tui

import (
	"fmt"
	"strings"

	"tracker-cli/internal/model"
	"tracker-cli/internal/store"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/lipgloss"
)

type rowKind int

const (
	rowCategory rowKind = iota
	rowProject
)

// dashRow is one rendered line of the dashboard: either a category header or
// a project. StoreIndex points into the full (unfiltered) project slice so
// mutations always address the right record even with duplicate titles.
type dashRow struct {
	Kind       rowKind
	Category   model.Category
	Project    model.Project
	StoreIndex int
}

// buildDashboardRows groups the owner-filtered projects under category
// headers, in the fixed category order, insertion-order stable within each
// bucket. Projects with unknown categories are not shown.
func buildDashboardRows(projects []model.Project, owner string) []dashRow {
	rows := []dashRow{}
	for _, c := range model.Categories {
		var bucket []dashRow
		for i, p := range projects {
			if p.Category != c {
				continue
			}
			if owner != "" && owner != store.OwnerAll && p.Owner != owner {
				continue
			}
			bucket = append(bucket, dashRow{Kind: rowProject, Category: c, Project: p, StoreIndex: i})
		}
		if len(bucket) == 0 {
			continue
		}
		rows = append(rows, dashRow{Kind: rowCategory, Category: c})
		rows = append(rows, bucket...)
	}
	return rows
}

func firstProjectRow(rows []dashRow) int {
	for i := range rows {
		if rows[i].Kind == rowProject {
			return i
		}
	}
	return -1
}

// renderProgressBar draws a fixed-width unicode bar with the percent label.
func renderProgressBar(pct, width int) string {
	if width < 4 {
		width = 4
	}
	pct = model.ClampProgress(pct)
	filled := pct * width / 100
	bar := lipgloss.NewStyle().Foreground(colorProgressFill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(colorProgressEmpty).Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// truncate cuts a styled string to width, ANSI-aware.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return xansi.Truncate(s, width, "…")
}

// statusSummary counts projects per status for the footer, in fixed status
// order ("3 In Progress · 1 Blocked · ...").
func statusSummary(projects []model.Project) string {
	counts := map[model.Status]int{}
	for _, p := range projects {
		counts[p.Status]++
	}
	parts := []string{}
	for _, st := range model.Statuses {
		if counts[st] == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d %s", counts[st], st))
	}
	if len(parts) == 0 {
		return "no projects"
	}
	return strings.Join(parts, " · ")
}
