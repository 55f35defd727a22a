package tui

import (
	"fmt"
	"strings"

	"tracker-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.modal != modalNone {
		return m.viewModal()
	}
	switch m.view {
	case viewDetail:
		return m.viewDetail()
	default:
		return m.viewDashboard()
	}
}

func (m appModel) viewModal() string {
	f := m.form
	if m.modal == modalPassword {
		f = m.passwordForm
	}
	if f == nil {
		return ""
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Render(f.View())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m appModel) viewDashboard() string {
	var b strings.Builder

	b.WriteString(styleHeader().Render("Project Tracker Dashboard"))
	b.WriteString("  " + styleMuted().Render("owner: "+m.owner))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(styleMuted().Render("no projects yet (press n to add one)"))
		b.WriteString("\n")
	}

	width := m.width
	if width <= 0 {
		width = 100
	}

	for i, r := range m.rows {
		switch r.Kind {
		case rowCategory:
			b.WriteString(styleCategory().Render("▍ "+string(r.Category)) + "\n")
		case rowProject:
			line := m.renderProjectLine(r.Project, width-4)
			if i == m.cursor {
				line = styleSelected().Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n" + styleMuted().Render(statusSummary(m.projects)) + "\n")
	b.WriteString(m.flashLine())
	b.WriteString(styleMuted().Render("↑/↓: select · enter: open · o: owner filter · n: new · e: edit · D: delete · q: quit"))
	return b.String()
}

func (m appModel) renderProjectLine(p model.Project, width int) string {
	target := p.Target
	if !p.Confirmed && target != "" {
		target += "?"
	}
	meta := []string{p.Owner}
	if target != "" {
		meta = append(meta, target)
	}
	if p.Priority != nil {
		meta = append(meta, string(*p.Priority))
	}
	line := fmt.Sprintf("%-30s %s %s  %s",
		truncate(p.Title, 30),
		styleStatus(string(p.Status)).Render(fmt.Sprintf("%-11s", p.Status)),
		renderProgressBar(p.Progress, 14),
		styleMuted().Render(strings.Join(meta, " · ")),
	)
	return truncate(line, width)
}

func (m appModel) viewDetail() string {
	if m.detailIndex < 0 || m.detailIndex >= len(m.projects) {
		return m.viewDashboard()
	}
	p := m.projects[m.detailIndex]

	var b strings.Builder
	b.WriteString(styleHeader().Render(p.Title))
	b.WriteString("  " + styleMuted().Render("(target: "+p.Target+")"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		styleMuted().Render("owner:"), p.Owner,
		styleMuted().Render("category:"), string(p.Category),
		styleMuted().Render("status:"), styleStatus(string(p.Status)).Render(string(p.Status)),
	))
	if len(p.Team) > 0 {
		b.WriteString(styleMuted().Render("team: ") + strings.Join(p.Team, ", ") + "\n")
	}
	if p.BusinessFunction != "" {
		b.WriteString(styleMuted().Render("function: ") + string(p.BusinessFunction))
		if p.Priority != nil {
			b.WriteString("   " + styleMuted().Render("priority: ") + string(*p.Priority))
		}
		b.WriteString("\n")
	} else if p.Priority != nil {
		b.WriteString(styleMuted().Render("priority: ") + string(*p.Priority) + "\n")
	}

	b.WriteString("\n" + styleMuted().Render("overall: ") + renderProgressBar(p.Progress, 30) + "\n")

	if len(p.Subtasks) > 0 {
		b.WriteString("\n" + m.paneTitle("Subtasks", paneSubtasks) + "\n")
		for i, st := range p.Subtasks {
			marker := "  "
			if m.activePane == paneSubtasks && i == m.subCursor {
				marker = lipgloss.NewStyle().Foreground(colorAccent).Render("› ")
			}
			b.WriteString(fmt.Sprintf("%s%-28s %s  %s\n",
				marker, truncate(st.Name, 28), renderProgressBar(st.Progress, 20),
				styleMuted().Render(st.Target)))
		}
		b.WriteString(styleMuted().Render("  ←/→ adjusts the selected subtask; overall is their mean") + "\n")
	} else {
		b.WriteString(styleMuted().Render("no subtasks; ←/→ adjusts overall progress") + "\n")
	}

	if strings.TrimSpace(p.Notes) != "" {
		b.WriteString("\n" + styleMuted().Render("Notes") + "\n")
		b.WriteString(renderMarkdown(p.Notes, minInt(m.width-4, 78)) + "\n")
	}
	if strings.TrimSpace(p.Bottlenecks) != "" {
		b.WriteString("\n" + styleMuted().Render("Bottlenecks") + "\n")
		b.WriteString(p.Bottlenecks + "\n")
	}

	b.WriteString("\n" + m.paneTitle("Comments", paneComments) + "\n")
	thread := buildThreadRows(m.comments[p.Title])
	if len(thread) == 0 {
		b.WriteString(styleMuted().Render("  no comments yet (press c)") + "\n")
	}
	for i, row := range thread {
		indent := strings.Repeat("    ", row.Depth)
		marker := "  "
		if m.activePane == paneComments && i == m.threadCursor {
			marker = lipgloss.NewStyle().Foreground(colorAccent).Render("› ")
		}
		head := fmt.Sprintf("%s (%s)", row.User, row.Timestamp)
		b.WriteString(marker + indent + styleHeader().Render(head) + "\n")
		b.WriteString("  " + indent + truncate(row.Body, maxInt(20, m.width-8-len(indent))) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.flashLine())
	b.WriteString(styleMuted().Render("tab: pane · c: comment · R: reply · x: delete comment · e: edit · D: delete project · esc: back"))
	return b.String()
}

func (m appModel) paneTitle(name string, p pane) string {
	if m.activePane == p {
		return lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(name)
	}
	return styleMuted().Render(name)
}

func (m appModel) flashLine() string {
	if m.errMsg != "" {
		return styleError().Render(m.errMsg) + "\n"
	}
	if m.statusMsg != "" {
		return styleOK().Render(m.statusMsg) + "\n"
	}
	return ""
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
