package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tracker-cli/internal/model"
	"tracker-cli/internal/mutate"
	"tracker-cli/internal/quarter"
	"tracker-cli/internal/session"
	"tracker-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type view int

const (
	viewDashboard view = iota
	viewDetail
)

type modal int

const (
	modalNone modal = iota
	modalNewProject
	modalEditProject
	modalComment
	modalReply
	modalPassword
)

// passwordPurpose says what a successful password prompt unlocks.
type passwordPurpose int

const (
	purposeUnlockEdit passwordPurpose = iota
	purposeDeleteProject
	purposeDeleteComment
)

type reloadTickMsg struct{}

type pane int

const (
	paneSubtasks pane = iota
	paneComments
)

type appModel struct {
	store store.Store

	projects []model.Project
	comments store.CommentsDoc

	edit *session.EditContext

	width  int
	height int

	view  view
	modal modal

	// Dashboard state.
	owner  string
	rows   []dashRow
	cursor int

	// Detail state.
	detailIndex  int
	activePane   pane
	subCursor    int
	threadCursor int

	// Modal state.
	form             *form
	passwordForm     *form
	purpose          passwordPurpose
	passwordTarget   int
	unlockedPassword string

	statusMsg string
	errMsg    string
}

func newAppModel(s store.Store) (appModel, error) {
	m := appModel{
		store:       s,
		edit:        session.New(),
		owner:       store.OwnerAll,
		detailIndex: -1,
	}
	if err := m.reload(); err != nil {
		return appModel{}, err
	}
	return m, nil
}

func (m *appModel) reload() error {
	projects, err := m.store.LoadProjects()
	if err != nil {
		return err
	}
	comments, err := m.store.LoadComments()
	if err != nil {
		return err
	}
	m.projects = projects
	m.comments = comments
	m.rebuildRows()
	m.clampDetailCursors()
	return nil
}

// clampDetailCursors re-bounds the detail-view cursors after a reload. A
// concurrent writer can shrink the project list, a subtask list or a comment
// thread between ticks, and the cursors must never index past the fresh data.
func (m *appModel) clampDetailCursors() {
	if m.detailIndex >= len(m.projects) {
		m.detailIndex = len(m.projects) - 1
	}
	if m.detailIndex < 0 {
		if m.view == viewDetail {
			m.view = viewDashboard
		}
		return
	}
	p := m.projects[m.detailIndex]
	if m.subCursor >= len(p.Subtasks) {
		m.subCursor = len(p.Subtasks) - 1
	}
	if m.subCursor < 0 {
		m.subCursor = 0
	}
	if n := len(buildThreadRows(m.comments[p.Title])); m.threadCursor >= n {
		m.threadCursor = n - 1
	}
	if m.threadCursor < 0 {
		m.threadCursor = 0
	}
}

func (m *appModel) rebuildRows() {
	m.rows = buildDashboardRows(m.projects, m.owner)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 || (len(m.rows) > 0 && m.rows[m.cursor].Kind != rowProject) {
		m.cursor = firstProjectRow(m.rows)
	}
}

func tickReload() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m appModel) Init() tea.Cmd { return tickReload() }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case reloadTickMsg:
		// Re-read both documents every cycle while idle; edits in a modal
		// are only materialized at submit, so skipping them loses nothing.
		if m.modal == modalNone {
			if err := m.reload(); err != nil {
				m.errMsg = err.Error()
			}
		}
		return m, tickReload()

	case tea.KeyMsg:
		m.statusMsg = ""
		m.errMsg = ""
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		switch m.view {
		case viewDetail:
			return m.updateDetail(msg)
		default:
			return m.updateDashboard(msg)
		}
	}
	return m, nil
}

func (m appModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)

	case "o":
		m.cycleOwner()

	case "enter":
		if r, ok := m.selectedRow(); ok {
			m.openDetail(r.StoreIndex)
		}

	case "n":
		m.form = newProjectForm("New project", nil)
		m.modal = modalNewProject

	case "e":
		if r, ok := m.selectedRow(); ok {
			m.promptPassword(purposeUnlockEdit, r.StoreIndex, r.Project.Title)
		}

	case "D":
		if r, ok := m.selectedRow(); ok {
			m.promptPassword(purposeDeleteProject, r.StoreIndex, r.Project.Title)
		}

	case "r":
		if err := m.reload(); err != nil {
			m.errMsg = err.Error()
		}
	}
	return m, nil
}

func (m *appModel) moveCursor(delta int) {
	i := m.cursor
	for {
		i += delta
		if i < 0 || i >= len(m.rows) {
			return
		}
		if m.rows[i].Kind == rowProject {
			m.cursor = i
			return
		}
	}
}

func (m *appModel) selectedRow() (dashRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return dashRow{}, false
	}
	r := m.rows[m.cursor]
	if r.Kind != rowProject {
		return dashRow{}, false
	}
	return r, true
}

func (m *appModel) cycleOwner() {
	options := append([]string{store.OwnerAll}, store.Owners(m.projects)...)
	next := 0
	for i, o := range options {
		if o == m.owner {
			next = (i + 1) % len(options)
			break
		}
	}
	m.owner = options[next]
	m.rebuildRows()
}

func (m *appModel) openDetail(storeIndex int) {
	if storeIndex < 0 || storeIndex >= len(m.projects) {
		return
	}
	m.detailIndex = storeIndex
	m.view = viewDetail
	m.activePane = paneSubtasks
	m.subCursor = 0
	m.threadCursor = 0
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detailIndex < 0 || m.detailIndex >= len(m.projects) {
		m.view = viewDashboard
		return m, nil
	}
	p := m.projects[m.detailIndex]
	thread := buildThreadRows(m.comments[p.Title])

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = viewDashboard
		m.edit.Clear()

	case "tab":
		if m.activePane == paneSubtasks {
			m.activePane = paneComments
		} else {
			m.activePane = paneSubtasks
		}

	case "up", "k":
		if m.activePane == paneSubtasks && m.subCursor > 0 {
			m.subCursor--
		}
		if m.activePane == paneComments && m.threadCursor > 0 {
			m.threadCursor--
		}
	case "down", "j":
		if m.activePane == paneSubtasks && m.subCursor < len(p.Subtasks)-1 {
			m.subCursor++
		}
		if m.activePane == paneComments && m.threadCursor < len(thread)-1 {
			m.threadCursor++
		}

	case "left", "h":
		m.adjustProgress(-5)
	case "right", "l":
		m.adjustProgress(+5)

	case "c":
		f := newForm("Post comment on "+p.Title,
			[]string{"Your name", "Comment password"},
			[]textinput.Model{newFormInput("name", false), newFormInput("password", true)},
		).withBody("Comment", "")
		m.form = f
		m.modal = modalComment
	case "R":
		if m.activePane == paneComments && len(thread) > 0 {
			f := newForm("Reply",
				[]string{"Your name"},
				[]textinput.Model{newFormInput("name", false)},
			).withBody("Reply", "")
			m.form = f
			m.modal = modalReply
		}
	case "x":
		if m.activePane == paneComments && len(thread) > 0 {
			row := thread[m.threadCursor]
			if row.ReplyIndex == -1 {
				m.promptPassword(purposeDeleteComment, row.CommentIdx, p.Title)
			} else {
				m.errMsg = "replies cannot be deleted individually; delete the parent comment"
			}
		}
	case "e":
		m.promptPassword(purposeUnlockEdit, m.detailIndex, p.Title)
	case "D":
		m.promptPassword(purposeDeleteProject, m.detailIndex, p.Title)
	}

	return m, nil
}

// adjustProgress writes a slider-style progress change straight through to
// the store, like the original dashboard's auto-save sliders. The delta is
// applied to the value in the freshly loaded document, not the rendered
// snapshot, so a concurrent writer's update is never overwritten wholesale.
func (m *appModel) adjustProgress(delta int) {
	idx := m.detailIndex
	sub := m.subCursor

	var res mutate.ProjectResult
	var err error
	_, err = m.store.MutateProjects(func(projects []model.Project) ([]model.Project, error) {
		if idx < 0 || idx >= len(projects) {
			return projects, nil
		}
		cur := projects[idx]
		if cur.HasSubtasks() {
			if sub < 0 || sub >= len(cur.Subtasks) {
				return projects, nil
			}
			res, err = mutate.UpdateSubtaskProgress(projects, idx, sub, cur.Subtasks[sub].Progress+delta)
		} else {
			res, err = mutate.SetProjectProgress(projects, idx, cur.Progress+delta)
		}
		if err != nil {
			return nil, err
		}
		return res.Projects, nil
	})
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	if res.Changed {
		_ = m.store.AppendEvent(context.Background(), "project.progress", res.Project.Title, res.EventPayload)
	}
	if err := m.reload(); err != nil {
		m.errMsg = err.Error()
	}
}

func (m *appModel) promptPassword(purpose passwordPurpose, target int, title string) {
	label := "Password for " + title
	f := newForm(label,
		[]string{"Password"},
		[]textinput.Model{newFormInput("password", true)},
	)
	m.passwordForm = f
	m.purpose = purpose
	m.passwordTarget = target
	m.modal = modalPassword
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalPassword:
		cmd, done := m.passwordForm.Update(msg)
		if done == nil {
			return m, cmd
		}
		password := m.passwordForm.value(0)
		m.modal = modalNone
		m.passwordForm = nil
		if done.canceled {
			return m, nil
		}
		m.resolvePassword(password)
		return m, nil

	default:
		cmd, done := m.form.Update(msg)
		if done == nil {
			return m, cmd
		}
		if done.canceled {
			m.modal = modalNone
			m.form = nil
			m.edit.Clear()
			return m, nil
		}
		m.submitModal()
		return m, nil
	}
}

func (m *appModel) resolvePassword(password string) {
	switch m.purpose {
	case purposeUnlockEdit:
		idx := m.passwordTarget
		if err := mutate.AuthorizeEdit(m.projects, idx, password); err != nil {
			m.errMsg = err.Error()
			return
		}
		m.edit.Unlock(m.projects[idx].Title, idx)
		m.unlockedPassword = password
		m.form = newProjectForm("Edit "+m.projects[idx].Title, &m.projects[idx])
		m.modal = modalEditProject

	case purposeDeleteProject:
		idx := m.passwordTarget
		var res mutate.ProjectResult
		var err error
		_, err = m.store.MutateProjects(func(projects []model.Project) ([]model.Project, error) {
			res, err = mutate.DeleteProject(projects, idx, password)
			if err != nil {
				return nil, err
			}
			return res.Projects, nil
		})
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		title, _ := res.EventPayload["title"].(string)
		_ = m.store.AppendEvent(context.Background(), "project.delete", title, res.EventPayload)
		m.statusMsg = "deleted " + title
		m.view = viewDashboard
		if err := m.reload(); err != nil {
			m.errMsg = err.Error()
		}

	case purposeDeleteComment:
		if m.detailIndex < 0 || m.detailIndex >= len(m.projects) {
			return
		}
		title := m.projects[m.detailIndex].Title
		ci := m.passwordTarget
		var res mutate.CommentResult
		var err error
		_, err = m.store.MutateComments(func(doc store.CommentsDoc) (store.CommentsDoc, error) {
			res, err = mutate.DeleteComment(doc, title, ci, password)
			if err != nil {
				return nil, err
			}
			return res.Doc, nil
		})
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		_ = m.store.AppendEvent(context.Background(), "comment.delete", title, res.EventPayload)
		m.statusMsg = "comment deleted"
		m.threadCursor = 0
		if err := m.reload(); err != nil {
			m.errMsg = err.Error()
		}
	}
}

func (m *appModel) submitModal() {
	defer func() {
		m.modal = modalNone
		m.form = nil
	}()

	switch m.modal {
	case modalNewProject:
		fields, err := projectFormFields(m.form)
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		var res mutate.ProjectResult
		_, err = m.store.MutateProjects(func(projects []model.Project) ([]model.Project, error) {
			res, err = mutate.SubmitNewProject(projects, fields)
			if err != nil {
				return nil, err
			}
			return res.Projects, nil
		})
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		_ = m.store.AppendEvent(context.Background(), "project.add", res.Project.Title, res.EventPayload)
		m.statusMsg = "added " + res.Project.Title

	case modalEditProject:
		title, idx, ok := m.edit.Target()
		if !ok {
			m.errMsg = "no project unlocked for editing"
			return
		}
		fields, err := projectFormFields(m.form)
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		var res mutate.ProjectResult
		_, err = m.store.MutateProjects(func(projects []model.Project) ([]model.Project, error) {
			if err := mutate.AuthorizeEdit(projects, idx, m.unlockedPassword); err != nil {
				return nil, err
			}
			res, err = mutate.SubmitEditedProject(projects, idx, fields)
			if err != nil {
				return nil, err
			}
			return res.Projects, nil
		})
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		_ = m.store.AppendEvent(context.Background(), "project.edit", res.Project.Title, res.EventPayload)
		m.edit.Commit()
		m.unlockedPassword = ""
		m.statusMsg = "saved " + title

	case modalComment:
		if m.detailIndex < 0 || m.detailIndex >= len(m.projects) {
			return
		}
		title := m.projects[m.detailIndex].Title
		user := m.form.value(0)
		password := m.form.value(1)
		body := m.form.bodyValue()
		var res mutate.CommentResult
		var err error
		_, err = m.store.MutateComments(func(doc store.CommentsDoc) (store.CommentsDoc, error) {
			res, err = mutate.AddComment(doc, title, user, body, password, time.Now())
			if err != nil {
				return nil, err
			}
			return res.Doc, nil
		})
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		_ = m.store.AppendEvent(context.Background(), "comment.add", title, res.EventPayload)
		m.statusMsg = "comment posted"

	case modalReply:
		if m.detailIndex < 0 || m.detailIndex >= len(m.projects) {
			return
		}
		title := m.projects[m.detailIndex].Title
		thread := buildThreadRows(m.comments[title])
		if m.threadCursor < 0 || m.threadCursor >= len(thread) {
			return
		}
		ci := thread[m.threadCursor].CommentIdx
		user := m.form.value(0)
		body := m.form.bodyValue()
		var res mutate.CommentResult
		var err error
		_, err = m.store.MutateComments(func(doc store.CommentsDoc) (store.CommentsDoc, error) {
			res, err = mutate.AddReply(doc, title, ci, user, body, time.Now())
			if err != nil {
				return nil, err
			}
			return res.Doc, nil
		})
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		_ = m.store.AppendEvent(context.Background(), "comment.reply", title, res.EventPayload)
		m.statusMsg = "reply posted"
	}

	if err := m.reload(); err != nil {
		m.errMsg = err.Error()
	}
}

// projectFormLabels fixes the single-line field order shared by the new and
// edit forms; the notes body comes last.
var projectFormLabels = []string{
	"Title", "Owner", "Team (comma separated)", "Business function",
	"Category", "Status", "Priority (Pipeline only)", "Target",
	"Progress (ignored when subtasks exist)", "Bottlenecks", "Password",
}

func newProjectForm(title string, p *model.Project) *form {
	inputs := make([]textinput.Model, len(projectFormLabels))
	for i := range inputs {
		secret := projectFormLabels[i] == "Password"
		inputs[i] = newFormInput(strings.ToLower(projectFormLabels[i]), secret)
	}
	notes := ""
	if p != nil {
		inputs[0].SetValue(p.Title)
		inputs[1].SetValue(p.Owner)
		inputs[2].SetValue(strings.Join(p.Team, ", "))
		inputs[3].SetValue(string(p.BusinessFunction))
		inputs[4].SetValue(string(p.Category))
		inputs[5].SetValue(string(p.Status))
		if p.Priority != nil {
			inputs[6].SetValue(string(*p.Priority))
		}
		inputs[7].SetValue(p.Target)
		inputs[8].SetValue(strconv.Itoa(p.Progress))
		inputs[9].SetValue(p.Bottlenecks)
		notes = p.Notes
	} else {
		inputs[5].SetValue(string(model.StatusNotStarted))
		inputs[7].SetValue(quarter.TBD)
		inputs[8].SetValue("0")
	}
	return newForm(title, projectFormLabels, inputs).withBody("Notes (markdown)", notes)
}

func projectFormFields(f *form) (mutate.ProjectFields, error) {
	progress := 0
	if v := f.value(8); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return mutate.ProjectFields{}, fmt.Errorf("progress must be a number: %q", v)
		}
		progress = n
	}
	team := []string{}
	for _, t := range strings.Split(f.value(2), ",") {
		if t = strings.TrimSpace(t); t != "" {
			team = append(team, t)
		}
	}
	return mutate.ProjectFields{
		Title:            f.value(0),
		Owner:            f.value(1),
		Team:             team,
		BusinessFunction: f.value(3),
		Category:         f.value(4),
		Status:           f.value(5),
		Priority:         f.value(6),
		Target:           f.value(7),
		Progress:         progress,
		Bottlenecks:      f.value(9),
		Password:         f.value(10),
		Notes:            f.bodyValue(),
	}, nil
}
