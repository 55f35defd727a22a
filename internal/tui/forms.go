package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// form is a minimal vertical field stack: labeled single-line inputs with an
// optional multi-line body at the end. Tab/shift-tab cycle focus, ctrl+s (or
// enter on the last single-line field of a body-less form) submits, esc
// cancels. The owning model interprets the values on submit.
type form struct {
	title  string
	labels []string
	inputs []textinput.Model

	bodyLabel string
	body      textarea.Model
	hasBody   bool

	focus int
}

type formDoneMsg struct{ canceled bool }

func newFormInput(placeholder string, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.Width = 40
	if secret {
		in.EchoMode = textinput.EchoPassword
	}
	return in
}

func newForm(title string, labels []string, inputs []textinput.Model) *form {
	f := &form{title: title, labels: labels, inputs: inputs}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f *form) withBody(label, initial string) *form {
	ta := textarea.New()
	ta.Placeholder = label
	ta.SetWidth(60)
	ta.SetHeight(4)
	ta.SetValue(initial)
	f.bodyLabel = label
	f.body = ta
	f.hasBody = true
	return f
}

func (f *form) fieldCount() int {
	if f.hasBody {
		return len(f.inputs) + 1
	}
	return len(f.inputs)
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) bodyValue() string {
	if !f.hasBody {
		return ""
	}
	return f.body.Value()
}

func (f *form) setFocus(i int) {
	n := f.fieldCount()
	if n == 0 {
		return
	}
	if i < 0 {
		i = n - 1
	}
	if i >= n {
		i = 0
	}
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	if f.hasBody {
		if i == len(f.inputs) {
			f.body.Focus()
		} else {
			f.body.Blur()
		}
	}
}

// Update handles one key/tick for the form. done is non-nil when the form
// finished (submitted or canceled).
func (f *form) Update(msg tea.Msg) (cmd tea.Cmd, done *formDoneMsg) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return nil, &formDoneMsg{canceled: true}
		case "ctrl+s":
			return nil, &formDoneMsg{}
		case "tab", "down":
			// Let the textarea keep plain "down" for cursor movement.
			if key.String() == "down" && f.hasBody && f.focus == len(f.inputs) {
				break
			}
			f.setFocus(f.focus + 1)
			return nil, nil
		case "shift+tab", "up":
			if key.String() == "up" && f.hasBody && f.focus == len(f.inputs) {
				break
			}
			f.setFocus(f.focus - 1)
			return nil, nil
		case "enter":
			// Enter inside the body inserts a newline; elsewhere it advances,
			// submitting from the last field.
			if !(f.hasBody && f.focus == len(f.inputs)) {
				if f.focus == f.fieldCount()-1 {
					return nil, &formDoneMsg{}
				}
				f.setFocus(f.focus + 1)
				return nil, nil
			}
		}
	}

	if f.hasBody && f.focus == len(f.inputs) {
		var c tea.Cmd
		f.body, c = f.body.Update(msg)
		return c, nil
	}
	if f.focus >= 0 && f.focus < len(f.inputs) {
		var c tea.Cmd
		f.inputs[f.focus], c = f.inputs[f.focus].Update(msg)
		return c, nil
	}
	return nil, nil
}

func (f *form) View() string {
	var b strings.Builder
	b.WriteString(styleHeader().Render(f.title))
	b.WriteString("\n\n")
	for i := range f.inputs {
		label := f.labels[i]
		if i == f.focus {
			label = lipgloss.NewStyle().Foreground(colorAccent).Render("› " + label)
		} else {
			label = styleMuted().Render("  " + label)
		}
		b.WriteString(label + "\n")
		b.WriteString("  " + f.inputs[i].View() + "\n")
	}
	if f.hasBody {
		label := f.bodyLabel
		if f.focus == len(f.inputs) {
			label = lipgloss.NewStyle().Foreground(colorAccent).Render("› " + label)
		} else {
			label = styleMuted().Render("  " + label)
		}
		b.WriteString(label + "\n")
		b.WriteString(f.body.View() + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("tab: next field · ctrl+s: submit · esc: cancel"))
	return b.String()
}
