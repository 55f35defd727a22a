package tui

import (
	"tracker-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive dashboard against the given store.
func Run(s store.Store) error {
	applyColorProfilePreference()
	m, err := newAppModel(s)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
