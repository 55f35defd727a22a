package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The dashboard must remain readable on both light and dark terminal
// backgrounds, so colors are adaptive and "faint" styling is only applied on
// dark backgrounds (faint text on light terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorAccent   lipgloss.TerminalColor = ac("27", "62") // blue
	colorHeader   lipgloss.TerminalColor = ac("235", "252")
	colorSelected lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorError    lipgloss.TerminalColor = ac("160", "196")
	colorOK       lipgloss.TerminalColor = ac("28", "40")

	// Status colors mirror the original dashboard's color coding.
	colorStatusBlocked lipgloss.TerminalColor = ac("160", "203")
	colorStatusDone    lipgloss.TerminalColor = ac("28", "40")
	colorStatusActive  lipgloss.TerminalColor = ac("136", "178")

	colorProgressFill  lipgloss.TerminalColor = ac("27", "62")
	colorProgressEmpty lipgloss.TerminalColor = ac("252", "237")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorHeader)
}

func styleCategory() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorSelected)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

func styleOK() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorOK)
}

func styleStatus(status string) lipgloss.Style {
	st := lipgloss.NewStyle()
	switch status {
	case "Blocked":
		return st.Foreground(colorStatusBlocked)
	case "Done":
		return st.Foreground(colorStatusDone)
	case "In Progress":
		return st.Foreground(colorStatusActive)
	default:
		return faintIfDark(st.Foreground(colorMuted))
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which suits
// non-interactive output but can accidentally disable colors in a TUI; here
// we only honor NO_COLOR and otherwise follow the terminal's capabilities.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
