package tui

import (
	"github.com/charmbracelet/lipgloss"

	"taskman/internal/app"
)

var (
	colorAccent  = lipgloss.Color("#7aa2f7")
	colorMuted   = lipgloss.Color("#565f89")
	colorText    = lipgloss.Color("#c0caf5")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorWarning = lipgloss.Color("#e0af68")
	colorError   = lipgloss.Color("#f7768e")
)

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorMuted)

	activeTabStyle = tabStyle.
			Foreground(colorText).
			Background(colorAccent).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().Foreground(colorText)

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)

	errorTextStyle = lipgloss.NewStyle().Foreground(colorError)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	inputFocusedStyle = inputStyle.BorderForeground(colorAccent)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)
)

// levelColor picks the dialog border for a notification level.
func levelColor(l app.Level) lipgloss.Color {
	switch l {
	case app.LevelSuccess:
		return colorSuccess
	case app.LevelWarning:
		return colorWarning
	case app.LevelError:
		return colorError
	default:
		return colorAccent
	}
}
