package views

import (
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/veDesk/internal/state"
	"rhystmorgan/veDesk/internal/utils"
)

// Theme holds the per-view accent colours. Everything else comes from
// utils.Colours.
type Theme struct {
	AccentMeetings string
	AccentContacts string
}

func DefaultTheme() Theme {
	return Theme{
		AccentMeetings: utils.Colours.Sky,
		AccentContacts: utils.Colours.Mauve,
	}
}

func (t Theme) Accent(v state.View) string {
	if v == state.ViewContacts {
		return t.AccentContacts
	}
	return t.AccentMeetings
}

func panelStyle(border string) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1)
}

func titleStyle(colour string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(colour)).
		Bold(true)
}

var (
	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Text))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Overlay0))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Subtext0)).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Red))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Yellow))
)

func modalStyle(border string) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Background(lipgloss.Color(utils.Colours.Base)).
		Padding(1, 2).
		Width(56)
}
