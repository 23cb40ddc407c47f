package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rhystmorgan/veDesk/internal/state"
	"rhystmorgan/veDesk/internal/utils"
)

// ConfirmModel asks before a delete goes through.
type ConfirmModel struct {
	keys confirmKeyMap

	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

func NewConfirmModel() *ConfirmModel {
	return &ConfirmModel{keys: defaultConfirmKeyMap()}
}

func (m *ConfirmModel) SetCallbacks(onConfirm, onCancel func() tea.Cmd) {
	m.onConfirm = onConfirm
	m.onCancel = onCancel
}

func (m *ConfirmModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if m.onConfirm != nil {
			return m.onConfirm()
		}
	case key.Matches(keyMsg, m.keys.Cancel):
		if m.onCancel != nil {
			return m.onCancel()
		}
	}
	return nil
}

func (m *ConfirmModel) View(pending *state.PendingDelete) string {
	if pending == nil {
		return ""
	}

	heading := "Delete Meeting"
	if pending.Kind == state.EntityContact {
		heading = "Delete Contact"
	}

	var content strings.Builder
	content.WriteString(titleStyle(utils.Colours.Red).Render(heading))
	content.WriteString("\n\n")
	content.WriteString(textStyle.Render(pending.Name))
	content.WriteString("\n\n")
	content.WriteString(textStyle.Render(pending.Prompt))
	content.WriteString("\n\n")
	content.WriteString(errorStyle.Bold(true).Render("[y] Delete") + "   " + dimStyle.Render("[n] Keep"))

	return modalStyle(utils.Colours.Red).Render(content.String())
}
