package views

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rhystmorgan/veDesk/internal/models"
	"rhystmorgan/veDesk/internal/utils"
)

// AttendeeManagerModel is a checklist of every contact for one meeting.
// Attendees that stay checked keep their position; newly checked contacts
// are appended in the order they were checked.
type AttendeeManagerModel struct {
	target   models.Meeting
	contacts []models.Contact

	original []string
	checked  map[string]bool
	added    []string
	cursor   int

	visible bool
	accent  string
	keys    attendeeKeyMap
	help    help.Model

	onSave   func(meetingID string, contactIDs []string) tea.Cmd
	onCancel func() tea.Cmd
}

func NewAttendeeManagerModel() *AttendeeManagerModel {
	return &AttendeeManagerModel{
		keys:    defaultAttendeeKeyMap(),
		help:    help.New(),
		accent:  utils.Colours.Sky,
		checked: make(map[string]bool),
	}
}

func (m *AttendeeManagerModel) SetCallbacks(
	onSave func(meetingID string, contactIDs []string) tea.Cmd,
	onCancel func() tea.Cmd,
) {
	m.onSave = onSave
	m.onCancel = onCancel
}

func (m *AttendeeManagerModel) SetAccent(colour string) {
	m.accent = colour
}

func (m *AttendeeManagerModel) Show(target models.Meeting, contacts []models.Contact) {
	m.target = target
	m.contacts = contacts
	m.original = slices.Clone(target.Attendees)
	m.checked = make(map[string]bool, len(target.Attendees))
	for _, id := range target.Attendees {
		m.checked[id] = true
	}
	m.added = nil
	m.cursor = 0
	m.visible = true
}

func (m *AttendeeManagerModel) Hide() {
	m.visible = false
}

func (m *AttendeeManagerModel) IsVisible() bool {
	return m.visible
}

// Selected returns the attendee list the manager would save.
func (m *AttendeeManagerModel) Selected() []string {
	ids := make([]string, 0, len(m.original)+len(m.added))
	for _, id := range m.original {
		if m.checked[id] {
			ids = append(ids, id)
		}
	}
	return append(ids, m.added...)
}

func (m *AttendeeManagerModel) Toggle(contactID string) {
	if m.checked[contactID] {
		delete(m.checked, contactID)
		m.added = slices.DeleteFunc(m.added, func(id string) bool { return id == contactID })
		return
	}

	m.checked[contactID] = true
	if !slices.Contains(m.original, contactID) {
		m.added = append(m.added, contactID)
	}
}

func (m *AttendeeManagerModel) Update(msg tea.Msg) (*AttendeeManagerModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		m.Hide()
		if m.onCancel != nil {
			return m, m.onCancel()
		}

	case key.Matches(keyMsg, m.keys.Save):
		if m.onSave != nil {
			return m, m.onSave(m.target.ID, m.Selected())
		}

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.contacts)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Toggle):
		if m.cursor < len(m.contacts) {
			m.Toggle(m.contacts[m.cursor].ID)
		}
	}

	return m, nil
}

func (m *AttendeeManagerModel) View() string {
	if !m.visible {
		return ""
	}

	var content strings.Builder
	content.WriteString(titleStyle(m.accent).Render("Attendees"))
	content.WriteString("\n")
	content.WriteString(dimStyle.Render(m.target.Title))
	content.WriteString("\n\n")

	if len(m.contacts) == 0 {
		content.WriteString(dimStyle.Render("No contacts yet"))
		content.WriteString("\n")
	}

	for i, c := range m.contacts {
		box := "[ ]"
		if m.checked[c.ID] {
			box = "[x]"
		}

		line := box + " " + utils.TruncateString(c.Name, 32)
		if c.Title != "" {
			line += dimStyle.Render("  " + utils.TruncateString(c.Title, 16))
		}

		if i == m.cursor {
			content.WriteString(titleStyle(m.accent).Render("› ") + line)
		} else {
			content.WriteString("  " + textStyle.Render(line))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(dimStyle.Render(utils.FormatAttendeeCount(len(m.Selected()))))
	content.WriteString("\n")
	content.WriteString(m.help.View(m.keys))

	return modalStyle(m.accent).Render(content.String())
}
