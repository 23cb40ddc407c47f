package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rhystmorgan/veDesk/internal/models"
	"rhystmorgan/veDesk/internal/utils"
	"rhystmorgan/veDesk/internal/validation"
)

type meetingField int

const (
	meetingFieldTitle meetingField = iota
	meetingFieldStart
	meetingFieldLocation
	meetingFieldDescription
	meetingFieldCount
)

var meetingFieldKeys = [meetingFieldCount]string{"title", "starts_at", "location", "description"}
var meetingFieldLabels = [meetingFieldCount]string{"Title", "Starts (YYYY-MM-DD HH:MM)", "Location", "Description (markdown)"}

// MeetingFormModel edits a meeting's own fields. Attendees are left to the
// attendee manager, so a submitted draft carries none.
type MeetingFormModel struct {
	inputs      [meetingFieldDescription]textinput.Model
	description textarea.Model
	focus       meetingField

	editing *models.Meeting

	result    validation.ValidationResult
	attempted bool

	visible bool
	accent  string
	keys    formKeyMap
	help    help.Model
	now     func() time.Time

	onSave   func(draft models.MeetingDraft) tea.Cmd
	onCancel func() tea.Cmd
}

func NewMeetingFormModel() *MeetingFormModel {
	m := &MeetingFormModel{
		keys:   defaultFormKeyMap(),
		help:   help.New(),
		accent: utils.Colours.Sky,
		now:    time.Now,
	}

	placeholders := [meetingFieldDescription]string{"Weekly sync", models.MeetingTimeLayout, "Room 4 / video link"}
	for i := range m.inputs {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = placeholders[i]
		input.Width = 40
		m.inputs[i] = input
	}
	m.inputs[meetingFieldTitle].CharLimit = validation.MaxTitleLength
	m.inputs[meetingFieldStart].CharLimit = len(models.MeetingTimeLayout)

	m.description = textarea.New()
	m.description.Placeholder = "Agenda, notes, links..."
	m.description.ShowLineNumbers = false
	m.description.SetWidth(44)
	m.description.SetHeight(5)

	return m
}

func (m *MeetingFormModel) SetCallbacks(
	onSave func(draft models.MeetingDraft) tea.Cmd,
	onCancel func() tea.Cmd,
) {
	m.onSave = onSave
	m.onCancel = onCancel
}

func (m *MeetingFormModel) SetAccent(colour string) {
	m.accent = colour
}

func (m *MeetingFormModel) SetClock(now func() time.Time) {
	if now != nil {
		m.now = now
	}
}

// Show opens the form, prefilled from editing when it is non-nil. A new
// meeting defaults to the next full hour.
func (m *MeetingFormModel) Show(editing *models.Meeting) tea.Cmd {
	m.editing = editing
	m.result = validation.ValidationResult{}
	m.attempted = false
	m.visible = true

	if editing != nil {
		m.inputs[meetingFieldTitle].SetValue(editing.Title)
		m.inputs[meetingFieldStart].SetValue(formatStart(editing.StartsAt))
		m.inputs[meetingFieldLocation].SetValue(editing.Location)
		m.description.SetValue(editing.Description)
	} else {
		next := m.now().Local().Truncate(time.Hour).Add(time.Hour)
		m.inputs[meetingFieldTitle].SetValue("")
		m.inputs[meetingFieldStart].SetValue(formatStart(next))
		m.inputs[meetingFieldLocation].SetValue("")
		m.description.SetValue("")
	}

	return m.setFocus(meetingFieldTitle)
}

func formatStart(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(models.MeetingTimeLayout)
}

func (m *MeetingFormModel) Hide() {
	m.visible = false
	m.editing = nil
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.description.Blur()
}

func (m *MeetingFormModel) IsVisible() bool {
	return m.visible
}

// Draft builds a meeting draft from the fields. An unparseable start time
// gives a zero StartsAt; validation reports it before any save.
func (m *MeetingFormModel) Draft() models.MeetingDraft {
	start, _ := validation.ParseStart(m.inputs[meetingFieldStart].Value())
	return models.MeetingDraft{
		Title:       m.inputs[meetingFieldTitle].Value(),
		StartsAt:    start,
		Location:    m.inputs[meetingFieldLocation].Value(),
		Description: m.description.Value(),
	}
}

func (m *MeetingFormModel) Result() validation.ValidationResult {
	return m.result
}

func (m *MeetingFormModel) Update(msg tea.Msg) (*MeetingFormModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Cancel):
			m.Hide()
			if m.onCancel != nil {
				return m, m.onCancel()
			}
			return m, nil

		case key.Matches(keyMsg, m.keys.Submit):
			return m, m.submit()

		case key.Matches(keyMsg, m.keys.Enter) && m.focus != meetingFieldDescription:
			return m, m.setFocus(m.focus + 1)

		case keyMsg.String() == "tab" || (m.focus != meetingFieldDescription && key.Matches(keyMsg, m.keys.Next)):
			return m, m.setFocus((m.focus + 1) % meetingFieldCount)

		case keyMsg.String() == "shift+tab" || (m.focus != meetingFieldDescription && key.Matches(keyMsg, m.keys.Prev)):
			return m, m.setFocus((m.focus + meetingFieldCount - 1) % meetingFieldCount)
		}
	}

	var cmd tea.Cmd
	if m.focus == meetingFieldDescription {
		m.description, cmd = m.description.Update(msg)
	} else {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	if m.attempted {
		m.validate()
	}
	return m, cmd
}

func (m *MeetingFormModel) validate() {
	m.result = validation.ValidateMeeting(
		m.inputs[meetingFieldTitle].Value(),
		m.inputs[meetingFieldStart].Value(),
		m.inputs[meetingFieldLocation].Value(),
		m.now(),
	)
}

func (m *MeetingFormModel) submit() tea.Cmd {
	m.attempted = true
	m.validate()

	if !m.result.Valid() {
		for i, field := range meetingFieldKeys {
			if m.result.Field(field) != "" {
				return m.setFocus(meetingField(i))
			}
		}
		return nil
	}

	if m.onSave != nil {
		return m.onSave(m.Draft().Normalize())
	}
	return nil
}

func (m *MeetingFormModel) setFocus(field meetingField) tea.Cmd {
	m.focus = field
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.description.Blur()

	if field == meetingFieldDescription {
		return m.description.Focus()
	}
	return m.inputs[field].Focus()
}

func (m *MeetingFormModel) View() string {
	if !m.visible {
		return ""
	}

	var content strings.Builder

	heading := "New Meeting"
	if m.editing != nil {
		heading = "Edit Meeting"
	}
	content.WriteString(titleStyle(m.accent).Render(heading))
	content.WriteString("\n\n")

	for i := meetingField(0); i < meetingFieldCount; i++ {
		label := meetingFieldLabels[i]
		if i == m.focus {
			content.WriteString(titleStyle(m.accent).Render("› " + label))
		} else {
			content.WriteString(labelStyle.Render("  " + label))
		}
		content.WriteString("\n")

		if i == meetingFieldDescription {
			content.WriteString(m.description.View())
		} else {
			content.WriteString("  " + m.inputs[i].View())
		}
		content.WriteString("\n")

		if msg := m.result.Field(meetingFieldKeys[i]); msg != "" {
			content.WriteString("  " + errorStyle.Render(utils.FormatValidationError(msg)) + "\n")
		}
	}

	for _, w := range m.result.Warnings {
		content.WriteString("\n" + warningStyle.Render("! "+w.Message))
	}

	content.WriteString("\n")
	content.WriteString(m.help.View(m.keys))

	return modalStyle(m.accent).Render(content.String())
}
