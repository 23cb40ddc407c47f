package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rhystmorgan/veDesk/internal/models"
	"rhystmorgan/veDesk/internal/utils"
	"rhystmorgan/veDesk/internal/validation"
)

type contactField int

const (
	contactFieldName contactField = iota
	contactFieldTitle
	contactFieldEmail
	contactFieldPhone
	contactFieldCount
)

var contactFieldKeys = [contactFieldCount]string{"name", "title", "email", "phone"}
var contactFieldLabels = [contactFieldCount]string{"Name", "Title", "Email", "Phone"}

// ContactFormModel edits one contact. It never touches records itself: a
// valid submission is handed to the save callback.
type ContactFormModel struct {
	inputs [contactFieldCount]textinput.Model
	focus  contactField

	editing  *models.Contact
	existing []models.Contact

	result    validation.ValidationResult
	attempted bool

	visible bool
	accent  string
	keys    formKeyMap
	help    help.Model

	onSave   func(draft models.ContactDraft) tea.Cmd
	onCancel func() tea.Cmd
}

func NewContactFormModel() *ContactFormModel {
	m := &ContactFormModel{
		keys:   defaultFormKeyMap(),
		help:   help.New(),
		accent: utils.Colours.Mauve,
	}

	placeholders := [contactFieldCount]string{"Ada Lovelace", "Analyst", "ada@example.com", "+44 20 7946 0000"}
	for i := range m.inputs {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = placeholders[i]
		input.Width = 40
		m.inputs[i] = input
	}
	m.inputs[contactFieldName].CharLimit = validation.MaxNameLength

	return m
}

func (m *ContactFormModel) SetCallbacks(
	onSave func(draft models.ContactDraft) tea.Cmd,
	onCancel func() tea.Cmd,
) {
	m.onSave = onSave
	m.onCancel = onCancel
}

func (m *ContactFormModel) SetAccent(colour string) {
	m.accent = colour
}

// Show opens the form. A nil editing contact starts an empty "add" form,
// otherwise the fields are prefilled from it.
func (m *ContactFormModel) Show(editing *models.Contact, existing []models.Contact) tea.Cmd {
	m.editing = editing
	m.existing = existing
	m.result = validation.ValidationResult{}
	m.attempted = false
	m.visible = true

	var draft models.ContactDraft
	if editing != nil {
		draft = editing.Draft()
	}
	m.inputs[contactFieldName].SetValue(draft.Name)
	m.inputs[contactFieldTitle].SetValue(draft.Title)
	m.inputs[contactFieldEmail].SetValue(draft.Email)
	m.inputs[contactFieldPhone].SetValue(draft.Phone)

	return m.setFocus(contactFieldName)
}

func (m *ContactFormModel) Hide() {
	m.visible = false
	m.editing = nil
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *ContactFormModel) IsVisible() bool {
	return m.visible
}

func (m *ContactFormModel) Draft() models.ContactDraft {
	return models.ContactDraft{
		Name:  m.inputs[contactFieldName].Value(),
		Title: m.inputs[contactFieldTitle].Value(),
		Email: m.inputs[contactFieldEmail].Value(),
		Phone: m.inputs[contactFieldPhone].Value(),
	}
}

func (m *ContactFormModel) Result() validation.ValidationResult {
	return m.result
}

func (m *ContactFormModel) Update(msg tea.Msg) (*ContactFormModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		m.Hide()
		if m.onCancel != nil {
			return m, m.onCancel()
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Submit):
		return m, m.submit()

	case key.Matches(keyMsg, m.keys.Enter):
		if m.focus == contactFieldCount-1 {
			return m, m.submit()
		}
		return m, m.setFocus(m.focus + 1)

	case key.Matches(keyMsg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % contactFieldCount)

	case key.Matches(keyMsg, m.keys.Prev):
		return m, m.setFocus((m.focus + contactFieldCount - 1) % contactFieldCount)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.attempted {
		m.validate()
	}
	return m, cmd
}

func (m *ContactFormModel) validate() {
	selfID := ""
	if m.editing != nil {
		selfID = m.editing.ID
	}
	m.result = validation.ValidateContact(m.Draft(), m.existing, selfID)
}

// submit validates and, when the form is clean, hands the draft over. An
// invalid form keeps focus on the first broken field.
func (m *ContactFormModel) submit() tea.Cmd {
	m.attempted = true
	m.validate()

	if !m.result.Valid() {
		for i, field := range contactFieldKeys {
			if m.result.Field(field) != "" {
				return m.setFocus(contactField(i))
			}
		}
		return nil
	}

	if m.onSave != nil {
		return m.onSave(m.Draft().Normalize())
	}
	return nil
}

func (m *ContactFormModel) setFocus(field contactField) tea.Cmd {
	m.focus = field
	for i := range m.inputs {
		if contactField(i) == field {
			continue
		}
		m.inputs[i].Blur()
	}
	return m.inputs[field].Focus()
}

func (m *ContactFormModel) View() string {
	if !m.visible {
		return ""
	}

	var content strings.Builder

	heading := "New Contact"
	if m.editing != nil {
		heading = "Edit Contact"
	}
	content.WriteString(titleStyle(m.accent).Render(heading))
	content.WriteString("\n\n")

	for i, input := range m.inputs {
		label := contactFieldLabels[i]
		if contactField(i) == m.focus {
			content.WriteString(titleStyle(m.accent).Render("› " + label))
		} else {
			content.WriteString(labelStyle.Render("  " + label))
		}
		content.WriteString("\n  ")
		content.WriteString(input.View())
		content.WriteString("\n")

		if msg := m.result.Field(contactFieldKeys[i]); msg != "" {
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
