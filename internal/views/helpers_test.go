package views

import (
	"regexp"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"rhystmorgan/veDesk/internal/crud"
	"rhystmorgan/veDesk/internal/models"
	"rhystmorgan/veDesk/internal/state"
	"rhystmorgan/veDesk/internal/storage"
)

var testNow = time.Date(2025, 7, 11, 9, 0, 0, 0, time.UTC)

func testSnapshot() storage.Snapshot {
	return storage.Snapshot{
		Contacts: []models.Contact{
			{ID: "c1", Name: "Ada Lovelace", Title: "Analyst", Email: "ada@example.com"},
			{ID: "c2", Name: "Grace Hopper", Title: "Rear Admiral"},
			{ID: "c3", Name: "Alan Turing", Title: "Mathematician"},
		},
		Meetings: []models.Meeting{
			{ID: "m1", Title: "Sync", StartsAt: testNow.Add(48 * time.Hour), Location: "Room 4", Description: "Discuss **engines**", Attendees: []string{"c1", "c2"}},
			{ID: "m2", Title: "Retro", StartsAt: testNow.Add(72 * time.Hour), Attendees: []string{"c2"}},
		},
	}
}

func newTestApp(t *testing.T) AppModel {
	t.Helper()
	session := state.NewSession(
		storage.NewStore(testSnapshot()),
		state.WithIDGenerator(crud.NewSequenceGenerator("new")),
	)
	app := NewAppModel(session, WithClock(func() time.Time { return testNow }))
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return settle(t, model)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press feeds keys through the model without running the returned commands.
func press(t *testing.T, m AppModel, keys ...string) AppModel {
	t.Helper()
	for _, k := range keys {
		model, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = model.(AppModel)
		require.True(t, ok, "Update returned %T", model)
	}
	return m
}

// settle jumps every spring to rest so renders are deterministic.
func settle(t *testing.T, model tea.Model) AppModel {
	t.Helper()
	m, ok := model.(AppModel)
	require.True(t, ok, "unexpected model %T", model)
	m.detail.Snap()
	m.nav.Snap()
	m.hover.Snap()
	m.animating = false
	return m
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

func plain(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
