package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/veDesk/internal/animation"
	"rhystmorgan/veDesk/internal/audit"
	"rhystmorgan/veDesk/internal/state"
	"rhystmorgan/veDesk/internal/utils"
)

// listItem is one row of the active list.
type listItem struct {
	id     string
	label  string
	detail string
}

// items returns the rows of the active view after the search filter.
func (m AppModel) items() []listItem {
	query := strings.TrimSpace(m.search.Value())

	if m.session.ActiveView() == state.ViewContacts {
		contacts := m.session.Contacts()
		items := make([]listItem, 0, len(contacts))
		for _, c := range contacts {
			if query != "" && !c.Matches(query) {
				continue
			}
			items = append(items, listItem{id: c.ID, label: c.Name, detail: c.Title})
		}
		return items
	}

	meetings := m.session.Meetings()
	items := make([]listItem, 0, len(meetings))
	for _, mt := range meetings {
		if query != "" && !mt.Matches(query) {
			continue
		}
		items = append(items, listItem{id: mt.ID, label: mt.Title, detail: utils.FormatShortTime(mt.StartsAt)})
	}
	return items
}

func (m *AppModel) moveCursor(delta int) {
	m.setCursor(m.cursor[m.session.ActiveView()] + delta)
}

func (m *AppModel) setCursor(i int) {
	view := m.session.ActiveView()
	n := len(m.items())
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	m.cursor[view] = i
	m.hover.SetTarget(float64(i))
}

func (m *AppModel) clampCursor() {
	m.setCursor(m.cursor[m.session.ActiveView()])
}

// cursorTo moves the cursor onto the selected record when it is listed.
func (m *AppModel) cursorTo(sel state.Selection) {
	id := sel.MeetingID
	if sel.ContactID != "" {
		id = sel.ContactID
	}
	for i, item := range m.items() {
		if item.id == id {
			m.setCursor(i)
			return
		}
	}
}

func (m AppModel) cursorID() string {
	items := m.items()
	i := m.cursor[m.session.ActiveView()]
	if i < 0 || i >= len(items) {
		return ""
	}
	return items[i].id
}

// targetID is the record that edit, delete and attendee keys act on: the
// selection when there is one, otherwise the row under the cursor.
func (m AppModel) targetID() string {
	sel := m.session.Selection()
	switch m.session.ActiveView() {
	case state.ViewContacts:
		if sel.ContactID != "" {
			return sel.ContactID
		}
	case state.ViewMeetings:
		if sel.MeetingID != "" {
			return sel.MeetingID
		}
	}
	return m.cursorID()
}

const recentLimit = 3

// recentActivity lists the latest changes for the nav column. Cascade entries
// are left to the meeting history since they echo a contact delete.
func (m AppModel) recentActivity() []string {
	snap := m.session.Snapshot()
	var lines []string
	for _, e := range m.session.Recorder().Recent(0) {
		if e.Action == audit.ActionCascade {
			continue
		}

		name := e.EntityID
		switch e.Entity {
		case audit.EntityContact:
			if c, ok := snap.FindContact(e.EntityID); ok {
				name = c.Name
			}
		case audit.EntityMeeting:
			if mt, ok := snap.FindMeeting(e.EntityID); ok {
				name = mt.Title
			}
		}
		if old, ok := e.Changes["name"].OldValue.(string); ok && e.Action == audit.ActionDelete {
			name = old
		}

		lines = append(lines, activityMark(e.Action)+" "+utils.TruncateString(name, navWidth-8))
		if len(lines) == recentLimit {
			break
		}
	}
	return lines
}

func activityMark(action audit.Action) string {
	switch action {
	case audit.ActionCreate:
		return "+"
	case audit.ActionDelete:
		return "-"
	case audit.ActionAttendees:
		return "@"
	default:
		return "~"
	}
}

func (m AppModel) renderNav(height int) string {
	pos := math.Max(0, math.Min(1, m.nav.Position))
	indicator := animation.Blend(m.theme.AccentMeetings, m.theme.AccentContacts, pos)
	row := int(pos + 0.5)
	view := m.session.ActiveView()

	labels := []string{
		fmt.Sprintf("Meetings (%d)", len(m.session.Meetings())),
		fmt.Sprintf("Contacts (%d)", len(m.session.Contacts())),
	}

	var b strings.Builder
	b.WriteString(titleStyle(utils.Colours.Lavender).Render("vedesk"))
	b.WriteString("\n\n")
	for i, label := range labels {
		marker := "  "
		if i == row {
			marker = lipgloss.NewStyle().Foreground(lipgloss.Color(indicator)).Render("▌ ")
		}
		if state.View(i) == view {
			label = titleStyle(m.theme.Accent(view)).Render(label)
		} else {
			label = dimStyle.Render(label)
		}
		b.WriteString(marker + label + "\n")
	}

	if recent := m.recentActivity(); len(recent) > 0 {
		b.WriteString("\n" + labelStyle.Render("Recent") + "\n")
		for _, line := range recent {
			b.WriteString(dimStyle.Render(line) + "\n")
		}
	}

	return panelStyle(utils.Colours.Surface1).
		Width(navWidth - 2).
		Height(height - 2).
		Render(strings.TrimRight(b.String(), "\n"))
}

func (m AppModel) renderList(width, height int) string {
	view := m.session.ActiveView()
	accent := m.theme.Accent(view)
	items := m.items()
	textWidth := max(width-4, 10)

	var b strings.Builder
	heading := "Meetings"
	if view == state.ViewContacts {
		heading = "Contacts"
	}
	b.WriteString(titleStyle(accent).Render(heading))
	b.WriteString("\n")
	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
	}
	b.WriteString("\n")

	switch {
	case len(items) == 0 && m.search.Value() != "":
		b.WriteString(dimStyle.Render("No matches"))
	case len(items) == 0:
		b.WriteString(dimStyle.Render(fmt.Sprintf("No %s yet. Press n to add one.", strings.ToLower(heading))))
	}

	rows := max(height-5, 1)
	start := 0
	if cursor := m.cursor[view]; cursor >= rows {
		start = cursor - rows + 1
	}
	hovered := int(math.Round(m.hover.Position))
	sel := m.session.Selection()

	for i := start; i < len(items) && i < start+rows; i++ {
		item := items[i]
		selected := item.id == sel.ContactID || item.id == sel.MeetingID

		mark := "  "
		if selected {
			mark = "● "
		}
		label := utils.TruncateString(item.label, textWidth-2)
		detail := utils.TruncateString(item.detail, max(textWidth-2-lipgloss.Width(label)-2, 0))

		line := mark + label
		if i == hovered {
			line = titleStyle(accent).Render(line)
		} else {
			line = textStyle.Render(line)
		}
		if detail != "" {
			line += "  " + dimStyle.Render(detail)
		}
		b.WriteString(line + "\n")
	}

	return panelStyle(accent).
		Width(width - 2).
		Height(height - 2).
		Render(strings.TrimRight(b.String(), "\n"))
}

func (m AppModel) renderDetail(width, height int) string {
	if !m.detail.Visible() || (m.shownContact == nil && m.shownMeeting == nil) {
		return panelStyle(utils.Colours.Surface0).
			Width(width-2).
			Height(height-2).
			Align(lipgloss.Center, lipgloss.Center).
			Render(dimStyle.Render(detailPlaceholder))
	}

	alpha := m.detail.Alpha()
	accent := m.theme.Accent(state.ViewMeetings)
	if m.shownContact != nil {
		accent = m.theme.Accent(state.ViewContacts)
	}

	offset := min(m.detail.Offset(), width-14)
	inner := width - 2 - offset
	textWidth := max(width-4, 10)
	panelHeight := int(float64(height-2) * math.Max(0.5, math.Min(1, m.detail.Scale.Position)))

	var content string
	if c := m.shownContact; c != nil {
		content = renderContactDetail(*c, m.session.Snapshot(), m.session.Recorder().History(c.ID), accent, textWidth)
	} else {
		mt := m.shownMeeting
		var err error
		content, err = renderMeetingDetail(*mt, m.session.Snapshot(), m.session.Recorder().History(mt.ID), m.markdown, accent, textWidth, m.now())
		if err != nil {
			content = errorStyle.Render(utils.FormatValidationError(err.Error())) + "\n\n" + content
		}
	}

	return panelStyle(utils.Colours.Fade(accent, alpha)).
		Foreground(lipgloss.Color(utils.Colours.Fade(utils.Colours.Text, alpha))).
		MarginLeft(offset).
		Width(inner).
		Height(panelHeight).
		Render(content)
}
