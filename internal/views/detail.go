package views

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/veDesk/internal/audit"
	"rhystmorgan/veDesk/internal/models"
	"rhystmorgan/veDesk/internal/storage"
	"rhystmorgan/veDesk/internal/utils"
)

const (
	detailPlaceholder = "Select an item to see details"
	historyLimit      = 5
)

// markdownCache renders meeting descriptions once per width.
type markdownCache struct {
	width       int
	renderer    *glamour.TermRenderer
	rendered    map[string]string
	newRenderer func(width int) (*glamour.TermRenderer, error)
}

func newMarkdownCache() *markdownCache {
	return &markdownCache{
		rendered:    make(map[string]string),
		newRenderer: glamourRenderer,
	}
}

func glamourRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
}

func (c *markdownCache) Render(source string, width int) (string, error) {
	width = max(width, 20)
	if c.renderer == nil || c.width != width {
		renderer, err := c.newRenderer(width)
		if err != nil {
			return source, fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		c.renderer = renderer
		c.width = width
		c.rendered = make(map[string]string)
	}

	if out, ok := c.rendered[source]; ok {
		return out, nil
	}

	out, err := c.renderer.Render(source)
	if err != nil {
		return source, fmt.Errorf("failed to render description: %w", err)
	}
	out = strings.Trim(out, "\n")
	c.rendered[source] = out
	return out, nil
}

func renderAvatar(initials, accent string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(accent)).
		Foreground(lipgloss.Color(accent)).
		Bold(true).
		Width(4).
		Align(lipgloss.Center).
		Render(initials)
}

func detailRow(label, value string) string {
	if value == "" {
		value = dimStyle.Render("—")
	}
	return labelStyle.Render(utils.PadString(label, 10, ' ')) + value
}

// historyLine describes one journal entry, e.g. "Updated email, phone".
func historyLine(e audit.Entry) string {
	switch e.Action {
	case audit.ActionCreate:
		return "Created"
	case audit.ActionDelete:
		return "Deleted"
	case audit.ActionAttendees:
		return "Attendees changed"
	case audit.ActionCascade:
		return "Attendee removed"
	case audit.ActionUpdate:
		if len(e.Changes) == 0 {
			return "Saved without changes"
		}
		fields := make([]string, 0, len(e.Changes))
		for field := range e.Changes {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		return "Updated " + strings.Join(fields, ", ")
	default:
		return string(e.Action)
	}
}

// renderHistory lists the latest journal entries for a record, newest first.
// Records untouched this session get no section.
func renderHistory(history []audit.Entry, width int) string {
	if len(history) == 0 {
		return ""
	}

	entries := slices.Clone(history)
	slices.Reverse(entries)
	if len(entries) > historyLimit {
		entries = entries[:historyLimit]
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("History"))
	b.WriteString("\n")
	for _, e := range entries {
		b.WriteString(dimStyle.Render(e.Timestamp.Format("15:04:05")) + "  " +
			textStyle.Render(utils.TruncateString(historyLine(e), max(width-10, 8))) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderContactDetail(c models.Contact, snap storage.Snapshot, history []audit.Entry, accent string, width int) string {
	var b strings.Builder

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		renderAvatar(c.Initials(), accent),
		"  ",
		lipgloss.JoinVertical(lipgloss.Left,
			titleStyle(accent).Render(utils.TruncateString(c.Name, width-10)),
			dimStyle.Render(c.Title),
		),
	)
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString(detailRow("Email", c.Email) + "\n")
	b.WriteString(detailRow("Phone", c.Phone) + "\n")
	b.WriteString(detailRow("Avatar", dimStyle.Render(utils.TruncateString(c.AvatarURL, width-12))) + "\n")

	meetings := snap.MeetingsFor(c.ID)
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Meetings (%d)", len(meetings))))
	b.WriteString("\n")
	if len(meetings) == 0 {
		b.WriteString(dimStyle.Render("Not attending any meetings"))
	}
	for _, m := range meetings {
		b.WriteString(textStyle.Render("• "+utils.TruncateString(m.Title, width-16)) + " " + dimStyle.Render(utils.FormatShortTime(m.StartsAt)) + "\n")
	}

	if section := renderHistory(history, width); section != "" {
		b.WriteString("\n" + section)
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderMeetingDetail(m models.Meeting, snap storage.Snapshot, history []audit.Entry, md *markdownCache, accent string, width int, now time.Time) (string, error) {
	var b strings.Builder
	var renderErr error

	b.WriteString(titleStyle(accent).Render(utils.TruncateString(m.Title, width)))
	b.WriteString("\n\n")
	b.WriteString(detailRow("When", utils.FormatMeetingTime(m.StartsAt, now)) + "\n")
	b.WriteString(detailRow("Where", m.Location) + "\n")

	if m.Description != "" {
		b.WriteString("\n")
		out, err := md.Render(m.Description, width)
		if err != nil {
			renderErr = err
		}
		b.WriteString(out)
		b.WriteString("\n")
	}

	attendees := snap.ResolveAttendees(m)
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Attendees · " + utils.FormatAttendeeCount(len(attendees))))
	b.WriteString("\n")
	for _, c := range attendees {
		line := titleStyle(accent).Render(utils.PadString(c.Initials(), 3, ' ')) + textStyle.Render(c.Name)
		if c.Title != "" {
			line += dimStyle.Render("  " + c.Title)
		}
		b.WriteString(line + "\n")
	}

	if section := renderHistory(history, width); section != "" {
		b.WriteString("\n" + section)
	}

	return strings.TrimRight(b.String(), "\n"), renderErr
}
