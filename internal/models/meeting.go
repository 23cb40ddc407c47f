package models

import (
	"strings"
	"time"
)

// MeetingTimeLayout is the layout meeting start times are entered and shown in.
const MeetingTimeLayout = "2006-01-02 15:04"

type Meeting struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	StartsAt    time.Time `json:"starts_at" yaml:"starts_at"`
	Location    string    `json:"location,omitempty" yaml:"location,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Attendees   []string  `json:"attendees" yaml:"attendees"`
}

type MeetingDraft struct {
	Title       string
	StartsAt    time.Time
	Location    string
	Description string
	Attendees   []string
}

type MeetingPatch struct {
	Title       *string
	StartsAt    *time.Time
	Location    *string
	Description *string
	Attendees   *[]string
}

func NewMeeting(id string, draft MeetingDraft) Meeting {
	d := draft.Normalize()
	return Meeting{
		ID:          id,
		Title:       d.Title,
		StartsAt:    d.StartsAt,
		Location:    d.Location,
		Description: d.Description,
		Attendees:   copyIDs(d.Attendees),
	}
}

func (d MeetingDraft) Normalize() MeetingDraft {
	return MeetingDraft{
		Title:       strings.TrimSpace(d.Title),
		StartsAt:    d.StartsAt,
		Location:    strings.TrimSpace(d.Location),
		Description: strings.TrimSpace(d.Description),
		Attendees:   d.Attendees,
	}
}

// Patch turns a form draft into a patch. Attendees are only replaced when the
// draft carries a non-nil list; the meeting form leaves them to the attendee
// manager.
func (d MeetingDraft) Patch() MeetingPatch {
	n := d.Normalize()
	p := MeetingPatch{
		Title:       &n.Title,
		StartsAt:    &n.StartsAt,
		Location:    &n.Location,
		Description: &n.Description,
	}
	if n.Attendees != nil {
		ids := copyIDs(n.Attendees)
		p.Attendees = &ids
	}
	return p
}

func (m Meeting) Draft() MeetingDraft {
	return MeetingDraft{
		Title:       m.Title,
		StartsAt:    m.StartsAt,
		Location:    m.Location,
		Description: m.Description,
	}
}

// Apply returns a copy of m with the patch merged in. ID is never touched.
func (m Meeting) Apply(p MeetingPatch) Meeting {
	out := m.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.StartsAt != nil {
		out.StartsAt = *p.StartsAt
	}
	if p.Location != nil {
		out.Location = *p.Location
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Attendees != nil {
		out.Attendees = copyIDs(*p.Attendees)
	}
	return out
}

// Clone deep-copies the meeting so the attendee list is not shared.
func (m Meeting) Clone() Meeting {
	m.Attendees = copyIDs(m.Attendees)
	return m
}

func (m Meeting) HasAttendee(contactID string) bool {
	for _, id := range m.Attendees {
		if id == contactID {
			return true
		}
	}
	return false
}

func (m Meeting) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Title), query) ||
		strings.Contains(strings.ToLower(m.Location), query)
}

// copyIDs never returns nil so meetings always serialise "attendees: []".
func copyIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
