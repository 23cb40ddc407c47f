// Package state tracks which view is active, which record is selected, which
// dialog is open and whether a delete is waiting for confirmation.
package state

import (
	"rhystmorgan/veDesk/internal/models"
)

type View int

const (
	ViewMeetings View = iota
	ViewContacts
)

func (v View) String() string {
	switch v {
	case ViewMeetings:
		return "meetings"
	case ViewContacts:
		return "contacts"
	default:
		return "unknown"
	}
}

// Selection holds at most one selected record. Empty string means none.
type Selection struct {
	ContactID string
	MeetingID string
}

func (s Selection) None() bool {
	return s.ContactID == "" && s.MeetingID == ""
}

type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalContactForm
	ModalMeetingForm
	ModalAttendees
)

type ContactModal struct {
	Open    bool
	Editing *models.Contact
}

type MeetingModal struct {
	Open    bool
	Editing *models.Meeting
}

type AttendeeModal struct {
	Open   bool
	Target *models.Meeting
}

// Modals keeps one flag and payload per dialog. Opening any dialog closes the
// others.
type Modals struct {
	Contact   ContactModal
	Meeting   MeetingModal
	Attendees AttendeeModal
}

func (m Modals) Active() ModalKind {
	switch {
	case m.Contact.Open:
		return ModalContactForm
	case m.Meeting.Open:
		return ModalMeetingForm
	case m.Attendees.Open:
		return ModalAttendees
	default:
		return ModalNone
	}
}

type EntityKind int

const (
	EntityContact EntityKind = iota
	EntityMeeting
)

const (
	contactDeletePrompt = "Are you sure you want to delete this contact? They will be removed from all meetings."
	meetingDeletePrompt = "Are you sure you want to delete this meeting?"
)

// PendingDelete is a delete that has been requested but not yet confirmed.
type PendingDelete struct {
	Kind   EntityKind
	ID     string
	Name   string
	Prompt string
}

// State is the non-record part of a session. Transitions return a new State
// and leave the receiver untouched.
type State struct {
	View      View
	Selection Selection
	Modals    Modals
	Pending   *PendingDelete
}

// Initial opens on the meetings view with the first meeting selected, if any.
func Initial(meetings []models.Meeting) State {
	s := State{View: ViewMeetings}
	if len(meetings) > 0 {
		s.Selection.MeetingID = meetings[0].ID
	}
	return s
}

func (s State) SelectContact(id string) State {
	s.View = ViewContacts
	s.Selection = Selection{ContactID: id}
	return s
}

func (s State) SelectMeeting(id string) State {
	s.View = ViewMeetings
	s.Selection = Selection{MeetingID: id}
	return s
}

// SwitchView changes the top-level view and clears the selection so the
// detail panel never shows a record from the other view.
func (s State) SwitchView(v View) State {
	s.View = v
	s.Selection = Selection{}
	return s
}

// ClearContact drops the contact selection if it points at id. The view is
// left as is.
func (s State) ClearContact(id string) State {
	if s.Selection.ContactID == id {
		s.Selection.ContactID = ""
	}
	return s
}

func (s State) ClearMeeting(id string) State {
	if s.Selection.MeetingID == id {
		s.Selection.MeetingID = ""
	}
	return s
}

func (s State) OpenContactForm(editing *models.Contact) State {
	s.Modals = Modals{}
	s.Modals.Contact = ContactModal{Open: true}
	if editing != nil {
		c := editing.Clone()
		s.Modals.Contact.Editing = &c
	}
	return s
}

func (s State) OpenMeetingForm(editing *models.Meeting) State {
	s.Modals = Modals{}
	s.Modals.Meeting = MeetingModal{Open: true}
	if editing != nil {
		m := editing.Clone()
		s.Modals.Meeting.Editing = &m
	}
	return s
}

func (s State) OpenAttendees(target models.Meeting) State {
	s.Modals = Modals{}
	m := target.Clone()
	s.Modals.Attendees = AttendeeModal{Open: true, Target: &m}
	return s
}

func (s State) CloseContactForm() State {
	s.Modals.Contact = ContactModal{}
	return s
}

func (s State) CloseMeetingForm() State {
	s.Modals.Meeting = MeetingModal{}
	return s
}

func (s State) CloseAttendees() State {
	s.Modals.Attendees = AttendeeModal{}
	return s
}

// RequestDelete opens the confirmation step. Any open dialog is closed first.
func (s State) RequestDelete(kind EntityKind, id, name string) State {
	prompt := meetingDeletePrompt
	if kind == EntityContact {
		prompt = contactDeletePrompt
	}
	s.Modals = Modals{}
	s.Pending = &PendingDelete{Kind: kind, ID: id, Name: name, Prompt: prompt}
	return s
}

func (s State) ClearPending() State {
	s.Pending = nil
	return s
}
