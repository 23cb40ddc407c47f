package state

import (
	"rhystmorgan/veDesk/internal/models"
)

// Intent is one user action handed to Session.Dispatch.
type Intent interface {
	intentName() string
}

type (
	SelectContact struct{ ID string }
	SelectMeeting struct{ ID string }
	SwitchView    struct{ View View }

	AddContact  struct{}
	EditContact struct{ ID string }
	// SaveContact updates the contact being edited, or creates one when the
	// form was opened for adding.
	SaveContact          struct{ Draft models.ContactDraft }
	CancelContactForm    struct{}
	RequestDeleteContact struct{ ID string }

	AddMeeting           struct{}
	EditMeeting          struct{ ID string }
	SaveMeeting          struct{ Draft models.MeetingDraft }
	CancelMeetingForm    struct{}
	RequestDeleteMeeting struct{ ID string }

	ManageAttendees struct{ MeetingID string }
	SaveAttendees   struct {
		MeetingID  string
		ContactIDs []string
	}
	CancelAttendees struct{}

	ConfirmDelete struct{}
	CancelDelete  struct{}
)

func (SelectContact) intentName() string        { return "select_contact" }
func (SelectMeeting) intentName() string        { return "select_meeting" }
func (SwitchView) intentName() string           { return "switch_view" }
func (AddContact) intentName() string           { return "add_contact" }
func (EditContact) intentName() string          { return "edit_contact" }
func (SaveContact) intentName() string          { return "save_contact" }
func (CancelContactForm) intentName() string    { return "cancel_contact_form" }
func (RequestDeleteContact) intentName() string { return "request_delete_contact" }
func (AddMeeting) intentName() string           { return "add_meeting" }
func (EditMeeting) intentName() string          { return "edit_meeting" }
func (SaveMeeting) intentName() string          { return "save_meeting" }
func (CancelMeetingForm) intentName() string    { return "cancel_meeting_form" }
func (RequestDeleteMeeting) intentName() string { return "request_delete_meeting" }
func (ManageAttendees) intentName() string      { return "manage_attendees" }
func (SaveAttendees) intentName() string        { return "save_attendees" }
func (CancelAttendees) intentName() string      { return "cancel_attendees" }
func (ConfirmDelete) intentName() string        { return "confirm_delete" }
func (CancelDelete) intentName() string         { return "cancel_delete" }

// IntentName is the name an intent is logged under.
func IntentName(in Intent) string {
	return in.intentName()
}
