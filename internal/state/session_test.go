package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"rhystmorgan/veDesk/internal/audit"
	"rhystmorgan/veDesk/internal/crud"
	"rhystmorgan/veDesk/internal/models"
	"rhystmorgan/veDesk/internal/storage"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	seed := storage.Snapshot{
		Contacts: []models.Contact{
			{ID: "c1", Name: "Ada"},
			{ID: "c2", Name: "Grace"},
		},
		Meetings: []models.Meeting{
			{ID: "m1", Title: "Sync", Attendees: []string{"c1", "c2"}},
			{ID: "m2", Title: "Retro", Attendees: []string{"c2"}},
		},
	}
	return NewSession(storage.NewStore(seed), WithIDGenerator(crud.NewSequenceGenerator("new")))
}

func TestSessionStartsOnFirstMeeting(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, ViewMeetings, s.ActiveView())
	meeting, ok := s.SelectedMeeting()
	require.True(t, ok)
	assert.Equal(t, "m1", meeting.ID)

	attendees := s.MeetingAttendees()
	require.Len(t, attendees, 2)
	assert.Equal(t, "Ada", attendees[0].Name)
}

func TestDeleteSelectedContactCascades(t *testing.T) {
	s := newTestSession(t)
	s.Dispatch(SelectContact{ID: "c1"})

	res := s.Dispatch(RequestDeleteContact{ID: "c1"})
	require.False(t, res.Ignored)
	require.NotNil(t, s.Pending())
	assert.Len(t, s.Contacts(), 2, "nothing is deleted before confirmation")

	res = s.Dispatch(ConfirmDelete{})
	require.True(t, res.Changed)

	assert.Nil(t, s.Pending())
	assert.Len(t, s.Contacts(), 1)
	assert.Equal(t, []string{"c2"}, s.Meetings()[0].Attendees)
	assert.True(t, s.Selection().None())
	assert.Equal(t, ViewContacts, s.ActiveView(), "deleting keeps the view")
}

func TestCancelDeleteKeepsRecords(t *testing.T) {
	s := newTestSession(t)

	s.Dispatch(RequestDeleteMeeting{ID: "m1"})
	s.Dispatch(CancelDelete{})

	assert.Nil(t, s.Pending())
	assert.Len(t, s.Meetings(), 2)
	assert.Equal(t, 0, s.Revision())
}

func TestPendingConfirmationBlocksOtherIntents(t *testing.T) {
	s := newTestSession(t)
	s.Dispatch(RequestDeleteMeeting{ID: "m2"})

	res := s.Dispatch(SelectContact{ID: "c1"})
	assert.True(t, res.Ignored)
	assert.Equal(t, ViewMeetings, s.ActiveView())

	res = s.Dispatch(AddContact{})
	assert.True(t, res.Ignored)
	assert.Equal(t, ModalNone, s.Modals().Active())

	s.Dispatch(ConfirmDelete{})
	require.Len(t, s.Meetings(), 1)
	meeting, ok := s.SelectedMeeting()
	require.True(t, ok, "deleting another meeting keeps the selection")
	assert.Equal(t, "m1", meeting.ID)
}

func TestDeleteSelectedMeetingClearsSelection(t *testing.T) {
	s := newTestSession(t)

	s.Dispatch(RequestDeleteMeeting{ID: "m1"})
	s.Dispatch(ConfirmDelete{})

	assert.True(t, s.Selection().None())
	assert.Len(t, s.Contacts(), 2, "meeting delete does not touch contacts")
}

func TestCreateMeetingBecomesSelection(t *testing.T) {
	s := newTestSession(t)
	s.Dispatch(SwitchView{View: ViewContacts})

	s.Dispatch(AddMeeting{})
	require.Equal(t, ModalMeetingForm, s.Modals().Active())
	assert.Nil(t, s.Modals().Meeting.Editing)

	res := s.Dispatch(SaveMeeting{Draft: models.MeetingDraft{Title: "Sync", StartsAt: time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)}})

	require.True(t, res.Changed)
	assert.Equal(t, "new-1", res.CreatedID)
	assert.Equal(t, ModalNone, s.Modals().Active())
	assert.Equal(t, ViewMeetings, s.ActiveView())

	meeting, ok := s.SelectedMeeting()
	require.True(t, ok)
	assert.Equal(t, "Sync", meeting.Title)
	assert.Empty(t, meeting.Attendees)
	assert.Equal(t, "new-1", s.Meetings()[2].ID)
}

func TestCreateContactBecomesSelection(t *testing.T) {
	s := newTestSession(t)

	s.Dispatch(AddContact{})
	res := s.Dispatch(SaveContact{Draft: models.ContactDraft{Name: "Barbara"}})

	require.True(t, res.Changed)
	contact, ok := s.SelectedContact()
	require.True(t, ok)
	assert.Equal(t, "Barbara", contact.Name)
	assert.Equal(t, models.AvatarURL("new-2"), contact.AvatarURL)
	assert.Equal(t, ViewContacts, s.ActiveView())
}

func TestEditContactPrefillsAndUpdates(t *testing.T) {
	s := newTestSession(t)
	s.Dispatch(SelectContact{ID: "c2"})

	s.Dispatch(EditContact{ID: "c2"})
	editing := s.Modals().Contact.Editing
	require.NotNil(t, editing)
	assert.Equal(t, "Grace", editing.Name)

	draft := editing.Draft()
	draft.Title = "Rear Admiral"
	res := s.Dispatch(SaveContact{Draft: draft})

	require.True(t, res.Changed)
	assert.Empty(t, res.CreatedID)
	assert.Len(t, s.Contacts(), 2)
	contact, _ := s.SelectedContact()
	assert.Equal(t, "Rear Admiral", contact.Title)
	assert.Equal(t, "c2", contact.ID)
	assert.Nil(t, s.Modals().Contact.Editing)
}

func TestEditMeetingKeepsAttendees(t *testing.T) {
	s := newTestSession(t)

	s.Dispatch(EditMeeting{ID: "m1"})
	draft := s.Modals().Meeting.Editing.Draft()
	draft.Location = "Room 4"
	s.Dispatch(SaveMeeting{Draft: draft})

	meeting, _ := s.SelectedMeeting()
	assert.Equal(t, "Room 4", meeting.Location)
	assert.Equal(t, []string{"c1", "c2"}, meeting.Attendees)
}

func TestSaveAttendeesReplacesList(t *testing.T) {
	s := newTestSession(t)

	s.Dispatch(ManageAttendees{MeetingID: "m2"})
	require.Equal(t, ModalAttendees, s.Modals().Active())
	assert.Equal(t, "m2", s.Modals().Attendees.Target.ID)

	s.Dispatch(SaveAttendees{ContactIDs: []string{"c1", "ghost", "c2"}})

	assert.Equal(t, ModalNone, s.Modals().Active())
	assert.Equal(t, []string{"c1", "ghost", "c2"}, s.Meetings()[1].Attendees)

	s.Dispatch(SelectMeeting{ID: "m2"})
	attendees := s.MeetingAttendees()
	require.Len(t, attendees, 2, "unknown ids do not resolve")
	assert.Equal(t, "c1", attendees[0].ID)
}

func TestUnknownIDsAreIgnored(t *testing.T) {
	s := newTestSession(t)

	for _, in := range []Intent{
		EditContact{ID: "nope"},
		EditMeeting{ID: "nope"},
		RequestDeleteContact{ID: "nope"},
		RequestDeleteMeeting{ID: "nope"},
		ManageAttendees{MeetingID: "nope"},
		SaveAttendees{MeetingID: "nope", ContactIDs: []string{"c1"}},
		ConfirmDelete{},
		CancelDelete{},
	} {
		res := s.Dispatch(in)
		assert.True(t, res.Ignored, IntentName(in))
	}

	assert.Equal(t, 0, s.Revision())
	assert.Equal(t, ModalNone, s.Modals().Active())
	assert.Nil(t, s.Pending())
}

func TestCancelIntentsCloseModals(t *testing.T) {
	s := newTestSession(t)

	s.Dispatch(AddContact{})
	s.Dispatch(CancelContactForm{})
	assert.Equal(t, ModalNone, s.Modals().Active())

	s.Dispatch(EditMeeting{ID: "m1"})
	s.Dispatch(CancelMeetingForm{})
	assert.Equal(t, ModalNone, s.Modals().Active())
	assert.Nil(t, s.Modals().Meeting.Editing)

	s.Dispatch(ManageAttendees{MeetingID: "m1"})
	s.Dispatch(CancelAttendees{})
	assert.Equal(t, ModalNone, s.Modals().Active())
	assert.Equal(t, 0, s.Revision())
}

func TestMutationsAreAudited(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	recorder := audit.NewRecorder(logger, 0)
	seed := storage.Snapshot{
		Contacts: []models.Contact{{ID: "c1", Name: "Ada"}},
		Meetings: []models.Meeting{{ID: "m1", Title: "Sync", Attendees: []string{"c1"}}},
	}
	s := NewSession(storage.NewStore(seed), WithLogger(logger), WithRecorder(recorder))

	s.Dispatch(RequestDeleteContact{ID: "c1"})
	s.Dispatch(ConfirmDelete{})

	recent := recorder.Recent(0)
	require.Len(t, recent, 2)
	assert.Equal(t, audit.ActionCascade, recent[0].Action)
	assert.Equal(t, "m1", recent[0].EntityID)
	assert.Equal(t, audit.ActionDelete, recent[1].Action)

	assert.Equal(t, 2, logs.FilterMessage("intent dispatched").Len())
	assert.Equal(t, 2, logs.FilterMessage("record mutated").Len())
}

func TestSaveNeedsItsOwnDialog(t *testing.T) {
	s := newTestSession(t)
	s.Dispatch(AddContact{})

	res := s.Dispatch(SaveMeeting{Draft: models.MeetingDraft{Title: "Ghost"}})
	assert.True(t, res.Ignored)
	assert.Len(t, s.Meetings(), 2)
	assert.Equal(t, ModalContactForm, s.Modals().Active(), "the open form stays open")
	assert.Equal(t, ViewMeetings, s.ActiveView())

	res = s.Dispatch(SaveAttendees{MeetingID: "m1", ContactIDs: []string{"c1"}})
	assert.True(t, res.Ignored)
	assert.Equal(t, []string{"c1", "c2"}, s.Meetings()[0].Attendees)

	s.Dispatch(CancelContactForm{})
	res = s.Dispatch(SaveContact{Draft: models.ContactDraft{Name: "Nobody"}})
	assert.True(t, res.Ignored)
	assert.Len(t, s.Contacts(), 2)
	assert.Equal(t, 0, s.Revision())
	assert.Zero(t, s.Recorder().Len())
}

func TestSelectUnknownIDIsIgnored(t *testing.T) {
	s := newTestSession(t)

	assert.True(t, s.Dispatch(SelectContact{ID: "nope"}).Ignored)
	assert.True(t, s.Dispatch(SelectMeeting{ID: "nope"}).Ignored)

	assert.Equal(t, ViewMeetings, s.ActiveView())
	assert.Equal(t, "m1", s.Selection().MeetingID)
}

func TestAttendeeAuditDoesNotAliasCaller(t *testing.T) {
	s := newTestSession(t)
	ids := []string{"c1", "c2"}

	s.Dispatch(ManageAttendees{MeetingID: "m2"})
	s.Dispatch(SaveAttendees{MeetingID: "m2", ContactIDs: ids})
	ids[0] = "changed"

	history := s.Recorder().History("m2")
	require.Len(t, history, 1)
	assert.Equal(t, []string{"c1", "c2"}, history[0].Changes["attendees"].NewValue)
	assert.Equal(t, []string{"c1", "c2"}, s.Meetings()[1].Attendees)
}

func TestCreateMeetingKeepsSuppliedAttendees(t *testing.T) {
	s := newTestSession(t)

	s.Dispatch(AddMeeting{})
	res := s.Dispatch(SaveMeeting{Draft: models.MeetingDraft{Title: "Pairing", Attendees: []string{"c2", "c1"}}})

	require.True(t, res.Changed)
	meeting, ok := s.SelectedMeeting()
	require.True(t, ok)
	assert.Equal(t, []string{"c2", "c1"}, meeting.Attendees)
}
