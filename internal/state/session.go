package state

import (
	"slices"

	"go.uber.org/zap"

	"rhystmorgan/veDesk/internal/audit"
	"rhystmorgan/veDesk/internal/crud"
	"rhystmorgan/veDesk/internal/models"
	"rhystmorgan/veDesk/internal/storage"
)

// Session owns everything one user session works on: the record store, the
// view/selection/dialog state and the collaborators used to mutate them.
// Dispatch handles one intent completely before returning.
type Session struct {
	store    *storage.Store
	state    State
	ids      crud.IDGenerator
	logger   *zap.Logger
	recorder *audit.Recorder
}

type Option func(*Session)

func WithIDGenerator(ids crud.IDGenerator) Option {
	return func(s *Session) { s.ids = ids }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithRecorder(recorder *audit.Recorder) Option {
	return func(s *Session) { s.recorder = recorder }
}

// Result reports what a dispatched intent did.
type Result struct {
	// Changed is set when the record collections were replaced.
	Changed bool
	// CreatedID is the id of a record created by the intent.
	CreatedID string
	// Ignored is set when the intent had nothing to act on or was blocked by
	// a pending confirmation.
	Ignored bool
}

func NewSession(store *storage.Store, opts ...Option) *Session {
	s := &Session{
		store:  store,
		ids:    crud.UUIDGenerator{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.recorder == nil {
		s.recorder = audit.NewRecorder(s.logger, 0)
	}
	s.logger = s.logger.Named("session")
	s.state = Initial(store.Snapshot().Meetings)
	return s
}

func (s *Session) Dispatch(in Intent) Result {
	name := IntentName(in)

	if s.state.Pending != nil {
		switch in.(type) {
		case ConfirmDelete, CancelDelete:
		default:
			s.logger.Debug("intent blocked by pending confirmation", zap.String("intent", name))
			return Result{Ignored: true}
		}
	}

	snap := s.store.Snapshot()
	result := s.apply(in, snap)

	s.logger.Debug("intent dispatched",
		zap.String("intent", name),
		zap.Stringer("view", s.state.View),
		zap.String("selected_contact", s.state.Selection.ContactID),
		zap.String("selected_meeting", s.state.Selection.MeetingID),
		zap.Bool("changed", result.Changed),
		zap.Bool("ignored", result.Ignored),
	)
	return result
}

func (s *Session) apply(in Intent, snap storage.Snapshot) Result {
	switch in := in.(type) {
	case SelectContact:
		if _, ok := snap.FindContact(in.ID); !ok {
			return Result{Ignored: true}
		}
		s.state = s.state.SelectContact(in.ID)

	case SelectMeeting:
		if _, ok := snap.FindMeeting(in.ID); !ok {
			return Result{Ignored: true}
		}
		s.state = s.state.SelectMeeting(in.ID)

	case SwitchView:
		s.state = s.state.SwitchView(in.View)

	case AddContact:
		s.state = s.state.OpenContactForm(nil)

	case EditContact:
		contact, ok := snap.FindContact(in.ID)
		if !ok {
			return Result{Ignored: true}
		}
		s.state = s.state.OpenContactForm(&contact)

	case SaveContact:
		if !s.state.Modals.Contact.Open {
			return Result{Ignored: true}
		}
		return s.saveContact(snap, in.Draft)

	case CancelContactForm:
		s.state = s.state.CloseContactForm()

	case RequestDeleteContact:
		contact, ok := snap.FindContact(in.ID)
		if !ok {
			return Result{Ignored: true}
		}
		s.state = s.state.RequestDelete(EntityContact, contact.ID, contact.Name)

	case AddMeeting:
		s.state = s.state.OpenMeetingForm(nil)

	case EditMeeting:
		meeting, ok := snap.FindMeeting(in.ID)
		if !ok {
			return Result{Ignored: true}
		}
		s.state = s.state.OpenMeetingForm(&meeting)

	case SaveMeeting:
		if !s.state.Modals.Meeting.Open {
			return Result{Ignored: true}
		}
		return s.saveMeeting(snap, in.Draft)

	case CancelMeetingForm:
		s.state = s.state.CloseMeetingForm()

	case RequestDeleteMeeting:
		meeting, ok := snap.FindMeeting(in.ID)
		if !ok {
			return Result{Ignored: true}
		}
		s.state = s.state.RequestDelete(EntityMeeting, meeting.ID, meeting.Title)

	case ManageAttendees:
		meeting, ok := snap.FindMeeting(in.MeetingID)
		if !ok {
			return Result{Ignored: true}
		}
		s.state = s.state.OpenAttendees(meeting)

	case SaveAttendees:
		if !s.state.Modals.Attendees.Open {
			return Result{Ignored: true}
		}
		return s.saveAttendees(snap, in)

	case CancelAttendees:
		s.state = s.state.CloseAttendees()

	case ConfirmDelete:
		return s.confirmDelete(snap)

	case CancelDelete:
		if s.state.Pending == nil {
			return Result{Ignored: true}
		}
		s.state = s.state.ClearPending()

	default:
		return Result{Ignored: true}
	}

	return Result{}
}

func (s *Session) saveContact(snap storage.Snapshot, draft models.ContactDraft) Result {
	editing := s.state.Modals.Contact.Editing
	s.state = s.state.CloseContactForm()

	if editing != nil {
		old, ok := snap.FindContact(editing.ID)
		if !ok {
			return Result{Ignored: true}
		}
		snap.Contacts = crud.UpdateContact(snap.Contacts, editing.ID, draft.Patch())
		updated, _ := snap.FindContact(editing.ID)
		s.commit(snap)
		s.recorder.Record(audit.EntityContact, editing.ID, audit.ActionUpdate, audit.DiffContact(old, updated))
		return Result{Changed: true}
	}

	var id string
	snap.Contacts, id = crud.CreateContact(snap.Contacts, draft, s.ids)
	s.commit(snap)
	s.recorder.Record(audit.EntityContact, id, audit.ActionCreate, nil)
	s.state = s.state.SelectContact(id)
	return Result{Changed: true, CreatedID: id}
}

func (s *Session) saveMeeting(snap storage.Snapshot, draft models.MeetingDraft) Result {
	editing := s.state.Modals.Meeting.Editing
	s.state = s.state.CloseMeetingForm()

	if editing != nil {
		old, ok := snap.FindMeeting(editing.ID)
		if !ok {
			return Result{Ignored: true}
		}
		snap.Meetings = crud.UpdateMeeting(snap.Meetings, editing.ID, draft.Patch())
		updated, _ := snap.FindMeeting(editing.ID)
		s.commit(snap)
		s.recorder.Record(audit.EntityMeeting, editing.ID, audit.ActionUpdate, audit.DiffMeeting(old, updated))
		return Result{Changed: true}
	}

	var id string
	snap.Meetings, id = crud.CreateMeeting(snap.Meetings, draft, s.ids)
	s.commit(snap)
	s.recorder.Record(audit.EntityMeeting, id, audit.ActionCreate, nil)
	s.state = s.state.SelectMeeting(id)
	return Result{Changed: true, CreatedID: id}
}

func (s *Session) saveAttendees(snap storage.Snapshot, in SaveAttendees) Result {
	meetingID := in.MeetingID
	if meetingID == "" && s.state.Modals.Attendees.Target != nil {
		meetingID = s.state.Modals.Attendees.Target.ID
	}
	s.state = s.state.CloseAttendees()

	old, ok := snap.FindMeeting(meetingID)
	if !ok {
		return Result{Ignored: true}
	}

	snap.Meetings = crud.SetAttendees(snap.Meetings, meetingID, in.ContactIDs)
	s.commit(snap)
	s.recorder.Record(audit.EntityMeeting, meetingID, audit.ActionAttendees, map[string]audit.Change{
		"attendees": {OldValue: slices.Clone(old.Attendees), NewValue: slices.Clone(in.ContactIDs)},
	})
	return Result{Changed: true}
}

func (s *Session) confirmDelete(snap storage.Snapshot) Result {
	pending := s.state.Pending
	if pending == nil {
		return Result{Ignored: true}
	}
	s.state = s.state.ClearPending()

	switch pending.Kind {
	case EntityContact:
		if _, ok := snap.FindContact(pending.ID); !ok {
			return Result{Ignored: true}
		}
		affected := snap.MeetingsFor(pending.ID)
		s.commit(crud.DeleteContact(snap, pending.ID))
		s.recorder.Record(audit.EntityContact, pending.ID, audit.ActionDelete, deletedName(pending))
		for _, m := range affected {
			s.recorder.Record(audit.EntityMeeting, m.ID, audit.ActionCascade, map[string]audit.Change{
				"attendees": {OldValue: pending.ID},
			})
		}
		s.state = s.state.ClearContact(pending.ID)

	case EntityMeeting:
		if _, ok := snap.FindMeeting(pending.ID); !ok {
			return Result{Ignored: true}
		}
		snap.Meetings = crud.DeleteMeeting(snap.Meetings, pending.ID)
		s.commit(snap)
		s.recorder.Record(audit.EntityMeeting, pending.ID, audit.ActionDelete, deletedName(pending))
		s.state = s.state.ClearMeeting(pending.ID)
	}

	return Result{Changed: true}
}

// deletedName keeps the label of a removed record in its journal entry.
func deletedName(p *PendingDelete) map[string]audit.Change {
	return map[string]audit.Change{"name": {OldValue: p.Name}}
}

func (s *Session) commit(next storage.Snapshot) {
	s.store.Commit(next)
}

// State returns the current view/selection/dialog state.
func (s *Session) State() State {
	return s.state
}

func (s *Session) Snapshot() storage.Snapshot {
	return s.store.Snapshot()
}

func (s *Session) Contacts() []models.Contact {
	return s.store.Snapshot().Contacts
}

func (s *Session) Meetings() []models.Meeting {
	return s.store.Snapshot().Meetings
}

func (s *Session) ActiveView() View {
	return s.state.View
}

func (s *Session) Selection() Selection {
	return s.state.Selection
}

// SelectedContact resolves the selected contact id against the live records.
func (s *Session) SelectedContact() (models.Contact, bool) {
	return s.store.Snapshot().FindContact(s.state.Selection.ContactID)
}

func (s *Session) SelectedMeeting() (models.Meeting, bool) {
	return s.store.Snapshot().FindMeeting(s.state.Selection.MeetingID)
}

// MeetingAttendees resolves the selected meeting's attendees to contacts.
func (s *Session) MeetingAttendees() []models.Contact {
	snap := s.store.Snapshot()
	meeting, ok := snap.FindMeeting(s.state.Selection.MeetingID)
	if !ok {
		return nil
	}
	return snap.ResolveAttendees(meeting)
}

func (s *Session) Modals() Modals {
	return s.state.Modals
}

func (s *Session) Pending() *PendingDelete {
	return s.state.Pending
}

func (s *Session) Revision() int {
	return s.store.Revision()
}

func (s *Session) Recorder() *audit.Recorder {
	return s.recorder
}
