package storage

import (
	"sync"

	"rhystmorgan/veDesk/internal/models"
)

// Snapshot is one immutable view of both record collections. Nothing that
// receives a Snapshot modifies it; transitions build a new one.
type Snapshot struct {
	Contacts []models.Contact `yaml:"contacts"`
	Meetings []models.Meeting `yaml:"meetings"`
}

func (s Snapshot) Clone() Snapshot {
	contacts := make([]models.Contact, len(s.Contacts))
	copy(contacts, s.Contacts)

	meetings := make([]models.Meeting, len(s.Meetings))
	for i, m := range s.Meetings {
		meetings[i] = m.Clone()
	}

	return Snapshot{Contacts: contacts, Meetings: meetings}
}

func (s Snapshot) FindContact(id string) (models.Contact, bool) {
	if id == "" {
		return models.Contact{}, false
	}
	for _, c := range s.Contacts {
		if c.ID == id {
			return c, true
		}
	}
	return models.Contact{}, false
}

func (s Snapshot) FindMeeting(id string) (models.Meeting, bool) {
	if id == "" {
		return models.Meeting{}, false
	}
	for _, m := range s.Meetings {
		if m.ID == id {
			return m.Clone(), true
		}
	}
	return models.Meeting{}, false
}

// ResolveAttendees maps the meeting's attendee ids onto live contacts in
// attendee order. Ids without a matching contact are skipped.
func (s Snapshot) ResolveAttendees(meeting models.Meeting) []models.Contact {
	resolved := make([]models.Contact, 0, len(meeting.Attendees))
	for _, id := range meeting.Attendees {
		if c, ok := s.FindContact(id); ok {
			resolved = append(resolved, c)
		}
	}
	return resolved
}

// MeetingsFor lists the meetings a contact attends, in collection order.
func (s Snapshot) MeetingsFor(contactID string) []models.Meeting {
	var out []models.Meeting
	for _, m := range s.Meetings {
		if m.HasAttendee(contactID) {
			out = append(out, m.Clone())
		}
	}
	return out
}

// Store is the record store for one session. It is seeded once and only ever
// replaced wholesale through Commit.
type Store struct {
	mu       sync.RWMutex
	current  Snapshot
	revision int
}

func NewStore(seed Snapshot) *Store {
	return &Store{current: seed.Clone()}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current.Clone()
}

func (s *Store) Commit(next Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = next.Clone()
	s.revision++
}

// Revision counts commits since the store was seeded.
func (s *Store) Revision() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.revision
}
