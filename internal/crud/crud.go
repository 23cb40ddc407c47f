// Package crud holds the create/update/delete transitions over the contact
// and meeting collections. Every function takes the current collections and
// returns new ones; inputs are never modified and outputs never share
// backing arrays with them.
package crud

import (
	"rhystmorgan/veDesk/internal/models"
	"rhystmorgan/veDesk/internal/storage"
)

func CreateContact(contacts []models.Contact, draft models.ContactDraft, ids IDGenerator) ([]models.Contact, string) {
	id := ids.NewID()
	contact := models.NewContact(id, ids.NewID(), draft)

	next := make([]models.Contact, 0, len(contacts)+1)
	next = append(next, contacts...)
	next = append(next, contact)
	return next, id
}

// UpdateContact merges patch onto the contact with id. An unknown id returns
// an unchanged copy.
func UpdateContact(contacts []models.Contact, id string, patch models.ContactPatch) []models.Contact {
	next := make([]models.Contact, len(contacts))
	for i, c := range contacts {
		if c.ID == id {
			c = c.Apply(patch)
		}
		next[i] = c
	}
	return next
}

// DeleteContact removes the contact and prunes its id from every meeting's
// attendees. Both collections change together in the returned snapshot.
func DeleteContact(snap storage.Snapshot, id string) storage.Snapshot {
	contacts := make([]models.Contact, 0, len(snap.Contacts))
	for _, c := range snap.Contacts {
		if c.ID != id {
			contacts = append(contacts, c)
		}
	}

	meetings := make([]models.Meeting, len(snap.Meetings))
	for i, m := range snap.Meetings {
		attendees := make([]string, 0, len(m.Attendees))
		for _, a := range m.Attendees {
			if a != id {
				attendees = append(attendees, a)
			}
		}
		m.Attendees = attendees
		meetings[i] = m
	}

	return storage.Snapshot{Contacts: contacts, Meetings: meetings}
}

func CreateMeeting(meetings []models.Meeting, draft models.MeetingDraft, ids IDGenerator) ([]models.Meeting, string) {
	id := ids.NewID()
	meeting := models.NewMeeting(id, draft)

	next := cloneMeetings(meetings, 1)
	next = append(next, meeting)
	return next, id
}

func UpdateMeeting(meetings []models.Meeting, id string, patch models.MeetingPatch) []models.Meeting {
	next := make([]models.Meeting, len(meetings))
	for i, m := range meetings {
		if m.ID == id {
			next[i] = m.Apply(patch)
			continue
		}
		next[i] = m.Clone()
	}
	return next
}

// DeleteMeeting has no effect on contacts.
func DeleteMeeting(meetings []models.Meeting, id string) []models.Meeting {
	next := make([]models.Meeting, 0, len(meetings))
	for _, m := range meetings {
		if m.ID != id {
			next = append(next, m.Clone())
		}
	}
	return next
}

// SetAttendees replaces the meeting's attendee list wholesale. Ids are not
// checked against the contact collection.
func SetAttendees(meetings []models.Meeting, meetingID string, contactIDs []string) []models.Meeting {
	ids := make([]string, len(contactIDs))
	copy(ids, contactIDs)
	return UpdateMeeting(meetings, meetingID, models.MeetingPatch{Attendees: &ids})
}

func cloneMeetings(meetings []models.Meeting, extra int) []models.Meeting {
	next := make([]models.Meeting, 0, len(meetings)+extra)
	for _, m := range meetings {
		next = append(next, m.Clone())
	}
	return next
}
