package audit

import (
	"slices"

	"rhystmorgan/veDesk/internal/models"
)

// DiffContact lists the fields that differ between two versions of a contact.
func DiffContact(old, updated models.Contact) map[string]Change {
	changes := make(map[string]Change)
	diffString(changes, "name", old.Name, updated.Name)
	diffString(changes, "title", old.Title, updated.Title)
	diffString(changes, "email", old.Email, updated.Email)
	diffString(changes, "phone", old.Phone, updated.Phone)
	diffString(changes, "avatar_url", old.AvatarURL, updated.AvatarURL)
	return changes
}

func DiffMeeting(old, updated models.Meeting) map[string]Change {
	changes := make(map[string]Change)
	diffString(changes, "title", old.Title, updated.Title)
	if !old.StartsAt.Equal(updated.StartsAt) {
		changes["starts_at"] = Change{OldValue: old.StartsAt, NewValue: updated.StartsAt}
	}
	diffString(changes, "location", old.Location, updated.Location)
	diffString(changes, "description", old.Description, updated.Description)
	if !slices.Equal(old.Attendees, updated.Attendees) {
		changes["attendees"] = Change{OldValue: old.Attendees, NewValue: updated.Attendees}
	}
	return changes
}

func diffString(changes map[string]Change, field, old, updated string) {
	if old != updated {
		changes[field] = Change{OldValue: old, NewValue: updated}
	}
}
