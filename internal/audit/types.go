package audit

import (
	"time"
)

// Entity names the record kind an audit entry refers to
type Entity string

const (
	EntityContact Entity = "contact"
	EntityMeeting Entity = "meeting"
)

// Action represents the type of mutation performed on a record
type Action string

const (
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionAttendees Action = "attendees"
	ActionCascade   Action = "cascade"
)

// Entry represents a single audit log entry
type Entry struct {
	ID        string            `json:"id"`
	Entity    Entity            `json:"entity"`
	EntityID  string            `json:"entity_id"`
	Action    Action            `json:"action"`
	Timestamp time.Time         `json:"timestamp"`
	Changes   map[string]Change `json:"changes,omitempty"`
}

// Change represents a change in a record field
type Change struct {
	OldValue interface{} `json:"old_value,omitempty"`
	NewValue interface{} `json:"new_value,omitempty"`
}
