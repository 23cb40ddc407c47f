package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"rhystmorgan/veDesk/internal/models"
)

func TestRecorderLogsEveryEntry(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := NewRecorder(zap.New(core), 10)

	r.Record(EntityContact, "c1", ActionCreate, nil)
	r.Record(EntityMeeting, "m1", ActionUpdate, map[string]Change{"title": {OldValue: "a", NewValue: "b"}})

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, "record mutated", entries[0].Message)
	assert.Equal(t, "contact", entries[0].ContextMap()["entity"])
	assert.Equal(t, "update", entries[1].ContextMap()["action"])
	assert.Contains(t, entries[1].ContextMap(), "changes")
}

func TestRecorderRingKeepsNewest(t *testing.T) {
	r := NewRecorder(nil, 3)

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		r.Record(EntityContact, id, ActionCreate, nil)
	}

	assert.Equal(t, 3, r.Len())
	recent := r.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "e", recent[0].EntityID)
	assert.Equal(t, "c", recent[2].EntityID)

	assert.Len(t, r.Recent(2), 2)
	assert.Empty(t, r.History("a"))
}

func TestRecorderHistory(t *testing.T) {
	r := NewRecorder(nil, 0)
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	r.Record(EntityMeeting, "m1", ActionCreate, nil)
	r.Record(EntityMeeting, "m2", ActionCreate, nil)
	r.Record(EntityMeeting, "m1", ActionAttendees, nil)

	history := r.History("m1")
	require.Len(t, history, 2)
	assert.Equal(t, ActionCreate, history[0].Action)
	assert.Equal(t, ActionAttendees, history[1].Action)
	assert.Equal(t, fixed, history[0].Timestamp)
	assert.NotEqual(t, history[0].ID, history[1].ID)
}

func TestDiffContact(t *testing.T) {
	old := models.Contact{ID: "c1", Name: "Ada", Email: "a@x.io"}
	updated := models.Contact{ID: "c1", Name: "Ada", Email: "ada@x.io", Phone: "1"}

	changes := DiffContact(old, updated)

	assert.Len(t, changes, 2)
	assert.Equal(t, Change{OldValue: "a@x.io", NewValue: "ada@x.io"}, changes["email"])
	assert.Contains(t, changes, "phone")
	assert.Empty(t, DiffContact(old, old))
}

func TestDiffMeeting(t *testing.T) {
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	old := models.Meeting{ID: "m1", Title: "Sync", StartsAt: start, Attendees: []string{"c1"}}
	updated := old.Clone()
	updated.StartsAt = start.Add(time.Hour)
	updated.Attendees = []string{"c1", "c2"}

	changes := DiffMeeting(old, updated)

	assert.Len(t, changes, 2)
	assert.Contains(t, changes, "starts_at")
	assert.Contains(t, changes, "attendees")
	assert.Empty(t, DiffMeeting(old, old.Clone()))
}
