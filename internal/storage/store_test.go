package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhystmorgan/veDesk/internal/models"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Contacts: []models.Contact{
			{ID: "c1", Name: "Ada"},
			{ID: "c2", Name: "Grace"},
		},
		Meetings: []models.Meeting{
			{ID: "m1", Title: "Sync", Attendees: []string{"c2", "ghost", "c1"}},
			{ID: "m2", Title: "Retro", Attendees: []string{}},
		},
	}
}

func TestDefaultFixtures(t *testing.T) {
	snap, err := DefaultFixtures()
	require.NoError(t, err)

	assert.NotEmpty(t, snap.Contacts)
	assert.NotEmpty(t, snap.Meetings)

	first, ok := snap.FindMeeting("m1")
	require.True(t, ok)
	assert.Equal(t, "Q3 Roadmap Review", first.Title)
	assert.Equal(t, 2025, first.StartsAt.Year())
	assert.Equal(t, []string{"c1", "c2", "c3"}, first.Attendees)

	for _, m := range snap.Meetings {
		for _, id := range m.Attendees {
			_, ok := snap.FindContact(id)
			assert.Truef(t, ok, "meeting %s references unknown contact %s", m.ID, id)
		}
	}
}

func TestParseFixturesFillsMissingFields(t *testing.T) {
	snap, err := ParseFixtures([]byte(`
contacts:
  - name: No Id
meetings:
  - title: Empty
`))
	require.NoError(t, err)
	require.Len(t, snap.Contacts, 1)
	require.Len(t, snap.Meetings, 1)

	assert.NotEmpty(t, snap.Contacts[0].ID)
	assert.Contains(t, snap.Contacts[0].AvatarURL, "https://picsum.photos/seed/")
	assert.NotNil(t, snap.Meetings[0].Attendees)
	assert.Empty(t, snap.Meetings[0].Attendees)
}

func TestParseFixturesRejectsDuplicates(t *testing.T) {
	_, err := ParseFixtures([]byte(`
contacts:
  - {id: c1, name: A}
  - {id: c1, name: B}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate contact id")
}

func TestParseFixturesInvalidYAML(t *testing.T) {
	_, err := ParseFixtures([]byte("contacts: [unterminated"))
	require.Error(t, err)
}

func TestLoadFixturesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("contacts:\n  - {id: x, name: X}\n"), 0600))

	snap, err := LoadFixtures(path)
	require.NoError(t, err)
	require.Len(t, snap.Contacts, 1)
	assert.Equal(t, "x", snap.Contacts[0].ID)
	assert.Empty(t, snap.Meetings)

	_, err = LoadFixtures(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestResolveAttendeesSkipsUnknownIDs(t *testing.T) {
	snap := testSnapshot()
	meeting, _ := snap.FindMeeting("m1")

	resolved := snap.ResolveAttendees(meeting)

	require.Len(t, resolved, 2)
	assert.Equal(t, "c2", resolved[0].ID)
	assert.Equal(t, "c1", resolved[1].ID)
}

func TestMeetingsFor(t *testing.T) {
	snap := testSnapshot()

	meetings := snap.MeetingsFor("c1")
	require.Len(t, meetings, 1)
	assert.Equal(t, "m1", meetings[0].ID)
	assert.Empty(t, snap.MeetingsFor("c9"))
}

func TestFindWithEmptyID(t *testing.T) {
	snap := testSnapshot()

	_, ok := snap.FindContact("")
	assert.False(t, ok)
	_, ok = snap.FindMeeting("")
	assert.False(t, ok)
}

func TestStoreCommitIsolatesSnapshots(t *testing.T) {
	seed := testSnapshot()
	store := NewStore(seed)
	assert.Equal(t, 0, store.Revision())

	seed.Meetings[0].Attendees[0] = "mutated"
	got := store.Snapshot()
	assert.Equal(t, "c2", got.Meetings[0].Attendees[0], "seed mutation leaked into store")

	got.Contacts[0].Name = "changed"
	assert.Equal(t, "Ada", store.Snapshot().Contacts[0].Name, "snapshot mutation leaked into store")

	next := store.Snapshot()
	next.Contacts = next.Contacts[:1]
	store.Commit(next)

	assert.Equal(t, 1, store.Revision())
	assert.Len(t, store.Snapshot().Contacts, 1)
}
