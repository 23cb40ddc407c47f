package storage

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"rhystmorgan/veDesk/internal/models"
)

//go:embed fixtures/seed.yaml
var defaultFixtures []byte

// DefaultFixtures returns the seed records compiled into the binary.
func DefaultFixtures() (Snapshot, error) {
	return ParseFixtures(defaultFixtures)
}

// LoadFixtures reads seed records from path. An empty path selects the
// embedded defaults.
func LoadFixtures(path string) (Snapshot, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultFixtures()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read fixtures file: %w", err)
	}

	return ParseFixtures(data)
}

func ParseFixtures(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to unmarshal fixtures: %w", err)
	}

	seen := make(map[string]bool)
	for i := range snap.Contacts {
		c := &snap.Contacts[i]
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if seen[c.ID] {
			return Snapshot{}, fmt.Errorf("duplicate contact id in fixtures: %s", c.ID)
		}
		seen[c.ID] = true
		if c.AvatarURL == "" {
			c.AvatarURL = models.AvatarURL(uuid.NewString())
		}
	}

	seen = make(map[string]bool)
	for i := range snap.Meetings {
		m := &snap.Meetings[i]
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if seen[m.ID] {
			return Snapshot{}, fmt.Errorf("duplicate meeting id in fixtures: %s", m.ID)
		}
		seen[m.ID] = true
		if m.Attendees == nil {
			m.Attendees = []string{}
		}
	}

	if snap.Contacts == nil {
		snap.Contacts = []models.Contact{}
	}
	if snap.Meetings == nil {
		snap.Meetings = []models.Meeting{}
	}

	return snap, nil
}
