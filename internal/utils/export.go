package utils

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"rhystmorgan/veDesk/internal/models"
)

type ExportFormat int

const (
	FormatTable ExportFormat = iota
	FormatJSON
	FormatCSV
)

// ParseExportFormat maps a --format flag value to an ExportFormat.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return FormatTable, fmt.Errorf("unsupported export format: %s", s)
	}
}

type contactExport struct {
	ExportedAt    time.Time        `json:"exported_at"`
	TotalContacts int              `json:"total_contacts"`
	Contacts      []models.Contact `json:"contacts"`
}

type meetingExport struct {
	ExportedAt    time.Time        `json:"exported_at"`
	TotalMeetings int              `json:"total_meetings"`
	Meetings      []models.Meeting `json:"meetings"`
}

// ExportContacts writes contacts as JSON or CSV.
func ExportContacts(w io.Writer, contacts []models.Contact, format ExportFormat, now time.Time) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, contactExport{ExportedAt: now, TotalContacts: len(contacts), Contacts: contacts})
	case FormatCSV:
		records := make([][]string, 0, len(contacts))
		for _, c := range contacts {
			records = append(records, []string{c.ID, c.Name, c.Title, c.Email, c.Phone, c.AvatarURL})
		}
		return writeCSV(w, []string{"id", "name", "title", "email", "phone", "avatar_url"}, records)
	default:
		return fmt.Errorf("unsupported export format")
	}
}

// ExportMeetings writes meetings as JSON or CSV. In CSV the attendee ids are
// joined with ";".
func ExportMeetings(w io.Writer, meetings []models.Meeting, format ExportFormat, now time.Time) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, meetingExport{ExportedAt: now, TotalMeetings: len(meetings), Meetings: meetings})
	case FormatCSV:
		records := make([][]string, 0, len(meetings))
		for _, m := range meetings {
			records = append(records, []string{
				m.ID,
				m.Title,
				m.StartsAt.Format(time.RFC3339),
				m.Location,
				strings.Join(m.Attendees, ";"),
			})
		}
		return writeCSV(w, []string{"id", "title", "starts_at", "location", "attendees"}, records)
	default:
		return fmt.Errorf("unsupported export format")
	}
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, header []string, records [][]string) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
