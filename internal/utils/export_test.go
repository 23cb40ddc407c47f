package utils

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"rhystmorgan/veDesk/internal/models"
)

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    ExportFormat
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" csv ", FormatCSV, false},
		{"xml", FormatTable, true},
	}

	for _, tt := range tests {
		got, err := ParseExportFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseExportFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseExportFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestExportContactsCSV(t *testing.T) {
	contacts := []models.Contact{
		{ID: "c1", Name: "Elena Vasquez", Title: "Product Lead", Email: "elena@example.com"},
		{ID: "c2", Name: "Chen, Marcus"},
	}

	var buf bytes.Buffer
	if err := ExportContacts(&buf, contacts, FormatCSV, time.Now()); err != nil {
		t.Fatalf("ExportContacts failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(records))
	}
	if records[0][1] != "name" {
		t.Errorf("Expected header 'name', got '%s'", records[0][1])
	}
	if records[2][1] != "Chen, Marcus" {
		t.Errorf("Expected quoted name to survive, got '%s'", records[2][1])
	}
}

func TestExportMeetingsJSON(t *testing.T) {
	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	meetings := []models.Meeting{
		{ID: "m1", Title: "Sync", StartsAt: now, Attendees: []string{"c1", "c2"}},
	}

	var buf bytes.Buffer
	if err := ExportMeetings(&buf, meetings, FormatJSON, now); err != nil {
		t.Fatalf("ExportMeetings failed: %v", err)
	}

	var decoded struct {
		TotalMeetings int              `json:"total_meetings"`
		Meetings      []models.Meeting `json:"meetings"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to decode export: %v", err)
	}
	if decoded.TotalMeetings != 1 {
		t.Errorf("Expected 1 meeting, got %d", decoded.TotalMeetings)
	}
	if len(decoded.Meetings[0].Attendees) != 2 || decoded.Meetings[0].Attendees[1] != "c2" {
		t.Errorf("Unexpected attendees %v", decoded.Meetings[0].Attendees)
	}
}

func TestExportMeetingsCSVJoinsAttendees(t *testing.T) {
	meetings := []models.Meeting{{ID: "m1", Title: "Sync", Attendees: []string{"c1", "c2"}}}

	var buf bytes.Buffer
	if err := ExportMeetings(&buf, meetings, FormatCSV, time.Now()); err != nil {
		t.Fatalf("ExportMeetings failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV back: %v", err)
	}
	if records[1][4] != "c1;c2" {
		t.Errorf("Expected 'c1;c2', got '%s'", records[1][4])
	}
}

func TestExportTableIsRejected(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportContacts(&buf, nil, FormatTable, time.Now()); err == nil {
		t.Error("Expected an error for table format")
	}
}
