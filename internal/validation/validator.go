package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"rhystmorgan/veDesk/internal/models"
)

const (
	MaxNameLength     = 60
	MaxTitleLength    = 80
	MaxLocationLength = 80
)

// ValidateContact checks a contact form draft. existing is the live contact
// collection; selfID excludes the record being edited from duplicate checks.
func ValidateContact(draft models.ContactDraft, existing []models.Contact, selfID string) ValidationResult {
	var result ValidationResult
	d := draft.Normalize()

	if d.Name == "" {
		result.addError("name", ErrorNameRequired, "Name is required")
	} else if utf8.RuneCountInString(d.Name) > MaxNameLength {
		result.addError("name", ErrorNameTooLong, fmt.Sprintf("Name too long (max %d characters)", MaxNameLength))
	}

	if d.Email != "" {
		addr, err := mail.ParseAddress(d.Email)
		if err != nil || addr.Address != d.Email {
			result.addError("email", ErrorInvalidEmail, "Invalid email address")
		}
	}

	if d.Phone != "" && !isPhone(d.Phone) {
		result.addError("phone", ErrorInvalidPhone, "Phone may only contain digits, spaces and + - ( )")
	}

	for _, c := range existing {
		if c.ID != selfID && d.Name != "" && strings.EqualFold(c.Name, d.Name) {
			result.addWarning("name", ErrorDuplicateName, "Another contact already has this name")
			break
		}
	}

	return result
}

// ParseStart parses a meeting start time entered in MeetingTimeLayout, in the
// local time zone.
func ParseStart(value string) (time.Time, error) {
	return time.ParseInLocation(models.MeetingTimeLayout, strings.TrimSpace(value), time.Local)
}

// ValidateMeeting checks the meeting form fields. The start time is validated
// as text because that is what the form holds.
func ValidateMeeting(title, start, location string, now time.Time) ValidationResult {
	var result ValidationResult

	title = strings.TrimSpace(title)
	if title == "" {
		result.addError("title", ErrorTitleRequired, "Title is required")
	} else if utf8.RuneCountInString(title) > MaxTitleLength {
		result.addError("title", ErrorTitleTooLong, fmt.Sprintf("Title too long (max %d characters)", MaxTitleLength))
	}

	if strings.TrimSpace(start) == "" {
		result.addError("starts_at", ErrorStartRequired, "Start time is required")
	} else if t, err := ParseStart(start); err != nil {
		result.addError("starts_at", ErrorInvalidStart, "Use the format YYYY-MM-DD HH:MM")
	} else if !now.IsZero() && t.Before(now) {
		result.addWarning("starts_at", ErrorStartInPast, "This meeting starts in the past")
	}

	if utf8.RuneCountInString(strings.TrimSpace(location)) > MaxLocationLength {
		result.addError("location", ErrorLocationTooLong, fmt.Sprintf("Location too long (max %d characters)", MaxLocationLength))
	}

	return result
}

func isPhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '+' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits > 0
}
