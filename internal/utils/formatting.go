package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

const (
	longTimeLayout  = "Mon 2 Jan 2006 15:04"
	shortTimeLayout = "Jan 2 15:04"
)

// FormatMeetingTime renders a start time with its distance from now, e.g.
// "Mon 14 Jul 2025 10:00 (3 days from now)".
func FormatMeetingTime(start, now time.Time) string {
	if start.IsZero() {
		return "No start time"
	}
	return fmt.Sprintf("%s (%s)", start.Local().Format(longTimeLayout), humanize.RelTime(start, now, "ago", "from now"))
}

func FormatShortTime(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Local().Format(shortTimeLayout)
}

// FormatAttendeeCount gives "no attendees", "1 attendee", "3 attendees".
func FormatAttendeeCount(n int) string {
	if n == 0 {
		return "no attendees"
	}
	return english.Plural(n, "attendee", "")
}

// TruncateString shortens s to maxLen runes, ending in an ellipsis.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	runes := []rune(s)
	if maxLen == 1 {
		return string(runes[:1])
	}
	return string(runes[:maxLen-1]) + "…"
}

// PadString pads s with padChar up to width runes.
func PadString(s string, width int, padChar rune) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(string(padChar), width-n)
}

// FormatValidationError formats a field error for inline display.
func FormatValidationError(message string) string {
	if message == "" {
		return ""
	}
	return "✗ " + message
}
