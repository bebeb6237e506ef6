// Package gcal decodes Google Calendar event records out of an MCP tool
// result dump.
package gcal

import (
	"fmt"
	"time"
)

// FallbackDate stands in for events that carry no date information at all.
const FallbackDate = "2026-01-01"

const (
	startOfDaySuffix = "T00:00:00Z"
	endOfDaySuffix   = "T23:59:59Z"
)

// Event is one raw calendar event record. Pointer fields tell a key that is
// absent in the JSON apart from one that is present but empty, which the
// defaulting rules below depend on.
type Event struct {
	ID          string     `json:"id"`
	Summary     string     `json:"summary"`
	Description *string    `json:"description"`
	Start       *EventTime `json:"start"`
	End         *EventTime `json:"end"`
	Location    string     `json:"location"`
	Attendees   []Attendee `json:"attendees"`
	HangoutLink string     `json:"hangoutLink"`
	HtmlLink    string     `json:"htmlLink"`
}

// EventTime holds either a concrete point in time (DateTime) or a whole day
// (Date), never meaningfully both.
type EventTime struct {
	DateTime *string `json:"dateTime"`
	Date     *string `json:"date"`
	TimeZone string  `json:"timeZone"`
}

type Attendee struct {
	Email          string `json:"email"`
	DisplayName    string `json:"displayName"`
	ResponseStatus string `json:"responseStatus"`
	Self           bool   `json:"self"`
}

// IsAllDay reports whether the event is an all-day event, which is the case
// exactly when its start carries no dateTime key.
func (e *Event) IsAllDay() bool {
	return e.Start == nil || e.Start.DateTime == nil
}

func (t *EventTime) resolve(suffix string) (string, bool) {
	if t != nil && t.DateTime != nil && *t.DateTime != "" {
		return *t.DateTime, false
	}
	if t != nil && t.Date != nil {
		return *t.Date + suffix, false
	}
	return FallbackDate + suffix, true
}

// ResolveStart returns the raw start timestamp: the dateTime if one is set,
// else the date widened to the start of the day, else the fallback date. The
// second return value reports whether the fallback had to be used.
func (t *EventTime) ResolveStart() (string, bool) {
	return t.resolve(startOfDaySuffix)
}

// ResolveEnd is ResolveStart for the end timestamp; dates widen to the end of
// the day instead.
func (t *EventTime) ResolveEnd() (string, bool) {
	return t.resolve(endOfDaySuffix)
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05", // timezone-naive, read as UTC
}

// ParseTimestamp parses an ISO-8601 timestamp with a literal Z designator, a
// numeric offset or no timezone at all. The result is always in UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("ParseTimestamp: unrecognized timestamp %q", raw)
}
