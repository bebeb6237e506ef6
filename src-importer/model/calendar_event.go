package model

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"calimport/src-importer/gcal"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"
)

// width of the VARCHAR columns in the calendar_events table
const maxFieldLength = 500

type CalendarEvent struct {
	bun.BaseModel `bun:"table:calendar_events"`

	GoogleEventID string    `bun:"googleEventId,pk"` // may be blank; blank ids all land on one row
	Summary       string    `bun:"summary,notnull"`  // required
	Description   *string   `bun:"description"`
	StartTime     time.Time `bun:"startTime,notnull"` // required
	EndTime       time.Time `bun:"endTime,notnull"`   // required
	IsAllDay      bool      `bun:"isAllDay"`
	Location      string    `bun:"location,nullzero"`
	Attendees     string    `bun:"attendees,notnull"` // JSON array of emails, "[]" when none
	HangoutLink   string    `bun:"hangoutLink,nullzero"`
	HtmlLink      string    `bun:"htmlLink,nullzero"`
	SyncedAt      time.Time `bun:"syncedAt,notnull"`
}

// FromGcal fills the row from a raw calendar event record: blank summaries
// become "Untitled", oversized text fields are cut to the column width,
// attendees collapse into a JSON array of their non-empty emails and missing
// date information falls back to the start/end of the placeholder day.
func (e *CalendarEvent) FromGcal(event *gcal.Event) error {
	if event == nil {
		return fmt.Errorf("(*CalendarEvent).FromGcal: event is nil")
	}

	e.GoogleEventID = event.ID

	summary := event.Summary
	if summary == "" {
		summary = "Untitled"
	}
	e.Summary = truncate(summary, maxFieldLength)

	e.Description = event.Description
	e.IsAllDay = event.IsAllDay()

	rawStart, fellBack := event.Start.ResolveStart()
	if fellBack {
		slog.Warn("event has no start date information, assuming the fallback date",
			"event_id", event.ID,
			"fallback", gcal.FallbackDate)
	}
	startTime, err := gcal.ParseTimestamp(rawStart)
	if err != nil {
		return fmt.Errorf("(*CalendarEvent).FromGcal: invalid start time: %w", err)
	}
	e.StartTime = startTime

	rawEnd, fellBack := event.End.ResolveEnd()
	if fellBack {
		slog.Warn("event has no end date information, assuming the fallback date",
			"event_id", event.ID,
			"fallback", gcal.FallbackDate)
	}
	endTime, err := gcal.ParseTimestamp(rawEnd)
	if err != nil {
		return fmt.Errorf("(*CalendarEvent).FromGcal: invalid end time: %w", err)
	}
	e.EndTime = endTime

	e.Location = truncate(event.Location, maxFieldLength)
	e.HangoutLink = truncate(event.HangoutLink, maxFieldLength)
	e.HtmlLink = truncate(event.HtmlLink, maxFieldLength)

	emails := make([]string, 0, len(event.Attendees))
	for _, attendee := range event.Attendees {
		if attendee.Email == "" {
			continue
		}
		emails = append(emails, attendee.Email)
	}
	encoded, err := json.Marshal(emails)
	if err != nil {
		return fmt.Errorf("(*CalendarEvent).FromGcal: can't encode attendees: %w", err)
	}
	e.Attendees = string(encoded)

	return nil
}

// Upsert writes the row, overwriting every non-key column when a row with the
// same googleEventId already exists. syncedAt is refreshed on every write,
// updates included.
func (e *CalendarEvent) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case db == nil:
		return fmt.Errorf("(*CalendarEvent).Upsert: db is nil")
	case e.Summary == "":
		return fmt.Errorf("(*CalendarEvent).Upsert: summary is blank")
	case e.StartTime.IsZero():
		return fmt.Errorf("(*CalendarEvent).Upsert: start time is blank")
	case e.EndTime.IsZero():
		return fmt.Errorf("(*CalendarEvent).Upsert: end time is blank")
	}
	e.SyncedAt = time.Now().UTC()

	query := db.NewInsert().Model(e)
	if query.DB().HasFeature(feature.InsertOnDuplicateKey) {
		query = query.
			On("DUPLICATE KEY UPDATE").
			Set("summary = VALUES(summary)").
			Set("description = VALUES(description)").
			Set("startTime = VALUES(startTime)").
			Set("endTime = VALUES(endTime)").
			Set("isAllDay = VALUES(isAllDay)").
			Set("location = VALUES(location)").
			Set("attendees = VALUES(attendees)").
			Set("hangoutLink = VALUES(hangoutLink)").
			Set("htmlLink = VALUES(htmlLink)").
			Set("syncedAt = VALUES(syncedAt)")
	} else {
		query = query.
			On("CONFLICT (googleEventId) DO UPDATE").
			Set("summary = EXCLUDED.summary").
			Set("description = EXCLUDED.description").
			Set("startTime = EXCLUDED.startTime").
			Set("endTime = EXCLUDED.endTime").
			Set("isAllDay = EXCLUDED.isAllDay").
			Set("location = EXCLUDED.location").
			Set("attendees = EXCLUDED.attendees").
			Set("hangoutLink = EXCLUDED.hangoutLink").
			Set("htmlLink = EXCLUDED.htmlLink").
			Set("syncedAt = EXCLUDED.syncedAt")
	}
	if _, err := query.Exec(ctx); err != nil {
		return fmt.Errorf("(*CalendarEvent).Upsert: %w", err)
	}

	return nil
}

// truncate cuts s to at most limit characters, counting code points the way
// the column width does, not bytes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
