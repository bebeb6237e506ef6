package gcal_test

import (
	"encoding/json"
	"testing"
	"time"

	"calimport/src-importer/gcal"
)

func mustDecodeEvent(t *testing.T, raw string) *gcal.Event {
	t.Helper()
	event := new(gcal.Event)
	if err := json.Unmarshal([]byte(raw), event); err != nil {
		t.Fatal(err)
	}
	return event
}

func TestEventIsAllDay(t *testing.T) {
	// case: start has a dateTime key
	func() {
		event := mustDecodeEvent(t, `{"start":{"dateTime":"2025-03-01T10:00:00Z"}}`)
		if event.IsAllDay() {
			t.Error("event with a dateTime should not be all-day")
		}
	}()

	// case: start has only a date key
	func() {
		event := mustDecodeEvent(t, `{"start":{"date":"2025-03-01"}}`)
		if !event.IsAllDay() {
			t.Error("event with only a date should be all-day")
		}
	}()

	// case: no start at all
	func() {
		event := mustDecodeEvent(t, `{"summary":"no start"}`)
		if !event.IsAllDay() {
			t.Error("event without a start should be all-day")
		}
	}()

	// case: dateTime key present but empty still counts as timed
	func() {
		event := mustDecodeEvent(t, `{"start":{"dateTime":""}}`)
		if event.IsAllDay() {
			t.Error("an empty dateTime key is still a dateTime key")
		}
	}()
}

func TestEventTimeResolve(t *testing.T) {
	// case: dateTime wins over date
	func() {
		event := mustDecodeEvent(t, `{"start":{"dateTime":"2025-03-01T10:00:00Z","date":"2025-03-01"}}`)
		raw, fellBack := event.Start.ResolveStart()
		if raw != "2025-03-01T10:00:00Z" {
			t.Error("expected the dateTime verbatim, got", raw)
		}
		if fellBack {
			t.Error("should not report the fallback date")
		}
	}()

	// case: date-only start widens to the start of the day
	func() {
		event := mustDecodeEvent(t, `{"start":{"date":"2025-03-01"}}`)
		raw, fellBack := event.Start.ResolveStart()
		if raw != "2025-03-01T00:00:00Z" {
			t.Error("expected the start of the day, got", raw)
		}
		if fellBack {
			t.Error("should not report the fallback date")
		}
	}()

	// case: date-only end widens to the end of the day
	func() {
		event := mustDecodeEvent(t, `{"end":{"date":"2025-03-01"}}`)
		raw, fellBack := event.End.ResolveEnd()
		if raw != "2025-03-01T23:59:59Z" {
			t.Error("expected the end of the day, got", raw)
		}
		if fellBack {
			t.Error("should not report the fallback date")
		}
	}()

	// case: no date information at all falls back
	func() {
		event := mustDecodeEvent(t, `{"start":{}}`)
		raw, fellBack := event.Start.ResolveStart()
		if raw != gcal.FallbackDate+"T00:00:00Z" {
			t.Error("expected the fallback date, got", raw)
		}
		if !fellBack {
			t.Error("should report the fallback date")
		}
	}()

	// case: missing start behaves like an empty one
	func() {
		event := mustDecodeEvent(t, `{}`)
		raw, fellBack := event.Start.ResolveStart()
		if raw != gcal.FallbackDate+"T00:00:00Z" {
			t.Error("expected the fallback date, got", raw)
		}
		if !fellBack {
			t.Error("should report the fallback date")
		}
	}()

	// case: empty dateTime falls through to the date
	func() {
		event := mustDecodeEvent(t, `{"start":{"dateTime":"","date":"2025-03-01"}}`)
		raw, fellBack := event.Start.ResolveStart()
		if raw != "2025-03-01T00:00:00Z" {
			t.Error("expected the widened date, got", raw)
		}
		if fellBack {
			t.Error("should not report the fallback date")
		}
	}()
}

func TestParseTimestamp(t *testing.T) {
	// case: literal Z designator
	func() {
		parsed, err := gcal.ParseTimestamp("2025-03-01T10:30:00Z")
		if err != nil {
			t.Error(err)
		}
		if !parsed.Equal(time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)) {
			t.Error("wrong time", parsed)
		}
	}()

	// case: numeric offset is converted to UTC
	func() {
		parsed, err := gcal.ParseTimestamp("2025-03-01T10:30:00+07:00")
		if err != nil {
			t.Error(err)
		}
		if !parsed.Equal(time.Date(2025, 3, 1, 3, 30, 0, 0, time.UTC)) {
			t.Error("wrong time", parsed)
		}
		if parsed.Location() != time.UTC {
			t.Error("result should be in UTC", parsed.Location())
		}
	}()

	// case: timezone-naive timestamps are read as UTC
	func() {
		parsed, err := gcal.ParseTimestamp("2025-03-01T10:30:00")
		if err != nil {
			t.Error(err)
		}
		if !parsed.Equal(time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)) {
			t.Error("wrong time", parsed)
		}
	}()

	// case: garbage is an error
	func() {
		if _, err := gcal.ParseTimestamp("not-a-timestamp"); err == nil {
			t.Error("expected an error")
		}
	}()

	// case: empty string is an error
	func() {
		if _, err := gcal.ParseTimestamp(""); err == nil {
			t.Error("expected an error")
		}
	}()
}
