// Package importer drives one batch of raw event records into the database.
package importer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"calimport/src-importer/gcal"
	"calimport/src-importer/model"

	"github.com/uptrace/bun"
)

type logFn func(format string, args ...interface{})

type Config struct {
	// DB receives the upserts. It can stay nil when DryRun is set.
	DB bun.IDB
	// DryRun normalizes and counts without touching the database.
	DryRun bool
	// LogFn and ErrFn receive progress and per-record error lines. Both
	// default to printing to stdout, which is where the report belongs.
	LogFn logFn
	ErrFn logFn
}

type Importer struct {
	db     bun.IDB
	dryRun bool
	logFn  logFn
	errFn  logFn
}

type Result struct {
	Synced int
	Errors int
}

func New(conf Config) *Importer {
	logFn := conf.LogFn
	if logFn == nil {
		logFn = func(format string, args ...interface{}) {
			fmt.Printf(format+"\n", args...)
		}
	}
	errFn := conf.ErrFn
	if errFn == nil {
		errFn = logFn
	}
	return &Importer{
		db:     conf.DB,
		dryRun: conf.DryRun,
		logFn:  logFn,
		errFn:  errFn,
	}
}

// Run pushes every record of the batch through normalize-and-upsert inside a
// single transaction. A record that can't be decoded, normalized or written
// only costs its own error count; the rest of the batch still lands in one
// commit at the end.
func (imp *Importer) Run(ctx context.Context, records []json.RawMessage) (Result, error) {
	var result Result

	if imp.dryRun {
		for _, raw := range records {
			if _, err := normalize(raw); err != nil {
				imp.errFn("[Calendar Import] Error importing event %s: %v", recordID(raw), err)
				result.Errors++
				continue
			}
			result.Synced++
		}
		return result, nil
	}

	if imp.db == nil {
		return result, fmt.Errorf("(*Importer).Run: db is nil")
	}
	if err := imp.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, raw := range records {
			if err := importOne(ctx, tx, raw); err != nil {
				imp.errFn("[Calendar Import] Error importing event %s: %v", recordID(raw), err)
				result.Errors++
				continue
			}
			result.Synced++
		}
		return nil
	}); err != nil {
		return result, fmt.Errorf("(*Importer).Run: %w", err)
	}

	return result, nil
}

func importOne(ctx context.Context, db bun.IDB, raw json.RawMessage) error {
	eventModel, err := normalize(raw)
	if err != nil {
		return err
	}
	return eventModel.Upsert(ctx, db)
}

func normalize(raw json.RawMessage) (*model.CalendarEvent, error) {
	event := new(gcal.Event)
	if err := json.Unmarshal(raw, event); err != nil {
		return nil, fmt.Errorf("can't decode event record: %w", err)
	}
	eventModel := new(model.CalendarEvent)
	if err := eventModel.FromGcal(event); err != nil {
		return nil, err
	}
	return eventModel, nil
}

// recordID digs the event id out of a raw record for the error report,
// without assuming the record decodes any further than that.
func recordID(raw json.RawMessage) string {
	var probe struct {
		ID *string `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.ID == nil {
		return "unknown"
	}
	return *probe.ID
}
