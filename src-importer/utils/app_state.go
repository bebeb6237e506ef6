package utils

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/extra/bundebug"

	_ "github.com/go-sql-driver/mysql"
)

type AppState struct {
	Config    *Config
	RunID     string
	StartedAt time.Time

	RawDB *sql.DB
	BunDB *bun.DB
}

func NewAppState() *AppState {
	return &AppState{
		Config:    NewConfig(),
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
}

// ConnectDatabase opens the database described by rawURL and makes sure it is
// reachable before any import work starts.
func (as *AppState) ConnectDatabase(ctx context.Context, rawURL string) error {
	dsnConfig, err := ParseDatabaseURL(rawURL)
	if err != nil {
		return fmt.Errorf("(*AppState).ConnectDatabase: %w", err)
	}

	rawDB, err := sql.Open("mysql", dsnConfig.FormatDSN())
	if err != nil {
		return fmt.Errorf("(*AppState).ConnectDatabase: %w", err)
	}
	rawDB.SetMaxIdleConns(8)

	bunDB := bun.NewDB(rawDB, mysqldialect.New())
	bunDB.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithVerbose(true),
		bundebug.FromEnv("BUNDEBUG"),
	))

	if err := bunDB.PingContext(ctx); err != nil {
		rawDB.Close()
		return fmt.Errorf("(*AppState).ConnectDatabase: can't reach the database: %w", err)
	}

	as.RawDB = rawDB
	as.BunDB = bunDB
	return nil
}

func (as *AppState) Close() error {
	if as.BunDB == nil {
		return nil
	}
	return as.BunDB.Close()
}
