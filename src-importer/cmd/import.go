package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"calimport/src-importer/gcal"
	"calimport/src-importer/importer"
	"calimport/src-importer/metric"
	"calimport/src-importer/utils"

	"github.com/urfave/cli"
)

const (
	AppName    = "calimport"
	AppVersion = "0.1.0"
)

var Flags = []cli.Flag{
	&cli.StringFlag{
		Name:  "database-url",
		Usage: "Connection string, overrides the DATABASE_URL environment variable",
	},
	&cli.BoolFlag{
		Name:  "dry-run",
		Usage: "Don't persist events",
	},
	&cli.BoolFlag{
		Name:  "debug",
		Usage: "Output debug messages",
	},
}

// Import reads the MCP result dump named on the command line and upserts every
// event record in it into the calendar_events table. Records that fail to
// decode or normalize are reported and skipped, the rest of the batch still
// lands. A summary line with both counts closes the run.
func Import(c *cli.Context) error {
	if c.Bool("debug") {
		utils.LogLevel.Set(slog.LevelDebug)
	}

	if c.NArg() < 1 {
		_ = cli.ShowAppHelp(c)
		return fmt.Errorf("missing path to the result JSON file")
	}
	resultPath := c.Args().First()

	as := utils.NewAppState()
	slog.Debug("starting import",
		"run_id", as.RunID,
		"path", resultPath,
		"dry_run", c.Bool("dry-run"))

	// #region - read & decode the result dump
	records, err := gcal.ReadResultFile(resultPath)
	if err != nil {
		return err
	}
	fmt.Printf("[Calendar Import] Found %d events to import\n", len(records))
	// #endregion

	ctx := context.Background()

	// #region - resolve the connection string & connect
	importerConfig := importer.Config{DryRun: c.Bool("dry-run")}
	if !importerConfig.DryRun {
		rawURL := c.String("database-url")
		if rawURL == "" {
			rawURL = as.Config.GetDatabaseURL()
		}
		if rawURL == "" {
			return fmt.Errorf("DATABASE_URL not found")
		}
		if err := as.ConnectDatabase(ctx, rawURL); err != nil {
			return err
		}
		defer func() {
			if err := as.Close(); err != nil {
				slog.Warn("can't close the database", "error", err)
			}
		}()
		importerConfig.DB = as.BunDB
	}
	// #endregion

	// #region - import the batch
	result, err := importer.New(importerConfig).Run(ctx, records)
	if err != nil {
		return err
	}
	// #endregion

	if !importerConfig.DryRun {
		if err := metric.Push(as, result.Synced, result.Errors, time.Since(as.StartedAt)); err != nil {
			slog.Warn("can't push run metrics", "error", err)
		}
	}

	if importerConfig.DryRun {
		fmt.Printf("[Calendar Import] Dry run complete: %d valid, %d errors\n", result.Synced, result.Errors)
	} else {
		fmt.Printf("[Calendar Import] Complete: %d synced, %d errors\n", result.Synced, result.Errors)
	}
	return nil
}
