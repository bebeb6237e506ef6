package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"calimport/src-importer/cmd"
	"calimport/src-importer/utils"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      utils.LogLevel,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	app := cli.App{
		Name:      cmd.AppName,
		Version:   cmd.AppVersion,
		Usage:     "Import Google Calendar events from an MCP result dump into the calendar database",
		ArgsUsage: "<result.json>",
		Flags:     cmd.Flags,
		Action:    cmd.Import,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
