package utils

import (
	"log/slog"
	"os"
)

// LogLevel is the level of the default slog handler. The --debug flag lowers
// it at startup.
var LogLevel = new(slog.LevelVar)

type Config struct {
	databaseURL    string
	pushgatewayURL string
}

func NewConfig() *Config {
	return &Config{
		databaseURL: func() string {
			databaseURL := os.Getenv("DATABASE_URL")
			if databaseURL == "" {
				slog.Debug("env", "DATABASE_URL", "(not set)")
				return ""
			}
			slog.Debug("env", "DATABASE_URL", RedactURL(databaseURL))
			return databaseURL
		}(),
		pushgatewayURL: func() string {
			pushgatewayURL := os.Getenv("PUSHGATEWAY_URL")
			if pushgatewayURL == "" {
				slog.Debug("env", "PUSHGATEWAY_URL", "(not set)")
				return ""
			}
			slog.Debug("env", "PUSHGATEWAY_URL", pushgatewayURL)
			return pushgatewayURL
		}(),
	}
}

// Get DATABASE_URL env, may be blank
func (c *Config) GetDatabaseURL() string {
	return c.databaseURL
}

// Get PUSHGATEWAY_URL env, blank when metrics push is disabled
func (c *Config) GetPushgatewayURL() string {
	return c.pushgatewayURL
}
