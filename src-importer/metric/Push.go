package metric

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"calimport/src-importer/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

func lastRunSyncedEvents(count int) prometheus.Gauge {
	lastRunSyncedEvents := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "calimport_last_run_synced_events",
		Help: "The number of events upserted by the last import run",
	})
	lastRunSyncedEvents.Set(float64(count))
	return lastRunSyncedEvents
}

func lastRunFailedEvents(count int) prometheus.Gauge {
	lastRunFailedEvents := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "calimport_last_run_failed_events",
		Help: "The number of events the last import run could not process",
	})
	lastRunFailedEvents.Set(float64(count))
	return lastRunFailedEvents
}

func lastRunDurationSec(elapsed time.Duration) prometheus.Gauge {
	lastRunDurationSec := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "calimport_last_run_duration_seconds",
		Help: "The wall clock duration of the last import run in seconds",
	})
	lastRunDurationSec.Set(elapsed.Seconds())
	return lastRunDurationSec
}

func lastRunCompletionTime() prometheus.Gauge {
	lastRunCompletionTime := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "calimport_last_run_completion_timestamp_seconds",
		Help: "The unix time the last import run finished",
	})
	lastRunCompletionTime.SetToCurrentTime()
	return lastRunCompletionTime
}

// Push sends the run summary to the Pushgateway named by PUSHGATEWAY_URL.
// When no Pushgateway is configured there is nothing to do.
func Push(as *utils.AppState, synced int, failed int, elapsed time.Duration) error {
	pushURL := as.Config.GetPushgatewayURL()
	if pushURL == "" {
		slog.Debug("PUSHGATEWAY_URL is not set, skipping the metrics push")
		return nil
	}

	pusher := push.New(pushURL, "calimport").
		Collector(lastRunSyncedEvents(synced)).
		Collector(lastRunFailedEvents(failed)).
		Collector(lastRunDurationSec(elapsed)).
		Collector(lastRunCompletionTime())
	if hostname, err := os.Hostname(); err == nil {
		pusher = pusher.Grouping("instance", hostname)
	}

	if err := pusher.Push(); err != nil {
		return fmt.Errorf("Push: %w", err)
	}
	slog.Debug("pushed run metrics",
		"pushgateway", pushURL,
		"synced", synced,
		"failed", failed,
		"duration", elapsed)
	return nil
}
