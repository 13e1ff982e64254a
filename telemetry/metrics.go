// Package telemetry provides Prometheus metrics for the refresh loop.
package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	RefreshTicks       prometheus.Counter
	GuildRefreshErrors prometheus.Counter
	MessagesCreated    prometheus.Counter
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		RefreshTicks = promauto.NewCounter(prometheus.CounterOpts{Name: "worldclock_refresh_ticks_total", Help: "Number of scheduler ticks executed"})
		GuildRefreshErrors = promauto.NewCounter(prometheus.CounterOpts{Name: "worldclock_guild_refresh_errors_total", Help: "Number of per-guild refresh failures"})
		MessagesCreated = promauto.NewCounter(prometheus.CounterOpts{Name: "worldclock_messages_created_total", Help: "Number of status messages created"})
	})
}

// CountTick increments the tick counter if metrics are initialized.
func CountTick() {
	if RefreshTicks != nil {
		RefreshTicks.Inc()
	}
}

// CountGuildRefreshError increments the per-guild failure counter if metrics are initialized.
func CountGuildRefreshError() {
	if GuildRefreshErrors != nil {
		GuildRefreshErrors.Inc()
	}
}

// CountMessageCreated increments the created-message counter if metrics are initialized.
func CountMessageCreated() {
	if MessagesCreated != nil {
		MessagesCreated.Inc()
	}
}
