package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/SpinWheel_Go/internal/event"
	"github.com/osse101/SpinWheel_Go/internal/live"
	"github.com/osse101/SpinWheel_Go/internal/metrics"
)

// InitializeEventSystem creates the event bus and the live feed hub and wires
// every in-process subscriber: the metrics collector and the live fan-out.
// The hub is started; the caller stops it on shutdown.
func InitializeEventSystem() (event.Bus, *live.Hub, error) {
	eventBus := event.NewMemoryBus()

	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(eventBus); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	hub := live.NewHub()
	live.NewSubscriber(hub, eventBus).Subscribe()
	hub.Start()
	slog.Info(LogMsgLiveHubStarted)

	slog.Info(LogMsgEventSystemInitialized)
	return eventBus, hub, nil
}
