package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/SpinWheel_Go/internal/domain"
	"github.com/osse101/SpinWheel_Go/internal/metrics"
)

// WheelLister is the slice of the wheel service the stats job needs
type WheelLister interface {
	ListWheels(ctx context.Context) ([]domain.Wheel, error)
}

// WheelStatsJob refreshes the wheel count gauges
type WheelStatsJob struct {
	wheels WheelLister
}

// NewWheelStatsJob creates a new stats job
func NewWheelStatsJob(wheels WheelLister) *WheelStatsJob {
	return &WheelStatsJob{wheels: wheels}
}

// Process lists every wheel and updates the gauges
func (j *WheelStatsJob) Process(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, StatsJobTimeout)
	defer cancel()

	wheels, err := j.wheels.ListWheels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list wheels: %w", err)
	}

	participants := 0
	for _, w := range wheels {
		participants += len(w.Participants)
	}

	metrics.Wheels.Set(float64(len(wheels)))
	metrics.WheelParticipants.Set(float64(participants))

	slog.Debug(LogMsgWheelStatsRefreshed, "wheels", len(wheels), "participants", participants)
	return nil
}
