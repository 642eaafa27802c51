package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/SpinWheel_Go/internal/concurrency"
	"github.com/osse101/SpinWheel_Go/internal/config"
	"github.com/osse101/SpinWheel_Go/internal/event"
	"github.com/osse101/SpinWheel_Go/internal/repository"
	"github.com/osse101/SpinWheel_Go/internal/selection"
	"github.com/osse101/SpinWheel_Go/internal/wheel"
)

// InitializeWheelService builds the wheel service from configuration.
// The redistribution policy and reset strategy are resolved by name so a typo fails at startup.
func InitializeWheelService(cfg *config.Config, repo repository.Wheel, eventBus event.Bus) (wheel.Service, error) {
	policy, err := selection.NewPolicy(cfg.RedistributionPolicy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPolicy, err)
	}

	resetter, err := wheel.NewResetStrategy(cfg.ResetStrategy, repo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidResetStrategy, err)
	}

	svc := wheel.NewService(repo, eventBus, concurrency.NewLockManager(), policy, resetter, wheel.Config{
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
	})

	slog.Info(LogMsgWheelServiceInitialized,
		"redistribution_policy", policy.Name(),
		"reset_strategy", resetter.Name(),
		"cache_size", cfg.CacheSize,
		"cache_ttl", cfg.CacheTTL)

	return svc, nil
}
