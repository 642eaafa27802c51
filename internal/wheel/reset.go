package wheel

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/SpinWheel_Go/internal/config"
	"github.com/osse101/SpinWheel_Go/internal/domain"
	"github.com/osse101/SpinWheel_Go/internal/repository"
	"github.com/osse101/SpinWheel_Go/internal/selection"
)

// ResetStrategy decides the weight each participant returns to on reset
type ResetStrategy interface {
	Name() string
	Baseline(ctx context.Context, w *domain.Wheel) (selection.BaselineFunc, error)
}

// SubWheelSizer looks up the participant count of another wheel with the given name.
// found is false when no wheel other than exclude carries that name.
type SubWheelSizer interface {
	SubWheelSize(ctx context.Context, name string, exclude uuid.UUID) (size int, found bool, err error)
}

// NewResetStrategy resolves the configured reset strategy
func NewResetStrategy(name string, repo repository.Wheel) (ResetStrategy, error) {
	switch name {
	case "", config.ResetStrategyOriginalWeights:
		return OriginalWeightsStrategy{}, nil
	case config.ResetStrategyLegacySubWheel:
		return &SubWheelStrategy{sizer: &repoSubWheelSizer{repo: repo}}, nil
	default:
		return nil, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ErrMsgUnknownResetStrat, name)
	}
}

// OriginalWeightsStrategy restores every participant to its own original weight
type OriginalWeightsStrategy struct{}

// Name implements ResetStrategy
func (OriginalWeightsStrategy) Name() string { return config.ResetStrategyOriginalWeights }

// Baseline implements ResetStrategy
func (OriginalWeightsStrategy) Baseline(_ context.Context, _ *domain.Wheel) (selection.BaselineFunc, error) {
	return func(p domain.Participant) float64 { return p.OriginalWeight }, nil
}

// SubWheelStrategy is the legacy reset rule: a participant that shares its name with
// another wheel is restored to that wheel's participant count. Everyone else gets
// their original weight.
type SubWheelStrategy struct {
	sizer SubWheelSizer
}

// NewSubWheelStrategy builds the legacy strategy over a custom sizer
func NewSubWheelStrategy(sizer SubWheelSizer) *SubWheelStrategy {
	return &SubWheelStrategy{sizer: sizer}
}

// Name implements ResetStrategy
func (s *SubWheelStrategy) Name() string { return config.ResetStrategyLegacySubWheel }

// Baseline implements ResetStrategy.
// All lookups happen up front so the returned func never touches the database.
func (s *SubWheelStrategy) Baseline(ctx context.Context, w *domain.Wheel) (selection.BaselineFunc, error) {
	sizes := make(map[uuid.UUID]float64, len(w.Participants))
	for _, p := range w.Participants {
		size, found, err := s.sizer.SubWheelSize(ctx, p.Name, w.ID)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", ErrContextFailedToSizeSubWheel, p.Name, err)
		}
		if found {
			sizes[p.ID] = float64(size)
		}
	}

	return func(p domain.Participant) float64 {
		if size, ok := sizes[p.ID]; ok {
			return size
		}
		return p.OriginalWeight
	}, nil
}

// repoSubWheelSizer answers SubWheelSize from the wheel repository
type repoSubWheelSizer struct {
	repo repository.Wheel
}

func (r *repoSubWheelSizer) SubWheelSize(ctx context.Context, name string, exclude uuid.UUID) (int, bool, error) {
	wheels, err := r.repo.GetWheelsByName(ctx, name)
	if err != nil {
		return 0, false, err
	}
	for _, w := range wheels {
		if w.ID != exclude {
			return len(w.Participants), true, nil
		}
	}
	return 0, false, nil
}
