package selection

import (
	"github.com/osse101/SpinWheel_Go/internal/domain"
)

// Reset restores every participant to its original weight and clears its counters
func Reset(participants []domain.Participant) ([]domain.Participant, error) {
	if len(participants) == 0 {
		return nil, domain.ErrEmptySet
	}

	out := clone(participants)
	for i := range out {
		out[i].Weight = out[i].OriginalWeight
		out[i].SelectionCount = 0
		out[i].LastSelectedAt = nil
	}
	return out, nil
}

// BaselineFunc returns the weight a participant is restored to on reset
type BaselineFunc func(p domain.Participant) float64

// ResetWith is Reset with a caller-supplied baseline instead of OriginalWeight.
// The legacy sub-wheel reset strategy uses it to restore each participant to the
// size of another wheel named after that participant.
func ResetWith(participants []domain.Participant, baseline BaselineFunc) ([]domain.Participant, error) {
	out, err := Reset(participants)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Weight = baseline(participants[i])
	}
	return out, nil
}

// ResetWheel clears wheel-level transient state: the pending rig and the spin counter
func ResetWheel(w *domain.Wheel) {
	w.Rigging = nil
	w.TotalSpins = 0
}
