package selection

import (
	"time"

	"github.com/osse101/SpinWheel_Go/internal/domain"
)

// Spin runs one pick against the wheel.
//
// When apply is false the wheel is left untouched and the result is a preview.
// When apply is true the chosen policy redistributes weight, the winner's counters
// advance, TotalSpins increments and the rig (if any) is cleared, all on w.
// Result.Rigged is true only when a visible rig actually decided the pick.
func Spin(w *domain.Wheel, policy Policy, rng RandomSource, apply bool, now time.Time) (*domain.SpinResult, error) {
	if len(w.Participants) == 0 {
		return nil, domain.ErrEmptySet
	}

	odds := Probabilities(w.Participants)
	rigUsed := w.Rigging != nil && indexOf(w.Participants, w.Rigging.TargetParticipantID) >= 0
	visible := rigUsed && IsVisibleRig(w)

	picked, err := Pick(w.Participants, w.Rigging, rng)
	if err != nil {
		return nil, err
	}

	if apply {
		w.Participants = policy.Redistribute(w.Participants, picked.ID)
		idx := indexOf(w.Participants, picked.ID)
		ApplySelection(&w.Participants[idx], now)
		w.TotalSpins++
		ClearRig(w)
	}

	return &domain.SpinResult{
		WheelID:         w.ID,
		ParticipantID:   picked.ID,
		ParticipantName: picked.Name,
		Rigged:          visible,
		Applied:         apply,
		Probabilities:   odds,
		TotalSpins:      w.TotalSpins,
		SpunAt:          now,
		RigConsumed:     rigUsed,
	}, nil
}
