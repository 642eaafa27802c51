package selection

import (
	"github.com/google/uuid"

	"github.com/osse101/SpinWheel_Go/internal/domain"
	"github.com/osse101/SpinWheel_Go/internal/utils"
)

// RandomSource returns a uniform float64 in [0, 1)
type RandomSource func() float64

// DefaultRandomSource is the process-wide source used when callers pass nil
var DefaultRandomSource RandomSource = utils.SecureRandomFloat

// Pick chooses one participant.
//
// A rig whose target is still on the wheel wins outright; the rig's Hidden flag
// does not matter here. A rig pointing at a participant that no longer exists is
// ignored and the pick falls through to weighted selection.
//
// Weighted selection walks participants in slice order, which callers must keep
// stable (creation order). Zero-weight participants occupy no space on the wheel
// and are skipped. If float error lets the walk run off the end, the last
// positive-weight participant is returned.
func Pick(participants []domain.Participant, rig *domain.Rigging, rng RandomSource) (domain.Participant, error) {
	if len(participants) == 0 {
		return domain.Participant{}, domain.ErrEmptySet
	}
	if rng == nil {
		rng = DefaultRandomSource
	}

	if rig != nil {
		if idx := indexOf(participants, rig.TargetParticipantID); idx >= 0 {
			return participants[idx], nil
		}
	}

	total := totalWeight(participants)
	if total <= 0 {
		return participants[uniformIndex(len(participants), rng)], nil
	}

	r := total * rng()
	last := -1
	for i, p := range participants {
		if p.Weight <= 0 {
			continue
		}
		last = i
		r -= p.Weight
		if r <= 0 {
			return p, nil
		}
	}

	// Float overrun: the walk never reached zero. Return the last participant it could have landed on.
	return participants[last], nil
}

// Probabilities returns each participant's chance of being picked by an unrigged spin.
// With zero total weight every participant gets 1/N.
func Probabilities(participants []domain.Participant) map[uuid.UUID]float64 {
	odds := make(map[uuid.UUID]float64, len(participants))
	if len(participants) == 0 {
		return odds
	}

	total := totalWeight(participants)
	for _, p := range participants {
		if total <= 0 {
			odds[p.ID] = 1 / float64(len(participants))
			continue
		}
		odds[p.ID] = p.Weight / total
	}
	return odds
}

// Odds is Probabilities in participant order, with names attached for display
func Odds(participants []domain.Participant) []domain.ParticipantOdds {
	probs := Probabilities(participants)
	out := make([]domain.ParticipantOdds, 0, len(participants))
	for _, p := range participants {
		out = append(out, domain.ParticipantOdds{
			ParticipantID: p.ID,
			Name:          p.Name,
			Weight:        p.Weight,
			Probability:   probs[p.ID],
		})
	}
	return out
}

func uniformIndex(n int, rng RandomSource) int {
	idx := int(rng() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func totalWeight(participants []domain.Participant) float64 {
	var total float64
	for _, p := range participants {
		total += p.Weight
	}
	return total
}

func indexOf(participants []domain.Participant, id uuid.UUID) int {
	for i := range participants {
		if participants[i].ID == id {
			return i
		}
	}
	return -1
}
