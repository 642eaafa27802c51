package selection

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SpinWheel_Go/internal/domain"
)

// Policy moves weight after a confirmed pick.
// Implementations return a new slice and leave the input untouched.
type Policy interface {
	Name() PolicyName
	Redistribute(participants []domain.Participant, selectedID uuid.UUID) []domain.Participant
}

// NewPolicy resolves a configured policy name. An empty name selects equal split.
func NewPolicy(name string) (Policy, error) {
	switch PolicyName(name) {
	case "", PolicyEqualSplit:
		return EqualSplitPolicy{}, nil
	case PolicyRenormalize:
		return RenormalizePolicy{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown redistribution policy %q", domain.ErrInvalidInput, name)
	}
}

// EqualSplitPolicy zeroes the selected participant and splits its weight evenly
// across everyone else. Total weight is unchanged.
type EqualSplitPolicy struct{}

// Name implements Policy
func (EqualSplitPolicy) Name() PolicyName { return PolicyEqualSplit }

// Redistribute implements Policy
func (EqualSplitPolicy) Redistribute(participants []domain.Participant, selectedID uuid.UUID) []domain.Participant {
	out := clone(participants)
	splitSelectedWeight(out, selectedID)
	return out
}

// RenormalizePolicy does the equal split and then rescales every weight by
// N/total so the wheel sums to exactly N. Every participant moves slightly on
// every spin.
type RenormalizePolicy struct{}

// Name implements Policy
func (RenormalizePolicy) Name() PolicyName { return PolicyRenormalize }

// Redistribute implements Policy
func (RenormalizePolicy) Redistribute(participants []domain.Participant, selectedID uuid.UUID) []domain.Participant {
	out := clone(participants)
	if !splitSelectedWeight(out, selectedID) {
		return out
	}

	total := totalWeight(out)
	if total <= 0 {
		return out
	}
	factor := float64(len(out)) / total
	for i := range out {
		out[i].Weight *= factor
	}
	return out
}

// splitSelectedWeight performs the shared equal-split step in place.
// It reports false when nothing moved (one participant or unknown id).
func splitSelectedWeight(participants []domain.Participant, selectedID uuid.UUID) bool {
	if len(participants) <= 1 {
		return false
	}
	idx := indexOf(participants, selectedID)
	if idx < 0 {
		return false
	}

	w := participants[idx].Weight
	share := w / float64(len(participants)-1)
	for i := range participants {
		if i == idx {
			participants[i].Weight = 0
			continue
		}
		participants[i].Weight += share
	}
	return true
}

// ApplySelection records a confirmed pick on the participant
func ApplySelection(p *domain.Participant, now time.Time) {
	p.SelectionCount++
	t := now
	p.LastSelectedAt = &t
}

func clone(participants []domain.Participant) []domain.Participant {
	out := make([]domain.Participant, len(participants))
	copy(out, participants)
	return out
}
