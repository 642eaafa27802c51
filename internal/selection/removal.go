package selection

import "github.com/osse101/SpinWheel_Go/internal/domain"

// RebalanceOnRemoval redistributes a departing participant's weight over the rest.
//
// Each participant arrives with an implicit weight of 1. Removing one returns that
// unit to the wheel, so the remaining weights are scaled by
// 1 + (removed.Weight - 1) / remainingWeight and the wheel total lands on the new
// participant count. A zero remaining base cannot be scaled; everyone is set to 1.
// Selection counters are never touched.
func RebalanceOnRemoval(remaining []domain.Participant, removed domain.Participant) []domain.Participant {
	if len(remaining) == 0 {
		return remaining
	}

	out := clone(remaining)
	remainingWeight := totalWeight(out)
	if remainingWeight == 0 {
		for i := range out {
			out[i].Weight = ArrivalWeight
		}
		return out
	}

	ratio := 1 + (removed.Weight-ArrivalWeight)/remainingWeight
	for i := range out {
		out[i].Weight *= ratio
		if out[i].Weight < 0 {
			out[i].Weight = 0
		}
	}
	return out
}
