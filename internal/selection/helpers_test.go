package selection

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SpinWheel_Go/internal/domain"
)

func newParticipants(weights ...float64) []domain.Participant {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]domain.Participant, len(weights))
	for i, w := range weights {
		out[i] = domain.Participant{
			ID:             uuid.New(),
			Name:           string(rune('A' + i)),
			Weight:         w,
			OriginalWeight: 1,
			CreatedAt:      base.Add(time.Duration(i) * time.Second),
		}
	}
	return out
}

func seededSource(seed int64) RandomSource {
	r := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic test source
	return r.Float64
}

// stratifiedSource yields (i+0.5)/n for i = 0..n-1, then wraps.
// Feeding it to Pick n times visits every quantile of the wheel exactly once.
func stratifiedSource(n int) RandomSource {
	i := 0
	return func() float64 {
		v := (float64(i%n) + 0.5) / float64(n)
		i++
		return v
	}
}

func constantSource(v float64) RandomSource {
	return func() float64 { return v }
}

func sumWeights(ps []domain.Participant) float64 {
	var total float64
	for _, p := range ps {
		total += p.Weight
	}
	return total
}
