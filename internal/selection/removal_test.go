package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebalanceOnRemoval(t *testing.T) {
	t.Run("fair share leaves weights unchanged", func(t *testing.T) {
		ps := newParticipants(1, 1, 1)
		out := RebalanceOnRemoval(ps[1:], ps[0])
		assert.Equal(t, []float64{1, 1}, weightsOf(out))
	})

	t.Run("heavy departure scales the rest up", func(t *testing.T) {
		ps := newParticipants(3, 1, 1)
		out := RebalanceOnRemoval(ps[1:], ps[0])
		// ratio = 1 + (3-1)/2 = 2
		assert.InDelta(t, 2.0, out[0].Weight, ConservationTolerance)
		assert.InDelta(t, 2.0, out[1].Weight, ConservationTolerance)
	})

	t.Run("just-picked departure scales the rest down", func(t *testing.T) {
		ps := newParticipants(0, 1.5, 1.5)
		out := RebalanceOnRemoval(ps[1:], ps[0])
		// ratio = 1 + (0-1)/3 = 2/3
		assert.InDelta(t, 1.0, out[0].Weight, ConservationTolerance)
		assert.InDelta(t, 1.0, out[1].Weight, ConservationTolerance)
		assert.InDelta(t, 2.0, sumWeights(out), ConservationTolerance)
	})

	t.Run("zero remaining weight resets to one", func(t *testing.T) {
		ps := newParticipants(2, 0, 0)
		out := RebalanceOnRemoval(ps[1:], ps[0])
		assert.Equal(t, []float64{1, 1}, weightsOf(out))
	})

	t.Run("negative ratio clamps to zero", func(t *testing.T) {
		ps := newParticipants(0, 0.25, 0.25)
		// ratio = 1 + (0-1)/0.5 = -1
		out := RebalanceOnRemoval(ps[1:], ps[0])
		for _, p := range out {
			assert.Equal(t, 0.0, p.Weight)
		}
	})

	t.Run("empty remainder", func(t *testing.T) {
		ps := newParticipants(1)
		assert.Empty(t, RebalanceOnRemoval(ps[1:], ps[0]))
	})

	t.Run("counters untouched and input not mutated", func(t *testing.T) {
		ps := newParticipants(3, 1, 1)
		ps[1].SelectionCount = 4
		out := RebalanceOnRemoval(ps[1:], ps[0])
		require.Len(t, out, 2)
		assert.Equal(t, 4, out[0].SelectionCount)
		assert.Equal(t, 1.0, ps[1].Weight)
	})
}
