package selection

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinWheel_Go/internal/domain"
)

func TestReset(t *testing.T) {
	now := time.Now()
	ps := newParticipants(0, 1.5, 1.5)
	ps[0].OriginalWeight = 2
	ps[0].SelectionCount = 3
	ps[0].LastSelectedAt = &now

	out, err := Reset(ps)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 1}, weightsOf(out))
	for _, p := range out {
		assert.Zero(t, p.SelectionCount)
		assert.Nil(t, p.LastSelectedAt)
	}

	// input untouched
	assert.Equal(t, 3, ps[0].SelectionCount)
}

func TestReset_Idempotent(t *testing.T) {
	now := time.Now()
	ps := newParticipants(0.5, 2, 0.5)
	ps[1].SelectionCount = 7
	ps[1].LastSelectedAt = &now

	once, err := Reset(ps)
	require.NoError(t, err)
	twice, err := Reset(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestReset_Empty(t *testing.T) {
	_, err := Reset(nil)
	assert.ErrorIs(t, err, domain.ErrEmptySet)

	_, err = ResetWith(nil, func(domain.Participant) float64 { return 1 })
	assert.ErrorIs(t, err, domain.ErrEmptySet)
}

func TestResetWith(t *testing.T) {
	ps := newParticipants(0, 3)
	ps[1].SelectionCount = 2

	out, err := ResetWith(ps, func(p domain.Participant) float64 {
		if p.Name == "A" {
			return 4
		}
		return p.OriginalWeight
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 1}, weightsOf(out))
	assert.Zero(t, out[1].SelectionCount)
}

func TestResetWheel(t *testing.T) {
	w := &domain.Wheel{
		TotalSpins: 12,
		Rigging:    &domain.Rigging{TargetParticipantID: uuid.New()},
	}
	ResetWheel(w)
	assert.Nil(t, w.Rigging)
	assert.Zero(t, w.TotalSpins)
}
