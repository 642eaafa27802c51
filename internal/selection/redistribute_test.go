package selection

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinWheel_Go/internal/domain"
)

func TestNewPolicy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PolicyName
		wantErr bool
	}{
		{"empty defaults to equal split", "", PolicyEqualSplit, false},
		{"equal split", "equal_split", PolicyEqualSplit, false},
		{"renormalize", "renormalize", PolicyRenormalize, false},
		{"unknown", "winner_takes_all", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPolicy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name())
		})
	}
}

func TestEqualSplit_Conservation(t *testing.T) {
	policy := EqualSplitPolicy{}
	ps := newParticipants(4, 2, 1, 0.5, 3.25)
	before := sumWeights(ps)

	rng := seededSource(3)
	for i := 0; i < 200; i++ {
		picked, err := Pick(ps, nil, rng)
		require.NoError(t, err)
		ps = policy.Redistribute(ps, picked.ID)
		assert.InDelta(t, before, sumWeights(ps), ConservationTolerance)
	}
}

func TestRedistribute_SelectedGoesToZero(t *testing.T) {
	for _, policy := range []Policy{EqualSplitPolicy{}, RenormalizePolicy{}} {
		t.Run(string(policy.Name()), func(t *testing.T) {
			ps := newParticipants(2, 3, 5)
			out := policy.Redistribute(ps, ps[1].ID)
			assert.Equal(t, 0.0, out[1].Weight)
			for _, p := range out {
				assert.GreaterOrEqual(t, p.Weight, 0.0)
			}
		})
	}
}

func TestRedistribute_DoesNotMutateInput(t *testing.T) {
	ps := newParticipants(1, 1, 1)
	_ = EqualSplitPolicy{}.Redistribute(ps, ps[0].ID)
	_ = RenormalizePolicy{}.Redistribute(ps, ps[0].ID)

	for _, p := range ps {
		assert.Equal(t, 1.0, p.Weight)
	}
}

func TestRedistribute_SingleParticipantIsNoop(t *testing.T) {
	for _, policy := range []Policy{EqualSplitPolicy{}, RenormalizePolicy{}} {
		t.Run(string(policy.Name()), func(t *testing.T) {
			ps := newParticipants(2.5)
			out := policy.Redistribute(ps, ps[0].ID)
			require.Len(t, out, 1)
			assert.Equal(t, 2.5, out[0].Weight)
		})
	}
}

func TestRedistribute_UnknownSelectedIsNoop(t *testing.T) {
	ps := newParticipants(1, 2, 3)
	out := EqualSplitPolicy{}.Redistribute(ps, uuid.New())
	assert.Equal(t, []float64{1, 2, 3}, weightsOf(out))
}

func TestRenormalize_SumsToCount(t *testing.T) {
	policy := RenormalizePolicy{}
	ps := newParticipants(4, 2, 1, 7)

	rng := seededSource(5)
	for i := 0; i < 200; i++ {
		picked, err := Pick(ps, nil, rng)
		require.NoError(t, err)
		ps = policy.Redistribute(ps, picked.ID)
		assert.InDelta(t, float64(len(ps)), sumWeights(ps), ConservationTolerance)
		assert.Equal(t, 0.0, ps[indexOf(ps, picked.ID)].Weight)
	}
}

func TestEqualSplit_ThreeEqualParticipants(t *testing.T) {
	ps := newParticipants(1, 1, 1)
	a, b, c := ps[0], ps[1], ps[2]

	picked, err := Pick(ps, &domain.Rigging{TargetParticipantID: a.ID}, seededSource(1))
	require.NoError(t, err)
	require.Equal(t, a.ID, picked.ID)

	ps = EqualSplitPolicy{}.Redistribute(ps, picked.ID)
	assert.Equal(t, 0.0, ps[0].Weight)
	assert.InDelta(t, 1.5, ps[1].Weight, ConservationTolerance)
	assert.InDelta(t, 1.5, ps[2].Weight, ConservationTolerance)
	assert.InDelta(t, 3.0, sumWeights(ps), ConservationTolerance)

	rng := seededSource(9)
	for i := 0; i < 1000; i++ {
		next, err := Pick(ps, nil, rng)
		require.NoError(t, err)
		require.NotEqual(t, a.ID, next.ID)
		require.Contains(t, []uuid.UUID{b.ID, c.ID}, next.ID)
	}

	assert.Equal(t, 0.0, Probabilities(ps)[a.ID])
}

func TestApplySelection(t *testing.T) {
	ps := newParticipants(1)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	ApplySelection(&ps[0], now)
	ApplySelection(&ps[0], now.Add(time.Minute))

	assert.Equal(t, 2, ps[0].SelectionCount)
	require.NotNil(t, ps[0].LastSelectedAt)
	assert.Equal(t, now.Add(time.Minute), *ps[0].LastSelectedAt)
}

func weightsOf(ps []domain.Participant) []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = p.Weight
	}
	return out
}
