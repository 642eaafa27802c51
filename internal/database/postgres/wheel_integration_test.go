package postgres

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinWheel_Go/internal/domain"
	"github.com/osse101/SpinWheel_Go/internal/repository"
)

func newTestWheel(name string, names ...string) *domain.Wheel {
	w := &domain.Wheel{
		ID:       uuid.New(),
		Name:     name,
		Settings: domain.WheelSettings{AllowRigging: true, DefaultWeight: 1},
	}
	base := time.Now().UTC().Truncate(time.Millisecond)
	for i, n := range names {
		w.Participants = append(w.Participants, domain.Participant{
			ID:             uuid.New(),
			Name:           n,
			Weight:         1,
			OriginalWeight: 1,
			CreatedAt:      base.Add(time.Duration(i) * time.Millisecond),
		})
	}
	return w
}

func TestWheelRepository_CreateAndGet(t *testing.T) {
	pool := requireTestPool(t)
	repo := NewWheelRepository(pool)
	ctx := context.Background()

	w := newTestWheel("create-get", "Alice", "Bob", "Carol")
	require.NoError(t, repo.CreateWheel(ctx, w))
	assert.Equal(t, int64(1), w.Version)

	got, err := repo.GetWheel(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "create-get", got.Name)
	assert.True(t, got.Settings.AllowRigging)
	assert.Nil(t, got.Rigging)
	require.Len(t, got.Participants, 3)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, []string{
		got.Participants[0].Name, got.Participants[1].Name, got.Participants[2].Name,
	})
	for _, p := range got.Participants {
		assert.Equal(t, w.ID, p.WheelID)
	}
}

func TestWheelRepository_GetMissing(t *testing.T) {
	pool := requireTestPool(t)
	repo := NewWheelRepository(pool)

	_, err := repo.GetWheel(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrWheelNotFound)

	err = repo.DeleteWheel(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrWheelNotFound)
}

func TestWheelRepository_DuplicateParticipantName(t *testing.T) {
	pool := requireTestPool(t)
	repo := NewWheelRepository(pool)
	ctx := context.Background()

	w := newTestWheel("dupes", "Alice")
	require.NoError(t, repo.CreateWheel(ctx, w))

	err := repo.AddParticipant(ctx, &domain.Participant{
		ID: uuid.New(), WheelID: w.ID, Name: "ALICE", Weight: 1, OriginalWeight: 1,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateParticipant)

	// Same name on another wheel is fine
	other := newTestWheel("dupes-other", "Alice")
	require.NoError(t, repo.CreateWheel(ctx, other))
}

func TestWheelRepository_TxRoundTrip(t *testing.T) {
	pool := requireTestPool(t)
	repo := NewWheelRepository(pool)
	ctx := context.Background()

	w := newTestWheel("tx-roundtrip", "Alice", "Bob", "Carol")
	require.NoError(t, repo.CreateWheel(ctx, w))

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	locked, err := tx.GetWheelForUpdate(ctx, w.ID)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Microsecond)
	locked.Participants[0].Weight = 0
	locked.Participants[0].SelectionCount = 1
	locked.Participants[0].LastSelectedAt = &now
	locked.Participants[1].Weight = 1.5
	locked.Participants[2].Weight = 1.5
	locked.TotalSpins = 1
	locked.Rigging = &domain.Rigging{
		TargetParticipantID: locked.Participants[1].ID,
		Hidden:              true,
		Reason:              "birthday",
		SetBy:               "mod",
		SetAt:               now,
	}

	require.NoError(t, tx.SaveParticipants(ctx, locked.Participants))
	require.NoError(t, tx.SaveWheel(ctx, locked))
	assert.Equal(t, int64(2), locked.Version)
	require.NoError(t, tx.Commit(ctx))

	got, err := repo.GetWheel(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalSpins)
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, []float64{0, 1.5, 1.5}, []float64{
		got.Participants[0].Weight, got.Participants[1].Weight, got.Participants[2].Weight,
	})
	require.NotNil(t, got.Participants[0].LastSelectedAt)
	assert.True(t, now.Equal(*got.Participants[0].LastSelectedAt))
	require.NotNil(t, got.Rigging)
	assert.Equal(t, locked.Participants[1].ID, got.Rigging.TargetParticipantID)
	assert.True(t, got.Rigging.Hidden)
	assert.Equal(t, "birthday", got.Rigging.Reason)
}

func TestWheelRepository_SaveWheelVersionConflict(t *testing.T) {
	pool := requireTestPool(t)
	repo := NewWheelRepository(pool)
	ctx := context.Background()

	w := newTestWheel("conflict", "Alice", "Bob")
	require.NoError(t, repo.CreateWheel(ctx, w))

	stale := *w
	stale.Version = 99

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	err = tx.SaveWheel(ctx, &stale)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
}

func TestWheelRepository_DeleteParticipantAndCascade(t *testing.T) {
	pool := requireTestPool(t)
	repo := NewWheelRepository(pool)
	ctx := context.Background()

	w := newTestWheel("cascade", "Alice", "Bob")
	require.NoError(t, repo.CreateWheel(ctx, w))

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.DeleteParticipant(ctx, w.ID, w.Participants[0].ID))
	assert.ErrorIs(t, tx.DeleteParticipant(ctx, w.ID, w.Participants[0].ID), domain.ErrParticipantNotFound)
	require.NoError(t, tx.Commit(ctx))

	ps, err := repo.GetParticipants(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "Bob", ps[0].Name)

	require.NoError(t, repo.DeleteWheel(ctx, w.ID))
	ps, err = repo.GetParticipants(ctx, w.ID)
	require.NoError(t, err)
	assert.Empty(t, ps)
}

func TestWheelRepository_GetWheelsByName(t *testing.T) {
	pool := requireTestPool(t)
	repo := NewWheelRepository(pool)
	ctx := context.Background()

	name := "siblings-" + uuid.NewString()
	first := newTestWheel(name, "A", "B", "C")
	second := newTestWheel(name, "D")
	require.NoError(t, repo.CreateWheel(ctx, first))
	require.NoError(t, repo.CreateWheel(ctx, second))

	wheels, err := repo.GetWheelsByName(ctx, name)
	require.NoError(t, err)
	require.Len(t, wheels, 2)
	assert.Len(t, wheels[0].Participants, 3)
	assert.Len(t, wheels[1].Participants, 1)

	shouted, err := repo.GetWheelsByName(ctx, strings.ToUpper(name))
	require.NoError(t, err)
	assert.Len(t, shouted, 2, "names match case-insensitively")

	all, err := repo.ListWheels(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(all), 2)
}

func TestWheelRepository_ConcurrentLockedUpdates(t *testing.T) {
	pool := requireTestPool(t)
	repo := NewWheelRepository(pool)
	ctx := context.Background()

	w := newTestWheel("row-lock", "Alice", "Bob")
	require.NoError(t, repo.CreateWheel(ctx, w))

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := repo.BeginTx(ctx)
			if err != nil {
				errs <- err
				return
			}
			defer repository.SafeRollback(ctx, tx)

			locked, err := tx.GetWheelForUpdate(ctx, w.ID)
			if err != nil {
				errs <- err
				return
			}
			locked.TotalSpins++
			if err := tx.SaveWheel(ctx, locked); err != nil {
				errs <- err
				return
			}
			errs <- tx.Commit(ctx)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.GetWheel(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, got.TotalSpins)
	assert.Equal(t, int64(workers+1), got.Version)
}
