package wheel

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/SpinWheel_Go/internal/domain"
	"github.com/osse101/SpinWheel_Go/internal/repository"
	"github.com/osse101/SpinWheel_Go/internal/utils"
)

// memoryRepo is an in-memory repository.Wheel that enforces version checks like the
// postgres implementation. failSaves makes the next N SaveWheel calls lose the race.
type memoryRepo struct {
	mu        sync.Mutex
	wheels    map[uuid.UUID]*domain.Wheel
	failSaves int
	commits   int
}

func newMemoryRepo(wheels ...*domain.Wheel) *memoryRepo {
	r := &memoryRepo{wheels: make(map[uuid.UUID]*domain.Wheel)}
	for _, w := range wheels {
		if w.Version == 0 {
			w.Version = 1
		}
		r.wheels[w.ID] = copyWheel(w)
	}
	return r
}

func (r *memoryRepo) CreateWheel(_ context.Context, w *domain.Wheel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.Version = 1
	r.wheels[w.ID] = copyWheel(w)
	return nil
}

func (r *memoryRepo) GetWheel(_ context.Context, id uuid.UUID) (*domain.Wheel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wheels[id]
	if !ok {
		return nil, domain.ErrWheelNotFound
	}
	return copyWheel(w), nil
}

func (r *memoryRepo) ListWheels(_ context.Context) ([]domain.Wheel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Wheel, 0, len(r.wheels))
	for _, w := range r.wheels {
		out = append(out, *copyWheel(w))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepo) DeleteWheel(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.wheels[id]; !ok {
		return domain.ErrWheelNotFound
	}
	delete(r.wheels, id)
	return nil
}

func (r *memoryRepo) GetWheelsByName(ctx context.Context, name string) ([]domain.Wheel, error) {
	all, _ := r.ListWheels(ctx)
	var out []domain.Wheel
	for _, w := range all {
		if utils.SameName(w.Name, name) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *memoryRepo) AddParticipant(_ context.Context, p *domain.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wheels[p.WheelID]
	if !ok {
		return domain.ErrWheelNotFound
	}
	for _, existing := range w.Participants {
		if utils.FoldName(existing.Name) == utils.FoldName(p.Name) {
			return domain.ErrDuplicateParticipant
		}
	}
	w.Participants = append(w.Participants, *p)
	return nil
}

func (r *memoryRepo) GetParticipants(ctx context.Context, wheelID uuid.UUID) ([]domain.Participant, error) {
	w, err := r.GetWheel(ctx, wheelID)
	if err != nil {
		return nil, err
	}
	return w.Participants, nil
}

func (r *memoryRepo) BeginTx(_ context.Context) (repository.WheelTx, error) {
	return &memoryTx{repo: r}, nil
}

func (r *memoryRepo) snapshot(id uuid.UUID) *domain.Wheel {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyWheel(r.wheels[id])
}

var errTxClosed = errors.New(domain.ErrMsgTxClosed)

// memoryTx buffers writes until Commit
type memoryTx struct {
	repo     *memoryRepo
	wheel    *domain.Wheel
	staged   map[uuid.UUID]domain.Participant
	deleted  map[uuid.UUID]bool
	done     bool
	wroteRow bool
}

func (tx *memoryTx) GetWheelForUpdate(ctx context.Context, id uuid.UUID) (*domain.Wheel, error) {
	w, err := tx.repo.GetWheel(ctx, id)
	if err != nil {
		return nil, err
	}
	tx.wheel = copyWheel(w)
	tx.staged = make(map[uuid.UUID]domain.Participant)
	tx.deleted = make(map[uuid.UUID]bool)
	return w, nil
}

func (tx *memoryTx) SaveParticipants(_ context.Context, participants []domain.Participant) error {
	for _, p := range participants {
		tx.staged[p.ID] = p
	}
	return nil
}

func (tx *memoryTx) UpdateParticipant(_ context.Context, p *domain.Participant) error {
	tx.staged[p.ID] = *p
	return nil
}

func (tx *memoryTx) DeleteParticipant(_ context.Context, _, participantID uuid.UUID) error {
	tx.deleted[participantID] = true
	return nil
}

func (tx *memoryTx) SaveWheel(_ context.Context, w *domain.Wheel) error {
	tx.repo.mu.Lock()
	defer tx.repo.mu.Unlock()
	if tx.repo.failSaves > 0 {
		tx.repo.failSaves--
		return domain.ErrVersionConflict
	}
	stored, ok := tx.repo.wheels[w.ID]
	if !ok || stored.Version != w.Version {
		return domain.ErrVersionConflict
	}
	w.Version++
	tx.wheel.Name = w.Name
	tx.wheel.Description = w.Description
	tx.wheel.Settings = w.Settings
	tx.wheel.TotalSpins = w.TotalSpins
	tx.wheel.Version = w.Version
	tx.wheel.Rigging = nil
	if w.Rigging != nil {
		rig := *w.Rigging
		tx.wheel.Rigging = &rig
	}
	tx.wroteRow = true
	return nil
}

func (tx *memoryTx) Commit(_ context.Context) error {
	tx.repo.mu.Lock()
	defer tx.repo.mu.Unlock()
	if tx.done {
		return errTxClosed
	}
	tx.done = true
	tx.repo.commits++

	stored, ok := tx.repo.wheels[tx.wheel.ID]
	if !ok {
		return domain.ErrWheelNotFound
	}
	if tx.wroteRow {
		participants := stored.Participants
		*stored = *copyWheel(tx.wheel)
		stored.Participants = participants
	}

	kept := stored.Participants[:0]
	for _, p := range stored.Participants {
		if tx.deleted[p.ID] {
			continue
		}
		if staged, ok := tx.staged[p.ID]; ok {
			p = staged
		}
		kept = append(kept, p)
	}
	stored.Participants = kept
	return nil
}

func (tx *memoryTx) Rollback(_ context.Context) error {
	if tx.done {
		return errTxClosed
	}
	tx.done = true
	return nil
}

// pausingRepo holds the first GetWheel after its read completes until release is closed,
// so a writer can commit between the read and the caller's use of the result.
type pausingRepo struct {
	*memoryRepo
	once    sync.Once
	fetched chan struct{}
	release chan struct{}
}

func newPausingRepo(inner *memoryRepo) *pausingRepo {
	return &pausingRepo{
		memoryRepo: inner,
		fetched:    make(chan struct{}),
		release:    make(chan struct{}),
	}
}

func (r *pausingRepo) GetWheel(ctx context.Context, id uuid.UUID) (*domain.Wheel, error) {
	w, err := r.memoryRepo.GetWheel(ctx, id)
	r.once.Do(func() {
		close(r.fetched)
		<-r.release
	})
	return w, err
}
