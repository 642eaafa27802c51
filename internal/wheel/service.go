package wheel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SpinWheel_Go/internal/concurrency"
	"github.com/osse101/SpinWheel_Go/internal/domain"
	"github.com/osse101/SpinWheel_Go/internal/event"
	"github.com/osse101/SpinWheel_Go/internal/logger"
	"github.com/osse101/SpinWheel_Go/internal/metrics"
	"github.com/osse101/SpinWheel_Go/internal/repository"
	"github.com/osse101/SpinWheel_Go/internal/selection"
	"github.com/osse101/SpinWheel_Go/internal/utils"
)

// Service defines the interface for wheel operations.
// Callers are expected to have authorized the request before calling in.
type Service interface {
	CreateWheel(ctx context.Context, input CreateWheelInput) (*domain.Wheel, error)
	GetWheel(ctx context.Context, id uuid.UUID) (*domain.Wheel, error)
	ListWheels(ctx context.Context) ([]domain.Wheel, error)
	DeleteWheel(ctx context.Context, id uuid.UUID) error
	UpdateSettings(ctx context.Context, id uuid.UUID, input SettingsInput) (*domain.Wheel, error)

	AddParticipant(ctx context.Context, wheelID uuid.UUID, input ParticipantInput) (*domain.Participant, error)
	UpdateParticipantWeight(ctx context.Context, wheelID, participantID uuid.UUID, weight float64) (*domain.Participant, error)
	RemoveParticipant(ctx context.Context, wheelID, participantID uuid.UUID) (*domain.Wheel, error)

	Spin(ctx context.Context, wheelID uuid.UUID, apply bool) (*domain.SpinResult, error)
	Probabilities(ctx context.Context, wheelID uuid.UUID) ([]domain.ParticipantOdds, error)
	Reset(ctx context.Context, wheelID uuid.UUID) (*domain.Wheel, error)
	SetRig(ctx context.Context, wheelID uuid.UUID, input RigInput) (*domain.Wheel, error)
	ClearRig(ctx context.Context, wheelID uuid.UUID) (*domain.Wheel, error)

	GetCacheStats() CacheStats
}

// CreateWheelInput describes a new wheel and its starting participants
type CreateWheelInput struct {
	Name         string
	Description  string
	Settings     SettingsInput
	Participants []ParticipantInput
}

// SettingsInput is a partial settings update; nil fields are left unchanged
type SettingsInput struct {
	AllowRigging            *bool
	RequireReasonForRigging *bool
	DefaultWeight           *float64
}

// ParticipantInput describes a participant to add. A nil Weight uses the wheel default.
type ParticipantInput struct {
	Name   string
	Weight *float64
}

// RigInput describes a forced next pick
type RigInput struct {
	TargetParticipantID uuid.UUID
	Hidden              bool
	Reason              string
	SetBy               string
}

// Config carries the service's tunables
type Config struct {
	CacheSize int
	CacheTTL  time.Duration
}

type service struct {
	repo     repository.Wheel
	eventBus event.Bus
	locks    *concurrency.LockManager
	policy   selection.Policy
	resetter ResetStrategy
	cache    *wheelCache
	rng      selection.RandomSource
	now      func() time.Time
}

// NewService creates a new wheel service
func NewService(repo repository.Wheel, eventBus event.Bus, locks *concurrency.LockManager, policy selection.Policy, resetter ResetStrategy, cfg Config) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	if policy == nil {
		policy = selection.EqualSplitPolicy{}
	}
	if resetter == nil {
		resetter = OriginalWeightsStrategy{}
	}
	return &service{
		repo:     repo,
		eventBus: eventBus,
		locks:    locks,
		policy:   policy,
		resetter: resetter,
		cache:    newWheelCache(cfg.CacheSize, cfg.CacheTTL),
		rng:      selection.DefaultRandomSource,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ---- wheel management ----

func (s *service) CreateWheel(ctx context.Context, input CreateWheelInput) (*domain.Wheel, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	settings := domain.WheelSettings{DefaultWeight: DefaultParticipantWeight}
	if err := applySettings(&settings, input.Settings); err != nil {
		return nil, err
	}

	now := s.now()
	w := &domain.Wheel{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Settings:    settings,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for i, in := range input.Participants {
		p, err := s.newParticipant(w, in, now.Add(time.Duration(i)*time.Microsecond))
		if err != nil {
			return nil, err
		}
		if hasName(w.Participants, p.Name) {
			return nil, fmt.Errorf("%w: %s %q", domain.ErrDuplicateParticipant, ErrMsgDuplicateInWheel, p.Name)
		}
		w.Participants = append(w.Participants, *p)
	}

	if err := s.repo.CreateWheel(ctx, w); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCreateWheel, err)
	}

	logger.FromContext(ctx).Info(LogMsgWheelCreated, logger.AttrKeyWheelID, w.ID, "participants", len(w.Participants))
	return w, nil
}

func (s *service) GetWheel(ctx context.Context, id uuid.UUID) (*domain.Wheel, error) {
	w, err := s.repo.GetWheel(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetWheel, err)
	}
	return w, nil
}

func (s *service) ListWheels(ctx context.Context) ([]domain.Wheel, error) {
	wheels, err := s.repo.ListWheels(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListWheels, err)
	}
	return wheels, nil
}

func (s *service) DeleteWheel(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.repo.DeleteWheel(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToDeleteWheel, err)
	}
	s.cache.Invalidate(id)
	s.locks.Forget(id)

	logger.FromContext(ctx).Info(LogMsgWheelDeleted, logger.AttrKeyWheelID, id)
	return nil
}

// UpdateSettings applies a partial settings change. Turning rigging off drops any pending rig.
func (s *service) UpdateSettings(ctx context.Context, id uuid.UUID, input SettingsInput) (*domain.Wheel, error) {
	return s.mutate(ctx, id, func(_ repository.WheelTx, w *domain.Wheel) error {
		if err := applySettings(&w.Settings, input); err != nil {
			return err
		}
		if !w.Settings.AllowRigging {
			selection.ClearRig(w)
		}
		return nil
	})
}

// ---- participant management ----

func (s *service) AddParticipant(ctx context.Context, wheelID uuid.UUID, input ParticipantInput) (*domain.Participant, error) {
	unlock := s.locks.Lock(wheelID)
	defer unlock()

	w, err := s.repo.GetWheel(ctx, wheelID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetWheel, err)
	}

	p, err := s.newParticipant(w, input, s.now())
	if err != nil {
		return nil, err
	}
	if hasName(w.Participants, p.Name) {
		return nil, domain.ErrDuplicateParticipant
	}

	if err := s.repo.AddParticipant(ctx, p); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToAddParticipant, err)
	}
	s.cache.Invalidate(wheelID)

	logger.FromContext(ctx).Info(LogMsgParticipantAdded, logger.AttrKeyWheelID, wheelID, "participant", p.Name, "weight", p.Weight)
	return p, nil
}

// UpdateParticipantWeight is the manual weight edit. It moves the participant's
// baseline too, so a later reset keeps the edit.
func (s *service) UpdateParticipantWeight(ctx context.Context, wheelID, participantID uuid.UUID, weight float64) (*domain.Participant, error) {
	if !utils.IsValidWeight(weight) {
		return nil, domain.ErrInvalidWeight
	}

	var updated domain.Participant
	_, err := s.mutate(ctx, wheelID, func(tx repository.WheelTx, w *domain.Wheel) error {
		idx := w.FindParticipant(participantID)
		if idx < 0 {
			return domain.ErrParticipantNotFound
		}
		w.Participants[idx].Weight = weight
		w.Participants[idx].OriginalWeight = weight
		if err := tx.UpdateParticipant(ctx, &w.Participants[idx]); err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToUpdateParticipant, err)
		}
		updated = w.Participants[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveParticipant deletes a participant and rebalances the rest of the wheel.
// A rig pointing at the removed participant is left in place and falls back at pick time.
func (s *service) RemoveParticipant(ctx context.Context, wheelID, participantID uuid.UUID) (*domain.Wheel, error) {
	logger.FromContext(ctx).Debug(LogMsgRemoveParticipantCalled, logger.AttrKeyWheelID, wheelID, "participant_id", participantID)

	var removed domain.Participant
	w, err := s.mutate(ctx, wheelID, func(tx repository.WheelTx, w *domain.Wheel) error {
		idx := w.FindParticipant(participantID)
		if idx < 0 {
			return domain.ErrParticipantNotFound
		}
		if len(w.Participants) == 1 {
			return domain.ErrLastParticipant
		}

		removed = w.Participants[idx]
		remaining := make([]domain.Participant, 0, len(w.Participants)-1)
		remaining = append(remaining, w.Participants[:idx]...)
		remaining = append(remaining, w.Participants[idx+1:]...)
		rebalanced := selection.RebalanceOnRemoval(remaining, removed)

		if err := tx.DeleteParticipant(ctx, wheelID, participantID); err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToDeleteParticipant, err)
		}
		if err := tx.SaveParticipants(ctx, rebalanced); err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToSaveParticipants, err)
		}
		w.Participants = rebalanced
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewParticipantRemovedEvent(wheelID, removed, len(w.Participants)))
	return w, nil
}

// ---- engine operations ----

// Spin picks a participant. With apply=false the wheel is only read and nothing is
// written; with apply=true redistribution, counters, the spin total and rig
// consumption are persisted atomically.
func (s *service) Spin(ctx context.Context, wheelID uuid.UUID, apply bool) (*domain.SpinResult, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgSpinCalled, logger.AttrKeyWheelID, wheelID, "apply", apply)

	if !apply {
		w, err := s.repo.GetWheel(ctx, wheelID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetWheel, err)
		}
		result, err := selection.Spin(w, s.policy, s.rng, false, s.now())
		if err != nil {
			return nil, err
		}
		s.publish(ctx, event.NewWheelSpunEvent(result))
		return result, nil
	}

	var result *domain.SpinResult
	_, err := s.mutate(ctx, wheelID, func(tx repository.WheelTx, w *domain.Wheel) error {
		res, err := selection.Spin(w, s.policy, s.rng, true, s.now())
		if err != nil {
			return err
		}
		if err := tx.SaveParticipants(ctx, w.Participants); err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToSaveParticipants, err)
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgWheelSpun, logger.AttrKeyWheelID, wheelID, "participant", result.ParticipantName, "total_spins", result.TotalSpins)
	s.publish(ctx, event.NewWheelSpunEvent(result))
	return result, nil
}

// Probabilities previews the odds of an unrigged spin from a cached snapshot
func (s *service) Probabilities(ctx context.Context, wheelID uuid.UUID) ([]domain.ParticipantOdds, error) {
	w, ok := s.cache.Get(wheelID)
	if !ok {
		gen := s.cache.Generation(wheelID)
		fresh, err := s.repo.GetWheel(ctx, wheelID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetWheel, err)
		}
		if !s.cache.SetIfCurrent(fresh, gen) {
			logger.FromContext(ctx).Debug(LogMsgStaleSnapshotSkipped, logger.AttrKeyWheelID, wheelID)
		}
		w = fresh
	}
	return selection.Odds(w.Participants), nil
}

// Reset restores baseline weights, clears counters, the spin total and any rig
func (s *service) Reset(ctx context.Context, wheelID uuid.UUID) (*domain.Wheel, error) {
	logger.FromContext(ctx).Debug(LogMsgResetCalled, logger.AttrKeyWheelID, wheelID, "strategy", s.resetter.Name())

	w, err := s.mutate(ctx, wheelID, func(tx repository.WheelTx, w *domain.Wheel) error {
		if len(w.Participants) == 0 {
			return domain.ErrEmptySet
		}
		baseline, err := s.resetter.Baseline(ctx, w)
		if err != nil {
			return err
		}
		participants, err := selection.ResetWith(w.Participants, baseline)
		if err != nil {
			return err
		}
		if err := tx.SaveParticipants(ctx, participants); err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToSaveParticipants, err)
		}
		w.Participants = participants
		selection.ResetWheel(w)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewWheelResetEvent(wheelID, len(w.Participants), s.resetter.Name()))
	return w, nil
}

// SetRig forces the next applied spin. The target must currently be on the wheel.
func (s *service) SetRig(ctx context.Context, wheelID uuid.UUID, input RigInput) (*domain.Wheel, error) {
	logger.FromContext(ctx).Debug(LogMsgSetRigCalled, logger.AttrKeyWheelID, wheelID, "hidden", input.Hidden)

	w, err := s.mutate(ctx, wheelID, func(_ repository.WheelTx, w *domain.Wheel) error {
		if w.FindParticipant(input.TargetParticipantID) < 0 {
			return domain.ErrParticipantNotFound
		}
		return selection.SetRig(w, input.TargetParticipantID, input.Hidden, input.Reason, input.SetBy, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewWheelRiggedEvent(wheelID, *w.Rigging))
	return w, nil
}

// ClearRig drops any pending rig. Clearing an unrigged wheel succeeds and publishes nothing.
func (s *service) ClearRig(ctx context.Context, wheelID uuid.UUID) (*domain.Wheel, error) {
	logger.FromContext(ctx).Debug(LogMsgClearRigCalled, logger.AttrKeyWheelID, wheelID)

	var cleared *domain.Rigging
	w, err := s.mutate(ctx, wheelID, func(_ repository.WheelTx, w *domain.Wheel) error {
		cleared = w.Rigging
		selection.ClearRig(w)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cleared != nil {
		s.publish(ctx, event.NewWheelUnriggedEvent(wheelID, cleared.Hidden))
	}
	return w, nil
}

func (s *service) GetCacheStats() CacheStats {
	return s.cache.Stats()
}

// ---- helpers ----

// mutateFunc changes a locked wheel in place, writing participant rows through tx.
// The wheel row itself is saved by mutate.
type mutateFunc func(tx repository.WheelTx, w *domain.Wheel) error

// mutate runs fn under the wheel's in-process lock and a database transaction.
// A lost version race re-runs the whole read-modify-write from a fresh read.
func (s *service) mutate(ctx context.Context, wheelID uuid.UUID, fn mutateFunc) (*domain.Wheel, error) {
	unlock := s.locks.Lock(wheelID)
	defer unlock()

	var lastErr error
	for attempt := 1; attempt <= SpinMaxRetries; attempt++ {
		w, err := s.mutateOnce(ctx, wheelID, fn)
		if err == nil {
			s.cache.Invalidate(wheelID)
			return w, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return nil, err
		}

		metrics.WheelSpinConflicts.Inc()
		logger.FromContext(ctx).Warn(LogMsgVersionConflictRetrying, logger.AttrKeyWheelID, wheelID, "attempt", attempt)
		lastErr = err
	}
	return nil, fmt.Errorf("%s: %w", ErrContextRetriesExhausted, lastErr)
}

func (s *service) mutateOnce(ctx context.Context, wheelID uuid.UUID, fn mutateFunc) (*domain.Wheel, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	w, err := tx.GetWheelForUpdate(ctx, wheelID)
	if err != nil {
		if errors.Is(err, domain.ErrWheelNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLockWheel, err)
	}

	if err := fn(tx, w); err != nil {
		return nil, err
	}

	if err := tx.SaveWheel(ctx, w); err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSaveWheel, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return w, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		logger.FromContext(ctx).Error(LogMsgFailedToPublishEvent, "type", evt.Type, "reason", LogReasonEventBusNil)
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error(LogMsgFailedToPublishEvent, "type", evt.Type, "error", err)
	}
}

func (s *service) newParticipant(w *domain.Wheel, input ParticipantInput, createdAt time.Time) (*domain.Participant, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	weight := w.Settings.DefaultWeight
	if input.Weight != nil {
		weight = *input.Weight
	}
	if !utils.IsValidWeight(weight) {
		return nil, domain.ErrInvalidWeight
	}

	return &domain.Participant{
		ID:             uuid.New(),
		WheelID:        w.ID,
		Name:           name,
		Weight:         weight,
		OriginalWeight: weight,
		CreatedAt:      createdAt,
	}, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNameRequired)
	}
	if len([]rune(name)) > MaxNameLength {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNameTooLong)
	}
	return name, nil
}

func applySettings(settings *domain.WheelSettings, input SettingsInput) error {
	if input.DefaultWeight != nil {
		if !utils.IsValidWeight(*input.DefaultWeight) {
			return domain.ErrInvalidWeight
		}
		settings.DefaultWeight = *input.DefaultWeight
	}
	if input.AllowRigging != nil {
		settings.AllowRigging = *input.AllowRigging
	}
	if input.RequireReasonForRigging != nil {
		settings.RequireReasonForRigging = *input.RequireReasonForRigging
	}
	return nil
}

func hasName(participants []domain.Participant, name string) bool {
	for _, p := range participants {
		if utils.SameName(p.Name, name) {
			return true
		}
	}
	return false
}
