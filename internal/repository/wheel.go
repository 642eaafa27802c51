package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/SpinWheel_Go/internal/domain"
)

// Wheel defines the interface for data access required by the wheel service
type Wheel interface {
	CreateWheel(ctx context.Context, wheel *domain.Wheel) error
	GetWheel(ctx context.Context, id uuid.UUID) (*domain.Wheel, error)
	ListWheels(ctx context.Context) ([]domain.Wheel, error)
	DeleteWheel(ctx context.Context, id uuid.UUID) error

	// GetWheelsByName returns every wheel whose name matches case-insensitively, oldest first.
	// The legacy reset strategy uses it to find the wheel named after a participant.
	GetWheelsByName(ctx context.Context, name string) ([]domain.Wheel, error)

	AddParticipant(ctx context.Context, participant *domain.Participant) error
	GetParticipants(ctx context.Context, wheelID uuid.UUID) ([]domain.Participant, error)

	// Transaction support
	BeginTx(ctx context.Context) (WheelTx, error)
}

// WheelTx extends Tx with the reads and writes a spin, reset or removal performs atomically
type WheelTx interface {
	Tx // Commit, Rollback

	// GetWheelForUpdate loads the wheel with its participants and row-locks it
	GetWheelForUpdate(ctx context.Context, id uuid.UUID) (*domain.Wheel, error)

	SaveParticipants(ctx context.Context, participants []domain.Participant) error
	UpdateParticipant(ctx context.Context, participant *domain.Participant) error
	DeleteParticipant(ctx context.Context, wheelID, participantID uuid.UUID) error

	// SaveWheel writes wheel-level state (rig, spin counter, settings) only if the
	// stored version still equals wheel.Version, then bumps the version.
	// Returns domain.ErrVersionConflict when the version moved.
	SaveWheel(ctx context.Context, wheel *domain.Wheel) error
}
