package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/SpinWheel_Go/internal/domain"
	"github.com/osse101/SpinWheel_Go/internal/wheel"
)

// MockWheelService
type MockWheelService struct {
	mock.Mock
}

func (m *MockWheelService) CreateWheel(ctx context.Context, input wheel.CreateWheelInput) (*domain.Wheel, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wheel), args.Error(1)
}

func (m *MockWheelService) GetWheel(ctx context.Context, id uuid.UUID) (*domain.Wheel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wheel), args.Error(1)
}

func (m *MockWheelService) ListWheels(ctx context.Context) ([]domain.Wheel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wheel), args.Error(1)
}

func (m *MockWheelService) DeleteWheel(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWheelService) UpdateSettings(ctx context.Context, id uuid.UUID, input wheel.SettingsInput) (*domain.Wheel, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wheel), args.Error(1)
}

func (m *MockWheelService) AddParticipant(ctx context.Context, wheelID uuid.UUID, input wheel.ParticipantInput) (*domain.Participant, error) {
	args := m.Called(ctx, wheelID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participant), args.Error(1)
}

func (m *MockWheelService) UpdateParticipantWeight(ctx context.Context, wheelID, participantID uuid.UUID, weight float64) (*domain.Participant, error) {
	args := m.Called(ctx, wheelID, participantID, weight)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participant), args.Error(1)
}

func (m *MockWheelService) RemoveParticipant(ctx context.Context, wheelID, participantID uuid.UUID) (*domain.Wheel, error) {
	args := m.Called(ctx, wheelID, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wheel), args.Error(1)
}

func (m *MockWheelService) Spin(ctx context.Context, wheelID uuid.UUID, apply bool) (*domain.SpinResult, error) {
	args := m.Called(ctx, wheelID, apply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpinResult), args.Error(1)
}

func (m *MockWheelService) Probabilities(ctx context.Context, wheelID uuid.UUID) ([]domain.ParticipantOdds, error) {
	args := m.Called(ctx, wheelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParticipantOdds), args.Error(1)
}

func (m *MockWheelService) Reset(ctx context.Context, wheelID uuid.UUID) (*domain.Wheel, error) {
	args := m.Called(ctx, wheelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wheel), args.Error(1)
}

func (m *MockWheelService) SetRig(ctx context.Context, wheelID uuid.UUID, input wheel.RigInput) (*domain.Wheel, error) {
	args := m.Called(ctx, wheelID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wheel), args.Error(1)
}

func (m *MockWheelService) ClearRig(ctx context.Context, wheelID uuid.UUID) (*domain.Wheel, error) {
	args := m.Called(ctx, wheelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wheel), args.Error(1)
}

func (m *MockWheelService) GetCacheStats() wheel.CacheStats {
	args := m.Called()
	return args.Get(0).(wheel.CacheStats)
}
