package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SpinWheel_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// Wheel event types
const (
	WheelSpun          Type = domain.EventTypeWheelSpun
	WheelReset         Type = domain.EventTypeWheelReset
	WheelRigged        Type = domain.EventTypeWheelRigged
	WheelUnrigged      Type = domain.EventTypeWheelUnrigged
	ParticipantRemoved Type = domain.EventTypeParticipantRemoved
)

// WheelTypes lists every wheel event type, for subscribers that want all of them
var WheelTypes = []Type{WheelSpun, WheelReset, WheelRigged, WheelUnrigged, ParticipantRemoved}

// Typed event payloads for type safety

// WheelSpunPayloadV1 is the typed payload for spin events
type WheelSpunPayloadV1 struct {
	WheelID         uuid.UUID `json:"wheel_id"`
	ParticipantID   uuid.UUID `json:"participant_id"`
	ParticipantName string    `json:"participant_name"`
	Applied         bool      `json:"applied"`
	Rigged          bool      `json:"rigged"` // visible rigs only
	TotalSpins      int       `json:"total_spins"`
	Timestamp       int64     `json:"timestamp"`

	// RigConsumed includes hidden rigs. In-process subscribers only; never serialized.
	RigConsumed bool `json:"-"`
}

// WheelResetPayloadV1 is the typed payload for reset events
type WheelResetPayloadV1 struct {
	WheelID          uuid.UUID `json:"wheel_id"`
	ParticipantCount int       `json:"participant_count"`
	Strategy         string    `json:"strategy"`
	Timestamp        int64     `json:"timestamp"`
}

// WheelRiggedPayloadV1 is the typed payload for rig set and rig cleared events
type WheelRiggedPayloadV1 struct {
	WheelID             uuid.UUID `json:"wheel_id"`
	TargetParticipantID uuid.UUID `json:"target_participant_id"`
	Hidden              bool      `json:"hidden"`
	SetBy               string    `json:"set_by,omitempty"`
	Timestamp           int64     `json:"timestamp"`
}

// ParticipantRemovedPayloadV1 is the typed payload for participant removal events
type ParticipantRemovedPayloadV1 struct {
	WheelID         uuid.UUID `json:"wheel_id"`
	ParticipantID   uuid.UUID `json:"participant_id"`
	ParticipantName string    `json:"participant_name"`
	RemovedWeight   float64   `json:"removed_weight"`
	Remaining       int       `json:"remaining"`
	Timestamp       int64     `json:"timestamp"`
}

// Type-safe event constructors

// NewWheelSpunEvent creates a spin event from a spin result
func NewWheelSpunEvent(result *domain.SpinResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WheelSpun,
		Payload: WheelSpunPayloadV1{
			WheelID:         result.WheelID,
			ParticipantID:   result.ParticipantID,
			ParticipantName: result.ParticipantName,
			Applied:         result.Applied,
			Rigged:          result.Rigged,
			TotalSpins:      result.TotalSpins,
			Timestamp:       result.SpunAt.Unix(),
			RigConsumed:     result.RigConsumed,
		},
	}
}

// NewWheelResetEvent creates a reset event
func NewWheelResetEvent(wheelID uuid.UUID, participantCount int, strategy string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WheelReset,
		Payload: WheelResetPayloadV1{
			WheelID:          wheelID,
			ParticipantCount: participantCount,
			Strategy:         strategy,
			Timestamp:        time.Now().Unix(),
		},
	}
}

// NewWheelRiggedEvent creates a rig-set event
func NewWheelRiggedEvent(wheelID uuid.UUID, rig domain.Rigging) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WheelRigged,
		Payload: WheelRiggedPayloadV1{
			WheelID:             wheelID,
			TargetParticipantID: rig.TargetParticipantID,
			Hidden:              rig.Hidden,
			SetBy:               rig.SetBy,
			Timestamp:           rig.SetAt.Unix(),
		},
	}
}

// NewWheelUnriggedEvent creates a rig-cleared event.
// hidden carries over from the rig that was cleared so hidden rigs stay hidden.
func NewWheelUnriggedEvent(wheelID uuid.UUID, hidden bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WheelUnrigged,
		Payload: WheelRiggedPayloadV1{
			WheelID:   wheelID,
			Hidden:    hidden,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewParticipantRemovedEvent creates a participant removal event
func NewParticipantRemovedEvent(wheelID uuid.UUID, removed domain.Participant, remaining int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ParticipantRemoved,
		Payload: ParticipantRemovedPayloadV1{
			WheelID:         wheelID,
			ParticipantID:   removed.ID,
			ParticipantName: removed.Name,
			RemovedWeight:   removed.Weight,
			Remaining:       remaining,
			Timestamp:       time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes one handler to several event types
func SubscribeAll(bus Bus, types []Type, handler Handler) {
	for _, t := range types {
		bus.Subscribe(t, handler)
	}
}
