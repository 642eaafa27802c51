package live

import (
	"context"
	"log/slog"

	"github.com/osse101/SpinWheel_Go/internal/event"
	"github.com/osse101/SpinWheel_Go/internal/logger"
)

// Subscriber bridges the internal event bus to the live hub.
// Hidden rigs are filtered here; nothing about them reaches a client.
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new live subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the handler for every wheel event type
func (s *Subscriber) Subscribe() {
	event.SubscribeAll(s.bus, event.WheelTypes, s.HandleEvent)
	slog.Info(LogMsgSubscribed, "types", event.WheelTypes)
}

// HandleEvent converts a bus event into a client message and broadcasts it
func (s *Subscriber) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	switch evt.Type {
	case event.WheelSpun:
		p, err := event.DecodePayload[event.WheelSpunPayloadV1](evt.Payload)
		if err != nil {
			log.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
			return nil
		}
		s.hub.Broadcast(p.WheelID, MessageTypeSpin, SpinPayload{
			ParticipantID:   p.ParticipantID,
			ParticipantName: p.ParticipantName,
			Applied:         p.Applied,
			Rigged:          p.Rigged,
			TotalSpins:      p.TotalSpins,
		})

	case event.WheelReset:
		p, err := event.DecodePayload[event.WheelResetPayloadV1](evt.Payload)
		if err != nil {
			log.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
			return nil
		}
		s.hub.Broadcast(p.WheelID, MessageTypeReset, ResetPayload{ParticipantCount: p.ParticipantCount})

	case event.WheelRigged, event.WheelUnrigged:
		p, err := event.DecodePayload[event.WheelRiggedPayloadV1](evt.Payload)
		if err != nil {
			log.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
			return nil
		}
		if p.Hidden {
			return nil
		}
		if evt.Type == event.WheelUnrigged {
			s.hub.Broadcast(p.WheelID, MessageTypeUnrigged, nil)
			break
		}
		s.hub.Broadcast(p.WheelID, MessageTypeRigged, RigPayload{
			TargetParticipantID: p.TargetParticipantID,
			SetBy:               p.SetBy,
		})

	case event.ParticipantRemoved:
		p, err := event.DecodePayload[event.ParticipantRemovedPayloadV1](evt.Payload)
		if err != nil {
			log.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
			return nil
		}
		s.hub.Broadcast(p.WheelID, MessageTypeParticipantRemoved, ParticipantRemovedPayload{
			ParticipantID:   p.ParticipantID,
			ParticipantName: p.ParticipantName,
			Remaining:       p.Remaining,
		})

	default:
		return nil
	}

	log.Debug(LogMsgMessageBroadcast, "type", evt.Type)
	return nil
}
