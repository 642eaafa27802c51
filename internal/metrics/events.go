package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/SpinWheel_Go/internal/event"
	"github.com/osse101/SpinWheel_Go/internal/logger"
)

// EventMetricsCollector subscribes to wheel events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all wheel events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	event.SubscribeAll(bus, event.WheelTypes, e.HandleEvent)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.WheelSpun:
		p, err := event.DecodePayload[event.WheelSpunPayloadV1](evt.Payload)
		if err != nil {
			return e.payloadError(ctx, evt, err)
		}
		WheelSpins.WithLabelValues(strconv.FormatBool(p.Applied), strconv.FormatBool(p.Rigged)).Inc()
		if p.Applied && p.RigConsumed {
			WheelRigsConsumed.WithLabelValues(strconv.FormatBool(!p.Rigged)).Inc()
		}

	case event.WheelReset:
		WheelResets.Inc()

	case event.ParticipantRemoved:
		WheelParticipantsRemoved.Inc()

	case event.WheelRigged:
		p, err := event.DecodePayload[event.WheelRiggedPayloadV1](evt.Payload)
		if err != nil {
			return e.payloadError(ctx, evt, err)
		}
		WheelRigsSet.WithLabelValues(strconv.FormatBool(p.Hidden)).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func (e *EventMetricsCollector) payloadError(ctx context.Context, evt event.Event, err error) error {
	EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
	logger.FromContext(ctx).Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
	return nil
}
