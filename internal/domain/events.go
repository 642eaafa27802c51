package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "wheel.spun")
const (
	// EventTypeWheelSpun is published after every spin, applied or preview
	EventTypeWheelSpun = "wheel.spun"

	// EventTypeWheelReset is published when a wheel is reset to its baseline weights
	EventTypeWheelReset = "wheel.reset"

	// EventTypeWheelRigged is published when an organizer sets a rig
	EventTypeWheelRigged = "wheel.rigged"

	// EventTypeWheelUnrigged is published when a rig is cleared explicitly
	EventTypeWheelUnrigged = "wheel.unrigged"

	// EventTypeParticipantRemoved is published after a participant is removed and the wheel rebalanced
	EventTypeParticipantRemoved = "wheel.participant_removed"
)
