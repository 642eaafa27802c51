package live

import (
	"github.com/google/uuid"
)

// Message is what live clients receive, over websocket frames or SSE data lines
type Message struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	WheelID   uuid.UUID   `json:"wheel_id"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// SpinPayload is the client view of a spin. Rigged is true only for visible rigs.
type SpinPayload struct {
	ParticipantID   uuid.UUID `json:"participant_id"`
	ParticipantName string    `json:"participant_name"`
	Applied         bool      `json:"applied"`
	Rigged          bool      `json:"rigged"`
	TotalSpins      int       `json:"total_spins"`
}

// ResetPayload is the client view of a reset
type ResetPayload struct {
	ParticipantCount int `json:"participant_count"`
}

// RigPayload is the client view of a visible rig being set
type RigPayload struct {
	TargetParticipantID uuid.UUID `json:"target_participant_id"`
	SetBy               string    `json:"set_by,omitempty"`
}

// ParticipantRemovedPayload is the client view of a removal
type ParticipantRemovedPayload struct {
	ParticipantID   uuid.UUID `json:"participant_id"`
	ParticipantName string    `json:"participant_name"`
	Remaining       int       `json:"remaining"`
}
