package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is one weighted slot on a wheel
type Participant struct {
	ID             uuid.UUID  `json:"id"`
	WheelID        uuid.UUID  `json:"wheel_id"`
	Name           string     `json:"name"`
	Weight         float64    `json:"weight"`
	OriginalWeight float64    `json:"original_weight"`
	SelectionCount int        `json:"selection_count"`
	LastSelectedAt *time.Time `json:"last_selected_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Rigging is a pending forced pick set by an organizer
type Rigging struct {
	TargetParticipantID uuid.UUID `json:"target_participant_id"`
	Hidden              bool      `json:"hidden"`
	Reason              string    `json:"reason,omitempty"`
	SetBy               string    `json:"set_by,omitempty"`
	SetAt               time.Time `json:"set_at"`
}

// WheelSettings holds per-wheel policy flags
type WheelSettings struct {
	AllowRigging            bool    `json:"allow_rigging"`
	RequireReasonForRigging bool    `json:"require_reason_for_rigging"`
	DefaultWeight           float64 `json:"default_weight"`
}

// Wheel is a named collection of weighted participants that can be spun.
// Participants are kept in creation order; the picker walks them in that order.
type Wheel struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Participants []Participant `json:"participants"`
	Rigging      *Rigging      `json:"rigging,omitempty"`
	TotalSpins   int           `json:"total_spins"`
	Settings     WheelSettings `json:"settings"`
	Version      int64         `json:"version"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// FindParticipant returns the index of the participant with the given ID, or -1
func (w *Wheel) FindParticipant(id uuid.UUID) int {
	for i := range w.Participants {
		if w.Participants[i].ID == id {
			return i
		}
	}
	return -1
}

// TotalWeight sums the current weights of all participants
func (w *Wheel) TotalWeight() float64 {
	var total float64
	for _, p := range w.Participants {
		total += p.Weight
	}
	return total
}

// SpinResult is the outcome of a single spin
type SpinResult struct {
	WheelID         uuid.UUID             `json:"wheel_id"`
	ParticipantID   uuid.UUID             `json:"participant_id"`
	ParticipantName string                `json:"participant_name"`
	Rigged          bool                  `json:"rigged"`
	Applied         bool                  `json:"applied"`
	Probabilities   map[uuid.UUID]float64 `json:"probabilities,omitempty"`
	TotalSpins      int                   `json:"total_spins"`
	SpunAt          time.Time             `json:"spun_at"`

	// RigConsumed reports whether a rig (visible or hidden) decided this pick.
	// Never serialized: hidden rigs must not leak to end users.
	RigConsumed bool `json:"-"`
}

// ParticipantOdds pairs a participant with its current selection probability
type ParticipantOdds struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	Name          string    `json:"name"`
	Weight        float64   `json:"weight"`
	Probability   float64   `json:"probability"`
}
