package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Engine errors
	ErrMsgEmptySet        = "no participants to choose from"
	ErrMsgRiggingDisabled = "rigging is disabled for this wheel"
	ErrMsgReasonRequired  = "a reason is required to rig this wheel"
	ErrMsgLastParticipant = "cannot remove the last participant of a wheel"
	ErrMsgVersionConflict = "wheel was modified concurrently"
	ErrMsgInvalidWeight   = "weight must be a finite, non-negative number"

	// Lookup errors
	ErrMsgWheelNotFound        = "wheel not found"
	ErrMsgParticipantNotFound  = "participant not found"
	ErrMsgDuplicateParticipant = "a participant with that name already exists on this wheel"

	// Database/System errors
	ErrMsgConnectionTimeout = "connection timeout"
	ErrMsgDatabaseError     = "database error"
	ErrMsgTxClosed          = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Engine errors. None of these are transient; callers must not retry them.
	ErrEmptySet        = errors.New(ErrMsgEmptySet)
	ErrRiggingDisabled = errors.New(ErrMsgRiggingDisabled)
	ErrReasonRequired  = errors.New(ErrMsgReasonRequired)

	// Management errors
	ErrLastParticipant      = errors.New(ErrMsgLastParticipant)
	ErrInvalidWeight        = errors.New(ErrMsgInvalidWeight)
	ErrWheelNotFound        = errors.New(ErrMsgWheelNotFound)
	ErrParticipantNotFound  = errors.New(ErrMsgParticipantNotFound)
	ErrDuplicateParticipant = errors.New(ErrMsgDuplicateParticipant)

	// ErrVersionConflict is returned by a conditional wheel write that lost a race.
	// It is the only error the wheel service retries.
	ErrVersionConflict = errors.New(ErrMsgVersionConflict)

	// System errors
	ErrDatabaseError     = errors.New(ErrMsgDatabaseError)
	ErrConnectionTimeout = errors.New(ErrMsgConnectionTimeout)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
