package wheel

// ============================================================================
// Concurrency
// ============================================================================

// SpinMaxRetries is how many times a write that lost a version race is re-run
// from a fresh read before the conflict is surfaced to the caller
const SpinMaxRetries = 3

// ============================================================================
// Validation
// ============================================================================

// MaxNameLength bounds wheel and participant names, matching the database columns
const MaxNameLength = 100

// DefaultParticipantWeight is used when neither the request nor the wheel settings give a weight
const DefaultParticipantWeight = 1.0

// ============================================================================
// Cache
// ============================================================================

// CacheSchemaVersion is the version of cached wheel snapshots.
// Increment this when the cached data structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

// ============================================================================
// Log Messages
// ============================================================================

// Log operation identifiers
const (
	LogMsgSpinCalled              = "Spin called"
	LogMsgResetCalled             = "Reset called"
	LogMsgRemoveParticipantCalled = "RemoveParticipant called"
	LogMsgSetRigCalled            = "SetRig called"
	LogMsgClearRigCalled          = "ClearRig called"
	LogMsgWheelCreated            = "Wheel created"
	LogMsgWheelDeleted            = "Wheel deleted"
	LogMsgParticipantAdded        = "Participant added"
	LogMsgWheelSpun               = "Wheel spun"
)

// Warning/Info messages
const (
	LogMsgVersionConflictRetrying = "Wheel changed concurrently, retrying"
	LogMsgFailedToPublishEvent    = "Failed to publish wheel event"
	LogMsgStaleSnapshotSkipped    = "Wheel changed during preview read, snapshot not cached"
	LogReasonEventBusNil          = "eventBus is nil"
)

// ============================================================================
// Error Messages (local to wheel service)
// ============================================================================

// Error context messages for wrapped errors
const (
	ErrContextFailedToGetWheel          = "failed to get wheel"
	ErrContextFailedToListWheels        = "failed to list wheels"
	ErrContextFailedToCreateWheel       = "failed to create wheel"
	ErrContextFailedToDeleteWheel       = "failed to delete wheel"
	ErrContextFailedToBeginTx           = "failed to begin transaction"
	ErrContextFailedToLockWheel         = "failed to lock wheel"
	ErrContextFailedToSaveParticipants  = "failed to save participants"
	ErrContextFailedToSaveWheel         = "failed to save wheel"
	ErrContextFailedToCommitTx          = "failed to commit wheel transaction"
	ErrContextFailedToAddParticipant    = "failed to add participant"
	ErrContextFailedToDeleteParticipant = "failed to delete participant"
	ErrContextFailedToUpdateParticipant = "failed to update participant"
	ErrContextFailedToSizeSubWheel      = "failed to size sub-wheel"
	ErrContextRetriesExhausted          = "gave up after repeated concurrent modifications"
)

// Validation error messages
const (
	ErrMsgNameRequired      = "name is required"
	ErrMsgNameTooLong       = "name is too long"
	ErrMsgDuplicateInWheel  = "duplicate participant name in request"
	ErrMsgUnknownResetStrat = "unknown reset strategy"
)
