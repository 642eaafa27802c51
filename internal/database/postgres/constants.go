package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Wheel Operations
const (
	ErrMsgFailedToCreateWheel       = "failed to create wheel"
	ErrMsgFailedToGetWheel          = "failed to get wheel"
	ErrMsgFailedToListWheels        = "failed to list wheels"
	ErrMsgFailedToDeleteWheel       = "failed to delete wheel"
	ErrMsgFailedToSaveWheel         = "failed to save wheel"
	ErrMsgFailedToScanWheel         = "failed to scan wheel"
	ErrMsgFailedToAddParticipant    = "failed to add participant"
	ErrMsgFailedToGetParticipants   = "failed to get participants"
	ErrMsgFailedToScanParticipant   = "failed to scan participant"
	ErrMsgFailedToSaveParticipants  = "failed to save participants"
	ErrMsgFailedToUpdateParticipant = "failed to update participant"
	ErrMsgFailedToDeleteParticipant = "failed to delete participant"
)
