package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Path parameter error messages
	ErrMsgInvalidWheelID       = "Invalid wheel ID"
	ErrMsgInvalidParticipantID = "Invalid participant ID"

	// Admin error messages
	ErrMsgGatherMetricsFailed = "Failed to gather metrics"
)

// Success messages for API responses
const (
	MsgWheelDeleted = "Wheel deleted"
	MsgRigCleared   = "Rig cleared"
)

// Path parameter names registered on the router
const (
	ParamWheelID       = "wheelID"
	ParamParticipantID = "participantID"
)
