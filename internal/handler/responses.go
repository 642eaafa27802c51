package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/SpinWheel_Go/internal/domain"
	"github.com/osse101/SpinWheel_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and maps it to a user-facing response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, userMsg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, userMsg)
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	// Wheel messages
	ErrMsgWheelNotFoundError        = "Wheel not found"
	ErrMsgParticipantNotFoundError  = "Participant not found"
	ErrMsgDuplicateParticipantError = "A participant with that name is already on the wheel"
	ErrMsgEmptyWheelError           = "The wheel has no participants"
	ErrMsgLastParticipantError      = "Cannot remove the last participant of a wheel"
	ErrMsgInvalidWeightError        = "Weight must be a finite, non-negative number"
	ErrMsgInvalidInputError         = "Invalid request. Please check your inputs."

	// Rigging messages
	ErrMsgRiggingDisabledError = "Rigging is disabled for this wheel"
	ErrMsgReasonRequiredError  = "A reason is required to rig this wheel"

	// Concurrency messages
	ErrMsgBusyError = "The wheel is busy. Please try again."
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and messages
// users can act on. Anything unrecognized becomes a generic 500 so internal details
// never leak.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrWheelNotFound):
		return http.StatusNotFound, ErrMsgWheelNotFoundError
	case errors.Is(err, domain.ErrParticipantNotFound):
		return http.StatusNotFound, ErrMsgParticipantNotFoundError
	case errors.Is(err, domain.ErrDuplicateParticipant):
		return http.StatusConflict, ErrMsgDuplicateParticipantError
	case errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict, ErrMsgBusyError
	case errors.Is(err, domain.ErrEmptySet):
		return http.StatusBadRequest, ErrMsgEmptyWheelError
	case errors.Is(err, domain.ErrLastParticipant):
		return http.StatusBadRequest, ErrMsgLastParticipantError
	case errors.Is(err, domain.ErrInvalidWeight):
		return http.StatusBadRequest, ErrMsgInvalidWeightError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrRiggingDisabled):
		return http.StatusForbidden, ErrMsgRiggingDisabledError
	case errors.Is(err, domain.ErrReasonRequired):
		return http.StatusBadRequest, ErrMsgReasonRequiredError
	case errors.Is(err, domain.ErrDatabaseError), errors.Is(err, domain.ErrConnectionTimeout):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
