package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SpinWheel_Go/internal/domain"
	"github.com/osse101/SpinWheel_Go/internal/selection"
	"github.com/osse101/SpinWheel_Go/internal/wheel"
)

// WheelHandler serves the wheel API
type WheelHandler struct {
	service wheel.Service
}

// NewWheelHandler creates a new wheel handler
func NewWheelHandler(service wheel.Service) *WheelHandler {
	return &WheelHandler{service: service}
}

// ---- request types ----

// SettingsRequest is a partial settings update; omitted fields are unchanged
type SettingsRequest struct {
	AllowRigging            *bool    `json:"allow_rigging"`
	RequireReasonForRigging *bool    `json:"require_reason_for_rigging"`
	DefaultWeight           *float64 `json:"default_weight" validate:"omitempty,weight"`
}

// ParticipantRequest adds one participant. Weight defaults to the wheel's default weight.
type ParticipantRequest struct {
	Name   string   `json:"name" validate:"notblank,max=100,excludesall=\x00\n\r\t"`
	Weight *float64 `json:"weight" validate:"omitempty,weight"`
}

// CreateWheelRequest creates a wheel with optional starting participants
type CreateWheelRequest struct {
	Name         string               `json:"name" validate:"notblank,max=100,excludesall=\x00\n\r\t"`
	Description  string               `json:"description" validate:"max=500"`
	Settings     SettingsRequest      `json:"settings"`
	Participants []ParticipantRequest `json:"participants" validate:"max=1000,dive"`
}

// UpdateWeightRequest is a manual weight edit
type UpdateWeightRequest struct {
	Weight *float64 `json:"weight" validate:"required,weight"`
}

// SpinRequest selects between a preview and an applied spin
type SpinRequest struct {
	ApplyChanges bool `json:"apply_changes"`
}

// RigRequest forces the next applied spin
type RigRequest struct {
	TargetParticipantID uuid.UUID `json:"target_participant_id" validate:"required"`
	Hidden              bool      `json:"hidden"`
	Reason              string    `json:"reason" validate:"max=500"`
	SetBy               string    `json:"set_by" validate:"max=100"`
}

// ---- response types ----

// WheelResponse is the public view of a wheel. Hidden rigs are omitted.
type WheelResponse struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description,omitempty"`
	Participants []domain.Participant `json:"participants"`
	Rigging      *RigResponse         `json:"rigging,omitempty"`
	TotalSpins   int                  `json:"total_spins"`
	Settings     domain.WheelSettings `json:"settings"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// RigResponse describes a pending rig
type RigResponse struct {
	TargetParticipantID uuid.UUID `json:"target_participant_id"`
	Hidden              bool      `json:"hidden"`
	Reason              string    `json:"reason,omitempty"`
	SetBy               string    `json:"set_by,omitempty"`
	SetAt               time.Time `json:"set_at"`
}

// ProbabilitiesResponse lists each participant's chance on an unrigged spin
type ProbabilitiesResponse struct {
	WheelID       uuid.UUID                `json:"wheel_id"`
	Probabilities []domain.ParticipantOdds `json:"probabilities"`
}

func newWheelResponse(w *domain.Wheel) WheelResponse {
	resp := WheelResponse{
		ID:           w.ID,
		Name:         w.Name,
		Description:  w.Description,
		Participants: w.Participants,
		TotalSpins:   w.TotalSpins,
		Settings:     w.Settings,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
	if resp.Participants == nil {
		resp.Participants = []domain.Participant{}
	}
	if selection.IsVisibleRig(w) {
		resp.Rigging = newRigResponse(w.Rigging)
	}
	return resp
}

func newRigResponse(r *domain.Rigging) *RigResponse {
	return &RigResponse{
		TargetParticipantID: r.TargetParticipantID,
		Hidden:              r.Hidden,
		Reason:              r.Reason,
		SetBy:               r.SetBy,
		SetAt:               r.SetAt,
	}
}

func (req SettingsRequest) toInput() wheel.SettingsInput {
	return wheel.SettingsInput{
		AllowRigging:            req.AllowRigging,
		RequireReasonForRigging: req.RequireReasonForRigging,
		DefaultWeight:           req.DefaultWeight,
	}
}

// ---- wheel management ----

// HandleCreateWheel creates a wheel
// @Summary Create wheel
// @Description Creates a wheel with optional settings and starting participants
// @Tags wheels
// @Accept json
// @Produce json
// @Param request body CreateWheelRequest true "Wheel definition"
// @Success 201 {object} WheelResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/wheels [post]
func (h *WheelHandler) HandleCreateWheel(w http.ResponseWriter, r *http.Request) {
	var req CreateWheelRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create wheel"); err != nil {
		return
	}

	input := wheel.CreateWheelInput{
		Name:        req.Name,
		Description: req.Description,
		Settings:    req.Settings.toInput(),
	}
	for _, p := range req.Participants {
		input.Participants = append(input.Participants, wheel.ParticipantInput{Name: p.Name, Weight: p.Weight})
	}

	created, err := h.service.CreateWheel(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, "Create wheel", err)
		return
	}

	respondJSON(w, http.StatusCreated, newWheelResponse(created))
}

// HandleListWheels lists all wheels
// @Summary List wheels
// @Tags wheels
// @Produce json
// @Success 200 {array} WheelResponse
// @Router /api/v1/wheels [get]
func (h *WheelHandler) HandleListWheels(w http.ResponseWriter, r *http.Request) {
	wheels, err := h.service.ListWheels(r.Context())
	if err != nil {
		respondServiceError(w, r, "List wheels", err)
		return
	}

	resp := make([]WheelResponse, 0, len(wheels))
	for i := range wheels {
		resp = append(resp, newWheelResponse(&wheels[i]))
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleGetWheel returns one wheel with its participants
// @Summary Get wheel
// @Tags wheels
// @Produce json
// @Param wheelID path string true "Wheel ID"
// @Success 200 {object} WheelResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/wheels/{wheelID} [get]
func (h *WheelHandler) HandleGetWheel(w http.ResponseWriter, r *http.Request) {
	wheelID, ok := GetUUIDParam(r, w, ParamWheelID, ErrMsgInvalidWheelID)
	if !ok {
		return
	}

	found, err := h.service.GetWheel(r.Context(), wheelID)
	if err != nil {
		respondServiceError(w, r, "Get wheel", err)
		return
	}

	respondJSON(w, http.StatusOK, newWheelResponse(found))
}

// HandleDeleteWheel deletes a wheel and its participants
// @Summary Delete wheel
// @Tags wheels
// @Param wheelID path string true "Wheel ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/wheels/{wheelID} [delete]
func (h *WheelHandler) HandleDeleteWheel(w http.ResponseWriter, r *http.Request) {
	wheelID, ok := GetUUIDParam(r, w, ParamWheelID, ErrMsgInvalidWheelID)
	if !ok {
		return
	}

	if err := h.service.DeleteWheel(r.Context(), wheelID); err != nil {
		respondServiceError(w, r, "Delete wheel", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgWheelDeleted})
}

// HandleUpdateSettings changes rigging settings and the default weight
// @Summary Update wheel settings
// @Tags wheels
// @Accept json
// @Produce json
// @Param wheelID path string true "Wheel ID"
// @Param request body SettingsRequest true "Settings to change"
// @Success 200 {object} WheelResponse
// @Router /api/v1/wheels/{wheelID}/settings [patch]
func (h *WheelHandler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	wheelID, ok := GetUUIDParam(r, w, ParamWheelID, ErrMsgInvalidWheelID)
	if !ok {
		return
	}

	var req SettingsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update settings"); err != nil {
		return
	}

	updated, err := h.service.UpdateSettings(r.Context(), wheelID, req.toInput())
	if err != nil {
		respondServiceError(w, r, "Update settings", err)
		return
	}

	respondJSON(w, http.StatusOK, newWheelResponse(updated))
}

// ---- participants ----

// HandleAddParticipant adds a participant to a wheel
// @Summary Add participant
// @Tags participants
// @Accept json
// @Produce json
// @Param wheelID path string true "Wheel ID"
// @Param request body ParticipantRequest true "Participant"
// @Success 201 {object} domain.Participant
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/wheels/{wheelID}/participants [post]
func (h *WheelHandler) HandleAddParticipant(w http.ResponseWriter, r *http.Request) {
	wheelID, ok := GetUUIDParam(r, w, ParamWheelID, ErrMsgInvalidWheelID)
	if !ok {
		return
	}

	var req ParticipantRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add participant"); err != nil {
		return
	}

	p, err := h.service.AddParticipant(r.Context(), wheelID, wheel.ParticipantInput{Name: req.Name, Weight: req.Weight})
	if err != nil {
		respondServiceError(w, r, "Add participant", err)
		return
	}

	respondJSON(w, http.StatusCreated, p)
}

// HandleUpdateParticipantWeight sets a participant's weight and baseline
// @Summary Edit participant weight
// @Tags participants
// @Accept json
// @Produce json
// @Param wheelID path string true "Wheel ID"
// @Param participantID path string true "Participant ID"
// @Param request body UpdateWeightRequest true "New weight"
// @Success 200 {object} domain.Participant
// @Router /api/v1/wheels/{wheelID}/participants/{participantID} [patch]
func (h *WheelHandler) HandleUpdateParticipantWeight(w http.ResponseWriter, r *http.Request) {
	wheelID, ok := GetUUIDParam(r, w, ParamWheelID, ErrMsgInvalidWheelID)
	if !ok {
		return
	}
	participantID, ok := GetUUIDParam(r, w, ParamParticipantID, ErrMsgInvalidParticipantID)
	if !ok {
		return
	}

	var req UpdateWeightRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update weight"); err != nil {
		return
	}

	p, err := h.service.UpdateParticipantWeight(r.Context(), wheelID, participantID, *req.Weight)
	if err != nil {
		respondServiceError(w, r, "Update weight", err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

// HandleRemoveParticipant removes a participant and rebalances the wheel
// @Summary Remove participant
// @Tags participants
// @Produce json
// @Param wheelID path string true "Wheel ID"
// @Param participantID path string true "Participant ID"
// @Success 200 {object} WheelResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/wheels/{wheelID}/participants/{participantID} [delete]
func (h *WheelHandler) HandleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	wheelID, ok := GetUUIDParam(r, w, ParamWheelID, ErrMsgInvalidWheelID)
	if !ok {
		return
	}
	participantID, ok := GetUUIDParam(r, w, ParamParticipantID, ErrMsgInvalidParticipantID)
	if !ok {
		return
	}

	updated, err := h.service.RemoveParticipant(r.Context(), wheelID, participantID)
	if err != nil {
		respondServiceError(w, r, "Remove participant", err)
		return
	}

	respondJSON(w, http.StatusOK, newWheelResponse(updated))
}

// ---- engine ----

// HandleSpin spins the wheel. An empty body is a preview.
// @Summary Spin wheel
// @Description Picks a participant. With apply_changes the pick is recorded and weight redistributed.
// @Tags engine
// @Accept json
// @Produce json
// @Param wheelID path string true "Wheel ID"
// @Param request body SpinRequest false "Spin options"
// @Success 200 {object} domain.SpinResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/wheels/{wheelID}/spin [post]
func (h *WheelHandler) HandleSpin(w http.ResponseWriter, r *http.Request) {
	wheelID, ok := GetUUIDParam(r, w, ParamWheelID, ErrMsgInvalidWheelID)
	if !ok {
		return
	}

	var req SpinRequest
	if r.ContentLength != 0 {
		if err := DecodeAndValidateRequest(r, w, &req, "Spin"); err != nil {
			return
		}
	}

	result, err := h.service.Spin(r.Context(), wheelID, req.ApplyChanges)
	if err != nil {
		respondServiceError(w, r, "Spin", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleProbabilities previews the odds of an unrigged spin
// @Summary Preview odds
// @Tags engine
// @Produce json
// @Param wheelID path string true "Wheel ID"
// @Success 200 {object} ProbabilitiesResponse
// @Router /api/v1/wheels/{wheelID}/probabilities [get]
func (h *WheelHandler) HandleProbabilities(w http.ResponseWriter, r *http.Request) {
	wheelID, ok := GetUUIDParam(r, w, ParamWheelID, ErrMsgInvalidWheelID)
	if !ok {
		return
	}

	odds, err := h.service.Probabilities(r.Context(), wheelID)
	if err != nil {
		respondServiceError(w, r, "Probabilities", err)
		return
	}

	respondJSON(w, http.StatusOK, ProbabilitiesResponse{WheelID: wheelID, Probabilities: odds})
}

// HandleReset restores baseline weights and clears counters and the rig
// @Summary Reset wheel
// @Tags engine
// @Produce json
// @Param wheelID path string true "Wheel ID"
// @Success 200 {object} WheelResponse
// @Router /api/v1/wheels/{wheelID}/reset [post]
func (h *WheelHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	wheelID, ok := GetUUIDParam(r, w, ParamWheelID, ErrMsgInvalidWheelID)
	if !ok {
		return
	}

	reset, err := h.service.Reset(r.Context(), wheelID)
	if err != nil {
		respondServiceError(w, r, "Reset", err)
		return
	}

	respondJSON(w, http.StatusOK, newWheelResponse(reset))
}

// HandleSetRig forces the next applied spin
// @Summary Rig wheel
// @Tags rigging
// @Accept json
// @Produce json
// @Param wheelID path string true "Wheel ID"
// @Param request body RigRequest true "Rig"
// @Success 200 {object} RigResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/wheels/{wheelID}/rig [post]
func (h *WheelHandler) HandleSetRig(w http.ResponseWriter, r *http.Request) {
	wheelID, ok := GetUUIDParam(r, w, ParamWheelID, ErrMsgInvalidWheelID)
	if !ok {
		return
	}

	var req RigRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set rig"); err != nil {
		return
	}

	rigged, err := h.service.SetRig(r.Context(), wheelID, wheel.RigInput{
		TargetParticipantID: req.TargetParticipantID,
		Hidden:              req.Hidden,
		Reason:              req.Reason,
		SetBy:               req.SetBy,
	})
	if err != nil {
		respondServiceError(w, r, "Set rig", err)
		return
	}

	// The organizer who set the rig gets it back, hidden or not
	respondJSON(w, http.StatusOK, newRigResponse(rigged.Rigging))
}

// HandleClearRig drops any pending rig
// @Summary Clear rig
// @Tags rigging
// @Produce json
// @Param wheelID path string true "Wheel ID"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/wheels/{wheelID}/rig [delete]
func (h *WheelHandler) HandleClearRig(w http.ResponseWriter, r *http.Request) {
	wheelID, ok := GetUUIDParam(r, w, ParamWheelID, ErrMsgInvalidWheelID)
	if !ok {
		return
	}

	if _, err := h.service.ClearRig(r.Context(), wheelID); err != nil {
		respondServiceError(w, r, "Clear rig", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRigCleared})
}
