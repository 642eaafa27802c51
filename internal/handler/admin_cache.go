package handler

import (
	"net/http"

	"github.com/osse101/SpinWheel_Go/internal/wheel"
)

// AdminCacheHandler handles admin cache operations
type AdminCacheHandler struct {
	wheelService wheel.Service
}

// NewAdminCacheHandler creates a new admin cache handler
func NewAdminCacheHandler(wheelService wheel.Service) *AdminCacheHandler {
	return &AdminCacheHandler{
		wheelService: wheelService,
	}
}

// HandleGetCacheStats returns current wheel snapshot cache statistics
// GET /api/v1/admin/cache/stats
// @Summary Get wheel cache stats
// @Description Returns hit/miss statistics of the probability preview cache
// @Tags admin
// @Produce json
// @Success 200 {object} wheel.CacheStats
// @Router /api/v1/admin/cache/stats [get]
func (h *AdminCacheHandler) HandleGetCacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.wheelService.GetCacheStats())
}
