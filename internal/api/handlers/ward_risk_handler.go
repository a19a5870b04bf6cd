package handlers

import (
	"net/http"

	"github.com/udhe/healthintelligence/backend/internal/application/services"
)

// WardRiskHandler serves the composite ward risk endpoints.
type WardRiskHandler struct {
	service *services.WardRiskService
}

// NewWardRiskHandler creates a new ward risk handler
func NewWardRiskHandler(service *services.WardRiskService) *WardRiskHandler {
	return &WardRiskHandler{service: service}
}

// GetAllWards handles GET /api/risk/wards
func (h *WardRiskHandler) GetAllWards(w http.ResponseWriter, r *http.Request) {
	risks, err := h.service.ScoreAllWards(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(risks),
		"wards": risks,
	})
}

// GetWard handles GET /api/risk/wards/{ward}
func (h *WardRiskHandler) GetWard(w http.ResponseWriter, r *http.Request) {
	ward := r.PathValue("ward")
	if ward == "" {
		respondWithError(w, http.StatusBadRequest, "ward is required")
		return
	}

	risk, err := h.service.ScoreWard(r.Context(), ward)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, risk)
}

// GetCriticalWards handles GET /api/risk/wards/critical
func (h *WardRiskHandler) GetCriticalWards(w http.ResponseWriter, r *http.Request) {
	risks, err := h.service.CriticalWards(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(risks),
		"wards": risks,
	})
}
