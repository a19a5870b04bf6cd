package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/udhe/healthintelligence/backend/internal/application/services"
)

// StatusHandler serves facility status reporting and reads.
type StatusHandler struct {
	service *services.FacilityStatusService
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(service *services.FacilityStatusService) *StatusHandler {
	return &StatusHandler{service: service}
}

// ReportStatus handles POST /api/facility-status
func (h *StatusHandler) ReportStatus(w http.ResponseWriter, r *http.Request) {
	var sub services.StatusSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	status, err := h.service.Report(r.Context(), sub)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, status)
}

// GetStatus handles GET /api/facility-status/{id}
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	facilityID := r.PathValue("id")
	if facilityID == "" {
		respondWithError(w, http.StatusBadRequest, "facility ID is required")
		return
	}

	status, err := h.service.Current(r.Context(), facilityID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, status)
}

// GetTotals handles GET /api/facility-status/totals
func (h *StatusHandler) GetTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.Totals(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, totals)
}
