package handlers

import (
	"net/http"

	"github.com/udhe/healthintelligence/backend/internal/application/services"
)

// PredictionHandler serves the capacity forecast endpoints.
type PredictionHandler struct {
	service *services.PredictionService
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(service *services.PredictionService) *PredictionHandler {
	return &PredictionHandler{service: service}
}

// GetBedForecast handles GET /api/predictions/facilities/{id}/beds
func (h *PredictionHandler) GetBedForecast(w http.ResponseWriter, r *http.Request) {
	facilityID := r.PathValue("id")
	if facilityID == "" {
		respondWithError(w, http.StatusBadRequest, "facility ID is required")
		return
	}

	forecast, err := h.service.ForecastBeds(r.Context(), facilityID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, forecast)
}

// GetICUForecast handles GET /api/predictions/facilities/{id}/icu
func (h *PredictionHandler) GetICUForecast(w http.ResponseWriter, r *http.Request) {
	facilityID := r.PathValue("id")
	if facilityID == "" {
		respondWithError(w, http.StatusBadRequest, "facility ID is required")
		return
	}

	forecast, err := h.service.ForecastICU(r.Context(), facilityID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, forecast)
}

// GetAllForecasts handles GET /api/predictions/facilities
func (h *PredictionHandler) GetAllForecasts(w http.ResponseWriter, r *http.Request) {
	forecasts, err := h.service.ForecastAll(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(forecasts),
		"forecasts": forecasts,
	})
}
