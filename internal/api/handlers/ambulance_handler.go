package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/udhe/healthintelligence/backend/internal/application/services"
)

// AmbulanceHandler serves ambulance tracking and dispatch queries.
type AmbulanceHandler struct {
	service *services.AmbulanceService
}

// NewAmbulanceHandler creates a new ambulance handler
func NewAmbulanceHandler(service *services.AmbulanceService) *AmbulanceHandler {
	return &AmbulanceHandler{service: service}
}

// UpdateAmbulance handles POST /api/ambulances
func (h *AmbulanceHandler) UpdateAmbulance(w http.ResponseWriter, r *http.Request) {
	var sub services.AmbulanceSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	ambulance, err := h.service.Update(r.Context(), sub)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ambulance)
}

// ListAmbulances handles GET /api/ambulances
func (h *AmbulanceHandler) ListAmbulances(w http.ResponseWriter, r *http.Request) {
	ambulances, err := h.service.List(r.Context(), r.URL.Query().Get("ward"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":      len(ambulances),
		"ambulances": ambulances,
	})
}

// GetNearest handles GET /api/ambulances/nearest?lat=&lng=&k=
func (h *AmbulanceHandler) GetNearest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid lat parameter")
		return
	}
	lng, err := strconv.ParseFloat(query.Get("lng"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid lng parameter")
		return
	}

	k := 0
	if raw := query.Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondWithError(w, http.StatusBadRequest, "k must be a non-negative integer")
			return
		}
		k = parsed
	}

	nearest, err := h.service.Nearest(r.Context(), lat, lng, k)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":      len(nearest),
		"ambulances": nearest,
	})
}
