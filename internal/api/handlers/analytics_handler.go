package handlers

import (
	"net/http"
	"strconv"

	"github.com/udhe/healthintelligence/backend/internal/application/services"
)

// AnalyticsHandler serves the batch signal endpoints: outbreak
// detection and maternal risk ranking.
type AnalyticsHandler struct {
	outbreaks *services.OutbreakService
	maternal  *services.MaternalRiskService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(outbreaks *services.OutbreakService, maternal *services.MaternalRiskService) *AnalyticsHandler {
	return &AnalyticsHandler{outbreaks: outbreaks, maternal: maternal}
}

// GetOutbreaks handles GET /api/analytics/outbreaks
func (h *AnalyticsHandler) GetOutbreaks(w http.ResponseWriter, r *http.Request) {
	district := r.URL.Query().Get("district")

	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "year must be an integer")
			return
		}
		year = parsed
	}

	outbreaks, err := h.outbreaks.Detect(r.Context(), district, year)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(outbreaks),
		"outbreaks": outbreaks,
	})
}

// GetMaternalRisk handles GET /api/risk/maternal
func (h *AnalyticsHandler) GetMaternalRisk(w http.ResponseWriter, r *http.Request) {
	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "year must be an integer")
			return
		}
		year = parsed
	}

	risks, err := h.maternal.Rank(r.Context(), year)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(risks),
		"districts": risks,
	})
}
