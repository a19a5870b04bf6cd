package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/udhe/healthintelligence/backend/internal/application/services"
)

// IngestionHandler handles the clinical data ingest endpoints.
type IngestionHandler struct {
	service *services.IngestionService
}

// NewIngestionHandler creates a new ingestion handler
func NewIngestionHandler(service *services.IngestionService) *IngestionHandler {
	return &IngestionHandler{service: service}
}

// IngestReport handles POST /api/ingest/reports
func (h *IngestionHandler) IngestReport(w http.ResponseWriter, r *http.Request) {
	var sub services.ReportSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.service.IngestReport(r.Context(), sub)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

// IngestTransaction handles POST /api/ingest/transactions
func (h *IngestionHandler) IngestTransaction(w http.ResponseWriter, r *http.Request) {
	var sub services.TransactionSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.service.IngestTransaction(r.Context(), sub)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

// RecentLogs handles GET /api/logs/recent
func (h *IngestionHandler) RecentLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	events, err := h.service.RecentEvents(r.Context(), limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(events),
		"events": events,
	})
}
