package handlers

import (
	"net/http"

	"github.com/udhe/healthintelligence/backend/internal/application/services"
)

// ReportHandler serves the composite city report.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// GetCityReport handles GET /api/reports/city
func (h *ReportHandler) GetCityReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.CityReport(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}
