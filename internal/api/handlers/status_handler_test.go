package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udhe/healthintelligence/backend/internal/api/handlers"
	"github.com/udhe/healthintelligence/backend/internal/application/services"
	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
)

func newStatusHandler(statuses *fakeStatusRepo, facilities *fakeFacilityRepo) *handlers.StatusHandler {
	return handlers.NewStatusHandler(services.NewFacilityStatusService(statuses, facilities))
}

func TestStatusHandler_ReportStatus(t *testing.T) {
	statuses := &fakeStatusRepo{}
	facilities := &fakeFacilityRepo{facilities: []*entities.Facility{
		{FacilityID: "FAC-001", Ward: "W-01"},
	}}
	handler := newStatusHandler(statuses, facilities)

	body := `{"facility_id":"FAC-001","beds_available":40,"icu_available":6,"ventilators_available":3,"oxygen_units_available":12,"medicine_stock_status":"low"}`
	req := httptest.NewRequest("POST", "/api/facility-status", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.ReportStatus(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, statuses.statuses, 1)
	assert.Equal(t, entities.StockLow, statuses.statuses[0].MedicineStock)
}

func TestStatusHandler_ReportStatus_UnknownFacility(t *testing.T) {
	handler := newStatusHandler(&fakeStatusRepo{}, &fakeFacilityRepo{})

	body := `{"facility_id":"FAC-404","beds_available":40,"medicine_stock_status":"Adequate"}`
	req := httptest.NewRequest("POST", "/api/facility-status", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.ReportStatus(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusHandler_ReportStatus_NegativeCounts(t *testing.T) {
	facilities := &fakeFacilityRepo{facilities: []*entities.Facility{{FacilityID: "FAC-001"}}}
	handler := newStatusHandler(&fakeStatusRepo{}, facilities)

	body := `{"facility_id":"FAC-001","beds_available":-1,"medicine_stock_status":"Adequate"}`
	req := httptest.NewRequest("POST", "/api/facility-status", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.ReportStatus(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusHandler_GetStatus(t *testing.T) {
	statuses := &fakeStatusRepo{statuses: []*entities.FacilityStatus{
		{FacilityID: "FAC-001", BedsAvailable: 20, Timestamp: time.Now().UTC()},
	}}
	handler := newStatusHandler(statuses, &fakeFacilityRepo{})

	req := httptest.NewRequest("GET", "/api/facility-status/FAC-001", nil)
	req.SetPathValue("id", "FAC-001")
	w := httptest.NewRecorder()

	handler.GetStatus(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var status entities.FacilityStatus
	require.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	assert.Equal(t, 20, status.BedsAvailable)
}

func TestStatusHandler_GetTotals(t *testing.T) {
	now := time.Now().UTC()
	statuses := &fakeStatusRepo{statuses: []*entities.FacilityStatus{
		{FacilityID: "FAC-001", BedsAvailable: 40, ICUAvailable: 6, Timestamp: now},
		{FacilityID: "FAC-002", BedsAvailable: 25, ICUAvailable: 4, Timestamp: now},
	}}
	handler := newStatusHandler(statuses, &fakeFacilityRepo{})

	req := httptest.NewRequest("GET", "/api/facility-status/totals", nil)
	w := httptest.NewRecorder()

	handler.GetTotals(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var totals entities.ResourceTotals
	require.NoError(t, json.NewDecoder(w.Body).Decode(&totals))
	assert.Equal(t, 65, totals.TotalBeds)
	assert.Equal(t, 10, totals.TotalICU)
	assert.Equal(t, 2, totals.Facilities)
}
