package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udhe/healthintelligence/backend/internal/api/handlers"
	"github.com/udhe/healthintelligence/backend/internal/application/services"
	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
)

func newAmbulanceHandler(repo *fakeAmbulanceRepo) *handlers.AmbulanceHandler {
	return handlers.NewAmbulanceHandler(services.NewAmbulanceService(repo))
}

func TestAmbulanceHandler_UpdateAmbulance(t *testing.T) {
	repo := &fakeAmbulanceRepo{}
	handler := newAmbulanceHandler(repo)

	body := `{"vehicle_id":"AMB-101","ward":"W-01","status":"available","latitude":17.66,"longitude":75.91}`
	req := httptest.NewRequest("POST", "/api/ambulances", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.UpdateAmbulance(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, repo.ambulances, 1)
	assert.Equal(t, entities.AmbulanceAvailable, repo.ambulances[0].Status)
}

func TestAmbulanceHandler_UpdateAmbulance_BadStatus(t *testing.T) {
	handler := newAmbulanceHandler(&fakeAmbulanceRepo{})

	body := `{"vehicle_id":"AMB-101","status":"PARKED","latitude":17.66,"longitude":75.91}`
	req := httptest.NewRequest("POST", "/api/ambulances", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.UpdateAmbulance(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAmbulanceHandler_GetNearest(t *testing.T) {
	repo := &fakeAmbulanceRepo{ambulances: []*entities.Ambulance{
		{VehicleID: "AMB-101", Status: entities.AmbulanceAvailable, Location: entities.Location{Latitude: 17.66, Longitude: 75.91}},
		{VehicleID: "AMB-102", Status: entities.AmbulanceAvailable, Location: entities.Location{Latitude: 17.70, Longitude: 75.95}},
		{VehicleID: "AMB-103", Status: entities.AmbulanceBusy, Location: entities.Location{Latitude: 17.66, Longitude: 75.91}},
	}}
	handler := newAmbulanceHandler(repo)

	req := httptest.NewRequest("GET", "/api/ambulances/nearest?lat=17.66&lng=75.91&k=2", nil)
	w := httptest.NewRecorder()

	handler.GetNearest(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Count      int                           `json:"count"`
		Ambulances []*entities.AmbulanceDistance `json:"ambulances"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Equal(t, 2, response.Count)
	assert.Equal(t, "AMB-101", response.Ambulances[0].Ambulance.VehicleID)
}

func TestAmbulanceHandler_GetNearest_BadCoordinates(t *testing.T) {
	handler := newAmbulanceHandler(&fakeAmbulanceRepo{})

	req := httptest.NewRequest("GET", "/api/ambulances/nearest?lat=abc&lng=75.91", nil)
	w := httptest.NewRecorder()

	handler.GetNearest(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAmbulanceHandler_ListAmbulances_WardFilter(t *testing.T) {
	repo := &fakeAmbulanceRepo{ambulances: []*entities.Ambulance{
		{VehicleID: "AMB-101", Ward: "W-01", Status: entities.AmbulanceAvailable},
		{VehicleID: "AMB-102", Ward: "W-02", Status: entities.AmbulanceAvailable},
	}}
	handler := newAmbulanceHandler(repo)

	req := httptest.NewRequest("GET", "/api/ambulances?ward=W-01", nil)
	w := httptest.NewRecorder()

	handler.ListAmbulances(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
}
