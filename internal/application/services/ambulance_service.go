package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/golang/geo/s2"
	"github.com/google/uuid"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/domain/repositories"
	apperrors "github.com/udhe/healthintelligence/backend/pkg/errors"
)

const earthRadiusKm = 6371.0

// AmbulanceSubmission is one position/status update for a vehicle.
type AmbulanceSubmission struct {
	VehicleID string  `json:"vehicle_id"`
	Ward      string  `json:"ward"`
	Status    string  `json:"status"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AmbulanceService tracks municipal ambulances and answers nearest-K
// dispatch queries.
type AmbulanceService struct {
	repo repositories.AmbulanceRepository
}

func NewAmbulanceService(repo repositories.AmbulanceRepository) *AmbulanceService {
	return &AmbulanceService{repo: repo}
}

// Update upserts the position and status of a vehicle.
func (s *AmbulanceService) Update(ctx context.Context, sub AmbulanceSubmission) (*entities.Ambulance, error) {
	if strings.TrimSpace(sub.VehicleID) == "" {
		return nil, apperrors.NewValidationError("vehicle_id is required")
	}
	status := entities.AmbulanceStatus(strings.ToUpper(strings.TrimSpace(sub.Status)))
	if !entities.ValidAmbulanceStatus(status) {
		return nil, apperrors.NewValidationErrorf("unknown ambulance status %q", sub.Status)
	}
	if sub.Latitude < -90 || sub.Latitude > 90 || sub.Longitude < -180 || sub.Longitude > 180 {
		return nil, apperrors.NewValidationError("coordinates out of range")
	}

	ambulance := &entities.Ambulance{
		ID:        uuid.New().String(),
		VehicleID: strings.TrimSpace(sub.VehicleID),
		Ward:      strings.TrimSpace(sub.Ward),
		Status:    status,
		Location: entities.Location{
			Latitude:  sub.Latitude,
			Longitude: sub.Longitude,
		},
		LastUpdated: time.Now().UTC(),
	}

	if err := s.repo.Upsert(ctx, ambulance); err != nil {
		return nil, err
	}
	return ambulance, nil
}

// List returns ambulances, optionally filtered by ward.
func (s *AmbulanceService) List(ctx context.Context, ward string) ([]*entities.Ambulance, error) {
	return s.repo.List(ctx, repositories.AmbulanceFilter{Ward: ward})
}

// Nearest returns the k available ambulances closest to a point,
// nearest first with vehicle id as the tie-break.
func (s *AmbulanceService) Nearest(ctx context.Context, lat, lng float64, k int) ([]entities.AmbulanceDistance, error) {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, apperrors.NewValidationError("coordinates out of range")
	}
	if k <= 0 {
		k = 3
	}

	available, err := s.repo.List(ctx, repositories.AmbulanceFilter{Status: entities.AmbulanceAvailable})
	if err != nil {
		return nil, err
	}

	ranked := make([]entities.AmbulanceDistance, 0, len(available))
	for _, a := range available {
		ranked = append(ranked, entities.AmbulanceDistance{
			Ambulance:  a,
			DistanceKm: haversineKm(lat, lng, a.Location.Latitude, a.Location.Longitude),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].DistanceKm != ranked[j].DistanceKm {
			return ranked[i].DistanceKm < ranked[j].DistanceKm
		}
		return ranked[i].Ambulance.VehicleID < ranked[j].Ambulance.VehicleID
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked, nil
}

// haversineKm is the great-circle distance between two points in
// kilometers.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return math.Round(p1.Distance(p2).Radians()*earthRadiusKm*1000) / 1000
}
