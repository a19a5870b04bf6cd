package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/udhe/healthintelligence/backend/internal/adapters/database"
	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/infrastructure/clients/postgres"
	"github.com/udhe/healthintelligence/backend/internal/infrastructure/observability"
	"github.com/udhe/healthintelligence/backend/pkg/config"
)

// Seeds the demo dataset: the facility registry, a month of indicator
// history, current status snapshots and a small ambulance fleet.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	observability.InitLogger("health-intelligence-seed", os.Getenv("APP_ENV"))
	logger := *observability.GetLogger()

	pgClient, err := postgres.NewClient(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				health_events,
				indicator_records,
				facility_statuses,
				ambulances,
				dead_letters,
				facilities
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	facilityRepo := database.NewFacilityAdapter(pgClient)
	indicatorRepo := database.NewIndicatorAdapter(pgClient)
	statusRepo := database.NewStatusAdapter(pgClient)
	ambulanceRepo := database.NewAmbulanceAdapter(pgClient)

	now := time.Now().UTC()

	// 1. Facility registry
	seedFacilities := []entities.Facility{
		{ID: uuid.New().String(), FacilityID: "HSP123", Name: "Solapur Civil Hospital", FacilityType: "Hospital", District: "Solapur", Subdistrict: "North", Ward: "Ward-12", Location: entities.Location{Latitude: 17.6599, Longitude: 75.9064}, IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), FacilityID: "HSP002", Name: "Pandharpur General Hospital", FacilityType: "Hospital", District: "Solapur", Subdistrict: "Pandharpur", Ward: "Ward-05", Location: entities.Location{Latitude: 17.6792, Longitude: 75.3319}, IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), FacilityID: "PHC001", Name: "Mohol Primary Health Centre", FacilityType: "PHC", District: "Solapur", Subdistrict: "Mohol", Ward: "Ward-05", Location: entities.Location{Latitude: 17.8150, Longitude: 75.6621}, IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), FacilityID: "PHC002", Name: "Malshiras Primary Health Centre", FacilityType: "PHC", District: "Solapur", Subdistrict: "Malshiras", Ward: "Ward-03", Location: entities.Location{Latitude: 17.8681, Longitude: 74.9108}, IsActive: true, CreatedAt: now},
	}
	for _, f := range seedFacilities {
		facility := f
		if err := facilityRepo.Create(ctx, &facility); err != nil {
			log.Printf("Failed to create facility %s: %v", facility.FacilityID, err)
		} else {
			log.Printf("Created facility %s (%s)", facility.FacilityID, facility.Ward)
		}
	}

	// 2. A month of indicator history. The dengue series carries a
	// visible surge in the newest period so the outbreak endpoints
	// return something interesting out of the box.
	type series struct {
		district    string
		subdistrict string
		indicator   string
		codeSection string
		values      []float64
	}
	year := now.Year()
	monthBase := int(now.Month()) - 3
	histories := []series{
		{"Solapur", "Mohol", "New Dengue Cases", "M11", []float64{80, 95, 90, 310}},
		{"Solapur", "Pandharpur", "New Malaria Cases", "M11", []float64{120, 110, 125, 130}},
		{"Solapur", "Malshiras", "New cases of PW with hypertension detected", "M1", []float64{5, 7, 6, 8}},
		{"Solapur", "Pandharpur", "Total number of pregnant women registered for ANC", "M1", []float64{85, 88, 82, 90}},
		{"Solapur", "Mohol", "Number of newborns having weight less than 2.5 kg", "M4", []float64{12, 10, 14, 11}},
	}
	records := 0
	for _, h := range histories {
		for i, v := range h.values {
			period := monthBase + i
			if period < 1 {
				period += 12
			}
			record := &entities.IndicatorRecord{
				ID:           uuid.New().String(),
				District:     h.district,
				Subdistrict:  h.subdistrict,
				RawIndicator: h.indicator,
				Indicator:    h.indicator,
				CodeSection:  h.codeSection,
				TotalCases:   v,
				Period:       period,
				Year:         year,
				Timestamp:    now.AddDate(0, i-len(h.values)+1, 0),
			}
			if err := indicatorRepo.Create(ctx, record); err != nil {
				log.Printf("Failed to create indicator record: %v", err)
				continue
			}
			records++
		}
	}
	log.Printf("Created %d indicator records", records)

	// 3. Current status snapshots
	statuses := []entities.FacilityStatus{
		{ID: uuid.New().String(), FacilityID: "HSP123", BedsAvailable: 42, ICUAvailable: 8, VentilatorsAvailable: 5, OxygenUnitsAvailable: 20, MedicineStock: entities.StockAdequate, Timestamp: now},
		{ID: uuid.New().String(), FacilityID: "HSP002", BedsAvailable: 15, ICUAvailable: 3, VentilatorsAvailable: 2, OxygenUnitsAvailable: 8, MedicineStock: entities.StockLow, Timestamp: now},
		{ID: uuid.New().String(), FacilityID: "PHC001", BedsAvailable: 6, ICUAvailable: 0, VentilatorsAvailable: 0, OxygenUnitsAvailable: 4, MedicineStock: entities.StockAdequate, Timestamp: now},
	}
	for _, s := range statuses {
		status := s
		if err := statusRepo.Create(ctx, &status); err != nil {
			log.Printf("Failed to create status for %s: %v", status.FacilityID, err)
		}
	}
	log.Printf("Created %d status snapshots", len(statuses))

	// 4. Ambulance fleet
	ambulances := []entities.Ambulance{
		{ID: uuid.New().String(), VehicleID: "AMB-101", Ward: "Ward-12", Status: entities.AmbulanceAvailable, Location: entities.Location{Latitude: 17.6605, Longitude: 75.9040}, LastUpdated: now},
		{ID: uuid.New().String(), VehicleID: "AMB-102", Ward: "Ward-05", Status: entities.AmbulanceAvailable, Location: entities.Location{Latitude: 17.6810, Longitude: 75.3300}, LastUpdated: now},
		{ID: uuid.New().String(), VehicleID: "AMB-103", Ward: "Ward-05", Status: entities.AmbulanceBusy, Location: entities.Location{Latitude: 17.8140, Longitude: 75.6600}, LastUpdated: now},
	}
	for _, a := range ambulances {
		ambulance := a
		if err := ambulanceRepo.Upsert(ctx, &ambulance); err != nil {
			log.Printf("Failed to upsert ambulance %s: %v", ambulance.VehicleID, err)
		}
	}
	log.Printf("Upserted %d ambulances", len(ambulances))

	log.Println("Seeding complete")
}
