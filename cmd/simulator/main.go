package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Clinical stream simulator. Posts generated transactions and status
// snapshots to a running API instance so the signal engine has live
// data to chew on during demos.
//
// Modes:
//
//	steady   - background trickle of routine cases and vaccinations
//	outbreak - dengue case surge concentrated in one ward
//	scarcity - near-zero bed availability plus a high admission rate

var facilities = []struct {
	ID   string
	Ward string
}{
	{"HSP123", "Ward-12"},
	{"HSP002", "Ward-05"},
	{"PHC001", "Ward-05"},
	{"PHC002", "Ward-03"},
}

var steadyIndicators = []string{
	"Consultation",
	"New Malaria Cases",
	"Child Immunisation OPV3",
	"Bone Fracture",
}

var departments = []string{"OPD", "Orthopedics", "Neurology", "Pediatrics"}

func main() {
	var mode string
	var apiURL string
	var interval time.Duration

	flag.StringVar(&mode, "mode", "steady", "simulation mode: steady, outbreak, scarcity")
	flag.StringVar(&apiURL, "api", "http://localhost:8080", "base URL of the API")
	flag.DurationVar(&interval, "interval", 2*time.Second, "delay between posts in steady mode")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := &http.Client{Timeout: 10 * time.Second}

	switch mode {
	case "steady":
		runSteady(ctx, client, apiURL, interval)
	case "outbreak":
		runOutbreak(ctx, client, apiURL)
	case "scarcity":
		runScarcity(ctx, client, apiURL)
	default:
		log.Fatalf("unknown mode %q (want steady, outbreak or scarcity)", mode)
	}
}

func runSteady(ctx context.Context, client *http.Client, apiURL string, interval time.Duration) {
	log.Printf("steady mode: posting a transaction every %s", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("simulation stopped")
			return
		case <-ticker.C:
			facility := facilities[rand.Intn(len(facilities))]
			kind := "CASE"
			if rand.Intn(4) == 0 {
				kind = "VACCINATION"
			}
			payload := map[string]interface{}{
				"facility_id":      facility.ID,
				"transaction_type": kind,
				"department":       departments[rand.Intn(len(departments))],
				"indicator_name":   steadyIndicators[rand.Intn(len(steadyIndicators))],
				"count":            1,
				"month":            time.Now().Month().String(),
			}
			post(ctx, client, apiURL+"/api/ingest/transactions", payload)
		}
	}
}

// runOutbreak injects a dengue surge into one ward: enough weighted
// cases inside the growth window to push its composite score past the
// critical cutoff.
func runOutbreak(ctx context.Context, client *http.Client, apiURL string) {
	log.Println("outbreak mode: injecting dengue surge into Ward-05")

	for i := 0; i < 60; i++ {
		if ctx.Err() != nil {
			return
		}
		payload := map[string]interface{}{
			"facility_id":      "HSP002",
			"transaction_type": "CASE",
			"department":       "OPD",
			"indicator_name":   "New Dengue Cases",
			"count":            5,
			"month":            time.Now().Month().String(),
		}
		post(ctx, client, apiURL+"/api/ingest/transactions", payload)
	}

	log.Println("surge injected; check /api/risk/wards for Ward-05")
}

// runScarcity reports near-zero bed availability and a high admission
// rate so the capacity forecast flips to crisis.
func runScarcity(ctx context.Context, client *http.Client, apiURL string) {
	log.Println("scarcity mode: driving HSP002 into bed crisis")

	status := map[string]interface{}{
		"facility_id":            "HSP002",
		"beds_available":         1,
		"icu_available":          0,
		"ventilators_available":  1,
		"oxygen_units_available": 2,
		"medicine_stock_status":  "Critical",
	}
	post(ctx, client, apiURL+"/api/facility-status", status)

	for i := 0; i < 15; i++ {
		if ctx.Err() != nil {
			return
		}
		payload := map[string]interface{}{
			"facility_id":      "HSP002",
			"transaction_type": "CASE",
			"department":       "OPD",
			"indicator_name":   "New Malaria Cases",
			"count":            8,
			"month":            time.Now().Month().String(),
		}
		post(ctx, client, apiURL+"/api/ingest/transactions", payload)
	}

	log.Println("crisis injected; check /api/predictions/facilities/HSP002/beds")
}

func post(ctx context.Context, client *http.Client, url string, payload map[string]interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("marshal failed: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Printf("request build failed: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		log.Printf("post to %s failed: %v", url, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var msg json.RawMessage
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		log.Printf("post to %s returned %d: %s", url, resp.StatusCode, msg)
		return
	}
	fmt.Printf("posted %s -> %d\n", url, resp.StatusCode)
}
