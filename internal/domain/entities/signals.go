package entities

import "time"

// Outbreak is one flagged (geography, indicator, period) row from batch
// spike detection, ordered by surge percent descending when returned in
// a list.
type Outbreak struct {
	District     string  `json:"district"`
	Indicator    string  `json:"indicator_name"`
	Period       int     `json:"period"`
	Month        string  `json:"month"`
	TotalCases   float64 `json:"total_cases"`
	Baseline     float64 `json:"baseline"`
	SurgePercent float64 `json:"surge_percent"`
}

// SignalClass is a coarse classification of what an indicator measures,
// used to explain flagged rows to responders.
type SignalClass string

const (
	SignalDisease     SignalClass = "DISEASE"
	SignalActivity    SignalClass = "ACTIVITY"
	SignalOperational SignalClass = "OPERATIONAL"
)

// MaternalRisk is the per-geography maternal risk ranking row.
type MaternalRisk struct {
	District       string  `json:"district"`
	SevereAnemia   float64 `json:"severe_anemia"`
	Hypertension   float64 `json:"hypertension"`
	LowBirthWeight float64 `json:"low_birth_weight"`
	// RiskEvents is the maximum of the three indicator sums, a proxy for
	// the vulnerable population that avoids double counting one woman
	// across overlapping indicators.
	RiskEvents  float64 `json:"risk_events"`
	Pregnancies float64 `json:"pregnancies"`
	RiskScore   float64 `json:"risk_score"`
	RiskPer1000 float64 `json:"risk_per_1000"`
}

// CapacityForecast is the resource-exhaustion projection for a facility.
// HoursRemaining is always finite; the 999 sentinel stands in for
// "no exhaustion pressure".
type CapacityForecast struct {
	FacilityID       string  `json:"facility_id"`
	Resource         string  `json:"resource"`
	AvgAdmissionRate float64 `json:"avg_admission_rate"`
	Projected24h     int     `json:"projected_24h_admissions"`
	Available        int     `json:"available"`
	HoursRemaining   float64 `json:"hours_remaining"`
	CrisisLikely     bool    `json:"crisis_likely"`
}

// RiskLevel is the composite risk classification for a ward.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// WardRisk is the 0-100 composite risk score for a ward.
type WardRisk struct {
	Ward        string    `json:"ward"`
	RiskScore   float64   `json:"risk_score"`
	RiskLevel   RiskLevel `json:"risk_level"`
	RecentCases int       `json:"recent_cases"`
	ICUPressure float64   `json:"icu_pressure"`
	GrowthRate  float64   `json:"growth_rate"`
}

// CityReport is the composite operational snapshot served to dashboards.
type CityReport struct {
	Timestamp       time.Time      `json:"timestamp"`
	TotalFacilities int            `json:"total_facilities"`
	ResourceTotals  ResourceTotals `json:"resource_totals"`
	OutbreakCount   int            `json:"outbreak_count"`
	TopOutbreaks    []Outbreak     `json:"top_outbreaks"`
	CrisisCount     int            `json:"crisis_count"`
	TopWardRisks    []WardRisk     `json:"top_ward_risks"`
}
