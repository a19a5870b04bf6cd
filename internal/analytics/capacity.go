package analytics

import (
	"math"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
)

// Resources the capacity forecaster knows about.
const (
	ResourceBeds = "beds"
	ResourceICU  = "icu"
)

// admissionWindowHours is the lookback over which the admission
// velocity is measured.
const admissionWindowHours = 6.0

// hoursRemainingSentinel replaces non-finite projections. The boundary
// format cannot represent infinity, and a facility with no admissions
// has no exhaustion pressure by definition.
const hoursRemainingSentinel = 999.0

// ForecastCapacity extrapolates a facility's recent admission velocity
// into an hours-until-exhaustion estimate for one resource. admissions
// is the CASE event count over the last six hours; available is the
// resource count from the facility's latest status snapshot. The safety
// margin inflates the observed rate (ICU more conservatively than
// beds) before dividing.
func ForecastCapacity(facilityID, resource string, admissions, available int, th Thresholds) entities.CapacityForecast {
	margin, crisisHours := th.BedSafetyMargin, th.BedCrisisHours
	if resource == ResourceICU {
		margin, crisisHours = th.ICUSafetyMargin, th.ICUCrisisHours
	}
	if available < 0 {
		available = 0
	}

	rate := float64(admissions) / admissionWindowHours
	if rate < 0 {
		rate = 0
	}
	projected := int(math.Floor(rate * 24))

	forecast := entities.CapacityForecast{
		FacilityID:       facilityID,
		Resource:         resource,
		AvgAdmissionRate: round2(rate),
		Projected24h:     projected,
		Available:        available,
	}

	if rate <= 0 {
		forecast.HoursRemaining = hoursRemainingSentinel
		forecast.CrisisLikely = false
		return forecast
	}

	adjusted := rate * margin
	hours := float64(available) / adjusted
	hours = sanitizeHours(hours)

	forecast.HoursRemaining = round1(hours)
	forecast.CrisisLikely = hours < crisisHours
	return forecast
}

// sanitizeHours guarantees a finite, representable value.
func sanitizeHours(hours float64) float64 {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return hoursRemainingSentinel
	}
	return hours
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
