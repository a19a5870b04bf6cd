// Package analytics implements the signal engine: outbreak and spike
// detection, maternal risk scoring, capacity exhaustion forecasting and
// ward composite risk. Every function is a pure computation over the
// records handed to it; callers fetch those records through bounded
// repository reads, so concurrent invocations never share state.
package analytics

import "github.com/udhe/healthintelligence/backend/pkg/config"

// Thresholds carries every tunable constant of the signal engine.
// Passing them explicitly (instead of package-level constants) keeps
// detection deterministic in tests and tunable per deployment.
type Thresholds struct {
	MinCaseVolume             float64
	SpikeMultiplier           float64
	RollingWindowPeriods      int
	AbsoluteOutbreakThreshold float64
	RecentWindowSize          int
	BedSafetyMargin           float64
	ICUSafetyMargin           float64
	BedCrisisHours            float64
	ICUCrisisHours            float64
	WardCaseCeiling           float64
	RiskCriticalCutoff        float64
	RiskHighCutoff            float64
	RiskMediumCutoff          float64
}

// DefaultThresholds returns the pilot calibration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinCaseVolume:             75,
		SpikeMultiplier:           1.75,
		RollingWindowPeriods:      3,
		AbsoluteOutbreakThreshold: 200,
		RecentWindowSize:          50,
		BedSafetyMargin:           1.2,
		ICUSafetyMargin:           1.5,
		BedCrisisHours:            24,
		ICUCrisisHours:            12,
		WardCaseCeiling:           200,
		RiskCriticalCutoff:        75,
		RiskHighCutoff:            50,
		RiskMediumCutoff:          25,
	}
}

// ThresholdsFromConfig maps the loaded application configuration onto
// engine thresholds.
func ThresholdsFromConfig(cfg config.AnalyticsConfig) Thresholds {
	return Thresholds{
		MinCaseVolume:             cfg.MinCaseVolume,
		SpikeMultiplier:           cfg.SpikeMultiplier,
		RollingWindowPeriods:      cfg.RollingWindowPeriods,
		AbsoluteOutbreakThreshold: cfg.AbsoluteOutbreakThreshold,
		RecentWindowSize:          cfg.RecentWindowSize,
		BedSafetyMargin:           cfg.BedSafetyMargin,
		ICUSafetyMargin:           cfg.ICUSafetyMargin,
		BedCrisisHours:            cfg.BedCrisisHours,
		ICUCrisisHours:            cfg.ICUCrisisHours,
		WardCaseCeiling:           cfg.WardCaseCeiling,
		RiskCriticalCutoff:        cfg.RiskCriticalCutoff,
		RiskHighCutoff:            cfg.RiskHighCutoff,
		RiskMediumCutoff:          cfg.RiskMediumCutoff,
	}
}
