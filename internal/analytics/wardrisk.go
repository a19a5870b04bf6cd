package analytics

import (
	"math"
	"sort"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
)

// growthReference is the 6h/24h case ratio treated as maximal
// acceleration. A quarter of a day's cases are expected in any 6h
// window, so growth 1.0 is steady state and 1.5 saturates the term.
const growthReference = 1.5

// Weights of the composite score terms.
const (
	caseWeight   = 0.5
	growthWeight = 0.3
	icuWeight    = 0.2
)

// ComputeWardRisk combines recent case volume, short-term growth and
// ICU pressure into one 0-100 score for a ward. Every term is clamped
// before weighting, so no input can push the score outside [0, 100].
func ComputeWardRisk(ward string, cases24h, cases6h int, icuCapacity, icuAvailable int, th Thresholds) entities.WardRisk {
	if cases24h < 0 {
		cases24h = 0
	}
	if cases6h < 0 {
		cases6h = 0
	}

	casesNormalized := 0.0
	if th.WardCaseCeiling > 0 {
		casesNormalized = clamp(float64(cases24h)/th.WardCaseCeiling*100, 0, 100)
	}

	growthRate := 0.0
	if cases24h > 0 {
		growthRate = float64(cases6h) / (float64(cases24h) / 4)
	}
	growthNormalized := clamp(growthRate/growthReference*100, 0, 100)

	icuPressure := ICUPressure(icuCapacity, icuAvailable)

	score := casesNormalized*caseWeight +
		growthNormalized*growthWeight +
		icuPressure*100*icuWeight

	return entities.WardRisk{
		Ward:        ward,
		RiskScore:   round1(score),
		RiskLevel:   ClassifyRisk(score, th),
		RecentCases: cases24h,
		ICUPressure: round3(icuPressure),
		GrowthRate:  round2(growthRate),
	}
}

// ICUPressure is the occupied fraction of ICU capacity, clamped to
// [0, 1]. A ward with no ICU capacity reports zero pressure.
func ICUPressure(capacity, available int) float64 {
	if capacity <= 0 {
		return 0
	}
	return clamp(float64(capacity-available)/float64(capacity), 0, 1)
}

// ClassifyRisk maps a composite score onto the four risk levels using
// inclusive lower bounds.
func ClassifyRisk(score float64, th Thresholds) entities.RiskLevel {
	switch {
	case score >= th.RiskCriticalCutoff:
		return entities.RiskCritical
	case score >= th.RiskHighCutoff:
		return entities.RiskHigh
	case score >= th.RiskMediumCutoff:
		return entities.RiskMedium
	}
	return entities.RiskLow
}

// RankWardRisks orders ward scores for presentation: highest score
// first, ward identifier as the deterministic tie-break.
func RankWardRisks(risks []entities.WardRisk) {
	sort.Slice(risks, func(i, j int) bool {
		if risks[i].RiskScore != risks[j].RiskScore {
			return risks[i].RiskScore > risks[j].RiskScore
		}
		return risks[i].Ward < risks[j].Ward
	})
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
