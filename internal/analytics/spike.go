package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
)

// diseaseKeywords is the allow-list of real health conditions. Only
// indicators matching one of these can ever be flagged as outbreaks.
var diseaseKeywords = []string{
	"malaria",
	"dengue",
	"tuberculosis",
	"tb ",
	"hiv",
	"sti",
	"rti",
	"hepatitis",
	"encephalitis",
	"diarrhea",
	"cholera",
	"influenza",
	"pneumonia",
	"measles",
	"maternal death",
	"neonatal death",
	"death",
	"low birth weight",
	"hb level<7",
	"hypertension",
}

// activityKeywords marks operational indicators (campaigns, stock moves,
// counselling) that must never surface as outbreaks even when their
// names also mention a disease.
var activityKeywords = []string{
	"immunisation",
	"immunization",
	"vaccination",
	"sterilization",
	"tested",
	"screened",
	"counselling",
	"counseling",
	"stock",
	"distribution",
	"campaign",
}

// DetectOutbreaks runs batch spike detection over periodic indicator
// records. It recomputes everything from the given records on every
// call: there is no incremental state, so re-running it on an unchanged
// record set yields identical ordered output.
//
// Pipeline: disease filter -> (district, indicator, period) aggregation
// -> chronological sort -> minimum-volume floor -> rolling baseline over
// the previous RollingWindowPeriods periods (at least 2 required) ->
// spike when current > baseline * SpikeMultiplier -> surge percent ->
// sort by surge percent descending.
func DetectOutbreaks(records []*entities.IndicatorRecord, th Thresholds) []entities.Outbreak {
	type groupKey struct {
		district  string
		indicator string
	}
	type periodTotal struct {
		period int
		total  float64
	}

	totals := make(map[groupKey]map[int]float64)
	for _, rec := range records {
		if rec == nil || rec.Period < 1 {
			continue
		}
		if !IsDiseaseIndicator(rec.Indicator) {
			continue
		}
		key := groupKey{district: rec.District, indicator: rec.Indicator}
		if totals[key] == nil {
			totals[key] = make(map[int]float64)
		}
		totals[key][rec.Period] += rec.TotalCases
	}

	groups := make([]groupKey, 0, len(totals))
	for key := range totals {
		groups = append(groups, key)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].district != groups[j].district {
			return groups[i].district < groups[j].district
		}
		return groups[i].indicator < groups[j].indicator
	})

	outbreaks := make([]entities.Outbreak, 0, len(groups))
	for _, key := range groups {
		series := make([]periodTotal, 0, len(totals[key]))
		for period, total := range totals[key] {
			series = append(series, periodTotal{period: period, total: total})
		}
		// periods must be chronological before windowing
		sort.Slice(series, func(i, j int) bool {
			return series[i].period < series[j].period
		})

		// noise suppression happens before the window, so sub-floor
		// periods contribute nothing to any baseline
		kept := series[:0]
		for _, pt := range series {
			if pt.total >= th.MinCaseVolume {
				kept = append(kept, pt)
			}
		}

		for i, pt := range kept {
			start := i - th.RollingWindowPeriods
			if start < 0 {
				start = 0
			}
			prior := kept[start:i]
			if len(prior) < 2 {
				continue
			}
			var sum float64
			for _, p := range prior {
				sum += p.total
			}
			baseline := sum / float64(len(prior))
			if baseline <= 0 {
				continue
			}
			if pt.total > baseline*th.SpikeMultiplier {
				outbreaks = append(outbreaks, entities.Outbreak{
					District:     key.district,
					Indicator:    key.indicator,
					Period:       pt.period,
					Month:        entities.MonthName(pt.period),
					TotalCases:   pt.total,
					Baseline:     baseline,
					SurgePercent: (pt.total - baseline) / baseline * 100,
				})
			}
		}
	}

	// largest surge first; remaining keys make the order total so
	// repeated runs are byte-identical
	sort.Slice(outbreaks, func(i, j int) bool {
		if outbreaks[i].SurgePercent != outbreaks[j].SurgePercent {
			return outbreaks[i].SurgePercent > outbreaks[j].SurgePercent
		}
		if outbreaks[i].District != outbreaks[j].District {
			return outbreaks[i].District < outbreaks[j].District
		}
		if outbreaks[i].Indicator != outbreaks[j].Indicator {
			return outbreaks[i].Indicator < outbreaks[j].Indicator
		}
		return outbreaks[i].Period < outbreaks[j].Period
	})

	return outbreaks
}

// IsDiseaseIndicator reports whether an indicator name describes a real
// health condition rather than an operational activity.
func IsDiseaseIndicator(indicator string) bool {
	lower := strings.ToLower(indicator)
	for _, word := range activityKeywords {
		if strings.Contains(lower, word) {
			return false
		}
	}
	for _, word := range diseaseKeywords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// ClassifySignal buckets an indicator for responder-facing explanations.
func ClassifySignal(indicator string) entities.SignalClass {
	lower := strings.ToLower(indicator)
	for _, word := range activityKeywords {
		if strings.Contains(lower, word) {
			return entities.SignalActivity
		}
	}
	for _, word := range diseaseKeywords {
		if strings.Contains(lower, word) {
			return entities.SignalDisease
		}
	}
	return entities.SignalOperational
}

// ExplainOutbreak renders a one-paragraph human explanation of a
// flagged row.
func ExplainOutbreak(o entities.Outbreak) string {
	return fmt.Sprintf(
		"In %s, %s reported %d cases of %q. Baseline: %d | Surge: %.1f%%.",
		o.Month, o.District, int(o.TotalCases), o.Indicator, int(o.Baseline), o.SurgePercent,
	)
}
