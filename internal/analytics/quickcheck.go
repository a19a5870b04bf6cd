package analytics

import (
	"math"
	"sort"
)

// QuickOutbreakCheck is the lightweight single-record signal evaluated
// on the ingestion hot path. It fires when the new count clears the
// absolute threshold, or when it reaches three times the median of the
// recent same-indicator history. With no history it stays silent, and
// any degenerate input is treated as "no signal": a false negative here
// is safe because batch detection remains authoritative.
//
// This check and DetectOutbreaks use different statistical definitions
// (median ratio vs. rolling mean ratio) and can disagree on the same
// data. They are two distinct signals, kept separate on purpose.
func QuickOutbreakCheck(history []float64, newCount float64, th Thresholds) bool {
	if !isFinite(newCount) || newCount < 0 {
		return false
	}
	if newCount >= th.AbsoluteOutbreakThreshold {
		return true
	}

	counts := make([]float64, 0, len(history))
	for _, c := range history {
		if isFinite(c) {
			counts = append(counts, c)
		}
	}
	if len(counts) == 0 {
		return false
	}

	med := median(counts)
	if med == 0 {
		return newCount > 0
	}
	return newCount/med >= 3
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
