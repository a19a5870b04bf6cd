package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuickOutbreakCheck_AbsoluteThreshold(t *testing.T) {
	th := DefaultThresholds()

	// fires with no history at all
	assert.True(t, QuickOutbreakCheck(nil, 200, th))
	assert.True(t, QuickOutbreakCheck(nil, 500, th))
	assert.False(t, QuickOutbreakCheck(nil, 199, th))
}

func TestQuickOutbreakCheck_MedianRatio(t *testing.T) {
	th := DefaultThresholds()
	history := []float64{10, 10, 10, 12, 8}

	// median 10: ratio reaches 3x at exactly 30
	assert.True(t, QuickOutbreakCheck(history, 30, th))
	assert.False(t, QuickOutbreakCheck(history, 29, th))
}

func TestQuickOutbreakCheck_NoHistoryStaysQuiet(t *testing.T) {
	th := DefaultThresholds()
	assert.False(t, QuickOutbreakCheck(nil, 50, th))
	assert.False(t, QuickOutbreakCheck([]float64{}, 50, th))
}

func TestQuickOutbreakCheck_ZeroMedian(t *testing.T) {
	th := DefaultThresholds()
	history := []float64{0, 0, 0}

	assert.True(t, QuickOutbreakCheck(history, 1, th))
	assert.False(t, QuickOutbreakCheck(history, 0, th))
}

func TestQuickOutbreakCheck_DegenerateInputIsNoSignal(t *testing.T) {
	th := DefaultThresholds()

	assert.False(t, QuickOutbreakCheck([]float64{10, 10}, math.NaN(), th))
	assert.False(t, QuickOutbreakCheck([]float64{10, 10}, math.Inf(1), th))
	assert.False(t, QuickOutbreakCheck([]float64{10, 10}, -5, th))

	// non-finite history entries are ignored, not propagated
	assert.True(t, QuickOutbreakCheck([]float64{math.NaN(), 10, 10, math.Inf(1)}, 30, th))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 10.0, median([]float64{10}))
	assert.Equal(t, 15.0, median([]float64{10, 20}))
	assert.Equal(t, 20.0, median([]float64{30, 10, 20}))
}
