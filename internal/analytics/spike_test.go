package analytics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
)

func record(district, indicator string, period int, cases float64) *entities.IndicatorRecord {
	return &entities.IndicatorRecord{
		District:   district,
		Indicator:  indicator,
		TotalCases: cases,
		Period:     period,
	}
}

func TestDetectOutbreaks_DengueSurge(t *testing.T) {
	records := []*entities.IndicatorRecord{
		record("D", "Dengue Cases", 1, 80),
		record("D", "Dengue Cases", 2, 90),
		record("D", "Dengue Cases", 3, 300),
	}

	outbreaks := DetectOutbreaks(records, DefaultThresholds())
	require.Len(t, outbreaks, 1)

	o := outbreaks[0]
	assert.Equal(t, "D", o.District)
	assert.Equal(t, "Dengue Cases", o.Indicator)
	assert.Equal(t, 3, o.Period)
	assert.Equal(t, "Mar", o.Month)
	assert.Equal(t, 300.0, o.TotalCases)
	assert.InDelta(t, 85.0, o.Baseline, 1e-9)
	assert.InDelta(t, 252.94, o.SurgePercent, 0.01)
}

func TestDetectOutbreaks_BelowFloorNeverFlagged(t *testing.T) {
	// Extreme ratio to baseline, but the period-3 aggregate sits below
	// the 75-case floor and is discarded before windowing.
	records := []*entities.IndicatorRecord{
		record("D", "Cholera Cases", 1, 80),
		record("D", "Cholera Cases", 2, 76),
		record("D", "Cholera Cases", 3, 74),
	}

	outbreaks := DetectOutbreaks(records, DefaultThresholds())
	assert.Empty(t, outbreaks)
}

func TestDetectOutbreaks_RequiresTwoPriorPeriods(t *testing.T) {
	records := []*entities.IndicatorRecord{
		record("D", "New Malaria Cases", 1, 80),
		record("D", "New Malaria Cases", 2, 4000),
	}

	// Only one prior period exists for period 2, so no baseline forms
	// and nothing can be flagged.
	outbreaks := DetectOutbreaks(records, DefaultThresholds())
	assert.Empty(t, outbreaks)
}

func TestDetectOutbreaks_ActivityIndicatorsExcluded(t *testing.T) {
	records := []*entities.IndicatorRecord{
		record("D", "Measles Vaccination Doses", 1, 80),
		record("D", "Measles Vaccination Doses", 2, 90),
		record("D", "Measles Vaccination Doses", 3, 5000),
		record("D", "OPD Visits", 1, 80),
		record("D", "OPD Visits", 2, 90),
		record("D", "OPD Visits", 3, 5000),
	}

	outbreaks := DetectOutbreaks(records, DefaultThresholds())
	assert.Empty(t, outbreaks)
}

func TestDetectOutbreaks_AggregatesAcrossRows(t *testing.T) {
	// The same (district, indicator, period) may arrive as several rows
	// (different wards); they sum into one aggregate.
	records := []*entities.IndicatorRecord{
		record("D", "Dengue Cases", 1, 40),
		record("D", "Dengue Cases", 1, 40),
		record("D", "Dengue Cases", 2, 45),
		record("D", "Dengue Cases", 2, 45),
		record("D", "Dengue Cases", 3, 150),
		record("D", "Dengue Cases", 3, 150),
	}

	outbreaks := DetectOutbreaks(records, DefaultThresholds())
	require.Len(t, outbreaks, 1)
	assert.Equal(t, 300.0, outbreaks[0].TotalCases)
	assert.InDelta(t, 85.0, outbreaks[0].Baseline, 1e-9)
}

func TestDetectOutbreaks_SortedBySurgeDescending(t *testing.T) {
	records := []*entities.IndicatorRecord{
		record("A", "Dengue Cases", 1, 100),
		record("A", "Dengue Cases", 2, 100),
		record("A", "Dengue Cases", 3, 300),
		record("B", "Cholera Cases", 1, 100),
		record("B", "Cholera Cases", 2, 100),
		record("B", "Cholera Cases", 3, 900),
	}

	outbreaks := DetectOutbreaks(records, DefaultThresholds())
	require.Len(t, outbreaks, 2)
	assert.Equal(t, "B", outbreaks[0].District)
	assert.Equal(t, "A", outbreaks[1].District)
	assert.Greater(t, outbreaks[0].SurgePercent, outbreaks[1].SurgePercent)
}

func TestDetectOutbreaks_Deterministic(t *testing.T) {
	base := []*entities.IndicatorRecord{
		record("A", "Dengue Cases", 1, 100),
		record("A", "Dengue Cases", 2, 100),
		record("A", "Dengue Cases", 3, 300),
		record("A", "Cholera Cases", 1, 100),
		record("A", "Cholera Cases", 2, 100),
		record("A", "Cholera Cases", 3, 300),
		record("B", "Dengue Cases", 1, 100),
		record("B", "Dengue Cases", 2, 100),
		record("B", "Dengue Cases", 3, 300),
	}

	first := DetectOutbreaks(base, DefaultThresholds())

	// insertion order must not leak into the output
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := make([]*entities.IndicatorRecord, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, first, DetectOutbreaks(shuffled, DefaultThresholds()))
	}
}

func TestDetectOutbreaks_WindowSlidesForward(t *testing.T) {
	// Period 5's baseline only looks at the previous three kept
	// periods, so the early history ages out.
	records := []*entities.IndicatorRecord{
		record("D", "Dengue Cases", 1, 1000),
		record("D", "Dengue Cases", 2, 100),
		record("D", "Dengue Cases", 3, 100),
		record("D", "Dengue Cases", 4, 100),
		record("D", "Dengue Cases", 5, 300),
	}

	outbreaks := DetectOutbreaks(records, DefaultThresholds())
	require.Len(t, outbreaks, 1)
	assert.Equal(t, 5, outbreaks[0].Period)
	assert.InDelta(t, 100.0, outbreaks[0].Baseline, 1e-9)
}

func TestIsDiseaseIndicator(t *testing.T) {
	assert.True(t, IsDiseaseIndicator("Dengue Cases"))
	assert.True(t, IsDiseaseIndicator("Hb level<7"))
	assert.False(t, IsDiseaseIndicator("Measles Vaccination Doses"))
	assert.False(t, IsDiseaseIndicator("Medicine Stock Distribution"))
	assert.False(t, IsDiseaseIndicator("OPD Visits"))
}

func TestClassifySignal(t *testing.T) {
	assert.Equal(t, entities.SignalDisease, ClassifySignal("New Malaria Cases"))
	assert.Equal(t, entities.SignalActivity, ClassifySignal("Children fully immunised"))
	assert.Equal(t, entities.SignalOperational, ClassifySignal("Staff attendance"))
}

func TestExplainOutbreak(t *testing.T) {
	text := ExplainOutbreak(entities.Outbreak{
		District:     "D",
		Indicator:    "Dengue Cases",
		Month:        "Mar",
		TotalCases:   300,
		Baseline:     85,
		SurgePercent: 252.9,
	})
	assert.Contains(t, text, "Mar")
	assert.Contains(t, text, "300")
	assert.Contains(t, text, "Dengue Cases")
}
