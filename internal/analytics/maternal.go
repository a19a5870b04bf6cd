package analytics

import (
	"sort"
	"strings"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
)

// MaternalSectionPrefixes are the reporting-format code sections that
// make up the maternal health universe.
var MaternalSectionPrefixes = []string{"M1", "M2", "M3", "M4"}

// Indicator fragments for the three independently tracked high-risk
// conditions and the registered-pregnancy denominator.
const (
	anemiaFragment       = "hb level<7"
	hypertensionFragment = "hypertension"
	pregnancyFragment    = "pregnant women registered"
)

var lowWeightFragments = []string{"weight less than", "low birth"}

// ScoreMaternalRisk ranks geographies by maternal risk ratio. Only
// records from the maternal code sections participate. Per district the
// three high-risk indicator families are summed separately and the
// MAXIMUM of the three sums becomes the risk-event count; summing them
// would triple-count one at-risk woman seen under overlapping
// indicators. Districts without a positive registered-pregnancy
// denominator are excluded from the ranking entirely.
func ScoreMaternalRisk(records []*entities.IndicatorRecord) []entities.MaternalRisk {
	type tally struct {
		anemia       float64
		hypertension float64
		lowWeight    float64
		pregnancies  float64
	}

	byDistrict := make(map[string]*tally)
	for _, rec := range records {
		if rec == nil || !InMaternalSection(rec.CodeSection) {
			continue
		}
		t := byDistrict[rec.District]
		if t == nil {
			t = &tally{}
			byDistrict[rec.District] = t
		}

		name := strings.ToLower(rec.Indicator)
		switch {
		case strings.Contains(name, anemiaFragment):
			t.anemia += rec.TotalCases
		case strings.Contains(name, hypertensionFragment):
			t.hypertension += rec.TotalCases
		case containsAny(name, lowWeightFragments):
			t.lowWeight += rec.TotalCases
		case strings.Contains(name, pregnancyFragment):
			t.pregnancies += rec.TotalCases
		}
	}

	risks := make([]entities.MaternalRisk, 0, len(byDistrict))
	for district, t := range byDistrict {
		if t.pregnancies <= 0 {
			continue
		}
		events := max3(t.anemia, t.hypertension, t.lowWeight)
		risks = append(risks, entities.MaternalRisk{
			District:       district,
			SevereAnemia:   t.anemia,
			Hypertension:   t.hypertension,
			LowBirthWeight: t.lowWeight,
			RiskEvents:     events,
			Pregnancies:    t.pregnancies,
			RiskScore:      events / t.pregnancies * 100,
			RiskPer1000:    events / t.pregnancies * 1000,
		})
	}

	sort.Slice(risks, func(i, j int) bool {
		if risks[i].RiskScore != risks[j].RiskScore {
			return risks[i].RiskScore > risks[j].RiskScore
		}
		return risks[i].District < risks[j].District
	})

	return risks
}

// InMaternalSection reports whether a code section belongs to the
// maternal health universe.
func InMaternalSection(codeSection string) bool {
	for _, prefix := range MaternalSectionPrefixes {
		if strings.HasPrefix(codeSection, prefix) {
			return true
		}
	}
	return false
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
