package entities

import "time"

// IndicatorRecord is a periodic aggregate indicator report row as
// ingested from monthly facility returns. Records are immutable once
// produced; the signal engine only reads them.
type IndicatorRecord struct {
	ID          string    `json:"id" db:"id"`
	District    string    `json:"district" db:"district"`
	Subdistrict string    `json:"subdistrict" db:"subdistrict"`
	Ward        string    `json:"ward" db:"ward"`
	// RawIndicator is the name exactly as reported; Indicator is its
	// canonical form and the grouping key for every aggregation.
	RawIndicator string `json:"raw_indicator_name" db:"raw_indicator_name"`
	Indicator    string `json:"indicator_name" db:"indicator_name"`
	// CodeSection is the reporting-format section code (maternal health
	// sections are M1..M4); empty when the source format carries none.
	CodeSection string  `json:"code_section" db:"code_section"`
	TotalCases  float64 `json:"total_cases" db:"total_cases"`
	// Period is the month number within the reporting year, 1..12.
	Period    int       `json:"period" db:"period"`
	Year      int       `json:"year" db:"year"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// MonthNumber resolves an English month name to its 1..12 number.
// Returns 0 when the name is not recognized.
func MonthNumber(month string) int {
	switch normalizeMonth(month) {
	case "january", "jan":
		return 1
	case "february", "feb":
		return 2
	case "march", "mar":
		return 3
	case "april", "apr":
		return 4
	case "may":
		return 5
	case "june", "jun":
		return 6
	case "july", "jul":
		return 7
	case "august", "aug":
		return 8
	case "september", "sep":
		return 9
	case "october", "oct":
		return 10
	case "november", "nov":
		return 11
	case "december", "dec":
		return 12
	}
	return 0
}

// MonthName returns the short display name for a 1..12 period number.
func MonthName(period int) string {
	names := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	if period < 1 || period > 12 {
		return ""
	}
	return names[period-1]
}

func normalizeMonth(month string) string {
	out := make([]rune, 0, len(month))
	for _, r := range month {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r == ' ' || r == '\t' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
