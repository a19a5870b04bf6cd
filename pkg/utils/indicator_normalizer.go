package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// NormalizationConfig holds the curated synonym table and the disease
// keyword fallback list. The built-in defaults can be replaced wholesale
// from a JSON file for per-tenant vocabularies.
type NormalizationConfig struct {
	Synonyms        map[string]string `json:"synonyms"`
	DiseaseKeywords []string          `json:"diseaseKeywords"`
}

// IndicatorNormalizer maps free-text indicator names to a canonical
// vocabulary so the same disease is never counted twice under different
// spellings. Normalize is total and idempotent over canonical forms.
type IndicatorNormalizer struct {
	config *NormalizationConfig

	// synonym keys sorted longest-first so the most specific entry wins
	// ("maternal death" before "death")
	orderedKeys []string
}

var (
	punctRe      = regexp.MustCompile(`[-_]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NewIndicatorNormalizer creates a normalizer with the built-in vocabulary.
func NewIndicatorNormalizer() *IndicatorNormalizer {
	return newNormalizer(defaultNormalizationConfig())
}

// NewIndicatorNormalizerFromFile creates a normalizer from a JSON vocabulary file.
func NewIndicatorNormalizerFromFile(configPath string) (*IndicatorNormalizer, error) {
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	var config NormalizationConfig
	if err := json.Unmarshal(configFile, &config); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file: %w", err)
	}
	if len(config.Synonyms) == 0 {
		return nil, fmt.Errorf("vocabulary file %s defines no synonyms", configPath)
	}

	return newNormalizer(&config), nil
}

func newNormalizer(config *NormalizationConfig) *IndicatorNormalizer {
	keys := make([]string, 0, len(config.Synonyms))
	for key := range config.Synonyms {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	return &IndicatorNormalizer{
		config:      config,
		orderedKeys: keys,
	}
}

// Normalize returns the canonical name for a free-text indicator
// description. It never fails: unknown names come back trimmed but
// otherwise unchanged.
func (n *IndicatorNormalizer) Normalize(indicatorName string) string {
	if strings.TrimSpace(indicatorName) == "" {
		return "Unknown"
	}

	cleaned := strings.ToLower(strings.TrimSpace(indicatorName))
	cleaned = punctRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(whitespaceRe.ReplaceAllString(cleaned, " "))

	// Exact or substring match against the curated table.
	for _, key := range n.orderedKeys {
		if cleaned == key || strings.Contains(cleaned, key) {
			return n.config.Synonyms[key]
		}
	}

	// No table entry: synthesize a canonical label from a recognized
	// disease keyword. Death and mortality indicators collapse to one label.
	for _, keyword := range n.config.DiseaseKeywords {
		if !strings.Contains(cleaned, keyword) {
			continue
		}
		if strings.Contains(cleaned, "death") || strings.Contains(cleaned, "mortality") {
			return "Deaths"
		}
		return diseaseTitle(keyword) + " Cases"
	}

	return strings.TrimSpace(indicatorName)
}

// Vocabulary returns a copy of the synonym table for reference.
func (n *IndicatorNormalizer) Vocabulary() map[string]string {
	out := make(map[string]string, len(n.config.Synonyms))
	for k, v := range n.config.Synonyms {
		out[k] = v
	}
	return out
}

func diseaseTitle(keyword string) string {
	switch keyword {
	case "tb":
		return "TB"
	case "hiv":
		return "HIV"
	}
	return strings.ToUpper(keyword[:1]) + keyword[1:]
}

func defaultNormalizationConfig() *NormalizationConfig {
	return &NormalizationConfig{
		Synonyms: map[string]string{
			// Malaria variants
			"malaria":                      "New Malaria Cases",
			"new malaria":                  "New Malaria Cases",
			"malaria cases":                "New Malaria Cases",
			"new malaria cases":            "New Malaria Cases",
			"malaria identified":           "New Malaria Cases",
			"new malaria cases identified": "New Malaria Cases",

			// Dengue variants
			"dengue":       "Dengue Cases",
			"dengue cases": "Dengue Cases",
			"dengue fever": "Dengue Cases",
			"new dengue":   "Dengue Cases",

			// Tuberculosis variants
			"tb":                 "Tuberculosis Cases",
			"tuberculosis":       "Tuberculosis Cases",
			"new tb":             "Tuberculosis Cases",
			"tb cases":           "Tuberculosis Cases",
			"tuberculosis cases": "Tuberculosis Cases",

			// Diarrhea variants
			"diarrhea":       "Diarrhea Cases",
			"diarrhoea":      "Diarrhea Cases",
			"diarrheal":      "Diarrhea Cases",
			"acute diarrhea": "Diarrhea Cases",

			// HIV variants
			"hiv":          "HIV Cases",
			"hiv positive": "HIV Cases",
			"new hiv":      "HIV Cases",

			// Hepatitis variants
			"hepatitis":   "Hepatitis Cases",
			"hepatitis a": "Hepatitis Cases",
			"hepatitis b": "Hepatitis Cases",
			"hepatitis c": "Hepatitis Cases",

			// Measles variants
			"measles":       "Measles Cases",
			"measles cases": "Measles Cases",
			"new measles":   "Measles Cases",

			// Pneumonia variants
			"pneumonia":       "Pneumonia Cases",
			"pneumonia cases": "Pneumonia Cases",
			"acute pneumonia": "Pneumonia Cases",

			// Encephalitis variants
			"encephalitis":       "Encephalitis Cases",
			"viral encephalitis": "Encephalitis Cases",

			// Cholera variants
			"cholera":       "Cholera Cases",
			"acute cholera": "Cholera Cases",
			"cholera cases": "Cholera Cases",

			// Influenza variants
			"influenza":              "Influenza Cases",
			"flu":                    "Influenza Cases",
			"seasonal flu":           "Influenza Cases",
			"influenza like illness": "Influenza Cases",

			// Mortality variants
			"maternal death":     "Maternal Mortality",
			"maternal deaths":    "Maternal Mortality",
			"maternal mortality": "Maternal Mortality",
			"neonatal death":     "Neonatal Mortality",
			"neonatal deaths":    "Neonatal Mortality",
			"neonatal mortality": "Neonatal Mortality",
			"death":              "Deaths",
			"deaths":             "Deaths",

			// Low birth weight variants
			"low birth weight": "Low Birth Weight",
			"lbw":              "Low Birth Weight",

			// Hypertension variants
			"hypertension":        "Hypertension Cases",
			"high blood pressure": "Hypertension Cases",
		},
		DiseaseKeywords: []string{
			"malaria", "dengue", "tuberculosis", "tb", "diarrhea", "hiv",
			"hepatitis", "measles", "pneumonia", "encephalitis", "cholera",
			"influenza", "flu", "death", "mortality",
		},
	}
}
