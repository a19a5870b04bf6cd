package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_SynonymTable(t *testing.T) {
	normalizer := NewIndicatorNormalizer()

	testCases := []struct {
		input    string
		expected string
	}{
		{"TB-Cases", "Tuberculosis Cases"},
		{"tuberculosis", "Tuberculosis Cases"},
		{"New malaria-cases identified", "New Malaria Cases"},
		{"new Malaria CASES", "New Malaria Cases"},
		{"dengue_fever", "Dengue Cases"},
		{"Diarrhoea", "Diarrhea Cases"},
		{"influenza   like    illness", "Influenza Cases"},
		{"LBW", "Low Birth Weight"},
		{"high blood pressure", "Hypertension Cases"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalizer.Normalize(tc.input))
		})
	}
}

func TestNormalize_MostSpecificEntryWins(t *testing.T) {
	normalizer := NewIndicatorNormalizer()

	// "maternal death" must not collapse into the generic "Deaths" bucket
	assert.Equal(t, "Maternal Mortality", normalizer.Normalize("Maternal Death"))
	assert.Equal(t, "Neonatal Mortality", normalizer.Normalize("neonatal deaths"))
	assert.Equal(t, "Deaths", normalizer.Normalize("death"))
}

func TestNormalize_KeywordSynthesis(t *testing.T) {
	normalizer := NewIndicatorNormalizer()

	// No table entry, but a disease keyword is recognizable
	assert.Equal(t, "Hepatitis Cases", normalizer.Normalize("suspected hepatitis outbreak zone 4"))
	assert.Equal(t, "Deaths", normalizer.Normalize("under-5 mortality reported"))
}

func TestNormalize_PassthroughWhenUnknown(t *testing.T) {
	normalizer := NewIndicatorNormalizer()

	assert.Equal(t, "Pregnant women registered", normalizer.Normalize("  Pregnant women registered  "))
	assert.Equal(t, "Hb level<7", normalizer.Normalize("Hb level<7"))
}

func TestNormalize_EmptyInput(t *testing.T) {
	normalizer := NewIndicatorNormalizer()

	assert.Equal(t, "Unknown", normalizer.Normalize(""))
	assert.Equal(t, "Unknown", normalizer.Normalize("   "))
}

func TestNormalize_Idempotent(t *testing.T) {
	normalizer := NewIndicatorNormalizer()

	inputs := []string{
		"TB-Cases",
		"maternal death",
		"neonatal_deaths",
		"dengue fever",
		"flu",
		"hb level<7",
		"Pregnant women registered",
		"suspected hepatitis outbreak",
		"LOW-BIRTH-WEIGHT",
	}

	for _, input := range inputs {
		once := normalizer.Normalize(input)
		assert.Equal(t, once, normalizer.Normalize(once), "not idempotent for %q", input)
	}
}

func TestNormalize_CasePunctuationInsensitive(t *testing.T) {
	normalizer := NewIndicatorNormalizer()

	assert.Equal(t, normalizer.Normalize("TB-Cases"), normalizer.Normalize("tuberculosis"))
	assert.Equal(t, "Tuberculosis Cases", normalizer.Normalize("TB-Cases"))
}

func TestNewIndicatorNormalizerFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocabulary.json")
	content := `{
		"synonyms": {"covid": "COVID-19 Cases", "covid 19": "COVID-19 Cases"},
		"diseaseKeywords": ["covid"]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	normalizer, err := NewIndicatorNormalizerFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "COVID-19 Cases", normalizer.Normalize("COVID-19"))
}

func TestNewIndicatorNormalizerFromFile_Missing(t *testing.T) {
	normalizer, err := NewIndicatorNormalizerFromFile("/nonexistent/vocabulary.json")
	assert.Error(t, err)
	assert.Nil(t, normalizer)
}
