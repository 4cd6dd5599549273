package identify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zain/bacteria-identifier/internal/types"
)

func TestCompare_UnobservedValues(t *testing.T) {
	c := NewComparator(nil, nil)

	assert.Equal(t, types.ScoreNoInfo, c.Compare("Positive", "", "Catalase"))
	assert.Equal(t, types.ScoreNoInfo, c.Compare("Positive", "   ", "Catalase"))
	assert.Equal(t, types.ScoreNoInfo, c.Compare("Positive", "unknown", "Catalase"))
	assert.Equal(t, types.ScoreNoInfo, c.Compare("Positive", "Unknown", "Catalase"))
	assert.Equal(t, types.ScoreNoInfo, c.Compare("Positive", "UNKNOWN", "Gram Stain"))
}

func TestCompare_CaseSymmetry(t *testing.T) {
	c := NewComparator(nil, nil)

	cases := []struct {
		ref, observed, field string
	}{
		{"Positive", "positive", "Catalase"},
		{"Rod", "coccus", "Shape"},
		{"Red; White", "white", "Colony Morphology"},
		{"Variable", "Negative", "Gram Stain"},
	}

	for _, tc := range cases {
		lower := c.Compare(tc.ref, tc.observed, tc.field)
		upper := c.Compare(strings.ToUpper(tc.ref), strings.ToUpper(tc.observed), tc.field)
		assert.Equal(t, lower, upper, "case symmetry for %q vs %q", tc.ref, tc.observed)
	}
}

func TestCompare_VariableOverridesExclusion(t *testing.T) {
	c := NewComparator(nil, nil)

	// Reference side
	assert.Equal(t, types.ScoreNoInfo, c.Compare("Variable", "Negative", "Gram Stain"))
	// Observed side is treated identically
	assert.Equal(t, types.ScoreNoInfo, c.Compare("Positive", "variable", "Gram Stain"))
	// Variable as one of several alternatives still overrides
	assert.Equal(t, types.ScoreNoInfo, c.Compare("Rod; Variable", "Coccus", "Shape"))
}

func TestCompare_HardExclusion(t *testing.T) {
	c := NewComparator(nil, nil)

	assert.Equal(t, types.ScoreExcluded, c.Compare("Negative", "Positive", "Gram Stain"))
	assert.Equal(t, types.ScoreExcluded, c.Compare("Rod", "Coccus", "Shape"))
	assert.Equal(t, types.ScoreExcluded, c.Compare("Yes", "No", "Spore Formation"))

	// A matching hard-exclusion field scores like any match
	assert.Equal(t, types.ScoreMatch, c.Compare("Negative", "negative", "Gram Stain"))

	// The same disagreement on an ordinary field is only a mismatch
	assert.Equal(t, types.ScoreMismatch, c.Compare("Negative", "Positive", "Catalase"))
}

func TestCompare_CustomHardExclusionFields(t *testing.T) {
	c := NewComparator([]string{"Motility"}, nil)

	assert.Equal(t, types.ScoreExcluded, c.Compare("Motile", "Sessile", "Motility"))
	// "motile" is a substring of "non-motile", so containment scores these as
	// a match even on a hard-exclusion field
	assert.Equal(t, types.ScoreMatch, c.Compare("Motile", "Non-motile", "Motility"))
	// The default set no longer applies
	assert.Equal(t, types.ScoreMismatch, c.Compare("Negative", "Positive", "Gram Stain"))
}

func TestCompare_TemperatureRange(t *testing.T) {
	c := NewComparator(nil, nil)

	assert.Equal(t, types.ScoreMatch, c.Compare("10//40", "25", "Growth Temperature"))
	assert.Equal(t, types.ScoreMatch, c.Compare("10//40", "10", "Growth Temperature"))
	assert.Equal(t, types.ScoreMatch, c.Compare("10//40", "40", "Growth Temperature"))
	assert.Equal(t, types.ScoreMismatch, c.Compare("10//40", "45", "Growth Temperature"))
	assert.Equal(t, types.ScoreMismatch, c.Compare("10//40", "9.5", "Growth Temperature"))

	// Malformed input degrades to no information
	assert.Equal(t, types.ScoreNoInfo, c.Compare("10//40", "abc", "Growth Temperature"))
	assert.Equal(t, types.ScoreNoInfo, c.Compare("low//high", "25", "Growth Temperature"))
}

func TestCompare_TemperatureWithoutRangeFallsThrough(t *testing.T) {
	c := NewComparator(nil, nil)

	// No "//" separator: scored as an ordinary token comparison
	assert.Equal(t, types.ScoreMatch, c.Compare("37", "37", "Growth Temperature"))
	assert.Equal(t, types.ScoreMismatch, c.Compare("37", "425", "Growth Temperature"))
}

func TestCompare_RangeOnlyAppliesToTemperatureFields(t *testing.T) {
	c := NewComparator(nil, nil)

	// "10//40" on another field tokenizes to "10" and "40"
	assert.Equal(t, types.ScoreMatch, c.Compare("10//40", "40", "pH Range"))
	assert.Equal(t, types.ScoreMismatch, c.Compare("10//40", "25", "pH Range"))
}

func TestCompare_SubstringTolerance(t *testing.T) {
	c := NewComparator(nil, nil)

	assert.Equal(t, types.ScoreMatch, c.Compare("Rod-shaped", "rod", "Shape"))
	assert.Equal(t, types.ScoreMatch, c.Compare("Rod", "short rod", "Shape"))
	assert.Equal(t, types.ScoreMatch, c.Compare("Facultative anaerobe", "anaerobe", "Oxygen Requirement"))
}

func TestCompare_ShortTokensRequireExactMatch(t *testing.T) {
	c := NewComparator(nil, nil)

	// Two-rune tokens never match by containment
	assert.Equal(t, types.ScoreMismatch, c.Compare("Positive", "po", "Catalase"))
	// Exact equality still works for short tokens
	assert.Equal(t, types.ScoreMatch, c.Compare("po", "PO", "Catalase"))

	// The floor counts runes, not bytes: "µµ" is four bytes but two runes
	assert.Equal(t, types.ScoreMismatch, c.Compare("xµµy", "µµ", "Catalase"))
	assert.Equal(t, types.ScoreMatch, c.Compare("µµm-scale", "µµm", "Catalase"))
}

func TestCompare_MultiValueAlternatives(t *testing.T) {
	c := NewComparator(nil, nil)

	assert.Equal(t, types.ScoreMatch, c.Compare("Red; White", "white", "Colony Morphology"))
	assert.Equal(t, types.ScoreMatch, c.Compare("Aerobic/Anaerobic", "aerobic", "Oxygen Requirement"))
	assert.Equal(t, types.ScoreMatch, c.Compare("Blood agar", "MacConkey; Blood agar", "Media Grown On"))
	assert.Equal(t, types.ScoreMismatch, c.Compare("Red; White", "green", "Colony Morphology"))
}

func TestCompare_BlankReferenceIsNoInformation(t *testing.T) {
	c := NewComparator(nil, nil)

	assert.Equal(t, types.ScoreNoInfo, c.Compare("", "Positive", "Catalase"))
	// Hard-exclusion status does not apply without reference data
	assert.Equal(t, types.ScoreNoInfo, c.Compare("", "Rod", "Shape"))
	// An observation of only delimiters carries no tokens
	assert.Equal(t, types.ScoreNoInfo, c.Compare("Positive", " ; ", "Catalase"))
}
