package identify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zain/bacteria-identifier/internal/types"
)

func testTable() *types.ReferenceTable {
	return &types.ReferenceTable{
		KeyField: "Genus",
		Fields:   []string{"Gram Stain", "Shape", "Catalase", "Growth Temperature", "Extra Notes"},
		Rows: []types.ReferenceRow{
			{
				Genus: "Escherichia",
				Values: map[string]string{
					"Gram Stain":         "Negative",
					"Shape":              "Rod",
					"Catalase":           "Positive",
					"Growth Temperature": "10//45",
					"Extra Notes":        "Common gut flora.",
				},
			},
			{
				Genus: "Staphylococcus",
				Values: map[string]string{
					"Gram Stain":         "Positive",
					"Shape":              "Coccus",
					"Catalase":           "Positive",
					"Growth Temperature": "15//45",
				},
			},
			{
				Genus: "Bacillus",
				Values: map[string]string{
					"Gram Stain":         "Positive",
					"Shape":              "Rod",
					"Catalase":           "Positive",
					"Growth Temperature": "5//50",
				},
			},
		},
	}
}

func TestIdentify_BasicScenario(t *testing.T) {
	identifier := New(testTable(), Options{Phrases: FixedPicker(0)})

	report := identifier.Identify(types.ObservationSet{
		"Gram Stain": "Negative",
		"Shape":      "Rod",
	})

	// Positive-stain candidates are hard-excluded by the Gram observation.
	require.Len(t, report.Results, 1)
	top := report.Results[0]
	assert.Equal(t, "Escherichia", top.Genus)
	assert.Equal(t, 2, top.TotalScore)
	assert.Equal(t, []string{"Gram Stain", "Shape"}, top.MatchedFields)
	assert.Empty(t, top.MismatchedFields)
	assert.Equal(t, "Common gut flora.", top.ExtraNotes)
	assert.Equal(t, 2, top.SuppliedFields)
	assert.Equal(t, 4, top.SchemaFields)
}

func TestIdentify_HardExclusionRemovesCandidate(t *testing.T) {
	identifier := New(testTable(), Options{Phrases: FixedPicker(0)})

	report := identifier.Identify(types.ObservationSet{
		"Gram Stain": "Positive",
	})

	for _, r := range report.Results {
		assert.NotEqual(t, "Escherichia", r.Genus)
		assert.Greater(t, r.TotalScore, types.ScoreExcluded)
	}
	require.Len(t, report.Results, 2)
}

func TestIdentify_NoObservationsPreservesTableOrder(t *testing.T) {
	table := &types.ReferenceTable{
		KeyField: "Genus",
		Fields:   []string{"Gram Stain"},
	}
	for i := 0; i < 12; i++ {
		table.Rows = append(table.Rows, types.ReferenceRow{
			Genus:  fmt.Sprintf("Genus%02d", i),
			Values: map[string]string{"Gram Stain": "Positive"},
		})
	}

	identifier := New(table, Options{Phrases: FixedPicker(0)})
	report := identifier.Identify(types.ObservationSet{})

	// All candidates score 0; the cap keeps the first ten in table order.
	require.Len(t, report.Results, DefaultMaxResults)
	for i, r := range report.Results {
		assert.Equal(t, fmt.Sprintf("Genus%02d", i), r.Genus)
		assert.Equal(t, 0, r.TotalScore)
	}
}

func TestIdentify_SortedByDescendingScore(t *testing.T) {
	identifier := New(testTable(), Options{Phrases: FixedPicker(0)})

	report := identifier.Identify(types.ObservationSet{
		"Gram Stain":         "Positive",
		"Catalase":           "Positive",
		"Growth Temperature": "37",
	})

	require.NotEmpty(t, report.Results)
	for i := 1; i < len(report.Results); i++ {
		assert.GreaterOrEqual(t, report.Results[i-1].TotalScore, report.Results[i].TotalScore)
	}
}

func TestIdentify_DeterministicScoresAcrossRuns(t *testing.T) {
	observations := types.ObservationSet{
		"Gram Stain": "Positive",
		"Catalase":   "Positive",
	}

	// Randomized phrasing must never affect ranking or scores.
	first := New(testTable(), Options{}).Identify(observations)
	second := New(testTable(), Options{}).Identify(observations)

	require.Len(t, second.Results, len(first.Results))
	for i := range first.Results {
		assert.Equal(t, first.Results[i].Genus, second.Results[i].Genus)
		assert.Equal(t, first.Results[i].TotalScore, second.Results[i].TotalScore)
	}
}

func TestIdentify_EmptyTable(t *testing.T) {
	table := &types.ReferenceTable{KeyField: "Genus", Fields: []string{"Gram Stain"}}
	identifier := New(table, Options{Phrases: FixedPicker(0)})

	report := identifier.Identify(types.ObservationSet{"Gram Stain": "Negative"})
	assert.Empty(t, report.Results)
}

func TestIdentify_MissingRowFieldTreatedAsBlank(t *testing.T) {
	table := &types.ReferenceTable{
		KeyField: "Genus",
		Fields:   []string{"Gram Stain", "Catalase"},
		Rows: []types.ReferenceRow{
			{Genus: "Sparse", Values: map[string]string{"Gram Stain": "Negative"}},
		},
	}
	identifier := New(table, Options{Phrases: FixedPicker(0)})

	report := identifier.Identify(types.ObservationSet{
		"Gram Stain": "Negative",
		"Catalase":   "Positive",
	})

	require.Len(t, report.Results, 1)
	// The missing Catalase cell scores as no information, not a mismatch.
	assert.Equal(t, 1, report.Results[0].TotalScore)
	assert.Empty(t, report.Results[0].MismatchedFields)
}

func TestIdentify_WeightsScaleContributions(t *testing.T) {
	identifier := New(testTable(), Options{
		Phrases: FixedPicker(0),
		Weights: map[string]int{"Catalase": 3},
	})

	report := identifier.Identify(types.ObservationSet{"Catalase": "Positive"})

	require.NotEmpty(t, report.Results)
	assert.Equal(t, 3, report.Results[0].TotalScore)
}

func TestIdentify_MaxResultsOption(t *testing.T) {
	identifier := New(testTable(), Options{Phrases: FixedPicker(0), MaxResults: 1})

	report := identifier.Identify(types.ObservationSet{})
	assert.Len(t, report.Results, 1)
}

func TestIdentify_ConfidenceNormalization(t *testing.T) {
	identifier := New(testTable(), Options{Phrases: FixedPicker(0)})

	report := identifier.Identify(types.ObservationSet{
		"Gram Stain": "Negative",
		"Shape":      "Rod",
	})

	require.Len(t, report.Results, 1)
	top := report.Results[0]
	// 2 of 2 supplied fields matched; 2 of 4 schema fields.
	assert.Equal(t, 100, top.ConfidenceTested)
	assert.Equal(t, 50, top.ConfidenceOverall)
	assert.Equal(t, "High", top.ConfidenceLevel)
}

func TestIdentify_NegativeScoreClampsToZeroConfidence(t *testing.T) {
	identifier := New(testTable(), Options{Phrases: FixedPicker(0)})

	// Catalase mismatches every candidate without excluding any.
	report := identifier.Identify(types.ObservationSet{"Catalase": "Negative"})

	require.NotEmpty(t, report.Results)
	for _, r := range report.Results {
		assert.Negative(t, r.TotalScore)
		assert.Equal(t, 0, r.ConfidenceTested)
		assert.Equal(t, 0, r.ConfidenceOverall)
		assert.Equal(t, "Very Low", r.ConfidenceLevel)
	}
}

func TestConfidenceLevelBands(t *testing.T) {
	assert.Equal(t, "High", confidenceLevel(75))
	assert.Equal(t, "Moderate", confidenceLevel(74))
	assert.Equal(t, "Moderate", confidenceLevel(50))
	assert.Equal(t, "Low", confidenceLevel(49))
	assert.Equal(t, "Low", confidenceLevel(25))
	assert.Equal(t, "Very Low", confidenceLevel(24))
	assert.Equal(t, "Very Low", confidenceLevel(0))
}

func TestNormalizeConfidence(t *testing.T) {
	assert.Equal(t, 0, normalizeConfidence(5, 0))
	assert.Equal(t, 0, normalizeConfidence(-3, 4))
	assert.Equal(t, 50, normalizeConfidence(2, 4))
	assert.Equal(t, 100, normalizeConfidence(4, 4))
	assert.Equal(t, 100, normalizeConfidence(8, 4))
	assert.Equal(t, 67, normalizeConfidence(2, 3))
}
