package identify

import (
	"math"
	"sort"

	"github.com/zain/bacteria-identifier/internal/types"
)

// DefaultMaxResults caps output at the ten highest-scoring candidates.
const DefaultMaxResults = 10

// Options configures an Identifier. The zero value selects the defaults.
type Options struct {
	// HardExclusionFields overrides DefaultHardExclusionFields.
	HardExclusionFields []string
	// TemperatureFields overrides the fields scored as numeric ranges.
	TemperatureFields []string
	// Weights multiplies the per-field contribution (default 1 per field).
	// Hard exclusion is unaffected by weights.
	Weights map[string]int
	// MaxResults lowers the result cap below DefaultMaxResults.
	MaxResults int
	// Phrases selects rationale wording. Nil uses a time-seeded random
	// picker; tests inject FixedPicker to force deterministic text.
	Phrases PhrasePicker
}

// Identifier scores observations against an immutable reference table.
// One Identifier may be shared by concurrent callers: Identify only reads
// the table and produces fresh, independent output.
type Identifier struct {
	table      *types.ReferenceTable
	comparator *Comparator
	weights    map[string]int
	maxResults int
	phrases    PhrasePicker
}

// New creates an Identifier over a loaded reference table. The table is
// owned by the Identifier for its lifetime and must not be mutated.
func New(table *types.ReferenceTable, opts Options) *Identifier {
	maxResults := opts.MaxResults
	if maxResults <= 0 || maxResults > DefaultMaxResults {
		maxResults = DefaultMaxResults
	}

	phrases := opts.Phrases
	if phrases == nil {
		phrases = NewRandomPicker()
	}

	return &Identifier{
		table:      table,
		comparator: NewComparator(opts.HardExclusionFields, opts.TemperatureFields),
		weights:    opts.Weights,
		maxResults: maxResults,
		phrases:    phrases,
	}
}

// Comparator exposes the field comparator configured for this Identifier.
func (id *Identifier) Comparator() *Comparator {
	return id.comparator
}

// Identify scores every candidate in the reference table against the
// observations and returns the ranked, capped report. It never fails for a
// well-formed observation map: anomalies degrade to neutral scoring.
func (id *Identifier) Identify(observations types.ObservationSet) *types.Report {
	scoredFields := id.table.ScoredFields()
	supplied := observations.SuppliedCount()

	results := make([]types.MatchResult, 0, len(id.table.Rows))
	for _, row := range id.table.Rows {
		result, excluded := id.scoreCandidate(&row, scoredFields, observations)
		if excluded {
			continue
		}
		result.SuppliedFields = supplied
		result.SchemaFields = len(scoredFields)
		results = append(results, result)
	}

	// Stable sort preserves reference-table order on ties.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})

	if len(results) > id.maxResults {
		results = results[:id.maxResults]
	}

	suggestion := id.nextTestSuggestion(results, observations, scoredFields)

	for i := range results {
		r := &results[i]
		r.ConfidenceTested = normalizeConfidence(r.TotalScore, r.SuppliedFields)
		r.ConfidenceOverall = normalizeConfidence(r.TotalScore, r.SchemaFields)
		r.ConfidenceLevel = confidenceLevel(r.ConfidenceTested)
		r.NextTestSuggestion = suggestion
	}

	for i := range results {
		var runnerUp *types.MatchResult
		if i == 0 && len(results) > 1 {
			runnerUp = &results[1]
		}
		results[i].Rationale = id.rationale(&results[i], runnerUp)
	}

	return &types.Report{Results: results, NextTestSuggestion: suggestion}
}

// scoreCandidate evaluates one reference row. Each candidate gets a freshly
// constructed accumulator; a hard-exclusion score abandons the remaining
// fields immediately.
func (id *Identifier) scoreCandidate(row *types.ReferenceRow, scoredFields []string, observations types.ObservationSet) (types.MatchResult, bool) {
	result := types.MatchResult{
		Genus:            row.Genus,
		MatchedFields:    []string{},
		MismatchedFields: []string{},
		ReasoningFactors: map[string]string{},
		ExtraNotes:       row.Notes(),
	}

	for _, field := range scoredFields {
		observed := observations[field]
		score := id.comparator.Compare(row.Value(field), observed, field)

		switch score {
		case types.ScoreExcluded:
			return types.MatchResult{}, true
		case types.ScoreMatch:
			result.TotalScore += id.weight(field)
			result.MatchedFields = append(result.MatchedFields, field)
			result.ReasoningFactors[field] = observed
		case types.ScoreMismatch:
			result.TotalScore -= id.weight(field)
			result.MismatchedFields = append(result.MismatchedFields, field)
		}
	}

	return result, false
}

func (id *Identifier) weight(field string) int {
	if w, ok := id.weights[field]; ok && w > 0 {
		return w
	}
	return 1
}

// normalizeConfidence converts a raw score into a percentage of the given
// denominator, clamped to [0,100]. A zero denominator yields 0.
func normalizeConfidence(score, denominator int) int {
	if denominator <= 0 {
		return 0
	}
	pct := int(math.Round(float64(score) / float64(denominator) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// confidenceLevel converts a confidence percentage to its qualitative band.
func confidenceLevel(pct int) string {
	switch {
	case pct >= 75:
		return "High"
	case pct >= 50:
		return "Moderate"
	case pct >= 25:
		return "Low"
	default:
		return "Very Low"
	}
}
