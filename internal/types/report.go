package types

// Per-field comparator scores.
const (
	// ScoreExcluded is the hard-exclusion sentinel: the candidate is
	// biologically impossible given the observation and must be dropped.
	ScoreExcluded = -999
	// ScoreMismatch penalizes an ordinary mismatch.
	ScoreMismatch = -1
	// ScoreNoInfo contributes nothing (unobserved, variable, or malformed).
	ScoreNoInfo = 0
	// ScoreMatch rewards an overlap between observed and reference tokens.
	ScoreMatch = 1
)

// MatchResult represents a single scored candidate with metadata used for
// rationale generation. It is created fresh per Identify call and only
// mutated afterwards to attach derived suggestion text.
type MatchResult struct {
	Genus            string   `json:"genus"`
	TotalScore       int      `json:"total_score"`
	MatchedFields    []string `json:"matched_fields"`
	MismatchedFields []string `json:"mismatched_fields"`
	// ReasoningFactors maps matched field name to the observed value that
	// produced the match; it drives the rationale paragraph.
	ReasoningFactors map[string]string `json:"reasoning_factors,omitempty"`
	// SuppliedFields counts fields the user actually supplied.
	SuppliedFields int `json:"supplied_fields"`
	// SchemaFields counts the scored fields in the reference schema.
	SchemaFields int `json:"schema_fields"`
	// ConfidenceTested normalizes the score against SuppliedFields: how
	// well this candidate explains what was tested. Clamped to [0,100].
	ConfidenceTested int `json:"confidence_tested"`
	// ConfidenceOverall normalizes the score against SchemaFields: how
	// well it explains the complete profile. Clamped to [0,100].
	ConfidenceOverall int `json:"confidence_overall"`
	// ConfidenceLevel is the qualitative band: High, Moderate, Low, Very Low.
	ConfidenceLevel string `json:"confidence_level"`
	// Rationale is the generated natural-language explanation.
	Rationale string `json:"rationale"`
	// NextTestSuggestion recommends the most discriminating untested field.
	NextTestSuggestion string `json:"next_test_suggestion"`
	// ExtraNotes is free text copied from the reference row.
	ExtraNotes string `json:"extra_notes,omitempty"`
}

// Report is the ordered identification output, capped at the engine's
// result limit and sorted by descending total score.
type Report struct {
	Results []MatchResult `json:"results"`
	// NextTestSuggestion is the report-level copy of the per-result
	// suggestion text.
	NextTestSuggestion string `json:"next_test_suggestion,omitempty"`
}
