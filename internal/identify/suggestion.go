package identify

import (
	"fmt"

	"github.com/zain/bacteria-identifier/internal/types"
)

// Messages returned when no further test can split the remaining candidates.
const (
	noFurtherTestsMessage   = "All key differentiators have been tested."
	noDifferentiationNeeded = "No further differentiation is needed."
)

// nextTestSuggestion recommends the untested field with the greatest value
// diversity across the surviving top candidates, i.e. the test most likely
// to split the remaining ambiguity. Ties break on schema order.
func (id *Identifier) nextTestSuggestion(results []types.MatchResult, observations types.ObservationSet, scoredFields []string) string {
	if len(results) < 2 {
		return noDifferentiationNeeded
	}

	unobserved := observations.UnobservedFields(scoredFields)
	if len(unobserved) == 0 {
		return noFurtherTestsMessage
	}

	topGenera := make(map[string]bool, len(results))
	for _, r := range results {
		topGenera[r.Genus] = true
	}

	bestField := ""
	bestDiversity := 0
	for _, field := range unobserved {
		diversity := id.fieldDiversity(field, topGenera)
		if diversity > bestDiversity {
			bestField = field
			bestDiversity = diversity
		}
	}

	// A field every top candidate agrees on cannot discriminate.
	if bestField == "" || bestDiversity < 2 {
		return noFurtherTestsMessage
	}

	return fmt.Sprintf("Perform %s to help confirm between the likely options.", bestField)
}

// fieldDiversity counts the distinct reference tokens a field takes across
// the given candidates.
func (id *Identifier) fieldDiversity(field string, genera map[string]bool) int {
	distinct := make(map[string]bool)
	for _, row := range id.table.Rows {
		if !genera[row.Genus] {
			continue
		}
		for _, token := range splitTokens(row.Value(field)) {
			distinct[token] = true
		}
	}
	return len(distinct)
}
