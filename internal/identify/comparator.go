// Package identify implements the scoring and ranking engine that matches a
// set of laboratory observations against a reference table of candidate genera.
package identify

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zain/bacteria-identifier/internal/types"
)

const (
	// variableSentinel marks a trait that does not discriminate a candidate.
	// It carries no information on either side of a comparison.
	variableSentinel = "variable"
	// rangeSeparator splits a numeric reference range ("10//40").
	rangeSeparator = "//"
	// minContainmentLen is the minimum rune length of the shorter token for
	// substring containment to count as a match. Exact equality always
	// matches; the floor keeps one- and two-letter tokens from matching
	// inside unrelated words.
	minContainmentLen = 3
)

// DefaultHardExclusionFields are the morphologically definitive traits. A
// real mismatch on one of these is treated as proof of non-identity rather
// than evidence against a score.
var DefaultHardExclusionFields = []string{"Gram Stain", "Shape", "Spore Formation"}

// Comparator scores a single reference value against a single observed value.
type Comparator struct {
	hardExclusions    map[string]bool
	temperatureFields map[string]bool
}

// NewComparator creates a Comparator with the given hard-exclusion and
// temperature-range field sets. Nil slices select the defaults.
func NewComparator(hardExclusionFields, temperatureFields []string) *Comparator {
	if hardExclusionFields == nil {
		hardExclusionFields = DefaultHardExclusionFields
	}
	if temperatureFields == nil {
		temperatureFields = []string{types.TemperatureField}
	}

	c := &Comparator{
		hardExclusions:    make(map[string]bool, len(hardExclusionFields)),
		temperatureFields: make(map[string]bool, len(temperatureFields)),
	}
	for _, f := range hardExclusionFields {
		c.hardExclusions[f] = true
	}
	for _, f := range temperatureFields {
		c.temperatureFields[f] = true
	}
	return c
}

// Compare returns the signed match score for one field of one candidate:
// ScoreMatch, ScoreMismatch, ScoreNoInfo, or ScoreExcluded.
//
// An observed value of blank or "unknown" never penalizes or rewards. The
// sentinel "variable" on either side yields no information and overrides
// hard exclusion. Malformed numeric input for range-checked fields degrades
// to no information rather than failing.
func (c *Comparator) Compare(refValue, observedValue, fieldName string) int {
	if types.IsUnobserved(observedValue) {
		return types.ScoreNoInfo
	}

	refValue = strings.TrimSpace(refValue)
	observedValue = strings.TrimSpace(observedValue)

	refTokens := splitTokens(refValue)
	observedTokens := splitTokens(observedValue)

	// A blank reference cell means no data for this candidate; an
	// observation that tokenizes to nothing carries no information.
	if len(refTokens) == 0 || len(observedTokens) == 0 {
		return types.ScoreNoInfo
	}

	if containsVariable(refTokens) || containsVariable(observedTokens) {
		return types.ScoreNoInfo
	}

	if c.temperatureFields[fieldName] && strings.Contains(refValue, rangeSeparator) {
		return compareRange(refValue, observedValue)
	}

	if tokensOverlap(observedTokens, refTokens) {
		return types.ScoreMatch
	}

	if c.hardExclusions[fieldName] {
		return types.ScoreExcluded
	}
	return types.ScoreMismatch
}

// compareRange checks an observed numeric value against a "low//high"
// reference range. Any parse failure scores as no information.
func compareRange(refValue, observedValue string) int {
	parts := strings.SplitN(refValue, rangeSeparator, 2)
	if len(parts) != 2 {
		return types.ScoreNoInfo
	}

	low, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return types.ScoreNoInfo
	}
	high, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return types.ScoreNoInfo
	}
	observed, err := strconv.ParseFloat(observedValue, 64)
	if err != nil {
		return types.ScoreNoInfo
	}

	if low <= observed && observed <= high {
		return types.ScoreMatch
	}
	return types.ScoreMismatch
}

// splitTokens normalizes a raw cell value into its candidate tokens:
// split on the multi-value delimiters (semicolon and slash), trim,
// lower-case, drop empties.
func splitTokens(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ';' || r == '/'
	})

	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.ToLower(strings.TrimSpace(part))
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func containsVariable(tokens []string) bool {
	for _, token := range tokens {
		if token == variableSentinel {
			return true
		}
	}
	return false
}

// tokensOverlap reports whether any observed token equals, contains, or is
// contained by any reference token. Containment tolerates minor phrasing
// differences ("rod" matching "rod-shaped") but only applies when the
// shorter token is at least minContainmentLen runes.
func tokensOverlap(observedTokens, refTokens []string) bool {
	for _, observed := range observedTokens {
		for _, ref := range refTokens {
			if observed == ref {
				return true
			}

			shorterRunes := utf8.RuneCountInString(observed)
			if n := utf8.RuneCountInString(ref); n < shorterRunes {
				shorterRunes = n
			}
			if shorterRunes < minContainmentLen {
				continue
			}

			if strings.Contains(ref, observed) || strings.Contains(observed, ref) {
				return true
			}
		}
	}
	return false
}
