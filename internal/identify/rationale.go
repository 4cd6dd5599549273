package identify

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/zain/bacteria-identifier/internal/types"
)

// PhrasePicker selects among alternative rationale phrasings. Production
// uses RandomPicker for variety; tests use FixedPicker so generated text is
// deterministic. Phrasing never affects ranking or scores.
type PhrasePicker interface {
	// Pick returns an index in [0, n).
	Pick(n int) int
}

// RandomPicker selects phrasings pseudo-randomly.
type RandomPicker struct {
	rng *rand.Rand
}

// NewRandomPicker creates a time-seeded RandomPicker.
func NewRandomPicker() *RandomPicker {
	return &RandomPicker{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Pick returns a random index in [0, n).
func (p *RandomPicker) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	return p.rng.Intn(n)
}

// FixedPicker always selects index int(p) modulo the option count.
type FixedPicker int

// Pick returns int(p) % n.
func (p FixedPicker) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return int(p) % n
}

var introPhrases = []string{
	"Based on the observed biochemical and morphological traits,",
	"According to the provided test results,",
	"From the available laboratory findings,",
	"Considering the entered reactions and colony traits,",
}

var comparisonConnectives = []string{
	"because of differences in",
	"owing to the differing results for",
}

// rationale generates the natural-language explanation for one candidate.
// The top candidate additionally gets a comparison against the runner-up.
func (id *Identifier) rationale(result *types.MatchResult, runnerUp *types.MatchResult) string {
	if len(result.MatchedFields) == 0 {
		return "No significant biochemical or morphological matches were found."
	}

	intro := introPhrases[id.phrases.Pick(len(introPhrases))]
	summary := highlightSummary(result)
	confidence := fmt.Sprintf("The confidence in this identification is %s.", result.ConfidenceLevel)

	rationale := fmt.Sprintf("%s %s, the isolate most closely resembles %s. %s",
		intro, summary, result.Genus, confidence)

	if runnerUp != nil {
		rationale += " " + id.runnerUpComparison(result, runnerUp)
	}

	return rationale
}

// highlightSummary phrases the matched fields that drove the result. The
// classical diagnostic traits get dedicated wording; anything else falls
// back to a generic consistency clause.
func highlightSummary(result *types.MatchResult) string {
	var highlights []string
	covered := make(map[string]bool)

	if v, ok := result.ReasoningFactors["Gram Stain"]; ok {
		highlights = append(highlights, fmt.Sprintf("it is Gram %s", strings.ToLower(v)))
		covered["Gram Stain"] = true
	}
	if v, ok := result.ReasoningFactors["Shape"]; ok {
		highlights = append(highlights, fmt.Sprintf("with a %s morphology", strings.ToLower(v)))
		covered["Shape"] = true
	}
	if v, ok := result.ReasoningFactors["Catalase"]; ok {
		highlights = append(highlights, fmt.Sprintf("and catalase %s activity", strings.ToLower(v)))
		covered["Catalase"] = true
	}
	if v, ok := result.ReasoningFactors["Oxidase"]; ok {
		highlights = append(highlights, fmt.Sprintf("and oxidase %s reaction", strings.ToLower(v)))
		covered["Oxidase"] = true
	}
	if v, ok := result.ReasoningFactors["Oxygen Requirement"]; ok {
		highlights = append(highlights, fmt.Sprintf("which prefers %s growth conditions", strings.ToLower(v)))
		covered["Oxygen Requirement"] = true
	}

	if len(highlights) == 0 {
		var remaining []string
		for _, field := range result.MatchedFields {
			if !covered[field] {
				remaining = append(remaining, field)
			}
			if len(remaining) == 3 {
				break
			}
		}
		highlights = append(highlights,
			fmt.Sprintf("it is consistent with the observed %s", strings.Join(remaining, ", ")))
	}

	return strings.Join(highlights, " ")
}

// runnerUpComparison explains how the top candidate separates from the
// second-ranked one, naming the observed fields where their dispositions
// differ.
func (id *Identifier) runnerUpComparison(top, runnerUp *types.MatchResult) string {
	diff := matchedDifference(top, runnerUp)
	if len(diff) == 0 {
		return fmt.Sprintf("It is separated from %s only by overall agreement across the tested fields.", runnerUp.Genus)
	}

	connective := comparisonConnectives[id.phrases.Pick(len(comparisonConnectives))]
	return fmt.Sprintf("It is more likely than %s %s %s.",
		runnerUp.Genus, connective, strings.Join(diff, ", "))
}

// matchedDifference returns the observed fields whose match disposition
// differs between two candidates, in the top candidate's field order.
func matchedDifference(top, runnerUp *types.MatchResult) []string {
	runnerMatched := make(map[string]bool, len(runnerUp.MatchedFields))
	for _, f := range runnerUp.MatchedFields {
		runnerMatched[f] = true
	}
	topMatched := make(map[string]bool, len(top.MatchedFields))
	for _, f := range top.MatchedFields {
		topMatched[f] = true
	}

	var diff []string
	for _, f := range top.MatchedFields {
		if !runnerMatched[f] {
			diff = append(diff, f)
		}
	}
	for _, f := range runnerUp.MatchedFields {
		if !topMatched[f] {
			diff = append(diff, f)
		}
	}
	return diff
}
