// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/zain/bacteria-identifier/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintObservations outputs a human-readable summary of the supplied
// observation set.
func (p *Printer) PrintObservations(observations types.ObservationSet, schema []string) {
	var sb strings.Builder

	supplied := 0
	for _, field := range schema {
		value, ok := observations.Observed(field)
		if !ok {
			continue
		}
		supplied++
		if supplied <= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", field, value))
		}
	}
	if supplied > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", supplied-maxItemsToShow))
	}
	sb.WriteString(fmt.Sprintf("\nSupplied %d of %d fields", supplied, len(schema)))

	p.printBox("Observations", sb.String())
}

// PrintReport outputs a human-readable summary of an identification report.
func (p *Printer) PrintReport(report *types.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder

	if len(report.Results) == 0 {
		sb.WriteString("No matches found.\n")
		sb.WriteString("Try entering more test results.")
		p.printBox("Identification Results", sb.String())
		return
	}

	for i, r := range report.Results {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, r.Genus))
		sb.WriteString(fmt.Sprintf("   Score: %d  Confidence: %d%% (%s)\n",
			r.TotalScore, r.ConfidenceTested, r.ConfidenceLevel))
		if len(r.MatchedFields) > 0 {
			count := min(len(r.MatchedFields), maxItemsToShow)
			sb.WriteString(fmt.Sprintf("   Matched: %s", strings.Join(r.MatchedFields[:count], ", ")))
			if len(r.MatchedFields) > maxItemsToShow {
				sb.WriteString(fmt.Sprintf(" (+%d more)", len(r.MatchedFields)-maxItemsToShow))
			}
			sb.WriteString("\n")
		}
	}

	if report.NextTestSuggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(report.NextTestSuggestion)
	}

	p.printBox("Identification Results", sb.String())
}
