package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zain/bacteria-identifier/internal/config"
	"github.com/zain/bacteria-identifier/internal/identify"
	"github.com/zain/bacteria-identifier/internal/observability"
	"github.com/zain/bacteria-identifier/internal/reference"
	"github.com/zain/bacteria-identifier/internal/schemas"
)

var identifyCmd = &cobra.Command{
	Use:   "identify",
	Short: "Rank candidate genera against observed test results",
	Long:  "Scores every candidate in the reference table against the supplied observation set and writes a ranked identification report JSON with confidence, rationale, and a next-test suggestion.",
	RunE:  runIdentify,
}

var (
	identifyObservations string
	identifyReference    string
	identifyOutput       string
	identifyConfig       string
	identifyMaxResults   int
	identifyVerbose      bool
)

func init() {
	identifyCmd.Flags().StringVarP(&identifyObservations, "observations", "i", "", "Path to input observation set JSON file (required)")
	identifyCmd.Flags().StringVarP(&identifyReference, "reference", "r", "", "Path to reference table (.csv or .xlsx)")
	identifyCmd.Flags().StringVarP(&identifyOutput, "out", "o", "", "Path to output report JSON file (stdout if omitted)")
	identifyCmd.Flags().StringVarP(&identifyConfig, "config", "c", "", "Path to JSON config file")
	identifyCmd.Flags().IntVar(&identifyMaxResults, "max-results", 0, "Cap the number of ranked candidates (1-10)")
	identifyCmd.Flags().BoolVarP(&identifyVerbose, "verbose", "v", false, "Print a formatted report summary")

	if err := identifyCmd.MarkFlagRequired("observations"); err != nil {
		panic(fmt.Sprintf("failed to mark observations flag as required: %v", err))
	}

	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(_ *cobra.Command, _ []string) error {
	cfg, err := mergedConfig(identifyConfig)
	if err != nil {
		return err
	}

	referencePath := identifyReference
	if referencePath == "" {
		referencePath = cfg.Reference
	}
	if referencePath == "" {
		return fmt.Errorf("a reference table is required (--reference flag or 'reference' config key)")
	}

	maxResults := identifyMaxResults
	if maxResults == 0 {
		maxResults = cfg.MaxResults
	}

	// 1. Load reference table
	table, err := reference.LoadTable(referencePath)
	if err != nil {
		return fmt.Errorf("failed to load reference table: %w", err)
	}

	// 2. Load observations
	observations, err := reference.LoadObservations(identifyObservations)
	if err != nil {
		return fmt.Errorf("failed to load observations: %w", err)
	}

	// 3. Run identification
	identifier := identify.New(table, identify.Options{
		HardExclusionFields: cfg.HardExclusionFields,
		Weights:             cfg.Weights,
		MaxResults:          maxResults,
	})
	report := identifier.Identify(observations)

	if identifyVerbose || cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintObservations(observations, table.ScoredFields())
		printer.PrintReport(report)
	}

	// 4. Marshal to JSON with indentation
	jsonOutput, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	if identifyOutput == "" {
		fmt.Println(string(jsonOutput))
		return nil
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(identifyOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	// 5. Write to output file
	if err := os.WriteFile(identifyOutput, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write report to output file %s: %w", identifyOutput, err)
	}

	// 6. Validate output against schema (optional - non-fatal)
	schemaPath := schemas.ResolveSchemaPath("schemas/identification_report.schema.json")
	if schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, identifyOutput); err != nil {
			// Output validation is a safety check, not a requirement
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Ranked %d candidates to %s\n", len(report.Results), identifyOutput)

	return nil
}

// mergedConfig loads the optional config file and validates it. An empty
// path yields a zero config.
func mergedConfig(path string) (*config.Config, error) {
	if path == "" {
		return &config.Config{}, nil
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	merged := cfg.MergeWithDefaults(config.Config{})
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
