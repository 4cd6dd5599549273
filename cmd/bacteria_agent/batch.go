package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zain/bacteria-identifier/internal/identify"
	"github.com/zain/bacteria-identifier/internal/reference"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Identify a directory of observation sets concurrently",
	Long:  "Runs the ranking engine over every *.json observation file in a directory. The reference table is read-only, so the files are processed concurrently against one shared table.",
	RunE:  runBatch,
}

var (
	batchReference   string
	batchInputDir    string
	batchOutputDir   string
	batchConcurrency int
)

func init() {
	batchCmd.Flags().StringVarP(&batchReference, "reference", "r", "", "Path to reference table (.csv or .xlsx) (required)")
	batchCmd.Flags().StringVarP(&batchInputDir, "in-dir", "d", "", "Directory of observation set JSON files (required)")
	batchCmd.Flags().StringVarP(&batchOutputDir, "out-dir", "o", "reports", "Directory for output report JSON files")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "Number of observation files processed in parallel")

	if err := batchCmd.MarkFlagRequired("reference"); err != nil {
		panic(fmt.Sprintf("failed to mark reference flag as required: %v", err))
	}
	if err := batchCmd.MarkFlagRequired("in-dir"); err != nil {
		panic(fmt.Sprintf("failed to mark in-dir flag as required: %v", err))
	}

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	table, err := reference.LoadTable(batchReference)
	if err != nil {
		return fmt.Errorf("failed to load reference table: %w", err)
	}

	inputs, err := filepath.Glob(filepath.Join(batchInputDir, "*.json"))
	if err != nil {
		return fmt.Errorf("failed to list observation files: %w", err)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no *.json observation files found in %s", batchInputDir)
	}

	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", batchOutputDir, err)
	}

	identifier := identify.New(table, identify.Options{})

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(batchConcurrency)

	for _, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			observations, err := reference.LoadObservations(input)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", input, err)
			}

			report := identifier.Identify(observations)

			jsonOutput, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal report for %s: %w", input, err)
			}

			name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			outputPath := filepath.Join(batchOutputDir, name+".report.json")
			if err := os.WriteFile(outputPath, jsonOutput, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputPath, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Identified %d observation sets to %s\n", len(inputs), batchOutputDir)
	return nil
}
