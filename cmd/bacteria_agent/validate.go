package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zain/bacteria-identifier/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON document against a bundled schema",
	Long:  "Validates an observation set or identification report JSON file against the corresponding JSON Schema under schemas/.",
	RunE:  runValidate,
}

var (
	validateSchema string
	validateFile   string
)

// schemaFiles maps the --schema flag value to the bundled schema document.
var schemaFiles = map[string]string{
	"observations": "schemas/observation_set.schema.json",
	"report":       "schemas/identification_report.schema.json",
}

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Schema to validate against: observations or report (required)")
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Path to the JSON file to validate (required)")

	if err := validateCmd.MarkFlagRequired("schema"); err != nil {
		panic(fmt.Sprintf("failed to mark schema flag as required: %v", err))
	}
	if err := validateCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	relative, ok := schemaFiles[validateSchema]
	if !ok {
		return fmt.Errorf("unknown schema %q (want observations or report)", validateSchema)
	}

	schemaPath := schemas.ResolveSchemaPath(relative)
	if schemaPath == "" {
		return fmt.Errorf("schema file %s not found", relative)
	}

	if err := schemas.ValidateJSON(schemaPath, validateFile); err != nil {
		return fmt.Errorf("validation failed for %s: %w", validateFile, err)
	}

	cmd.Printf("%s is valid against %s\n", validateFile, relative)
	return nil
}
