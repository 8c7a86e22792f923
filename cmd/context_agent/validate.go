package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/context-engine/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against one of the engine schemas",
	Long:  "Validates an artifact catalog, policy table, or selection request JSON file against its JSON Schema and reports all violations.",
	RunE:  runValidate,
}

var (
	validateSchemaPath string
	validateJSONPath   string
)

func init() {
	validateCmd.Flags().StringVar(&validateSchemaPath, "schema", "", "Path to JSON schema file (required)")
	validateCmd.Flags().StringVar(&validateJSONPath, "json", "", "Path to JSON file to validate (required)")

	if err := validateCmd.MarkFlagRequired("schema"); err != nil {
		panic(fmt.Sprintf("failed to mark schema flag as required: %v", err))
	}
	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	schemaPath := validateSchemaPath
	if _, err := os.Stat(schemaPath); os.IsNotExist(err) {
		// Allow bare schema file names to resolve against the schemas/ directory
		if resolved := schemas.ResolveSchemaPath(filepath.Join("schemas", schemaPath)); resolved != "" {
			schemaPath = resolved
		}
	}

	if err := schemas.ValidateJSON(schemaPath, validateJSONPath); err != nil {
		_, _ = fmt.Fprintf(os.Stdout, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Validation passed: %s\n", validateJSONPath)
	return nil
}
