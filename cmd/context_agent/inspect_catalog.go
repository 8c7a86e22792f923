package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/context-engine/internal/ingestion"
	"github.com/jonathan/context-engine/internal/observability"
)

var inspectCatalogCmd = &cobra.Command{
	Use:   "inspect-catalog",
	Short: "Load, validate, and summarize an artifact catalog file",
	Long:  "Loads an artifact catalog JSON file, validates it against the catalog schema, freezes it, and prints a per-context summary.",
	RunE:  runInspectCatalog,
}

var (
	inspectCatalogPath    string
	inspectCatalogContext string
)

func init() {
	inspectCatalogCmd.Flags().StringVarP(&inspectCatalogPath, "catalog", "c", "", "Path to artifact catalog JSON file (required)")
	inspectCatalogCmd.Flags().StringVar(&inspectCatalogContext, "context", "", "List artifacts of one bounded context")

	if err := inspectCatalogCmd.MarkFlagRequired("catalog"); err != nil {
		panic(fmt.Sprintf("failed to mark catalog flag as required: %v", err))
	}

	rootCmd.AddCommand(inspectCatalogCmd)
}

func runInspectCatalog(_ *cobra.Command, _ []string) error {
	cat, err := ingestion.BuildCatalog(inspectCatalogPath)
	if err != nil {
		return fmt.Errorf("failed to build catalog: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintCatalog(cat)

	if inspectCatalogContext != "" {
		artifacts, err := cat.Lookup(inspectCatalogContext)
		if err != nil {
			return fmt.Errorf("bounded context lookup failed: %w", err)
		}
		for _, artifact := range artifacts {
			_, _ = fmt.Fprintf(os.Stdout, "%-40s %-16s weight=%.2f size=%d\n",
				artifact.ID, artifact.Kind, artifact.SemanticWeight, artifact.SizeFull)
		}
	}

	return nil
}
