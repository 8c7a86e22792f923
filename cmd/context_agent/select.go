package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/context-engine/internal/config"
	"github.com/jonathan/context-engine/internal/pipeline"
	"github.com/jonathan/context-engine/internal/types"
)

var selectCommand = &cobra.Command{
	Use:   "select",
	Short: "Run the full context selection pipeline end-to-end",
	Long: `Orchestrates the entire selection process: catalog loading (or docs crawl and classification) -> policy resolution -> selection -> assembly.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runSelectCmd,
}

// defaultBudget is used when neither --budget nor the config file supplies
// a token budget.
const defaultBudget = 4000

var (
	selectConfigPath  string
	selectCatalog     string
	selectDocsURLs    []string
	selectCatalogName string
	selectPolicy      string
	selectContext     string
	selectStory       string
	selectBudget      int
	selectEnhancers   []string
	selectOutput      string
	selectAPIKey      string
	selectUseBrowser  bool
	selectVerbose     bool
	selectDatabaseURL string
)

func init() {
	// Config file flag (processed first)
	selectCommand.Flags().StringVar(&selectConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	selectCommand.Flags().StringVarP(&selectCatalog, "catalog", "c", "", "Path to artifact catalog JSON file (mutually exclusive with --docs-url)")
	selectCommand.Flags().StringSliceVar(&selectDocsURLs, "docs-url", nil, "Documentation page URL to crawl and classify (repeatable, mutually exclusive with --catalog)")
	selectCommand.Flags().StringVar(&selectCatalogName, "catalog-name", "", "Catalog name when building from crawled docs")
	selectCommand.Flags().StringVarP(&selectPolicy, "policy", "p", "", "Path to policy table JSON file (built-in default table if empty)")
	selectCommand.Flags().StringVar(&selectContext, "context", "", "Target bounded context")
	selectCommand.Flags().StringVarP(&selectStory, "story", "s", "", "User story artifact ID to anchor the bundle")
	selectCommand.Flags().IntVarP(&selectBudget, "budget", "b", 0, "Token budget for the assembled bundle")
	selectCommand.Flags().StringSliceVar(&selectEnhancers, "enhancer", nil, "Enhancer kind to consider after mandatory tiers (repeatable)")
	selectCommand.Flags().StringVarP(&selectOutput, "out", "o", "", "Path to write the assembled bundle text (stdout summary only if empty)")
	selectCommand.Flags().BoolVar(&selectUseBrowser, "use-browser", false, "Use headless browser for JS-rendered doc sites (requires Chrome)")
	selectCommand.Flags().BoolVarP(&selectVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	selectCommand.Flags().StringVar(&selectAPIKey, "api-key", "", "Gemini API Key for fragment classification (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for run persistence and page caching
	selectCommand.Flags().StringVar(&selectDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(selectCommand)
}

// parseEnhancerKinds converts flag values into artifact kinds, rejecting
// names that are not declared kinds.
func parseEnhancerKinds(values []string) ([]types.Kind, error) {
	known := make(map[types.Kind]bool)
	for _, kind := range types.AllKinds() {
		known[kind] = true
	}

	kinds := make([]types.Kind, 0, len(values))
	for _, value := range values {
		kind := types.Kind(strings.TrimSpace(value))
		if !known[kind] {
			return nil, fmt.Errorf("unknown enhancer kind %q", value)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func runSelectCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if selectConfigPath != "" {
		loadedCfg, err := config.LoadConfig(selectConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if selectVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", selectConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("catalog") {
		cfg.Catalog = selectCatalog
	}
	if cmd.Flags().Changed("policy") {
		cfg.Policy = selectPolicy
	}
	if cmd.Flags().Changed("context") {
		cfg.BoundedContext = selectContext
	}
	if cmd.Flags().Changed("budget") {
		cfg.Budget = selectBudget
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = selectAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = selectUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = selectVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = selectDatabaseURL
	}
	if len(selectDocsURLs) == 0 && cfg.DocsURL != "" {
		selectDocsURLs = []string{cfg.DocsURL}
	}

	// Step 3: Fill unset string values from the environment. The budget
	// default applies only when neither the flag nor the config file set
	// one: zero is a valid budget and an explicit --budget 0 must reach
	// the selector untouched.
	cfg = cfg.MergeWithDefaults(config.Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	})
	if cfg.Budget == 0 && !cmd.Flags().Changed("budget") {
		cfg.Budget = defaultBudget
	}

	// Step 4: Validate required fields
	if cfg.Catalog == "" && len(selectDocsURLs) == 0 {
		return fmt.Errorf("either --catalog or --docs-url must be provided (via flag or config)")
	}
	if cfg.Catalog != "" && len(selectDocsURLs) > 0 {
		return fmt.Errorf("--catalog and --docs-url are mutually exclusive; provide only one")
	}
	if cfg.BoundedContext == "" {
		return fmt.Errorf("--context is required (via flag or config)")
	}
	if selectStory == "" {
		return fmt.Errorf("--story is required")
	}
	if cfg.Budget < 0 {
		return fmt.Errorf("--budget must be non-negative")
	}

	enhancers, err := parseEnhancerKinds(selectEnhancers)
	if err != nil {
		return err
	}

	// Step 5: classification only runs on crawled docs, so the API key is
	// required only then. The database URL stays optional; runs without
	// persistence when unset.
	if cfg.APIKey == "" && len(selectDocsURLs) > 0 {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required for docs classification")
	}

	opts := pipeline.RunOptions{
		CatalogPath:    cfg.Catalog,
		DocsURLs:       selectDocsURLs,
		CatalogName:    selectCatalogName,
		PolicyPath:     cfg.Policy,
		BoundedContext: cfg.BoundedContext,
		UserStoryID:    selectStory,
		Budget:         cfg.Budget,
		Enhancers:      enhancers,
		OutputPath:     selectOutput,
		APIKey:         cfg.APIKey,
		UseBrowser:     cfg.UseBrowser,
		Verbose:        cfg.Verbose,
		DatabaseURL:    cfg.DatabaseURL,
	}

	result, err := pipeline.RunPipeline(ctx, opts)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Selected %d artifacts (%d / %d tokens, %d dropped)\n",
		len(result.Selection.Included), result.Selection.UsedBudget, cfg.Budget, result.Selection.DroppedCount)
	for _, warning := range result.Selection.Warnings {
		_, _ = fmt.Fprintf(os.Stdout, "Warning: %s\n", warning)
	}
	if selectOutput != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Bundle written to: %s\n", selectOutput)
	}

	return nil
}
