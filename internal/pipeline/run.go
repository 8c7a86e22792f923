// Package pipeline provides the high-level orchestration for the context
// engine: ingest documentation into a catalog, load the inclusion policy,
// run selection, and assemble the bundle.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/context-engine/internal/assembly"
	"github.com/jonathan/context-engine/internal/catalog"
	"github.com/jonathan/context-engine/internal/classify"
	"github.com/jonathan/context-engine/internal/db"
	"github.com/jonathan/context-engine/internal/fetch"
	"github.com/jonathan/context-engine/internal/ingestion"
	"github.com/jonathan/context-engine/internal/observability"
	"github.com/jonathan/context-engine/internal/pipeline/steps"
	"github.com/jonathan/context-engine/internal/policy"
	"github.com/jonathan/context-engine/internal/selection"
	"github.com/jonathan/context-engine/internal/types"
)

// maxConcurrentFetches bounds parallel documentation page fetches.
const maxConcurrentFetches = 3

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	CatalogPath    string   // pre-classified catalog JSON file
	DocsURLs       []string // documentation pages to crawl and classify
	CatalogName    string   // catalog name when building from docs
	PolicyPath     string   // policy table JSON file, default table if empty
	BoundedContext string
	UserStoryID    string
	Budget         int
	Enhancers      []types.Kind
	OutputPath     string // bundle destination, stdout summary only if empty
	APIKey         string
	UseBrowser     bool
	Verbose        bool
	DatabaseURL    string
	OnProgress     ProgressCallback
}

// Result holds the outputs of one full pipeline run
type Result struct {
	Catalog   *catalog.Catalog
	Selection *types.SelectionResult
	Bundle    *types.Bundle
	RunID     uuid.UUID
}

// logPrefix is used to distinguish concurrent log output
type logPrefix string

const (
	prefixCatalog logPrefix = "[Catalog] "
	prefixPolicy  logPrefix = "[Policy]  "
)

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// RunPipeline orchestrates the full selection pipeline
func RunPipeline(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.CatalogPath == "" && len(opts.DocsURLs) == 0 {
		return nil, fmt.Errorf("either a catalog file or documentation URLs are required")
	}

	// Initialize observability printer for verbose output
	printer := observability.NewPrinter(os.Stdout)
	tracker := steps.NewTracker()

	// Initialize database connection if configured
	var database *db.DB
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
		}
	}

	// =========================================================================
	// PARALLEL EXECUTION: Catalog Branch + Policy Branch
	// =========================================================================
	g, gCtx := errgroup.WithContext(ctx)

	// Each branch writes its own variable; Wait establishes the
	// happens-before edge for the reads below.
	var catalogFile *types.CatalogFile
	var table *policy.Table

	// Catalog branch: load a pre-classified file or crawl and classify docs
	g.Go(func() error {
		file, err := runCatalogBranch(gCtx, opts, tracker, database)
		if err != nil {
			return fmt.Errorf("catalog branch failed: %w", err)
		}
		catalogFile = file
		return nil
	})

	// Policy branch: load the inclusion policy table
	g.Go(func() error {
		loaded, err := runPolicyBranch(gCtx, opts, tracker)
		if err != nil {
			return fmt.Errorf("policy branch failed: %w", err)
		}
		table = loaded
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// =========================================================================

	fmt.Printf("Freezing catalog (%d artifacts)...\n", len(catalogFile.Artifacts))
	cat, err := catalog.FromFile(catalogFile)
	if err != nil {
		return nil, fmt.Errorf("freezing catalog failed: %w", err)
	}
	tracker.Complete(steps.StepFreezeCatalog)
	emitProgress(&opts, steps.StepFreezeCatalog, steps.CategoryIngestion,
		fmt.Sprintf("Frozen catalog %s with %d artifacts", cat.Name(), cat.Len()), nil)
	if opts.Verbose {
		printer.PrintCatalog(cat)
		printer.PrintPolicyTable(table)
	}

	// Persist the catalog if connected
	var catalogRecord *db.CatalogRecord
	if database != nil {
		source := opts.CatalogPath
		if source == "" && len(opts.DocsURLs) > 0 {
			source = opts.DocsURLs[0]
		}
		catalogRecord, err = database.SaveCatalog(ctx, catalogFile, source)
		if err != nil {
			fmt.Printf("Warning: Failed to save catalog: %v\n", err)
		} else if opts.Verbose {
			fmt.Printf("[VERBOSE] Saved catalog: %s\n", catalogRecord.ID)
		}
	}

	req := &types.SelectionRequest{
		TargetBoundedContext: opts.BoundedContext,
		UserStoryID:          opts.UserStoryID,
		Budget:               opts.Budget,
		Enhancers:            opts.Enhancers,
	}

	// Create a run record if connected
	var runID uuid.UUID
	if database != nil && catalogRecord != nil {
		run, err := database.CreateSelectionRun(ctx, catalogRecord.ID, req)
		if err != nil {
			fmt.Printf("Warning: Failed to create selection run: %v\n", err)
		} else {
			runID = run.ID
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Created selection run: %s\n", runID)
			}
		}
	}

	fmt.Printf("Selecting context for %s within %d tokens...\n", opts.UserStoryID, opts.Budget)
	tracker.Start(steps.StepSelectContext)
	result, err := selection.Select(cat, table, req)
	if err != nil {
		tracker.Fail(steps.StepSelectContext)
		if database != nil && runID != uuid.Nil {
			_ = database.FailSelectionRun(ctx, runID, err.Error())
		}
		return nil, fmt.Errorf("selection failed: %w", err)
	}
	tracker.Complete(steps.StepSelectContext)
	if opts.Verbose {
		printer.PrintSelectionResult(result, opts.Budget)
		printer.PrintWarnings(result.Warnings)
	}
	emitProgress(&opts, steps.StepSelectContext, steps.CategorySelection,
		fmt.Sprintf("Selected %d artifacts using %d/%d tokens", len(result.Included), result.UsedBudget, opts.Budget), result)

	fmt.Printf("Assembling bundle...\n")
	tracker.Start(steps.StepAssembleBundle)
	bundle, err := assembly.Assemble(result)
	if err != nil {
		tracker.Fail(steps.StepAssembleBundle)
		if database != nil && runID != uuid.Nil {
			_ = database.FailSelectionRun(ctx, runID, err.Error())
		}
		return nil, fmt.Errorf("assembling bundle failed: %w", err)
	}
	tracker.Complete(steps.StepAssembleBundle)
	if opts.Verbose {
		printer.PrintBundle(bundle)
	}
	emitProgress(&opts, steps.StepAssembleBundle, steps.CategoryAssembly,
		fmt.Sprintf("Assembled bundle with %d sections", len(bundle.Sections)), nil)

	// Mark run as completed
	if database != nil && runID != uuid.Nil {
		if err := database.CompleteSelectionRun(ctx, runID, result, bundle); err != nil {
			fmt.Printf("Warning: Failed to complete selection run: %v\n", err)
		}
	}

	if opts.OutputPath != "" {
		if err := os.WriteFile(opts.OutputPath, []byte(bundle.Text), 0o644); err != nil {
			return nil, fmt.Errorf("writing bundle to %s failed: %w", opts.OutputPath, err)
		}
		fmt.Printf("Done! Bundle written to %s.\n", opts.OutputPath)
	} else {
		fmt.Printf("Done! Bundle assembled (%d tokens).\n", bundle.TotalCost)
	}

	return &Result{
		Catalog:   cat,
		Selection: result,
		Bundle:    bundle,
		RunID:     runID,
	}, nil
}

// runCatalogBranch produces a catalog file either by loading a pre-classified
// JSON file or by crawling documentation pages and classifying them.
func runCatalogBranch(ctx context.Context, opts RunOptions, tracker *steps.Tracker, database *db.DB) (*types.CatalogFile, error) {
	prefix := prefixCatalog

	if opts.CatalogPath != "" {
		fmt.Printf("%sLoading catalog file: %s...\n", prefix, opts.CatalogPath)
		tracker.Start(steps.StepLoadCatalog)
		file, err := ingestion.LoadCatalogFile(opts.CatalogPath)
		if err != nil {
			tracker.Fail(steps.StepLoadCatalog)
			return nil, err
		}
		tracker.Complete(steps.StepLoadCatalog)
		emitProgress(&opts, steps.StepLoadCatalog, steps.CategoryIngestion,
			fmt.Sprintf("Loaded catalog %s with %d artifacts", file.Name, len(file.Artifacts)), nil)
		fmt.Printf("%s✅ Catalog branch complete.\n", prefix)
		return file, nil
	}

	// Crawl the documentation pages concurrently, preserving URL order.
	fmt.Printf("%sCrawling %d documentation pages...\n", prefix, len(opts.DocsURLs))
	tracker.Start(steps.StepCrawlDocs)

	fetcher := fetch.NewCachedFetcher(database, nil)
	docs := make([]*ingestion.RawDocument, len(opts.DocsURLs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, urlStr := range opts.DocsURLs {
		g.Go(func() error {
			doc, err := ingestion.IngestFromURLCached(gCtx, fetcher, urlStr, opts.UseBrowser, opts.Verbose)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		tracker.Fail(steps.StepCrawlDocs)
		return nil, err
	}
	tracker.Complete(steps.StepCrawlDocs)
	emitProgress(&opts, steps.StepCrawlDocs, steps.CategoryIngestion,
		fmt.Sprintf("Crawled %d documentation pages", len(docs)), nil)

	// Classify sequentially: artifact ordinals must be stable across runs.
	fmt.Printf("%sClassifying documentation fragments...\n", prefix)
	tracker.Start(steps.StepClassifyFragments)

	classifier, err := classify.NewWithAPIKey(ctx, opts.APIKey)
	if err != nil {
		tracker.Fail(steps.StepClassifyFragments)
		return nil, err
	}
	defer func() { _ = classifier.Close() }()

	name := opts.CatalogName
	if name == "" {
		name = "docs"
	}
	ordinals := make(map[string]int)

	var artifacts []types.Artifact
	for _, doc := range docs {
		fragments, err := classifier.SplitFragments(ctx, doc.Text)
		if err != nil {
			tracker.Fail(steps.StepClassifyFragments)
			return nil, err
		}
		if opts.Verbose {
			fmt.Printf("%s[VERBOSE] %s: %d fragments\n", prefix, doc.URL, len(fragments))
		}
		for _, fragment := range fragments {
			artifact, err := classifier.ClassifyFragment(ctx, fragment, 0)
			if err != nil {
				fmt.Printf("%sWarning: Skipping unclassifiable fragment: %v\n", prefix, err)
				continue
			}
			// Re-key the ordinal per bounded context and kind so ids stay
			// unique across pages.
			key := artifact.BoundedContext + "." + string(artifact.Kind)
			ordinals[key]++
			artifact.ID = fmt.Sprintf("%s-%d", key, ordinals[key])
			artifacts = append(artifacts, *artifact)
		}
	}
	if len(artifacts) == 0 {
		tracker.Fail(steps.StepClassifyFragments)
		return nil, fmt.Errorf("classification produced no artifacts")
	}
	tracker.Complete(steps.StepClassifyFragments)
	emitProgress(&opts, steps.StepClassifyFragments, steps.CategoryClassification,
		fmt.Sprintf("Classified %d artifacts", len(artifacts)), nil)

	fmt.Printf("%s✅ Catalog branch complete.\n", prefix)
	return &types.CatalogFile{Name: name, Artifacts: artifacts}, nil
}

// runPolicyBranch loads the inclusion policy table from a file, falling back
// to the default table when no path is given.
func runPolicyBranch(_ context.Context, opts RunOptions, tracker *steps.Tracker) (*policy.Table, error) {
	prefix := prefixPolicy

	tracker.Start(steps.StepLoadPolicy)
	if opts.PolicyPath == "" {
		fmt.Printf("%sUsing default policy table...\n", prefix)
		tracker.Complete(steps.StepLoadPolicy)
		return policy.Default(), nil
	}

	fmt.Printf("%sLoading policy table: %s...\n", prefix, opts.PolicyPath)
	table, err := policy.Load(opts.PolicyPath)
	if err != nil {
		tracker.Fail(steps.StepLoadPolicy)
		return nil, err
	}
	tracker.Complete(steps.StepLoadPolicy)
	emitProgress(&opts, steps.StepLoadPolicy, steps.CategoryPolicy,
		fmt.Sprintf("Loaded policy table from %s", opts.PolicyPath), nil)

	fmt.Printf("%s✅ Policy branch complete.\n", prefix)
	return table, nil
}
