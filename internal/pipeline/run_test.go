package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/context-engine/internal/pipeline/steps"
	"github.com/jonathan/context-engine/internal/types"
)

func TestRunPipeline_FromCatalogFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "bundle.txt")

	var events []ProgressEvent
	opts := RunOptions{
		CatalogPath:    "testdata/sample_catalog.json",
		BoundedContext: "ordering",
		UserStoryID:    "ordering.user_story-1",
		Budget:         200,
		Enhancers:      []types.Kind{types.KindTest},
		OutputPath:     outputPath,
		OnProgress: func(event ProgressEvent) {
			events = append(events, event)
		},
	}

	result, err := RunPipeline(context.Background(), opts)
	if err != nil {
		t.Fatalf("RunPipeline failed: %v", err)
	}

	if result.Catalog == nil || result.Catalog.Len() != 6 {
		t.Fatalf("expected a frozen catalog with 6 artifacts, got %+v", result.Catalog)
	}
	if len(result.Selection.Included) == 0 {
		t.Fatal("expected at least the user story in the selection")
	}
	if result.Selection.Included[0].Artifact.ID != "ordering.user_story-1" {
		t.Errorf("first included = %s, want the user story", result.Selection.Included[0].Artifact.ID)
	}
	if result.Bundle == nil || result.Bundle.Text == "" {
		t.Fatal("expected a non-empty bundle")
	}

	written, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("bundle file not written: %v", err)
	}
	if string(written) != result.Bundle.Text {
		t.Error("bundle file content does not match assembled bundle")
	}

	// Progress events should cover load, selection, and assembly
	seen := map[string]bool{}
	for _, event := range events {
		seen[event.Step] = true
	}
	for _, step := range []string{steps.StepLoadCatalog, steps.StepFreezeCatalog, steps.StepSelectContext, steps.StepAssembleBundle} {
		if !seen[step] {
			t.Errorf("no progress event for step %s", step)
		}
	}
}

func TestRunPipeline_BoundedContextIsolation(t *testing.T) {
	opts := RunOptions{
		CatalogPath:    "testdata/sample_catalog.json",
		BoundedContext: "ordering",
		UserStoryID:    "ordering.user_story-1",
		Budget:         1000,
	}

	result, err := RunPipeline(context.Background(), opts)
	if err != nil {
		t.Fatalf("RunPipeline failed: %v", err)
	}

	for _, inc := range result.Selection.Included {
		if inc.Artifact.BoundedContext != "ordering" {
			t.Errorf("artifact %s leaked from bounded context %s", inc.Artifact.ID, inc.Artifact.BoundedContext)
		}
	}
}

func TestRunPipeline_MissingUserStory(t *testing.T) {
	opts := RunOptions{
		CatalogPath:    "testdata/sample_catalog.json",
		BoundedContext: "ordering",
		UserStoryID:    "ordering.user_story-99",
		Budget:         100,
	}

	if _, err := RunPipeline(context.Background(), opts); err == nil {
		t.Fatal("expected error for unknown user story")
	}
}

func TestRunPipeline_NoInput(t *testing.T) {
	opts := RunOptions{
		BoundedContext: "ordering",
		UserStoryID:    "ordering.user_story-1",
		Budget:         100,
	}

	if _, err := RunPipeline(context.Background(), opts); err == nil {
		t.Fatal("expected error when neither catalog file nor docs URLs are given")
	}
}
