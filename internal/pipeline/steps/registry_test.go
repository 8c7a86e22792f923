package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRegistry(t *testing.T) {
	// Verify all expected steps are in the registry
	expectedSteps := []string{
		StepCrawlDocs, StepClassifyFragments, StepLoadCatalog,
		StepFreezeCatalog, StepLoadPolicy,
		StepSelectContext, StepAssembleBundle,
	}

	for _, stepName := range expectedSteps {
		def, ok := StepRegistry[stepName]
		require.True(t, ok, "Step %s should be in registry", stepName)
		assert.Equal(t, stepName, def.Name)
		assert.NotEmpty(t, def.Category)
	}
}

func TestStepRegistryCategories(t *testing.T) {
	categories := map[string][]string{
		CategoryIngestion:      {StepCrawlDocs, StepLoadCatalog, StepFreezeCatalog},
		CategoryClassification: {StepClassifyFragments},
		CategoryPolicy:         {StepLoadPolicy},
		CategorySelection:      {StepSelectContext},
		CategoryAssembly:       {StepAssembleBundle},
	}

	for category, stepNames := range categories {
		for _, stepName := range stepNames {
			def, ok := StepRegistry[stepName]
			require.True(t, ok)
			assert.Equal(t, category, def.Category, "Step %s should be in category %s", stepName, category)
		}
	}
}

func TestDependencyError(t *testing.T) {
	err := &DependencyError{
		Step:                "test_step",
		MissingDependencies: []string{"dep1", "dep2"},
	}

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing dependencies")
	assert.Equal(t, "test_step", err.Step)
	assert.Equal(t, []string{"dep1", "dep2"}, err.MissingDependencies)
}

func TestValidateDependencies_UnknownStep(t *testing.T) {
	tracker := NewTracker()
	err := tracker.ValidateDependencies("unknown_step")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step")
}

func TestValidateDependencies_Chain(t *testing.T) {
	tracker := NewTracker()

	// Selection is blocked until both catalog and policy are ready
	err := tracker.ValidateDependencies(StepSelectContext)
	require.Error(t, err)
	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Contains(t, depErr.MissingDependencies, StepFreezeCatalog)
	assert.Contains(t, depErr.MissingDependencies, StepLoadPolicy)

	tracker.Complete(StepLoadCatalog)
	tracker.Complete(StepFreezeCatalog)
	tracker.Complete(StepLoadPolicy)

	assert.NoError(t, tracker.ValidateDependencies(StepSelectContext))
}

func TestValidateDependencies_AnyOf(t *testing.T) {
	tracker := NewTracker()

	// freeze_catalog accepts either upstream path
	err := tracker.ValidateDependencies(StepFreezeCatalog)
	assert.Error(t, err)

	tracker.Complete(StepCrawlDocs)
	tracker.Complete(StepClassifyFragments)
	assert.NoError(t, tracker.ValidateDependencies(StepFreezeCatalog))

	fromFile := NewTracker()
	fromFile.Complete(StepLoadCatalog)
	assert.NoError(t, fromFile.ValidateDependencies(StepFreezeCatalog))
}

func TestTrackerStatuses(t *testing.T) {
	tracker := NewTracker()

	assert.Equal(t, StatusPending, tracker.Status(StepCrawlDocs))

	tracker.Start(StepCrawlDocs)
	assert.Equal(t, StatusInProgress, tracker.Status(StepCrawlDocs))

	tracker.Complete(StepCrawlDocs)
	assert.Equal(t, StatusCompleted, tracker.Status(StepCrawlDocs))

	tracker.Fail(StepClassifyFragments)
	assert.Equal(t, StatusFailed, tracker.Status(StepClassifyFragments))
}

func TestAvailableAndBlockedSteps(t *testing.T) {
	tracker := NewTracker()

	available := tracker.AvailableSteps()
	assert.Contains(t, available, StepCrawlDocs)
	assert.Contains(t, available, StepLoadCatalog)
	assert.Contains(t, available, StepLoadPolicy)
	assert.NotContains(t, available, StepSelectContext)

	blocked := tracker.BlockedSteps()
	assert.Contains(t, blocked, StepSelectContext)
	assert.Contains(t, blocked, StepAssembleBundle)

	tracker.Complete(StepLoadCatalog)
	tracker.Complete(StepFreezeCatalog)
	tracker.Complete(StepLoadPolicy)

	available = tracker.AvailableSteps()
	assert.Contains(t, available, StepSelectContext)
	assert.NotContains(t, available, StepLoadCatalog)
}
