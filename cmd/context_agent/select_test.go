package main

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/context-engine/internal/types"
)

func TestParseEnhancerKinds(t *testing.T) {
	t.Run("valid kinds", func(t *testing.T) {
		kinds, err := parseEnhancerKinds([]string{"test", "domain_event"})
		require.NoError(t, err)
		assert.Equal(t, []types.Kind{types.KindTest, types.KindDomainEvent}, kinds)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		kinds, err := parseEnhancerKinds([]string{" test "})
		require.NoError(t, err)
		assert.Equal(t, []types.Kind{types.KindTest}, kinds)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := parseEnhancerKinds([]string{"spreadsheet"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown enhancer kind")
	})

	t.Run("empty input", func(t *testing.T) {
		kinds, err := parseEnhancerKinds(nil)
		require.NoError(t, err)
		assert.Empty(t, kinds)
	})
}

func TestSelectCommand_MissingStoryFlag(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)
	catalogPath := filepath.Join("..", "..", "internal", "pipeline", "testdata", "sample_catalog.json")

	cmd := exec.Command(binaryPath, "select",
		"--catalog", catalogPath,
		"--context", "ordering",
		"--budget", "100")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--story is required")
}

func TestSelectCommand_MissingInput(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "select",
		"--context", "ordering",
		"--story", "ordering.user_story-1",
		"--budget", "100")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "either --catalog or --docs-url")
}

func TestSelectCommand_CatalogAndDocsMutuallyExclusive(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)
	catalogPath := filepath.Join("..", "..", "internal", "pipeline", "testdata", "sample_catalog.json")

	cmd := exec.Command(binaryPath, "select",
		"--catalog", catalogPath,
		"--docs-url", "https://example.com/docs",
		"--context", "ordering",
		"--story", "ordering.user_story-1",
		"--budget", "100")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "mutually exclusive")
}

func TestSelectCommand_ExplicitZeroBudgetReachesSelector(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)
	catalogPath := filepath.Join("..", "..", "internal", "pipeline", "testdata", "sample_catalog.json")

	// --budget 0 must not be rewritten to the 4000 default. With budget 0
	// the mandatory user story (cost 22) cannot fit, so the run must fail
	// reporting zero available budget.
	cmd := exec.Command(binaryPath, "select",
		"--catalog", catalogPath,
		"--context", "ordering",
		"--story", "ordering.user_story-1",
		"--budget", "0")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "only 0 available")
}

func TestSelectCommand_UnknownEnhancer(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)
	catalogPath := filepath.Join("..", "..", "internal", "pipeline", "testdata", "sample_catalog.json")

	cmd := exec.Command(binaryPath, "select",
		"--catalog", catalogPath,
		"--context", "ordering",
		"--story", "ordering.user_story-1",
		"--budget", "100",
		"--enhancer", "nonsense")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "unknown enhancer kind")
}
