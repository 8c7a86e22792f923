package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath locates the compiled context_agent binary for CLI tests,
// skipping the test in short mode or when the binary has not been built.
func getBinaryPath(t *testing.T) string {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	path := filepath.Join("..", "..", "bin", "context_agent")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", path)
	}
	return path
}
