// Package main provides the entry point for the context engine CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "context_agent",
	Short: "DDD-aware LLM context engine",
	Long:  "Context engine selects classified artifact excerpts from a domain model catalog into deterministic, budget-bounded LLM context bundles, via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
