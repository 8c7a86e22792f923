package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/context-engine/internal/observability"
	"github.com/jonathan/context-engine/internal/policy"
)

var showPolicyCmd = &cobra.Command{
	Use:   "show-policy",
	Short: "Print the resolved inclusion policy table",
	Long:  "Loads a policy table JSON file (or the built-in default table) and prints its rules, tier order, and enhancer kinds.",
	RunE:  runShowPolicy,
}

var showPolicyPath string

func init() {
	showPolicyCmd.Flags().StringVarP(&showPolicyPath, "policy", "p", "", "Path to policy table JSON file (built-in default table if empty)")
	rootCmd.AddCommand(showPolicyCmd)
}

func runShowPolicy(_ *cobra.Command, _ []string) error {
	table := policy.Default()
	if showPolicyPath != "" {
		loaded, err := policy.Load(showPolicyPath)
		if err != nil {
			return fmt.Errorf("failed to load policy table: %w", err)
		}
		table = loaded
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintPolicyTable(table)
	return nil
}
