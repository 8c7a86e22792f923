// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/context-engine/internal/catalog"
	"github.com/jonathan/context-engine/internal/policy"
	"github.com/jonathan/context-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCatalog outputs a human-readable summary of a frozen catalog.
func (p *Printer) PrintCatalog(cat *catalog.Catalog) {
	if cat == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:       %s\n", cat.Name()))
	sb.WriteString(fmt.Sprintf("Artifacts:  %d\n", cat.Len()))
	sb.WriteString("\n")

	contexts := cat.BoundedContexts()
	if len(contexts) > 0 {
		sb.WriteString("Bounded Contexts:\n")
		count := min(len(contexts), maxItemsToShow)
		for i := 0; i < count; i++ {
			name := contexts[i]
			artifacts, err := cat.Lookup(name)
			if err != nil {
				continue
			}
			sb.WriteString(fmt.Sprintf("  • %s (%d artifacts)\n", name, len(artifacts)))
		}
		if len(contexts) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(contexts)-maxItemsToShow))
		}
	}

	p.printBox("ARTIFACT CATALOG", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPolicyTable outputs the inclusion rules, tier order, and enhancer kinds.
func (p *Printer) PrintPolicyTable(table *policy.Table) {
	if table == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString("Tier Order:\n")
	for i, tier := range table.TierOrder() {
		names := make([]string, len(tier))
		for j, kind := range tier {
			names[j] = string(kind)
		}
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, strings.Join(names, ", ")))
	}
	sb.WriteString("\n")

	sb.WriteString("Inclusion Rules:\n")
	for _, kind := range types.AllKinds() {
		if !table.HasRule(kind) {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %-22s %s\n", kind, table.Resolve(kind)))
	}

	if enhancers := table.Enhancers(); len(enhancers) > 0 {
		sb.WriteString("\nEnhancers:\n")
		names := make([]string, len(enhancers))
		for i, kind := range enhancers {
			names[i] = string(kind)
		}
		sb.WriteString(fmt.Sprintf("  %s\n", strings.Join(names, ", ")))
	}

	p.printBox("INCLUSION POLICY TABLE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSelectionResult outputs the included artifacts with levels and costs,
// plus budget usage and drop counts.
func (p *Printer) PrintSelectionResult(result *types.SelectionResult, budget int) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Included:  %d artifacts\n", len(result.Included)))
	sb.WriteString(fmt.Sprintf("Budget:    %d / %d tokens\n", result.UsedBudget, budget))
	sb.WriteString(fmt.Sprintf("Dropped:   %d\n", result.DroppedCount))
	sb.WriteString("\n")

	count := min(len(result.Included), maxItemsToShow)
	for i := 0; i < count; i++ {
		inc := result.Included[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, inc.Artifact.ID))
		sb.WriteString(fmt.Sprintf("    %s, %d tokens\n", inc.Level, inc.Cost))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(result.Included) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more artifacts", len(result.Included)-maxItemsToShow))
	}

	p.printBox("SELECTION RESULT", sb.String())
}

// PrintWarnings outputs selection warnings, or a clean indicator when none.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO WARNINGS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d warnings:\n\n", len(warnings)))

	for i, w := range warnings {
		if len(w) > 50 {
			w = w[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s\n", w))
		if i < len(warnings)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SELECTION WARNINGS", sb.String())
}

// PrintBundle outputs bundle stats without dumping the full text.
func (p *Printer) PrintBundle(bundle *types.Bundle) {
	if bundle == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Sections:   %d\n", len(bundle.Sections)))
	sb.WriteString(fmt.Sprintf("Total cost: %d tokens\n", bundle.TotalCost))
	sb.WriteString(fmt.Sprintf("Length:     %d chars\n", len(bundle.Text)))

	count := min(len(bundle.Sections), maxItemsToShow)
	if count > 0 {
		sb.WriteString("\n")
	}
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s\n", bundle.Sections[i].ArtifactID))
	}
	if len(bundle.Sections) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more sections", len(bundle.Sections)-maxItemsToShow))
	}

	p.printBox("ASSEMBLED BUNDLE", strings.TrimSuffix(sb.String(), "\n"))
}
