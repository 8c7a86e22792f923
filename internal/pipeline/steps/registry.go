// Package steps provides step definitions, dependency validation, and step
// status tracking for the context engine pipeline.
package steps

import (
	"fmt"
	"sort"
	"sync"
)

// Step categories
const (
	CategoryIngestion      = "ingestion"
	CategoryClassification = "classification"
	CategoryPolicy         = "policy"
	CategorySelection      = "selection"
	CategoryAssembly       = "assembly"
)

// Step names
const (
	StepCrawlDocs         = "crawl_docs"
	StepClassifyFragments = "classify_fragments"
	StepLoadCatalog       = "load_catalog"
	StepFreezeCatalog     = "freeze_catalog"
	StepLoadPolicy        = "load_policy"
	StepSelectContext     = "select_context"
	StepAssembleBundle    = "assemble_bundle"
)

// Step statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name     string
	Category string
	// Dependencies must all be completed before the step can run.
	Dependencies []string
	// AnyOf requires at least one member to be completed. Used where a step
	// has alternative upstream paths (catalog from file vs. from docs).
	AnyOf []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	StepCrawlDocs: {
		Name:         StepCrawlDocs,
		Category:     CategoryIngestion,
		Dependencies: []string{},
	},
	StepClassifyFragments: {
		Name:         StepClassifyFragments,
		Category:     CategoryClassification,
		Dependencies: []string{StepCrawlDocs},
	},
	StepLoadCatalog: {
		Name:         StepLoadCatalog,
		Category:     CategoryIngestion,
		Dependencies: []string{},
	},
	StepFreezeCatalog: {
		Name:         StepFreezeCatalog,
		Category:     CategoryIngestion,
		Dependencies: []string{},
		AnyOf:        []string{StepLoadCatalog, StepClassifyFragments},
	},
	StepLoadPolicy: {
		Name:         StepLoadPolicy,
		Category:     CategoryPolicy,
		Dependencies: []string{},
	},
	StepSelectContext: {
		Name:         StepSelectContext,
		Category:     CategorySelection,
		Dependencies: []string{StepFreezeCatalog, StepLoadPolicy},
	},
	StepAssembleBundle: {
		Name:         StepAssembleBundle,
		Category:     CategoryAssembly,
		Dependencies: []string{StepSelectContext},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s missing dependencies: %v", e.Step, e.MissingDependencies)
}

// Tracker records step statuses for one pipeline run. Safe for concurrent
// use; branches running in parallel mark their own steps.
type Tracker struct {
	mu       sync.RWMutex
	statuses map[string]string
}

// NewTracker creates an empty tracker; every registered step starts pending.
func NewTracker() *Tracker {
	return &Tracker{statuses: make(map[string]string)}
}

// Start marks a step as in progress
func (t *Tracker) Start(stepName string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.statuses[stepName] = StatusInProgress
}

// Complete marks a step as completed
func (t *Tracker) Complete(stepName string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.statuses[stepName] = StatusCompleted
}

// Fail marks a step as failed
func (t *Tracker) Fail(stepName string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.statuses[stepName] = StatusFailed
}

// Status returns the recorded status of a step, pending if never touched.
func (t *Tracker) Status(stepName string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if status, ok := t.statuses[stepName]; ok {
		return status
	}
	return StatusPending
}

// ValidateDependencies checks whether every required dependency of a step is
// completed in this tracker.
func (t *Tracker) ValidateDependencies(stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if t.Status(dep) != StatusCompleted {
			missing = append(missing, dep)
		}
	}

	if len(def.AnyOf) > 0 {
		satisfied := false
		for _, dep := range def.AnyOf {
			if t.Status(dep) == StatusCompleted {
				satisfied = true
				break
			}
		}
		if !satisfied {
			missing = append(missing, fmt.Sprintf("one of %v", def.AnyOf))
		}
	}

	if len(missing) > 0 {
		return &DependencyError{Step: stepName, MissingDependencies: missing}
	}
	return nil
}

// AvailableSteps returns steps whose dependencies are met and that have not
// run yet, sorted by name for stable output.
func (t *Tracker) AvailableSteps() []string {
	var available []string
	for stepName := range StepRegistry {
		status := t.Status(stepName)
		if status == StatusCompleted || status == StatusInProgress {
			continue
		}
		if err := t.ValidateDependencies(stepName); err != nil {
			continue
		}
		available = append(available, stepName)
	}
	sort.Strings(available)
	return available
}

// BlockedSteps returns steps whose dependencies are not met, sorted by name.
func (t *Tracker) BlockedSteps() []string {
	var blocked []string
	for stepName := range StepRegistry {
		status := t.Status(stepName)
		if status == StatusCompleted || status == StatusInProgress {
			continue
		}
		if err := t.ValidateDependencies(stepName); err != nil {
			blocked = append(blocked, stepName)
		}
	}
	sort.Strings(blocked)
	return blocked
}
