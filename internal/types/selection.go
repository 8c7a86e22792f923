//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// SelectionRequest is the input to one selection run. It is constructed per
// invocation and never mutated after creation.
type SelectionRequest struct {
	// TargetBoundedContext restricts candidates to one bounded context.
	TargetBoundedContext string `json:"target_bounded_context" validate:"required,min=1"`
	// UserStoryID names the driving requirement artifact. It is always
	// included in full and never dropped or truncated.
	UserStoryID string `json:"user_story_id" validate:"required,min=1"`
	// Budget is the maximum total cost units allowed in the bundle.
	Budget int `json:"budget" validate:"gte=0"`
	// Enhancers lists optional kinds to consider if budget remains after
	// the mandatory tiers (e.g. tests, validation rules, domain events).
	Enhancers []Kind `json:"enhancers,omitempty"`
}

// Validate validates the SelectionRequest using the validator.
func (r *SelectionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// WantsEnhancer reports whether the request asked for the given kind as an
// optional enhancer category.
func (r *SelectionRequest) WantsEnhancer(kind Kind) bool {
	for _, k := range r.Enhancers {
		if k == kind {
			return true
		}
	}
	return false
}

// IncludedArtifact pairs a selected artifact with its chosen inclusion level
// and the cost it charged against the budget.
type IncludedArtifact struct {
	Artifact *Artifact      `json:"artifact"`
	Level    InclusionLevel `json:"level"`
	Cost     int            `json:"cost"`
}

// SelectionResult is the ordered outcome of one selection run. Order is
// significant: user story first, then tier order, then within-tier order.
type SelectionResult struct {
	Included     []IncludedArtifact `json:"included"`
	UsedBudget   int                `json:"used_budget"`
	DroppedCount int                `json:"dropped_count"`
	// Warnings records degraded-but-successful conditions observed during
	// the run (missing signature view, unknown kind). They are advisory;
	// a result with warnings is still a usable bundle.
	Warnings []string `json:"warnings,omitempty"`
}
