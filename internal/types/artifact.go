// Package types provides type definitions for structured data used throughout the context-engine system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Kind classifies an artifact by its Domain-Driven Design role.
type Kind string

// Artifact kind constants. Classification is assigned at ingestion and
// immutable afterward; the policy table is keyed by these values.
const (
	KindEntity              Kind = "entity"
	KindValueObject         Kind = "value_object"
	KindAggregate           Kind = "aggregate"
	KindDomainService       Kind = "domain_service"
	KindDomainEvent         Kind = "domain_event"
	KindRepositoryInterface Kind = "repository_interface"
	KindApplicationService  Kind = "application_service"
	KindCommandDTO          Kind = "command_dto"
	KindErrorModel          Kind = "error_model"
	KindUserStory           Kind = "user_story"
	KindTest                Kind = "test"
	KindValidationRule      Kind = "validation_rule"
)

// AllKinds lists every known artifact kind in declaration order.
// Used by schema generation and policy table validation.
func AllKinds() []Kind {
	return []Kind{
		KindEntity,
		KindValueObject,
		KindAggregate,
		KindDomainService,
		KindDomainEvent,
		KindRepositoryInterface,
		KindApplicationService,
		KindCommandDTO,
		KindErrorModel,
		KindUserStory,
		KindTest,
		KindValidationRule,
	}
}

// IsKnown reports whether k is one of the declared artifact kinds.
func (k Kind) IsKnown() bool {
	for _, known := range AllKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Artifact represents one classified unit of candidate context.
// Artifacts are loaded once per run and never mutated by selection.
type Artifact struct {
	ID             string  `json:"id"`
	Kind           Kind    `json:"kind"`
	BoundedContext string  `json:"bounded_context"`
	FullContent    string  `json:"full_content"`
	SignatureView  string  `json:"signature_view,omitempty"`
	SizeFull       int     `json:"size_full"`
	SizeSignature  int     `json:"size_signature"`
	SemanticWeight float64 `json:"semantic_weight"`
}

// HasSignatureView reports whether a condensed view exists for this artifact.
// When absent, signature-only inclusion falls back to the full content size.
func (a *Artifact) HasSignatureView() bool {
	return a.SignatureView != ""
}

// Normalize enforces the size invariant: size_full >= size_signature >= 0,
// and size_signature == size_full when no signature view exists.
// Called at ingestion so the estimator can trust the sizes.
func (a *Artifact) Normalize() {
	if a.SizeFull < 0 {
		a.SizeFull = 0
	}
	if !a.HasSignatureView() || a.SizeSignature > a.SizeFull || a.SizeSignature < 0 {
		a.SizeSignature = a.SizeFull
	}
}
