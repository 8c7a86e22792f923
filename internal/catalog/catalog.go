// Package catalog provides the in-memory artifact catalog: classified
// artifact records grouped by bounded context, built once and frozen before
// the first selection run. Frozen catalogs are safe for concurrent reads.
package catalog

import (
	"sort"

	"github.com/jonathan/context-engine/internal/types"
)

// Catalog is a read-only store of classified artifacts keyed by bounded
// context. Construct with a Builder; after Build returns, the catalog is
// never mutated (build-then-freeze). Re-ingestion produces a new Catalog
// rather than updating this one in place.
type Catalog struct {
	name       string
	byContext  map[string][]types.Artifact
	byID       map[string]*types.Artifact
	totalCount int
}

// Name returns the catalog name (usually the source project name).
func (c *Catalog) Name() string {
	return c.name
}

// Lookup returns the artifacts belonging to one bounded context, sorted by
// id for reproducible iteration. Fails with NotFoundError if the bounded
// context is unknown.
func (c *Catalog) Lookup(boundedContext string) ([]types.Artifact, error) {
	artifacts, ok := c.byContext[boundedContext]
	if !ok {
		return nil, &NotFoundError{Resource: "bounded context", ID: boundedContext}
	}
	return artifacts, nil
}

// Artifact returns the artifact with the given id, searching across all
// bounded contexts. Fails with NotFoundError if absent.
func (c *Catalog) Artifact(id string) (*types.Artifact, error) {
	artifact, ok := c.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "artifact", ID: id}
	}
	return artifact, nil
}

// BoundedContexts returns the known bounded context names, sorted.
func (c *Catalog) BoundedContexts() []string {
	contexts := make([]string, 0, len(c.byContext))
	for name := range c.byContext {
		contexts = append(contexts, name)
	}
	sort.Strings(contexts)
	return contexts
}

// Len returns the total number of artifacts across all bounded contexts.
func (c *Catalog) Len() int {
	return c.totalCount
}

// Builder accumulates artifacts during the ingestion phase. Not safe for
// concurrent use; ingestion owns the builder exclusively until Build.
type Builder struct {
	name      string
	artifacts []types.Artifact
}

// NewBuilder creates a builder for a named catalog.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Add appends one artifact, normalizing its sizes. Fails with a
// DuplicateError if the id was already added.
func (b *Builder) Add(artifact types.Artifact) error {
	for i := range b.artifacts {
		if b.artifacts[i].ID == artifact.ID {
			return &DuplicateError{ID: artifact.ID}
		}
	}
	artifact.Normalize()
	b.artifacts = append(b.artifacts, artifact)
	return nil
}

// AddAll appends a batch of artifacts, stopping at the first duplicate.
func (b *Builder) AddAll(artifacts []types.Artifact) error {
	for _, a := range artifacts {
		if err := b.Add(a); err != nil {
			return err
		}
	}
	return nil
}

// Build freezes the accumulated artifacts into an immutable Catalog.
// The builder must not be reused afterward.
func (b *Builder) Build() *Catalog {
	byContext := make(map[string][]types.Artifact)
	for _, a := range b.artifacts {
		byContext[a.BoundedContext] = append(byContext[a.BoundedContext], a)
	}

	byID := make(map[string]*types.Artifact, len(b.artifacts))
	for context := range byContext {
		list := byContext[context]
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		for i := range list {
			byID[list[i].ID] = &list[i]
		}
	}

	return &Catalog{
		name:       b.name,
		byContext:  byContext,
		byID:       byID,
		totalCount: len(b.artifacts),
	}
}

// FromFile builds a frozen catalog from a parsed catalog file.
func FromFile(file *types.CatalogFile) (*Catalog, error) {
	builder := NewBuilder(file.Name)
	if err := builder.AddAll(file.Artifacts); err != nil {
		return nil, err
	}
	return builder.Build(), nil
}
