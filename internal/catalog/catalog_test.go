package catalog

import (
	"errors"
	"testing"

	"github.com/jonathan/context-engine/internal/types"
)

func buildTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	builder := NewBuilder("bookstore")
	artifacts := []types.Artifact{
		{ID: "ordering.order", Kind: types.KindAggregate, BoundedContext: "ordering", SizeFull: 50, SemanticWeight: 9},
		{ID: "ordering.money", Kind: types.KindValueObject, BoundedContext: "ordering", SizeFull: 10, SemanticWeight: 5},
		{ID: "catalog.book", Kind: types.KindEntity, BoundedContext: "catalog", SizeFull: 30, SemanticWeight: 8},
	}
	if err := builder.AddAll(artifacts); err != nil {
		t.Fatalf("AddAll failed: %v", err)
	}
	return builder.Build()
}

func TestLookup(t *testing.T) {
	cat := buildTestCatalog(t)

	ordering, err := cat.Lookup("ordering")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(ordering) != 2 {
		t.Fatalf("expected 2 ordering artifacts, got %d", len(ordering))
	}
	// Sorted by id for reproducible iteration.
	if ordering[0].ID != "ordering.money" || ordering[1].ID != "ordering.order" {
		t.Errorf("artifacts not sorted by id: %s, %s", ordering[0].ID, ordering[1].ID)
	}
}

func TestLookup_UnknownContext(t *testing.T) {
	cat := buildTestCatalog(t)

	_, err := cat.Lookup("shipping")
	if err == nil {
		t.Fatal("expected NotFoundError for unknown bounded context")
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if notFound.ID != "shipping" {
		t.Errorf("error should name the missing context, got %q", notFound.ID)
	}
}

func TestArtifactByID(t *testing.T) {
	cat := buildTestCatalog(t)

	a, err := cat.Artifact("catalog.book")
	if err != nil {
		t.Fatalf("Artifact failed: %v", err)
	}
	if a.Kind != types.KindEntity {
		t.Errorf("expected entity, got %q", a.Kind)
	}

	if _, err := cat.Artifact("nope"); err == nil {
		t.Fatal("expected NotFoundError for unknown artifact id")
	}
}

func TestBuilder_RejectsDuplicateIDs(t *testing.T) {
	builder := NewBuilder("dup")
	a := types.Artifact{ID: "x", BoundedContext: "ctx"}
	if err := builder.Add(a); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}

	err := builder.Add(a)
	if err == nil {
		t.Fatal("expected DuplicateError")
	}
	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateError, got %T", err)
	}
}

func TestBuilder_NormalizesSizes(t *testing.T) {
	builder := NewBuilder("norm")
	// No signature view: size_signature must be forced to size_full.
	if err := builder.Add(types.Artifact{ID: "x", BoundedContext: "ctx", SizeFull: 40, SizeSignature: 10}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	cat := builder.Build()

	a, err := cat.Artifact("x")
	if err != nil {
		t.Fatalf("Artifact failed: %v", err)
	}
	if a.SizeSignature != 40 {
		t.Errorf("expected normalized size_signature 40, got %d", a.SizeSignature)
	}
}

func TestBoundedContextsAndLen(t *testing.T) {
	cat := buildTestCatalog(t)

	contexts := cat.BoundedContexts()
	if len(contexts) != 2 || contexts[0] != "catalog" || contexts[1] != "ordering" {
		t.Errorf("unexpected contexts: %v", contexts)
	}
	if cat.Len() != 3 {
		t.Errorf("expected 3 artifacts, got %d", cat.Len())
	}
}

func TestFromFile(t *testing.T) {
	file := &types.CatalogFile{
		Name: "bookstore",
		Artifacts: []types.Artifact{
			{ID: "a", BoundedContext: "ordering"},
		},
	}

	cat, err := FromFile(file)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if cat.Name() != "bookstore" || cat.Len() != 1 {
		t.Errorf("unexpected catalog: name=%s len=%d", cat.Name(), cat.Len())
	}
}

func TestConcurrentReads(t *testing.T) {
	cat := buildTestCatalog(t)

	// Frozen catalogs are documented safe for concurrent reads; exercise
	// that under the race detector.
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				if _, err := cat.Lookup("ordering"); err != nil {
					t.Errorf("Lookup failed: %v", err)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
