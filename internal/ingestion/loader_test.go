package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/context-engine/internal/types"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}
	return path
}

func TestLoadCatalogFile(t *testing.T) {
	path := writeCatalogFile(t, `{
		"name": "bookstore",
		"artifacts": [
			{
				"id": "ordering.order",
				"kind": "aggregate",
				"bounded_context": "ordering",
				"full_content": "type Order struct {}",
				"size_full": 30,
				"size_signature": 30,
				"semantic_weight": 9.0
			}
		]
	}`)

	file, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("LoadCatalogFile failed: %v", err)
	}
	if file.Name != "bookstore" || len(file.Artifacts) != 1 {
		t.Errorf("unexpected catalog: %+v", file)
	}
	if file.Artifacts[0].Kind != types.KindAggregate {
		t.Errorf("kind = %q, want aggregate", file.Artifacts[0].Kind)
	}
}

func TestLoadCatalogFile_MissingFile(t *testing.T) {
	_, err := LoadCatalogFile(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadCatalogFile_BadJSON(t *testing.T) {
	path := writeCatalogFile(t, `{not json`)
	if _, err := LoadCatalogFile(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestLoadCatalogFile_NoName(t *testing.T) {
	path := writeCatalogFile(t, `{"name": "", "artifacts": []}`)
	if _, err := LoadCatalogFile(path); err == nil {
		t.Fatal("expected error for unnamed catalog")
	}
}

func TestBuildCatalog(t *testing.T) {
	path := writeCatalogFile(t, `{
		"name": "bookstore",
		"artifacts": [
			{
				"id": "ordering.story",
				"kind": "user_story",
				"bounded_context": "ordering",
				"full_content": "As a reader...",
				"size_full": 20,
				"size_signature": 20,
				"semantic_weight": 10
			},
			{
				"id": "ordering.money",
				"kind": "value_object",
				"bounded_context": "ordering",
				"full_content": "money",
				"size_full": 10,
				"size_signature": 3,
				"semantic_weight": 5
			}
		]
	}`)

	cat, err := BuildCatalog(path)
	if err != nil {
		t.Fatalf("BuildCatalog failed: %v", err)
	}
	if cat.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cat.Len())
	}

	// No signature view: size normalization forces signature size to full.
	a, err := cat.Artifact("ordering.money")
	if err != nil {
		t.Fatalf("Artifact failed: %v", err)
	}
	if a.SizeSignature != 10 {
		t.Errorf("size_signature = %d, want normalized 10", a.SizeSignature)
	}
}

func TestBuildCatalog_DuplicateIDs(t *testing.T) {
	path := writeCatalogFile(t, `{
		"name": "dup",
		"artifacts": [
			{"id": "x", "kind": "entity", "bounded_context": "a", "full_content": "", "size_full": 1, "size_signature": 1, "semantic_weight": 1},
			{"id": "x", "kind": "entity", "bounded_context": "a", "full_content": "", "size_full": 1, "size_signature": 1, "semantic_weight": 1}
		]
	}`)

	if _, err := BuildCatalog(path); err == nil {
		t.Fatal("expected error for duplicate artifact ids")
	}
}
