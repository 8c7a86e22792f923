// Package ingestion loads artifact catalogs into the engine: pre-classified
// JSON catalog files, and raw text pulled from rendered documentation pages
// that the classifier turns into artifact records. Ingestion owns all I/O;
// the selector only ever sees frozen catalogs.
package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/context-engine/internal/catalog"
	"github.com/jonathan/context-engine/internal/schemas"
	"github.com/jonathan/context-engine/internal/types"
)

// LoadCatalogFile reads and parses a pre-classified catalog JSON file,
// validating it against the artifact catalog schema when the schema file can
// be resolved. Artifact sizes are normalized during catalog construction.
func LoadCatalogFile(path string) (*types.CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to read catalog file %s", path), Cause: err}
	}

	if schemaPath := schemas.ResolveSchemaPath(filepath.Join("schemas", schemas.ArtifactCatalogSchema)); schemaPath != "" {
		if err := ValidateCatalogBytes(schemaPath, data); err != nil {
			return nil, &Error{Message: "catalog file failed schema validation", Cause: err}
		}
	}

	var file types.CatalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &Error{Message: "failed to parse catalog JSON", Cause: err}
	}
	if file.Name == "" {
		return nil, &Error{Message: "catalog file has no name"}
	}

	return &file, nil
}

// ValidateCatalogBytes checks raw catalog JSON against the schema file.
func ValidateCatalogBytes(schemaPath string, data []byte) error {
	schemaData, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema %s: %w", schemaPath, err)
	}
	return schemas.ValidateJSONString(string(schemaData), string(data))
}

// BuildCatalog loads a catalog file and freezes it into an immutable
// catalog ready for selection runs.
func BuildCatalog(path string) (*catalog.Catalog, error) {
	file, err := LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.FromFile(file)
	if err != nil {
		return nil, &Error{Message: "failed to build catalog", Cause: err}
	}
	return cat, nil
}

// Error represents an ingestion failure.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
