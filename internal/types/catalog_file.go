//nolint:revive // types is a standard Go package name pattern
package types

// CatalogFile is the on-disk representation of a pre-classified artifact
// catalog, as produced by the ingestion/classification collaborator. It is
// validated against schemas/artifact_catalog.schema.json before loading.
type CatalogFile struct {
	// Name identifies the catalog (usually the project or repo name).
	Name string `json:"name"`
	// Artifacts holds every classified record across all bounded contexts.
	Artifacts []Artifact `json:"artifacts"`
}

// BoundedContexts returns the distinct bounded context names present in the
// file, in first-seen order.
func (f *CatalogFile) BoundedContexts() []string {
	seen := make(map[string]bool)
	var contexts []string
	for _, a := range f.Artifacts {
		if !seen[a.BoundedContext] {
			seen[a.BoundedContext] = true
			contexts = append(contexts, a.BoundedContext)
		}
	}
	return contexts
}
