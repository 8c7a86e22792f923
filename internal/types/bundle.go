//nolint:revive // types is a standard Go package name pattern
package types

// Bundle is the assembled text output of a selection run, handed to an
// external collaborator for delivery (file, prompt injection, display).
type Bundle struct {
	// Text is the full serialized bundle, primary prompt first.
	Text string `json:"text"`
	// Sections lists the per-artifact segments in serialization order.
	Sections []BundleSection `json:"sections"`
	// TotalCost echoes the used budget of the selection that produced it.
	TotalCost int `json:"total_cost"`
}

// BundleSection is one artifact's contribution to the bundle.
type BundleSection struct {
	ArtifactID string         `json:"artifact_id"`
	Kind       Kind           `json:"kind"`
	Level      InclusionLevel `json:"level"`
	Body       string         `json:"body"`
}
