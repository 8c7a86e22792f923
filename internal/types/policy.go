//nolint:revive // types is a standard Go package name pattern
package types

// InclusionLevel describes how much of an artifact enters the bundle.
type InclusionLevel string

// Inclusion level constants, from cheapest to most expensive.
const (
	// LevelSkip omits the artifact entirely; it is never a budget candidate.
	LevelSkip InclusionLevel = "skip"
	// LevelSignatureOnly includes the condensed view of the artifact.
	LevelSignatureOnly InclusionLevel = "signature_only"
	// LevelFull includes the complete artifact body.
	LevelFull InclusionLevel = "full"
)

// IsValid reports whether l is one of the declared inclusion levels.
func (l InclusionLevel) IsValid() bool {
	switch l {
	case LevelSkip, LevelSignatureOnly, LevelFull:
		return true
	}
	return false
}

// PolicyTable maps artifact kinds to inclusion rules plus an ordered tier
// precedence list. It is immutable configuration: loaded once, read many.
type PolicyTable struct {
	// Rules maps each kind to its inclusion level. Kinds absent from the
	// map resolve to skip; resolution itself never fails.
	Rules map[Kind]InclusionLevel `json:"rules"`
	// TierOrder lists kinds in selection precedence, highest first. Kinds
	// sharing business weight (e.g. aggregates and entities) may appear in
	// adjacent positions; the selector walks this list in order.
	TierOrder [][]Kind `json:"tier_order"`
	// Enhancers lists the optional kinds considered only when a request
	// asks for them and budget remains after the mandatory tiers.
	Enhancers []Kind `json:"enhancers"`
}
