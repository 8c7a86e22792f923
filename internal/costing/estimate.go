// Package costing provides token cost estimation for candidate inclusions.
// All functions are pure and deterministic: same inputs, same cost.
package costing

import (
	"github.com/jonathan/context-engine/internal/types"
)

// charsPerToken is the heuristic ratio used to precompute artifact sizes
// from raw text at ingestion time. Roughly four characters per token holds
// for English prose and most source code.
const charsPerToken = 4

// Estimate returns the cost in budget units of including artifact at the
// given level. Skip costs nothing; signature-only costs the signature size,
// falling back to the full size when no signature view exists (a
// degraded-but-correct fallback, not an error); full costs the full size.
func Estimate(artifact *types.Artifact, level types.InclusionLevel) int {
	switch level {
	case types.LevelSkip:
		return 0
	case types.LevelSignatureOnly:
		if artifact.HasSignatureView() {
			return artifact.SizeSignature
		}
		return artifact.SizeFull
	case types.LevelFull:
		return artifact.SizeFull
	}
	return 0
}

// EstimateTokens approximates the token count of raw text. Used by the
// ingestion collaborator to precompute size_full and size_signature; the
// selector itself only ever reads the precomputed sizes.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	tokens := (len(text) + charsPerToken - 1) / charsPerToken
	if tokens < 1 {
		return 1
	}
	return tokens
}
