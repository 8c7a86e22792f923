// Package selection implements the context selector: the deterministic
// greedy algorithm that fills a token budget with bounded-context artifacts.
package selection

import (
	"fmt"
	"sort"

	"github.com/jonathan/context-engine/internal/catalog"
	"github.com/jonathan/context-engine/internal/costing"
	"github.com/jonathan/context-engine/internal/policy"
	"github.com/jonathan/context-engine/internal/types"
)

// Select chooses which artifacts enter the bundle and at what inclusion
// level, maximizing semantic coverage within the request budget.
//
// The algorithm is greedy with priority tiers:
//  1. The user story is always included at full level and its cost deducted
//     first. If it alone exceeds the budget, the run fails.
//  2. Remaining candidates from the target bounded context are partitioned
//     into tiers by kind, following the policy table's precedence order.
//  3. Within a tier, candidates are sorted by semantic weight descending,
//     tie-broken by id ascending, so identical inputs always produce
//     identical output.
//  4. A candidate that does not fit is dropped without aborting the tier:
//     one oversized artifact must not block smaller ones behind it. Broad
//     coverage wins over exhaustive inclusion of any one kind.
//  5. Requested enhancer kinds get a final pass over whatever budget is
//     left after the mandatory tiers.
func Select(cat *catalog.Catalog, table *policy.Table, req *types.SelectionRequest) (*types.SelectionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, &Error{Message: "invalid selection request", Cause: err}
	}

	// The user story is non-negotiable: resolve it first and charge its
	// full cost before any candidate is considered.
	story, err := cat.Artifact(req.UserStoryID)
	if err != nil {
		return nil, err
	}
	storyCost := costing.Estimate(story, types.LevelFull)
	if storyCost > req.Budget {
		return nil, &BudgetExceededError{
			UserStoryID: req.UserStoryID,
			Required:    storyCost,
			Budget:      req.Budget,
		}
	}

	result := &types.SelectionResult{
		Included: []types.IncludedArtifact{
			{Artifact: story, Level: types.LevelFull, Cost: storyCost},
		},
		UsedBudget: storyCost,
	}
	remaining := req.Budget - storyCost

	candidates, err := cat.Lookup(req.TargetBoundedContext)
	if err != nil {
		return nil, err
	}

	byKind := make(map[types.Kind][]*types.Artifact)
	for i := range candidates {
		a := &candidates[i]
		if a.ID == req.UserStoryID {
			continue // already included
		}
		if !a.Kind.IsKnown() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("artifact %s has unknown kind %q; skipping", a.ID, a.Kind))
			continue
		}
		byKind[a.Kind] = append(byKind[a.Kind], a)
	}

	// Mandatory tiers in precedence order.
	for _, tier := range table.TierOrder() {
		remaining = selectTier(result, table, gatherTier(byKind, tier), remaining)
	}

	// Enhancer pass: only the kinds the request asked for, only with
	// leftover budget.
	if remaining > 0 && len(req.Enhancers) > 0 {
		var wanted []types.Kind
		for _, kind := range table.Enhancers() {
			if req.WantsEnhancer(kind) {
				wanted = append(wanted, kind)
			}
		}
		selectTier(result, table, gatherTier(byKind, wanted), remaining)
	}

	result.UsedBudget = 0
	for _, inc := range result.Included {
		result.UsedBudget += inc.Cost
	}
	return result, nil
}

// gatherTier collects the candidates for one tier's kinds and orders them by
// semantic weight descending, id ascending. Stable and reproducible across
// runs on identical input.
func gatherTier(byKind map[types.Kind][]*types.Artifact, kinds []types.Kind) []*types.Artifact {
	var tier []*types.Artifact
	for _, kind := range kinds {
		tier = append(tier, byKind[kind]...)
	}
	sort.Slice(tier, func(i, j int) bool {
		if tier[i].SemanticWeight != tier[j].SemanticWeight {
			return tier[i].SemanticWeight > tier[j].SemanticWeight
		}
		return tier[i].ID < tier[j].ID
	})
	return tier
}

// selectTier walks one ordered tier, including every candidate that fits and
// dropping the ones that do not. Returns the budget left afterward.
func selectTier(result *types.SelectionResult, table *policy.Table, tier []*types.Artifact, remaining int) int {
	for _, a := range tier {
		level := table.Resolve(a.Kind)
		if level == types.LevelSkip {
			// Never a candidate: not included, not counted as dropped.
			if !table.HasRule(a.Kind) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("artifact %s: kind %q has no policy rule; skipping", a.ID, a.Kind))
			}
			continue
		}
		cost := costing.Estimate(a, level)
		if cost > remaining {
			result.DroppedCount++
			continue // do not abort the tier; smaller artifacts may still fit
		}

		// Warn only for artifacts that actually charged the fallback cost;
		// a dropped artifact never did.
		if level == types.LevelSignatureOnly && !a.HasSignatureView() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("artifact %s has no signature view; using full content size", a.ID))
		}

		result.Included = append(result.Included, types.IncludedArtifact{
			Artifact: a,
			Level:    level,
			Cost:     cost,
		})
		remaining -= cost
	}
	return remaining
}
