// Package policy provides the inclusion policy table mapping artifact kinds
// to inclusion rules, plus the tier precedence order used by the selector.
// The table is a static lookup keyed by kind, not dispatch by type: new kinds
// are supported by inserting rows, never by subclassing.
package policy

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/context-engine/internal/types"
)

// Table is an immutable resolved policy: inclusion rules per kind plus the
// ordered tier precedence the selector walks. Construct via Default or Load;
// read-only afterward, safe for concurrent use.
type Table struct {
	rules     map[types.Kind]types.InclusionLevel
	tierOrder [][]types.Kind
	enhancers []types.Kind
}

// Resolve returns the inclusion level for a kind. Total function: kinds
// without a rule resolve to skip. The caller is responsible for logging a
// warning when an unknown kind is skipped.
func (t *Table) Resolve(kind types.Kind) types.InclusionLevel {
	if level, ok := t.rules[kind]; ok {
		return level
	}
	return types.LevelSkip
}

// HasRule reports whether the table carries an explicit rule for kind.
// Used by callers to distinguish a configured skip from the unknown-kind
// default when deciding whether to warn.
func (t *Table) HasRule(kind types.Kind) bool {
	_, ok := t.rules[kind]
	return ok
}

// TierOrder returns the mandatory tiers in precedence order, highest first.
// The returned slices must not be mutated.
func (t *Table) TierOrder() [][]types.Kind {
	return t.tierOrder
}

// Enhancers returns the optional kinds considered only on request.
func (t *Table) Enhancers() []types.Kind {
	return t.enhancers
}

// IsEnhancer reports whether kind belongs to the optional enhancer set.
func (t *Table) IsEnhancer(kind types.Kind) bool {
	for _, k := range t.enhancers {
		if k == kind {
			return true
		}
	}
	return false
}

// Default returns the built-in policy table for DDD artifact catalogs.
// Aggregates and entities lead, followed by domain services, value objects,
// repository interfaces, application services, and command/DTOs; tests,
// validation rules, and domain events are optional enhancers. The user story
// is handled out of band by the selector and carries no tier.
func Default() *Table {
	return &Table{
		rules: map[types.Kind]types.InclusionLevel{
			types.KindAggregate:           types.LevelFull,
			types.KindEntity:              types.LevelFull,
			types.KindDomainService:       types.LevelFull,
			types.KindValueObject:         types.LevelSignatureOnly,
			types.KindRepositoryInterface: types.LevelSignatureOnly,
			types.KindApplicationService:  types.LevelSignatureOnly,
			types.KindCommandDTO:          types.LevelSignatureOnly,
			types.KindErrorModel:          types.LevelSkip,
			types.KindUserStory:           types.LevelFull,
			types.KindTest:                types.LevelSignatureOnly,
			types.KindValidationRule:      types.LevelSignatureOnly,
			types.KindDomainEvent:         types.LevelSignatureOnly,
		},
		tierOrder: [][]types.Kind{
			{types.KindAggregate, types.KindEntity},
			{types.KindDomainService},
			{types.KindValueObject},
			{types.KindRepositoryInterface},
			{types.KindApplicationService},
			{types.KindCommandDTO},
		},
		enhancers: []types.Kind{
			types.KindTest,
			types.KindValidationRule,
			types.KindDomainEvent,
		},
	}
}

// Load reads a policy table from a JSON file (types.PolicyTable layout) and
// validates it. The file should be schema-checked with
// schemas/policy_table.schema.json before loading; Load repeats the
// structural checks so it is safe to call directly.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file %s: %w", path, err)
	}

	var file types.PolicyTable
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse policy JSON: %w", err)
	}

	return FromConfig(&file)
}

// FromConfig builds a Table from a parsed PolicyTable configuration.
func FromConfig(cfg *types.PolicyTable) (*Table, error) {
	if len(cfg.Rules) == 0 {
		return nil, fmt.Errorf("policy table has no rules")
	}

	rules := make(map[types.Kind]types.InclusionLevel, len(cfg.Rules))
	for kind, level := range cfg.Rules {
		if !level.IsValid() {
			return nil, fmt.Errorf("policy table: invalid inclusion level %q for kind %q", level, kind)
		}
		rules[kind] = level
	}

	// Tier order and enhancers may be omitted; fall back to the defaults so
	// a rules-only override file still yields a complete table.
	def := Default()
	tierOrder := cfg.TierOrder
	if len(tierOrder) == 0 {
		tierOrder = def.tierOrder
	}
	enhancers := cfg.Enhancers
	if len(enhancers) == 0 {
		enhancers = def.enhancers
	}

	seen := make(map[types.Kind]bool)
	for _, tier := range tierOrder {
		for _, kind := range tier {
			if seen[kind] {
				return nil, fmt.Errorf("policy table: kind %q appears in more than one tier", kind)
			}
			seen[kind] = true
		}
	}
	for _, kind := range enhancers {
		if seen[kind] {
			return nil, fmt.Errorf("policy table: enhancer kind %q also appears in a mandatory tier", kind)
		}
		seen[kind] = true
	}

	return &Table{
		rules:     rules,
		tierOrder: tierOrder,
		enhancers: enhancers,
	}, nil
}
