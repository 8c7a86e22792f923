// Package classify turns raw documentation text into classified artifact
// records using an LLM. Classification happens once at ingestion; the
// resulting kinds and semantic weights are immutable afterward.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/context-engine/internal/costing"
	"github.com/jonathan/context-engine/internal/llm"
	"github.com/jonathan/context-engine/internal/prompts"
	"github.com/jonathan/context-engine/internal/types"
)

// maxSemanticWeight caps model-assigned weights to the documented 0-10 scale.
const maxSemanticWeight = 10.0

// classification is the raw JSON shape returned by the model.
type classification struct {
	Kind           string  `json:"kind"`
	BoundedContext string  `json:"bounded_context"`
	SemanticWeight float64 `json:"semantic_weight"`
	SignatureView  string  `json:"signature_view,omitempty"`
}

// Classifier assigns DDD kinds, semantic weights, and signature views to
// raw text fragments.
type Classifier struct {
	client llm.Client
}

// New creates a classifier backed by the given LLM client.
func New(client llm.Client) *Classifier {
	return &Classifier{client: client}
}

// NewWithAPIKey creates a classifier with a fresh Gemini client.
// The caller owns Close on the returned classifier.
func NewWithAPIKey(ctx context.Context, apiKey string) (*Classifier, error) {
	if apiKey == "" {
		return nil, &Error{Message: "API key is required"}
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, &Error{Message: "failed to create LLM client", Cause: err}
	}
	return &Classifier{client: client}, nil
}

// Close releases the underlying LLM client.
func (c *Classifier) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SplitFragments asks the model to cut one documentation page into
// self-contained single-concept fragments.
func (c *Classifier) SplitFragments(ctx context.Context, pageText string) ([]string, error) {
	template := prompts.MustGet("classification.json", "split-fragments")
	prompt := prompts.Format(template, map[string]string{"PageText": pageText})

	response, err := c.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &Error{Message: "failed to split page into fragments", Cause: err}
	}

	var fragments []string
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(response)), &fragments); err != nil {
		return nil, &Error{Message: "failed to parse fragment response", Cause: err}
	}

	// Drop empty fragments the model sometimes emits.
	cleaned := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if strings.TrimSpace(f) != "" {
			cleaned = append(cleaned, f)
		}
	}
	return cleaned, nil
}

// ClassifyFragment classifies one text fragment into an artifact record.
// The artifact id is derived from the bounded context and a caller-supplied
// ordinal so repeated runs over the same corpus produce stable ids.
func (c *Classifier) ClassifyFragment(ctx context.Context, fragment string, ordinal int) (*types.Artifact, error) {
	schema := llm.ArtifactClassificationSchema()
	prompt := llm.BuildExtractionPrompt(schema, fragment)

	response, err := c.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &Error{Message: "failed to classify fragment", Cause: err}
	}

	var cls classification
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(response)), &cls); err != nil {
		return nil, &Error{Message: "failed to parse classification response", Cause: err}
	}

	kind := types.Kind(strings.ToLower(strings.TrimSpace(cls.Kind)))
	if !kind.IsKnown() {
		return nil, &Error{Message: fmt.Sprintf("model returned unknown kind %q", cls.Kind)}
	}
	boundedContext := strings.ToLower(strings.TrimSpace(cls.BoundedContext))
	if boundedContext == "" {
		return nil, &Error{Message: "model returned empty bounded context"}
	}

	weight := cls.SemanticWeight
	if weight < 0 {
		weight = 0
	}
	if weight > maxSemanticWeight {
		weight = maxSemanticWeight
	}

	artifact := &types.Artifact{
		ID:             fmt.Sprintf("%s.%s-%d", boundedContext, kind, ordinal),
		Kind:           kind,
		BoundedContext: boundedContext,
		FullContent:    fragment,
		SignatureView:  strings.TrimSpace(cls.SignatureView),
		SizeFull:       costing.EstimateTokens(fragment),
		SizeSignature:  costing.EstimateTokens(strings.TrimSpace(cls.SignatureView)),
		SemanticWeight: weight,
	}
	artifact.Normalize()
	return artifact, nil
}
