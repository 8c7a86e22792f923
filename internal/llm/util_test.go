package llm

import (
	"strings"
	"testing"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON untouched",
			input: `{"kind": "aggregate"}`,
			want:  `{"kind": "aggregate"}`,
		},
		{
			name:  "json code block",
			input: "```json\n{\"kind\": \"aggregate\"}\n```",
			want:  `{"kind": "aggregate"}`,
		},
		{
			name:  "generic code block",
			input: "```\n{\"kind\": \"aggregate\"}\n```",
			want:  `{"kind": "aggregate"}`,
		},
		{
			name:  "code block with language identifier",
			input: "```javascript\n{\"kind\": \"aggregate\"}\n```",
			want:  `{"kind": "aggregate"}`,
		},
		{
			name:  "surrounding whitespace",
			input: "  \n{\"kind\": \"aggregate\"}\n  ",
			want:  `{"kind": "aggregate"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJSONBlock(tt.input); got != tt.want {
				t.Errorf("CleanJSONBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildExtractionPrompt(t *testing.T) {
	schema := ArtifactClassificationSchema()
	prompt := BuildExtractionPrompt(schema, "The Order aggregate tracks line items.")

	for _, want := range []string{"kind", "bounded_context", "semantic_weight", "signature_view", "Order aggregate"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestConfig_GetModelFallback(t *testing.T) {
	cfg := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{TierLite: "gemini-2.5-flash-lite"},
	}

	// Advanced tier falls back through standard to lite.
	if got := cfg.GetModel(TierAdvanced); got != "gemini-2.5-flash-lite" {
		t.Errorf("GetModel fallback = %q, want lite model", got)
	}

	empty := &Config{Provider: ProviderGemini}
	if got := empty.GetModel(TierLite); got != "" {
		t.Errorf("empty config should return no model, got %q", got)
	}
}
