// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock strips a markdown code fence from around a JSON document.
// Even with a JSON response MIME type, models sometimes return
// ```json ... ``` or a plain ``` fence with a language tag.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	body := strings.TrimPrefix(text, "```")

	// Drop a language tag on the opening fence line ("json", "javascript").
	// A first line containing spaces or a brace is already payload.
	if idx := strings.Index(body, "\n"); idx >= 0 {
		tag := body[:idx]
		if len(tag) < 20 && !strings.ContainsAny(tag, " {") {
			body = body[idx+1:]
		}
	}

	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}
