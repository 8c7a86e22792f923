// Package prompts provides access to the externalized LLM prompt templates.
// Prompt text lives in JSON files embedded at compile time so classification
// wording can be tuned without touching Go code.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// Parsed prompt files, keyed by filename. Files are small and immutable,
// so parse once and keep them.
var (
	cacheMu sync.Mutex
	cache   = make(map[string]map[string]string)
)

// Get retrieves a prompt by filename and key. The filename is bare
// (e.g. "classification.json"), with no directory component.
func Get(filename, key string) (string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts required at initialization time; it panics
// instead of returning an error.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders with values from data.
// Placeholders without a value are left in place.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result
}

func loadFile(filename string) (map[string]string, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if prompts, exists := cache[filename]; exists {
		return prompts, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	cache[filename] = prompts
	return prompts, nil
}
