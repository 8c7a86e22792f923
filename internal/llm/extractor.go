// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "ArtifactClassification")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "number"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Base every field on the input text, do not invent content.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// ArtifactClassificationSchema returns the extraction schema for classifying
// one documentation fragment into an artifact record.
func ArtifactClassificationSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ArtifactClassification",
		Description: `You are an expert Domain-Driven Design analyst. Your task is to classify a fragment of documentation or code into its DDD role and score its business meaning.
Valid kinds: entity, value_object, aggregate, domain_service, domain_event, repository_interface, application_service, command_dto, error_model, user_story, test, validation_rule.`,
		Fields: []SchemaField{
			{
				Name:        "kind",
				Type:        "\"string\"",
				Description: "One of the valid kinds listed above",
				Required:    true,
			},
			{
				Name:        "bounded_context",
				Type:        "\"string\"",
				Description: "Name of the owning bounded context, lowercase",
				Required:    true,
			},
			{
				Name:        "semantic_weight",
				Type:        "number",
				Description: "0-10 score of how much business meaning the fragment carries, higher = denser",
				Required:    true,
			},
			{
				Name:        "signature_view",
				Type:        "\"string\"",
				Description: "Condensed representation keeping structure, dropping implementation detail; empty if not applicable",
				Required:    false,
			},
		},
	}
}
