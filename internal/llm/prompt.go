package llm

import (
	"fmt"
	"strings"

	"eventlex/internal/domain"
)

// BuildDictionaryPrompt returns the extraction prompt for turning a product
// document into an analytics event dictionary.
func BuildDictionaryPrompt(documentText string, docCtx *domain.DocumentContext) string {
	var b strings.Builder

	b.WriteString(`You are an analytics instrumentation assistant. Read the product document below and propose a structured analytics event dictionary covering the user journeys, success states, and failure states it describes.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation, just the raw JSON object.

The JSON object must have a single top-level key "events": an array of objects with this shape:
{
  "event_name": "lowercase_snake_case name",
  "event_type": "intent | success | failure",
  "event_action_type": "action | error | feature_flag",
  "event_purpose": "what decision this data enables, and why",
  "trigger_condition": "the exact moment this event fires",
  "actor": "who performs the action",
  "object": "what is acted upon",
  "context_surface": "screen or surface where it happens",
  "properties": [
    {"name": "snake_case", "type": "string | number | boolean | enum | object | array | datetime", "required": true, "example": "", "description": ""}
  ],
  "context_keys": ["shared context attribute names"],
  "lifecycle_status": "proposed",
  "error_code": "failure events only",
  "error_message": "failure events only",
  "notes": "user story or rationale, if any"
}

Cover intent, success, and failure variants for each meaningful flow. Every failure event must carry an error_code or error_message.
`)

	if docCtx != nil {
		if docCtx.FileName != "" {
			fmt.Fprintf(&b, "\nSource file: %s", docCtx.FileName)
		}
		if docCtx.FileSize > 0 {
			fmt.Fprintf(&b, " (%d bytes)", docCtx.FileSize)
		}
		if docCtx.StructureHints != "" {
			fmt.Fprintf(&b, "\nDocument structure hints: %s", docCtx.StructureHints)
		}
	}

	b.WriteString("\n\nDOCUMENT:\n")
	b.WriteString(documentText)
	return b.String()
}
