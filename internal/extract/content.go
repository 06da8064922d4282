package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// RawExtraction is the parsed-but-unvalidated JSON object from the model
// reply. No shape is guaranteed; the normalizer consumes it immediately.
type RawExtraction map[string]interface{}

// ExtractionError means no JSON object could be decoded from the reply text.
// The original parse failure is kept for diagnostics.
type ExtractionError struct {
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no JSON object found in model reply: %v", e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// fencedBlock matches ``` fenced code blocks, with or without a language tag.
var fencedBlock = regexp.MustCompile("(?s)```[a-zA-Z0-9_-]*\\s*(.*?)```")

// ExtractJSON locates and parses the JSON object embedded in a model reply.
// Strategies, in order: the whole text, fenced code block interiors, then the
// first balanced {...} span. The first successful parse wins. Ordering
// matters: the direct parse is strict and fast; the fallbacks accommodate
// models that wrap JSON in prose or markdown.
func ExtractJSON(raw string) (RawExtraction, error) {
	trimmed := strings.TrimSpace(raw)

	var out RawExtraction
	firstErr := json.Unmarshal([]byte(trimmed), &out)
	if firstErr == nil {
		return out, nil
	}

	for _, match := range fencedBlock.FindAllStringSubmatch(trimmed, -1) {
		var fenced RawExtraction
		if err := json.Unmarshal([]byte(strings.TrimSpace(match[1])), &fenced); err == nil {
			return fenced, nil
		}
	}

	if span, ok := braceSpan(trimmed); ok {
		var scanned RawExtraction
		if err := json.Unmarshal([]byte(span), &scanned); err == nil {
			return scanned, nil
		}
	}

	return nil, &ExtractionError{Cause: firstErr}
}

// braceSpan returns the first balanced {...} span, tracking string literals
// and escapes so braces inside JSON strings do not break the balance.
func braceSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
