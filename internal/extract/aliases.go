package extract

import "fmt"

// fieldAliases maps each canonical event field to the source keys the model
// is known to emit for it, in lookup order. Kept as a single table so the
// alias list stays a reviewable artifact instead of ad hoc property probing.
var fieldAliases = map[string][]string{
	"name":            {"event_name", "name", "eventName", "event", "title"},
	"event_type":      {"event_type", "eventType", "type"},
	"action_type":     {"event_action_type", "eventActionType", "action_type", "actionType"},
	"purpose":         {"event_purpose", "purpose", "description", "desc", "why"},
	"trigger":         {"trigger_condition", "trigger", "when", "condition"},
	"actor":           {"actor", "user_type", "who"},
	"object":          {"object", "target", "entity"},
	"context_surface": {"context_surface", "surface", "screen", "page", "location"},
	"properties":      {"properties", "props", "parameters", "params", "fields", "attributes"},
	"context_keys":    {"context_keys", "contextKeys", "context"},
	"lifecycle":       {"lifecycle_status", "lifecycle", "status"},
	"api_binding":     {"api_binding", "apiBinding", "binding", "sdk_call"},
	"error_code":      {"error_code", "errorCode", "code"},
	"error_message":   {"error_message", "errorMessage", "message"},
	"code_sample":     {"code_sample", "codeSample", "snippet"},
	"notes":           {"notes", "note", "user_story", "userStory", "rationale"},
}

// eventListAliases are the top-level keys that may hold the event array.
var eventListAliases = []string{"events", "event_dictionary", "dictionary", "analytics_events"}

// lookupField returns the first aliased value present for a canonical field.
func lookupField(obj map[string]interface{}, field string) (interface{}, bool) {
	for _, key := range fieldAliases[field] {
		if val, ok := obj[key]; ok && val != nil {
			return val, true
		}
	}
	return nil, false
}

// lookupString resolves a field alias and coerces the value to a string.
// Non-string scalars are formatted; empty strings count as absent.
func lookupString(obj map[string]interface{}, field string) (string, bool) {
	val, ok := lookupField(obj, field)
	if !ok {
		return "", false
	}
	return coerceString(val)
}

func coerceString(val interface{}) (string, bool) {
	switch v := val.(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case float64, bool:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}

// EventList pulls the raw event array out of an extraction payload. A
// missing or non-array value yields an empty list, which the structural
// validator reports downstream.
func EventList(raw RawExtraction) []interface{} {
	for _, key := range eventListAliases {
		if val, ok := raw[key]; ok {
			if list, ok := val.([]interface{}); ok {
				return list
			}
		}
	}
	return nil
}
