package extract

import (
	"fmt"
	"regexp"
	"strings"

	"eventlex/internal/domain"
)

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a name to lowercase snake_case: non-alphanumeric runs
// become a single underscore, leading/trailing underscores are trimmed.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnumRun.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// Normalize maps loosely-shaped raw event objects onto the canonical event
// schema. It never fails on a single malformed item; the item is skipped
// and a warning appended, so one bad element cannot abort the batch.
func Normalize(rawEvents []interface{}) ([]domain.DictionaryEvent, []string) {
	events := make([]domain.DictionaryEvent, 0, len(rawEvents))
	var warnings []string
	seen := make(map[string]bool, len(rawEvents))

	for i, item := range rawEvents {
		obj, ok := item.(map[string]interface{})
		if !ok {
			warnings = append(warnings, fmt.Sprintf("event %d: not an object, skipped", i))
			continue
		}

		rawName, _ := lookupString(obj, "name")
		name := Slugify(rawName)
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("event %d: no usable name, skipped", i))
			continue
		}

		if seen[name] {
			base := name
			for n := 1; ; n++ {
				candidate := fmt.Sprintf("%s_%d", base, n)
				if !seen[candidate] {
					name = candidate
					break
				}
			}
			warnings = append(warnings, fmt.Sprintf("duplicate event name %q renamed to %q", base, name))
		}
		seen[name] = true

		ev := domain.DictionaryEvent{Name: name}

		rawType, _ := lookupString(obj, "event_type")
		eventType, coerced := coerceEventType(rawType)
		if coerced {
			warnings = append(warnings, fmt.Sprintf("event %q: unrecognized event_type %q, defaulting to intent", name, rawType))
		}
		ev.EventType = eventType

		rawAction, actionSupplied := lookupString(obj, "action_type")
		actionType, coerced := coerceActionType(rawAction)
		if actionSupplied && coerced {
			warnings = append(warnings, fmt.Sprintf("event %q: unrecognized event_action_type %q, defaulting to action", name, rawAction))
		}
		ev.ActionType = actionType

		ev.Purpose, _ = lookupString(obj, "purpose")
		ev.TriggerCondition, _ = lookupString(obj, "trigger")
		ev.Actor, _ = lookupString(obj, "actor")
		ev.Object, _ = lookupString(obj, "object")
		ev.ContextSurface, _ = lookupString(obj, "context_surface")
		ev.Notes, _ = lookupString(obj, "notes")

		ev.APIBinding = resolveAPIBinding(obj, eventType, actionType, actionSupplied)
		ev.Lifecycle = coerceLifecycle(obj)

		props, propWarnings := normalizeProperties(obj, name)
		ev.Properties = props
		warnings = append(warnings, propWarnings...)

		ev.ContextKeys = normalizeContextKeys(obj)

		if ev.EventType == domain.EventTypeFailure {
			ev.ErrorCode, _ = lookupString(obj, "error_code")
			ev.ErrorMessage, _ = lookupString(obj, "error_message")
			if ev.ErrorCode == "" && ev.ErrorMessage == "" {
				warnings = append(warnings, fmt.Sprintf("failure event %q has no error_code or error_message", name))
			}
		}

		if sample, ok := lookupString(obj, "code_sample"); ok {
			ev.CodeSample = sample
		} else {
			ev.CodeSample = CodeSampleStub(&ev)
		}

		events = append(events, ev)
	}

	return events, warnings
}

// coerceEventType matches the closed enumeration case-insensitively.
// The bool reports whether the default was substituted for a supplied value.
func coerceEventType(raw string) (domain.EventType, bool) {
	if raw == "" {
		return domain.EventTypeIntent, false
	}
	et := domain.EventType(strings.ToLower(strings.TrimSpace(raw)))
	if domain.ValidEventTypes[et] {
		return et, false
	}
	return domain.EventTypeIntent, true
}

func coerceActionType(raw string) (domain.ActionType, bool) {
	if raw == "" {
		return domain.ActionTypeAction, false
	}
	at := domain.ActionType(strings.ToLower(strings.TrimSpace(raw)))
	if domain.ValidActionTypes[at] {
		return at, false
	}
	return domain.ActionTypeAction, true
}

// resolveAPIBinding applies the binding decision table. An explicitly
// supplied value is honored only when it is itself one of the three valid
// tags; otherwise precedence runs feature_flag → error → action×event_type,
// with an event_type-only fallback when no action type was supplied.
func resolveAPIBinding(obj map[string]interface{}, eventType domain.EventType, actionType domain.ActionType, actionSupplied bool) domain.APIBinding {
	if raw, ok := lookupString(obj, "api_binding"); ok {
		if explicit := domain.APIBinding(raw); domain.ValidAPIBindings[explicit] {
			return explicit
		}
	}

	if actionSupplied {
		switch actionType {
		case domain.ActionTypeFeatureFlag:
			return domain.BindingAddFeatureFlag
		case domain.ActionTypeError:
			return domain.BindingAddError
		case domain.ActionTypeAction:
			if eventType == domain.EventTypeFailure {
				return domain.BindingAddError
			}
			return domain.BindingAddAction
		}
	}

	if eventType == domain.EventTypeFailure {
		return domain.BindingAddError
	}
	return domain.BindingAddAction
}

func coerceLifecycle(obj map[string]interface{}) domain.LifecycleStatus {
	if raw, ok := lookupString(obj, "lifecycle"); ok {
		ls := domain.LifecycleStatus(strings.ToLower(strings.TrimSpace(raw)))
		if domain.ValidLifecycleStatuses[ls] {
			return ls
		}
	}
	return domain.LifecycleProposed
}

// normalizeProperties keeps properties with a usable snake_case name and a
// known type tag, defaulting unrecognized types to string. Bare strings are
// accepted as name-only properties.
func normalizeProperties(obj map[string]interface{}, eventName string) ([]domain.Property, []string) {
	raw, ok := lookupField(obj, "properties")
	if !ok {
		return []domain.Property{}, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return []domain.Property{}, []string{fmt.Sprintf("event %q: properties is not a list, ignored", eventName)}
	}

	props := make([]domain.Property, 0, len(list))
	var warnings []string
	for _, item := range list {
		switch v := item.(type) {
		case string:
			name := Slugify(v)
			if name == "" {
				warnings = append(warnings, fmt.Sprintf("event %q: property with empty name dropped", eventName))
				continue
			}
			props = append(props, domain.Property{Name: name, Type: domain.PropertyTypeString})
		case map[string]interface{}:
			rawName, _ := propString(v, "name", "property_name", "propertyName", "key")
			name := Slugify(rawName)
			if name == "" {
				warnings = append(warnings, fmt.Sprintf("event %q: property with empty name dropped", eventName))
				continue
			}
			p := domain.Property{Name: name, Type: coercePropertyType(v)}
			p.Required = propBool(v, "required")
			p.Example, _ = propString(v, "example", "sample")
			p.Description, _ = propString(v, "description", "desc")
			props = append(props, p)
		default:
			warnings = append(warnings, fmt.Sprintf("event %q: malformed property dropped", eventName))
		}
	}
	return props, warnings
}

func coercePropertyType(prop map[string]interface{}) domain.PropertyType {
	raw, _ := propString(prop, "type", "property_type", "data_type")
	pt := domain.PropertyType(strings.ToLower(strings.TrimSpace(raw)))
	if domain.ValidPropertyTypes[pt] {
		return pt
	}
	return domain.PropertyTypeString
}

func propString(prop map[string]interface{}, keys ...string) (string, bool) {
	for _, key := range keys {
		if val, ok := prop[key]; ok && val != nil {
			if s, ok := coerceString(val); ok {
				return s, true
			}
		}
	}
	return "", false
}

func propBool(prop map[string]interface{}, key string) bool {
	switch v := prop[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

func normalizeContextKeys(obj map[string]interface{}) []string {
	raw, ok := lookupField(obj, "context_keys")
	if !ok {
		return nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			if key := Slugify(s); key != "" {
				keys = append(keys, key)
			}
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return keys
}
