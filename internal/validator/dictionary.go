// Package validator re-checks a normalized dictionary against hard
// structural invariants. It classifies, never mutates: blocking errors come
// back as strings, advisory issues stay with the normalizer's warnings.
package validator

import (
	"fmt"

	"eventlex/internal/domain"
)

// Validate returns one error string per violated invariant. An empty slice
// means the dictionary is structurally clean.
func Validate(dict *domain.Dictionary) []string {
	var errs []string

	if dict.Version == "" {
		errs = append(errs, "dictionary version is missing")
	}
	if dict.GeneratedAt.IsZero() {
		errs = append(errs, "dictionary generation timestamp is missing")
	}
	if len(dict.Events) == 0 {
		errs = append(errs, "events array cannot be empty")
	}

	for i := range dict.Events {
		ev := &dict.Events[i]
		label := ev.Name
		if label == "" {
			label = fmt.Sprintf("event %d", i)
		}
		if ev.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: name is missing", label))
		}
		if ev.Purpose == "" {
			errs = append(errs, fmt.Sprintf("%s: purpose is missing", label))
		}
		if ev.TriggerCondition == "" {
			errs = append(errs, fmt.Sprintf("%s: trigger condition is missing", label))
		}
		if ev.EventType == domain.EventTypeFailure && ev.ErrorCode == "" && ev.ErrorMessage == "" {
			errs = append(errs, fmt.Sprintf("%s: failure event needs an error code or message", label))
		}
	}

	return errs
}
