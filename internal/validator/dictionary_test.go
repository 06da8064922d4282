package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventlex/internal/domain"
)

func validDictionary() domain.Dictionary {
	return domain.Dictionary{
		Version:     "1.0",
		GeneratedAt: time.Now().UTC(),
		Events: []domain.DictionaryEvent{
			{
				Name:             "signup_completed",
				EventType:        domain.EventTypeSuccess,
				Purpose:          "measure signup conversion",
				TriggerCondition: "account record created",
			},
		},
	}
}

func TestValidate_CleanDictionary(t *testing.T) {
	dict := validDictionary()
	assert.Empty(t, Validate(&dict))
}

func TestValidate_MissingMetadata(t *testing.T) {
	dict := domain.Dictionary{Events: validDictionary().Events}
	errs := Validate(&dict)
	assert.Contains(t, errs, "dictionary version is missing")
	assert.Contains(t, errs, "dictionary generation timestamp is missing")
}

func TestValidate_EmptyEvents(t *testing.T) {
	dict := validDictionary()
	dict.Events = nil
	errs := Validate(&dict)
	assert.Contains(t, errs, "events array cannot be empty")
}

func TestValidate_EventFieldErrors(t *testing.T) {
	dict := validDictionary()
	dict.Events = append(dict.Events, domain.DictionaryEvent{
		EventType: domain.EventTypeIntent,
	})

	errs := Validate(&dict)
	assert.Contains(t, errs, "event 1: name is missing")
	assert.Contains(t, errs, "event 1: purpose is missing")
	assert.Contains(t, errs, "event 1: trigger condition is missing")
}

func TestValidate_FailureNeedsErrorContext(t *testing.T) {
	dict := validDictionary()
	dict.Events = []domain.DictionaryEvent{
		{
			Name:             "payment_failed",
			EventType:        domain.EventTypeFailure,
			Purpose:          "diagnose declined payments",
			TriggerCondition: "gateway rejects charge",
		},
	}

	errs := Validate(&dict)
	require.Len(t, errs, 1)
	assert.Equal(t, "payment_failed: failure event needs an error code or message", errs[0])

	dict.Events[0].ErrorCode = "CARD_DECLINED"
	assert.Empty(t, Validate(&dict))
}
