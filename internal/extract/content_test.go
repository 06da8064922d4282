package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_Direct(t *testing.T) {
	raw, err := ExtractJSON(`{"events": [{"event_name": "signup_started"}]}`)
	require.NoError(t, err)
	assert.Contains(t, raw, "events")
}

func TestExtractJSON_DirectWithWhitespace(t *testing.T) {
	raw, err := ExtractJSON("\n\n  {\"events\": []}  \n")
	require.NoError(t, err)
	assert.Contains(t, raw, "events")
}

func TestExtractJSON_FencedBlock(t *testing.T) {
	reply := "Sure, here is the dictionary:\n```json\n{\"events\": [{\"event_name\": \"Test Event\"}]}\n```\nLet me know if you need changes."

	raw, err := ExtractJSON(reply)
	require.NoError(t, err)

	list := EventList(raw)
	require.Len(t, list, 1)

	events, _ := Normalize(list)
	require.Len(t, events, 1)
	assert.Equal(t, "test_event", events[0].Name)
}

func TestExtractJSON_FencedBlockNoLanguageTag(t *testing.T) {
	raw, err := ExtractJSON("```\n{\"events\": []}\n```")
	require.NoError(t, err)
	assert.Contains(t, raw, "events")
}

func TestExtractJSON_BraceScan(t *testing.T) {
	reply := `The dictionary is {"events": [{"event_name": "checkout"}]} as requested.`

	raw, err := ExtractJSON(reply)
	require.NoError(t, err)
	assert.Len(t, EventList(raw), 1)
}

func TestExtractJSON_BraceScanIgnoresBracesInStrings(t *testing.T) {
	reply := `Result: {"events": [{"event_name": "odd", "notes": "contains } and { chars"}]}`

	raw, err := ExtractJSON(reply)
	require.NoError(t, err)
	assert.Len(t, EventList(raw), 1)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	raw, err := ExtractJSON("I could not produce a dictionary for this document.")
	require.Error(t, err)
	assert.Nil(t, raw)

	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.NotNil(t, extErr.Cause)
}

func TestExtractJSON_MalformedEverywhere(t *testing.T) {
	_, err := ExtractJSON("```json\n{\"events\": [unterminated\n```")
	require.Error(t, err)
}

func TestEventList_Aliases(t *testing.T) {
	for _, key := range []string{"events", "event_dictionary", "dictionary", "analytics_events"} {
		raw := RawExtraction{key: []interface{}{map[string]interface{}{"event_name": "x"}}}
		assert.Len(t, EventList(raw), 1, "alias %q", key)
	}
}

func TestEventList_MissingOrWrongType(t *testing.T) {
	assert.Nil(t, EventList(RawExtraction{}))
	assert.Nil(t, EventList(RawExtraction{"events": "not a list"}))
	assert.Nil(t, EventList(RawExtraction{"events": map[string]interface{}{}}))
}
