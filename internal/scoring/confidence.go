// Package scoring computes per-event quality scores and pressure-test
// uncertainty notes for a normalized dictionary. Heuristics only: it asks
// whether an event's rationale would survive "what decision would this data
// enable?", not whether the model was semantically right.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"eventlex/internal/domain"
)

// Weight table for the per-event score. The partial weights sum to exactly
// 100, so the cap is a guard for future additions, not current behavior.
const (
	weightCoreFields    = 25 // name, type, trigger all present
	weightPurposeDepth  = 20 // purpose longer than 20 chars
	weightHasProperties = 20
	weightActorContext  = 15 // actor, object, context surface all present
	weightAPIBinding    = 10
	weightContextKeys   = 5
	weightUserStory     = 5
	scoreCap            = 100
)

// minPurposeLength is the purpose length below which an event is considered
// under-justified.
const minPurposeLength = 20

// genericVerbs are event-name verbs that usually describe mechanics rather
// than a decision. A name containing one needs an accompanying note.
var genericVerbs = []string{
	"click", "view", "load", "show", "open", "close",
	"scroll", "hover", "press", "tap", "swipe",
}

// collectionVerbs open purposes that state data collection without the
// decision it enables.
var collectionVerbs = []string{
	"track", "monitor", "capture", "log", "measure", "record",
}

// justificationMarkers indicate a purpose that explains the "why".
var justificationMarkers = []string{"because", "enable"}

// genericActors and genericObjects flag actor/object combinations too vague
// to act on (e.g. "user" + "system").
var (
	genericActors  = map[string]bool{"user": true, "visitor": true, "customer": true}
	genericObjects = map[string]bool{"system": true, "app": true, "page": true, "screen": true}
)

// EventScore computes the 0-100 quality score for a single event.
func EventScore(ev *domain.DictionaryEvent) int {
	score := 0
	if ev.Name != "" && ev.EventType != "" && ev.TriggerCondition != "" {
		score += weightCoreFields
	}
	if len(ev.Purpose) > minPurposeLength {
		score += weightPurposeDepth
	}
	if len(ev.Properties) > 0 {
		score += weightHasProperties
	}
	if ev.Actor != "" && ev.Object != "" && ev.ContextSurface != "" {
		score += weightActorContext
	}
	if ev.APIBinding != "" {
		score += weightAPIBinding
	}
	if len(ev.ContextKeys) > 0 {
		score += weightContextKeys
	}
	if ev.Notes != "" {
		score += weightUserStory
	}
	if score > scoreCap {
		score = scoreCap
	}
	return score
}

// Confidence is the dictionary-level score: the rounded mean of per-event
// scores, 0 when there are no events.
func Confidence(events []domain.DictionaryEvent) int {
	if len(events) == 0 {
		return 0
	}
	sum := 0
	for i := range events {
		sum += EventScore(&events[i])
	}
	return int(math.Round(float64(sum) / float64(len(events))))
}

// UncertaintyNotes flags events likely to fail a pressure test. Every
// triggered condition produces one note; conditions are independent.
func UncertaintyNotes(events []domain.DictionaryEvent) []string {
	var notes []string
	for i := range events {
		notes = append(notes, eventNotes(&events[i])...)
	}
	return notes
}

func eventNotes(ev *domain.DictionaryEvent) []string {
	var notes []string
	hasNote := ev.Notes != ""

	if strings.Contains(strings.ToLower(ev.Notes), "uncertain") {
		notes = append(notes, fmt.Sprintf("%s: model flagged its own uncertainty in the notes", ev.Name))
	}
	if len(ev.Properties) == 0 {
		notes = append(notes, fmt.Sprintf("%s: no properties defined", ev.Name))
	}
	if len(ev.Purpose) < minPurposeLength {
		notes = append(notes, fmt.Sprintf("%s: purpose is too short to justify collection", ev.Name))
	}
	if ev.EventType == domain.EventTypeFailure && ev.ErrorCode == "" && ev.ErrorMessage == "" {
		notes = append(notes, fmt.Sprintf("%s: failure event without error code or message", ev.Name))
	}
	if verb := containedGenericVerb(ev.Name); verb != "" && !hasNote {
		notes = append(notes, fmt.Sprintf("%s: name centers on generic verb %q with no supporting note; what decision does this enable?", ev.Name, verb))
	}
	if opensWithCollectionVerb(ev.Purpose) && !hasJustification(ev.Purpose) && !hasNote {
		notes = append(notes, fmt.Sprintf("%s: purpose states data collection without the decision it enables", ev.Name))
	}
	if ev.EventType == domain.EventTypeIntent && len(ev.Properties) < 2 {
		notes = append(notes, fmt.Sprintf("%s: intent event with fewer than 2 properties may not capture enough context", ev.Name))
	}
	if ev.EventType == domain.EventTypeSuccess && len(ev.Properties) == 0 {
		notes = append(notes, fmt.Sprintf("%s: success event without outcome properties", ev.Name))
	}
	if ev.EventType == domain.EventTypeFailure && ev.ErrorCode == "" && ev.ErrorMessage == "" && !hasErrorProperty(ev.Properties) {
		notes = append(notes, fmt.Sprintf("%s: failure event carries no error context at all", ev.Name))
	}
	if genericActors[strings.ToLower(ev.Actor)] && genericObjects[strings.ToLower(ev.Object)] && !hasNote {
		notes = append(notes, fmt.Sprintf("%s: actor %q acting on %q is too generic without a note", ev.Name, ev.Actor, ev.Object))
	}

	return notes
}

func containedGenericVerb(name string) string {
	for _, verb := range genericVerbs {
		for _, part := range strings.Split(name, "_") {
			if part == verb {
				return verb
			}
		}
	}
	return ""
}

func opensWithCollectionVerb(purpose string) bool {
	lower := strings.ToLower(strings.TrimSpace(purpose))
	for _, verb := range collectionVerbs {
		if strings.HasPrefix(lower, verb) {
			return true
		}
	}
	return false
}

func hasJustification(purpose string) bool {
	lower := strings.ToLower(purpose)
	for _, marker := range justificationMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func hasErrorProperty(props []domain.Property) bool {
	for _, p := range props {
		if strings.Contains(p.Name, "error") || strings.Contains(p.Name, "reason") {
			return true
		}
	}
	return false
}
