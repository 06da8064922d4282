package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"eventlex/internal/domain"
	"eventlex/internal/extract"
	"eventlex/internal/llm"
	"eventlex/internal/port"
	"eventlex/internal/scoring"
	"eventlex/internal/validator"
)

// dictionaryVersion stamps every freshly extracted dictionary.
const dictionaryVersion = "1.0"

// ExtractionService runs the full extraction pipeline: completion call,
// content extraction, normalization, validation, scoring.
type ExtractionService interface {
	// ExtractDictionary is total: it always returns a ProcessingResult,
	// never an error. Failures degrade to an invalid result with the
	// failure message as the sole error and confidence 0.
	ExtractDictionary(ctx context.Context, documentText string, docCtx *domain.DocumentContext, onProgress llm.ProgressFunc) *domain.ProcessingResult
}

type extractionService struct {
	client port.CompletionClient
}

// NewExtractionService creates an ExtractionService over a completion client.
func NewExtractionService(client port.CompletionClient) ExtractionService {
	return &extractionService{client: client}
}

func (s *extractionService) ExtractDictionary(ctx context.Context, documentText string, docCtx *domain.DocumentContext, onProgress llm.ProgressFunc) *domain.ProcessingResult {
	if strings.TrimSpace(documentText) == "" {
		return failedResult(domain.ErrEmptyDocument.Error())
	}

	prompt := llm.BuildDictionaryPrompt(documentText, docCtx)

	content, err := s.client.Complete(ctx, prompt, onProgress)
	if err != nil {
		log.Printf("extractionService.ExtractDictionary: completion failed: %v", err)
		return failedResult(err.Error())
	}

	raw, err := extract.ExtractJSON(content)
	if err != nil {
		log.Printf("extractionService.ExtractDictionary: %v", err)
		return failedResult(err.Error())
	}

	events, warnings := extract.Normalize(extract.EventList(raw))

	dict := domain.Dictionary{
		Version:     dictionaryVersion,
		GeneratedAt: time.Now().UTC(),
		Events:      events,
	}

	errs := validator.Validate(&dict)
	confidence := scoring.Confidence(events)
	notes := scoring.UncertaintyNotes(events)

	result := &domain.ProcessingResult{
		Dictionary:       dict,
		IsValid:          len(errs) == 0,
		Errors:           errs,
		Warnings:         warnings,
		Confidence:       confidence,
		Reasoning:        buildReasoning(events, confidence, warnings, notes),
		UncertaintyNotes: notes,
	}

	log.Printf("extractionService.ExtractDictionary: %d events, confidence=%d, valid=%v, warnings=%d",
		len(events), confidence, result.IsValid, len(warnings))
	return result
}

// failedResult converts a terminal pipeline failure into the result shape
// callers expect: invalid, empty dictionary, confidence 0.
func failedResult(msg string) *domain.ProcessingResult {
	return &domain.ProcessingResult{
		Dictionary: domain.Dictionary{
			Version:     dictionaryVersion,
			GeneratedAt: time.Now().UTC(),
			Events:      []domain.DictionaryEvent{},
		},
		IsValid:          false,
		Errors:           []string{msg},
		Warnings:         []string{},
		Confidence:       0,
		Reasoning:        "extraction failed before a dictionary could be built",
		UncertaintyNotes: []string{},
	}
}

func buildReasoning(events []domain.DictionaryEvent, confidence int, warnings, notes []string) string {
	var intents, successes, failures int
	for i := range events {
		switch events[i].EventType {
		case domain.EventTypeIntent:
			intents++
		case domain.EventTypeSuccess:
			successes++
		case domain.EventTypeFailure:
			failures++
		}
	}
	return fmt.Sprintf(
		"Extracted %d events (%d intent, %d success, %d failure) with mean confidence %d. %d normalization warnings, %d uncertainty notes.",
		len(events), intents, successes, failures, confidence, len(warnings), len(notes),
	)
}
