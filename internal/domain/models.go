package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Property is a single typed property attached to a dictionary event.
type Property struct {
	Name        string       `json:"name"`
	Type        PropertyType `json:"type"`
	Required    bool         `json:"required"`
	Example     string       `json:"example,omitempty"`
	Description string       `json:"description,omitempty"`
}

// DictionaryEvent is the canonical, post-normalization event shape.
// Names are unique snake_case within a dictionary.
type DictionaryEvent struct {
	Name             string          `json:"event_name"`
	EventType        EventType       `json:"event_type"`
	ActionType       ActionType      `json:"event_action_type"`
	Purpose          string          `json:"event_purpose"`
	TriggerCondition string          `json:"trigger_condition"`
	Actor            string          `json:"actor,omitempty"`
	Object           string          `json:"object,omitempty"`
	ContextSurface   string          `json:"context_surface,omitempty"`
	Properties       []Property      `json:"properties"`
	ContextKeys      []string        `json:"context_keys,omitempty"`
	Lifecycle        LifecycleStatus `json:"lifecycle_status"`
	APIBinding       APIBinding      `json:"api_binding"`
	ErrorCode        string          `json:"error_code,omitempty"`
	ErrorMessage     string          `json:"error_message,omitempty"`
	CodeSample       string          `json:"code_sample,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// Dictionary is a versioned, timestamped set of events. Created fresh on
// every extraction and never mutated in place.
type Dictionary struct {
	Version     string            `json:"version"`
	GeneratedAt time.Time         `json:"generated_at"`
	Events      []DictionaryEvent `json:"events"`
}

// ProcessingResult is the pipeline's sole externally visible output. It is
// always produced, even on total failure (empty dictionary, confidence 0).
type ProcessingResult struct {
	Dictionary       Dictionary `json:"dictionary"`
	IsValid          bool       `json:"is_valid"`
	Errors           []string   `json:"errors"`
	Warnings         []string   `json:"warnings"`
	Confidence       int        `json:"confidence"`
	Reasoning        string     `json:"reasoning"`
	UncertaintyNotes []string   `json:"uncertainty_notes"`
}

// DocumentContext carries optional caller-supplied hints about the source
// document being analyzed.
type DocumentContext struct {
	FileName       string `json:"file_name,omitempty"`
	FileSize       int64  `json:"file_size,omitempty"`
	StructureHints string `json:"structure_hints,omitempty"`
}

// Project groups extraction snapshots under a caller-chosen name.
type Project struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Snapshot is one stored extraction result belonging to a project.
type Snapshot struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	ProjectID  uuid.UUID       `db:"project_id" json:"project_id"`
	Label      string          `db:"label" json:"label,omitempty"`
	Dictionary json.RawMessage `db:"dictionary" json:"dictionary"`
	Result     json.RawMessage `db:"result" json:"result"`
	EventCount int             `db:"event_count" json:"event_count"`
	Confidence int             `db:"confidence" json:"confidence"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
