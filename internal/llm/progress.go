package llm

// State is the completion client's position in its request state machine:
// idle → preparing → calling → (retrying ⇄ calling) → processing_response →
// completed | failed.
type State string

const (
	StateIdle               State = "idle"
	StatePreparing          State = "preparing"
	StateCalling            State = "calling"
	StateRetrying           State = "retrying"
	StateProcessingResponse State = "processing_response"
	StateCompleted          State = "completed"
	StateFailed             State = "failed"
)

// ProgressUpdate is emitted once per state transition, in state-machine
// order. Updates are transient; the caller owns any history.
type ProgressUpdate struct {
	State       State  `json:"state"`
	Message     string `json:"message"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
	ElapsedMS   int64  `json:"elapsed_ms"`
}

// ProgressFunc receives progress updates. A nil ProgressFunc disables
// reporting.
type ProgressFunc func(ProgressUpdate)
