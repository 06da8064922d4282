package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"eventlex/internal/config"
)

// maxBackoff caps the inter-retry delay regardless of attempt count.
const maxBackoff = 30 * time.Second

// Client calls a chat-completion endpoint with per-attempt timeouts,
// bounded retries with exponential backoff, and progress reporting.
// One Client is constructed per call site; it holds no mutable state.
type Client struct {
	cfg    *config.LLMConfig
	client *http.Client
}

// NewClient creates a completion client from a resolved config.
func NewClient(cfg *config.LLMConfig) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

// chatResponse models the generic chat-completion API response.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// apiErrorBody is the optional error envelope on non-2xx responses.
type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete issues one logical completion request and returns the assistant
// reply text. The timeout applies per attempt, not cumulatively; retryable
// failures (>=500, 429, 408, attempt timeout) are retried with backoff while
// attempts remain. Non-retryable failures propagate unmodified.
func (c *Client) Complete(ctx context.Context, prompt string, progress ProgressFunc) (string, error) {
	start := time.Now()
	maxAttempts := c.cfg.MaxRetries + 1

	emit := func(state State, msg string, attempt int) {
		if progress == nil {
			return
		}
		progress(ProgressUpdate{
			State:       state,
			Message:     msg,
			Attempt:     attempt,
			MaxAttempts: maxAttempts,
			ElapsedMS:   time.Since(start).Milliseconds(),
		})
	}

	emit(StatePreparing, "serializing completion request", 0)

	reqBody := chatRequest{
		Model:          c.cfg.Model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		Temperature:    c.cfg.Temperature,
		MaxTokens:      c.cfg.MaxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		emit(StateFailed, "marshaling request failed", 0)
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		emit(StateCalling, fmt.Sprintf("calling model %s (attempt %d/%d)", c.cfg.Model, attempt, maxAttempts), attempt)

		respBody, err := c.doAttempt(ctx, bodyBytes, attempt)
		if err == nil {
			emit(StateProcessingResponse, "decoding model response", attempt)
			content, err := decodeContent(respBody)
			if err != nil {
				emit(StateFailed, err.Error(), attempt)
				return "", err
			}
			emit(StateCompleted, "completion received", attempt)
			return content, nil
		}

		// Parent cancellation always wins over retry bookkeeping.
		if ctx.Err() != nil {
			emit(StateFailed, "request canceled", attempt)
			return "", ctx.Err()
		}

		retryable, reason := classify(err)
		if !retryable {
			emit(StateFailed, err.Error(), attempt)
			return "", err
		}

		lastErr = err
		if attempt == maxAttempts {
			break
		}

		delay := backoffDelay(attempt, c.cfg.RetryBaseDelay())
		emit(StateRetrying, fmt.Sprintf("%s, retrying in %s (attempt %d/%d)", reason, delay.Round(time.Millisecond), attempt, maxAttempts), attempt)
		select {
		case <-ctx.Done():
			emit(StateFailed, "request canceled during backoff", attempt)
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	emit(StateFailed, fmt.Sprintf("retries exhausted after %d attempts", maxAttempts), maxAttempts)

	// A timeout on the last allowed attempt surfaces distinctly so callers
	// can tell "upstream unreachable" from "upstream rejected the request".
	var toErr *TimeoutError
	if errors.As(lastErr, &toErr) {
		return "", lastErr
	}
	return "", &RequestFailedError{Attempts: maxAttempts, Cause: lastErr}
}

// doAttempt performs exactly one outbound request under the per-attempt
// deadline and returns the raw 2xx body.
func (c *Client) doAttempt(ctx context.Context, body []byte, attempt int) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.cfg.Endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		if attemptCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return nil, &TimeoutError{Attempt: attempt, TimeoutMS: c.cfg.TimeoutMS, Cause: err}
		}
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		// The deadline can expire mid-body just as well as mid-connect.
		if attemptCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return nil, &TimeoutError{Attempt: attempt, TimeoutMS: c.cfg.TimeoutMS, Cause: err}
		}
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}
	return respBody, nil
}

// classify splits failures into retryable and fatal, with a short reason
// string for progress messaging.
func classify(err error) (retryable bool, reason string) {
	var toErr *TimeoutError
	if errors.As(err, &toErr) {
		return true, "attempt timed out"
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Retryable() {
			return true, fmt.Sprintf("received status %d", httpErr.StatusCode)
		}
		return false, ""
	}
	// Non-timeout transport errors are semantic failures, not transient ones.
	return false, ""
}

// backoffDelay computes min(cap, base*2^(attempt-1) + jitter) where jitter is
// uniform in [0, base*2^(attempt-1)*0.1].
func backoffDelay(attempt int, base time.Duration) time.Duration {
	exp := base << uint(attempt-1)
	jitter := time.Duration(0)
	if tenth := int64(exp) / 10; tenth > 0 {
		jitter = time.Duration(rand.Int63n(tenth + 1))
	}
	delay := exp + jitter
	if delay > maxBackoff {
		delay = maxBackoff
	}
	return delay
}

func decodeContent(body []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API: no choices")
	}
	if resp.Choices[0].FinishReason == "length" {
		return "", fmt.Errorf("output truncated (finish_reason: length): response exceeded output token limit")
	}
	return resp.Choices[0].Message.Content, nil
}

func errorMessage(body []byte) string {
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return truncate(string(body), 500)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
