package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventlex/internal/config"
)

func testConfig(endpoint string) *config.LLMConfig {
	return &config.LLMConfig{
		Endpoint:         endpoint,
		APIKey:           "test-key",
		Model:            "gpt-4o-mini",
		Temperature:      0.2,
		TimeoutMS:        5000,
		MaxRetries:       3,
		RetryBaseDelayMS: 1,
		MaxTokens:        1024,
	}
}

func chatBody(content string) string {
	return `{"choices":[{"message":{"content":"` + content + `"},"finish_reason":"stop"}]}`
}

func TestComplete_Success(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Write([]byte(chatBody("hello")))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	content, err := c.Complete(context.Background(), "prompt", nil)
	require.NoError(t, err)

	assert.Equal(t, "hello", content)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "/chat/completions", gotPath)
}

func TestComplete_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(chatBody("recovered")))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	content, err := c.Complete(context.Background(), "prompt", nil)
	require.NoError(t, err)

	assert.Equal(t, "recovered", content)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestComplete_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad api key"}}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	_, err := c.Complete(context.Background(), "prompt", nil)
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, "bad api key", httpErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestComplete_RetryableStatuses(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusRequestTimeout, http.StatusBadGateway} {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(status)
				return
			}
			w.Write([]byte(chatBody("ok")))
		}))

		c := NewClient(testConfig(srv.URL))
		content, err := c.Complete(context.Background(), "prompt", nil)
		srv.Close()

		require.NoError(t, err, "status %d should be retried", status)
		assert.Equal(t, "ok", content)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	}
}

func TestComplete_ExhaustedRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 2
	c := NewClient(cfg)

	_, err := c.Complete(context.Background(), "prompt", nil)
	require.Error(t, err)

	var failed *RequestFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 3, failed.Attempts)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	var httpErr *HTTPError
	assert.ErrorAs(t, failed.Cause, &httpErr)
}

func TestComplete_TimeoutSurfacesDistinctly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(chatBody("too late")))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMS = 50
	cfg.MaxRetries = 1
	c := NewClient(cfg)

	_, err := c.Complete(context.Background(), "prompt", nil)
	require.Error(t, err)

	var toErr *TimeoutError
	require.ErrorAs(t, err, &toErr)
	assert.Equal(t, 50, toErr.TimeoutMS)
}

func TestComplete_StalledBodyIsTimedOutAndRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		// 2xx headers go out immediately; the body never arrives.
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMS = 50
	cfg.MaxRetries = 2
	c := NewClient(cfg)

	_, err := c.Complete(context.Background(), "prompt", nil)
	require.Error(t, err)

	var toErr *TimeoutError
	require.ErrorAs(t, err, &toErr)
	assert.Equal(t, 50, toErr.TimeoutMS)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "a stalled body counts as a timeout, not a fatal error")
}

func TestComplete_ParentCancellationWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(chatBody("too late")))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	c := NewClient(testConfig(srv.URL))
	_, err := c.Complete(ctx, "prompt", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestComplete_ProgressOrder(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(chatBody("done")))
	}))
	defer srv.Close()

	var states []State
	c := NewClient(testConfig(srv.URL))
	_, err := c.Complete(context.Background(), "prompt", func(u ProgressUpdate) {
		states = append(states, u.State)
	})
	require.NoError(t, err)

	assert.Equal(t, []State{
		StatePreparing,
		StateCalling,
		StateRetrying,
		StateCalling,
		StateProcessingResponse,
		StateCompleted,
	}, states)
}

func TestComplete_ProgressReportsAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatBody("ok")))
	}))
	defer srv.Close()

	var updates []ProgressUpdate
	c := NewClient(testConfig(srv.URL))
	_, err := c.Complete(context.Background(), "prompt", func(u ProgressUpdate) {
		updates = append(updates, u)
	})
	require.NoError(t, err)
	require.NotEmpty(t, updates)

	for _, u := range updates {
		assert.Equal(t, 4, u.MaxAttempts) // MaxRetries 3 + 1
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	_, err := c.Complete(context.Background(), "prompt", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestComplete_TruncatedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"partial"},"finish_reason":"length"}]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	_, err := c.Complete(context.Background(), "prompt", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestBackoffDelay(t *testing.T) {
	base := time.Second

	d1 := backoffDelay(1, base)
	assert.GreaterOrEqual(t, d1, 1*time.Second)
	assert.LessOrEqual(t, d1, 1100*time.Millisecond)

	d2 := backoffDelay(2, base)
	assert.GreaterOrEqual(t, d2, 2*time.Second)
	assert.LessOrEqual(t, d2, 2200*time.Millisecond)

	d3 := backoffDelay(3, base)
	assert.GreaterOrEqual(t, d3, 4*time.Second)
	assert.LessOrEqual(t, d3, 4400*time.Millisecond)

	// Cap kicks in once the exponential term exceeds 30s.
	assert.Equal(t, maxBackoff, backoffDelay(6, base))
}

func TestHTTPError_Retryable(t *testing.T) {
	assert.True(t, (&HTTPError{StatusCode: 500}).Retryable())
	assert.True(t, (&HTTPError{StatusCode: 503}).Retryable())
	assert.True(t, (&HTTPError{StatusCode: 429}).Retryable())
	assert.True(t, (&HTTPError{StatusCode: 408}).Retryable())
	assert.False(t, (&HTTPError{StatusCode: 400}).Retryable())
	assert.False(t, (&HTTPError{StatusCode: 401}).Retryable())
	assert.False(t, (&HTTPError{StatusCode: 404}).Retryable())
}
