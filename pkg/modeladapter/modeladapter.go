// Package modeladapter defines the model backend contract and shared HTTP
// plumbing for provider implementations. Providers embed ModelAdapter to get
// request building, auth, JSON posting, and NDJSON streaming, and shadow
// Complete with their own wire format.
package modeladapter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"reagent/pkg/modeladapter/usage"
)

// Completer sends a prompt to a language model and returns the final
// concatenated output. When onToken is non-nil it receives each token as the
// model streams it; streaming is a presentation concern, the caller always
// parses the returned string.
type Completer interface {
	Complete(ctx context.Context, prompt string, onToken func(token string)) (string, error)
}

// RateLimitError is returned when the API responds with HTTP 429 (Too Many
// Requests). It carries an optional RetryAfter duration parsed from the
// Retry-After header.
type RateLimitError struct {
	RetryAfter time.Duration
	Body       string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %s", e.RetryAfter, e.Body)
	}

	return fmt.Sprintf("rate limited: %s", e.Body)
}

// ParseRetryAfter parses the Retry-After header value as either seconds
// (integer) or an HTTP-date (RFC 7231). Returns zero if unparseable or if the
// date is in the past.
func ParseRetryAfter(val string) time.Duration {
	if val == "" {
		return 0
	}

	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}

	if t, err := http.ParseTime(val); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}

	return 0
}

// Auth holds authentication settings for an LLM provider API.
type Auth struct {
	Key    string // API key value; empty for unauthenticated backends.
	Header string // Header name (default: "Authorization").
	Scheme string // Scheme prefix (default: "Bearer" when Header is "Authorization").
}

// ModelAdapter holds shared state for provider implementations. Embed it in
// concrete provider structs. Concrete types should define their own Complete
// method to shadow the default stub.
type ModelAdapter struct {
	Name        string            // Model identifier (e.g. "llama2").
	Temperature float64           // Sampling temperature.
	MaxTokens   int               // Maximum tokens in the response (0 = provider default).
	Auth        Auth              // Authentication settings.
	BaseURL     string            // API base URL (no trailing slash).
	Client      *http.Client      // HTTP client; falls back to a shared default.
	Headers     map[string]string // Extra headers applied to every request.
	Usage       usage.Tracker     // Token usage tracker.

	clientOnce    sync.Once
	defaultClient *http.Client
}

// UsageTracker returns the adapter's token usage tracker.
func (a *ModelAdapter) UsageTracker() *usage.Tracker { return &a.Usage }

// Complete is a stub that returns an error. Concrete providers that embed
// ModelAdapter must define their own Complete method to shadow this one.
func (a *ModelAdapter) Complete(_ context.Context, _ string, _ func(string)) (string, error) {
	return "", errors.New("modeladapter: Complete not implemented")
}

// httpClient returns the configured client or a cached default. The default
// has no overall timeout because streamed completions legitimately run for
// minutes; cancellation comes from the request context.
func (a *ModelAdapter) httpClient() *http.Client {
	if a.Client != nil {
		return a.Client
	}

	a.clientOnce.Do(func() {
		a.defaultClient = &http.Client{Timeout: 10 * time.Minute}
	})

	return a.defaultClient
}

// NewRequest builds an *http.Request with the base URL, auth, and custom
// headers already applied.
func (a *ModelAdapter) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := a.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	if a.Auth.Key != "" {
		header := a.Auth.Header
		if header == "" {
			header = "Authorization"
		}

		value := a.Auth.Key
		if header == "Authorization" {
			scheme := a.Auth.Scheme
			if scheme == "" {
				scheme = "Bearer"
			}

			value = scheme + " " + value
		} else if a.Auth.Scheme != "" {
			value = a.Auth.Scheme + " " + value
		}

		req.Header.Set(header, value)
	}

	for k, v := range a.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// Do sends the request using the configured HTTP client.
func (a *ModelAdapter) Do(req *http.Request) (*http.Response, error) {
	return a.httpClient().Do(req)
}

// PostJSON marshals payload as JSON, sends a POST to the given path, checks
// for a 2xx status, and unmarshals the response body into dest. If dest is
// nil the response body is discarded after the status check.
func (a *ModelAdapter) PostJSON(ctx context.Context, path string, payload any, dest any) error {
	resp, err := a.postForResponse(ctx, path, payload)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// StreamLines sends a POST with a JSON payload and feeds each non-empty line
// of the response body to onLine. Backends that stream newline-delimited JSON
// (such as Ollama) use this; onLine returning an error aborts the stream.
func (a *ModelAdapter) StreamLines(ctx context.Context, path string, payload any, onLine func(line []byte) error) error {
	resp, err := a.postForResponse(ctx, path, payload)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		if err := onLine(line); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}

	return nil
}

// postForResponse builds and sends the POST, normalizing 429 and non-2xx
// statuses into errors. The caller owns the response body.
func (a *ModelAdapter) postForResponse(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := a.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		respBody, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		return nil, &RateLimitError{
			RetryAfter: ParseRetryAfter(resp.Header.Get("Retry-After")),
			Body:       string(respBody),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	return resp, nil
}
