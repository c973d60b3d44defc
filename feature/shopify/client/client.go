package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// accessTokenHeader carries the per-store bearer credential.
const accessTokenHeader = "X-Shopify-Access-Token"

// Client issues paginated GraphQL queries against the Shopify admin API,
// applying retry with exponential backoff and a fixed inter-page pause.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger

	// sleep is swapped out by tests to observe backoff without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a new extraction client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger:     logger,
		sleep:      sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// maxAttempts returns the configured attempt cap, defaulting to 3 total.
func (c *Client) maxAttempts() int {
	if c.cfg.MaxAttempts > 0 {
		return c.cfg.MaxAttempts
	}
	return 3
}

func (c *Client) retryBase() time.Duration {
	if c.cfg.RetryBaseMillis > 0 {
		return time.Duration(c.cfg.RetryBaseMillis) * time.Millisecond
	}
	return 2 * time.Second
}

func (c *Client) pageDelay() time.Duration {
	if c.cfg.PageDelayMillis > 0 {
		return time.Duration(c.cfg.PageDelayMillis) * time.Millisecond
	}
	return 250 * time.Millisecond
}

// execute runs one GraphQL query against a store, retrying transient
// transport faults, 5xx responses and 429 rate-limit responses with
// exponential backoff. A 2xx response carrying a non-empty errors list is a
// hard failure and is not retried.
func (c *Client) execute(ctx context.Context, store, query string, variables map[string]any) (*graphQLResponse, error) {
	creds, err := c.cfg.CredentialsFor(store)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	endpoint := strings.TrimSuffix(creds.BaseURL, "/") + "/graphql.json"

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts(); attempt++ {
		if attempt > 1 {
			// Base delay doubles per attempt: base, 2*base, 4*base, ...
			delay := c.retryBase() << (attempt - 2)
			c.logger.Warn("Retrying page request",
				zap.String("store", store),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr))
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		resp, err := c.post(ctx, endpoint, creds.AccessToken, payload)
		if err != nil {
			var transient *retryableError
			if errors.As(err, &transient) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return resp, nil
	}

	return nil, fmt.Errorf("extraction failed after %d attempts: %w", c.maxAttempts(), lastErr)
}

// retryableError marks a fault worth another attempt.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// post performs a single HTTP round trip. Transient faults come back as
// retryableError; everything else is final.
func (c *Client) post(ctx context.Context, endpoint, token string, payload []byte) (*graphQLResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(accessTokenHeader, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &retryableError{fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		io.Copy(io.Discard, resp.Body)
		return nil, &retryableError{fmt.Errorf("shopify responded with status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("shopify responded with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &retryableError{fmt.Errorf("failed to read response: %w", err)}
	}

	var parsed graphQLResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// An application-level error list is a hard failure regardless of status.
	if len(parsed.Errors) > 0 {
		msgs := make([]string, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("graphql errors: %s", strings.Join(msgs, ", "))
	}

	return &parsed, nil
}
