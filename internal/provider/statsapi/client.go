// Package statsapi implements the operation-invocation boundary
// against the upstream NBA stats HTTP service.
package statsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/models"
)

// Config holds the upstream connection settings.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

// Client invokes logical operations as POST {base}/v1/{operation} with
// the bound parameters as the JSON body.
type Client struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	return &Client{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		logger: log.With(map[string]interface{}{
			"component": "statsapi",
		}),
	}
}

func (c *Client) Invoke(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, models.NewFailure(models.FailureInvalidParameter, "encode params: %v", err)
	}

	url := fmt.Sprintf("%s/v1/%s", c.config.BaseURL, operation)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, models.NewFailure(models.FailureUpstreamUnavailable, "stats api timeout: %v", ctx.Err())
			}
		}

		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if reqErr != nil {
			return nil, models.NewFailure(models.FailureInvalidParameter, "build request: %v", reqErr)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.config.APIKey != "" {
			req.Header.Set("X-API-Key", c.config.APIKey)
		}

		resp, lastErr = c.client.Do(req)

		if ctx.Err() != nil ||
			errors.Is(lastErr, context.DeadlineExceeded) ||
			errors.Is(lastErr, context.Canceled) {
			return nil, models.NewFailure(models.FailureUpstreamUnavailable, "stats api timeout")
		}

		if lastErr == nil {
			// Retry only server-side failures; client errors are final.
			if resp.StatusCode < 500 {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}
	}

	if lastErr != nil || resp == nil {
		c.logger.Warn("stats api unreachable", map[string]interface{}{
			"operation": operation,
			"error":     fmt.Sprintf("%v", lastErr),
		})
		return nil, models.NewFailure(models.FailureUpstreamUnavailable, "stats api unreachable: %v", lastErr)
	}
	defer resp.Body.Close()

	if failure := failureForStatus(resp.StatusCode, operation); failure != nil {
		return nil, failure
	}

	var payload models.Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, models.NewFailure(models.FailureSchemaMismatch, "decode %s response: %v", operation, err)
	}

	c.logger.Debug("operation completed", map[string]interface{}{
		"operation": operation,
		"keys":      len(payload),
	})

	return payload, nil
}

func failureForStatus(status int, operation string) *models.Failure {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusNotFound:
		return models.NewFailure(models.FailureEntityNotFound, "%s: subject not found", operation)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return models.NewFailure(models.FailureInvalidParameter, "%s: rejected parameters", operation)
	case status == http.StatusTooManyRequests:
		return models.NewFailure(models.FailureRateLimited, "%s: upstream quota exhausted", operation)
	case status >= 500:
		return models.NewFailure(models.FailureUpstreamUnavailable, "%s: upstream status %d", operation, status)
	default:
		return models.NewFailure(models.FailureSchemaMismatch, "%s: unexpected status %d", operation, status)
	}
}
