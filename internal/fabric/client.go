// Package fabric is a minimal REST client for the Microsoft Fabric core API,
// covering the item and job surface the agent lifecycle needs.
package fabric

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

	"golang.org/x/oauth2"

	"github.com/dadfw/dad/internal/logging"
)

// DefaultBaseURL is the public Fabric API endpoint.
const DefaultBaseURL = "https://api.fabric.microsoft.com/v1"

// ErrItemNotFound is returned when a workspace item does not exist.
var ErrItemNotFound = errors.New("item not found")

// APIError is a non-2xx response from the Fabric API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fabric API error (%d): %s", e.Status, e.Message)
}

// Client talks to the Fabric REST API using bearer tokens from the given
// token source.
type Client struct {
	baseURL string
	tokens  oauth2.TokenSource
	client  *http.Client
	sleep   func(time.Duration)
	log     *logging.Logger
}

// NewClient creates a Fabric API client. An empty baseURL selects the public
// endpoint.
func NewClient(baseURL string, tokens oauth2.TokenSource, log *logging.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		client:  &http.Client{Timeout: 120 * time.Second},
		sleep:   time.Sleep,
		log:     log.Sub("fabric"),
	}
}

// do issues a JSON request against a path under the base URL.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (*http.Response, error) {
	return c.doURL(ctx, method, c.baseURL+path, body, out)
}

func (c *Client) doURL(ctx context.Context, method, url string, body, out any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("acquiring token: %w", err)
	}
	token.SetAuthHeader(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return resp, &APIError{Status: resp.StatusCode, Message: apiMessage(respBody)}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp, fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return resp, nil
}

// apiMessage extracts a human-readable message from a Fabric error body.
func apiMessage(body []byte) string {
	var parsed struct {
		ErrorCode string `json:"errorCode"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		if parsed.ErrorCode != "" {
			return parsed.ErrorCode + ": " + parsed.Message
		}
		return parsed.Message
	}
	return string(body)
}

// awaitOperation polls a long-running-operation URL until it succeeds, then
// optionally fetches its result into out.
func (c *Client) awaitOperation(ctx context.Context, location string, out any) error {
	if location == "" {
		return errors.New("operation accepted but no Location header returned")
	}

	for {
		var op struct {
			Status string `json:"status"`
			Error  struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if _, err := c.doURL(ctx, http.MethodGet, location, nil, &op); err != nil {
			return err
		}

		switch op.Status {
		case "Succeeded":
			if out == nil {
				return nil
			}
			_, err := c.doURL(ctx, http.MethodGet, location+"/result", nil, out)
			return err
		case "Failed":
			return fmt.Errorf("operation failed: %s", op.Error.Message)
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		c.sleep(2 * time.Second)
	}
}
