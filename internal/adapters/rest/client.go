package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"datahub/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Client sends requests to the Data-Hub API. Every resource client in this
// package goes through Send, which owns URL construction, header selection,
// error mapping, and failure logging.
type Client struct {
	base   string
	http   *http.Client
	logger *slog.Logger
}

// NewClient returns a Client for the given base URL. httpClient may be nil,
// in which case a client with a default timeout is used.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   httpClient,
		logger: logger,
	}
}

// Send issues one request against the API and returns the raw JSON response
// body. contentType is applied as-is when non-empty; otherwise requests with
// a body default to application/json. Multipart callers pass the writer's
// FormDataContentType so the boundary travels with the body. A no-content
// response yields a nil RawMessage and nil error.
//
// Failures are logged before being returned, unchanged, as *domain.APIError.
func (c *Client) Send(ctx context.Context, method, path string, body io.Reader, contentType string) (json.RawMessage, error) {
	url := c.base + "/api" + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	} else if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := &domain.APIError{Message: fmt.Sprintf("request to %s failed: %v", path, err)}
		c.logger.Error("api request failed", "method", method, "path", path, "err", err)
		return nil, apiErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := &domain.APIError{Message: fmt.Sprintf("failed to read response from %s: %v", path, err)}
		c.logger.Error("api response unreadable", "method", method, "path", path, "err", err)
		return nil, apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &domain.APIError{Status: resp.StatusCode, Message: errorMessage(data, resp.StatusCode)}
		c.logger.Error("api request failed", "method", method, "path", path, "status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil, nil
	}
	return json.RawMessage(data), nil
}

// errorMessage pulls the error field out of an API failure body, falling
// back to a generic message when the body is not the expected JSON shape.
func errorMessage(body []byte, status int) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return fmt.Sprintf("request failed with status %d", status)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	raw, err := c.Send(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	return decode(raw, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	raw, err := c.Send(ctx, http.MethodPost, path, bytes.NewReader(payload), "")
	if err != nil {
		return err
	}
	return decode(raw, out)
}

func (c *Client) patchJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	raw, err := c.Send(ctx, http.MethodPatch, path, bytes.NewReader(payload), "")
	if err != nil {
		return err
	}
	return decode(raw, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.Send(ctx, http.MethodDelete, path, nil, "")
	return err
}

func decode(raw json.RawMessage, out any) error {
	if out == nil || raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
