// Package backend talks to the registration service behind the console.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	PathListParticipants = "/list-participants"
	PathStartWatch       = "/start-watch"
	PathGoogleSheets     = "/google-sheets"
	PathReadStartlista   = "/read-startlista"
)

// Paths lists every endpoint the console calls.
func Paths() []string {
	return []string{PathListParticipants, PathStartWatch, PathGoogleSheets, PathReadStartlista}
}

const maxResponseBody = 8 << 20

// ErrResponseTooLarge is returned when a response body exceeds the read limit.
var ErrResponseTooLarge = errors.New("response too large")

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// Client issues requests against BaseURL. An empty BaseURL keeps paths
// relative, which is what the browser build wants.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// ListParticipants fetches the raw participants listing.
func (c *Client) ListParticipants(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(PathListParticipants), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

// PostJSON encodes payload and posts it to path, returning the response body.
func (c *Client) PostJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + path
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(body) > maxResponseBody {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxResponseBody)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}
	return body, nil
}

// Describe renders err the way the console shows it to users.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		status := statusErr.Status
		if status == "" {
			status = fmt.Sprintf("%d %s", statusErr.Code, http.StatusText(statusErr.Code))
		}
		if body := strings.TrimSpace(statusErr.Body); body != "" {
			return status + ": " + body
		}
		return status
	}
	return err.Error()
}
