// Package social publishes short status updates to an external service.
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Poster publishes one status update.
type Poster interface {
	Post(ctx context.Context, status string) error
}

// RejectedError is returned when the endpoint answers with anything but 200.
type RejectedError struct {
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("status update rejected (HTTP %d): %s", e.StatusCode, e.Body)
}

type statusPayload struct {
	Status string `json:"status"`
}

// HTTPPoster sends {"status": ...} to a status-update endpoint with a bearer
// token. It never retries.
type HTTPPoster struct {
	url    string
	token  string
	client *http.Client
}

func NewHTTPPoster(url, token string, timeout time.Duration) *HTTPPoster {
	return &HTTPPoster{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *HTTPPoster) Post(ctx context.Context, status string) error {
	body, err := json.Marshal(statusPayload{Status: status})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("post status: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &RejectedError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return nil
}
