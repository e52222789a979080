package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxErrorBody bounds how much of a failed response is kept for the error message.
const maxErrorBody = 512

// RemoteGenerator delegates generation to an HTTP endpoint that accepts a
// Request as JSON and answers with a Result.
type RemoteGenerator struct {
	url    string
	apiKey string
	client *http.Client
}

// NewRemoteGenerator creates a generator for url. Every call is bounded by timeout.
func NewRemoteGenerator(url, apiKey string, timeout time.Duration) *RemoteGenerator {
	return &RemoteGenerator{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

// Generate posts the request and decodes the generated image.
func (g *RemoteGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build generation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call generator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("generator returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode generation response: %w", err)
	}
	if result.ImageURL == "" {
		return nil, fmt.Errorf("generator response has no image_url")
	}
	return &result, nil
}
