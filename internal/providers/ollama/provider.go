// internal/providers/ollama/provider.go

// Package ollama provides a ModelClient backed by Ollama-compatible HTTP endpoints.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spiralogic/halo/internal/appconfig"
	"github.com/spiralogic/halo/internal/logging"
)

// Client implements providers.ModelClient against the /api/generate endpoint.
type Client struct {
	host    appconfig.ModelHost
	client  *http.Client
	timeout time.Duration
	debug   bool
}

// New constructs a Client configured with the application's request timeout.
func New(cfg *appconfig.Config) *Client {
	timeout := cfg.RequestTimeout()
	return &Client{
		host: cfg.Model,
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		timeout: timeout,
		debug:   cfg.Debug,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Call sends one prompt and returns the raw response text.
func (c *Client) Call(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := strings.TrimRight(c.host.URL, "/") + "/api/generate"
	payload := generateRequest{
		Model:  c.host.Model,
		Prompt: prompt,
		System: c.host.SystemPrompt,
		Stream: false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error encoding generate request: %w", err)
	}

	if c.debug {
		logging.LogEvent("[HALO->LLM] host=%s model=%s bytes=%d", c.host.Name, c.host.Model, len(body))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling model host %s: %w", c.host.Name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading model response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model host %s returned status %d: %s", c.host.Name, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("error parsing model response: %w", err)
	}
	return parsed.Response, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
