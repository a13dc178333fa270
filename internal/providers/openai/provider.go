// internal/providers/openai/provider.go

// Package openai provides a ModelClient for OpenAI-compatible chat APIs.
package openai

import (
	"context"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/spiralogic/halo/internal/appconfig"
)

// Client implements providers.ModelClient over the chat completions API.
type Client struct {
	host   appconfig.ModelHost
	client *goopenai.Client
}

// New constructs a Client. A custom URL in the host block points the client
// at any OpenAI-compatible endpoint.
func New(cfg *appconfig.Config) *Client {
	clientConfig := goopenai.DefaultConfig(cfg.Model.APIKey)
	if url := strings.TrimSpace(cfg.Model.URL); url != "" {
		clientConfig.BaseURL = strings.TrimRight(url, "/")
	}
	return &Client{
		host:   cfg.Model,
		client: goopenai.NewClientWithConfig(clientConfig),
	}
}

// Call sends one prompt and returns the first choice's content.
func (c *Client) Call(ctx context.Context, prompt string) (string, error) {
	messages := []goopenai.ChatCompletionMessage{}
	if c.host.SystemPrompt != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: c.host.SystemPrompt,
		})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:    c.host.Model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("error calling model host %s: %w", c.host.Name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model host %s returned no choices", c.host.Name)
	}
	return resp.Choices[0].Message.Content, nil
}

// Close releases client resources.
func (c *Client) Close() error { return nil }
