// internal/providers/provider.go

// Package providers defines the narrow model-client contract the orchestrator
// consumes, regardless of the backing implementation (Ollama-compatible HTTP,
// OpenAI-compatible API). Clients carry their own timeouts; call failures are
// returned to the caller, which records them instead of aborting the run.
package providers

import (
	"context"
)

// ModelClient is the single collaborator the harness needs from a language
// model: send a prompt, get raw text back.
type ModelClient interface {
	// Call sends one prompt and returns the raw response text. The client
	// bounds the call with its own timeout; a timeout surfaces as an error.
	Call(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}
