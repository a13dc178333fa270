// internal/providerfactory/factory.go

// Package providerfactory selects the model client implementation named by
// the configuration.
package providerfactory

import (
	"fmt"

	"github.com/spiralogic/halo/internal/appconfig"
	"github.com/spiralogic/halo/internal/providers"
	"github.com/spiralogic/halo/internal/providers/ollama"
	"github.com/spiralogic/halo/internal/providers/openai"
)

// NewModelClient builds the client for the configured host type.
func NewModelClient(cfg *appconfig.Config) (providers.ModelClient, error) {
	switch cfg.Model.Type {
	case "ollama":
		return ollama.New(cfg), nil
	case "openai":
		return openai.New(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported model host type %q", cfg.Model.Type)
	}
}
