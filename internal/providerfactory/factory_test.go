// internal/providerfactory/factory_test.go
package providerfactory

import (
	"testing"

	"github.com/spiralogic/halo/internal/appconfig"
)

func TestNewModelClientByType(t *testing.T) {
	for _, hostType := range []string{"ollama", "openai"} {
		cfg := &appconfig.Config{Seed: "s", Model: appconfig.ModelHost{Type: hostType, Model: "m"}}
		client, err := NewModelClient(cfg)
		if err != nil {
			t.Fatalf("%s: %v", hostType, err)
		}
		if client == nil {
			t.Fatalf("%s: nil client", hostType)
		}
		_ = client.Close()
	}
}

func TestNewModelClientUnknownType(t *testing.T) {
	cfg := &appconfig.Config{Seed: "s", Model: appconfig.ModelHost{Type: "smoke-signals"}}
	if _, err := NewModelClient(cfg); err == nil {
		t.Fatal("expected error for unknown host type")
	}
}
