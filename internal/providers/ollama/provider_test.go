// internal/providers/ollama/provider_test.go
package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spiralogic/halo/internal/appconfig"
)

func testConfig(url string) *appconfig.Config {
	return &appconfig.Config{
		Seed: "s",
		Model: appconfig.ModelHost{
			Name:         "test-host",
			URL:          url,
			Type:         "ollama",
			Model:        "test-model",
			SystemPrompt: "answer in json",
		},
		TimeoutSeconds: 5,
	}
}

func TestCallSendsPromptAndReturnsResponse(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"model":    "test-model",
			"response": `{"result": 391, "confidence": 0.9}`,
			"done":     true,
		})
	}))
	defer server.Close()

	client := New(testConfig(server.URL))
	defer client.Close()

	text, err := client.Call(context.Background(), "Compute 17 x 23.")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !strings.Contains(text, "391") {
		t.Fatalf("response text = %q", text)
	}
	if gotPath != "/api/generate" {
		t.Fatalf("request path = %q", gotPath)
	}
	if gotBody["model"] != "test-model" {
		t.Fatalf("request model = %v", gotBody["model"])
	}
	if gotBody["stream"] != false {
		t.Fatalf("request stream = %v, want false", gotBody["stream"])
	}
	if gotBody["system"] != "answer in json" {
		t.Fatalf("request system = %v", gotBody["system"])
	}
}

func TestCallReportsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := New(testConfig(server.URL))
	defer client.Close()

	if _, err := client.Call(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestCallReportsUnreachableHost(t *testing.T) {
	client := New(testConfig("http://127.0.0.1:1"))
	defer client.Close()

	if _, err := client.Call(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for unreachable host")
	}
}
