// internal/verify/verify_test.go
package verify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func searchHandler(docs []map[string]any) (http.HandlerFunc, *int) {
	count := new(int)
	return func(w http.ResponseWriter, r *http.Request) {
		*count++
		json.NewEncoder(w).Encode(map[string]any{"docs": docs})
	}, count
}

func TestDisabledVerifierSkipsLookup(t *testing.T) {
	result := Disabled{}.Lookup(context.Background(), "Rumi", "Masnavi")
	if result.Checked || result.Confirmed {
		t.Fatalf("disabled verifier returned %+v, want unchecked", result)
	}
}

func TestLookupConfirmsMatchingDoc(t *testing.T) {
	handler, _ := searchHandler([]map[string]any{
		{"title": "The Masnavi", "author_name": []string{"Jalal al-Din Rumi"}},
	})
	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewClient(server.URL, time.Hour)
	result := client.Lookup(context.Background(), "Rumi", "Masnavi")
	if !result.Checked || !result.Confirmed {
		t.Fatalf("lookup = %+v, want checked and confirmed", result)
	}
}

func TestLookupRejectsMismatchedAuthor(t *testing.T) {
	handler, _ := searchHandler([]map[string]any{
		{"title": "Masnavi", "author_name": []string{"Somebody Else"}},
	})
	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewClient(server.URL, time.Hour)
	result := client.Lookup(context.Background(), "Rumi", "Masnavi")
	if !result.Checked || result.Confirmed {
		t.Fatalf("lookup = %+v, want checked but unconfirmed", result)
	}
}

func TestLookupDegradesOnNetworkFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Hour)
	result := client.Lookup(context.Background(), "Rumi", "Masnavi")
	if result.Checked {
		t.Fatalf("lookup = %+v, want unchecked on network failure", result)
	}
}

func TestLookupCachesByURLAndHonorsTTL(t *testing.T) {
	handler, count := searchHandler([]map[string]any{
		{"title": "Masnavi", "author_name": []string{"Rumi"}},
	})
	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewClient(server.URL, time.Hour)
	current := time.Unix(1_700_000_000, 0)
	client.now = func() time.Time { return current }

	client.Lookup(context.Background(), "Rumi", "Masnavi")
	client.Lookup(context.Background(), "Rumi", "Masnavi")
	if *count != 1 {
		t.Fatalf("server hit %d times, want 1 (second lookup cached)", *count)
	}

	// Different query, different URL: cache miss.
	client.Lookup(context.Background(), "Lao Tzu", "Tao Te Ching")
	if *count != 2 {
		t.Fatalf("server hit %d times, want 2 for a distinct URL", *count)
	}

	// Advance past the TTL: the cached entry expires.
	current = current.Add(2 * time.Hour)
	client.Lookup(context.Background(), "Rumi", "Masnavi")
	if *count != 3 {
		t.Fatalf("server hit %d times, want 3 after TTL expiry", *count)
	}
}
