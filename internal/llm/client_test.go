package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rawihq/rawi/internal/config"
	"github.com/rawihq/rawi/internal/prompt"
)

func newTestClient(url string) *Client {
	return New(config.LLMConfig{Endpoint: url, Model: "test-model", Timeout: 5 * time.Second})
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req struct {
			Messages    []prompt.Message `json:"messages"`
			Temperature float64          `json:"temperature"`
			TopP        float64          `json:"top_p"`
			MaxTokens   int              `json:"max_tokens"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("got %d messages, want 2", len(req.Messages))
		}
		if req.Temperature != 0.1 || req.TopP != 0.8 || req.MaxTokens != 1024 {
			t.Errorf("sampling params = %v/%v/%v", req.Temperature, req.TopP, req.MaxTokens)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "```sql\nSELECT 1;\n```"}},
			},
		})
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Complete(context.Background(), prompt.Build("schema", "query"))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "```sql\nSELECT 1;\n```" {
		t.Fatalf("Complete() = %q", got)
	}
}

func TestCompleteNonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Complete(context.Background(), prompt.Build("s", "q")); err == nil {
		t.Fatalf("Complete() on 500 should return an error")
	}
}

func TestCompleteEmptyChoicesIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Complete(context.Background(), prompt.Build("s", "q")); err == nil {
		t.Fatalf("Complete() with no choices should return an error")
	}
}

func TestCompleteTransportErrorIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	if _, err := newTestClient(srv.URL).Complete(context.Background(), prompt.Build("s", "q")); err == nil {
		t.Fatalf("Complete() against closed server should return an error")
	}
}
