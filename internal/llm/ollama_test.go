package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/model"
)

func TestOllamaProvider_Search(t *testing.T) {
	var captured ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{
			"model": "llama3.2",
			"response": "NO_RESULTS_FOUND",
			"done": true,
			"prompt_eval_count": 40,
			"eval_count": 8
		}`))
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := provider.Search(context.Background(), SearchRequest{Prompt: "find news"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if captured.Stream {
		t.Error("requests must disable streaming")
	}
	if captured.Prompt != "find news" {
		t.Errorf("prompt not carried: %q", captured.Prompt)
	}
	if len(resp.Content) != 1 || resp.Content[0].Type != model.BlockTypeText {
		t.Fatalf("expected a single text block, got %+v", resp.Content)
	}
	if resp.Content[0].Text != model.NoResultsSentinel {
		t.Errorf("response text not carried: %q", resp.Content[0].Text)
	}
	if resp.TokensUsed != 48 {
		t.Errorf("expected 48 tokens, got %d", resp.TokensUsed)
	}
}

func TestOllamaProvider_SearchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "model not found"}`))
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := provider.Search(context.Background(), SearchRequest{Prompt: "x"}); err == nil {
		t.Error("expected API error")
	}
}

func TestOllamaProvider_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"models": []}`))
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	if !provider.IsAvailable(context.Background()) {
		t.Error("expected available")
	}

	server.Close()
	if provider.IsAvailable(context.Background()) {
		t.Error("expected unavailable after server close")
	}
}
