package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/llm"
	"github.com/raccoonWhisperer/civicsentinel-server/internal/model"
)

// stubProvider returns canned content blocks or a canned error
type stubProvider struct {
	blocks []model.ContentBlock
	err    error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Search(ctx context.Context, req llm.SearchRequest) (*llm.SearchResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.SearchResponse{Content: s.blocks, Model: "stub-model"}, nil
}

func (s *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func testConfig(t *testing.T) model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Datasets.Dir = t.TempDir()
	cfg.Probe.Timeout = time.Second
	return cfg
}

func feedBlocks() []model.ContentBlock {
	return []model.ContentBlock{
		{
			Type: model.BlockTypeWebSearchResults,
			Content: []model.SearchResult{
				{Type: model.BlockTypeWebSearchResult, Title: "A", URL: "https://example.com/a", PageSnippet: "s"},
			},
		},
		{Type: model.BlockTypeText, Text: `[{"title": "A", "summary": "s", "url": "https://example.com/a"}]`},
	}
}

func TestServer_Health(t *testing.T) {
	srv := New(testConfig(t), &stubProvider{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestServer_FeedSuccess(t *testing.T) {
	srv := New(testConfig(t), &stubProvider{blocks: feedBlocks()})

	body := strings.NewReader(`{"city": "Nashville"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/feed", body)
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp model.FeedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Stats.Verified != 1 {
		t.Errorf("expected 1 verified item, got %+v", resp.Stats)
	}
	if resp.RawResponse == "" {
		t.Error("response must carry the transcript")
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("response must carry a request id")
	}
}

func TestServer_FeedUpstreamFailureIsBadGateway(t *testing.T) {
	srv := New(testConfig(t), &stubProvider{err: fmt.Errorf("model unavailable")})

	body := strings.NewReader(`{"city": "Nashville"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/feed", body)
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("upstream failure should map to 502, got %d", w.Code)
	}
}

func TestServer_FeedMissingCity(t *testing.T) {
	srv := New(testConfig(t), &stubProvider{blocks: feedBlocks()})

	body := strings.NewReader(`{"topic": "flooding"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/feed", body)
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("missing city should map to 400, got %d", w.Code)
	}
}

func TestServer_FeedZeroClaimsIsSuccess(t *testing.T) {
	srv := New(testConfig(t), &stubProvider{blocks: []model.ContentBlock{
		{Type: model.BlockTypeText, Text: model.NoResultsSentinel},
	}})

	body := strings.NewReader(`{"city": "Nashville"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/feed", body)
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("zero verified claims is a valid success, got %d", w.Code)
	}

	var resp model.FeedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Stats.TotalFound != 0 {
		t.Errorf("expected empty stats, got %+v", resp.Stats)
	}
}

func TestServer_DatasetEndpoints(t *testing.T) {
	cfg := testConfig(t)

	snapshot := `{"records": [{"County": "Rutherford", "Concerning": "sinkhole near Baker Road", "_priority": "HIGH"}], "last_updated": "2026-08-01T00:00:00", "total_count": 1, "all_state_records": 40}`
	if err := os.WriteFile(filepath.Join(cfg.Datasets.Dir, "tdec_complaints.json"), []byte(snapshot), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := New(cfg, &stubProvider{})

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/datasets", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "tdec_complaints") {
		t.Errorf("list: got %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/datasets/tdec_complaints", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Rutherford") {
		t.Errorf("get: got %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/datasets/search?q=baker+road", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "sinkhole") {
		t.Errorf("search: got %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/datasets/search", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("search without q should be 400, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/datasets/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("missing snapshot should be 404, got %d", w.Code)
	}
}

func TestServer_RateLimitExceeded(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.RateLimitPerMin = 60
	cfg.Server.RateLimitBurst = 1

	srv := New(cfg, &stubProvider{})

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/datasets", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/datasets", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second request over burst should be 429, got %d", w.Code)
	}
}

func TestServer_CORSPreflight(t *testing.T) {
	srv := New(testConfig(t), &stubProvider{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/v1/feed", nil)
	req.Header.Set("Origin", "https://feed.example.org")
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight should be 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("default config should allow any origin, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}
