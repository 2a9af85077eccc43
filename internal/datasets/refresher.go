package datasets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/model"
	"github.com/raccoonWhisperer/civicsentinel-server/internal/util"
	"github.com/raccoonWhisperer/civicsentinel-server/internal/worker"
)

const refreshMaxBytes = 20_000_000

// Refresher downloads configured snapshot URLs into the data directory.
// Fetches honor robots.txt and a per-domain rate limit, run one at a time,
// and replace the existing file atomically so readers never see a partial
// snapshot.
type Refresher struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	store      *Store
	cfg        model.DatasetsConfig
	userAgent  string
}

// RefreshResult reports the outcome of refreshing one source
type RefreshResult struct {
	Name  string
	Bytes int
	Err   error
}

// NewRefresher creates a refresher for the configured snapshot sources
func NewRefresher(cfg model.DatasetsConfig, store *Store, userAgent string) *Refresher {
	return &Refresher{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		robots:     util.NewRobotsChecker(userAgent, 10*time.Second),
		limiter:    worker.NewLimiter(1, 2),
		store:      store,
		cfg:        cfg,
		userAgent:  userAgent,
	}
}

// Refresh fetches every configured source, in name order
func (r *Refresher) Refresh(ctx context.Context) []RefreshResult {
	names := make([]string, 0, len(r.cfg.Sources))
	for name := range r.cfg.Sources {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]RefreshResult, 0, len(names))
	for _, name := range names {
		n, err := r.refreshOne(ctx, name, r.cfg.Sources[name])
		results = append(results, RefreshResult{Name: name, Bytes: n, Err: err})
	}
	return results
}

func (r *Refresher) refreshOne(ctx context.Context, name, rawURL string) (int, error) {
	allowed, crawlDelay, err := r.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return 0, fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return 0, fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}

	if err := r.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
		return 0, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, refreshMaxBytes))
	if err != nil {
		return 0, fmt.Errorf("read body: %w", err)
	}

	// Reject payloads that are not a snapshot before touching the file.
	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return 0, fmt.Errorf("invalid snapshot payload: %w", err)
	}

	if err := r.writeAtomic(name, body); err != nil {
		return 0, err
	}

	r.store.Invalidate(name)
	return len(body), nil
}

func (r *Refresher) writeAtomic(name string, data []byte) error {
	if err := os.MkdirAll(r.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	dst := filepath.Join(r.cfg.Dir, name+".json")
	tmp, err := os.CreateTemp(r.cfg.Dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
