package verify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/model"
	"github.com/raccoonWhisperer/civicsentinel-server/internal/util"
)

// probeStrategy attempts one reachability check. A nil error means the
// strategy reached a verdict (alive or dead) and later strategies are
// skipped; an error hands off to the next strategy in the list.
type probeStrategy func(ctx context.Context, rawURL string) (bool, error)

// URLProber checks whether a claim's URL responds, within a bounded time
// budget. Strategies are evaluated in order: a header-only request first,
// then a partial-content request if the first attempt fails at the
// transport level. Each stage enforces its own timeout independently.
type URLProber struct {
	httpClient *http.Client
	userAgent  string
	strategies []probeStrategy
}

// NewURLProber creates a new prober from the probe configuration
func NewURLProber(cfg model.ProbeConfig) *URLProber {
	p := &URLProber{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
	}
	p.strategies = []probeStrategy{p.headProbe, p.rangeProbe}
	return p
}

// Probe reports whether the URL is alive. Any transport failure in the last
// strategy collapses to dead; nothing propagates as an error.
func (p *URLProber) Probe(ctx context.Context, rawURL string) bool {
	for _, strategy := range p.strategies {
		alive, err := strategy(ctx, rawURL)
		if err == nil {
			return alive
		}
	}
	return false
}

// headProbe issues a header-only request. Many hosts reject HEAD probes but
// are otherwise live, so forbidden and method-not-allowed count as alive.
func (p *URLProber) headProbe(ctx context.Context, rawURL string) (bool, error) {
	resp, err := p.do(ctx, http.MethodHead, rawURL, "")
	if err != nil {
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusMethodNotAllowed:
		return true, nil
	}
	return false, nil
}

// rangeProbe requests only the first byte of the body
func (p *URLProber) rangeProbe(ctx context.Context, rawURL string) (bool, error) {
	resp, err := p.do(ctx, http.MethodGet, rawURL, "bytes=0-0")
	if err != nil {
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode == http.StatusPartialContent, resp.StatusCode == http.StatusForbidden:
		return true, nil
	}
	return false, nil
}

func (p *URLProber) do(ctx context.Context, method, rawURL, rangeHeader string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", p.userAgent)
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("probe request: %w", err)
	}
	return resp, nil
}
