package verify

import (
	"context"
	"net/url"
	"strings"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/model"
)

// LiveVerifier performs a bounded network reachability probe for claims the
// matcher cannot resolve statically
type LiveVerifier interface {
	Probe(ctx context.Context, rawURL string) bool
}

// MatchResult pairs a claim with its terminal verification outcome
type MatchResult struct {
	Claim   model.Claim
	Outcome model.VerificationOutcome
	Reason  string
}

// Matcher classifies each claim against the citation set using exact and
// normalized URL and domain comparison, deferring to the live verifier only
// when static cross-reference is inconclusive
type Matcher struct {
	verifier LiveVerifier
}

// NewMatcher creates a new cross-reference matcher
func NewMatcher(verifier LiveVerifier) *Matcher {
	return &Matcher{verifier: verifier}
}

// Match classifies every candidate claim, in original order. Probes run
// strictly serially to bound the aggregate load on third-party hosts.
// Every claim receives exactly one terminal outcome; none are dropped.
func (m *Matcher) Match(ctx context.Context, claims []model.Claim, citations []model.Citation) []MatchResult {
	exactURLs := make(map[string]bool)
	normalizedKeys := make(map[string]bool)
	domains := make(map[string]bool)

	for _, c := range citations {
		exactURLs[c.URL] = true
		if key, ok := normalizeURLKey(c.URL); ok {
			normalizedKeys[key] = true
		}
		domains[c.SourceDomain] = true
	}

	results := make([]MatchResult, 0, len(claims))
	for _, claim := range claims {
		results = append(results, m.matchOne(ctx, claim, exactURLs, normalizedKeys, domains))
	}

	return results
}

func (m *Matcher) matchOne(ctx context.Context, claim model.Claim, exactURLs, normalizedKeys, domains map[string]bool) MatchResult {
	// Claims synthesized straight from search evidence arrive pre-verified
	// and bypass cross-reference entirely.
	if claim.Verified {
		return MatchResult{Claim: claim, Outcome: model.OutcomeConfirmed, Reason: claim.VerificationNote}
	}

	if !hasHTTPScheme(claim.URL) {
		return m.finish(claim, model.OutcomeNoURL, "no usable source URL")
	}

	// Exact or normalized match is the strongest, cheapest signal and
	// short-circuits network cost.
	key, ok := normalizeURLKey(claim.URL)
	if !ok {
		key = claim.URL
	}
	if exactURLs[claim.URL] || exactURLs[key] || normalizedKeys[claim.URL] || normalizedKeys[key] {
		return m.finish(claim, model.OutcomeConfirmed, "matches a search citation")
	}

	// A known domain with an unmatched path still warrants a live check:
	// the exact path could be invented.
	if domains[ExtractDomain(claim.URL)] {
		if m.verifier.Probe(ctx, claim.URL) {
			return m.finish(claim, model.OutcomeVerifiedLive, "domain known, URL responds")
		}
		return m.finish(claim, model.OutcomeRejectedDead, "URL does not respond")
	}

	// Unknown domain: highest-risk case, harshest rejection label on failure.
	if m.verifier.Probe(ctx, claim.URL) {
		return m.finish(claim, model.OutcomeVerifiedLive, "URL responds")
	}
	return m.finish(claim, model.OutcomeRejectedFabricated, "likely fabricated: unknown domain and unreachable")
}

// finish assigns the claim's one-time verified/verificationNote mutation
func (m *Matcher) finish(claim model.Claim, outcome model.VerificationOutcome, reason string) MatchResult {
	claim.Verified = outcome.Accepted()
	claim.VerificationNote = reason
	return MatchResult{Claim: claim, Outcome: outcome, Reason: reason}
}

// hasHTTPScheme reports whether the URL begins with an http(s) scheme token
func hasHTTPScheme(rawURL string) bool {
	lower := strings.ToLower(strings.TrimSpace(rawURL))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// normalizeURLKey computes the lowercase host+path comparison key, with
// query and fragment dropped. Returns false when the URL does not parse.
func normalizeURLKey(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "", false
	}
	return strings.ToLower(parsed.Host) + parsed.Path, true
}
