package verify

import (
	"fmt"
	"strings"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/model"
)

// ReportBuilder assembles the final claim list, rejection diagnostics, and
// aggregate counts into the response contract
type ReportBuilder struct{}

// NewReportBuilder creates a new report builder
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{}
}

// Build merges everything into the feed response. The transcript is always
// present, even when both lists are empty, and the stats invariant
// verified + rejected == totalFound holds for every response.
func (b *ReportBuilder) Build(blocks []model.ContentBlock, citations []model.Citation, results []MatchResult) *model.FeedResponse {
	accepted := make([]model.Claim, 0, len(results))
	var rejected []model.Rejection

	for _, r := range results {
		if r.Outcome.Accepted() {
			accepted = append(accepted, r.Claim)
		} else {
			rejected = append(rejected, model.Rejection{
				Claim:   r.Claim,
				Outcome: r.Outcome,
				Reason:  r.Reason,
			})
		}
	}

	return &model.FeedResponse{
		Items:           accepted,
		RawResponse:     b.transcript(blocks, citations, rejected),
		VerifiedSources: citations,
		Stats: model.VerifyStats{
			TotalFound: len(results),
			Verified:   len(accepted),
			Rejected:   len(rejected),
		},
	}
}

// transcript renders the human-readable audit trail
func (b *ReportBuilder) transcript(blocks []model.ContentBlock, citations []model.Citation, rejected []model.Rejection) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Web searches performed: %d\n", countToolInvocations(blocks))
	fmt.Fprintf(&sb, "Citations found: %d\n", len(citations))

	if len(citations) > 0 {
		sb.WriteString("\nCitations:\n")
		for i, c := range citations {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, c.Title)
			fmt.Fprintf(&sb, "     %s (%s", c.URL, c.SourceDomain)
			if c.PublishedDate != "" {
				fmt.Fprintf(&sb, ", %s", c.PublishedDate)
			}
			sb.WriteString(")\n")
		}
	}

	if len(rejected) > 0 {
		sb.WriteString("\nRejected claims:\n")
		for _, r := range rejected {
			fmt.Fprintf(&sb, "  - [%s] %s: %s", r.Outcome, r.Claim.Title, r.Reason)
			if r.Claim.URL != "" {
				fmt.Fprintf(&sb, " (%s)", r.Claim.URL)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// countToolInvocations counts the search tool's result blocks
func countToolInvocations(blocks []model.ContentBlock) int {
	count := 0
	for _, block := range blocks {
		if block.Type == model.BlockTypeWebSearchResults {
			count++
		}
	}
	return count
}
