package verify

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/model"
)

// ClaimNormalizer recovers a structured list of asserted claims from the
// model's free-text answer, tolerating formatting noise. It never fails: a
// malformed answer degrades to the citation fallback or an empty list.
type ClaimNormalizer struct {
	// now is the request-scoped clock used for claim ids (injectable for tests)
	now func() time.Time
}

// NewClaimNormalizer creates a new claim normalizer
func NewClaimNormalizer() *ClaimNormalizer {
	return &ClaimNormalizer{now: time.Now}
}

// claimPayload is the shape the model is asked to emit for each item
type claimPayload struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	SourceName string `json:"sourceName"`
	URL        string `json:"url"`
	Timestamp  string `json:"timestamp"`
	Category   string `json:"category"`
	Severity   string `json:"severity"`
	Location   string `json:"location"`
}

// Normalize parses the concatenated text segments of the response into
// candidate claims. Claims from the structured array arrive unverified;
// claims synthesized from citations arrive pre-verified since they came
// directly from search evidence and bypass cross-reference.
func (n *ClaimNormalizer) Normalize(blocks []model.ContentBlock, citations []model.Citation, req model.FeedRequest) []model.Claim {
	text := concatText(blocks)
	cleaned := stripCodeFences(text)

	if strings.Contains(cleaned, model.NoResultsSentinel) {
		return []model.Claim{}
	}

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end <= start {
		// The model narrated its findings without emitting the requested
		// array; fall back to one claim per citation.
		return n.synthesizeFromCitations(citations, req)
	}

	var payloads []claimPayload
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &payloads); err != nil {
		// Malformed array: the caller still gets a well-formed empty result
		// with diagnostics intact.
		return []model.Claim{}
	}

	stamp := n.now().UnixMilli()
	claims := make([]model.Claim, 0, len(payloads))
	for i, p := range payloads {
		location := p.Location
		if location == "" {
			location = req.City
		}
		claims = append(claims, model.Claim{
			ID:         claimID(stamp, i),
			Title:      p.Title,
			Summary:    p.Summary,
			SourceName: p.SourceName,
			URL:        p.URL,
			Timestamp:  p.Timestamp,
			Category:   model.NormalizeCategory(p.Category),
			Severity:   model.NormalizeSeverity(p.Severity),
			Location:   location,
		})
	}

	return claims
}

// synthesizeFromCitations builds one pre-verified claim per citation
func (n *ClaimNormalizer) synthesizeFromCitations(citations []model.Citation, req model.FeedRequest) []model.Claim {
	stamp := n.now().UnixMilli()
	claims := make([]model.Claim, 0, len(citations))
	for i, c := range citations {
		summary := c.Snippet
		if summary == "" {
			summary = "Read the full story at the source."
		}
		claims = append(claims, model.Claim{
			ID:               claimID(stamp, i),
			Title:            c.Title,
			Summary:          summary,
			SourceName:       c.SourceDomain,
			URL:              c.URL,
			Timestamp:        c.PublishedDate,
			Category:         model.CategoryOther,
			Severity:         model.SeverityMedium,
			Location:         req.City,
			Verified:         true,
			VerificationNote: "Source returned directly by web search",
		})
	}
	return claims
}

// claimID combines a request-scoped timestamp with the claim's position, so
// ids are unique within a response but not globally stable
func claimID(stamp int64, index int) string {
	return fmt.Sprintf("claim-%d-%d", stamp, index)
}

// concatText joins the plain text segments of the response in order
func concatText(blocks []model.ContentBlock) string {
	var b strings.Builder
	for _, block := range blocks {
		if block.Type == model.BlockTypeText {
			b.WriteString(block.Text)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// stripCodeFences removes markdown code-fence markers around the array
func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
