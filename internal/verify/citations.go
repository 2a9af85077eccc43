package verify

import (
	"net/url"
	"strings"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/model"
)

// UnknownDomain is the sentinel recorded when a citation URL cannot be parsed
const UnknownDomain = "Unknown"

// CitationExtractor pulls evidence records out of the raw tool-call response.
// Citations come exclusively from the search tool's own result blocks and are
// treated as ground truth.
type CitationExtractor struct{}

// NewCitationExtractor creates a new citation extractor
func NewCitationExtractor() *CitationExtractor {
	return &CitationExtractor{}
}

// Extract returns one Citation per nested search-result item, preserving
// source order. No deduplication is performed.
func (e *CitationExtractor) Extract(blocks []model.ContentBlock) []model.Citation {
	var citations []model.Citation

	for _, block := range blocks {
		if block.Type != model.BlockTypeWebSearchResults {
			continue
		}
		for _, item := range block.Content {
			if item.Type != model.BlockTypeWebSearchResult {
				continue
			}
			citations = append(citations, model.Citation{
				Title:         item.Title,
				URL:           item.URL,
				Snippet:       item.PageSnippet,
				SourceDomain:  ExtractDomain(item.URL),
				PublishedDate: item.PageAge,
			})
		}
	}

	return citations
}

// ExtractDomain returns the lowercase host of the URL with a leading "www."
// stripped, or UnknownDomain when the URL cannot be parsed
func ExtractDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return UnknownDomain
	}

	host := strings.ToLower(parsed.Host)
	return strings.TrimPrefix(host, "www.")
}
