package llm

import (
	"fmt"
	"strings"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/model"
)

// BuildSearchPrompt composes the news-gathering prompt from the caller's
// query. The caller-supplied values are opaque strings here; they only shape
// the search instructions.
func BuildSearchPrompt(req model.FeedRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Search the web for recent local news and civic incidents in %s.\n", req.City)
	if req.Topic != "" {
		fmt.Fprintf(&b, "Focus on: %s.\n", req.Topic)
	}
	if req.Category != "" {
		fmt.Fprintf(&b, "Limit results to the %q category.\n", req.Category)
	}
	if req.DateRange != "" {
		fmt.Fprintf(&b, "Only include items published within: %s.\n", req.DateRange)
	}

	b.WriteString(`
After searching, respond with ONLY a JSON array. Each element must be an object with these fields:
  "title":      short headline
  "summary":    one or two sentences describing the incident
  "sourceName": name of the publication
  "url":        the exact URL of the page where you found the item
  "timestamp":  publication date if known (ISO 8601)
  "category":   one of environment, infrastructure, public-safety, health, government, weather, other
  "severity":   one of critical, high, medium, low
  "location":   neighborhood or place within the city, if mentioned

Rules:
- Only include items you actually found through web search.
- The "url" field must be copied exactly from a search result. Never invent URLs.
- Do not wrap the array in markdown code fences or add commentary.
`)
	fmt.Fprintf(&b, "- If your searches turn up nothing relevant, respond with exactly: %s\n", model.NoResultsSentinel)

	return b.String()
}
