package model

// NoResultsSentinel is the literal token the model is instructed to answer
// with when its searches turn up nothing. An answer equal to this token is a
// valid empty result, not a parse failure.
const NoResultsSentinel = "NO_RESULTS_FOUND"

// Content block types returned by a search-augmented model call
const (
	BlockTypeText             = "text"
	BlockTypeServerToolUse    = "server_tool_use"
	BlockTypeWebSearchResults = "web_search_tool_result"
	BlockTypeWebSearchResult  = "web_search_result"
)

// ContentBlock is one entry in the ordered response from the upstream model.
// A block is either a plain text segment or a tool result carrying nested
// search-result items.
type ContentBlock struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Content []SearchResult `json:"content,omitempty"`
}

// SearchResult is one nested item inside a web_search_tool_result block
type SearchResult struct {
	Type             string `json:"type"`
	Title            string `json:"title"`
	URL              string `json:"url"`
	PageSnippet      string `json:"page_snippet,omitempty"`
	EncryptedContent string `json:"encrypted_content,omitempty"`
	PageAge          string `json:"page_age,omitempty"`
}
