package llm

import (
	"context"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/model"
)

// Provider defines the interface for search-augmented model providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Search runs the news-gathering prompt and returns the ordered content
	// blocks of the model's answer
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SearchRequest contains the input for one upstream model call
type SearchRequest struct {
	// Prompt is the full news-gathering prompt (see BuildSearchPrompt)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// MaxSearches caps the number of web searches the model may run
	MaxSearches int
}

// SearchResponse contains the model's answer
type SearchResponse struct {
	// Content is the ordered list of response blocks: text segments plus
	// web-search tool results
	Content []model.ContentBlock

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "anthropic", "openai", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for Anthropic/OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// MaxSearches caps web-search tool use per request
	MaxSearches int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "anthropic",
		Timeout:     120,
		MaxTokens:   4096,
		MaxSearches: 5,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:    mc.Provider,
		Model:       mc.Model,
		APIKey:      mc.APIKey,
		BaseURL:     mc.BaseURL,
		Timeout:     mc.Timeout,
		MaxTokens:   mc.MaxTokens,
		MaxSearches: mc.MaxSearches,
	}
}
