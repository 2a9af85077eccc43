package model

import "time"

// Config is the complete service configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	LLM      LLMConfig      `yaml:"llm" mapstructure:"llm"`
	Probe    ProbeConfig    `yaml:"probe" mapstructure:"probe"`
	Datasets DatasetsConfig `yaml:"datasets" mapstructure:"datasets"`
}

// ServerConfig configures the HTTP layer
type ServerConfig struct {
	Addr            string   `yaml:"addr" mapstructure:"addr"`
	AllowedOrigins  []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RateLimitPerMin int      `yaml:"rate_limit_per_min" mapstructure:"rate_limit_per_min"`
	RateLimitBurst  int      `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
}

// LLMConfig configures the upstream search-augmented model
type LLMConfig struct {
	Provider    string `yaml:"provider" mapstructure:"provider"`
	Model       string `yaml:"model" mapstructure:"model"`
	APIKey      string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	Timeout     int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens   int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	MaxSearches int    `yaml:"max_searches" mapstructure:"max_searches"`
}

// ProbeConfig configures the live URL verifier
type ProbeConfig struct {
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent  string        `yaml:"user_agent" mapstructure:"user_agent"`
	HTTPProxy  string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy    string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// DatasetsConfig configures the government-dataset snapshot store
type DatasetsConfig struct {
	Dir      string            `yaml:"dir" mapstructure:"dir"`
	CacheTTL time.Duration     `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	Sources  map[string]string `yaml:"sources" mapstructure:"sources"` // name -> snapshot URL
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			AllowedOrigins:  []string{"*"},
			RateLimitPerMin: 30,
			RateLimitBurst:  10,
		},
		LLM: LLMConfig{
			Provider:    "anthropic",
			Timeout:     120,
			MaxTokens:   4096,
			MaxSearches: 5,
		},
		Probe: ProbeConfig{
			Timeout:   5 * time.Second,
			UserAgent: "CivicSentinel/1.0 (+https://github.com/raccoonWhisperer/civicsentinel-server)",
		},
		Datasets: DatasetsConfig{
			Dir:      "./data",
			CacheTTL: 5 * time.Minute,
		},
	}
}
