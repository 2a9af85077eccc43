package llm

import (
	"strings"
	"testing"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		apiKey   string
		wantName string
		wantErr  bool
	}{
		{provider: "anthropic", apiKey: "k", wantName: "anthropic"},
		{provider: "claude", apiKey: "k", wantName: "anthropic"},
		{provider: "OpenAI", apiKey: "k", wantName: "openai"},
		{provider: "ollama", wantName: "ollama"},
		{provider: "anthropic", wantErr: true}, // no key
		{provider: "gemini", wantErr: true},
		{provider: "", wantErr: true},
	}

	for _, tt := range tests {
		p, err := NewProvider(Config{Provider: tt.provider, APIKey: tt.apiKey})
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.provider)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.provider, err)
			continue
		}
		if p.Name() != tt.wantName {
			t.Errorf("%q: expected name %q, got %q", tt.provider, tt.wantName, p.Name())
		}
	}
}

func TestNewProvider_UnknownListsSupported(t *testing.T) {
	_, err := NewProvider(Config{Provider: "gemini"})
	if err == nil || !strings.Contains(err.Error(), "supported") {
		t.Errorf("error should name the supported providers: %v", err)
	}
}
