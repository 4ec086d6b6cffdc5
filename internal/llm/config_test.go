package llm

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"anthropic with key", func(c *Config) { c.Provider = "anthropic"; c.Anthropic.APIKey = "sk-x" }, false},
		{"anthropic missing key", func(c *Config) { c.Provider = "anthropic" }, true},
		{"openai missing key", func(c *Config) { c.Provider = "openai" }, true},
		{"gemini missing key", func(c *Config) { c.Provider = "gemini" }, true},
		{"mock needs no key", func(c *Config) { c.Provider = "mock" }, false},
		{"unknown provider", func(c *Config) { c.Provider = "skynet" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDiscoverProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OpenAI.APIKey = "sk-x"
	if !cfg.DiscoverProvider() {
		t.Fatal("expected a provider to be discovered")
	}
	if cfg.Provider != "openai" {
		t.Errorf("expected openai, got %q", cfg.Provider)
	}

	empty := DefaultConfig()
	if empty.DiscoverProvider() {
		t.Error("expected no provider with no keys set")
	}
}

func TestResolveModel(t *testing.T) {
	if got := resolveModel("claude-haiku", anthropicModels); got != "claude-haiku-4-5-20251001" {
		t.Errorf("friendly name not resolved: %q", got)
	}
	if got := resolveModel("custom-model-id", anthropicModels); got != "custom-model-id" {
		t.Errorf("direct model ID should pass through: %q", got)
	}
}
