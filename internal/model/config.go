package model

import "time"

// Config is the complete modassist configuration.
// Hierarchy (highest to lowest priority): CLI flags, environment
// variables (MODASSIST_*), config file (~/.modassist/config.yaml), defaults.
type Config struct {
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Session     SessionConfig     `yaml:"session" json:"session"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// LLMConfig configures the optional follow-up phrasing provider
type LLMConfig struct {
	Provider  string `yaml:"provider" json:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // seconds per generation call
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`

	// Proxy settings for providers that go through corporate proxies
	HTTPProxy  string `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
}

// SessionConfig controls per-session context retention
type SessionConfig struct {
	TTL             time.Duration `yaml:"ttl" json:"ttl"`                           // Idle sessions are evicted after this
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval"` // Eviction sweep period
	ContextWindow   int           `yaml:"context_window" json:"context_window"`     // Prior messages kept for reference resolution
}

// CacheConfig controls the phrasing cache (LLM responses keyed by prompt)
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir,omitempty" json:"dir,omitempty"` // Disk layer location ("" = memory only)
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig controls the batch worker pool and LLM rate limiting
type ConcurrencyConfig struct {
	BatchWorkers      int     `yaml:"batch_workers" json:"batch_workers"`
	LLMRequestsPerSec float64 `yaml:"llm_requests_per_sec" json:"llm_requests_per_sec"`
	LLMBurst          int     `yaml:"llm_burst" json:"llm_burst"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "", // Disabled by default: local fallback phrasing is always available
			Timeout:   5,  // Phrasing is latency-sensitive; fall back fast
			MaxTokens: 300,
		},
		Session: SessionConfig{
			TTL:             30 * time.Minute,
			CleanupInterval: 5 * time.Minute,
			ContextWindow:   10,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers:      4,
			LLMRequestsPerSec: 2,
			LLMBurst:          5,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
