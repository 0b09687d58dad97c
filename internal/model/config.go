package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete runtime configuration
type Config struct {
	Generation   GenerateOptions    `json:"generation" yaml:"generation" mapstructure:"generation"`
	HTTP         HTTPConfig         `json:"http" yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `json:"cache" yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `json:"rate_limiting" yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig       `json:"output" yaml:"output" mapstructure:"output"`
	Log          LogConfig          `json:"log" yaml:"log" mapstructure:"log"`
}

// HTTPConfig controls fetching of URL sources
type HTTPConfig struct {
	Timeout       time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `json:"max_body_bytes" yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS   bool          `json:"insecure_tls" yaml:"insecure_tls" mapstructure:"insecure_tls"`
	RespectRobots bool          `json:"respect_robots" yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `json:"http_proxy,omitempty" yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `json:"https_proxy,omitempty" yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `json:"no_proxy,omitempty" yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig controls report caching
type CacheConfig struct {
	Enabled   bool          `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `json:"dir" yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `json:"memory_ttl" yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `json:"disk_ttl" yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig controls per-host request pacing for URL sources
type RateLimitingConfig struct {
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `json:"burst_size" yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `json:"include_footer" yaml:"include_footer" mapstructure:"include_footer"`
}

// LogConfig controls structured diagnostic logging
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`    // debug, info, warn, error
	Format string `json:"format" yaml:"format" mapstructure:"format"` // console or json
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerateOptions{
			Style:    StyleCompact,
			Variants: 1,
			Language: LanguageRU,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "ClaimForge/0.1 (+https://github.com/ppiankov/claimforge)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "claimforge")
	}
	return filepath.Join(os.TempDir(), "claimforge-cache")
}
