// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/quotient/config.yaml",
	"/etc/quotient/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
			RequestTimeout:  10 * time.Second,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Store: StoreConfig{
			Backend:    "memory",
			Path:       "",
			InMemory:   true,
			GCInterval: 10 * time.Minute,
		},
		Fetcher: FetcherConfig{
			Enabled:         true,
			PrimaryURL:      "https://api.quotable.io/random",
			PrimaryFormat:   "quotable",
			SecondaryURL:    "https://zenquotes.io/api/random",
			SecondaryFormat: "zenquotes",
			Timeout:         5 * time.Second,
			RateLimit:       5,
			RateBurst:       5,
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      2 * time.Minute,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Quotes: QuotesConfig{
			FreshFetchProbability: 0.3,
			PrioritizeProbability: 0.7,
			TopCount:              5,
			SeedDefaults:          true,
			SimilarityCacheSize:   1024,
			ShareBaseURL:          "http://localhost:8080/s",
		},
		Recommend: RecommendConfig{
			DefaultLimit:     10,
			MaxLimit:         50,
			DefaultAlgorithm: "hybrid",
		},
		Events: EventsConfig{
			BufferSize:       256,
			TrendingInterval: time.Minute,
		},
		WebSocket: WebSocketConfig{
			Enabled:        true,
			BroadcastQueue: 256,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults
//  2. Config file (optional)
//  3. Environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := FindConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// HTTP_PORT -> server.port, QUOTE_PRIMARY_URL -> fetcher.primary_url
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// FindConfigFile returns CONFIG_PATH when it exists, else the first default
// path that exists, else "".
func FindConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when they arrive as strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// API
	"api_default_page_size": "api.default_page_size",
	"api_max_page_size":     "api.max_page_size",
	"api_request_timeout":   "api.request_timeout",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Store
	"store_backend":     "store.backend",
	"store_path":        "store.path",
	"store_in_memory":   "store.in_memory",
	"store_gc_interval": "store.gc_interval",

	// Fetcher
	"quote_fetch_enabled":        "fetcher.enabled",
	"quote_primary_url":          "fetcher.primary_url",
	"quote_primary_format":       "fetcher.primary_format",
	"quote_secondary_url":        "fetcher.secondary_url",
	"quote_secondary_format":     "fetcher.secondary_format",
	"quote_fetch_timeout":        "fetcher.timeout",
	"quote_fetch_rate_limit":     "fetcher.rate_limit",
	"quote_fetch_rate_burst":     "fetcher.rate_burst",
	"breaker_max_requests":       "fetcher.breaker.max_requests",
	"breaker_interval":           "fetcher.breaker.interval",
	"breaker_timeout":            "fetcher.breaker.timeout",
	"breaker_min_requests":       "fetcher.breaker.min_requests",
	"breaker_failure_ratio":      "fetcher.breaker.failure_ratio",
	"quote_fresh_probability":    "quotes.fresh_fetch_probability",
	"quote_priority_probability": "quotes.prioritize_probability",
	"quote_top_count":            "quotes.top_count",
	"quote_seed_defaults":        "quotes.seed_defaults",
	"similarity_cache_size":      "quotes.similarity_cache_size",
	"share_base_url":             "quotes.share_base_url",

	// Recommendations
	"recommend_default_limit":     "recommend.default_limit",
	"recommend_max_limit":         "recommend.max_limit",
	"recommend_default_algorithm": "recommend.default_algorithm",

	// Events and subscriptions
	"events_buffer_size":        "events.buffer_size",
	"events_trending_interval":  "events.trending_interval",
	"websocket_enabled":         "websocket.enabled",
	"websocket_broadcast_queue": "websocket.broadcast_queue",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - LOG_LEVEL -> logging.level
//   - QUOTE_PRIMARY_URL -> fetcher.primary_url
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// WatchConfigFile calls callback whenever the file at path changes. The caller
// is responsible for synchronizing access to any config it reloads.
func WatchConfigFile(path string, callback func()) error {
	return file.Provider(path).Watch(func(_ interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
