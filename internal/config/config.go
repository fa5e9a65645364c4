// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Loading order (Koanf v2):
//  1. Defaults: built-in values from defaultConfig()
//  2. Config file: optional YAML (config.yaml or CONFIG_PATH)
//  3. Environment variables: explicit name map, highest priority
//
// Config is immutable after LoadWithKoanf() and safe for concurrent reads.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Store     StoreConfig     `koanf:"store"`
	Fetcher   FetcherConfig   `koanf:"fetcher"`
	Quotes    QuotesConfig    `koanf:"quotes"`
	Recommend RecommendConfig `koanf:"recommend"`
	Events    EventsConfig    `koanf:"events"`
	WebSocket WebSocketConfig `koanf:"websocket"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// APIConfig holds API pagination and request settings
type APIConfig struct {
	DefaultPageSize int           `koanf:"default_page_size"`
	MaxPageSize     int           `koanf:"max_page_size"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
}

// SecurityConfig holds inbound rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// StoreConfig selects the quote store backend.
//
// Backend "memory" keeps quotes and likes in mutex-protected maps. Backend
// "badger" uses BadgerDB; with InMemory=true nothing touches disk, otherwise
// Path is the database directory.
type StoreConfig struct {
	Backend  string `koanf:"backend"`
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`

	// GCInterval is how often badger value-log garbage collection runs.
	// Zero disables it.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// FetcherConfig holds the upstream random-quote sources.
type FetcherConfig struct {
	Enabled         bool          `koanf:"enabled"`
	PrimaryURL      string        `koanf:"primary_url"`
	PrimaryFormat   string        `koanf:"primary_format"` // quotable or zenquotes
	SecondaryURL    string        `koanf:"secondary_url"`
	SecondaryFormat string        `koanf:"secondary_format"`
	Timeout         time.Duration `koanf:"timeout"`
	RateLimit       float64       `koanf:"rate_limit"` // requests per second per source
	RateBurst       int           `koanf:"rate_burst"`
	Breaker         BreakerConfig `koanf:"breaker"`
}

// BreakerConfig mirrors gobreaker.Settings for each upstream source.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`  // half-open probe requests
	Interval     time.Duration `koanf:"interval"`      // closed-state counter reset
	Timeout      time.Duration `koanf:"timeout"`       // open-state duration
	MinRequests  uint32        `koanf:"min_requests"`  // requests before the ratio is considered
	FailureRatio float64       `koanf:"failure_ratio"` // trip threshold
}

// QuotesConfig tunes random quote selection.
type QuotesConfig struct {
	// FreshFetchProbability is the chance a random-quote request goes upstream
	// even when local quotes exist.
	FreshFetchProbability float64 `koanf:"fresh_fetch_probability"`

	// PrioritizeProbability is the chance a user's random quote is replaced by
	// one of the TopCount most-liked quotes.
	PrioritizeProbability float64 `koanf:"prioritize_probability"`
	TopCount              int     `koanf:"top_count"`

	SeedDefaults        bool `koanf:"seed_defaults"`
	SimilarityCacheSize int  `koanf:"similarity_cache_size"`

	// ShareBaseURL prefixes share codes, e.g. https://quotes.example/s
	ShareBaseURL string `koanf:"share_base_url"`
}

// RecommendConfig holds recommendation limits.
type RecommendConfig struct {
	DefaultLimit     int    `koanf:"default_limit"`
	MaxLimit         int    `koanf:"max_limit"`
	DefaultAlgorithm string `koanf:"default_algorithm"`
}

// EventsConfig holds the in-process event broker settings.
type EventsConfig struct {
	BufferSize int64 `koanf:"buffer_size"`

	// TrendingInterval is how often a trending snapshot is published even
	// without likes. Zero disables the periodic publish.
	TrendingInterval time.Duration `koanf:"trending_interval"`
}

// WebSocketConfig holds subscription transport settings.
type WebSocketConfig struct {
	Enabled        bool `koanf:"enabled"`
	BroadcastQueue int  `koanf:"broadcast_queue"`
}
