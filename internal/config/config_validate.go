// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateAPI,
		c.validateSecurity,
		c.validateStore,
		c.validateFetcher,
		c.validateQuotes,
		c.validateRecommend,
		c.validateEvents,
	}

	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be one of development, staging, production, got %q", c.Server.Environment)
	}
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled", "off":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE (%d) must be >= API_DEFAULT_PAGE_SIZE (%d)", c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.API.RequestTimeout <= 0 {
		return fmt.Errorf("API_REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1 when rate limiting is enabled")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case "memory":
		return nil
	case "badger":
		if !c.Store.InMemory && c.Store.Path == "" {
			return fmt.Errorf("STORE_PATH is required when STORE_BACKEND=badger and STORE_IN_MEMORY=false")
		}
		return nil
	default:
		return fmt.Errorf("STORE_BACKEND must be memory or badger, got %q", c.Store.Backend)
	}
}

func (c *Config) validateFetcher() error {
	if !c.Fetcher.Enabled {
		return nil
	}
	if err := validateSourceURL(c.Fetcher.PrimaryURL, "QUOTE_PRIMARY_URL"); err != nil {
		return err
	}
	if err := validateFormat(c.Fetcher.PrimaryFormat, "QUOTE_PRIMARY_FORMAT"); err != nil {
		return err
	}
	if c.Fetcher.SecondaryURL != "" {
		if err := validateSourceURL(c.Fetcher.SecondaryURL, "QUOTE_SECONDARY_URL"); err != nil {
			return err
		}
		if err := validateFormat(c.Fetcher.SecondaryFormat, "QUOTE_SECONDARY_FORMAT"); err != nil {
			return err
		}
	}
	if c.Fetcher.Timeout <= 0 {
		return fmt.Errorf("QUOTE_FETCH_TIMEOUT must be positive")
	}
	if c.Fetcher.RateLimit <= 0 || c.Fetcher.RateBurst < 1 {
		return fmt.Errorf("QUOTE_FETCH_RATE_LIMIT must be positive and QUOTE_FETCH_RATE_BURST at least 1")
	}
	if r := c.Fetcher.Breaker.FailureRatio; r <= 0 || r > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1], got %v", r)
	}
	return nil
}

func (c *Config) validateQuotes() error {
	if err := validateProbability(c.Quotes.FreshFetchProbability, "QUOTE_FRESH_PROBABILITY"); err != nil {
		return err
	}
	if err := validateProbability(c.Quotes.PrioritizeProbability, "QUOTE_PRIORITY_PROBABILITY"); err != nil {
		return err
	}
	if c.Quotes.TopCount < 1 {
		return fmt.Errorf("QUOTE_TOP_COUNT must be at least 1")
	}
	if c.Quotes.SimilarityCacheSize < 1 {
		return fmt.Errorf("SIMILARITY_CACHE_SIZE must be at least 1")
	}
	if u, err := url.Parse(c.Quotes.ShareBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("SHARE_BASE_URL must be an absolute URL, got %q", c.Quotes.ShareBaseURL)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultLimit < 1 || c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be >= 1 and <= RECOMMEND_MAX_LIMIT")
	}
	switch c.Recommend.DefaultAlgorithm {
	case "collaborative", "content_based", "trending", "hybrid":
		return nil
	default:
		return fmt.Errorf("RECOMMEND_DEFAULT_ALGORITHM %q is not a known algorithm", c.Recommend.DefaultAlgorithm)
	}
}

func (c *Config) validateEvents() error {
	if c.Events.BufferSize < 1 {
		return fmt.Errorf("EVENTS_BUFFER_SIZE must be at least 1")
	}
	if c.Events.TrendingInterval < 0 {
		return fmt.Errorf("EVENTS_TRENDING_INTERVAL must not be negative")
	}
	if c.WebSocket.Enabled && c.WebSocket.BroadcastQueue < 1 {
		return fmt.Errorf("WEBSOCKET_BROADCAST_QUEUE must be at least 1")
	}
	return nil
}

func validateProbability(p float64, name string) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s must be between 0 and 1, got %v", name, p)
	}
	return nil
}

func validateFormat(format, name string) error {
	if format != "quotable" && format != "zenquotes" {
		return fmt.Errorf("%s must be quotable or zenquotes, got %q", name, format)
	}
	return nil
}

// validateSourceURL accepts absolute http(s) URLs; unlike a base URL, a path
// and query are allowed since upstream endpoints are configured whole.
func validateSourceURL(rawURL, fieldName string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	return nil
}
