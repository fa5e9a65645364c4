// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package config

import (
	"testing"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"unknown environment", func(c *Config) { c.Server.Environment = "qa" }, true},
		{"console format", func(c *Config) { c.Logging.Format = "console" }, false},
		{"xml format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"max page below default", func(c *Config) { c.API.MaxPageSize = 5 }, true},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, true},
		{"rate limit zero but disabled", func(c *Config) {
			c.Security.RateLimitReqs = 0
			c.Security.RateLimitDisabled = true
		}, false},
		{"badger in memory", func(c *Config) { c.Store.Backend = "badger" }, false},
		{"badger on disk without path", func(c *Config) {
			c.Store.Backend = "badger"
			c.Store.InMemory = false
		}, true},
		{"badger on disk with path", func(c *Config) {
			c.Store.Backend = "badger"
			c.Store.InMemory = false
			c.Store.Path = "/tmp/quotient"
		}, false},
		{"fetcher disabled ignores url", func(c *Config) {
			c.Fetcher.Enabled = false
			c.Fetcher.PrimaryURL = ""
		}, false},
		{"missing primary url", func(c *Config) { c.Fetcher.PrimaryURL = "" }, true},
		{"unknown format", func(c *Config) { c.Fetcher.SecondaryFormat = "xml" }, true},
		{"no secondary", func(c *Config) {
			c.Fetcher.SecondaryURL = ""
			c.Fetcher.SecondaryFormat = ""
		}, false},
		{"breaker ratio zero", func(c *Config) { c.Fetcher.Breaker.FailureRatio = 0 }, true},
		{"negative probability", func(c *Config) { c.Quotes.PrioritizeProbability = -0.1 }, true},
		{"certain fetch", func(c *Config) { c.Quotes.FreshFetchProbability = 1 }, false},
		{"top count zero", func(c *Config) { c.Quotes.TopCount = 0 }, true},
		{"unknown algorithm", func(c *Config) { c.Recommend.DefaultAlgorithm = "random" }, true},
		{"content based algorithm", func(c *Config) { c.Recommend.DefaultAlgorithm = "content_based" }, false},
		{"events buffer zero", func(c *Config) { c.Events.BufferSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
