// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

/*
Package config provides centralized configuration management for Quotient.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file (config.yaml, /etc/quotient/config.yaml, or the path in
CONFIG_PATH), then environment variables. Environment variables use an
explicit name map, so unrelated variables never leak into the config.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default 0.0.0.0:8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - ENVIRONMENT: development, staging or production

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default info)
  - LOG_FORMAT: json or console (default json)
  - LOG_CALLER: add file:line

Store:
  - STORE_BACKEND: memory or badger (default memory)
  - STORE_PATH, STORE_IN_MEMORY: BadgerDB location

Upstream quotes:
  - QUOTE_PRIMARY_URL, QUOTE_PRIMARY_FORMAT (quotable)
  - QUOTE_SECONDARY_URL, QUOTE_SECONDARY_FORMAT (zenquotes)
  - QUOTE_FETCH_TIMEOUT, QUOTE_FETCH_RATE_LIMIT, QUOTE_FETCH_RATE_BURST
  - BREAKER_MAX_REQUESTS, BREAKER_INTERVAL, BREAKER_TIMEOUT,
    BREAKER_MIN_REQUESTS, BREAKER_FAILURE_RATIO

Selection and recommendations:
  - QUOTE_FRESH_PROBABILITY (0.3), QUOTE_PRIORITY_PROBABILITY (0.7), QUOTE_TOP_COUNT (5)
  - RECOMMEND_DEFAULT_LIMIT, RECOMMEND_MAX_LIMIT, RECOMMEND_DEFAULT_ALGORITHM

Rate limiting and CORS:
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: comma-separated list

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

Config is immutable after loading and safe for concurrent reads.
*/
package config
