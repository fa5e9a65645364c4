// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package recommend

import (
	"errors"
	"fmt"
)

// Config configures the engine.
type Config struct {
	// DefaultAlgorithm is used when a request names none.
	DefaultAlgorithm Algorithm

	Limits LimitsConfig
}

// LimitsConfig bounds result sizes.
type LimitsConfig struct {
	// DefaultLimit applies when a request asks for zero results.
	DefaultLimit int

	// MaxLimit caps every request.
	MaxLimit int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultAlgorithm: AlgorithmHybrid,
		Limits: LimitsConfig{
			DefaultLimit: 10,
			MaxLimit:     50,
		},
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	var errs []error
	if _, err := ParseAlgorithm(string(c.DefaultAlgorithm)); err != nil || c.DefaultAlgorithm == "" {
		errs = append(errs, fmt.Errorf("default algorithm %q is not valid", c.DefaultAlgorithm))
	}
	if c.Limits.MaxLimit < 1 {
		errs = append(errs, fmt.Errorf("max limit must be at least 1, got %d", c.Limits.MaxLimit))
	}
	if c.Limits.DefaultLimit < 1 || c.Limits.DefaultLimit > c.Limits.MaxLimit {
		errs = append(errs, fmt.Errorf("default limit must be between 1 and %d, got %d", c.Limits.MaxLimit, c.Limits.DefaultLimit))
	}
	return errors.Join(errs...)
}
