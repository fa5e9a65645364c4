// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

// Package fetcher retrieves random quotes from upstream quote APIs.
//
// A Fetcher holds an ordered list of sources and returns the first quote any
// of them produces. Each HTTP source is paced by a token bucket
// (golang.org/x/time/rate) and guarded by its own circuit breaker
// (sony/gobreaker), and every attempt runs under a per-source timeout.
//
// Resilience:
//   - Timeout: fetcher.timeout per source attempt
//   - Pacing: fetcher.rate_limit requests/second with fetcher.rate_burst burst
//   - Breaker: opens at fetcher.breaker.failure_ratio once min_requests is reached
//   - Fallback: primary, then secondary; ErrAllSourcesFailed joins every cause
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/quotient/internal/config"
	"github.com/tomtom215/quotient/internal/logging"
	"github.com/tomtom215/quotient/internal/metrics"
	"github.com/tomtom215/quotient/internal/models"
)

// ErrAllSourcesFailed is returned when no source produced a quote.
var ErrAllSourcesFailed = errors.New("fetcher: all quote sources failed")

// Source produces one random quote per call.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (models.Quote, error)
}

// Fetcher tries its sources in order.
type Fetcher struct {
	sources []Source
	timeout time.Duration
}

// New creates a fetcher over sources. A zero timeout disables the
// per-source deadline.
func New(timeout time.Duration, sources ...Source) *Fetcher {
	return &Fetcher{sources: sources, timeout: timeout}
}

// NewFromConfig builds the primary and secondary HTTP sources described by
// cfg, each behind a circuit breaker. An empty secondary URL is skipped.
func NewFromConfig(cfg *config.FetcherConfig) (*Fetcher, error) {
	type endpoint struct {
		name, url, format string
	}
	endpoints := []endpoint{
		{"primary", cfg.PrimaryURL, cfg.PrimaryFormat},
		{"secondary", cfg.SecondaryURL, cfg.SecondaryFormat},
	}

	var sources []Source
	for _, ep := range endpoints {
		if ep.url == "" {
			continue
		}
		src, err := NewHTTPSource(HTTPSourceConfig{
			Name:      ep.name,
			URL:       ep.url,
			Format:    Format(ep.format),
			Timeout:   cfg.Timeout,
			RateLimit: cfg.RateLimit,
			RateBurst: cfg.RateBurst,
		})
		if err != nil {
			return nil, fmt.Errorf("%s source: %w", ep.name, err)
		}
		sources = append(sources, NewBreakerSource(src, BreakerSettings{
			MaxRequests:  cfg.Breaker.MaxRequests,
			Interval:     cfg.Breaker.Interval,
			Timeout:      cfg.Breaker.Timeout,
			MinRequests:  cfg.Breaker.MinRequests,
			FailureRatio: cfg.Breaker.FailureRatio,
		}))
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no quote sources configured")
	}
	return New(cfg.Timeout, sources...), nil
}

// FetchRandomQuote returns a quote from the first source that succeeds.
func (f *Fetcher) FetchRandomQuote(ctx context.Context) (models.Quote, error) {
	logger := logging.Ctx(ctx)

	var errs []error
	for _, src := range f.sources {
		q, err := f.try(ctx, src)
		if err == nil {
			return q, nil
		}
		if ctx.Err() != nil {
			return models.Quote{}, ctx.Err()
		}
		logger.Warn().Err(err).Str("source", src.Name()).Msg("quote source failed")
		errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
	}
	return models.Quote{}, errors.Join(append([]error{ErrAllSourcesFailed}, errs...)...)
}

func (f *Fetcher) try(ctx context.Context, src Source) (models.Quote, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	start := time.Now()
	q, err := src.Fetch(ctx)
	metrics.RecordQuoteFetch(src.Name(), time.Since(start), err)
	if err != nil {
		return models.Quote{}, err
	}
	if err := q.Validate(); err != nil {
		return models.Quote{}, fmt.Errorf("invalid quote: %w", err)
	}
	return q, nil
}

// Sources returns the source names in fallback order.
func (f *Fetcher) Sources() []string {
	names := make([]string, len(f.sources))
	for i, s := range f.sources {
		names[i] = s.Name()
	}
	return names
}
