// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package fetcher

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/quotient/internal/logging"
	"github.com/tomtom215/quotient/internal/metrics"
	"github.com/tomtom215/quotient/internal/models"
)

// BreakerSettings tunes a source's circuit breaker.
type BreakerSettings struct {
	MaxRequests  uint32        // probes allowed while half-open
	Interval     time.Duration // closed-state count reset
	Timeout      time.Duration // open to half-open delay
	MinRequests  uint32        // requests needed before the ratio is considered
	FailureRatio float64
}

// DefaultBreakerSettings opens after 60% failures over at least 10 requests
// and probes again after two minutes.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// BreakerSource wraps a Source with a circuit breaker. While the circuit is
// open, Fetch fails immediately with gobreaker.ErrOpenState.
//
// The breaker measures real time; tests exercise tripping through request
// counts rather than by waiting out the timeout.
type BreakerSource struct {
	src  Source
	cb   *gobreaker.CircuitBreaker[models.Quote]
	name string
}

// NewBreakerSource creates the breaker named "quote-source-<name>".
func NewBreakerSource(src Source, s BreakerSettings) *BreakerSource {
	name := "quote-source-" + src.Name()
	logger := logging.WithComponent("fetcher")

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	b := &BreakerSource{src: src, name: name}
	b.cb = gobreaker.NewCircuitBreaker[models.Quote](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio < s.FailureRatio {
				return false
			}
			logger.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).
				Float64("failure_rate", ratio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			return true
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().Str("breaker", name).Str("from", stateToString(from)).
				Str("to", stateToString(to)).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})
	return b
}

// Name implements Source.
func (b *BreakerSource) Name() string { return b.src.Name() }

// State returns the breaker state as closed, half-open or open.
func (b *BreakerSource) State() string { return stateToString(b.cb.State()) }

// Fetch implements Source.
func (b *BreakerSource) Fetch(ctx context.Context) (models.Quote, error) {
	q, err := b.cb.Execute(func() (models.Quote, error) {
		return b.src.Fetch(ctx)
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
	case err != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(b.cb.Counts().ConsecutiveFailures))
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	}
	return q, err
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
