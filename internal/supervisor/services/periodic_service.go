// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

// Package services provides suture service wrappers for Quotient components.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Job is one run of a periodic task.
type Job func(ctx context.Context) error

// PeriodicConfig controls a PeriodicService.
type PeriodicConfig struct {
	// Interval between runs. Default: 1m
	Interval time.Duration

	// RunOnStart runs the job once before the first tick.
	RunOnStart bool

	// Timeout bounds a single run. Default: Interval
	Timeout time.Duration
}

// PeriodicService runs a job on a ticker. Job errors are logged, not
// returned, so one failed run does not restart the layer.
type PeriodicService struct {
	name   string
	job    Job
	config PeriodicConfig
	logger zerolog.Logger
}

// NewPeriodicService creates a periodic service named name.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewPeriodicService(name string, job Job, cfg PeriodicConfig, logger zerolog.Logger) *PeriodicService {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = cfg.Interval
	}
	return &PeriodicService{
		name:   name,
		job:    job,
		config: cfg,
		logger: logger.With().Str("service", name).Logger(),
	}
}

// Serve implements suture.Service.
func (s *PeriodicService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.config.Interval).Msg("periodic service starting")

	if s.config.RunOnStart {
		s.run(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug().Msg("periodic service stopping")
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *PeriodicService) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := s.job(runCtx); err != nil {
		s.logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("periodic job failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("periodic job complete")
}

func (s *PeriodicService) String() string {
	return s.name
}
