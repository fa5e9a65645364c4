// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/quotient/internal/config"
	"github.com/tomtom215/quotient/internal/ranking"
	"github.com/tomtom215/quotient/internal/recommend"
	"github.com/tomtom215/quotient/internal/recommend/algorithms"
	"github.com/tomtom215/quotient/internal/similarity"
)

// initRecommend builds the recommendation engine with every strategy
// registered. The data provider is attached later, once the quote service
// exists.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, rank *ranking.Engine, scorer *similarity.Scorer, logger zerolog.Logger) (*recommend.Engine, error) {
	engineCfg, err := buildEngineConfig(cfg.Recommend)
	if err != nil {
		return nil, err
	}

	engine, err := recommend.NewEngine(engineCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	engine.RegisterAlgorithm(algorithms.NewCollaborative())
	engine.RegisterAlgorithm(algorithms.NewContentBased(scorer))
	engine.RegisterAlgorithm(algorithms.NewTrending(rank))

	logger.Info().
		Str("default_algorithm", string(engineCfg.DefaultAlgorithm)).
		Int("default_limit", engineCfg.Limits.DefaultLimit).
		Int("max_limit", engineCfg.Limits.MaxLimit).
		Msg("recommendation engine initialized")
	return engine, nil
}

// buildEngineConfig maps the recommend config section onto the engine
// config. Zero values keep the engine defaults.
func buildEngineConfig(rc config.RecommendConfig) (*recommend.Config, error) {
	out := recommend.DefaultConfig()
	if rc.DefaultAlgorithm != "" {
		alg, err := recommend.ParseAlgorithm(rc.DefaultAlgorithm)
		if err != nil {
			return nil, fmt.Errorf("recommend.default_algorithm: %w", err)
		}
		out.DefaultAlgorithm = alg
	}
	if rc.DefaultLimit > 0 {
		out.Limits.DefaultLimit = rc.DefaultLimit
	}
	if rc.MaxLimit > 0 {
		out.Limits.MaxLimit = rc.MaxLimit
	}
	return out, nil
}
