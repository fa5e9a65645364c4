// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package recommend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/quotient/internal/metrics"
	"github.com/tomtom215/quotient/internal/models"
)

// ErrAlgorithmNotRegistered is returned when a request names an algorithm
// the engine cannot run.
var ErrAlgorithmNotRegistered = errors.New("recommend: algorithm not registered")

// Engine dispatches recommendation requests to registered strategies. It is
// safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	algorithms map[Algorithm]Strategy
	algMu      sync.RWMutex

	dataProvider DataProvider
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:     cfg,
		logger:     logger.With().Str("component", "recommend").Logger(),
		algorithms: make(map[Algorithm]Strategy),
	}, nil
}

// SetDataProvider sets the source of quotes and user signal.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.dataProvider = dp
}

// RegisterAlgorithm adds or replaces a strategy.
func (e *Engine) RegisterAlgorithm(s Strategy) {
	e.algMu.Lock()
	defer e.algMu.Unlock()

	e.algorithms[s.Name()] = s
	e.logger.Debug().
		Str("algorithm", s.Name().String()).
		Msg("registered algorithm")
}

func (e *Engine) strategy(name Algorithm) (Strategy, error) {
	e.algMu.RLock()
	defer e.algMu.RUnlock()

	s, ok := e.algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAlgorithmNotRegistered, name)
	}
	return s, nil
}

// Recommend returns up to req.Limit recommendations for req.UserID.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) ([]models.Recommendation, error) {
	start := time.Now()
	req = e.prepareRequest(req)
	logger := e.createRequestLogger(req)

	if e.dataProvider == nil {
		return nil, fmt.Errorf("data provider not set")
	}

	profile, candidates, err := e.loadProfile(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	var recs []models.Recommendation
	if req.Algorithm == AlgorithmHybrid {
		recs, err = e.hybrid(ctx, profile, candidates, req.Limit)
	} else {
		recs, err = e.run(ctx, req.Algorithm, profile, candidates, req.Limit)
	}
	if err != nil {
		return nil, err
	}

	recs = e.finalize(recs, req.IncludeExplanation)
	elapsed := time.Since(start)
	metrics.RecordRecommendation(req.Algorithm.String(), elapsed)

	logger.Debug().
		Int("candidates", len(candidates)).
		Int("liked", len(profile.Liked)).
		Int("returned", len(recs)).
		Dur("latency", elapsed).
		Msg("recommendation complete")

	return recs, nil
}

// prepareRequest applies the default algorithm and clamps the limit to
// [1, MaxLimit]. A zero limit means DefaultLimit.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.Algorithm == "" {
		req.Algorithm = e.config.DefaultAlgorithm
	}
	if req.Limit == 0 {
		req.Limit = e.config.Limits.DefaultLimit
	}
	req.Limit = min(max(req.Limit, 1), e.config.Limits.MaxLimit)
	return req
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("user_id", req.UserID).
		Str("algorithm", req.Algorithm.String()).
		Int("limit", req.Limit).
		Logger()
}

// loadProfile gathers the user's preferences and liked quotes, and returns
// every stored quote as the candidate set.
func (e *Engine) loadProfile(ctx context.Context, userID string) (*Profile, []models.Quote, error) {
	quotes, err := e.dataProvider.ListQuotes(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list quotes: %w", err)
	}

	profile := &Profile{UserID: userID, Liked: make(map[string]struct{})}
	if userID == "" {
		return profile, quotes, nil
	}

	prefs, err := e.dataProvider.Preferences(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("preferences: %w", err)
	}
	liked, err := e.dataProvider.LikedBy(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("liked quotes: %w", err)
	}

	profile.FavoriteAuthors = prefs.FavoriteAuthors
	profile.FavoriteTags = prefs.FavoriteTags
	for _, id := range liked {
		profile.Liked[id] = struct{}{}
	}
	for _, id := range prefs.LikedQuotes {
		profile.Liked[id] = struct{}{}
	}
	for _, q := range quotes {
		if profile.HasLiked(q.ID) {
			profile.LikedQuotes = append(profile.LikedQuotes, q)
		}
	}
	return profile, quotes, nil
}

func (e *Engine) run(ctx context.Context, name Algorithm, profile *Profile, candidates []models.Quote, limit int) ([]models.Recommendation, error) {
	s, err := e.strategy(name)
	if err != nil {
		return nil, err
	}
	recs, err := s.Recommend(ctx, profile, candidates, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return recs, nil
}

// hybrid merges collaborative and content-based results, ceil(limit/2)
// from each. The first occurrence of a quote wins.
func (e *Engine) hybrid(ctx context.Context, profile *Profile, candidates []models.Quote, limit int) ([]models.Recommendation, error) {
	half := (limit + 1) / 2

	collaborative, err := e.run(ctx, AlgorithmCollaborative, profile, candidates, half)
	if err != nil {
		return nil, err
	}
	content, err := e.run(ctx, AlgorithmContentBased, profile, candidates, half)
	if err != nil {
		return nil, err
	}

	merged := make([]models.Recommendation, 0, len(collaborative)+len(content))
	seen := make(map[string]struct{}, cap(merged))
	for _, r := range slices.Concat(collaborative, content) {
		if _, dup := seen[r.Quote.ID]; dup {
			continue
		}
		seen[r.Quote.ID] = struct{}{}
		merged = append(merged, r)
	}
	SortByScore(merged)
	return merged[:min(len(merged), limit)], nil
}

// finalize fills confidence and explanation.
func (e *Engine) finalize(recs []models.Recommendation, explain bool) []models.Recommendation {
	for i := range recs {
		if recs[i].Confidence == 0 {
			recs[i].Confidence = Confidence(recs[i].Score)
		}
		recs[i].Reason = ""
		if explain {
			if s, err := e.strategy(Algorithm(recs[i].Algorithm)); err == nil {
				recs[i].Reason = s.Explanation()
			}
		}
	}
	return recs
}

// SortByScore orders recommendations best first, keeping the input order
// of equal scores.
func SortByScore(recs []models.Recommendation) {
	slices.SortStableFunc(recs, func(a, b models.Recommendation) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
}
