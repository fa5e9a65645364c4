// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/quotient/internal/models"
	"github.com/tomtom215/quotient/internal/ranking"
	"github.com/tomtom215/quotient/internal/recommend"
)

const (
	defaultTrendingLimit = 10
	defaultAuthorsLimit  = 10
)

func parseRange(s string) (ranking.TimeRange, error) {
	r, err := ranking.ParseTimeRange(s)
	if err != nil {
		return "", invalid(err.Error())
	}
	return r, nil
}

func limitOrDefault(limit, def int) (int, error) {
	switch {
	case limit < 0:
		return 0, invalid("limit must not be negative")
	case limit == 0:
		return def, nil
	default:
		return limit, nil
	}
}

// Analytics summarizes activity in the window named by timeRange.
func (s *Service) Analytics(ctx context.Context, timeRange string) (models.AnalyticsSummary, error) {
	r, err := parseRange(timeRange)
	if err != nil {
		return models.AnalyticsSummary{}, err
	}
	return s.ranking.Summary(ctx, r)
}

// TrendingQuotes ranks quotes by likes inside the window.
func (s *Service) TrendingQuotes(ctx context.Context, timeRange string, limit int, userID string) ([]models.TrendingQuote, error) {
	r, err := parseRange(timeRange)
	if err != nil {
		return nil, err
	}
	if limit, err = limitOrDefault(limit, defaultTrendingLimit); err != nil {
		return nil, err
	}
	trending, err := s.ranking.TrendingQuotes(ctx, r, limit)
	if err != nil {
		return nil, err
	}
	if userID != "" {
		for i := range trending {
			liked, err := s.store.HasLiked(ctx, trending[i].ID, userID)
			if err != nil {
				return nil, fmt.Errorf("has liked: %w", err)
			}
			trending[i].LikedByCurrentUser = liked
		}
	}
	return trending, nil
}

// PopularAuthors returns authors by total likes.
func (s *Service) PopularAuthors(ctx context.Context, limit int) ([]models.AuthorStats, error) {
	limit, err := limitOrDefault(limit, defaultAuthorsLimit)
	if err != nil {
		return nil, err
	}
	return s.ranking.PopularAuthors(ctx, limit)
}

// TopTags returns the most used tags.
func (s *Service) TopTags(ctx context.Context) ([]models.TagStats, error) {
	return s.ranking.TopTags(ctx)
}

// EngagementSeries buckets likes over the window.
func (s *Service) EngagementSeries(_ context.Context, timeRange string) ([]models.EngagementPoint, error) {
	r, err := parseRange(timeRange)
	if err != nil {
		return nil, err
	}
	return s.ranking.EngagementSeries(r), nil
}

// DiscoverPatterns runs one pattern analysis.
func (s *Service) DiscoverPatterns(ctx context.Context, kind, timeRange string) (models.PatternResult, error) {
	r, err := parseRange(timeRange)
	if err != nil {
		return models.PatternResult{}, err
	}
	k, err := ranking.ParsePatternKind(kind)
	if err != nil {
		return models.PatternResult{}, invalid(err.Error())
	}
	return s.ranking.DiscoverPatterns(ctx, k, r)
}

// Recommend returns recommendations for userID. An empty algorithm uses the
// configured default.
func (s *Service) Recommend(ctx context.Context, userID string, limit int, algorithm string, explain bool) ([]models.Recommendation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalid("userId is required")
	}
	if limit < 0 {
		return nil, invalid("limit must not be negative")
	}
	alg, err := recommend.ParseAlgorithm(algorithm)
	if err != nil {
		return nil, invalid(err.Error())
	}
	if s.recommend == nil {
		return nil, errors.New("recommendations are not configured")
	}

	recs, err := s.recommend.Recommend(ctx, recommend.Request{
		UserID:             userID,
		Limit:              limit,
		Algorithm:          alg,
		IncludeExplanation: explain,
	})
	if errors.Is(err, recommend.ErrAlgorithmNotRegistered) {
		return nil, invalid(err.Error())
	}
	return recs, err
}
