// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package algorithms

import (
	"context"
	"fmt"

	"github.com/tomtom215/quotient/internal/models"
	"github.com/tomtom215/quotient/internal/ranking"
	"github.com/tomtom215/quotient/internal/recommend"
)

// TrendingSource returns the trending list for a window.
type TrendingSource interface {
	TrendingQuotes(ctx context.Context, r ranking.TimeRange, limit int) ([]models.TrendingQuote, error)
}

// Trending recommends the last 24 hours' trending quotes at a fixed score
// and confidence. It ignores the profile.
type Trending struct {
	BaseAlgorithm
	source TrendingSource
}

const (
	trendingScore      = 0.8
	trendingConfidence = 0.9
)

// NewTrending creates the trending strategy.
func NewTrending(source TrendingSource) *Trending {
	return &Trending{
		BaseAlgorithm: NewBaseAlgorithm(recommend.AlgorithmTrending,
			"Recommended because it is trending right now"),
		source: source,
	}
}

// Recommend implements recommend.Strategy.
func (t *Trending) Recommend(ctx context.Context, _ *recommend.Profile, _ []models.Quote, limit int) ([]models.Recommendation, error) {
	trending, err := t.source.TrendingQuotes(ctx, ranking.RangeDay, limit)
	if err != nil {
		return nil, fmt.Errorf("trending quotes: %w", err)
	}
	recs := make([]models.Recommendation, 0, len(trending))
	for _, tq := range trending {
		recs = append(recs, models.Recommendation{
			Quote:      tq.Quote,
			Score:      trendingScore,
			Confidence: trendingConfidence,
			Algorithm:  t.Name().String(),
		})
	}
	return recs, nil
}
