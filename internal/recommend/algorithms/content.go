// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package algorithms

import (
	"context"

	"github.com/tomtom215/quotient/internal/models"
	"github.com/tomtom215/quotient/internal/recommend"
)

// Scorer computes the similarity of two quotes in [0, 1].
type Scorer interface {
	Score(a, b models.Quote) float64
}

// ContentBased recommends quotes that read like the ones a user liked:
//
//	score = mean(similarity(q, liked)) * 0.6 + 0.3 (favorite author)
//
// With nothing liked the similarity term is zero and only the author bonus
// applies. Liked quotes are never recommended.
type ContentBased struct {
	BaseAlgorithm
	scorer Scorer
}

const (
	contentSimilarityWeight = 0.6
	contentAuthorWeight     = 0.3
)

// NewContentBased creates the content-based strategy.
func NewContentBased(scorer Scorer) *ContentBased {
	return &ContentBased{
		BaseAlgorithm: NewBaseAlgorithm(recommend.AlgorithmContentBased,
			"Recommended because it is similar to quotes you liked"),
		scorer: scorer,
	}
}

// Recommend implements recommend.Strategy.
func (c *ContentBased) Recommend(ctx context.Context, profile *recommend.Profile, candidates []models.Quote, limit int) ([]models.Recommendation, error) {
	pool := unliked(profile, candidates)
	recs := make([]models.Recommendation, 0, len(pool))
	for _, q := range pool {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs = append(recs, models.Recommendation{
			Quote:     q,
			Score:     c.score(profile, q),
			Algorithm: c.Name().String(),
		})
	}
	return topN(recs, limit), nil
}

func (c *ContentBased) score(profile *recommend.Profile, q models.Quote) float64 {
	score := 0.0
	if n := len(profile.LikedQuotes); n > 0 {
		total := 0.0
		for _, liked := range profile.LikedQuotes {
			total += c.scorer.Score(q, liked)
		}
		score = total / float64(n) * contentSimilarityWeight
	}
	if profile.IsFavoriteAuthor(q.Author) {
		score += contentAuthorWeight
	}
	return score
}
