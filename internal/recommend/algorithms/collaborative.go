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

// Collaborative scores quotes against the user's stated favorites:
//
//	score = 0.3 (favorite author) + matchingTags / max(tags, 1) * 0.2
//
// Liked quotes are never recommended.
type Collaborative struct {
	BaseAlgorithm
}

const (
	collaborativeAuthorWeight = 0.3
	collaborativeTagWeight    = 0.2
)

// NewCollaborative creates the collaborative strategy.
func NewCollaborative() *Collaborative {
	return &Collaborative{
		BaseAlgorithm: NewBaseAlgorithm(recommend.AlgorithmCollaborative,
			"Recommended because it matches your favorite authors and tags"),
	}
}

// Recommend implements recommend.Strategy.
func (c *Collaborative) Recommend(ctx context.Context, profile *recommend.Profile, candidates []models.Quote, limit int) ([]models.Recommendation, error) {
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

func (c *Collaborative) score(profile *recommend.Profile, q models.Quote) float64 {
	score := 0.0
	if profile.IsFavoriteAuthor(q.Author) {
		score += collaborativeAuthorWeight
	}
	score += float64(profile.MatchingTags(q)) / float64(max(len(q.Tags), 1)) * collaborativeTagWeight
	return score
}
