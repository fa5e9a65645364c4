// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

// Package algorithms implements the recommendation strategies registered
// with the recommend engine.
//
// Every strategy is stateless apart from its injected collaborators and is
// safe for concurrent use.
package algorithms

import (
	"github.com/tomtom215/quotient/internal/models"
	"github.com/tomtom215/quotient/internal/recommend"
)

// BaseAlgorithm carries the name and explanation shared by every strategy.
type BaseAlgorithm struct {
	name        recommend.Algorithm
	explanation string
}

// NewBaseAlgorithm creates a base with the given name and explanation.
func NewBaseAlgorithm(name recommend.Algorithm, explanation string) BaseAlgorithm {
	return BaseAlgorithm{name: name, explanation: explanation}
}

// Name returns the algorithm identifier.
func (b *BaseAlgorithm) Name() recommend.Algorithm {
	return b.name
}

// Explanation returns the static reason attached when explanations are requested.
func (b *BaseAlgorithm) Explanation() string {
	return b.explanation
}

// unliked drops candidates the profile already likes.
func unliked(profile *recommend.Profile, candidates []models.Quote) []models.Quote {
	out := make([]models.Quote, 0, len(candidates))
	for _, q := range candidates {
		if !profile.HasLiked(q.ID) {
			out = append(out, q)
		}
	}
	return out
}

// topN sorts recs best first (stable) and truncates to limit.
func topN(recs []models.Recommendation, limit int) []models.Recommendation {
	recommend.SortByScore(recs)
	return recs[:min(len(recs), max(limit, 0))]
}
