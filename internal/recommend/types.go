// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package recommend

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/tomtom215/quotient/internal/models"
	"github.com/tomtom215/quotient/internal/similarity"
)

// Algorithm names a recommendation strategy.
type Algorithm string

const (
	AlgorithmCollaborative Algorithm = "collaborative"
	AlgorithmContentBased  Algorithm = "content_based"
	AlgorithmTrending      Algorithm = "trending"
	AlgorithmHybrid        Algorithm = "hybrid"
)

// ParseAlgorithm parses an algorithm name. An empty string returns "" so the
// engine can apply its configured default. "content-based" is accepted as an
// alias.
func ParseAlgorithm(s string) (Algorithm, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch Algorithm(name) {
	case "":
		return "", nil
	case AlgorithmCollaborative, AlgorithmContentBased, AlgorithmTrending, AlgorithmHybrid:
		return Algorithm(name), nil
	case "content-based", "content":
		return AlgorithmContentBased, nil
	default:
		return "", fmt.Errorf("unknown algorithm %q (want collaborative, content_based, trending or hybrid)", s)
	}
}

func (a Algorithm) String() string { return string(a) }

// Request is one recommendation query.
type Request struct {
	UserID             string
	Limit              int
	Algorithm          Algorithm
	IncludeExplanation bool
}

// Profile is what the engine knows about the requesting user.
type Profile struct {
	UserID          string
	FavoriteAuthors []string
	FavoriteTags    []string

	// Liked holds every quote id the user likes: store likes plus the
	// likedQuotes preference list.
	Liked map[string]struct{}

	// LikedQuotes are the liked ids that still resolve to a quote.
	LikedQuotes []models.Quote
}

// HasLiked reports whether the user likes quoteID.
func (p *Profile) HasLiked(quoteID string) bool {
	_, ok := p.Liked[quoteID]
	return ok
}

// IsFavoriteAuthor reports whether author is a favorite, case-insensitively.
func (p *Profile) IsFavoriteAuthor(author string) bool {
	for _, fav := range p.FavoriteAuthors {
		if similarity.SameAuthor(fav, author) {
			return true
		}
	}
	return false
}

// MatchingTags counts the tags of q that are favorite tags.
func (p *Profile) MatchingTags(q models.Quote) int {
	if len(p.FavoriteTags) == 0 {
		return 0
	}
	favs := make(map[string]struct{}, len(p.FavoriteTags))
	for _, t := range p.FavoriteTags {
		favs[similarity.CanonicalTag(t)] = struct{}{}
	}
	n := 0
	for _, t := range q.Tags {
		if _, ok := favs[similarity.CanonicalTag(t)]; ok {
			n++
		}
	}
	return n
}

// Strategy scores candidates for a profile. Results are sorted best first
// and hold at most limit entries. Algorithm must be set on each result;
// Confidence may be left zero for the engine to derive from the score.
type Strategy interface {
	Name() Algorithm
	Explanation() string
	Recommend(ctx context.Context, profile *Profile, candidates []models.Quote, limit int) ([]models.Recommendation, error)
}

// DataProvider supplies the quotes and user signal the engine needs.
type DataProvider interface {
	ListQuotes(ctx context.Context) ([]models.Quote, error)
	LikedBy(ctx context.Context, userID string) ([]string, error)
	Preferences(ctx context.Context, userID string) (models.UserPreferences, error)
}

// Confidence is the default confidence for a score: min(score, 1).
func Confidence(score float64) float64 {
	return math.Min(math.Max(score, 0), 1)
}
