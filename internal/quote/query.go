// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package quote

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tomtom215/quotient/internal/models"
	"github.com/tomtom215/quotient/internal/similarity"
)

const (
	defaultSimilarLimit = 5

	// A length range is reported only above this spread.
	significantLengthSpread = 50

	verySimilarThreshold     = 0.7
	moderateSimilarThreshold = 0.4
)

// ListQuotes filters, sorts and pages the stored quotes. A zero limit
// returns everything after the offset.
func (s *Service) ListQuotes(ctx context.Context, f models.QuoteFilter, userID string) (models.QuotePage, error) {
	if f.Offset < 0 || f.Limit < 0 {
		return models.QuotePage{}, invalid("offset and limit must not be negative")
	}
	if f.MinLength < 0 || f.MaxLength < 0 || (f.MaxLength > 0 && f.MinLength > f.MaxLength) {
		return models.QuotePage{}, invalid("length bounds must satisfy 0 <= minLength <= maxLength")
	}
	if f.Sort == "" {
		f.Sort = models.SortByLikes
	}
	if f.Direction == "" {
		f.Direction = models.SortDesc
	}

	quotes, err := s.store.ListQuotes(ctx)
	if err != nil {
		return models.QuotePage{}, fmt.Errorf("list quotes: %w", err)
	}
	counts, err := s.store.LikeCounts(ctx)
	if err != nil {
		return models.QuotePage{}, fmt.Errorf("like counts: %w", err)
	}

	tag := similarity.CanonicalTag(f.Tag)
	matched := quotes[:0]
	for _, q := range quotes {
		if f.Author != "" && !similarity.SameAuthor(q.Author, f.Author) {
			continue
		}
		if tag != "" && !hasTag(q, tag) {
			continue
		}
		n := q.ContentLength()
		if n < f.MinLength || (f.MaxLength > 0 && n > f.MaxLength) {
			continue
		}
		matched = append(matched, q)
	}

	compare := func(a, b models.Quote) int {
		switch f.Sort {
		case models.SortByAuthor:
			return cmp.Compare(strings.ToLower(a.Author), strings.ToLower(b.Author))
		case models.SortByLength:
			return cmp.Compare(a.ContentLength(), b.ContentLength())
		default:
			return cmp.Compare(counts[a.ID], counts[b.ID])
		}
	}
	slices.SortStableFunc(matched, func(a, b models.Quote) int {
		if f.Direction == models.SortDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})

	total := len(matched)
	start := min(f.Offset, total)
	end := total
	if f.Limit > 0 {
		end = min(start+f.Limit, total)
	}

	items, err := s.enrichAll(ctx, matched[start:end], userID)
	if err != nil {
		return models.QuotePage{}, err
	}
	return models.QuotePage{Items: items, Total: total, Offset: f.Offset, Limit: f.Limit}, nil
}

func hasTag(q models.Quote, canonical string) bool {
	for _, t := range q.Tags {
		if similarity.CanonicalTag(t) == canonical {
			return true
		}
	}
	return false
}

// SearchQuotes matches query case-insensitively against content, author and
// tags, most liked first. An empty query matches every quote; a zero limit
// returns every match.
func (s *Service) SearchQuotes(ctx context.Context, query string, limit int, userID string) ([]models.QuoteWithStats, error) {
	if limit < 0 {
		return nil, invalid("limit must not be negative")
	}

	quotes, err := s.store.ListQuotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	counts, err := s.store.LikeCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("like counts: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	matched := quotes[:0]
	for _, q := range quotes {
		if needle == "" || matchesQuery(q, needle) {
			matched = append(matched, q)
		}
	}
	slices.SortStableFunc(matched, func(a, b models.Quote) int {
		return counts[b.ID] - counts[a.ID]
	})
	if limit > 0 {
		matched = matched[:min(limit, len(matched))]
	}
	return s.enrichAll(ctx, matched, userID)
}

func matchesQuery(q models.Quote, needle string) bool {
	if strings.Contains(strings.ToLower(q.Content), needle) ||
		strings.Contains(strings.ToLower(q.Author), needle) {
		return true
	}
	for _, t := range q.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// GetSimilarQuotes ranks every other quote by similarity to id. An unknown
// id yields an empty list.
func (s *Service) GetSimilarQuotes(ctx context.Context, id string, limit int, userID string) ([]models.SimilarQuote, error) {
	if limit < 0 {
		return nil, invalid("limit must not be negative")
	}
	if limit == 0 {
		limit = defaultSimilarLimit
	}

	target, err := s.getQuote(ctx, id)
	if err != nil {
		if errors.Is(err, ErrQuoteNotFound) {
			return []models.SimilarQuote{}, nil
		}
		return nil, err
	}

	quotes, err := s.store.ListQuotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}

	type scored struct {
		q     models.Quote
		score float64
	}
	ranked := make([]scored, 0, len(quotes))
	for _, q := range quotes {
		if q.ID == target.ID {
			continue
		}
		ranked = append(ranked, scored{q: q, score: s.scorer.Score(target, q)})
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]models.SimilarQuote, 0, min(limit, len(ranked)))
	for _, r := range ranked[:min(limit, len(ranked))] {
		stats, err := s.ranking.Enrich(ctx, r.q, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.SimilarQuote{QuoteWithStats: stats, Similarity: r.score})
	}
	return out, nil
}

// CompareQuotes scores every unordered pair among the resolvable ids.
// Duplicate and unknown ids are ignored.
func (s *Service) CompareQuotes(ctx context.Context, ids []string, includeMetrics bool) (models.QuoteComparison, error) {
	seen := make(map[string]bool, len(ids))
	var quotes []models.Quote
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		q, err := s.getQuote(ctx, id)
		if err != nil {
			if errors.Is(err, ErrQuoteNotFound) || errors.Is(err, ErrInvalidInput) {
				continue
			}
			return models.QuoteComparison{}, err
		}
		quotes = append(quotes, q)
	}
	if len(quotes) < 2 {
		return models.QuoteComparison{}, ErrInsufficientQuotes
	}

	withStats, err := s.enrichAll(ctx, quotes, "")
	if err != nil {
		return models.QuoteComparison{}, err
	}

	var pairs []models.PairSimilarity
	total := 0.0
	for i := range quotes {
		for j := i + 1; j < len(quotes); j++ {
			score := s.scorer.Score(quotes[i], quotes[j])
			pairs = append(pairs, models.PairSimilarity{QuoteA: quotes[i].ID, QuoteB: quotes[j].ID, Score: score})
			total += score
		}
	}
	avg := total / float64(len(pairs))

	result := models.QuoteComparison{
		Quotes:            withStats,
		Similarities:      pairs,
		AverageSimilarity: avg,
		Differences:       differences(quotes),
		Recommendation:    similarityVerdict(avg),
	}
	if includeMetrics {
		for _, qs := range withStats {
			result.Metrics = append(result.Metrics, models.QuoteMetrics{
				QuoteID:         qs.ID,
				Likes:           qs.Likes,
				PopularityScore: qs.PopularityScore,
				TrendingScore:   qs.TrendingScore,
				Length:          qs.ContentLength(),
				WordCount:       len(strings.Fields(qs.Content)),
				TagCount:        len(qs.Tags),
			})
		}
	}
	return result, nil
}

func differences(quotes []models.Quote) models.QuoteDifferences {
	var authors []string
	for _, q := range quotes {
		if !slices.ContainsFunc(authors, func(a string) bool { return similarity.SameAuthor(a, q.Author) }) {
			authors = append(authors, q.Author)
		}
	}

	lo, hi := quotes[0].ContentLength(), quotes[0].ContentLength()
	for _, q := range quotes[1:] {
		n := q.ContentLength()
		lo, hi = min(lo, n), max(hi, n)
	}

	d := models.QuoteDifferences{Authors: authors, SameAuthor: len(authors) == 1}
	if hi-lo > significantLengthSpread {
		d.LengthRange = &models.LengthRange{Min: lo, Max: hi, Spread: hi - lo}
	}
	return d
}

func similarityVerdict(avg float64) string {
	switch {
	case avg > verySimilarThreshold:
		return "These quotes are very similar in theme and content"
	case avg > moderateSimilarThreshold:
		return "These quotes share moderate similarity"
	default:
		return "These quotes are quite different from each other"
	}
}
