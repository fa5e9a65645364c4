// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package quote

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/quotient/internal/logging"
	"github.com/tomtom215/quotient/internal/metrics"
	"github.com/tomtom215/quotient/internal/models"
	"github.com/tomtom215/quotient/internal/ranking"
)

// trendingSnapshotSize is the length of the list published after a like.
const trendingSnapshotSize = 10

// LikeQuote records userID's like of id. Liking twice is a no-op; only the
// first like is logged. A trending snapshot is published either way.
func (s *Service) LikeQuote(ctx context.Context, id, userID string) (models.QuoteWithStats, error) {
	if strings.TrimSpace(userID) == "" {
		return models.QuoteWithStats{}, invalid("userId is required")
	}
	q, err := s.getQuote(ctx, id)
	if err != nil {
		return models.QuoteWithStats{}, err
	}

	added, err := s.store.AddLike(ctx, q.ID, userID, s.clock())
	if err != nil {
		return models.QuoteWithStats{}, fmt.Errorf("add like: %w", err)
	}
	if added {
		metrics.RecordLike("like")
		s.log.Append(ctx, models.ActivityEvent{
			Type:    models.EventQuoteLiked,
			QuoteID: q.ID,
			UserID:  userID,
		})
	}
	s.publishTrending(ctx)

	return s.ranking.Enrich(ctx, q, userID)
}

// UnlikeQuote removes userID's like of id. Unliking a quote that is not
// liked is a no-op.
func (s *Service) UnlikeQuote(ctx context.Context, id, userID string) (models.QuoteWithStats, error) {
	if strings.TrimSpace(userID) == "" {
		return models.QuoteWithStats{}, invalid("userId is required")
	}
	q, err := s.getQuote(ctx, id)
	if err != nil {
		return models.QuoteWithStats{}, err
	}

	removed, err := s.store.RemoveLike(ctx, q.ID, userID)
	if err != nil {
		return models.QuoteWithStats{}, fmt.Errorf("remove like: %w", err)
	}
	if removed {
		metrics.RecordLike("unlike")
		s.log.Append(ctx, models.ActivityEvent{
			Type:    models.EventQuoteUnliked,
			QuoteID: q.ID,
			UserID:  userID,
		})
		s.publishTrending(ctx)
	}

	return s.ranking.Enrich(ctx, q, userID)
}

// publishTrending sends the current 24h trending list to subscribers.
// Failures are logged; likes never fail because of them.
func (s *Service) publishTrending(ctx context.Context) {
	if err := s.PublishTrendingSnapshot(ctx); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("trending snapshot publish failed")
	}
}

// PublishTrendingSnapshot publishes the current 24h trending list. It is a
// no-op without a publisher.
func (s *Service) PublishTrendingSnapshot(ctx context.Context) error {
	if s.publisher == nil {
		return nil
	}
	trending, err := s.ranking.TrendingQuotes(ctx, ranking.RangeDay, trendingSnapshotSize)
	if err != nil {
		return fmt.Errorf("trending snapshot: %w", err)
	}
	return s.publisher.PublishTrending(ctx, trending)
}
