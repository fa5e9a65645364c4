// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

// Package ranking derives popularity, trending and aggregate analytics from
// the quote store and the activity log.
//
// Nothing here is cached: every call reads the current likes and events, so
// results always reflect the latest state. Empty data yields empty results,
// never an error; only store failures are returned.
//
// Scores:
//
//	popularity = min(likes / 10, 1)
//	trending   = min(QUOTE_LIKED events in the last 24h / 5, 1)
package ranking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/quotient/internal/activity"
	"github.com/tomtom215/quotient/internal/logging"
	"github.com/tomtom215/quotient/internal/models"
	"github.com/tomtom215/quotient/internal/similarity"
	"github.com/tomtom215/quotient/internal/store"
)

const (
	popularityLikes   = 10
	trendingLikes     = 5
	trendingWindow    = 24 * time.Hour
	maxTopTags        = 10
	engagementBuckets = 24
	summaryAuthors    = 5
)

// PopularityScore maps a like count to [0, 1].
func PopularityScore(likes int) float64 {
	return min(float64(max(likes, 0))/popularityLikes, 1)
}

func trendingScore(windowLikes int) float64 {
	return min(float64(max(windowLikes, 0))/trendingLikes, 1)
}

// Engine computes rankings over a store and an activity log.
type Engine struct {
	store  store.Store
	log    *activity.Log
	now    func() time.Time
	logger zerolog.Logger
}

// NewEngine creates a ranking engine.
func NewEngine(st store.Store, log *activity.Log) *Engine {
	return &Engine{
		store:  st,
		log:    log,
		now:    time.Now,
		logger: logging.WithComponent("ranking"),
	}
}

// SetClock replaces the time source. Tests only.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// TrendingScore returns the trending score of one quote.
func (e *Engine) TrendingScore(quoteID string) float64 {
	since := e.now().Add(-trendingWindow)
	return trendingScore(e.log.CountSince(models.EventQuoteLiked, quoteID, since))
}

// Enrich attaches like count and scores to q. userID may be empty.
func (e *Engine) Enrich(ctx context.Context, q models.Quote, userID string) (models.QuoteWithStats, error) {
	likes, err := e.store.LikeCount(ctx, q.ID)
	if err != nil {
		return models.QuoteWithStats{}, fmt.Errorf("like count: %w", err)
	}
	liked := false
	if userID != "" {
		if liked, err = e.store.HasLiked(ctx, q.ID, userID); err != nil {
			return models.QuoteWithStats{}, fmt.Errorf("has liked: %w", err)
		}
	}
	return models.QuoteWithStats{
		Quote:              q,
		Likes:              likes,
		LikedByCurrentUser: liked,
		PopularityScore:    PopularityScore(likes),
		TrendingScore:      e.TrendingScore(q.ID),
	}, nil
}

// likedInWindow returns QUOTE_LIKED events at or after start.
func (e *Engine) likedInWindow(start time.Time) []models.ActivityEvent {
	events := e.log.Since(start)
	liked := events[:0]
	for _, ev := range events {
		if ev.Type == models.EventQuoteLiked {
			liked = append(liked, ev)
		}
	}
	return liked
}

// TrendingQuotes ranks quotes by likes inside r. Ties keep the order in
// which quotes first appear in the activity log. Quotes that can no longer
// be resolved are skipped.
func (e *Engine) TrendingQuotes(ctx context.Context, r TimeRange, limit int) ([]models.TrendingQuote, error) {
	type tally struct {
		id    string
		count int
	}

	var order []*tally
	byID := make(map[string]*tally)
	for _, ev := range e.likedInWindow(r.Start(e.now())) {
		t, ok := byID[ev.QuoteID]
		if !ok {
			t = &tally{id: ev.QuoteID}
			byID[ev.QuoteID] = t
			order = append(order, t)
		}
		t.count++
	}
	slices.SortStableFunc(order, func(a, b *tally) int {
		return b.count - a.count
	})

	out := make([]models.TrendingQuote, 0, min(len(order), max(limit, 0)))
	for _, t := range order {
		if len(out) >= limit {
			break
		}
		q, err := e.store.GetQuote(ctx, t.id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				e.logger.Debug().Str("quote_id", t.id).Msg("trending quote no longer resolvable")
				continue
			}
			return nil, fmt.Errorf("get trending quote: %w", err)
		}
		stats, err := e.Enrich(ctx, q, "")
		if err != nil {
			return nil, err
		}
		out = append(out, models.TrendingQuote{QuoteWithStats: stats, WindowLikes: t.count})
	}
	return out, nil
}

// PopularAuthors aggregates likes per author, most liked first. Ties keep
// the order in which authors were first added.
func (e *Engine) PopularAuthors(ctx context.Context, limit int) ([]models.AuthorStats, error) {
	quotes, counts, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var order []*models.AuthorStats
	byAuthor := make(map[string]*models.AuthorStats)
	for _, q := range quotes {
		s, ok := byAuthor[q.Author]
		if !ok {
			s = &models.AuthorStats{Author: q.Author}
			byAuthor[q.Author] = s
			order = append(order, s)
		}
		s.QuoteCount++
		s.TotalLikes += counts[q.ID]
	}
	slices.SortStableFunc(order, func(a, b *models.AuthorStats) int {
		return b.TotalLikes - a.TotalLikes
	})

	out := make([]models.AuthorStats, 0, min(len(order), max(limit, 0)))
	for _, s := range order {
		if len(out) >= limit {
			break
		}
		s.AverageLikes = float64(s.TotalLikes) / float64(s.QuoteCount)
		out = append(out, *s)
	}
	return out, nil
}

// TopTags returns up to ten canonical tags by number of quotes.
func (e *Engine) TopTags(ctx context.Context) ([]models.TagStats, error) {
	quotes, counts, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	type tagTally struct {
		tag   string
		count int
		likes int
	}
	var order []*tagTally
	byTag := make(map[string]*tagTally)
	for _, q := range quotes {
		seen := make(map[string]bool, len(q.Tags))
		for _, raw := range q.Tags {
			tag := similarity.CanonicalTag(raw)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			t, ok := byTag[tag]
			if !ok {
				t = &tagTally{tag: tag}
				byTag[tag] = t
				order = append(order, t)
			}
			t.count++
			t.likes += counts[q.ID]
		}
	}
	slices.SortStableFunc(order, func(a, b *tagTally) int {
		return b.count - a.count
	})

	out := make([]models.TagStats, 0, min(len(order), maxTopTags))
	for _, t := range order[:min(len(order), maxTopTags)] {
		out = append(out, models.TagStats{
			Tag:          t.tag,
			Count:        t.count,
			AverageLikes: float64(t.likes) / float64(t.count),
		})
	}
	return out, nil
}

// EngagementSeries splits r into 24 equal buckets of QUOTE_LIKED counts.
// RangeAll spans from the earliest logged event to now, or the last 24
// hours when the log is empty.
func (e *Engine) EngagementSeries(r TimeRange) []models.EngagementPoint {
	now := e.now()
	start := r.Start(now)
	if r == RangeAll {
		start = now.Add(-trendingWindow)
		if earliest, ok := e.earliestEvent(); ok && earliest.Before(now) {
			start = earliest
		}
	}
	width := now.Sub(start) / engagementBuckets
	if width <= 0 {
		width = trendingWindow / engagementBuckets
		start = now.Add(-trendingWindow)
	}

	points := make([]models.EngagementPoint, engagementBuckets)
	for i := range points {
		points[i].Start = start.Add(time.Duration(i) * width)
		points[i].End = start.Add(time.Duration(i+1) * width)
	}
	for _, ev := range e.likedInWindow(start) {
		if ev.Timestamp.After(now) {
			continue
		}
		idx := min(int(ev.Timestamp.Sub(start)/width), engagementBuckets-1)
		points[idx].Likes++
	}
	return points
}

func (e *Engine) earliestEvent() (time.Time, bool) {
	events := e.log.Events()
	if len(events) == 0 {
		return time.Time{}, false
	}
	earliest := events[0].Timestamp
	for _, ev := range events[1:] {
		if ev.Timestamp.Before(earliest) {
			earliest = ev.Timestamp
		}
	}
	return earliest, true
}

// Summary gathers the analytics overview for r.
func (e *Engine) Summary(ctx context.Context, r TimeRange) (models.AnalyticsSummary, error) {
	quoteCount, err := e.store.CountQuotes(ctx)
	if err != nil {
		return models.AnalyticsSummary{}, fmt.Errorf("count quotes: %w", err)
	}
	counts, err := e.store.LikeCounts(ctx)
	if err != nil {
		return models.AnalyticsSummary{}, fmt.Errorf("like counts: %w", err)
	}
	totalLikes := 0
	for _, n := range counts {
		totalLikes += n
	}

	events := e.log.Since(r.Start(e.now()))
	users := make(map[string]struct{})
	for _, ev := range events {
		if ev.UserID != "" {
			users[ev.UserID] = struct{}{}
		}
	}

	tags, err := e.TopTags(ctx)
	if err != nil {
		return models.AnalyticsSummary{}, err
	}
	authors, err := e.PopularAuthors(ctx, summaryAuthors)
	if err != nil {
		return models.AnalyticsSummary{}, err
	}

	return models.AnalyticsSummary{
		Range:          r.String(),
		TotalQuotes:    quoteCount,
		TotalLikes:     totalLikes,
		EventsInRange:  len(events),
		ActiveUsers:    len(users),
		TopTags:        tags,
		PopularAuthors: authors,
		Engagement:     e.EngagementSeries(r),
	}, nil
}

// snapshot reads all quotes and like counts.
func (e *Engine) snapshot(ctx context.Context) ([]models.Quote, map[string]int, error) {
	quotes, err := e.store.ListQuotes(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list quotes: %w", err)
	}
	counts, err := e.store.LikeCounts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("like counts: %w", err)
	}
	return quotes, counts, nil
}
