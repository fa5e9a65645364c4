// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

// Package quote is the application facade: every API operation is a Service
// method composed from the store, activity log, ranking and recommendation
// engines, similarity scorer and upstream fetcher.
//
// The Service owns user preferences, collections, share links and reports.
// Quotes and likes belong to the store; events belong to the activity log.
package quote

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/quotient/internal/activity"
	"github.com/tomtom215/quotient/internal/logging"
	"github.com/tomtom215/quotient/internal/metrics"
	"github.com/tomtom215/quotient/internal/models"
	"github.com/tomtom215/quotient/internal/ranking"
	"github.com/tomtom215/quotient/internal/recommend"
	"github.com/tomtom215/quotient/internal/store"
)

// Fetcher retrieves a random quote from upstream.
type Fetcher interface {
	FetchRandomQuote(ctx context.Context) (models.Quote, error)
}

// Recommender produces recommendations.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) ([]models.Recommendation, error)
}

// Scorer computes quote similarity in [0, 1].
type Scorer interface {
	Score(a, b models.Quote) float64
}

// TrendingPublisher receives a trending snapshot after likes change.
type TrendingPublisher interface {
	PublishTrending(ctx context.Context, quotes []models.TrendingQuote) error
}

// RandomSource supplies randomness for quote selection. Tests inject a
// scripted source.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

type defaultRandom struct{}

func (defaultRandom) Float64() float64 { return rand.Float64() }
func (defaultRandom) IntN(n int) int   { return rand.IntN(n) }

// Options tunes random selection and share links.
type Options struct {
	FreshFetchProbability float64
	PrioritizeProbability float64
	TopCount              int
	ShareBaseURL          string
	Version               string
}

// DefaultOptions returns 0.3 / 0.7 / top 5.
func DefaultOptions() Options {
	return Options{
		FreshFetchProbability: 0.3,
		PrioritizeProbability: 0.7,
		TopCount:              5,
		ShareBaseURL:          "http://localhost:8080/s",
	}
}

// Deps are the collaborators of a Service. Fetcher, Recommender, Publisher
// and Random may be nil.
type Deps struct {
	Store       store.Store
	Log         *activity.Log
	Ranking     *ranking.Engine
	Scorer      Scorer
	Fetcher     Fetcher
	Recommender Recommender
	Publisher   TrendingPublisher
	Random      RandomSource
}

// Service implements every quote operation. It is safe for concurrent use.
type Service struct {
	store     store.Store
	log       *activity.Log
	ranking   *ranking.Engine
	scorer    Scorer
	fetcher   Fetcher
	recommend Recommender
	publisher TrendingPublisher
	rng       RandomSource
	opts      Options
	logger    zerolog.Logger

	now     func() time.Time
	started time.Time

	mu          sync.RWMutex
	preferences map[string]*models.UserPreferences
	collections map[string]*collection
	collOrder   []string
	shares      map[string]models.ShareLink
	reports     []models.QuoteReport
}

// NewService wires a Service. Store, Log, Ranking and Scorer are required.
func NewService(deps Deps, opts Options) (*Service, error) {
	switch {
	case deps.Store == nil:
		return nil, errors.New("quote service: store is required")
	case deps.Log == nil:
		return nil, errors.New("quote service: activity log is required")
	case deps.Ranking == nil:
		return nil, errors.New("quote service: ranking engine is required")
	case deps.Scorer == nil:
		return nil, errors.New("quote service: similarity scorer is required")
	}
	if deps.Random == nil {
		deps.Random = defaultRandom{}
	}
	if opts.TopCount <= 0 {
		opts.TopCount = DefaultOptions().TopCount
	}
	if opts.ShareBaseURL == "" {
		opts.ShareBaseURL = DefaultOptions().ShareBaseURL
	}

	return &Service{
		store:       deps.Store,
		log:         deps.Log,
		ranking:     deps.Ranking,
		scorer:      deps.Scorer,
		fetcher:     deps.Fetcher,
		recommend:   deps.Recommender,
		publisher:   deps.Publisher,
		rng:         deps.Random,
		opts:        opts,
		logger:      logging.WithComponent("quote"),
		now:         time.Now,
		started:     time.Now(),
		preferences: make(map[string]*models.UserPreferences),
		collections: make(map[string]*collection),
		shares:      make(map[string]models.ShareLink),
	}, nil
}

// reportStoreSize refreshes the quotes_stored gauge.
func (s *Service) reportStoreSize(ctx context.Context) {
	if n, err := s.store.CountQuotes(ctx); err == nil {
		metrics.SetQuotesStored(n)
	}
}

// SetClock replaces the time source. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	s.started = now()
}

func (s *Service) clock() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now()
}

// Seed stores quotes that are not present yet and returns how many were added.
func (s *Service) Seed(ctx context.Context, quotes []models.Quote) (int, error) {
	added := 0
	for _, q := range quotes {
		if q.DateAdded.IsZero() {
			q.DateAdded = s.clock()
		}
		ok, err := s.store.PutQuote(ctx, q)
		if err != nil {
			return added, fmt.Errorf("seed quote %s: %w", q.ID, err)
		}
		if ok {
			added++
		}
	}
	s.logger.Info().Int("added", added).Int("offered", len(quotes)).Msg("quotes seeded")
	s.reportStoreSize(ctx)
	return added, nil
}

// GetRandomQuote picks a stored quote at random, sometimes fetching a fresh
// one from upstream instead. For a known user the pick is usually swapped
// for one of the most-liked quotes.
func (s *Service) GetRandomQuote(ctx context.Context, userID string) (models.QuoteWithStats, error) {
	quotes, err := s.store.ListQuotes(ctx)
	if err != nil {
		return models.QuoteWithStats{}, fmt.Errorf("list quotes: %w", err)
	}

	var chosen models.Quote
	haveLocal := len(quotes) > 0
	if haveLocal {
		chosen = quotes[s.rng.IntN(len(quotes))]
	}

	if !haveLocal || s.rng.Float64() < s.opts.FreshFetchProbability {
		fresh, err := s.fetchAndStore(ctx)
		switch {
		case err == nil:
			chosen = fresh
		case !haveLocal:
			return models.QuoteWithStats{}, fmt.Errorf("%w: %w", ErrExternalAPIFailed, err)
		default:
			logging.Ctx(ctx).Warn().Err(err).Msg("upstream fetch failed, serving a stored quote")
		}
	}

	if userID != "" {
		top, err := s.mostLiked(ctx, s.opts.TopCount)
		if err != nil {
			return models.QuoteWithStats{}, err
		}
		if len(top) > 0 {
			candidate := top[s.rng.IntN(len(top))]
			if s.rng.Float64() < s.opts.PrioritizeProbability {
				chosen = candidate
			}
		}
	}

	return s.ranking.Enrich(ctx, chosen, userID)
}

// fetchAndStore fetches upstream and persists the quote, recording
// NEW_QUOTE_ADDED when it was not stored before.
func (s *Service) fetchAndStore(ctx context.Context) (models.Quote, error) {
	if s.fetcher == nil {
		return models.Quote{}, errors.New("no upstream fetcher configured")
	}
	q, err := s.fetcher.FetchRandomQuote(ctx)
	if err != nil {
		return models.Quote{}, err
	}
	added, err := s.store.PutQuote(ctx, q)
	if err != nil {
		return models.Quote{}, fmt.Errorf("store fetched quote: %w", err)
	}
	if !added {
		// Keep the stored copy; quotes are immutable.
		if stored, err := s.store.GetQuote(ctx, q.ID); err == nil {
			return stored, nil
		}
		return q, nil
	}
	s.log.Append(ctx, models.ActivityEvent{
		Type:    models.EventNewQuoteAdded,
		QuoteID: q.ID,
		Details: q.Author,
	})
	logging.Ctx(ctx).Info().Str("quote_id", q.ID).Str("author", q.Author).Msg("new quote added from upstream")
	s.reportStoreSize(ctx)
	return q, nil
}

// mostLiked returns up to n quotes ordered by like count, ties in insertion order.
func (s *Service) mostLiked(ctx context.Context, n int) ([]models.Quote, error) {
	quotes, err := s.store.ListQuotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	counts, err := s.store.LikeCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("like counts: %w", err)
	}
	slices.SortStableFunc(quotes, func(a, b models.Quote) int {
		return counts[b.ID] - counts[a.ID]
	})
	return quotes[:min(n, len(quotes))], nil
}

// GetQuote returns one quote with stats.
func (s *Service) GetQuote(ctx context.Context, id, userID string) (models.QuoteWithStats, error) {
	q, err := s.getQuote(ctx, id)
	if err != nil {
		return models.QuoteWithStats{}, err
	}
	return s.ranking.Enrich(ctx, q, userID)
}

func (s *Service) getQuote(ctx context.Context, id string) (models.Quote, error) {
	if strings.TrimSpace(id) == "" {
		return models.Quote{}, invalid("quote id is required")
	}
	q, err := s.store.GetQuote(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Quote{}, fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}
	if err != nil {
		return models.Quote{}, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

// enrichAll attaches stats to every quote.
func (s *Service) enrichAll(ctx context.Context, quotes []models.Quote, userID string) ([]models.QuoteWithStats, error) {
	out := make([]models.QuoteWithStats, 0, len(quotes))
	for _, q := range quotes {
		stats, err := s.ranking.Enrich(ctx, q, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, stats)
	}
	return out, nil
}

// Health reports liveness figures.
func (s *Service) Health(ctx context.Context) (models.HealthStatus, error) {
	count, err := s.store.CountQuotes(ctx)
	if err != nil {
		return models.HealthStatus{}, fmt.Errorf("count quotes: %w", err)
	}
	metrics.SetQuotesStored(count)
	now := s.clock()
	s.mu.RLock()
	uptime := now.Sub(s.started)
	s.mu.RUnlock()
	return models.HealthStatus{
		Status:        "healthy",
		Version:       s.opts.Version,
		Quotes:        count,
		Events:        s.log.Len(),
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: uptime.Seconds(),
		Timestamp:     now.UTC(),
	}, nil
}
