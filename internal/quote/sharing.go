// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package quote

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/tomtom215/quotient/internal/models"
)

const (
	shareCodeLength      = 10
	defaultSharePlatform = "link"
	defaultHistoryLimit  = 50
)

// ShareQuote creates a share link for id and records QUOTE_SHARED.
func (s *Service) ShareQuote(ctx context.Context, id, userID, platform string) (models.ShareLink, error) {
	q, err := s.getQuote(ctx, id)
	if err != nil {
		return models.ShareLink{}, err
	}
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" {
		platform = defaultSharePlatform
	}

	code, err := gonanoid.New(shareCodeLength)
	if err != nil {
		return models.ShareLink{}, fmt.Errorf("generate share code: %w", err)
	}
	link := models.ShareLink{
		ID:        uuid.NewString(),
		Code:      code,
		QuoteID:   q.ID,
		UserID:    userID,
		Platform:  platform,
		URL:       strings.TrimRight(s.opts.ShareBaseURL, "/") + "/" + code,
		CreatedAt: s.clock(),
	}

	s.mu.Lock()
	s.shares[code] = link
	s.mu.Unlock()

	s.log.Append(ctx, models.ActivityEvent{
		Type:    models.EventQuoteShared,
		QuoteID: q.ID,
		UserID:  userID,
		Details: platform,
	})
	return link, nil
}

// SharedQuote resolves a share code to its link.
func (s *Service) SharedQuote(_ context.Context, code string) (models.ShareLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	link, ok := s.shares[code]
	if !ok {
		return models.ShareLink{}, fmt.Errorf("%w: %s", ErrShareNotFound, code)
	}
	return link, nil
}

// ReportQuote stores a report about id and records QUOTE_REPORTED.
func (s *Service) ReportQuote(ctx context.Context, id, userID, reason, details string) (models.QuoteReport, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.QuoteReport{}, invalid("reason is required")
	}
	q, err := s.getQuote(ctx, id)
	if err != nil {
		return models.QuoteReport{}, err
	}

	report := models.QuoteReport{
		ID:        uuid.NewString(),
		QuoteID:   q.ID,
		UserID:    userID,
		Reason:    reason,
		Details:   strings.TrimSpace(details),
		CreatedAt: s.clock(),
	}
	s.mu.Lock()
	s.reports = append(s.reports, report)
	s.mu.Unlock()

	s.log.Append(ctx, models.ActivityEvent{
		Type:    models.EventQuoteReported,
		QuoteID: q.ID,
		UserID:  userID,
		Details: reason,
	})
	s.logger.Info().Str("quote_id", q.ID).Str("reason", reason).Msg("quote reported")
	return report, nil
}

// Reports returns every report in submission order.
func (s *Service) Reports() []models.QuoteReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.reports)
}

// QuoteHistory returns userID's activity, newest first. Each entry carries
// its quote when the quote still resolves.
func (s *Service) QuoteHistory(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalid("userId is required")
	}
	limit, err := limitOrDefault(limit, defaultHistoryLimit)
	if err != nil {
		return nil, err
	}

	events := s.log.ForUser(userID)
	slices.Reverse(events)
	events = events[:min(limit, len(events))]

	out := make([]models.HistoryEntry, 0, len(events))
	for _, ev := range events {
		entry := models.HistoryEntry{ActivityEvent: ev}
		q, err := s.getQuote(ctx, ev.QuoteID)
		switch {
		case err == nil:
			entry.Quote = &q
		case !errors.Is(err, ErrQuoteNotFound) && !errors.Is(err, ErrInvalidInput):
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}
