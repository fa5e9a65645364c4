// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package quote

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/tomtom215/quotient/internal/models"
	"github.com/tomtom215/quotient/internal/recommend"
)

func clonePreferences(p *models.UserPreferences) models.UserPreferences {
	out := *p
	out.FavoriteAuthors = slices.Clone(p.FavoriteAuthors)
	out.FavoriteTags = slices.Clone(p.FavoriteTags)
	out.LikedQuotes = slices.Clone(p.LikedQuotes)
	return out
}

// preferencesLocked returns userID's preferences, creating empty ones on
// first use. Caller holds mu for writing.
func (s *Service) preferencesLocked(userID string) *models.UserPreferences {
	p, ok := s.preferences[userID]
	if !ok {
		now := s.now()
		p = &models.UserPreferences{
			UserID:          userID,
			FavoriteAuthors: []string{},
			FavoriteTags:    []string{},
			LikedQuotes:     []string{},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		s.preferences[userID] = p
	}
	return p
}

// UserPreferences returns userID's preferences, creating them if needed.
func (s *Service) UserPreferences(_ context.Context, userID string) (models.UserPreferences, error) {
	if strings.TrimSpace(userID) == "" {
		return models.UserPreferences{}, invalid("userId is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePreferences(s.preferencesLocked(userID)), nil
}

// UpdateUserPreferences replaces each list present in update.
func (s *Service) UpdateUserPreferences(_ context.Context, userID string, update models.PreferencesUpdate) (models.UserPreferences, error) {
	if strings.TrimSpace(userID) == "" {
		return models.UserPreferences{}, invalid("userId is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.preferencesLocked(userID)
	if update.FavoriteAuthors != nil {
		p.FavoriteAuthors = slices.Clone(*update.FavoriteAuthors)
	}
	if update.FavoriteTags != nil {
		p.FavoriteTags = slices.Clone(*update.FavoriteTags)
	}
	if update.LikedQuotes != nil {
		p.LikedQuotes = slices.Clone(*update.LikedQuotes)
	}
	p.UpdatedAt = s.now()
	return clonePreferences(p), nil
}

// RecommendData adapts the Service to the recommendation engine's data needs.
func (s *Service) RecommendData() recommend.DataProvider {
	return recommendData{s: s}
}

type recommendData struct {
	s *Service
}

func (d recommendData) ListQuotes(ctx context.Context) ([]models.Quote, error) {
	return d.s.store.ListQuotes(ctx)
}

func (d recommendData) LikedBy(ctx context.Context, userID string) ([]string, error) {
	ids, err := d.s.store.LikedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("liked by: %w", err)
	}
	return ids, nil
}

func (d recommendData) Preferences(ctx context.Context, userID string) (models.UserPreferences, error) {
	return d.s.UserPreferences(ctx, userID)
}
