// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/tomtom215/quotient/internal/models"
)

// MemoryStore keeps everything in maps guarded by one RWMutex.
type MemoryStore struct {
	mu        sync.RWMutex
	quotes    map[string]models.Quote
	order     []string
	likes     map[string]map[string]time.Time // quoteID -> userID -> liked at
	userLikes map[string][]string             // userID -> quoteIDs, like order
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		quotes:    make(map[string]models.Quote),
		likes:     make(map[string]map[string]time.Time),
		userLikes: make(map[string][]string),
	}
}

func (s *MemoryStore) PutQuote(_ context.Context, q models.Quote) (bool, error) {
	if err := q.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.quotes[q.ID]; exists {
		return false, nil
	}
	s.quotes[q.ID] = cloneQuote(q)
	s.order = append(s.order, q.ID)
	return true, nil
}

func (s *MemoryStore) GetQuote(_ context.Context, id string) (models.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quotes[id]
	if !ok {
		return models.Quote{}, ErrNotFound
	}
	return cloneQuote(q), nil
}

func (s *MemoryStore) ListQuotes(_ context.Context) ([]models.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Quote, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneQuote(s.quotes[id]))
	}
	return out, nil
}

func (s *MemoryStore) CountQuotes(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quotes), nil
}

func (s *MemoryStore) AddLike(_ context.Context, quoteID, userID string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, ok := s.likes[quoteID]
	if !ok {
		users = make(map[string]time.Time)
		s.likes[quoteID] = users
	}
	if _, liked := users[userID]; liked {
		return false, nil
	}
	users[userID] = at
	s.userLikes[userID] = append(s.userLikes[userID], quoteID)
	return true, nil
}

func (s *MemoryStore) RemoveLike(_ context.Context, quoteID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.likes[quoteID]
	if _, liked := users[userID]; !liked {
		return false, nil
	}
	delete(users, userID)
	if len(users) == 0 {
		delete(s.likes, quoteID)
	}

	liked := s.userLikes[userID]
	if i := slices.Index(liked, quoteID); i >= 0 {
		liked = slices.Delete(liked, i, i+1)
	}
	if len(liked) == 0 {
		delete(s.userLikes, userID)
	} else {
		s.userLikes[userID] = liked
	}
	return true, nil
}

func (s *MemoryStore) LikeCount(_ context.Context, quoteID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.likes[quoteID]), nil
}

func (s *MemoryStore) HasLiked(_ context.Context, quoteID, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.likes[quoteID][userID]
	return ok, nil
}

func (s *MemoryStore) LikeCounts(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int, len(s.likes))
	for id, users := range s.likes {
		counts[id] = len(users)
	}
	return counts, nil
}

func (s *MemoryStore) LikedBy(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.userLikes[userID]), nil
}

func (s *MemoryStore) Close() error { return nil }
