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

	"github.com/tomtom215/quotient/internal/models"
	"github.com/tomtom215/quotient/internal/store"
)

// collection is the stored form: metadata plus the ordered quote ids. Quotes
// are resolved from the store on every read.
type collection struct {
	meta     models.QuoteCollection
	quoteIDs []string
}

// snapshot copies c so it can be resolved after mu is released.
func (c *collection) snapshot() collection {
	return collection{meta: c.meta, quoteIDs: slices.Clone(c.quoteIDs)}
}

// resolve loads the snapshot's quotes in insertion order, skipping ids that
// no longer resolve.
func (s *Service) resolve(ctx context.Context, snap collection) (models.QuoteCollection, error) {
	out := snap.meta
	out.Quotes = make([]models.Quote, 0, len(snap.quoteIDs))
	for _, id := range snap.quoteIDs {
		q, err := s.store.GetQuote(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return models.QuoteCollection{}, fmt.Errorf("resolve collection %s: %w", snap.meta.ID, err)
		}
		out.Quotes = append(out.Quotes, q)
	}
	return out, nil
}

// ownedCollection returns the collection if userID owns it. Caller holds mu.
func (s *Service) ownedCollection(id, userID string) (*collection, error) {
	c, ok := s.collections[id]
	if !ok || c.meta.UserID != userID {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, id)
	}
	return c, nil
}

// CreateCollection creates an empty collection owned by userID.
func (s *Service) CreateCollection(ctx context.Context, userID string, in models.NewCollection) (models.QuoteCollection, error) {
	if strings.TrimSpace(userID) == "" {
		return models.QuoteCollection{}, invalid("userId is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.QuoteCollection{}, invalid("collection name is required")
	}

	now := s.clock()
	c := &collection{meta: models.QuoteCollection{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
		IsPublic:    in.IsPublic,
		UserID:      userID,
	}}

	s.mu.Lock()
	s.collections[c.meta.ID] = c
	s.collOrder = append(s.collOrder, c.meta.ID)
	snap := c.snapshot()
	s.mu.Unlock()

	s.logger.Debug().Str("collection_id", c.meta.ID).Str("user_id", userID).Msg("collection created")
	return s.resolve(ctx, snap)
}

// Collections lists userID's collections in creation order.
func (s *Service) Collections(ctx context.Context, userID string) ([]models.QuoteCollection, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalid("userId is required")
	}
	s.mu.RLock()
	var snaps []collection
	for _, id := range s.collOrder {
		if c := s.collections[id]; c.meta.UserID == userID {
			snaps = append(snaps, c.snapshot())
		}
	}
	s.mu.RUnlock()

	out := make([]models.QuoteCollection, 0, len(snaps))
	for _, snap := range snaps {
		c, err := s.resolve(ctx, snap)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Collection returns one of userID's collections.
func (s *Service) Collection(ctx context.Context, id, userID string) (models.QuoteCollection, error) {
	s.mu.RLock()
	c, err := s.ownedCollection(id, userID)
	var snap collection
	if err == nil {
		snap = c.snapshot()
	}
	s.mu.RUnlock()
	if err != nil {
		return models.QuoteCollection{}, err
	}
	return s.resolve(ctx, snap)
}

// AddQuoteToCollection appends quoteID unless it is already present.
func (s *Service) AddQuoteToCollection(ctx context.Context, id, quoteID, userID string) (models.QuoteCollection, error) {
	s.mu.RLock()
	_, err := s.ownedCollection(id, userID)
	s.mu.RUnlock()
	if err != nil {
		return models.QuoteCollection{}, err
	}
	if _, err := s.getQuote(ctx, quoteID); err != nil {
		return models.QuoteCollection{}, err
	}

	s.mu.Lock()
	// Re-check: the collection may have been deleted meanwhile.
	c, err := s.ownedCollection(id, userID)
	var snap collection
	if err == nil {
		if !slices.Contains(c.quoteIDs, quoteID) {
			c.quoteIDs = append(c.quoteIDs, quoteID)
			c.meta.UpdatedAt = s.now()
		}
		snap = c.snapshot()
	}
	s.mu.Unlock()
	if err != nil {
		return models.QuoteCollection{}, err
	}
	return s.resolve(ctx, snap)
}

// RemoveQuoteFromCollection drops quoteID; removing an absent id is a no-op.
func (s *Service) RemoveQuoteFromCollection(ctx context.Context, id, quoteID, userID string) (models.QuoteCollection, error) {
	s.mu.Lock()
	c, err := s.ownedCollection(id, userID)
	var snap collection
	if err == nil {
		if i := slices.Index(c.quoteIDs, quoteID); i >= 0 {
			c.quoteIDs = slices.Delete(c.quoteIDs, i, i+1)
			c.meta.UpdatedAt = s.now()
		}
		snap = c.snapshot()
	}
	s.mu.Unlock()
	if err != nil {
		return models.QuoteCollection{}, err
	}
	return s.resolve(ctx, snap)
}

// DeleteCollection removes one of userID's collections.
func (s *Service) DeleteCollection(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.ownedCollection(id, userID); err != nil {
		return err
	}
	delete(s.collections, id)
	s.collOrder = slices.DeleteFunc(s.collOrder, func(v string) bool { return v == id })
	return nil
}
