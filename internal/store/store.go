// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

// Package store holds quotes and likes behind a small key-value interface.
//
// Two backends implement Store: MemoryStore (mutex-protected maps) and
// BadgerStore (BadgerDB, in-memory or on disk). Quotes are immutable, so
// PutQuote never overwrites. AddLike is an atomic check-then-insert in both.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/tomtom215/quotient/internal/config"
	"github.com/tomtom215/quotient/internal/models"
)

// ErrNotFound is returned by GetQuote for an unknown id.
var ErrNotFound = errors.New("store: not found")

// Store is the quote and like storage capability.
type Store interface {
	// PutQuote inserts q if its id is new and reports whether it did.
	PutQuote(ctx context.Context, q models.Quote) (bool, error)
	GetQuote(ctx context.Context, id string) (models.Quote, error)
	// ListQuotes returns all quotes in insertion order.
	ListQuotes(ctx context.Context) ([]models.Quote, error)
	CountQuotes(ctx context.Context) (int, error)

	// AddLike records a like unless one exists and reports whether it did.
	AddLike(ctx context.Context, quoteID, userID string, at time.Time) (bool, error)
	// RemoveLike deletes a like and reports whether one existed.
	RemoveLike(ctx context.Context, quoteID, userID string) (bool, error)
	LikeCount(ctx context.Context, quoteID string) (int, error)
	HasLiked(ctx context.Context, quoteID, userID string) (bool, error)
	// LikeCounts returns like counts for every quote with at least one like.
	LikeCounts(ctx context.Context) (map[string]int, error)
	// LikedBy returns the quote ids a user likes, oldest like first.
	LikedBy(ctx context.Context, userID string) ([]string, error)

	Close() error
}

// GarbageCollector is implemented by stores that reclaim disk space.
type GarbageCollector interface {
	CollectGarbage(ctx context.Context) (int, error)
}

// New opens the backend selected by cfg.Backend.
func New(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "badger":
		return OpenBadger(cfg.Path, cfg.InMemory)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// cloneQuote copies the slices of q so stored quotes stay immutable.
func cloneQuote(q models.Quote) models.Quote {
	q.Tags = slices.Clone(q.Tags)
	if q.Tags == nil {
		q.Tags = []string{}
	}
	if q.DateModified != nil {
		modified := *q.DateModified
		q.DateModified = &modified
	}
	return q
}
