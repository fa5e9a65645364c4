// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package fetcher

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/tomtom215/quotient/internal/models"
)

// ErrNoQuotes is returned by an empty StaticSource.
var ErrNoQuotes = errors.New("fetcher: static source has no quotes")

// StaticSource cycles through a fixed list. Used offline and in tests.
type StaticSource struct {
	name   string
	quotes []models.Quote
	next   atomic.Uint64
}

// NewStaticSource copies quotes into a new source.
func NewStaticSource(name string, quotes ...models.Quote) *StaticSource {
	return &StaticSource{name: name, quotes: append([]models.Quote(nil), quotes...)}
}

// Name implements Source.
func (s *StaticSource) Name() string { return s.name }

// Fetch implements Source.
func (s *StaticSource) Fetch(ctx context.Context) (models.Quote, error) {
	if err := ctx.Err(); err != nil {
		return models.Quote{}, err
	}
	if len(s.quotes) == 0 {
		return models.Quote{}, ErrNoQuotes
	}
	i := (s.next.Add(1) - 1) % uint64(len(s.quotes))
	q := s.quotes[i]
	q.Tags = append([]string(nil), q.Tags...)
	return q, nil
}
