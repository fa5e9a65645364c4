// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

// Package activity keeps the append-only activity log and fans its events
// out to subscribers.
//
// Log is the source of truth for likes over time, shares and reports. It
// hands every appended event to a Publisher; Broker is the Publisher used in
// production and dispatches events to per-topic subscribers through an
// in-process Watermill gochannel.
//
// The log is never pruned.
package activity

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/tomtom215/quotient/internal/logging"
	"github.com/tomtom215/quotient/internal/metrics"
	"github.com/tomtom215/quotient/internal/models"
)

// Publisher receives every event appended to a Log.
type Publisher interface {
	Publish(ctx context.Context, event models.ActivityEvent) error
}

// Log is an ordered, append-only sequence of activity events. Insertion
// order is chronological order.
type Log struct {
	mu        sync.RWMutex
	events    []models.ActivityEvent
	publisher Publisher
	now       func() time.Time
}

// NewLog returns an empty log. publisher may be nil.
func NewLog(publisher Publisher) *Log {
	return &Log{publisher: publisher, now: time.Now}
}

// SetClock replaces the time source used for events without a timestamp.
func (l *Log) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// Append stores event, stamping it with the current time when its timestamp
// is zero, and then publishes it. A publish failure is logged and does not
// fail the append.
func (l *Log) Append(ctx context.Context, event models.ActivityEvent) models.ActivityEvent {
	l.mu.Lock()
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now()
	}
	l.events = append(l.events, event)
	publisher := l.publisher
	l.mu.Unlock()

	metrics.RecordActivityEvent(string(event.Type))

	if publisher != nil {
		if err := publisher.Publish(ctx, event); err != nil {
			logging.Ctx(ctx).Warn().Err(err).
				Str("event_type", string(event.Type)).
				Str("quote_id", event.QuoteID).
				Msg("activity event publish failed")
		}
	}
	return event
}

// Events returns a copy of every event in order.
func (l *Log) Events() []models.ActivityEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.events)
}

func (l *Log) filter(keep func(models.ActivityEvent) bool) []models.ActivityEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.ActivityEvent, 0)
	for _, e := range l.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Since returns events with a timestamp at or after t.
func (l *Log) Since(t time.Time) []models.ActivityEvent {
	return l.filter(func(e models.ActivityEvent) bool {
		return !e.Timestamp.Before(t)
	})
}

// ForQuote returns the events about one quote.
func (l *Log) ForQuote(quoteID string) []models.ActivityEvent {
	return l.filter(func(e models.ActivityEvent) bool {
		return e.QuoteID == quoteID
	})
}

// ForUser returns the events performed by one user.
func (l *Log) ForUser(userID string) []models.ActivityEvent {
	return l.filter(func(e models.ActivityEvent) bool {
		return userID != "" && e.UserID == userID
	})
}

// CountSince counts events of type typ about quoteID at or after since.
func (l *Log) CountSince(typ models.EventType, quoteID string, since time.Time) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := 0
	for _, e := range l.events {
		if e.Type == typ && e.QuoteID == quoteID && !e.Timestamp.Before(since) {
			n++
		}
	}
	return n
}

// Len returns the number of events.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}
