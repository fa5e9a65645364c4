// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package activity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/quotient/internal/models"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.ActivityEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e models.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func TestLogAppendStampsAndPublishes(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pub := &recordingPublisher{}
	log := NewLog(pub)
	log.SetClock(func() time.Time { return fixed })

	got := log.Append(context.Background(), models.ActivityEvent{Type: models.EventQuoteLiked, QuoteID: "q1", UserID: "u1"})
	if !got.Timestamp.Equal(fixed) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, fixed)
	}

	explicit := fixed.Add(-time.Hour)
	got = log.Append(context.Background(), models.ActivityEvent{Type: models.EventQuoteShared, QuoteID: "q2", Timestamp: explicit})
	if !got.Timestamp.Equal(explicit) {
		t.Errorf("explicit Timestamp overwritten: %v", got.Timestamp)
	}

	if log.Len() != 2 {
		t.Errorf("Len() = %d, want 2", log.Len())
	}
	if len(pub.events) != 2 || pub.events[0].QuoteID != "q1" {
		t.Errorf("publisher saw %v", pub.events)
	}
}

func TestLogAppendSurvivesPublishFailure(t *testing.T) {
	t.Parallel()

	log := NewLog(&recordingPublisher{err: errors.New("broker down")})
	log.Append(context.Background(), models.ActivityEvent{Type: models.EventQuoteLiked, QuoteID: "q1"})
	if log.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after failed publish", log.Len())
	}
}

func TestLogQueries(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	log := NewLog(nil)
	ctx := context.Background()
	events := []models.ActivityEvent{
		{Type: models.EventNewQuoteAdded, QuoteID: "q1", Timestamp: base},
		{Type: models.EventQuoteLiked, QuoteID: "q1", UserID: "alice", Timestamp: base.Add(1 * time.Hour)},
		{Type: models.EventQuoteLiked, QuoteID: "q2", UserID: "bob", Timestamp: base.Add(2 * time.Hour)},
		{Type: models.EventQuoteUnliked, QuoteID: "q1", UserID: "alice", Timestamp: base.Add(3 * time.Hour)},
		{Type: models.EventQuoteLiked, QuoteID: "q1", UserID: "bob", Timestamp: base.Add(4 * time.Hour)},
	}
	for _, e := range events {
		log.Append(ctx, e)
	}

	t.Run("Events is an ordered copy", func(t *testing.T) {
		t.Parallel()
		all := log.Events()
		if len(all) != len(events) {
			t.Fatalf("Events() returned %d, want %d", len(all), len(events))
		}
		all[0].QuoteID = "mutated"
		if log.Events()[0].QuoteID != "q1" {
			t.Error("mutating Events() result changed the log")
		}
	})

	t.Run("Since is inclusive", func(t *testing.T) {
		t.Parallel()
		got := log.Since(base.Add(2 * time.Hour))
		if len(got) != 3 || got[0].QuoteID != "q2" {
			t.Errorf("Since() = %v", got)
		}
		if len(log.Since(base.Add(5*time.Hour))) != 0 {
			t.Error("Since(future) should be empty")
		}
	})

	t.Run("ForQuote and ForUser", func(t *testing.T) {
		t.Parallel()
		if got := log.ForQuote("q1"); len(got) != 4 {
			t.Errorf("ForQuote(q1) = %d events, want 4", len(got))
		}
		got := log.ForUser("alice")
		if len(got) != 2 || got[1].Type != models.EventQuoteUnliked {
			t.Errorf("ForUser(alice) = %v", got)
		}
		if got := log.ForUser(""); len(got) != 0 {
			t.Errorf("ForUser(\"\") = %v, want none", got)
		}
	})

	t.Run("CountSince", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			typ   models.EventType
			quote string
			since time.Time
			want  int
		}{
			{models.EventQuoteLiked, "q1", base, 2},
			{models.EventQuoteLiked, "q1", base.Add(90 * time.Minute), 1},
			{models.EventQuoteLiked, "q2", base, 1},
			{models.EventQuoteUnliked, "q1", base, 1},
			{models.EventQuoteShared, "q1", base, 0},
		}
		for _, tt := range tests {
			if got := log.CountSince(tt.typ, tt.quote, tt.since); got != tt.want {
				t.Errorf("CountSince(%s, %s, %v) = %d, want %d", tt.typ, tt.quote, tt.since, got, tt.want)
			}
		}
	})
}

func TestLogConcurrentAppend(t *testing.T) {
	t.Parallel()

	log := NewLog(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Append(context.Background(), models.ActivityEvent{Type: models.EventQuoteLiked, QuoteID: "q"})
		}()
	}
	wg.Wait()
	if log.Len() != 50 {
		t.Errorf("Len() = %d, want 50", log.Len())
	}
}
