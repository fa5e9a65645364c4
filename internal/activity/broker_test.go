// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/quotient/internal/models"
)

func receive(t *testing.T, ch <-chan Delivery) Delivery {
	t.Helper()
	select {
	case d, ok := <-ch:
		if !ok {
			t.Fatal("subscription closed before delivery")
		}
		return d
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
	return Delivery{}
}

func TestBrokerRoutesEventsByType(t *testing.T) {
	t.Parallel()

	b := NewBroker(16)
	defer b.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	liked, err := b.Subscribe(ctx, TopicQuoteLiked)
	if err != nil {
		t.Fatalf("Subscribe(liked) error = %v", err)
	}
	added, err := b.Subscribe(ctx, TopicQuoteAdded)
	if err != nil {
		t.Fatalf("Subscribe(added) error = %v", err)
	}
	all, err := b.Subscribe(ctx, TopicActivity)
	if err != nil {
		t.Fatalf("Subscribe(activity) error = %v", err)
	}

	like := models.ActivityEvent{Type: models.EventQuoteLiked, QuoteID: "q1", UserID: "alice", Timestamp: time.Now().UTC()}
	if err := b.Publish(ctx, like); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	d := receive(t, liked)
	if d.Topic != TopicQuoteLiked || d.QuoteID != "q1" || d.UserID != "alice" || d.EventType != "QUOTE_LIKED" {
		t.Errorf("liked delivery = %+v", d)
	}
	event, err := d.Event()
	if err != nil {
		t.Fatalf("Event() error = %v", err)
	}
	if event.QuoteID != "q1" || event.Type != models.EventQuoteLiked {
		t.Errorf("decoded event = %+v", event)
	}

	if d := receive(t, all); d.EventType != "QUOTE_LIKED" {
		t.Errorf("activity delivery = %+v", d)
	}

	if err := b.Publish(ctx, models.ActivityEvent{Type: models.EventNewQuoteAdded, QuoteID: "q2"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if d := receive(t, added); d.QuoteID != "q2" {
		t.Errorf("added delivery = %+v", d)
	}
	if d := receive(t, all); d.QuoteID != "q2" {
		t.Errorf("activity delivery = %+v", d)
	}

	select {
	case d := <-liked:
		t.Errorf("quote.liked received a non-like event: %+v", d)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBrokerTrendingSnapshot(t *testing.T) {
	t.Parallel()

	b := NewBroker(4)
	defer b.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := b.Subscribe(ctx, TopicTrending)
	if err != nil {
		t.Fatal(err)
	}

	snapshot := []models.TrendingQuote{{QuoteWithStats: models.QuoteWithStats{Quote: models.Quote{ID: "q9"}, Likes: 3}, WindowLikes: 3}}
	if err := b.PublishTrending(ctx, snapshot); err != nil {
		t.Fatalf("PublishTrending() error = %v", err)
	}

	d := receive(t, ch)
	var got []models.TrendingQuote
	if err := json.Unmarshal(d.Payload, &got); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(got) != 1 || got[0].ID != "q9" || got[0].WindowLikes != 3 {
		t.Errorf("snapshot = %+v", got)
	}
}

func TestBrokerSubscriptionEndsWithContext(t *testing.T) {
	t.Parallel()

	b := NewBroker(1)
	defer b.Close()
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := b.Subscribe(ctx, TopicActivity)
	if err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscription did not end after cancel")
	}
}

func TestBrokerClosed(t *testing.T) {
	t.Parallel()

	b := NewBroker(1)
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	err := b.Publish(context.Background(), models.ActivityEvent{Type: models.EventQuoteShared, QuoteID: "q"})
	if !errors.Is(err, ErrBrokerClosed) {
		t.Errorf("Publish() after Close error = %v, want ErrBrokerClosed", err)
	}
	if _, err := b.Subscribe(context.Background(), TopicActivity); !errors.Is(err, ErrBrokerClosed) {
		t.Errorf("Subscribe() after Close error = %v, want ErrBrokerClosed", err)
	}
}

func TestLogWithBroker(t *testing.T) {
	t.Parallel()

	b := NewBroker(8)
	defer b.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := b.Subscribe(ctx, TopicActivity)
	if err != nil {
		t.Fatal(err)
	}

	log := NewLog(b)
	log.Append(ctx, models.ActivityEvent{Type: models.EventQuoteReported, QuoteID: "q3", UserID: "carol"})

	d := receive(t, ch)
	if d.EventType != "QUOTE_REPORTED" || d.UserID != "carol" {
		t.Errorf("delivery = %+v", d)
	}
}
