// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/quotient/internal/activity"
	"github.com/tomtom215/quotient/internal/logging"
	"github.com/tomtom215/quotient/internal/models"
)

// Subscriber is the broker side of the bridge.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan activity.Delivery, error)
}

// QuoteGetter resolves a quote with its current stats.
type QuoteGetter interface {
	GetQuote(ctx context.Context, id, userID string) (models.QuoteWithStats, error)
}

// Publisher is the hub side of the bridge.
type Publisher interface {
	Publish(ev Event)
}

// QuoteEvent is pushed on quoteLiked and newQuoteAdded. Quote is omitted
// when it cannot be resolved.
type QuoteEvent struct {
	Event models.ActivityEvent   `json:"event"`
	Quote *models.QuoteWithStats `json:"quote,omitempty"`
}

// errSubscriptionClosed makes the supervisor restart the bridge when the
// broker drops a subscription.
var errSubscriptionClosed = errors.New("broker subscription closed")

// Bridge forwards broker deliveries to the hub as subscription events.
type Bridge struct {
	broker Subscriber
	hub    Publisher
	quotes QuoteGetter
	logger zerolog.Logger
}

// NewBridge creates a bridge. quotes may be nil.
func NewBridge(broker Subscriber, hub Publisher, quotes QuoteGetter) *Bridge {
	return &Bridge{
		broker: broker,
		hub:    hub,
		quotes: quotes,
		logger: logging.WithComponent("ws-bridge"),
	}
}

// Serve subscribes to every broker topic and forwards until ctx is done.
func (b *Bridge) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	topics := []string{activity.TopicQuoteLiked, activity.TopicQuoteAdded, activity.TopicTrending, activity.TopicActivity}
	channels := make([]<-chan activity.Delivery, len(topics))
	for i, topic := range topics {
		ch, err := b.broker.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("bridge subscribe %s: %w", topic, err)
		}
		channels[i] = ch
	}
	b.logger.Info().Strs("topics", topics).Msg("websocket bridge started")

	liked, added, trending, act := channels[0], channels[1], channels[2], channels[3]
	for {
		var (
			d  activity.Delivery
			ok bool
		)
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("websocket bridge stopped")
			return ctx.Err()
		case d, ok = <-liked:
		case d, ok = <-added:
		case d, ok = <-trending:
		case d, ok = <-act:
		}
		if !ok {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errSubscriptionClosed
		}
		if ev, ok := b.translate(ctx, d); ok {
			b.hub.Publish(ev)
		}
	}
}

// String names the service in supervisor logs.
func (b *Bridge) String() string { return "websocket-bridge" }

// translate maps a broker delivery to a hub event.
func (b *Bridge) translate(ctx context.Context, d activity.Delivery) (Event, bool) {
	switch d.Topic {
	case activity.TopicTrending:
		return Event{Topic: TopicTrendingUpdated, Data: json.RawMessage(d.Payload)}, true

	case activity.TopicQuoteLiked, activity.TopicQuoteAdded:
		event, err := d.Event()
		if err != nil {
			b.logger.Warn().Err(err).Str("topic", d.Topic).Msg("dropping undecodable delivery")
			return Event{}, false
		}
		payload := QuoteEvent{Event: event}
		if b.quotes != nil {
			if q, err := b.quotes.GetQuote(ctx, event.QuoteID, ""); err == nil {
				payload.Quote = &q
			}
		}
		topic := TopicQuoteLiked
		if d.Topic == activity.TopicQuoteAdded {
			topic = TopicNewQuoteAdded
		}
		return Event{Topic: topic, QuoteID: event.QuoteID, UserID: event.UserID, Data: payload}, true

	case activity.TopicActivity:
		if d.UserID == "" {
			return Event{}, false
		}
		event, err := d.Event()
		if err != nil {
			b.logger.Warn().Err(err).Str("topic", d.Topic).Msg("dropping undecodable delivery")
			return Event{}, false
		}
		return Event{Topic: TopicUserActivity, QuoteID: event.QuoteID, UserID: event.UserID, Data: event}, true
	}
	return Event{}, false
}
