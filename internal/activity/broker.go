// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package activity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/tomtom215/quotient/internal/logging"
	"github.com/tomtom215/quotient/internal/metrics"
	"github.com/tomtom215/quotient/internal/models"
)

// Broker topics.
const (
	TopicQuoteLiked = "quote.liked"
	TopicQuoteAdded = "quote.added"
	TopicActivity   = "quote.activity"
	TopicTrending   = "trending.updated"
)

// Metadata keys set on every broker message.
const (
	MetaEventType = "event_type"
	MetaQuoteID   = "quote_id"
	MetaUserID    = "user_id"
)

// ErrBrokerClosed is returned by Publish and Subscribe after Close.
var ErrBrokerClosed = errors.New("activity: broker closed")

// Delivery is one message received from a broker topic. Payload is the JSON
// body: an ActivityEvent, or a []TrendingQuote on TopicTrending.
type Delivery struct {
	Topic     string
	EventType string
	QuoteID   string
	UserID    string
	Payload   []byte
}

// Event decodes the payload as an activity event.
func (d Delivery) Event() (models.ActivityEvent, error) {
	var e models.ActivityEvent
	if err := json.Unmarshal(d.Payload, &e); err != nil {
		return e, fmt.Errorf("decode %s payload: %w", d.Topic, err)
	}
	return e, nil
}

// Broker fans activity out to in-process subscribers.
type Broker struct {
	pubsub *gochannel.GoChannel
	buffer int64

	mu     sync.RWMutex
	closed bool
}

// NewBroker creates a broker whose subscriber channels hold up to buffer
// undelivered messages.
func NewBroker(buffer int64) *Broker {
	logger := watermill.NewSlogLogger(logging.NewComponentSlogLogger("broker"))
	return &Broker{
		pubsub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: buffer}, logger),
		buffer: buffer,
	}
}

// topicsFor returns the topics an event of type t is delivered to.
func topicsFor(t models.EventType) []string {
	switch t {
	case models.EventQuoteLiked:
		return []string{TopicQuoteLiked, TopicActivity}
	case models.EventNewQuoteAdded:
		return []string{TopicQuoteAdded, TopicActivity}
	default:
		return []string{TopicActivity}
	}
}

// Publish implements Publisher.
func (b *Broker) Publish(_ context.Context, event models.ActivityEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	var errs []error
	for _, topic := range topicsFor(event.Type) {
		msg := message.NewMessage(watermill.NewUUID(), data)
		msg.Metadata.Set(MetaEventType, string(event.Type))
		msg.Metadata.Set(MetaQuoteID, event.QuoteID)
		msg.Metadata.Set(MetaUserID, event.UserID)
		if err := b.publish(topic, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PublishTrending publishes a trending list snapshot.
func (b *Broker) PublishTrending(_ context.Context, quotes []models.TrendingQuote) error {
	data, err := json.Marshal(quotes)
	if err != nil {
		return fmt.Errorf("encode trending snapshot: %w", err)
	}
	return b.publish(TopicTrending, message.NewMessage(watermill.NewUUID(), data))
}

func (b *Broker) publish(topic string, msg *message.Message) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var err error
	if b.closed {
		err = ErrBrokerClosed
	} else if pubErr := b.pubsub.Publish(topic, msg); pubErr != nil {
		err = fmt.Errorf("publish %s: %w", topic, pubErr)
	}
	metrics.RecordBrokerPublish(topic, err)
	return err
}

// Subscribe delivers messages published to topic after the call. The channel
// closes when ctx is cancelled or the broker closes.
func (b *Broker) Subscribe(ctx context.Context, topic string) (<-chan Delivery, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, ErrBrokerClosed
	}

	messages, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}

	out := make(chan Delivery, b.buffer)
	go func() {
		defer close(out)
		for msg := range messages {
			d := Delivery{
				Topic:     topic,
				EventType: msg.Metadata.Get(MetaEventType),
				QuoteID:   msg.Metadata.Get(MetaQuoteID),
				UserID:    msg.Metadata.Get(MetaUserID),
				Payload:   msg.Payload,
			}
			msg.Ack()
			select {
			case out <- d:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Close stops the broker and ends every subscription.
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.pubsub.Close()
}
