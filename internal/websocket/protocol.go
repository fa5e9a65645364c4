// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package websocket

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Subscription topics.
const (
	TopicQuoteLiked      = "quoteLiked"
	TopicNewQuoteAdded   = "newQuoteAdded"
	TopicTrendingUpdated = "trendingQuotesUpdated"
	TopicUserActivity    = "userActivity"
)

// Control message types.
const (
	MessageTypeSubscribe    = "subscribe"
	MessageTypeUnsubscribe  = "unsubscribe"
	MessageTypeSubscribed   = "subscribed"
	MessageTypeUnsubscribed = "unsubscribed"
	MessageTypePing         = "ping"
	MessageTypePong         = "pong"
	MessageTypeError        = "error"
)

// Message is one frame in either direction.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// inbound is a client frame with its payload left undecoded.
type inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Subscription selects events of one topic, optionally narrowed to a quote
// or a user.
type Subscription struct {
	Topic   string `json:"topic"`
	QuoteID string `json:"quoteId,omitempty"`
	UserID  string `json:"userId,omitempty"`
}

// Validate checks the topic and its required filter.
func (s Subscription) Validate() error {
	switch s.Topic {
	case TopicQuoteLiked, TopicNewQuoteAdded, TopicTrendingUpdated:
		return nil
	case TopicUserActivity:
		if s.UserID == "" {
			return fmt.Errorf("topic %s requires userId", s.Topic)
		}
		return nil
	case "":
		return fmt.Errorf("topic is required")
	default:
		return fmt.Errorf("unknown topic %q", s.Topic)
	}
}

// Matches reports whether ev should be delivered to this subscription.
func (s Subscription) Matches(ev Event) bool {
	if s.Topic != ev.Topic {
		return false
	}
	if s.QuoteID != "" && s.QuoteID != ev.QuoteID {
		return false
	}
	if s.Topic == TopicUserActivity && s.UserID != ev.UserID {
		return false
	}
	return true
}

// Event is something the hub delivers to matching subscribers.
type Event struct {
	Topic   string
	QuoteID string
	UserID  string
	Data    any
}

type errorData struct {
	Message string `json:"message"`
}

// MarshalMessage encodes a message as JSON.
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
