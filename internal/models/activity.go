// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package models

import "time"

// EventType identifies an activity event.
type EventType string

const (
	EventNewQuoteAdded EventType = "NEW_QUOTE_ADDED"
	EventQuoteLiked    EventType = "QUOTE_LIKED"
	EventQuoteUnliked  EventType = "QUOTE_UNLIKED"
	EventQuoteShared   EventType = "QUOTE_SHARED"
	EventQuoteReported EventType = "QUOTE_REPORTED"
)

// ActivityEvent is one append-only log entry.
type ActivityEvent struct {
	Type      EventType `json:"type"`
	QuoteID   string    `json:"quoteId"`
	UserID    string    `json:"userId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
}

// HistoryEntry is an activity event with its quote, when still resolvable.
type HistoryEntry struct {
	ActivityEvent
	Quote *Quote `json:"quote,omitempty"`
}
