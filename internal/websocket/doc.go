// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

/*
Package websocket pushes live quote activity to subscribed clients.

Clients connect to /api/ws and manage subscriptions with JSON messages:

	{"type":"subscribe","data":{"topic":"quoteLiked","quoteId":"q-1"}}
	{"type":"unsubscribe","data":{"topic":"quoteLiked","quoteId":"q-1"}}
	{"type":"ping"}

The server replies with "subscribed", "unsubscribed", "pong" or "error", and
pushes events as {"type":"<topic>","data":...}.

Topics:

  - quoteLiked: a quote was liked; quoteId narrows to one quote
  - newQuoteAdded: a quote was fetched from upstream and stored
  - trendingQuotesUpdated: the 24h trending list after a like or unlike
  - userActivity: every event of one user; userId is required

Architecture:

	activity.Broker ──► Bridge ──► Hub ──► Client (readPump / writePump)

The Bridge subscribes to the broker topics and turns each delivery into an
Event. The Hub fans events out to clients whose subscriptions match, dropping
clients whose send buffer is full. Hub and Bridge both run under the suture
supervisor and stop when their context is cancelled.

Each client runs two goroutines. readPump applies the read limit and pong
deadline and handles subscription messages; writePump serializes writes and
sends pings every pingPeriod.
*/
package websocket
