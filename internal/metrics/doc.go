// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

/*
Package metrics defines Quotient's Prometheus instrumentation.

All collectors are registered on the default registry through promauto and
exposed at /metrics by the API router.

Metric families:
  - api_*: request count, latency and in-flight gauge per route
  - quote_*: upstream fetch outcomes and latency, stored quotes, like changes
  - activity_events_total: activity log appends per event type
  - recommendation_duration_seconds: latency per algorithm
  - similarity_cache_lookups_total: scorer cache efficiency
  - event_broker_publishes_total: in-process fan-out
  - websocket_*: subscription connections and traffic
  - circuit_breaker_*: upstream breaker state, requests and transitions

Example:

	start := time.Now()
	recs, err := engine.Recommend(ctx, req)
	metrics.RecordRecommendation(string(req.Algorithm), time.Since(start))
*/
package metrics
