// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

/*
Package api provides the HTTP layer for Quotient.

Handlers translate requests into quote.Service calls and wrap every result
in the standard envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 3, "total": 10}
	}

Failures use the same envelope with status "error" and an error object
carrying a stable code (QUOTE_NOT_FOUND, VALIDATION_ERROR, ...). Service
sentinels are mapped to status codes in errors.go; anything unmapped is
logged and answered with a generic 500.

Routes:

	GET    /api/health
	GET    /api/quotes/random            ?userId
	GET    /api/quotes                   ?q&limit&userId
	GET    /api/quotes/list              ?author&tag&minLength&maxLength&sort&direction&limit&offset&userId
	GET    /api/quotes/{id}              ?userId
	POST   /api/quotes/{id}/like         {userId}
	DELETE /api/quotes/{id}/like         {userId}
	GET    /api/quotes/{id}/similar      ?limit&userId
	POST   /api/quotes/{id}/share        {userId, platform}
	POST   /api/quotes/{id}/report       {userId, reason, details}
	POST   /api/quotes/compare           {ids, includeMetrics}
	GET    /api/share/{code}
	GET    /api/analytics                ?range
	GET    /api/analytics/trending       ?range&limit&userId
	GET    /api/analytics/authors        ?limit
	GET    /api/analytics/tags
	GET    /api/analytics/engagement     ?range
	GET    /api/analytics/patterns       ?type&range
	GET    /api/recommendations          ?userId&limit&algorithm&explain
	GET    /api/collections              ?userId
	POST   /api/collections              ?userId {name, description, isPublic}
	GET    /api/collections/{id}         ?userId
	DELETE /api/collections/{id}         ?userId
	POST   /api/collections/{id}/quotes/{quoteId}   ?userId
	DELETE /api/collections/{id}/quotes/{quoteId}   ?userId
	GET    /api/users/{userId}/preferences
	PUT    /api/users/{userId}/preferences
	GET    /api/users/{userId}/history   ?limit
	GET    /api/ws
	GET    /metrics

Middleware order: request id, real IP, panic recovery, CORS, access log;
then per group security headers, Prometheus metrics, gzip and an httprate
limiter sized for the group (writes 30/min, analytics 1000/min, the rest
from security.rate_limit_reqs).
*/
package api
