// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

/*
Package models defines the data structures shared across Quotient.

Domain records:
  - Quote, Like: owned by the quote store
  - ActivityEvent: append-only activity log entries
  - UserPreferences, QuoteCollection, ShareLink, QuoteReport: owned by the quote service

Derived views:
  - QuoteWithStats, TrendingQuote: quotes enriched at read time
  - AuthorStats, TagStats, EngagementPoint, PatternResult, AnalyticsSummary
  - Recommendation, QuoteComparison

Transport:
  - APIResponse, Metadata, APIError: the HTTP envelope

JSON field names are camelCase for domain data and snake_case inside the
response metadata.
*/
package models
