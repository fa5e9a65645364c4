// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package models

import "time"

// AuthorStats aggregates likes per author.
type AuthorStats struct {
	Author       string  `json:"author"`
	QuoteCount   int     `json:"quoteCount"`
	TotalLikes   int     `json:"totalLikes"`
	AverageLikes float64 `json:"averageLikes"`
}

// TagStats aggregates quotes and likes per canonical tag.
type TagStats struct {
	Tag          string  `json:"tag"`
	Count        int     `json:"count"`
	AverageLikes float64 `json:"averageLikes"`
}

// EngagementPoint is one bucket of an engagement series.
type EngagementPoint struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Likes int       `json:"likes"`
}

// EngagementPattern is likes per hour of day (UTC).
type EngagementPattern struct {
	PeakHour  int     `json:"peakHour"`
	PeakLikes int     `json:"peakLikes"`
	Hourly    [24]int `json:"hourly"`
	Total     int     `json:"total"`
}

// SentimentPattern counts quotes per sentiment class.
type SentimentPattern struct {
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
	Dominant string `json:"dominant"`
}

// LengthPattern compares average content length with liked content length.
type LengthPattern struct {
	AverageLength float64 `json:"averageLength"`
	OptimalLength float64 `json:"optimalLength"`
	Quotes        int     `json:"quotes"`
	LikedQuotes   int     `json:"likedQuotes"`
}

// PatternResult holds exactly one of the pattern payloads, selected by Kind.
type PatternResult struct {
	Kind       string             `json:"kind"`
	Range      string             `json:"range"`
	Engagement *EngagementPattern `json:"engagement,omitempty"`
	Sentiment  *SentimentPattern  `json:"sentiment,omitempty"`
	Length     *LengthPattern     `json:"length,omitempty"`
}

// AnalyticsSummary backs the analytics overview endpoint.
type AnalyticsSummary struct {
	Range          string            `json:"range"`
	TotalQuotes    int               `json:"totalQuotes"`
	TotalLikes     int               `json:"totalLikes"`
	EventsInRange  int               `json:"eventsInRange"`
	ActiveUsers    int               `json:"activeUsers"`
	TopTags        []TagStats        `json:"topTags"`
	PopularAuthors []AuthorStats     `json:"popularAuthors"`
	Engagement     []EngagementPoint `json:"engagement"`
}

// Recommendation is one recommended quote.
type Recommendation struct {
	Quote      Quote   `json:"quote"`
	Score      float64 `json:"score"`
	Reason     string  `json:"reason,omitempty"`
	Confidence float64 `json:"confidence"`
	Algorithm  string  `json:"algorithm"`
}

// PairSimilarity is the similarity of one unordered quote pair.
type PairSimilarity struct {
	QuoteA string  `json:"quoteA"`
	QuoteB string  `json:"quoteB"`
	Score  float64 `json:"score"`
}

// LengthRange is reported only when the spread is significant.
type LengthRange struct {
	Min    int `json:"min"`
	Max    int `json:"max"`
	Spread int `json:"spread"`
}

// QuoteDifferences lists what sets compared quotes apart.
type QuoteDifferences struct {
	Authors     []string     `json:"authors"`
	SameAuthor  bool         `json:"sameAuthor"`
	LengthRange *LengthRange `json:"lengthRange,omitempty"`
}

// QuoteMetrics are per-quote figures included on request.
type QuoteMetrics struct {
	QuoteID         string  `json:"quoteId"`
	Likes           int     `json:"likes"`
	PopularityScore float64 `json:"popularityScore"`
	TrendingScore   float64 `json:"trendingScore"`
	Length          int     `json:"length"`
	WordCount       int     `json:"wordCount"`
	TagCount        int     `json:"tagCount"`
}

// QuoteComparison is the result of comparing two or more quotes.
type QuoteComparison struct {
	Quotes            []QuoteWithStats `json:"quotes"`
	Similarities      []PairSimilarity `json:"similarities"`
	AverageSimilarity float64          `json:"averageSimilarity"`
	Differences       QuoteDifferences `json:"differences"`
	Recommendation    string           `json:"recommendation"`
	Metrics           []QuoteMetrics   `json:"metrics,omitempty"`
}
