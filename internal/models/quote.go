// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Quote is immutable once stored. There is no delete.
type Quote struct {
	ID           string     `json:"id"`
	Content      string     `json:"content"`
	Author       string     `json:"author"`
	Tags         []string   `json:"tags"`
	Length       int        `json:"length,omitempty"`
	DateAdded    time.Time  `json:"dateAdded"`
	DateModified *time.Time `json:"dateModified,omitempty"`
}

// ContentLength is the content length in characters.
func (q Quote) ContentLength() int {
	return utf8.RuneCountInString(q.Content)
}

// Validate reports whether the quote can be stored.
func (q Quote) Validate() error {
	switch {
	case strings.TrimSpace(q.ID) == "":
		return fmt.Errorf("quote id is empty")
	case strings.TrimSpace(q.Content) == "":
		return fmt.Errorf("quote %s: content is empty", q.ID)
	case strings.TrimSpace(q.Author) == "":
		return fmt.Errorf("quote %s: author is empty", q.ID)
	case q.Length < 0:
		return fmt.Errorf("quote %s: length %d is negative", q.ID, q.Length)
	}
	return nil
}

// Like is one user's like of one quote.
type Like struct {
	QuoteID   string    `json:"quoteId"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

// QuoteWithStats is a quote plus engagement figures derived at read time.
type QuoteWithStats struct {
	Quote
	Likes              int     `json:"likes"`
	LikedByCurrentUser bool    `json:"likedByCurrentUser"`
	PopularityScore    float64 `json:"popularityScore"`
	TrendingScore      float64 `json:"trendingScore"`
}

// TrendingQuote is a quote ranked by likes inside a time window.
type TrendingQuote struct {
	QuoteWithStats
	WindowLikes int `json:"windowLikes"`
}

// SimilarQuote is a quote ranked by similarity to another.
type SimilarQuote struct {
	QuoteWithStats
	Similarity float64 `json:"similarity"`
}

// SortField is the closed set of list orderings.
type SortField string

const (
	SortByLikes  SortField = "likes"
	SortByAuthor SortField = "author"
	SortByLength SortField = "length"
)

// ParseSortField parses a sort field name; "" means likes.
func ParseSortField(s string) (SortField, error) {
	switch SortField(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByLikes:
		return SortByLikes, nil
	case SortByAuthor:
		return SortByAuthor, nil
	case SortByLength:
		return SortByLength, nil
	default:
		return "", fmt.Errorf("unknown sort field %q (want likes, author or length)", s)
	}
}

// SortDirection orders a list ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection parses a direction; "" means desc.
func ParseSortDirection(s string) (SortDirection, error) {
	switch SortDirection(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortDesc:
		return SortDesc, nil
	case SortAsc:
		return SortAsc, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q (want asc or desc)", s)
	}
}

// QuoteFilter selects and orders quotes for listing. Zero values disable a filter.
type QuoteFilter struct {
	Author    string
	Tag       string
	MinLength int
	MaxLength int
	Sort      SortField
	Direction SortDirection
	Offset    int
	Limit     int
}

// QuotePage is one page of a filtered listing.
type QuotePage struct {
	Items  []QuoteWithStats `json:"items"`
	Total  int              `json:"total"`
	Offset int              `json:"offset"`
	Limit  int              `json:"limit"`
}
