// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package models

import "time"

// UserPreferences are created lazily with empty lists.
type UserPreferences struct {
	UserID          string    `json:"userId"`
	FavoriteAuthors []string  `json:"favoriteAuthors"`
	FavoriteTags    []string  `json:"favoriteTags"`
	LikedQuotes     []string  `json:"likedQuotes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// PreferencesUpdate replaces only the lists that are non-nil.
type PreferencesUpdate struct {
	FavoriteAuthors *[]string `json:"favoriteAuthors,omitempty" validate:"omitempty,max=100,dive,notblank,max=200"`
	FavoriteTags    *[]string `json:"favoriteTags,omitempty" validate:"omitempty,max=100,dive,quotetag"`
	LikedQuotes     *[]string `json:"likedQuotes,omitempty" validate:"omitempty,max=10000,dive,notblank,max=128"`
}

// QuoteCollection is an ordered, duplicate-free list of quotes owned by one user.
type QuoteCollection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Quotes      []Quote   `json:"quotes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	IsPublic    bool      `json:"isPublic"`
	Likes       int       `json:"likes"`
	UserID      string    `json:"userId"`
}

// NewCollection holds the caller-supplied fields of a collection.
type NewCollection struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsPublic    bool   `json:"isPublic"`
}

// ShareLink is created each time a quote is shared.
type ShareLink struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	QuoteID   string    `json:"quoteId"`
	UserID    string    `json:"userId,omitempty"`
	Platform  string    `json:"platform"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// QuoteReport is a user report about a quote.
type QuoteReport struct {
	ID        string    `json:"id"`
	QuoteID   string    `json:"quoteId"`
	UserID    string    `json:"userId,omitempty"`
	Reason    string    `json:"reason"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
