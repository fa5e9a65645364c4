// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/quotient/internal/recommend"
)

// Analytics handles GET /api/analytics?range=.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := h.requestContext(r)
	defer cancel()

	summary, err := h.quotes.Analytics(ctx, r.URL.Query().Get("range"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, start, summary)
}

// TrendingQuotes handles GET /api/analytics/trending?range=&limit=&userId=.
func (h *Handler) TrendingQuotes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit := 0
	if !intParams(w, r, map[string]*int{"limit": &limit}) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	query := r.URL.Query()
	trending, err := h.quotes.TrendingQuotes(ctx, query.Get("range"), limit, query.Get("userId"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, start, trending)
}

// PopularAuthors handles GET /api/analytics/authors?limit=.
func (h *Handler) PopularAuthors(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit := 0
	if !intParams(w, r, map[string]*int{"limit": &limit}) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	authors, err := h.quotes.PopularAuthors(ctx, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, start, authors)
}

// TopTags handles GET /api/analytics/tags.
func (h *Handler) TopTags(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := h.requestContext(r)
	defer cancel()

	tags, err := h.quotes.TopTags(ctx)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, start, tags)
}

// Engagement handles GET /api/analytics/engagement?range=.
func (h *Handler) Engagement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := h.requestContext(r)
	defer cancel()

	series, err := h.quotes.EngagementSeries(ctx, r.URL.Query().Get("range"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, start, series)
}

// Patterns handles GET /api/analytics/patterns?type=&range=.
func (h *Handler) Patterns(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := h.requestContext(r)
	defer cancel()

	query := r.URL.Query()
	result, err := h.quotes.DiscoverPatterns(ctx, query.Get("type"), query.Get("range"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, start, result)
}

// Recommendations handles GET /api/recommendations?userId=&limit=&algorithm=&explain=.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	query := r.URL.Query()
	req := RecommendRequest{
		UserID:    query.Get("userId"),
		Algorithm: query.Get("algorithm"),
		Explain:   getBoolParam(r, "explain"),
	}
	if !intParams(w, r, map[string]*int{"limit": &req.Limit}) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}
	if maxLimit := h.recommendMaxLimit(); req.Limit > maxLimit {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, fmt.Sprintf("limit must be at most %d", maxLimit), nil)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	recs, err := h.quotes.Recommend(ctx, req.UserID, req.Limit, req.Algorithm, req.Explain)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, start, recs)
}

// recommendMaxLimit is the configured recommend.max_limit, or the engine
// default when unset.
func (h *Handler) recommendMaxLimit() int {
	if h.config != nil && h.config.Recommend.MaxLimit > 0 {
		return h.config.Recommend.MaxLimit
	}
	return recommend.DefaultConfig().Limits.MaxLimit
}
