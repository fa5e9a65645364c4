// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/quotient/internal/models"
)

// RandomQuote handles GET /api/quotes/random?userId=.
func (h *Handler) RandomQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := h.requestContext(r)
	defer cancel()

	q, err := h.quotes.GetRandomQuote(ctx, r.URL.Query().Get("userId"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, start, q)
}

// SearchQuotes handles GET /api/quotes?q=&limit=&userId=.
func (h *Handler) SearchQuotes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := SearchRequest{
		Query:  r.URL.Query().Get("q"),
		Limit:  defaultSearchLimit,
		UserID: r.URL.Query().Get("userId"),
	}
	if !intParams(w, r, map[string]*int{"limit": &req.Limit}) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	quotes, err := h.quotes.SearchQuotes(ctx, req.Query, req.Limit, req.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, start, quotes)
}

// ListQuotes handles GET /api/quotes/list with filter, sort and paging
// parameters.
func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	query := r.URL.Query()
	defLimit, maxLimit := h.pageSizes()
	req := ListQuotesRequest{
		Author:    query.Get("author"),
		Tag:       query.Get("tag"),
		Sort:      query.Get("sort"),
		Direction: query.Get("direction"),
		Limit:     defLimit,
		UserID:    query.Get("userId"),
	}
	if !intParams(w, r, map[string]*int{
		"minLength": &req.MinLength,
		"maxLength": &req.MaxLength,
		"offset":    &req.Offset,
		"limit":     &req.Limit,
	}) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}
	if req.Limit > maxLimit {
		respondErrorDetails(w, http.StatusBadRequest, ErrCodeValidation,
			fmt.Sprintf("limit must be at most %d", maxLimit), map[string]interface{}{"field": "limit"}, nil)
		return
	}

	sortField, err := models.ParseSortField(req.Sort)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	direction, err := models.ParseSortDirection(req.Direction)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	page, err := h.quotes.ListQuotes(ctx, models.QuoteFilter{
		Author:    req.Author,
		Tag:       req.Tag,
		MinLength: req.MinLength,
		MaxLength: req.MaxLength,
		Sort:      sortField,
		Direction: direction,
		Offset:    req.Offset,
		Limit:     req.Limit,
	}, req.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, start, page)
}

// GetQuote handles GET /api/quotes/{id}?userId=.
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := h.requestContext(r)
	defer cancel()

	q, err := h.quotes.GetQuote(ctx, chi.URLParam(r, "id"), r.URL.Query().Get("userId"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, start, q)
}

// LikeQuote handles POST /api/quotes/{id}/like. The user comes from the
// body, or from ?userId= when the body is empty.
func (h *Handler) LikeQuote(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, true)
}

// UnlikeQuote handles DELETE /api/quotes/{id}/like.
func (h *Handler) UnlikeQuote(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, false)
}

func (h *Handler) toggleLike(w http.ResponseWriter, r *http.Request, like bool) {
	start := time.Now()
	req := UserRequest{UserID: r.URL.Query().Get("userId")}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	id := chi.URLParam(r, "id")
	var (
		q   models.QuoteWithStats
		err error
	)
	if like {
		q, err = h.quotes.LikeQuote(ctx, id, req.UserID)
	} else {
		q, err = h.quotes.UnlikeQuote(ctx, id, req.UserID)
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, start, q)
}

// SimilarQuotes handles GET /api/quotes/{id}/similar?limit=&userId=.
func (h *Handler) SimilarQuotes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit := 0
	if !intParams(w, r, map[string]*int{"limit": &limit}) {
		return
	}
	if limit < 0 || limit > 100 {
		respondErrorDetails(w, http.StatusBadRequest, ErrCodeValidation, "limit must be between 0 and 100",
			map[string]interface{}{"field": "limit"}, nil)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	similar, err := h.quotes.GetSimilarQuotes(ctx, chi.URLParam(r, "id"), limit, r.URL.Query().Get("userId"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, start, similar)
}

// ShareQuote handles POST /api/quotes/{id}/share.
func (h *Handler) ShareQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req ShareRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	link, err := h.quotes.ShareQuote(ctx, chi.URLParam(r, "id"), req.UserID, req.Platform)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, start, link)
}

// SharedQuoteResponse resolves a share code.
type SharedQuoteResponse struct {
	Share models.ShareLink      `json:"share"`
	Quote models.QuoteWithStats `json:"quote"`
}

// SharedQuote handles GET /api/share/{code}.
func (h *Handler) SharedQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := h.requestContext(r)
	defer cancel()

	link, err := h.quotes.SharedQuote(ctx, chi.URLParam(r, "code"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	q, err := h.quotes.GetQuote(ctx, link.QuoteID, r.URL.Query().Get("userId"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, start, SharedQuoteResponse{Share: link, Quote: q})
}

// ReportQuote handles POST /api/quotes/{id}/report.
func (h *Handler) ReportQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req ReportRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	report, err := h.quotes.ReportQuote(ctx, chi.URLParam(r, "id"), req.UserID, req.Reason, req.Details)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, start, report)
}

// CompareQuotes handles POST /api/quotes/compare.
func (h *Handler) CompareQuotes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req CompareRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	cmp, err := h.quotes.CompareQuotes(ctx, req.IDs, req.IncludeMetrics)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, start, cmp)
}
