// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/quotient/internal/models"
)

// owner reads and validates ?userId= for owner-scoped collection routes.
func owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	req := OwnerRequest{UserID: r.URL.Query().Get("userId")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return "", false
	}
	return req.UserID, true
}

// Collections handles GET /api/collections?userId=.
func (h *Handler) Collections(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := owner(w, r)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	collections, err := h.quotes.Collections(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, start, collections)
}

// CreateCollection handles POST /api/collections?userId=.
func (h *Handler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := owner(w, r)
	if !ok {
		return
	}
	var req CreateCollectionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	c, err := h.quotes.CreateCollection(ctx, userID, models.NewCollection{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, start, c)
}

// Collection handles GET /api/collections/{id}?userId=.
func (h *Handler) Collection(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := owner(w, r)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	c, err := h.quotes.Collection(ctx, chi.URLParam(r, "id"), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, start, c)
}

// DeleteCollection handles DELETE /api/collections/{id}?userId=.
func (h *Handler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := owner(w, r)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.quotes.DeleteCollection(ctx, id, userID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, start, map[string]string{"id": id})
}

// AddToCollection handles POST /api/collections/{id}/quotes/{quoteId}?userId=.
func (h *Handler) AddToCollection(w http.ResponseWriter, r *http.Request) {
	h.changeCollection(w, r, true)
}

// RemoveFromCollection handles DELETE /api/collections/{id}/quotes/{quoteId}?userId=.
func (h *Handler) RemoveFromCollection(w http.ResponseWriter, r *http.Request) {
	h.changeCollection(w, r, false)
}

func (h *Handler) changeCollection(w http.ResponseWriter, r *http.Request, add bool) {
	start := time.Now()
	userID, ok := owner(w, r)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	id, quoteID := chi.URLParam(r, "id"), chi.URLParam(r, "quoteId")
	var (
		c   models.QuoteCollection
		err error
	)
	if add {
		c, err = h.quotes.AddQuoteToCollection(ctx, id, quoteID, userID)
	} else {
		c, err = h.quotes.RemoveQuoteFromCollection(ctx, id, quoteID, userID)
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, start, c)
}

// Preferences handles GET /api/users/{userId}/preferences.
func (h *Handler) Preferences(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := h.requestContext(r)
	defer cancel()

	prefs, err := h.quotes.UserPreferences(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, start, prefs)
}

// UpdatePreferences handles PUT /api/users/{userId}/preferences. Lists
// absent from the body are left unchanged.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var update models.PreferencesUpdate
	if !decodeAndValidate(w, r, &update) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	prefs, err := h.quotes.UpdateUserPreferences(ctx, chi.URLParam(r, "userId"), update)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, start, prefs)
}

// History handles GET /api/users/{userId}/history?limit=.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit := 0
	if !intParams(w, r, map[string]*int{"limit": &limit}) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	history, err := h.quotes.QuoteHistory(ctx, chi.URLParam(r, "userId"), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, start, history)
}
