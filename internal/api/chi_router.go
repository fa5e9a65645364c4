// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/quotient/internal/middleware"
)

// slowRequestThreshold is the latency above which the access log warns.
const slowRequestThreshold = time.Second

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mwConfig uses the default middleware
// configuration.
func NewRouter(handler *Handler, mwConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// SetupChi builds the chi route tree.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.AccessLog(slowRequestThreshold))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", h.Health)
	})

	// Websocket upgrades stay outside Compress; the compressing writer
	// buffers the handshake.
	r.With(
		router.chiMiddleware.RateLimitWebSocket(),
		middleware.PrometheusMetrics,
	).Get("/api/ws", h.WebSocket)

	r.Route("/api", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())

			r.Get("/quotes/random", h.RandomQuote)
			r.Get("/quotes", h.SearchQuotes)
			r.Get("/quotes/list", h.ListQuotes)
			r.Get("/quotes/{id}", h.GetQuote)
			r.Get("/quotes/{id}/similar", h.SimilarQuotes)
			r.Post("/quotes/compare", h.CompareQuotes)
			r.Get("/share/{code}", h.SharedQuote)

			r.Get("/recommendations", h.Recommendations)

			r.Get("/collections", h.Collections)
			r.Get("/collections/{id}", h.Collection)
			r.Get("/users/{userId}/preferences", h.Preferences)
			r.Get("/users/{userId}/history", h.History)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitWrite())

			r.Post("/quotes/{id}/like", h.LikeQuote)
			r.Delete("/quotes/{id}/like", h.UnlikeQuote)
			r.Post("/quotes/{id}/share", h.ShareQuote)
			r.Post("/quotes/{id}/report", h.ReportQuote)

			r.Post("/collections", h.CreateCollection)
			r.Delete("/collections/{id}", h.DeleteCollection)
			r.Post("/collections/{id}/quotes/{quoteId}", h.AddToCollection)
			r.Delete("/collections/{id}/quotes/{quoteId}", h.RemoveFromCollection)
			r.Put("/users/{userId}/preferences", h.UpdatePreferences)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitAnalytics())

			r.Get("/", h.Analytics)
			r.Get("/trending", h.TrendingQuotes)
			r.Get("/authors", h.PopularAuthors)
			r.Get("/tags", h.TopTags)
			r.Get("/engagement", h.Engagement)
			r.Get("/patterns", h.Patterns)
		})
	})

	return r
}
