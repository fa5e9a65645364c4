// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/quotient/internal/config"
	"github.com/tomtom215/quotient/internal/logging"
	"github.com/tomtom215/quotient/internal/quote"
	ws "github.com/tomtom215/quotient/internal/websocket"
)

// defaultRequestTimeout bounds service calls when config leaves it unset.
const defaultRequestTimeout = 10 * time.Second

// defaultSearchLimit applies when GET /api/quotes has no limit parameter.
const defaultSearchLimit = 10

// Handler holds the dependencies of every endpoint. Handler methods are
// split by area:
//   - handlers_quotes.go: quotes, likes, sharing, reports, comparison
//   - handlers_analytics.go: analytics and recommendations
//   - handlers_users.go: collections, preferences, history
//   - handlers_health.go: health
//   - handlers_websocket.go: subscriptions
type Handler struct {
	quotes    *quote.Service
	wsHub     *ws.Hub
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a handler. hub may be nil when subscriptions are
// disabled; cfg may be nil in tests.
func NewHandler(quotes *quote.Service, hub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		quotes:    quotes,
		wsHub:     hub,
		config:    cfg,
		startTime: time.Now(),
	}
}

// requestContext derives the per-request service deadline.
func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := defaultRequestTimeout
	if h.config != nil && h.config.API.RequestTimeout > 0 {
		timeout = h.config.API.RequestTimeout
	}
	return context.WithTimeout(r.Context(), timeout)
}

func (h *Handler) pageSizes() (def, maxSize int) {
	def, maxSize = 20, 100
	if h.config != nil {
		if h.config.API.DefaultPageSize > 0 {
			def = h.config.API.DefaultPageSize
		}
		if h.config.API.MaxPageSize > 0 {
			maxSize = h.config.API.MaxPageSize
		}
	}
	return def, maxSize
}

// getUpgrader returns the websocket upgrader with origin checks and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts listed CORS origins or "*". Browsers always
// send Origin, so a missing header is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("websocket connection rejected: missing Origin header")
		return false
	}
	if h.config == nil {
		return true
	}
	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("websocket connection rejected from unauthorized origin")
	return false
}
