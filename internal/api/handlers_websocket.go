// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package api

import (
	"net/http"

	"github.com/tomtom215/quotient/internal/logging"
	ws "github.com/tomtom215/quotient/internal/websocket"
)

// WebSocket handles GET /api/ws. After the upgrade the client speaks the
// subscribe/unsubscribe protocol of package websocket.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Subscriptions are disabled", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	if !h.wsHub.RegisterClient(client) {
		_ = conn.Close()
		return
	}
	client.Start()
}
