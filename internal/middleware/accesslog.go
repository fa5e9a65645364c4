// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/quotient/internal/logging"
)

// AccessLog writes one debug line per request and a warning for requests
// slower than slowThreshold. Run it after RequestID so lines carry the ids.
func AccessLog(slowThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapper, r)

			elapsed := time.Since(start)
			logger := logging.Ctx(r.Context())
			event := logger.Debug()
			if slowThreshold > 0 && elapsed > slowThreshold {
				event = logger.Warn().Bool("slow", true)
			}
			event.
				Str("method", r.Method).
				Str("route", routePattern(r)).
				Int("status", wrapper.statusCode).
				Dur("duration", elapsed).
				Msg("request completed")
		})
	}
}
