// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

// Package middleware provides HTTP middleware shared by the API router:
// request id propagation into the logging context, Prometheus request
// instrumentation and access logging. All middleware uses the standard
// func(http.Handler) http.Handler shape so it can be passed to chi's Use.
package middleware
