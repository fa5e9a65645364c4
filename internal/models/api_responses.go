// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package models

import (
	"time"
)

// APIResponse is the envelope every HTTP endpoint returns.
//
// Status is "success" (see Data) or "error" (see Error).
//
//	{
//	  "status": "success",
//	  "data": {"id": "q1", "content": "...", "likes": 3},
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z", "query_time_ms": 2}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Total       *int      `json:"total,omitempty"`
}

// APIError is a machine-readable error.
//
// Codes: VALIDATION_ERROR, QUOTE_NOT_FOUND, COLLECTION_NOT_FOUND,
// INSUFFICIENT_QUOTES, EXTERNAL_API_FAILED, METHOD_NOT_ALLOWED,
// RATE_LIMIT_EXCEEDED, INTERNAL_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by the health endpoint.
type HealthStatus struct {
	Status        string    `json:"status"`
	Version       string    `json:"version,omitempty"`
	Quotes        int       `json:"quotes"`
	Events        int       `json:"events"`
	Uptime        string    `json:"uptime"`
	UptimeSeconds float64   `json:"uptimeSeconds"`
	Timestamp     time.Time `json:"timestamp"`
}
