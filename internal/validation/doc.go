// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

// Package validation validates API request structs with go-playground/validator v10.
//
// A single validator instance is shared process-wide (it caches struct
// metadata). Failures are reported with JSON field names and converted to the
// VALIDATION_ERROR response shape by ToAPIError.
//
//	type ReportRequest struct {
//	    UserID string `json:"userId" validate:"omitempty,max=128"`
//	    Reason string `json:"reason" validate:"required,notblank,max=200"`
//	}
package validation
