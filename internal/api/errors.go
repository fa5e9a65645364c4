// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/quotient/internal/quote"
)

// Error codes carried in APIError.Code.
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeQuoteNotFound       = "QUOTE_NOT_FOUND"
	ErrCodeCollectionNotFound  = "COLLECTION_NOT_FOUND"
	ErrCodeShareNotFound       = "SHARE_NOT_FOUND"
	ErrCodeInsufficientQuotes  = "INSUFFICIENT_QUOTES"
	ErrCodeExternalAPIFailed   = "EXTERNAL_API_FAILED"
	ErrCodeInvalidBody         = "INVALID_REQUEST_BODY"
	ErrCodeRateLimited         = "RATE_LIMIT_EXCEEDED"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	ErrCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	ErrCodeInternalServerError = "INTERNAL_ERROR"
)

// errorMapping is one sentinel-to-response rule.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// serviceErrors maps quote sentinels to responses. Order matters only if a
// single error wraps several sentinels.
var serviceErrors = []errorMapping{
	{quote.ErrQuoteNotFound, http.StatusNotFound, ErrCodeQuoteNotFound, "Quote not found"},
	{quote.ErrCollectionNotFound, http.StatusNotFound, ErrCodeCollectionNotFound, "Collection not found"},
	{quote.ErrShareNotFound, http.StatusNotFound, ErrCodeShareNotFound, "Share link not found"},
	{quote.ErrInsufficientQuotes, http.StatusBadRequest, ErrCodeInsufficientQuotes, "At least two existing quotes are required"},
	{quote.ErrExternalAPIFailed, http.StatusInternalServerError, ErrCodeExternalAPIFailed, "Failed to fetch a quote from upstream sources"},
}

// respondServiceError writes the response for an error returned by the
// quote service. Invalid input echoes the reason; unknown errors are logged
// and answered with a generic 500.
func respondServiceError(w http.ResponseWriter, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			respondError(w, m.status, m.code, m.message, err)
			return
		}
	}
	if errors.Is(err, quote.ErrInvalidInput) {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	respondError(w, http.StatusInternalServerError, ErrCodeInternalServerError, "Internal server error", err)
}
