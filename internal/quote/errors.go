// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package quote

import "errors"

// Sentinel errors returned by Service. Callers match them with errors.Is;
// the HTTP layer maps each one to a status code.
var (
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrShareNotFound      = errors.New("share link not found")
	ErrExternalAPIFailed  = errors.New("external quote API failed")
	ErrInsufficientQuotes = errors.New("at least two quotes are required for comparison")
	ErrInvalidInput       = errors.New("invalid input")
)

// invalid wraps ErrInvalidInput with a reason.
func invalid(reason string) error {
	return &inputError{reason: reason}
}

type inputError struct {
	reason string
}

func (e *inputError) Error() string { return "invalid input: " + e.reason }

func (e *inputError) Unwrap() error { return ErrInvalidInput }
