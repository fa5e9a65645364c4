// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/quotient/internal/quote"
)

func TestRespondServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		status      int
		code        string
		wantMessage string
	}{
		{
			name:   "quote not found",
			err:    fmt.Errorf("get q9: %w", quote.ErrQuoteNotFound),
			status: http.StatusNotFound,
			code:   ErrCodeQuoteNotFound,
		},
		{
			name:   "collection not found",
			err:    quote.ErrCollectionNotFound,
			status: http.StatusNotFound,
			code:   ErrCodeCollectionNotFound,
		},
		{
			name:   "share not found",
			err:    fmt.Errorf("%w: abc", quote.ErrShareNotFound),
			status: http.StatusNotFound,
			code:   ErrCodeShareNotFound,
		},
		{
			name:   "insufficient quotes",
			err:    quote.ErrInsufficientQuotes,
			status: http.StatusBadRequest,
			code:   ErrCodeInsufficientQuotes,
		},
		{
			name:   "upstream failure",
			err:    fmt.Errorf("%w: timeout", quote.ErrExternalAPIFailed),
			status: http.StatusInternalServerError,
			code:   ErrCodeExternalAPIFailed,
		},
		{
			name:        "invalid input echoes reason",
			err:         fmt.Errorf("%w: limit must not be negative", quote.ErrInvalidInput),
			status:      http.StatusBadRequest,
			code:        ErrCodeValidation,
			wantMessage: "limit must not be negative",
		},
		{
			name:   "unknown error is hidden",
			err:    errors.New("disk on fire"),
			status: http.StatusInternalServerError,
			code:   ErrCodeInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			respondServiceError(rec, tt.err)

			env := expectError(t, rec, tt.status, tt.code)
			if tt.wantMessage != "" && !strings.Contains(env.Error.Message, tt.wantMessage) {
				t.Errorf("message = %q, want it to contain %q", env.Error.Message, tt.wantMessage)
			}
			if strings.Contains(rec.Body.String(), "disk on fire") {
				t.Error("internal error details leaked to the client")
			}
		})
	}
}
