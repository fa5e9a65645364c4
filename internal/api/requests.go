// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package api

// Request structs carry validator tags. Query parameters are copied into
// them before validation; bodies are decoded with decodeAndValidate.
//
//	req := SearchRequest{Query: r.URL.Query().Get("q"), Limit: limit}
//	if apiErr := validateRequest(&req); apiErr != nil {
//	    respondValidation(w, apiErr)
//	    return
//	}

// SearchRequest holds GET /api/quotes parameters.
type SearchRequest struct {
	Query  string `json:"q" validate:"max=200"`
	Limit  int    `json:"limit" validate:"min=0,max=100"`
	UserID string `json:"userId" validate:"max=128"`
}

// ListQuotesRequest holds GET /api/quotes/list parameters.
type ListQuotesRequest struct {
	Author    string `json:"author" validate:"max=200"`
	Tag       string `json:"tag" validate:"omitempty,quotetag"`
	MinLength int    `json:"minLength" validate:"min=0"`
	MaxLength int    `json:"maxLength" validate:"min=0"`
	Sort      string `json:"sort" validate:"omitempty,oneof=likes author length"`
	Direction string `json:"direction" validate:"omitempty,oneof=asc desc"`
	Offset    int    `json:"offset" validate:"min=0"`
	Limit     int    `json:"limit" validate:"min=0"`
	UserID    string `json:"userId" validate:"max=128"`
}

// UserRequest is the body of like and unlike.
type UserRequest struct {
	UserID string `json:"userId" validate:"required,notblank,max=128"`
}

// ShareRequest is the body of POST /api/quotes/{id}/share.
type ShareRequest struct {
	UserID   string `json:"userId" validate:"max=128"`
	Platform string `json:"platform" validate:"omitempty,max=32,alphanum"`
}

// ReportRequest is the body of POST /api/quotes/{id}/report.
type ReportRequest struct {
	UserID  string `json:"userId" validate:"max=128"`
	Reason  string `json:"reason" validate:"required,notblank,max=200"`
	Details string `json:"details" validate:"max=2000"`
}

// CompareRequest is the body of POST /api/quotes/compare.
type CompareRequest struct {
	IDs            []string `json:"ids" validate:"required,min=1,max=20,dive,notblank,max=128"`
	IncludeMetrics bool     `json:"includeMetrics"`
}

// RecommendRequest holds GET /api/recommendations parameters. The upper
// bound of Limit is recommend.max_limit, checked by the handler.
type RecommendRequest struct {
	UserID    string `json:"userId" validate:"required,notblank,max=128"`
	Limit     int    `json:"limit" validate:"min=0"`
	Algorithm string `json:"algorithm" validate:"max=32"`
	Explain   bool   `json:"explain"`
}

// CreateCollectionRequest is the body of POST /api/collections.
type CreateCollectionRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsPublic    bool   `json:"isPublic"`
}

// OwnerRequest carries the userId query parameter of owner-scoped routes.
type OwnerRequest struct {
	UserID string `json:"userId" validate:"required,notblank,max=128"`
}
