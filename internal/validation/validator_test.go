// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package validation

import (
	"strings"
	"testing"
)

type collectionRequest struct {
	Name        string   `json:"name" validate:"required,notblank,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Tags        []string `json:"tags" validate:"max=5,dive,quotetag"`
	Limit       int      `json:"limit" validate:"min=1,max=50"`
	Algorithm   string   `json:"algorithm" validate:"omitempty,oneof=collaborative content_based trending hybrid"`
}

func validRequest() collectionRequest {
	return collectionRequest{Name: "Stoics", Tags: []string{"wisdom"}, Limit: 10, Algorithm: "hybrid"}
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	req := validRequest()
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*collectionRequest)
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"missing name", func(r *collectionRequest) { r.Name = "" }, "name", "required", "name is required"},
		{"blank name", func(r *collectionRequest) { r.Name = "   " }, "name", "notblank", "name must not be blank"},
		{"long name", func(r *collectionRequest) { r.Name = strings.Repeat("x", 101) }, "name", "max", "name must be at most 100 characters"},
		{"limit zero", func(r *collectionRequest) { r.Limit = 0 }, "limit", "min", "limit must be at least 1"},
		{"too many tags", func(r *collectionRequest) { r.Tags = []string{"a", "b", "c", "d", "e", "f"} }, "tags", "max", "tags must be at most 5 items"},
		{"tag with comma", func(r *collectionRequest) { r.Tags = []string{"a,b"} }, "tags[0]", "quotetag", ""},
		{"unknown algorithm", func(r *collectionRequest) { r.Algorithm = "random" }, "algorithm", "oneof", "algorithm must be one of: collaborative content_based trending hybrid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validRequest()
			tt.mutate(&req)

			verr := ValidateStruct(&req)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors (%v), want 1", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if tt.wantMsg != "" && errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	t.Parallel()

	req := validRequest()
	req.Limit = 99
	apiErr := ValidateStruct(&req).ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "limit must be at most 50" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "limit" {
		t.Errorf("Details[field] = %v, want limit", apiErr.Details["field"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	t.Parallel()

	req := collectionRequest{}
	apiErr := ValidateStruct(&req).ToAPIError()

	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Details[fields] has type %T", apiErr.Details["fields"])
	}
	if len(fields) != 2 {
		t.Errorf("len(fields) = %d, want 2 (name, limit)", len(fields))
	}
	if !strings.Contains(apiErr.Message, "; ") {
		t.Errorf("Message should join errors, got %q", apiErr.Message)
	}
}

func TestToAPIError_Empty(t *testing.T) {
	t.Parallel()

	apiErr := (&RequestValidationError{}).ToAPIError()
	if apiErr.Message != "Validation failed" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}
