package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mockmate/interview/internal/models"
)

func TestValidateRequestStoresValidatedBody(t *testing.T) {
	var got *models.UserMessageRequest
	handler := ValidateRequest[*models.UserMessageRequest]()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetValidatedRequest[*models.UserMessageRequest](r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"content":"my answer"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got == nil || got.Content != "my answer" {
		t.Fatalf("validated request not available in handler: %+v", got)
	}
}

func TestValidateRequestRejectsInvalidJSON(t *testing.T) {
	handler := ValidateRequest[*models.UserMessageRequest]()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run on invalid JSON")
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"content":`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body not JSON: %v", err)
	}
	if body.Code != "invalid_json" {
		t.Fatalf("expected invalid_json, got %s", body.Code)
	}
}

func TestValidateRequestRejectsFailedValidation(t *testing.T) {
	handler := ValidateRequest[*models.UserMessageRequest]()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run on failed validation")
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"content":"  "}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body not JSON: %v", err)
	}
	if body.Code != "missing_content" {
		t.Fatalf("expected missing_content, got %s", body.Code)
	}
}

func TestValidateRequestAllowsEmptyBody(t *testing.T) {
	// finalize has an all-optional body; an empty body is the zero request
	handler := ValidateRequest[*models.FinalizeRequest]()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := GetValidatedRequest[*models.FinalizeRequest](r)
		if req.Force {
			t.Fatalf("zero request should not force")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty body, got %d", rec.Code)
	}
}
