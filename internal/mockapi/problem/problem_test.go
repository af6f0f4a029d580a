package problem

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrite_UsesErrorAsDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/teams/1", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusNotFound, TypeNotFound, "Not found", errors.New("Team not found"))

	if got := res.Result().Header.Get("Content-Type"); got != "application/problem+json" {
		t.Fatalf("expected content type problem+json, got %s", got)
	}
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", res.Code)
	}

	var body ProblemDetails
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Detail != "Team not found" {
		t.Fatalf("expected detail from error, got %s", body.Detail)
	}
	if body.Instance != "/api/v1/teams/1" {
		t.Fatalf("expected instance /api/v1/teams/1, got %s", body.Instance)
	}
}

func TestWrite_FallsBackToTitle(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/admin/teams", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusForbidden, TypeForbidden, "Insufficient permissions", nil)

	var body ProblemDetails
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Detail != "Insufficient permissions" {
		t.Fatalf("expected title as detail, got %s", body.Detail)
	}
}

func TestWrite_Options(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://example.com/api/v1/anketa", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusUnprocessableEntity, TypeValidation, "Invalid request", errors.New("boom"),
		WithDetail("name: required"), WithErrors([]string{"name: required"}))

	var body ProblemDetails
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Detail != "name: required" || len(body.Errors) != 1 {
		t.Fatalf("unexpected body: %#v", body)
	}
}
