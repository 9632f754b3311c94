package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mapleleafu/spritedex/models"
	"github.com/mapleleafu/spritedex/responses"
)

type errorEnvelope struct {
	Success bool             `json:"success"`
	Data    interface{}      `json:"data"`
	Error   models.ErrorBody `json:"error"`
}

func decodeErrorEnvelope(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestHandleSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleSuccess(rec, models.SuccessResponse(map[string]string{"message": "ok"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var env models.ApiResponse
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || env.Error != nil {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestHandleCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleCreated(rec, models.SuccessResponse(nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
}

func TestHandleErrorUsesAPIErrorStatus(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/pokemon/1", nil)
	rec := httptest.NewRecorder()

	HandleError(rec, req, fmt.Errorf("wrapped: %w", responses.BadGatewayError{Msg: "upstream down"}))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	env := decodeErrorEnvelope(t, rec)
	if env.Success {
		t.Fatal("expected success=false")
	}
	if env.Error.StatusCode != http.StatusBadGateway || env.Error.Message != "upstream down" {
		t.Fatalf("unexpected error body: %+v", env.Error)
	}
	if env.Error.Path != "/api/pokemon/1" {
		t.Fatalf("path = %q", env.Error.Path)
	}
	if env.Error.Timestamp == "" {
		t.Fatal("expected timestamp")
	}
}

func TestHandleErrorMasksInternalErrors(t *testing.T) {
	tests := []error{
		errors.New("pq: connection refused"),
		responses.InternalServerError{Msg: "Failed to hash password."},
	}
	for _, err := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
		rec := httptest.NewRecorder()

		HandleError(rec, req, err)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		env := decodeErrorEnvelope(t, rec)
		if env.Error.Message != internalErrorMessage {
			t.Fatalf("message = %q, want masked message", env.Error.Message)
		}
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger(&discard{}, "debug", "json"); err != nil {
		t.Fatalf("json logger: %v", err)
	}
	if _, err := NewLogger(&discard{}, "warn", ""); err != nil {
		t.Fatalf("text logger: %v", err)
	}
	if _, err := NewLogger(&discard{}, "loud", "text"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := NewLogger(&discard{}, "info", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

type discard struct{}

func (*discard) Write(p []byte) (int, error) { return len(p), nil }
