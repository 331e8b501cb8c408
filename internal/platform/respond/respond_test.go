package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestError_Status(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Conflict("email already registered"), http.StatusBadRequest},
		{Auth("invalid token"), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{NotFound("file not found"), http.StatusNotFound},
		{Upstream("storage failed", errors.New("boom")), http.StatusInternalServerError},
		{Unhealthy("database unreachable", errors.New("boom")), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		if got := tc.err.Status(); got != tc.status {
			t.Errorf("%q: expected status %d, got %d", tc.err.Message, tc.status, got)
		}
	}
}

func TestHTTPErrorHandler_TypedError(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(zerolog.New(os.Stderr))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(Validation("validation failed", "date is required"), c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Success {
		t.Error("expected success=false")
	}
	if body.Message != "validation failed" {
		t.Errorf("unexpected message %q", body.Message)
	}
	if len(body.Errors) != 1 || body.Errors[0] != "date is required" {
		t.Errorf("unexpected field errors %v", body.Errors)
	}
}

func TestHTTPErrorHandler_HidesInternalDetail(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(errors.New("pq: secret table is on fire"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body Envelope
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Message != "internal server error" {
		t.Errorf("internal detail leaked: %q", body.Message)
	}
}

func TestHTTPErrorHandler_UpstreamMessageKept(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(Upstream("error analyzing file", errors.New("dial tcp: timeout")), c)

	var body Envelope
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Message != "error analyzing file" {
		t.Errorf("expected safe message, got %q", body.Message)
	}
}

func TestOK_Envelope(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := OK(c, http.StatusCreated, "created", map[string]string{"id": "abc"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var body Envelope
	json.Unmarshal(rec.Body.Bytes(), &body)
	if !body.Success || body.Message != "created" {
		t.Errorf("unexpected envelope: %+v", body)
	}
}
