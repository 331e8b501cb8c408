package vitals

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthmate/healthmate/internal/platform/auth"
	"github.com/healthmate/healthmate/internal/platform/respond"
)

func authedJSON(method, target, body string, userID primitive.ObjectID) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	ctx := context.WithValue(req.Context(), auth.UserIDKey, userID.Hex())
	return req.WithContext(ctx)
}

func TestHandler_Add(t *testing.T) {
	svc, _ := newTestVitalsService()
	h := NewHandler(svc)
	e := echo.New()

	body := `{"date":"2026-08-15","bloodPressure":{"systolic":120,"diastolic":80}}`
	req := authedJSON(http.MethodPost, "/api/v1/vitals", body, primitive.NewObjectID())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Add(c); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "mmHg") {
		t.Errorf("response missing default unit: %s", rec.Body.String())
	}
}

func TestHandler_Add_ValidationErrorsInEnvelope(t *testing.T) {
	svc, _ := newTestVitalsService()
	h := NewHandler(svc)
	e := echo.New()

	body := `{"date":"2026-08-15","bloodPressure":{"systolic":300,"diastolic":80}}`
	req := authedJSON(http.MethodPost, "/api/v1/vitals", body, primitive.NewObjectID())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Add(c)
	var appErr *respond.Error
	if !errors.As(err, &appErr) || appErr.Status() != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if len(appErr.Fields) == 0 {
		t.Error("expected per-field problems")
	}
}

func TestHandler_ListGetUpdateDelete(t *testing.T) {
	svc, _ := newTestVitalsService()
	h := NewHandler(svc)
	e := echo.New()
	userID := primitive.NewObjectID()
	ctx := context.Background()

	entry, err := svc.Add(ctx, userID, validAddInput())
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	listReq := authedJSON(http.MethodGet, "/api/v1/vitals?startDate=2026-08-01", "", userID)
	listRec := httptest.NewRecorder()
	if err := h.List(e.NewContext(listReq, listRec)); err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if !strings.Contains(listRec.Body.String(), entry.ID.Hex()) {
		t.Errorf("list response = %s", listRec.Body.String())
	}

	updReq := authedJSON(http.MethodPut, "/", `{"notes":""}`, userID)
	updRec := httptest.NewRecorder()
	updCtx := e.NewContext(updReq, updRec)
	updCtx.SetPath("/api/v1/vitals/:id")
	updCtx.SetParamNames("id")
	updCtx.SetParamValues(entry.ID.Hex())
	if err := h.Update(updCtx); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if strings.Contains(updRec.Body.String(), "after morning walk") {
		t.Error("explicit empty notes should clear the field")
	}

	delReq := authedJSON(http.MethodDelete, "/", "", userID)
	delRec := httptest.NewRecorder()
	delCtx := e.NewContext(delReq, delRec)
	delCtx.SetPath("/api/v1/vitals/:id")
	delCtx.SetParamNames("id")
	delCtx.SetParamValues(entry.ID.Hex())
	if err := h.Delete(delCtx); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	getReq := authedJSON(http.MethodGet, "/", "", userID)
	getRec := httptest.NewRecorder()
	getCtx := e.NewContext(getReq, getRec)
	getCtx.SetPath("/api/v1/vitals/:id")
	getCtx.SetParamNames("id")
	getCtx.SetParamValues(entry.ID.Hex())
	getErr := h.Get(getCtx)
	var appErr *respond.Error
	if !errors.As(getErr, &appErr) || appErr.Status() != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %v", getErr)
	}
}
