package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/Porizovatel/kulda/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
	}{
		{name: "invalid input", err: fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput), wantCode: http.StatusBadRequest, wantStatus: "INVALID_ARGUMENT"},
		{name: "not found", err: fmt.Errorf("%w: match=x", usecase.ErrNotFound), wantCode: http.StatusNotFound, wantStatus: "NOT_FOUND"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, wantCode: http.StatusUnauthorized, wantStatus: "UNAUTHENTICATED"},
		{name: "forbidden", err: fmt.Errorf("%w: reader", usecase.ErrForbidden), wantCode: http.StatusForbidden, wantStatus: "PERMISSION_DENIED"},
		{name: "infeasible", err: fmt.Errorf("%w: no leg fits", usecase.ErrInfeasible), wantCode: http.StatusUnprocessableEntity, wantStatus: "FAILED_PRECONDITION"},
		{name: "dependency down", err: usecase.ErrDependencyUnavailable, wantCode: http.StatusServiceUnavailable, wantStatus: "UNAVAILABLE"},
		{name: "unknown", err: fmt.Errorf("boom"), wantCode: http.StatusInternalServerError, wantStatus: "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tt.err)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}

			var body map[string]any
			if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal response body: %v", err)
			}
			errorObj, ok := body["error"].(map[string]any)
			if !ok {
				t.Fatalf("expected error object in response")
			}
			if got, _ := errorObj["status"].(string); got != tt.wantStatus {
				t.Fatalf("expected error status %s, got %v", tt.wantStatus, errorObj["status"])
			}
		})
	}
}
