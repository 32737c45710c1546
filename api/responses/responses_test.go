package responses

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/storefront-labs/storefront-backend/pkg/errors"
	"github.com/storefront-labs/storefront-backend/pkg/types"
)

func TestWriteSuccessEmitsBarePayload(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, []string{"a", "b"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var payload []string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("expected a bare JSON array: %v", err)
	}
	if len(payload) != 2 {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestWritePageShape(t *testing.T) {
	rec := httptest.NewRecorder()
	WritePage(rec, []int{1, 2}, types.PageMeta{Total: 5, Page: 1, Limit: 2, TotalPages: 3})

	var decoded struct {
		Data       []int          `json:"data"`
		Pagination types.PageMeta `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected pagination %+v", decoded.Pagination)
	}
	if len(decoded.Data) != 2 {
		t.Fatalf("unexpected data %v", decoded.Data)
	}
}

func TestWriteStatusSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteStatusSuccess(rec, "42")

	var decoded map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["status"] != "success" || decoded["userId"] != "42" {
		t.Fatalf("unexpected envelope %v", decoded)
	}
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", pkgerrors.New(pkgerrors.CodeValidation, "quantity must be between 1 and 100"), http.StatusBadRequest, "quantity must be between 1 and 100"},
		{"conflict maps to 400", pkgerrors.New(pkgerrors.CodeConflict, "Username already exists"), http.StatusBadRequest, "Username already exists"},
		{"unauthorized", pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{"not found", pkgerrors.New(pkgerrors.CodeNotFound, "product not found"), http.StatusNotFound, "product not found"},
		{"internal hides detail", pkgerrors.New(pkgerrors.CodeInternal, "pq: cannot connect"), http.StatusInternalServerError, "internal server error"},
		{"untyped", context.DeadlineExceeded, http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(context.Background(), nil, rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}

			var payload types.ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if payload.Status != "error" {
				t.Fatalf("expected error status, got %q", payload.Status)
			}
			if payload.Message != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, payload.Message)
			}
		})
	}
}
