package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func handle(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/beds/9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("request_id", "req-test")

	EchoErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

func TestEchoErrorHandler_NotFound(t *testing.T) {
	rec := handle(t, NotFound("bed", 9))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Error("expected success=false")
	}
	if body["error"] != "bed 9 not found" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestEchoErrorHandler_Validation(t *testing.T) {
	rec := handle(t, Invalid("invalid status %q", "flying"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != `invalid status "flying"` {
		t.Errorf("error = %q", body["error"])
	}
}

func TestEchoErrorHandler_PartialNotFound(t *testing.T) {
	rec := handle(t, PartialNotFound("beds", []int64{4, 7}))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "beds not found: 4, 7" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestEchoErrorHandler_StoreHidesDetail(t *testing.T) {
	rec := handle(t, Store("beds.update", errors.New("pq: connection reset")))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "internal server error" {
		t.Errorf("store detail leaked to client: %q", body["error"])
	}
}

func TestEchoErrorHandler_EchoHTTPError(t *testing.T) {
	rec := handle(t, echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable"))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestStore_NilPassthrough(t *testing.T) {
	if err := Store("beds.get", nil); err != nil {
		t.Errorf("Store(nil) = %v, want nil", err)
	}
}

func TestEchoErrorHandler_WrappedErrors(t *testing.T) {
	wrapped := Store("beds.list", NotFound("bed", 3))
	rec := handle(t, wrapped)
	// NotFound inside a StoreError still maps to 404: errors.As checks the chain.
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
