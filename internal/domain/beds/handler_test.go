package beds

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newHandlerFixture() (*Handler, *mockRepo, *mockTrail) {
	svc, repo, trail := newTestService()
	return NewHandler(svc), repo, trail
}

func request(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return req, httptest.NewRecorder()
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return body
}

func TestListBeds(t *testing.T) {
	h, repo, _ := newHandlerFixture()
	seedBed(repo, 1, StatusOccupied)
	seedBed(repo, 2, StatusEmpty)

	e := echo.New()
	req, rec := request(http.MethodGet, "/api/v1/beds", "")
	c := e.NewContext(req, rec)

	if err := h.ListBeds(c); err != nil {
		t.Fatalf("ListBeds: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode(t, rec)
	if body["success"] != true {
		t.Error("expected success=true")
	}
	if body["total"] != float64(2) {
		t.Errorf("total = %v", body["total"])
	}
}

func TestListBeds_StatusFilter(t *testing.T) {
	h, repo, _ := newHandlerFixture()
	seedBed(repo, 1, StatusOccupied)
	seedBed(repo, 2, StatusEmpty)

	e := echo.New()
	req, rec := request(http.MethodGet, "/api/v1/beds?status=occupied", "")
	c := e.NewContext(req, rec)

	if err := h.ListBeds(c); err != nil {
		t.Fatalf("ListBeds: %v", err)
	}
	if body := decode(t, rec); body["total"] != float64(1) {
		t.Errorf("total = %v", body["total"])
	}
}

func TestGetBed_InvalidID(t *testing.T) {
	h, _, _ := newHandlerFixture()

	e := echo.New()
	req, rec := request(http.MethodGet, "/api/v1/beds/abc", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.GetBed(c); err == nil {
		t.Fatal("expected validation error for non-numeric id")
	}
}

func TestUpdateBedStatus(t *testing.T) {
	h, repo, trail := newHandlerFixture()
	seedBed(repo, 1, StatusEmpty)

	e := echo.New()
	req, rec := request(http.MethodPatch, "/api/v1/beds/1/status",
		`{"status":"reserved","reason":"incoming transfer"}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.UpdateBedStatus(c); err != nil {
		t.Fatalf("UpdateBedStatus: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if repo.beds[1].Status != StatusReserved {
		t.Errorf("bed status = %q", repo.beds[1].Status)
	}
	if len(trail.entries) != 1 {
		t.Errorf("audit entries = %d", len(trail.entries))
	}

	body := decode(t, rec)
	data, _ := body["data"].(map[string]interface{})
	if data["status"] != StatusReserved {
		t.Errorf("response status = %v", data["status"])
	}
}

func TestUpdateBedStatus_InvalidEnum(t *testing.T) {
	h, repo, _ := newHandlerFixture()
	seedBed(repo, 1, StatusEmpty)

	e := echo.New()
	req, rec := request(http.MethodPatch, "/api/v1/beds/1/status", `{"status":"vacant"}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.UpdateBedStatus(c); err == nil {
		t.Fatal("expected error for invalid status")
	}
}

func TestUpdateBed_Partial(t *testing.T) {
	h, repo, _ := newHandlerFixture()
	seedBed(repo, 1, StatusEmpty)

	e := echo.New()
	req, rec := request(http.MethodPut, "/api/v1/beds/1",
		`{"notes":"deep clean scheduled","clinical_needs":["oxygen"]}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.UpdateBed(c); err != nil {
		t.Fatalf("UpdateBed: %v", err)
	}
	if repo.beds[1].Notes != "deep clean scheduled" {
		t.Errorf("notes = %q", repo.beds[1].Notes)
	}
	if len(repo.beds[1].ClinicalNeeds) != 1 || repo.beds[1].ClinicalNeeds[0] != "oxygen" {
		t.Errorf("clinical needs = %v", repo.beds[1].ClinicalNeeds)
	}
}

func TestBulkUpdateBeds(t *testing.T) {
	h, repo, _ := newHandlerFixture()
	seedBed(repo, 1, StatusEmpty)
	seedBed(repo, 2, StatusEmpty)

	e := echo.New()
	req, rec := request(http.MethodPost, "/api/v1/beds/bulk-update",
		`{"bed_ids":[1,2],"fields":{"status":"maintenance"}}`)
	c := e.NewContext(req, rec)

	if err := h.BulkUpdateBeds(c); err != nil {
		t.Fatalf("BulkUpdateBeds: %v", err)
	}
	if body := decode(t, rec); body["updated"] != float64(2) {
		t.Errorf("updated = %v", body["updated"])
	}
}

func TestBulkUpdateBeds_MissingIDs(t *testing.T) {
	h, repo, _ := newHandlerFixture()
	seedBed(repo, 1, StatusEmpty)

	e := echo.New()
	req, rec := request(http.MethodPost, "/api/v1/beds/bulk-update",
		`{"bed_ids":[1,5],"fields":{"status":"maintenance"}}`)
	c := e.NewContext(req, rec)

	if err := h.BulkUpdateBeds(c); err == nil {
		t.Fatal("expected error for missing ids")
	}
	if repo.beds[1].Status != StatusEmpty {
		t.Error("no partial application on rejection")
	}
}

func TestDeleteBed(t *testing.T) {
	h, repo, trail := newHandlerFixture()
	seedBed(repo, 1, StatusEmpty)

	e := echo.New()
	req, rec := request(http.MethodDelete, "/api/v1/beds/1", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.DeleteBed(c); err != nil {
		t.Fatalf("DeleteBed: %v", err)
	}
	if _, ok := repo.beds[1]; ok {
		t.Error("bed should be gone")
	}
	if len(trail.entries) != 1 || trail.entries[0].NewStatus != "deleted" {
		t.Errorf("closing audit entry = %+v", trail.entries)
	}
}
