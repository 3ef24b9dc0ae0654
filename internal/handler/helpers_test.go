package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func requestWithID(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestParseIDParam(t *testing.T) {
	id, err := ParseIDParam(requestWithID("42"))
	if err != nil || id != 42 {
		t.Errorf("ParseIDParam = %d, %v", id, err)
	}

	for _, bad := range []string{"", "abc", "0", "-5", "1.5"} {
		if _, err := ParseIDParam(requestWithID(bad)); err == nil {
			t.Errorf("expected error for id %q", bad)
		}
	}
}

func TestQueryInt64(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?regionId=7&bad=x", nil)
	if got := QueryInt64(req, "regionId"); got != 7 {
		t.Errorf("regionId = %d", got)
	}
	if got := QueryInt64(req, "bad"); got != 0 {
		t.Errorf("malformed param = %d, want 0", got)
	}
	if got := QueryInt64(req, "absent"); got != 0 {
		t.Errorf("absent param = %d, want 0", got)
	}
}

func TestQueryBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?a=true&b=false&c=junk", nil)
	if !QueryBool(req, "a", false) {
		t.Error("a should be true")
	}
	if QueryBool(req, "b", true) {
		t.Error("b should be false")
	}
	if !QueryBool(req, "c", true) {
		t.Error("malformed should fall back to default")
	}
	if !QueryBool(req, "absent", true) {
		t.Error("absent should fall back to default")
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2026-02-28") {
		t.Error("valid date rejected")
	}
	for _, bad := range []string{"2026-2-8", "02/28/2026", "2026-13-01", "garbage", ""} {
		if ValidDate(bad) {
			t.Errorf("invalid date accepted: %q", bad)
		}
	}
}
