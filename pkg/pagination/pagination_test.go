package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest("GET", "/?"+query, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContextDefaults(t *testing.T) {
	p := paramsFor(t, "")
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset)
	}
}

func TestFromContextClampsLimit(t *testing.T) {
	p := paramsFor(t, "limit=500")
	if p.Limit != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, p.Limit)
	}

	p = paramsFor(t, "limit=-3&offset=-10")
	if p.Limit != DefaultLimit {
		t.Errorf("expected negative limit to fall back to default, got %d", p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected negative offset clamped to 0, got %d", p.Offset)
	}
}

func TestResponseHasMore(t *testing.T) {
	resp := NewResponse(nil, 50, 20, 0)
	if !resp.HasMore {
		t.Error("expected has_more with 50 total and first page of 20")
	}

	resp = NewResponse(nil, 50, 20, 40)
	if resp.HasMore {
		t.Error("expected no more results past the last page")
	}
}

func TestHasNext(t *testing.T) {
	p := Params{Limit: 20, Offset: 40}
	if p.HasNext(50) {
		t.Error("offset 40 of 50 should be the last page")
	}
	if !p.HasNext(61) {
		t.Error("offset 40 of 61 should have a next page")
	}
}
