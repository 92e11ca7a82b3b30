package account

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _ := newTestService()
	sessions := auth.NewSessions(auth.SessionConfig{
		Secret:      []byte("test-secret"),
		TTL:         time.Hour,
		RememberTTL: 30 * 24 * time.Hour,
	})
	return NewHandler(svc, sessions), echo.New()
}

func postJSON(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_RegisterSignsIn(t *testing.T) {
	h, e := newTestHandler()
	c, rec := postJSON(e, `{"full_name":"Admin User","email":"admin@hospital.local","password":"Admin#12345"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), auth.SessionCookieName) {
		t.Error("expected session cookie to be set")
	}
}

func TestHandler_RegisterInvalidOmitsPassword(t *testing.T) {
	h, e := newTestHandler()
	c, rec := postJSON(e, `{"full_name":"","email":"bad","password":"Secret123"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Secret123") {
		t.Error("rejected registration must not echo the password back")
	}
}

func TestHandler_LoginRedirectSanitized(t *testing.T) {
	h, e := newTestHandler()
	c, _ := postJSON(e, `{"full_name":"Admin User","email":"admin@hospital.local","password":"Admin#12345"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tests := []struct {
		redirect string
		want     string
	}{
		{"/patients", "/patients"},
		{"//evil.example", "/"},
		{"https://evil.example", "/"},
		{"", "/"},
	}
	for _, tt := range tests {
		c, rec := postJSON(e, `{"email":"admin@hospital.local","password":"Admin#12345","redirect":"`+tt.redirect+`"}`)
		if err := h.Login(c); err != nil {
			t.Fatalf("login failed: %v", err)
		}
		var resp sessionResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp.Redirect != tt.want {
			t.Errorf("redirect %q: expected %q, got %q", tt.redirect, tt.want, resp.Redirect)
		}
	}
}

func TestHandler_LoginFailure(t *testing.T) {
	h, e := newTestHandler()
	c, rec := postJSON(e, `{"email":"nobody@hospital.local","password":"Admin#12345"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid login attempt.") {
		t.Errorf("expected uniform failure message, got %s", rec.Body.String())
	}
}

func TestHandler_LogoutClearsCookie(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	cookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, auth.SessionCookieName) || !strings.Contains(cookie, "Max-Age=0") {
		t.Errorf("expected expired session cookie, got %q", cookie)
	}
}
