package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newTestSessions() *Sessions {
	return NewSessions(SessionConfig{
		Secret:      []byte("test-secret"),
		TTL:         time.Hour,
		RememberTTL: 30 * 24 * time.Hour,
	})
}

func TestIssueAndValidate(t *testing.T) {
	sessions := newTestSessions()

	token, expires, err := sessions.Issue("user-1", "Ayesha Khan", false)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if remaining := time.Until(expires); remaining < 55*time.Minute || remaining > time.Hour {
		t.Errorf("unexpected expiry: %v remaining", remaining)
	}

	claims, err := sessions.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("expected subject user-1, got %q", claims.Subject)
	}
	if claims.FullName != "Ayesha Khan" {
		t.Errorf("expected full name Ayesha Khan, got %q", claims.FullName)
	}
}

func TestRememberExtendsLifetime(t *testing.T) {
	sessions := newTestSessions()

	_, expires, err := sessions.Issue("user-1", "Ayesha Khan", true)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if time.Until(expires) < 29*24*time.Hour {
		t.Errorf("remember-me session expires too soon: %v", expires)
	}
}

func TestValidateRejectsTampered(t *testing.T) {
	sessions := newTestSessions()
	other := NewSessions(SessionConfig{Secret: []byte("other-secret"), TTL: time.Hour, RememberTTL: time.Hour})

	token, _, err := other.Issue("user-1", "Ayesha Khan", false)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := sessions.Validate(token); err == nil {
		t.Error("expected token signed with a different secret to fail validation")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	sessions := NewSessions(SessionConfig{
		Secret:      []byte("test-secret"),
		TTL:         -time.Minute,
		RememberTTL: time.Hour,
	})

	token, _, err := sessions.Issue("user-1", "Ayesha Khan", false)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := sessions.Validate(token); err == nil {
		t.Error("expected expired token to fail validation")
	}
}

func TestRequireSession(t *testing.T) {
	sessions := newTestSessions()
	token, _, err := sessions.Issue("user-1", "Ayesha Khan", false)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	e := echo.New()
	handler := RequireSession(sessions)(func(c echo.Context) error {
		if got := UserIDFromContext(c.Request().Context()); got != "user-1" {
			t.Errorf("expected user-1 in context, got %q", got)
		}
		return c.NoContent(http.StatusOK)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
		rec := httptest.NewRecorder()
		if err := handler(e.NewContext(req, rec)); err != nil {
			t.Fatalf("expected request with session cookie to pass: %v", err)
		}
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		if err := handler(e.NewContext(req, rec)); err != nil {
			t.Fatalf("expected request with bearer token to pass: %v", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		err := handler(e.NewContext(req, rec))
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 for missing credentials, got %v", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		err := handler(e.NewContext(req, rec))
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 for garbage token, got %v", err)
		}
	})
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPassword(hash, "Sup3rSecret") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("expected mismatched password to fail")
	}
}

func TestCheckPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		problems int
	}{
		{"valid", "Sup3rSecret", 0},
		{"too short", "Ab1", 1},
		{"no upper", "sup3rsecret", 1},
		{"no lower", "SUP3RSECRET", 1},
		{"no digit", "SuperSecret", 1},
		{"empty", "", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPolicy(tt.password); len(got) != tt.problems {
				t.Errorf("CheckPolicy(%q) = %v, expected %d problems", tt.password, got, tt.problems)
			}
		})
	}
}
