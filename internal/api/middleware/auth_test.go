package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/relaydesk/handover-api/internal/core/domain"
)

type stubValidator struct {
	sessions map[string]*domain.Session
}

func (v *stubValidator) Validate(_ context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrNoSession
	}
	s, ok := v.sessions[token]
	if !ok {
		return nil, domain.ErrInvalidSession
	}
	return s, nil
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	loginTime := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	validator := &stubValidator{sessions: map[string]*domain.Session{
		"tok-alice": {Token: "tok-alice", Username: "alice", Role: "admin", DisplayName: "Alice", LoginTime: loginTime},
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-alice")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(validator)
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get("username") != "alice" {
			t.Fatalf("username not set")
		}
		if c.Get("role") != "admin" {
			t.Fatalf("role not set")
		}
		if c.Get("name") != "Alice" {
			t.Fatalf("name not set")
		}
		if got, _ := c.Get("login_time").(time.Time); !got.Equal(loginTime) {
			t.Fatalf("login_time not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	validator := &stubValidator{sessions: map[string]*domain.Session{}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(validator)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != domain.ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	e := echo.New()
	validator := &stubValidator{sessions: map[string]*domain.Session{}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(validator)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	// A malformed scheme yields an empty token, treated as no session.
	if err := handler(c); err != domain.ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestAuthMiddleware_UnknownToken(t *testing.T) {
	e := echo.New()
	validator := &stubValidator{sessions: map[string]*domain.Session{}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-session")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(validator)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != domain.ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestBearerToken(t *testing.T) {
	e := echo.New()
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		c := e.NewContext(req, httptest.NewRecorder())
		if got := BearerToken(c); got != tc.want {
			t.Fatalf("header %q: expected token %q, got %q", tc.header, tc.want, got)
		}
	}
}
