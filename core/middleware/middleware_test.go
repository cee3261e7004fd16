package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"work-exchange-api/core/entity"
	"work-exchange-api/core/middleware"
	"work-exchange-api/core/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const secret = "test-secret"

func run(t *testing.T, header string, mws ...echo.MiddlewareFunc) (entity.Actor, bool, int) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var actor entity.Actor
	var seen bool
	h := func(c echo.Context) error {
		actor, seen = middleware.ActorFromContext(c)
		return nil
	}
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	if err := h(c); err != nil {
		he, ok := err.(*echo.HTTPError)
		if !ok {
			t.Fatalf("unexpected error type %T", err)
		}
		return actor, seen, he.Code
	}
	return actor, seen, http.StatusOK
}

func bearer(t *testing.T, id uuid.UUID, role, key string, ttl time.Duration) string {
	t.Helper()
	token, err := utils.GenerateToken(id, role, key, "test", ttl)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

func TestAuthMiddleware(t *testing.T) {
	mw := middleware.NewMiddleware(secret)
	id := uuid.New()

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantRole entity.Role
	}{
		{"host token", bearer(t, id, "host", secret, time.Hour), http.StatusOK, entity.RoleHost},
		{"unknown role falls back to user", bearer(t, id, "superuser", secret, time.Hour), http.StatusOK, entity.RoleUser},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"not bearer", "Basic abc", http.StatusUnauthorized, ""},
		{"wrong secret", bearer(t, id, "host", "other", time.Hour), http.StatusUnauthorized, ""},
		{"expired", bearer(t, id, "host", secret, -time.Minute), http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor, seen, code := run(t, tt.header, mw.AuthMiddleware())
			if code != tt.wantCode {
				t.Fatalf("code = %d, want %d", code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			if !seen || actor.ID != id || actor.Role != tt.wantRole {
				t.Errorf("actor = %+v (seen %v), want %s %s", actor, seen, id, tt.wantRole)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	mw := middleware.NewMiddleware(secret)

	_, seen, code := run(t, "", mw.OptionalAuth())
	if code != http.StatusOK || seen {
		t.Fatalf("anonymous: code %d, seen %v", code, seen)
	}
	_, seen, code = run(t, bearer(t, uuid.New(), "user", "other", time.Hour), mw.OptionalAuth())
	if code != http.StatusOK || seen {
		t.Fatalf("bad token: code %d, seen %v", code, seen)
	}
	_, seen, code = run(t, bearer(t, uuid.New(), "user", secret, time.Hour), mw.OptionalAuth())
	if code != http.StatusOK || !seen {
		t.Fatalf("good token: code %d, seen %v", code, seen)
	}
}

func TestRequireRole(t *testing.T) {
	mw := middleware.NewMiddleware(secret)
	hostOnly := mw.RequireRole(entity.RoleHost, entity.RoleAdmin)

	if _, _, code := run(t, bearer(t, uuid.New(), "user", secret, time.Hour), mw.AuthMiddleware(), hostOnly); code != http.StatusForbidden {
		t.Errorf("user: code = %d, want 403", code)
	}
	if _, _, code := run(t, bearer(t, uuid.New(), "admin", secret, time.Hour), mw.AuthMiddleware(), hostOnly); code != http.StatusOK {
		t.Errorf("admin: code = %d, want 200", code)
	}
	if _, _, code := run(t, "", hostOnly); code != http.StatusUnauthorized {
		t.Errorf("anonymous: code = %d, want 401", code)
	}
}
