package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"
)

func contextWithClaims(e *echo.Echo, rec *httptest.ResponseRecorder, claims *domain.Claims, workspaceID string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(workspaceID)
	if claims != nil {
		c.Set(claimsKey, claims)
	}
	return c
}

func TestRequireWorkspaceRole_Allows(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	claims := &domain.Claims{
		UserID:     "u1",
		Workspaces: map[string]domain.Role{"w1": domain.RoleAdmin},
	}
	c := contextWithClaims(e, rec, claims, "w1")

	called := false
	mw := RequireWorkspaceRole(domain.RoleVisitor)
	handler := mw(func(c echo.Context) error {
		called = true
		if GrantedRole(c) != domain.RoleAdmin {
			t.Fatalf("expected granted role ADMIN, got %s", GrantedRole(c))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireWorkspaceRole_ForbidsInsufficientRole(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	claims := &domain.Claims{
		UserID:     "u1",
		Workspaces: map[string]domain.Role{"w1": domain.RoleVisitor},
	}
	c := contextWithClaims(e, rec, claims, "w1")

	mw := RequireWorkspaceRole(domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireWorkspaceRole_ForbidsUnknownWorkspace(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	claims := &domain.Claims{
		UserID:     "u1",
		Workspaces: map[string]domain.Role{"w1": domain.RoleAdmin},
	}
	c := contextWithClaims(e, rec, claims, "w2")

	mw := RequireWorkspaceRole(domain.RoleVisitor)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireWorkspaceRole_MissingClaims(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := contextWithClaims(e, rec, nil, "w1")

	mw := RequireWorkspaceRole(domain.RoleVisitor)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
