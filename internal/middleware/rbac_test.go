package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/eduadmin/eduadmin-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func adminTestRouter(role model.Role, withClaims bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected",
		func(c *gin.Context) {
			if withClaims {
				c.Set(ContextKeyClaims, &service.Claims{UserID: uuid.New(), Role: role})
			}
			c.Next()
		},
		RequireAdmin(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	r := adminTestRouter(model.RoleAdmin, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for admin, got %d", w.Code)
	}
}

func TestRequireAdminRejectsTeacher(t *testing.T) {
	r := adminTestRouter(model.RoleTeacher, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for teacher, got %d", w.Code)
	}
}

func TestRequireAdminRejectsMissingClaims(t *testing.T) {
	r := adminTestRouter(model.RoleAdmin, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without claims, got %d", w.Code)
	}
}
