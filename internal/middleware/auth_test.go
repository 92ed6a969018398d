package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"careerpath_backend/internal/model"
	"careerpath_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func adminRequest(role model.UserRole, authed bool) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin",
		func(c *gin.Context) {
			if authed {
				c.Set("user", &util.Claims{UserID: 1, Role: role})
			}
		},
		RoleMiddleware(model.Admin),
		func(c *gin.Context) { util.Success(c, gin.H{"ok": true}) },
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRoleMiddlewareDeniedWithPermissionMessage(t *testing.T) {
	w := adminRequest(model.Student, true)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), util.ErrPermissionDenied.Error())
}

func TestRoleMiddlewareAllowsListedRole(t *testing.T) {
	w := adminRequest(model.Admin, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleMiddlewareSuperAdminBypass(t *testing.T) {
	w := adminRequest(model.SuperAdmin, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleMiddlewareRequiresAuth(t *testing.T) {
	w := adminRequest(model.Admin, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
