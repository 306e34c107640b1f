package rbac_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/koolkhan8586/hr-management/internal/domain"
	"github.com/koolkhan8586/hr-management/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	enforceFn     func(req domain.EnforceRequest) (bool, error)
	permissionsFn func(role string) ([]rbac.Permission, error)
}

func (f *fakeService) Enforce(req domain.EnforceRequest) (bool, error) {
	return f.enforceFn(req)
}

func (f *fakeService) PermissionsForRole(role string) ([]rbac.Permission, error) {
	return f.permissionsFn(role)
}

func newRBACContext(method, target, body, role string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("role", role)
	return c, w
}

func TestHandler_Enforce(t *testing.T) {
	svc := &fakeService{enforceFn: func(req domain.EnforceRequest) (bool, error) {
		assert.Equal(t, "employee", req.Role)
		return req.Resource == "leave" && req.Action == "create", nil
	}}
	h := rbac.NewHandler(svc)

	c, w := newRBACContext(http.MethodPost, "/rbac/enforce", `{"resource":"leave","action":"create"}`, "employee")
	h.Enforce(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"allowed":true`)

	c, w = newRBACContext(http.MethodPost, "/rbac/enforce", `{"resource":"leave"}`, "employee")
	h.Enforce(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	failing := rbac.NewHandler(&fakeService{enforceFn: func(req domain.EnforceRequest) (bool, error) {
		return false, errors.New("boom")
	}})
	c, w = newRBACContext(http.MethodPost, "/rbac/enforce", `{"resource":"leave","action":"create"}`, "employee")
	failing.Enforce(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestHandler_Permissions(t *testing.T) {
	var asked string
	h := rbac.NewHandler(&fakeService{permissionsFn: func(role string) ([]rbac.Permission, error) {
		asked = role
		return []rbac.Permission{{Role: role, Resource: "leave", Action: "create"}}, nil
	}})

	c, w := newRBACContext(http.MethodGet, "/rbac/permissions?role=admin", "", "employee")
	h.Permissions(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "employee", asked)

	c, _ = newRBACContext(http.MethodGet, "/rbac/permissions?role=employee", "", "admin")
	h.Permissions(c)
	assert.Equal(t, "employee", asked)
}
