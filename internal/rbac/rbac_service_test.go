package rbac_test

import (
	"testing"

	"github.com/koolkhan8586/hr-management/internal/domain"
	"github.com/koolkhan8586/hr-management/internal/rbac"
	"github.com/koolkhan8586/hr-management/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	require.NoError(t, err)

	svc, err := rbac.NewService(enforcer, rbac.DefaultPermissions, rbac.RoleInheritance)
	require.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"employee", "leave", "create", true},
		{"employee", "leave", "read_self", true},
		{"employee", "leave", "decide", false},
		{"employee", "loan", "decide", false},
		{"employee", "report", "export", false},
		{"admin", "leave", "decide", true},
		{"admin", "loan", "decide", true},
		// diwarisi dari employee
		{"admin", "leave", "create", true},
		{"admin", "employee", "read_self", true},
		{"ADMIN", "payroll", "post", true},
		{"guest", "leave", "create", false},
	}

	for _, tc := range cases {
		allowed, err := svc.Enforce(domain.EnforceRequest{Role: tc.role, Resource: tc.resource, Action: tc.action})
		assert.NoError(t, err)
		assert.Equal(t, tc.allowed, allowed, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}

func TestRBACService_PermissionsForRole(t *testing.T) {
	svc := newTestService(t)

	employeePerms, err := svc.PermissionsForRole("employee")
	require.NoError(t, err)
	adminPerms, err := svc.PermissionsForRole("admin")
	require.NoError(t, err)

	assert.NotEmpty(t, employeePerms)
	assert.Greater(t, len(adminPerms), len(employeePerms))
	assert.Contains(t, adminPerms, rbac.Permission{Role: "employee", Resource: "leave", Action: "create"})
	assert.NotContains(t, employeePerms, rbac.Permission{Role: "admin", Resource: "leave", Action: "decide"})
}
