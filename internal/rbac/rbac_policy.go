package rbac

import "github.com/koolkhan8586/hr-management/internal/domain"

// Permission adalah satu baris policy casbin: role boleh melakukan action pada resource.
type Permission struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// DefaultPermissions: admin mewarisi semua permission employee.
var DefaultPermissions = []Permission{
	{domain.RoleEmployee, "employee", "read_self"},
	{domain.RoleEmployee, "leave", "create"},
	{domain.RoleEmployee, "leave", "read_self"},
	{domain.RoleEmployee, "loan", "create"},
	{domain.RoleEmployee, "loan", "read_self"},
	{domain.RoleEmployee, "attendance", "clock"},
	{domain.RoleEmployee, "attendance", "read"},
	{domain.RoleEmployee, "payroll", "read_self"},

	{domain.RoleAdmin, "employee", "read"},
	{domain.RoleAdmin, "employee", "create"},
	{domain.RoleAdmin, "employee", "update"},
	{domain.RoleAdmin, "employee", "delete"},
	{domain.RoleAdmin, "leave", "read"},
	{domain.RoleAdmin, "leave", "decide"},
	{domain.RoleAdmin, "loan", "read"},
	{domain.RoleAdmin, "loan", "decide"},
	{domain.RoleAdmin, "payroll", "read"},
	{domain.RoleAdmin, "payroll", "create"},
	{domain.RoleAdmin, "payroll", "post"},
	{domain.RoleAdmin, "report", "export"},
	{domain.RoleAdmin, "rbac", "read"},
}

// RoleInheritance: pasangan (child, parent).
var RoleInheritance = [][2]string{
	{domain.RoleAdmin, domain.RoleEmployee},
}
