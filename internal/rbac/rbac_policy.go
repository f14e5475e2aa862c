package rbac

import "go-payroll/internal/domain"

type permission struct {
	resource string
	action   string
}

func perms(resource string, actions ...string) []permission {
	out := make([]permission, len(actions))
	for i, a := range actions {
		out[i] = permission{resource: resource, action: a}
	}
	return out
}

func join(groups ...[]permission) []permission {
	var out []permission
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// defaultPolicy is seeded into role_permissions when the table is empty.
var defaultPolicy = map[string][]permission{
	domain.RoleAdmin: perms("*", "*"),
	domain.RoleHR: join(
		perms("employee", "*"),
		perms("attendance", "*"),
		perms("payroll", "read", "move", "revert"),
		perms("payslip", "*"),
		perms("payment", "create", "read", "stats"),
		perms("salary_revision", "create", "read", "hr_approve", "reject"),
		perms("role", "read"),
	),
	domain.RoleFinance: join(
		perms("employee", "read"),
		perms("attendance", "read", "stats"),
		perms("payroll", "read", "process", "revert_processed"),
		perms("payslip", "read"),
		perms("payment", "read", "stats", "finance_approve", "process", "reject"),
		perms("salary_revision", "read", "finance_approve", "reject"),
		perms("role", "read"),
	),
	domain.RoleMD: join(
		perms("employee", "read"),
		perms("attendance", "read", "stats"),
		perms("payroll", "read"),
		perms("payslip", "read"),
		perms("payment", "read", "stats", "md_approve", "reject"),
		perms("salary_revision", "read", "md_approve", "reject"),
		perms("role", "read"),
	),
	domain.RoleEmployee: join(
		perms("attendance", "read"),
		perms("payslip", "read"),
		perms("payment", "read"),
	),
}

func DefaultRolePermissions() []RolePermission {
	var rows []RolePermission
	for _, role := range []string{domain.RoleAdmin, domain.RoleHR, domain.RoleFinance, domain.RoleMD, domain.RoleEmployee} {
		for _, p := range defaultPolicy[role] {
			rows = append(rows, RolePermission{Role: role, Resource: p.resource, Action: p.action})
		}
	}
	return rows
}
