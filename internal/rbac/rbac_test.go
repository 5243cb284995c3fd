package rbac

import (
	"testing"

	"github.com/lablink/backend/internal/models"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		expected   bool
	}{
		{models.RoleRequester, PermSubmitRequest, true},
		{models.RoleRequester, PermListRequests, true},
		{models.RoleRequester, PermBrowseCatalog, true},
		{models.RoleRequester, PermDecideRequest, false},
		{models.RoleRequester, PermManageCatalog, false},
		{models.RoleRequester, PermViewAudit, false},

		{models.RoleApprover, PermDecideRequest, true},
		{models.RoleApprover, PermManageCatalog, true},
		{models.RoleApprover, PermViewAudit, true},
		{models.RoleApprover, PermSubmitRequest, false},

		{"unknown", PermSubmitRequest, false},
		{models.RoleApprover, "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.permission, func(t *testing.T) {
			if got := HasPermission(tt.role, tt.permission); got != tt.expected {
				t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.permission, got, tt.expected)
			}
		})
	}
}

func TestRolePermissions_CoversAllRoles(t *testing.T) {
	for _, role := range []string{models.RoleRequester, models.RoleApprover} {
		if _, ok := RolePermissions[role]; !ok {
			t.Errorf("role %q has no permission set", role)
		}
	}
}
