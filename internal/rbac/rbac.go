package rbac

import "github.com/lablink/backend/internal/models"

// Permission constants
const (
	PermSubmitRequest = "submit_request"
	PermDecideRequest = "decide_request"
	PermManageCatalog = "manage_catalog"
	PermViewAudit     = "view_audit"
	PermListRequests  = "list_requests"
	PermBrowseCatalog = "browse_catalog"
)

// RolePermissions defines what each role can do. Role names live in the
// models package; this map is the single authorization matrix over them.
var RolePermissions = map[string][]string{
	models.RoleRequester: {
		PermSubmitRequest, PermListRequests, PermBrowseCatalog,
		// Requesters only ever see their own requests; scoping is enforced
		// by the service layer.
	},
	models.RoleApprover: {
		PermManageCatalog, PermDecideRequest, PermViewAudit,
		PermListRequests, PermBrowseCatalog,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}
