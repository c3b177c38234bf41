package security

import (
	"fmt"
	"log/slog"
)

// Role represents an authenticated caller's role.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// Permission represents an action permission on the admin surface.
type Permission string

const (
	PermListCandidates  Permission = "list_candidates"
	PermReadCandidate   Permission = "read_candidate"
	PermUpdateCandidate Permission = "update_candidate"
	PermDeleteCandidate Permission = "delete_candidate"
	PermExportData      Permission = "export_data"
	PermManageAdmins    Permission = "manage_admins"
)

// RolePermissions maps roles to their permissions. Today every token
// carries the admin role; viewer exists for read-only integrations.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermListCandidates,
		PermReadCandidate,
		PermUpdateCandidate,
		PermDeleteCandidate,
		PermExportData,
		PermManageAdmins,
	},
	RoleViewer: {
		PermListCandidates,
		PermReadCandidate,
		PermExportData,
	},
}

// AuthorizationService handles authorization checks.
type AuthorizationService struct {
	logger *slog.Logger
}

func NewAuthorizationService(logger *slog.Logger) *AuthorizationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthorizationService{
		logger: logger,
	}
}

// HasPermission checks if a role has a specific permission.
func (as *AuthorizationService) HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// ValidatePermission validates that a role has a specific permission.
func (as *AuthorizationService) ValidatePermission(role Role, permission Permission) error {
	if !as.HasPermission(role, permission) {
		as.logger.Warn("permission denied",
			slog.String("role", string(role)),
			slog.String("permission", string(permission)),
		)
		return fmt.Errorf("permission denied: %s role cannot %s", role, permission)
	}
	return nil
}

// GetRolePermissions returns all permissions for a role.
func (as *AuthorizationService) GetRolePermissions(role Role) []Permission {
	return RolePermissions[role]
}
