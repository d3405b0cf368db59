package utils

// Permission levels
const (
	SuperAdminPermission = "super_admin"
	DeveloperPermission  = "developer"
	AdminPermission      = "admin"
	ModeratorPermission  = "moderator"
	GuestPermission      = "guest"
)

// contains checks if a slice of strings contains an element.
func contains(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

// CheckPermission checks the highest permission level for a given list of role IDs against the configured roles.
func CheckPermission(userRoleIDs []string, userID string, adminRoleIDs, moderatorRoleIDs, developerUserIDs, superAdminRoleIDs []string) string {
	if contains(developerUserIDs, userID) {
		return DeveloperPermission
	}

	for _, roleID := range userRoleIDs {
		if contains(superAdminRoleIDs, roleID) {
			return SuperAdminPermission
		}
	}

	for _, roleID := range userRoleIDs {
		if contains(adminRoleIDs, roleID) {
			return AdminPermission
		}
	}

	for _, roleID := range userRoleIDs {
		if contains(moderatorRoleIDs, roleID) {
			return ModeratorPermission
		}
	}

	return GuestPermission
}

// IsModerator reports whether a permission level carries moderator capability.
func IsModerator(level string) bool {
	switch level {
	case DeveloperPermission, SuperAdminPermission, AdminPermission, ModeratorPermission:
		return true
	}
	return false
}

// IsAdmin reports whether a permission level carries admin capability.
func IsAdmin(level string) bool {
	switch level {
	case DeveloperPermission, SuperAdminPermission, AdminPermission:
		return true
	}
	return false
}
