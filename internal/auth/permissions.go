package auth

import (
	"github.com/patoekipa/internal/constants"
	"github.com/patoekipa/internal/models"
)

// ValidRole 校验角色取值
func ValidRole(role string) bool {
	switch role {
	case constants.RoleSuperAdmin, constants.RoleAdmin, constants.RoleEditor:
		return true
	}
	return false
}

// DerivePermissions 按角色归一化权限
// canManageUsers 与 super_admin 角色强绑定，覆盖传入值。
func DerivePermissions(role string, overrides models.Permissions) models.Permissions {
	perms := overrides
	perms.CanManageUsers = role == constants.RoleSuperAdmin
	if role == constants.RoleSuperAdmin {
		perms.CanManageProjects = true
		perms.CanManageTeam = true
		perms.CanManageTestimonials = true
		perms.CanManageContacts = true
	}
	return perms
}

// FullPermissions 全量权限，用于遗留管理员授权
func FullPermissions() models.Permissions {
	return models.Permissions{
		CanManageUsers:        true,
		CanManageProjects:     true,
		CanManageTeam:         true,
		CanManageTestimonials: true,
		CanManageContacts:     true,
	}
}
