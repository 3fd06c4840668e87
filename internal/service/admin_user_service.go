package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/patoekipa/internal/auth"
	"github.com/patoekipa/internal/cache"
	"github.com/patoekipa/internal/constants"
	"github.com/patoekipa/internal/logger"
	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/repository"
)

// AdminUserService 管理员账号业务服务
type AdminUserService struct {
	repo repository.AdminUserRepository
}

// NewAdminUserService 创建管理员服务
func NewAdminUserService(repo repository.AdminUserRepository) *AdminUserService {
	return &AdminUserService{repo: repo}
}

// CreateAdminUserInput 创建管理员输入
type CreateAdminUserInput struct {
	GithubUsername string
	GithubUserID   string
	Email          string
	Role           string
	Permissions    models.Permissions
	Notes          string
	AddedBy        string
}

// UpdateAdminUserInput 更新管理员输入，nil 字段保持不变
type UpdateAdminUserInput struct {
	Email       *string
	Role        *string
	Permissions *models.Permissions
	IsActive    *bool
	Notes       *string
}

// List 获取管理员列表
func (s *AdminUserService) List(filter repository.AdminUserListFilter) ([]models.AdminUser, error) {
	return s.repo.List(filter)
}

// GetByID 获取单个管理员
func (s *AdminUserService) GetByID(id string) (*models.AdminUser, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Create 创建管理员
// githubUserId 与 githubUsername 均不允许重复。
func (s *AdminUserService) Create(ctx context.Context, input CreateAdminUserInput) (*models.AdminUser, error) {
	username := strings.TrimSpace(input.GithubUsername)
	if username == "" {
		return nil, NewValidationError("githubUsername is required")
	}
	githubUserID := strings.TrimSpace(input.GithubUserID)
	if githubUserID == "" {
		return nil, NewValidationError("githubUserId is required")
	}
	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = constants.RoleEditor
	}
	if !auth.ValidRole(role) {
		return nil, NewValidationError("invalid role")
	}

	existing, err := s.repo.FindByIdentity(githubUserID, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicate
	}

	now := time.Now()
	user := &models.AdminUser{
		GithubUsername: username,
		GithubUserID:   githubUserID,
		Email:          strings.TrimSpace(input.Email),
		Role:           role,
		Permissions:    auth.DerivePermissions(role, input.Permissions),
		IsActive:       true,
		AddedBy:        input.AddedBy,
		AddedAt:        &now,
		Notes:          input.Notes,
	}
	if err := s.repo.Create(user); err != nil {
		// 唯一索引兜底：并发创建绕过查重时仍按冲突返回
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	s.invalidateAuthState(ctx, user)
	return user, nil
}

// Update 更新管理员
// 任何会清空活跃超管的变更（降级角色或停用）都会被拒绝。
func (s *AdminUserService) Update(ctx context.Context, id string, input UpdateAdminUserInput) (*models.AdminUser, error) {
	var updated *models.AdminUser
	err := s.repo.Transaction(func(repo repository.AdminUserRepository) error {
		user, err := repo.GetByID(id)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrNotFound
		}

		role := user.Role
		if input.Role != nil {
			role = strings.TrimSpace(*input.Role)
			if !auth.ValidRole(role) {
				return NewValidationError("invalid role")
			}
		}
		active := user.IsActive
		if input.IsActive != nil {
			active = *input.IsActive
		}

		losesSuperAdmin := user.Role == constants.RoleSuperAdmin && user.IsActive &&
			(role != constants.RoleSuperAdmin || !active)
		if losesSuperAdmin {
			count, err := repo.CountActiveSuperAdmins()
			if err != nil {
				return err
			}
			if count <= 1 {
				return ErrLastSuperAdmin
			}
		}

		user.Role = role
		user.IsActive = active
		if input.Email != nil {
			user.Email = strings.TrimSpace(*input.Email)
		}
		if input.Notes != nil {
			user.Notes = *input.Notes
		}
		perms := user.Permissions
		if input.Permissions != nil {
			perms = *input.Permissions
		}
		user.Permissions = auth.DerivePermissions(role, perms)

		if err := repo.Update(user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateAuthState(ctx, updated)
	return updated, nil
}

// Delete 删除管理员
// 删除最后一名活跃超管同样被守卫拒绝。
func (s *AdminUserService) Delete(ctx context.Context, id string) error {
	var removed *models.AdminUser
	err := s.repo.Transaction(func(repo repository.AdminUserRepository) error {
		user, err := repo.GetByID(id)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrNotFound
		}

		if user.Role == constants.RoleSuperAdmin && user.IsActive {
			count, err := repo.CountActiveSuperAdmins()
			if err != nil {
				return err
			}
			if count <= 1 {
				return ErrLastSuperAdmin
			}
		}

		affected, err := repo.Delete(id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		removed = user
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidateAuthState(ctx, removed)
	return nil
}

// invalidateAuthState 变更后清理授权快照，失败只记日志
func (s *AdminUserService) invalidateAuthState(ctx context.Context, user *models.AdminUser) {
	if user == nil || !cache.Enabled() {
		return
	}
	if err := cache.DelAdminAuthState(ctx, user.GithubUserID, user.GithubUsername); err != nil {
		logger.Warnw("auth_snapshot_invalidate_failed", "error", err, "admin_user_id", user.ID)
	}
}
