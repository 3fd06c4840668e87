package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/patoekipa/internal/constants"
	"github.com/patoekipa/internal/models"

	"gorm.io/gorm"
)

// AdminUserRepository 管理员数据访问接口
type AdminUserRepository interface {
	GetByID(id string) (*models.AdminUser, error)
	GetByGithubUserID(githubUserID string) (*models.AdminUser, error)
	// FindByIdentity 按外部身份查找记录，不过滤 is_active：
	// 只要记录存在（即使已停用），鉴权就不得回退到遗留白名单。
	FindByIdentity(githubUserID, githubUsername string) (*models.AdminUser, error)
	List(filter AdminUserListFilter) ([]models.AdminUser, error)
	Create(user *models.AdminUser) error
	Update(user *models.AdminUser) error
	Delete(id string) (int64, error)
	CountActiveSuperAdmins() (int64, error)
	TouchLogin(id string, at time.Time) error
	// Transaction 在单个数据库事务内执行 fn，用于 count-then-act 类守卫。
	Transaction(fn func(repo AdminUserRepository) error) error
}

// GormAdminUserRepository GORM 实现
type GormAdminUserRepository struct {
	db *gorm.DB
}

// NewAdminUserRepository 创建管理员仓库
func NewAdminUserRepository(db *gorm.DB) *GormAdminUserRepository {
	return &GormAdminUserRepository{db: db}
}

// GetByID 根据 ID 获取管理员
func (r *GormAdminUserRepository) GetByID(id string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByGithubUserID 根据 GitHub 用户 ID 获取管理员
func (r *GormAdminUserRepository) GetByGithubUserID(githubUserID string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.db.Where("github_user_id = ?", githubUserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByIdentity 按 GitHub 用户 ID 或登录名查找管理员
// 用户 ID 匹配优先（用户名可能被改名复用）。
func (r *GormAdminUserRepository) FindByIdentity(githubUserID, githubUsername string) (*models.AdminUser, error) {
	githubUserID = strings.TrimSpace(githubUserID)
	githubUsername = strings.TrimSpace(githubUsername)
	if githubUserID == "" && githubUsername == "" {
		return nil, nil
	}

	if githubUserID != "" {
		user, err := r.GetByGithubUserID(githubUserID)
		if err != nil || user != nil {
			return user, err
		}
	}
	if githubUsername == "" {
		return nil, nil
	}

	var user models.AdminUser
	err := r.db.Where("LOWER(github_username) = LOWER(?)", githubUsername).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// List 获取管理员列表
func (r *GormAdminUserRepository) List(filter AdminUserListFilter) ([]models.AdminUser, error) {
	users := make([]models.AdminUser, 0)
	query := r.db.Model(&models.AdminUser{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(github_username) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if err := query.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Create 创建管理员
func (r *GormAdminUserRepository) Create(user *models.AdminUser) error {
	return r.db.Create(user).Error
}

// Update 更新管理员
func (r *GormAdminUserRepository) Update(user *models.AdminUser) error {
	return r.db.Save(user).Error
}

// Delete 删除管理员（硬删除），返回受影响行数
func (r *GormAdminUserRepository) Delete(id string) (int64, error) {
	result := r.db.Where("id = ?", id).Delete(&models.AdminUser{})
	return result.RowsAffected, result.Error
}

// CountActiveSuperAdmins 统计启用状态的超级管理员数量
func (r *GormAdminUserRepository) CountActiveSuperAdmins() (int64, error) {
	var count int64
	err := r.db.Model(&models.AdminUser{}).
		Where("role = ? AND is_active = ?", constants.RoleSuperAdmin, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// TouchLogin 刷新最后登录时间（登录轨迹，不影响角色与权限）
func (r *GormAdminUserRepository) TouchLogin(id string, at time.Time) error {
	return r.db.Model(&models.AdminUser{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login_at": at,
			"updated_at":    at,
		}).Error
}

// Transaction 在事务内执行 fn
func (r *GormAdminUserRepository) Transaction(fn func(repo AdminUserRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewAdminUserRepository(tx))
	})
}
