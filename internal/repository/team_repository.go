package repository

import (
	"errors"
	"strings"

	"github.com/patoekipa/internal/models"

	"gorm.io/gorm"
)

// TeamRepository 团队成员数据访问接口
type TeamRepository interface {
	List(filter TeamListFilter) ([]models.TeamMember, error)
	GetByID(id string) (*models.TeamMember, error)
	Create(member *models.TeamMember) error
	Update(member *models.TeamMember) error
	Delete(id string) (int64, error)
	Count() (int64, error)
}

// GormTeamRepository GORM 实现
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository 创建团队成员仓库
func NewTeamRepository(db *gorm.DB) *GormTeamRepository {
	return &GormTeamRepository{db: db}
}

// List 团队成员列表，按展示顺序排序
func (r *GormTeamRepository) List(filter TeamListFilter) ([]models.TeamMember, error) {
	members := make([]models.TeamMember, 0)
	query := r.db.Model(&models.TeamMember{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(title) LIKE ?", like, like)
	}
	if err := query.Order("sort_order ASC, created_at ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// GetByID 根据 ID 获取团队成员
func (r *GormTeamRepository) GetByID(id string) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.Where("id = ?", id).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// Create 创建团队成员
func (r *GormTeamRepository) Create(member *models.TeamMember) error {
	return r.db.Create(member).Error
}

// Update 更新团队成员
func (r *GormTeamRepository) Update(member *models.TeamMember) error {
	return r.db.Save(member).Error
}

// Delete 删除团队成员，返回受影响行数
func (r *GormTeamRepository) Delete(id string) (int64, error) {
	result := r.db.Where("id = ?", id).Delete(&models.TeamMember{})
	return result.RowsAffected, result.Error
}

// Count 统计团队成员数量
func (r *GormTeamRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.TeamMember{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
