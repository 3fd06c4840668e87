package repository

import (
	"errors"
	"strings"

	"github.com/patoekipa/internal/constants"
	"github.com/patoekipa/internal/models"

	"gorm.io/gorm"
)

// ContactRepository 联系消息数据访问接口
type ContactRepository interface {
	List(filter ContactListFilter) ([]models.ContactMessage, int64, error)
	GetByID(id string) (*models.ContactMessage, error)
	Create(message *models.ContactMessage) error
	Update(message *models.ContactMessage) error
	Delete(id string) (int64, error)
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	Recent(limit int) ([]models.ContactMessage, error)
}

// GormContactRepository GORM 实现
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository 创建联系消息仓库
func NewContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// List 联系消息分页列表
func (r *GormContactRepository) List(filter ContactListFilter) ([]models.ContactMessage, int64, error) {
	messages := make([]models.ContactMessage, 0)
	query := r.db.Model(&models.ContactMessage{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(subject) LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// GetByID 根据 ID 获取联系消息
func (r *GormContactRepository) GetByID(id string) (*models.ContactMessage, error) {
	var message models.ContactMessage
	if err := r.db.Where("id = ?", id).First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// Create 创建联系消息
func (r *GormContactRepository) Create(message *models.ContactMessage) error {
	return r.db.Create(message).Error
}

// Update 更新联系消息
func (r *GormContactRepository) Update(message *models.ContactMessage) error {
	return r.db.Save(message).Error
}

// Delete 删除联系消息，返回受影响行数
func (r *GormContactRepository) Delete(id string) (int64, error) {
	result := r.db.Where("id = ?", id).Delete(&models.ContactMessage{})
	return result.RowsAffected, result.Error
}

// Count 统计联系消息数量
func (r *GormContactRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.ContactMessage{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus 按状态统计联系消息数量
func (r *GormContactRepository) CountByStatus(status string) (int64, error) {
	if status == "" {
		status = constants.ContactStatusNew
	}
	var count int64
	err := r.db.Model(&models.ContactMessage{}).Where("status = ?", status).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Recent 最近的联系消息
func (r *GormContactRepository) Recent(limit int) ([]models.ContactMessage, error) {
	if limit <= 0 {
		limit = 5
	}
	messages := make([]models.ContactMessage, 0, limit)
	err := r.db.Model(&models.ContactMessage{}).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
