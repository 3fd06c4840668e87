package repository

import (
	"errors"

	"github.com/patoekipa/internal/models"

	"gorm.io/gorm"
)

// TestimonialRepository 评价数据访问接口
type TestimonialRepository interface {
	List(filter TestimonialListFilter) ([]models.Testimonial, error)
	GetByID(id string) (*models.Testimonial, error)
	Create(testimonial *models.Testimonial) error
	Update(testimonial *models.Testimonial) error
	Delete(id string) (int64, error)
	Count() (int64, error)
}

// GormTestimonialRepository GORM 实现
type GormTestimonialRepository struct {
	db *gorm.DB
}

// NewTestimonialRepository 创建评价仓库
func NewTestimonialRepository(db *gorm.DB) *GormTestimonialRepository {
	return &GormTestimonialRepository{db: db}
}

// List 评价列表
func (r *GormTestimonialRepository) List(filter TestimonialListFilter) ([]models.Testimonial, error) {
	testimonials := make([]models.Testimonial, 0)
	query := r.db.Model(&models.Testimonial{})
	if filter.Approved != nil {
		query = query.Where("approved = ?", *filter.Approved)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Order("featured DESC, created_at DESC").Find(&testimonials).Error; err != nil {
		return nil, err
	}
	return testimonials, nil
}

// GetByID 根据 ID 获取评价
func (r *GormTestimonialRepository) GetByID(id string) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	if err := r.db.Where("id = ?", id).First(&testimonial).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &testimonial, nil
}

// Create 创建评价
func (r *GormTestimonialRepository) Create(testimonial *models.Testimonial) error {
	return r.db.Create(testimonial).Error
}

// Update 更新评价
func (r *GormTestimonialRepository) Update(testimonial *models.Testimonial) error {
	return r.db.Save(testimonial).Error
}

// Delete 删除评价，返回受影响行数
func (r *GormTestimonialRepository) Delete(id string) (int64, error) {
	result := r.db.Where("id = ?", id).Delete(&models.Testimonial{})
	return result.RowsAffected, result.Error
}

// Count 统计评价数量
func (r *GormTestimonialRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Testimonial{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
