package repository

import (
	"github.com/patoekipa/internal/constants"
	"github.com/patoekipa/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetCounts() (DashboardCountsRow, error)
	RecentContacts(limit int) ([]models.ContactMessage, error)
	RecentProjects(limit int) ([]models.Project, error)
}

// DashboardCountsRow 仪表盘原始统计结果
type DashboardCountsRow struct {
	TeamMembers          int64
	Projects             int64
	FeaturedProjects     int64
	Testimonials         int64
	PendingTestimonials  int64
	ContactMessages      int64
	UnreadContacts       int64
	AdminUsers           int64
	ActiveAdminUsers     int64
}

// GormDashboardRepository GORM 实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetCounts 统计各类记录数量
func (r *GormDashboardRepository) GetCounts() (DashboardCountsRow, error) {
	var row DashboardCountsRow

	counts := []struct {
		model interface{}
		where []interface{}
		dest  *int64
	}{
		{&models.TeamMember{}, nil, &row.TeamMembers},
		{&models.Project{}, nil, &row.Projects},
		{&models.Project{}, []interface{}{"featured = ?", true}, &row.FeaturedProjects},
		{&models.Testimonial{}, nil, &row.Testimonials},
		{&models.Testimonial{}, []interface{}{"approved = ?", false}, &row.PendingTestimonials},
		{&models.ContactMessage{}, nil, &row.ContactMessages},
		{&models.ContactMessage{}, []interface{}{"status = ?", constants.ContactStatusNew}, &row.UnreadContacts},
		{&models.AdminUser{}, nil, &row.AdminUsers},
		{&models.AdminUser{}, []interface{}{"is_active = ?", true}, &row.ActiveAdminUsers},
	}

	for _, c := range counts {
		query := r.db.Model(c.model)
		if len(c.where) > 0 {
			query = query.Where(c.where[0], c.where[1:]...)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return DashboardCountsRow{}, err
		}
	}
	return row, nil
}

// RecentContacts 最近联系消息
func (r *GormDashboardRepository) RecentContacts(limit int) ([]models.ContactMessage, error) {
	if limit <= 0 {
		limit = 5
	}
	messages := make([]models.ContactMessage, 0, limit)
	err := r.db.Order("created_at DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// RecentProjects 最近更新的项目
func (r *GormDashboardRepository) RecentProjects(limit int) ([]models.Project, error) {
	if limit <= 0 {
		limit = 5
	}
	projects := make([]models.Project, 0, limit)
	err := r.db.Order("updated_at DESC").Limit(limit).Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}
