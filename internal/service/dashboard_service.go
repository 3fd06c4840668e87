package service

import (
	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/repository"
)

// DashboardService 管理端统计与汇总
type DashboardService struct {
	dashboardRepo   repository.DashboardRepository
	teamRepo        repository.TeamRepository
	projectRepo     repository.ProjectRepository
	testimonialRepo repository.TestimonialRepository
}

// NewDashboardService 创建统计服务
func NewDashboardService(
	dashboardRepo repository.DashboardRepository,
	teamRepo repository.TeamRepository,
	projectRepo repository.ProjectRepository,
	testimonialRepo repository.TestimonialRepository,
) *DashboardService {
	return &DashboardService{
		dashboardRepo:   dashboardRepo,
		teamRepo:        teamRepo,
		projectRepo:     projectRepo,
		testimonialRepo: testimonialRepo,
	}
}

// DashboardStats 仪表盘统计
type DashboardStats struct {
	TeamMembers         int64 `json:"teamMembers"`
	Projects            int64 `json:"projects"`
	FeaturedProjects    int64 `json:"featuredProjects"`
	Testimonials        int64 `json:"testimonials"`
	PendingTestimonials int64 `json:"pendingTestimonials"`
	ContactMessages     int64 `json:"contactMessages"`
	UnreadContacts      int64 `json:"unreadContacts"`
	AdminUsers          int64 `json:"adminUsers"`
	ActiveAdminUsers    int64 `json:"activeAdminUsers"`
}

// DashboardData 仪表盘响应
type DashboardData struct {
	Stats          DashboardStats          `json:"stats"`
	RecentContacts []models.ContactMessage `json:"recentContacts"`
	RecentProjects []models.Project        `json:"recentProjects"`
}

// SiteData 公开站点聚合数据
type SiteData struct {
	Team         []models.TeamMember  `json:"team"`
	Projects     []models.Project     `json:"projects"`
	Testimonials []models.Testimonial `json:"testimonials"`
}

// GetDashboard 获取仪表盘数据
func (s *DashboardService) GetDashboard() (*DashboardData, error) {
	counts, err := s.dashboardRepo.GetCounts()
	if err != nil {
		return nil, err
	}
	contacts, err := s.dashboardRepo.RecentContacts(5)
	if err != nil {
		return nil, err
	}
	projects, err := s.dashboardRepo.RecentProjects(5)
	if err != nil {
		return nil, err
	}
	return &DashboardData{
		Stats: DashboardStats{
			TeamMembers:         counts.TeamMembers,
			Projects:            counts.Projects,
			FeaturedProjects:    counts.FeaturedProjects,
			Testimonials:        counts.Testimonials,
			PendingTestimonials: counts.PendingTestimonials,
			ContactMessages:     counts.ContactMessages,
			UnreadContacts:      counts.UnreadContacts,
			AdminUsers:          counts.AdminUsers,
			ActiveAdminUsers:    counts.ActiveAdminUsers,
		},
		RecentContacts: contacts,
		RecentProjects: projects,
	}, nil
}

// GetSiteData 获取公开站点聚合数据
// 单次请求返回前台渲染所需的全部内容。
func (s *DashboardService) GetSiteData() (*SiteData, error) {
	team, err := s.teamRepo.List(repository.TeamListFilter{OnlyActive: true})
	if err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.List(repository.ProjectListFilter{})
	if err != nil {
		return nil, err
	}
	approved := true
	testimonials, err := s.testimonialRepo.List(repository.TestimonialListFilter{Approved: &approved})
	if err != nil {
		return nil, err
	}
	return &SiteData{
		Team:         team,
		Projects:     projects,
		Testimonials: testimonials,
	}, nil
}
