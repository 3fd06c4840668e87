package provider

import (
	"github.com/patoekipa/internal/auth"
	"github.com/patoekipa/internal/cache"
	"github.com/patoekipa/internal/config"
	"github.com/patoekipa/internal/logger"
	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/repository"
	"github.com/patoekipa/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	AdminUserRepo   repository.AdminUserRepository
	TeamRepo        repository.TeamRepository
	ProjectRepo     repository.ProjectRepository
	TestimonialRepo repository.TestimonialRepository
	ContactRepo     repository.ContactRepository
	DashboardRepo   repository.DashboardRepository

	// Services
	AuthService        *auth.Service
	AdminUserService   *service.AdminUserService
	TeamService        *service.TeamService
	ProjectService     *service.ProjectService
	TestimonialService *service.TestimonialService
	ContactService     *service.ContactService
	DashboardService   *service.DashboardService
	ChatService        *service.ChatService
	UploadService      *service.UploadService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminUserRepo = repository.NewAdminUserRepository(db)
	c.TeamRepo = repository.NewTeamRepository(db)
	c.ProjectRepo = repository.NewProjectRepository(db)
	c.TestimonialRepo = repository.NewTestimonialRepository(db)
	c.ContactRepo = repository.NewContactRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = auth.NewService(c.AdminUserRepo, c.Config.Auth.LegacyAdmins, cache.Enabled())
	c.AdminUserService = service.NewAdminUserService(c.AdminUserRepo)
	c.TeamService = service.NewTeamService(c.TeamRepo)
	c.ProjectService = service.NewProjectService(c.ProjectRepo)
	c.TestimonialService = service.NewTestimonialService(c.TestimonialRepo)
	c.ContactService = service.NewContactService(c.ContactRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.TeamRepo, c.ProjectRepo, c.TestimonialRepo)
	c.ChatService = service.NewChatService(c.Config.Chat)
	c.UploadService = service.NewUploadService(c.Config.Upload)
}
