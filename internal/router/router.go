package router

import (
	"fmt"
	"strings"

	"github.com/patoekipa/internal/cache"
	"github.com/patoekipa/internal/config"
	"github.com/patoekipa/internal/constants"
	adminhandlers "github.com/patoekipa/internal/http/handlers/admin"
	publichandlers "github.com/patoekipa/internal/http/handlers/public"
	"github.com/patoekipa/internal/logger"
	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	contactRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:contact", redisPrefix),
		WindowSeconds: cfg.Security.ContactRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ContactRateLimit.MaxRequests,
	}
	chatRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:chat", redisPrefix),
		WindowSeconds: cfg.Security.ChatRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ChatRateLimit.MaxRequests,
	}

	// 中间件
	r.Use(RecoveryMiddleware(log))
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(PrincipalAuthMiddleware(c.AuthService, cfg.Auth.PrincipalHeader))

	// 头像访问走签名校验，不直接暴露目录
	r.GET("/uploads/avatars/:filename", publicHandler.GetAvatar)

	requireTeam := RequirePermission(func(p models.Permissions) bool { return p.CanManageTeam })
	requireProjects := RequirePermission(func(p models.Permissions) bool { return p.CanManageProjects })
	requireTestimonials := RequirePermission(func(p models.Permissions) bool { return p.CanManageTestimonials })
	requireContacts := RequirePermission(func(p models.Permissions) bool { return p.CanManageContacts })
	requireUsers := RequirePermission(func(p models.Permissions) bool { return p.CanManageUsers })

	api := r.Group("/api")
	{
		api.GET("/health", publicHandler.Health)
		api.GET("/health/ready", publicHandler.HealthReady)

		// 资源路径对外只有一套，读公开、写按权限门禁
		api.GET("/team", publicHandler.GetTeam)
		api.POST("/team", RequireAdmin(), requireTeam, adminHandler.CreateTeamMember)
		api.PUT("/team/:id", RequireAdmin(), requireTeam, adminHandler.UpdateTeamMember)
		api.DELETE("/team/:id", RequireAdmin(), requireTeam, adminHandler.DeleteTeamMember)

		api.GET("/projects", publicHandler.GetProjects)
		api.GET("/projects/:id", publicHandler.GetProject)
		api.POST("/projects", RequireAdmin(), requireProjects, adminHandler.CreateProject)
		api.PUT("/projects/:id", RequireAdmin(), requireProjects, adminHandler.UpdateProject)
		api.DELETE("/projects/:id", RequireAdmin(), requireProjects, adminHandler.DeleteProject)

		api.GET("/testimonials", publicHandler.GetTestimonials)
		api.POST("/testimonials", RequireAdmin(), requireTestimonials, adminHandler.CreateTestimonial)
		api.PUT("/testimonials/:id", RequireAdmin(), requireTestimonials, adminHandler.UpdateTestimonial)
		api.DELETE("/testimonials/:id", RequireAdmin(), requireTestimonials, adminHandler.DeleteTestimonial)

		api.POST("/contact", RateLimitMiddleware(redisClient, contactRule, KeyByIPAndJSONField("email")), publicHandler.SubmitContact)
		api.GET("/contact", RequireAdmin(), requireContacts, adminHandler.GetAdminContacts)
		api.GET("/contact/:id", RequireAdmin(), requireContacts, adminHandler.GetAdminContact)
		api.PUT("/contact/:id", RequireAdmin(), requireContacts, adminHandler.UpdateContactStatus)
		api.DELETE("/contact/:id", RequireAdmin(), requireContacts, adminHandler.DeleteContact)

		api.GET("/dashboard", RequireAdmin(), adminHandler.GetDashboard)
		api.GET("/data", publicHandler.GetSiteData)
		api.POST("/chat", RateLimitMiddleware(redisClient, chatRule, KeyByIP), publicHandler.Chat)

		// 身份核验：只要求已认证，结果本身就是响应内容
		api.GET("/admin-users/verify", adminHandler.Verify)

		// 管理员账号管理
		adminUsers := api.Group("/admin-users")
		adminUsers.Use(RequireAdmin(), requireUsers)
		{
			adminUsers.GET("", adminHandler.GetAdminUsers)
			adminUsers.GET("/:id", adminHandler.GetAdminUser)
			adminUsers.POST("", adminHandler.CreateAdminUser)
			adminUsers.PUT("/:id", adminHandler.UpdateAdminUser)
			adminUsers.DELETE("/:id", adminHandler.DeleteAdminUser)
		}

		// 头像上传（任一管理权限即可）
		upload := api.Group("/upload")
		upload.Use(RequireAdmin())
		{
			upload.POST("/avatar", adminHandler.UploadAvatar)
			upload.GET("/avatar", adminHandler.GetAvatars)
			upload.DELETE("/avatar/:filename", adminHandler.DeleteAvatar)
		}
	}

	return r
}
