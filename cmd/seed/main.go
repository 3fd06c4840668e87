package main

import (
	"strings"
	"time"

	"github.com/patoekipa/internal/auth"
	"github.com/patoekipa/internal/config"
	"github.com/patoekipa/internal/constants"
	"github.com/patoekipa/internal/logger"
	"github.com/patoekipa/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 迁移遗留管理员：为兜底列表中的登录名落库正式记录
	now := time.Now()
	for _, username := range cfg.Auth.LegacyAdmins {
		var existing models.AdminUser
		if err := models.DB.Where("LOWER(github_username) = LOWER(?)", username).First(&existing).Error; err == nil {
			stdLog.Printf("Admin user already exists: %s", username)
			continue
		}
		// 真实 GitHub 用户 ID 未知，用占位标识满足唯一约束，后续按登录名匹配
		admin := models.AdminUser{
			GithubUsername: username,
			GithubUserID:   "legacy:" + strings.ToLower(username),
			Role:           constants.RoleSuperAdmin,
			Permissions:    auth.FullPermissions(),
			IsActive:       true,
			AddedBy:        "seed",
			AddedAt:        &now,
			Notes:          "migrated from legacy admin list",
		}
		if err := models.DB.Create(&admin).Error; err != nil {
			stdLog.Printf("Failed to create admin user %s: %v", username, err)
		} else {
			stdLog.Printf("Created admin user: %s", username)
		}
	}

	// 示例团队成员
	team := []models.TeamMember{
		{
			Name:      "Marek Ozdowski",
			Title:     "Founder / Full-stack Developer",
			Bio:       "Leads product and architecture. Builds most of the backend.",
			Email:     "marek@patoekipa.dev",
			GithubURL: "https://github.com/mozdowski",
			Skills:    models.StringArray{"Go", "TypeScript", "Azure"},
			SortOrder: 1,
			IsActive:  true,
		},
		{
			Name:      "Ola Nowak",
			Title:     "Frontend Developer",
			Bio:       "Designs and implements the site UI.",
			Skills:    models.StringArray{"React", "Next.js", "CSS"},
			SortOrder: 2,
			IsActive:  true,
		},
	}
	for _, member := range team {
		var existing models.TeamMember
		if err := models.DB.Where("name = ?", member.Name).First(&existing).Error; err == nil {
			stdLog.Printf("Team member already exists: %s", member.Name)
			continue
		}
		if err := models.DB.Create(&member).Error; err != nil {
			stdLog.Printf("Failed to create team member %s: %v", member.Name, err)
		} else {
			stdLog.Printf("Created team member: %s", member.Name)
		}
	}

	// 示例项目
	projects := []models.Project{
		{
			Title:        "Patoekipa Website",
			Description:  "Marketing site with portfolio, team and testimonials.",
			Category:     "web",
			Status:       constants.ProjectStatusCompleted,
			ProjectSize:  constants.ProjectSizeMedium,
			Technologies: models.StringArray{"Go", "Next.js", "PostgreSQL"},
			Tags:         models.StringArray{"showcase"},
			Featured:     true,
			LiveURL:      "https://patoekipa.dev",
		},
		{
			Title:        "Client Storefront",
			Description:  "E-commerce storefront for a retail client.",
			Category:     "web",
			Status:       constants.ProjectStatusInProgress,
			ProjectSize:  constants.ProjectSizeLarge,
			Technologies: models.StringArray{"Go", "React", "Redis"},
		},
	}
	for _, project := range projects {
		var existing models.Project
		if err := models.DB.Where("title = ?", project.Title).First(&existing).Error; err == nil {
			stdLog.Printf("Project already exists: %s", project.Title)
			continue
		}
		if err := models.DB.Create(&project).Error; err != nil {
			stdLog.Printf("Failed to create project %s: %v", project.Title, err)
		} else {
			stdLog.Printf("Created project: %s", project.Title)
		}
	}

	// 示例评价
	testimonials := []models.Testimonial{
		{
			Author:   "Jan Kowalski",
			Company:  "Retail Co",
			Title:    "CTO",
			Content:  "Delivered on time and the quality exceeded expectations.",
			Rating:   5,
			Approved: true,
			Featured: true,
		},
		{
			Author:  "Anna Wisniewska",
			Company: "Startup XYZ",
			Title:   "Product Manager",
			Content: "Great communication throughout the project.",
			Rating:  5,
		},
	}
	for _, testimonial := range testimonials {
		var existing models.Testimonial
		if err := models.DB.Where("author = ? AND company = ?", testimonial.Author, testimonial.Company).First(&existing).Error; err == nil {
			stdLog.Printf("Testimonial already exists: %s", testimonial.Author)
			continue
		}
		if err := models.DB.Create(&testimonial).Error; err != nil {
			stdLog.Printf("Failed to create testimonial %s: %v", testimonial.Author, err)
		} else {
			stdLog.Printf("Created testimonial: %s", testimonial.Author)
		}
	}

	stdLog.Printf("Seed completed")
}
