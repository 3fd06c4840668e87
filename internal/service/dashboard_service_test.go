package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/patoekipa/internal/constants"
	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDashboardServiceTest(t *testing.T) (*DashboardService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.AdminUser{},
		&models.TeamMember{},
		&models.Project{},
		&models.Testimonial{},
		&models.ContactMessage{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	svc := NewDashboardService(
		repository.NewDashboardRepository(db),
		repository.NewTeamRepository(db),
		repository.NewProjectRepository(db),
		repository.NewTestimonialRepository(db),
	)
	return svc, db
}

func TestGetDashboardCounts(t *testing.T) {
	svc, db := setupDashboardServiceTest(t)

	seed := []interface{}{
		&models.TeamMember{Name: "a", Title: "dev", IsActive: true},
		&models.Project{Title: "p1", Status: constants.ProjectStatusCompleted, ProjectSize: constants.ProjectSizeSmall, Featured: true},
		&models.Project{Title: "p2", Status: constants.ProjectStatusPlanning, ProjectSize: constants.ProjectSizeMedium},
		&models.Testimonial{Author: "c", Content: "x", Rating: 5, Approved: true},
		&models.Testimonial{Author: "d", Content: "y", Rating: 4},
		&models.ContactMessage{Name: "s", Email: "s@e.com", Message: "m", Status: constants.ContactStatusNew},
		&models.ContactMessage{Name: "r", Email: "r@e.com", Message: "m", Status: constants.ContactStatusRead},
		&models.AdminUser{GithubUsername: "root", GithubUserID: "1", Role: constants.RoleSuperAdmin, IsActive: true},
	}
	for _, record := range seed {
		if err := db.Create(record).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	data, err := svc.GetDashboard()
	if err != nil {
		t.Fatalf("get dashboard failed: %v", err)
	}
	stats := data.Stats
	if stats.TeamMembers != 1 || stats.Projects != 2 || stats.FeaturedProjects != 1 {
		t.Fatalf("project counts wrong: %+v", stats)
	}
	if stats.Testimonials != 2 || stats.PendingTestimonials != 1 {
		t.Fatalf("testimonial counts wrong: %+v", stats)
	}
	if stats.ContactMessages != 2 || stats.UnreadContacts != 1 {
		t.Fatalf("contact counts wrong: %+v", stats)
	}
	if stats.AdminUsers != 1 || stats.ActiveAdminUsers != 1 {
		t.Fatalf("admin counts wrong: %+v", stats)
	}
	if len(data.RecentContacts) != 2 {
		t.Fatalf("recent contacts want 2 got %d", len(data.RecentContacts))
	}
}

func TestGetSiteDataFiltersHiddenContent(t *testing.T) {
	svc, db := setupDashboardServiceTest(t)

	seed := []interface{}{
		&models.TeamMember{Name: "active", Title: "dev", IsActive: true},
		&models.TeamMember{Name: "left", Title: "dev", IsActive: false},
		&models.Project{Title: "public", Status: constants.ProjectStatusCompleted, ProjectSize: constants.ProjectSizeSmall},
		&models.Testimonial{Author: "shown", Content: "x", Rating: 5, Approved: true},
		&models.Testimonial{Author: "hidden", Content: "y", Rating: 5},
	}
	for _, record := range seed {
		if err := db.Create(record).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	// bool 零值字段不会覆盖列默认值，显式落库
	if err := db.Model(&models.TeamMember{}).Where("name = ?", "left").Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate member failed: %v", err)
	}
	if err := db.Model(&models.Testimonial{}).Where("author = ?", "hidden").Update("approved", false).Error; err != nil {
		t.Fatalf("unapprove testimonial failed: %v", err)
	}

	data, err := svc.GetSiteData()
	if err != nil {
		t.Fatalf("get site data failed: %v", err)
	}
	if len(data.Team) != 1 || data.Team[0].Name != "active" {
		t.Fatalf("team must only include active members: %v", data.Team)
	}
	if len(data.Projects) != 1 {
		t.Fatalf("projects want 1 got %d", len(data.Projects))
	}
	if len(data.Testimonials) != 1 || data.Testimonials[0].Author != "shown" {
		t.Fatalf("testimonials must only include approved: %v", data.Testimonials)
	}
}
