package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/patoekipa/internal/auth"
	"github.com/patoekipa/internal/constants"
	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAdminUserServiceTest(t *testing.T) (*AdminUserService, repository.AdminUserRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.AdminUser{}); err != nil {
		t.Fatalf("migrate admin users failed: %v", err)
	}
	repo := repository.NewAdminUserRepository(db)
	return NewAdminUserService(repo), repo
}

func mustCreateAdmin(t *testing.T, svc *AdminUserService, username, githubUserID, role string) *models.AdminUser {
	t.Helper()
	user, err := svc.Create(context.Background(), CreateAdminUserInput{
		GithubUsername: username,
		GithubUserID:   githubUserID,
		Role:           role,
	})
	if err != nil {
		t.Fatalf("create admin %s failed: %v", username, err)
	}
	return user
}

func TestCreateAdminUserDefaultsToEditor(t *testing.T) {
	svc, _ := setupAdminUserServiceTest(t)

	user, err := svc.Create(context.Background(), CreateAdminUserInput{
		GithubUsername: "new-admin",
		GithubUserID:   "1001",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.Role != constants.RoleEditor {
		t.Fatalf("role want editor got %q", user.Role)
	}
	if user.Permissions.CanManageUsers {
		t.Fatalf("editor must not manage users")
	}
	if !user.IsActive {
		t.Fatalf("new admin must start active")
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestCreateAdminUserRejectsDuplicates(t *testing.T) {
	svc, _ := setupAdminUserServiceTest(t)
	mustCreateAdmin(t, svc, "taken", "2001", constants.RoleEditor)

	cases := []CreateAdminUserInput{
		{GithubUsername: "taken", GithubUserID: "9999"},
		{GithubUsername: "TAKEN", GithubUserID: "9998"},
		{GithubUsername: "other", GithubUserID: "2001"},
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrDuplicate) {
			t.Fatalf("input %+v want ErrDuplicate got %v", input, err)
		}
	}
}

func TestCreateAdminUserValidation(t *testing.T) {
	svc, _ := setupAdminUserServiceTest(t)

	if _, err := svc.Create(context.Background(), CreateAdminUserInput{GithubUserID: "1"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing username want ErrValidation got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateAdminUserInput{GithubUsername: "someone"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing githubUserId want ErrValidation got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateAdminUserInput{
		GithubUsername: "someone",
		GithubUserID:   "4001",
		Role:           "owner",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad role want ErrValidation got %v", err)
	}
}

func TestCreateSuperAdminGetsFullPermissions(t *testing.T) {
	svc, _ := setupAdminUserServiceTest(t)

	user := mustCreateAdmin(t, svc, "root", "3001", constants.RoleSuperAdmin)
	if user.Permissions != auth.FullPermissions() {
		t.Fatalf("super admin permissions want full set got %+v", user.Permissions)
	}
}

func TestUpdateLastSuperAdminDemotionBlocked(t *testing.T) {
	svc, _ := setupAdminUserServiceTest(t)
	user := mustCreateAdmin(t, svc, "only-root", "4001", constants.RoleSuperAdmin)

	role := constants.RoleEditor
	if _, err := svc.Update(context.Background(), user.ID, UpdateAdminUserInput{Role: &role}); !errors.Is(err, ErrLastSuperAdmin) {
		t.Fatalf("demote want ErrLastSuperAdmin got %v", err)
	}

	inactive := false
	if _, err := svc.Update(context.Background(), user.ID, UpdateAdminUserInput{IsActive: &inactive}); !errors.Is(err, ErrLastSuperAdmin) {
		t.Fatalf("deactivate want ErrLastSuperAdmin got %v", err)
	}
}

func TestUpdateSuperAdminDemotionAllowedWithAnother(t *testing.T) {
	svc, _ := setupAdminUserServiceTest(t)
	first := mustCreateAdmin(t, svc, "root-one", "5001", constants.RoleSuperAdmin)
	mustCreateAdmin(t, svc, "root-two", "5002", constants.RoleSuperAdmin)

	role := constants.RoleAdmin
	updated, err := svc.Update(context.Background(), first.ID, UpdateAdminUserInput{Role: &role})
	if err != nil {
		t.Fatalf("demote with sibling super admin failed: %v", err)
	}
	if updated.Role != constants.RoleAdmin {
		t.Fatalf("role want admin got %q", updated.Role)
	}
	if updated.Permissions.CanManageUsers {
		t.Fatalf("demoted admin must lose user management")
	}
}

func TestUpdatePermissionsNormalizedByRole(t *testing.T) {
	svc, _ := setupAdminUserServiceTest(t)
	user := mustCreateAdmin(t, svc, "editor", "6001", constants.RoleEditor)

	perms := models.Permissions{CanManageUsers: true, CanManageTeam: true}
	updated, err := svc.Update(context.Background(), user.ID, UpdateAdminUserInput{Permissions: &perms})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Permissions.CanManageUsers {
		t.Fatalf("editor permission override must not grant user management")
	}
	if !updated.Permissions.CanManageTeam {
		t.Fatalf("expected team permission kept")
	}
}

func TestUpdateMissingAdminUser(t *testing.T) {
	svc, _ := setupAdminUserServiceTest(t)

	email := "x@example.com"
	if _, err := svc.Update(context.Background(), "missing-id", UpdateAdminUserInput{Email: &email}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

func TestDeleteLastSuperAdminBlocked(t *testing.T) {
	svc, _ := setupAdminUserServiceTest(t)
	user := mustCreateAdmin(t, svc, "only-root", "7001", constants.RoleSuperAdmin)

	if err := svc.Delete(context.Background(), user.ID); !errors.Is(err, ErrLastSuperAdmin) {
		t.Fatalf("delete want ErrLastSuperAdmin got %v", err)
	}
}

func TestDeleteAdminUser(t *testing.T) {
	svc, repo := setupAdminUserServiceTest(t)
	mustCreateAdmin(t, svc, "root", "8001", constants.RoleSuperAdmin)
	editor := mustCreateAdmin(t, svc, "editor", "8002", constants.RoleEditor)

	if err := svc.Delete(context.Background(), editor.ID); err != nil {
		t.Fatalf("delete editor failed: %v", err)
	}
	remaining, err := repo.GetByID(editor.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if remaining != nil {
		t.Fatalf("expected editor removed")
	}

	if err := svc.Delete(context.Background(), editor.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete want ErrNotFound got %v", err)
	}
}
