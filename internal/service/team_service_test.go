package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTeamServiceTest(t *testing.T) *TeamService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.TeamMember{}); err != nil {
		t.Fatalf("migrate team members failed: %v", err)
	}
	return NewTeamService(repository.NewTeamRepository(db))
}

func TestCreateTeamMember(t *testing.T) {
	svc := setupTeamServiceTest(t)

	member, err := svc.Create(TeamMemberInput{
		Name:   "Dev One",
		Title:  "Backend Engineer",
		Skills: []string{"Go", "Postgres"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !member.IsActive {
		t.Fatalf("new member must start active")
	}

	reloaded, err := svc.GetByID(member.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(reloaded.Skills) != 2 || reloaded.Skills[1] != "Postgres" {
		t.Fatalf("skills round trip failed: %v", reloaded.Skills)
	}
}

func TestTeamMemberValidation(t *testing.T) {
	svc := setupTeamServiceTest(t)

	if _, err := svc.Create(TeamMemberInput{Title: "dev"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing name want ErrValidation got %v", err)
	}
	if _, err := svc.Create(TeamMemberInput{Name: "x"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing role want ErrValidation got %v", err)
	}
}

func TestPublicTeamListOrderingAndVisibility(t *testing.T) {
	svc := setupTeamServiceTest(t)

	if _, err := svc.Create(TeamMemberInput{Name: "second", Title: "dev", SortOrder: 2}); err != nil {
		t.Fatalf("create second failed: %v", err)
	}
	if _, err := svc.Create(TeamMemberInput{Name: "first", Title: "dev", SortOrder: 1}); err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	hidden, err := svc.Create(TeamMemberInput{Name: "former", Title: "dev", SortOrder: 0})
	if err != nil {
		t.Fatalf("create former failed: %v", err)
	}
	inactive := false
	if _, err := svc.Update(hidden.ID, TeamMemberInput{Name: "former", Title: "dev", IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	members, err := svc.ListPublic()
	if err != nil {
		t.Fatalf("public list failed: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("public list want 2 got %d", len(members))
	}
	if members[0].Name != "first" || members[1].Name != "second" {
		t.Fatalf("sort order not applied: %v", members)
	}
}
