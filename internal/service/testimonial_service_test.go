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

func setupTestimonialServiceTest(t *testing.T) *TestimonialService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Testimonial{}); err != nil {
		t.Fatalf("migrate testimonials failed: %v", err)
	}
	return NewTestimonialService(repository.NewTestimonialRepository(db))
}

func TestCreateTestimonialDefaults(t *testing.T) {
	svc := setupTestimonialServiceTest(t)

	testimonial, err := svc.Create(TestimonialInput{
		Author:  "Client One",
		Content: "Great work all around.",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if testimonial.Approved {
		t.Fatalf("new testimonial must start unapproved")
	}
	if testimonial.Rating != 5 {
		t.Fatalf("rating want default 5 got %d", testimonial.Rating)
	}
}

func TestTestimonialRatingValidation(t *testing.T) {
	svc := setupTestimonialServiceTest(t)

	for _, rating := range []int{0, 6, -1} {
		r := rating
		if _, err := svc.Create(TestimonialInput{Author: "a", Content: "b", Rating: &r}); !errors.Is(err, ErrValidation) {
			t.Fatalf("rating %d want ErrValidation got %v", rating, err)
		}
	}
}

func TestPublicTestimonialListOnlyApproved(t *testing.T) {
	svc := setupTestimonialServiceTest(t)
	approved := true
	if _, err := svc.Create(TestimonialInput{Author: "visible", Content: "x", Approved: &approved}); err != nil {
		t.Fatalf("create approved failed: %v", err)
	}
	if _, err := svc.Create(TestimonialInput{Author: "hidden", Content: "y"}); err != nil {
		t.Fatalf("create pending failed: %v", err)
	}

	public, err := svc.ListPublic(repository.TestimonialListFilter{})
	if err != nil {
		t.Fatalf("public list failed: %v", err)
	}
	if len(public) != 1 || public[0].Author != "visible" {
		t.Fatalf("public list must only include approved entries: %v", public)
	}

	all, err := svc.List(repository.TestimonialListFilter{})
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin list want 2 got %d", len(all))
	}
}

func TestApproveTestimonialViaUpdate(t *testing.T) {
	svc := setupTestimonialServiceTest(t)
	testimonial, err := svc.Create(TestimonialInput{Author: "pending", Content: "waiting"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	approved := true
	updated, err := svc.Update(testimonial.ID, TestimonialInput{
		Author:   testimonial.Author,
		Content:  testimonial.Content,
		Approved: &approved,
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if !updated.Approved {
		t.Fatalf("expected testimonial approved")
	}
}
