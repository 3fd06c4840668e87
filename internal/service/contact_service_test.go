package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/patoekipa/internal/constants"
	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupContactServiceTest(t *testing.T) *ContactService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ContactMessage{}); err != nil {
		t.Fatalf("migrate contact messages failed: %v", err)
	}
	return NewContactService(repository.NewContactRepository(db))
}

func TestSubmitContactMessage(t *testing.T) {
	svc := setupContactServiceTest(t)

	record, err := svc.Submit(ContactInput{
		Name:    "  Jane Doe  ",
		Email:   "jane@example.com",
		Subject: "Project inquiry",
		Message: "We need a new storefront.",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if record.Name != "Jane Doe" {
		t.Fatalf("name want trimmed got %q", record.Name)
	}
	if record.Status != constants.ContactStatusNew {
		t.Fatalf("status want new got %q", record.Status)
	}
	if record.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestSubmitContactMessageValidation(t *testing.T) {
	svc := setupContactServiceTest(t)

	cases := []struct {
		name  string
		input ContactInput
	}{
		{name: "missing_name", input: ContactInput{Email: "a@b.com", Message: "hi"}},
		{name: "missing_email", input: ContactInput{Name: "a", Message: "hi"}},
		{name: "bad_email", input: ContactInput{Name: "a", Email: "not-an-email", Message: "hi"}},
		{name: "missing_message", input: ContactInput{Name: "a", Email: "a@b.com"}},
		{name: "blank_message", input: ContactInput{Name: "a", Email: "a@b.com", Message: "   "}},
	}
	for _, item := range cases {
		t.Run(item.name, func(t *testing.T) {
			if _, err := svc.Submit(item.input); !errors.Is(err, ErrValidation) {
				t.Fatalf("want ErrValidation got %v", err)
			}
		})
	}
}

func TestContactStatusTransitions(t *testing.T) {
	svc := setupContactServiceTest(t)
	record, err := svc.Submit(ContactInput{Name: "a", Email: "a@b.com", Message: "hello"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	updated, err := svc.UpdateStatus(record.ID, constants.ContactStatusRead)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.ContactStatusRead {
		t.Fatalf("status want read got %q", updated.Status)
	}

	if _, err := svc.UpdateStatus(record.ID, "resolved"); !errors.Is(err, ErrValidation) {
		t.Fatalf("invalid status want ErrValidation got %v", err)
	}
	if _, err := svc.UpdateStatus("missing-id", constants.ContactStatusRead); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id want ErrNotFound got %v", err)
	}
}

func TestContactListPagination(t *testing.T) {
	svc := setupContactServiceTest(t)
	for i := 0; i < 7; i++ {
		if _, err := svc.Submit(ContactInput{
			Name:    fmt.Sprintf("sender-%d", i),
			Email:   fmt.Sprintf("s%d@example.com", i),
			Message: "hello there",
		}); err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
	}

	records, total, err := svc.List(repository.ContactListFilter{Page: 2, PageSize: 3})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 7 {
		t.Fatalf("total want 7 got %d", total)
	}
	if len(records) != 3 {
		t.Fatalf("page size want 3 got %d", len(records))
	}

	if _, _, err := svc.List(repository.ContactListFilter{Status: "bogus"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("invalid status filter want ErrValidation got %v", err)
	}
}
