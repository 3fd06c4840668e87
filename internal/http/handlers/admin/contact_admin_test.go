package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/provider"
	"github.com/patoekipa/internal/repository"
	"github.com/patoekipa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupContactAdminHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ContactMessage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	repo := repository.NewContactRepository(db)
	h := &Handler{Container: &provider.Container{
		ContactRepo:    repo,
		ContactService: service.NewContactService(repo),
	}}
	return h, db
}

func seedContacts(t *testing.T, db *gorm.DB, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		record := models.ContactMessage{
			Name:    fmt.Sprintf("Visitor %d", i),
			Email:   fmt.Sprintf("visitor%d@example.com", i),
			Message: "hello",
			Status:  "new",
		}
		if err := db.Create(&record).Error; err != nil {
			t.Fatalf("create contact %d failed: %v", i, err)
		}
	}
}

func TestGetAdminContactsPagination(t *testing.T) {
	h, db := setupContactAdminHandlerTest(t)
	seedContacts(t, db, 7)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/contact?page=2&pageSize=3", nil)
	h.GetAdminContacts(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Success    bool                    `json:"success"`
		Data       []models.ContactMessage `json:"data"`
		Pagination struct {
			Page      int   `json:"page"`
			PageSize  int   `json:"pageSize"`
			Total     int64 `json:"total"`
			TotalPage int64 `json:"totalPage"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("page 2 size want 3 got %d", len(resp.Data))
	}
	if resp.Pagination.Total != 7 || resp.Pagination.TotalPage != 3 {
		t.Fatalf("pagination mismatch: %+v", resp.Pagination)
	}
}

func TestUpdateContactStatusInvalid(t *testing.T) {
	h, db := setupContactAdminHandlerTest(t)
	seedContacts(t, db, 1)

	var record models.ContactMessage
	if err := db.First(&record).Error; err != nil {
		t.Fatalf("load contact failed: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/contact/"+record.ID, strings.NewReader(`{"status":"spam"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: record.ID}}
	h.UpdateContactStatus(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestDeleteContactMissingNotFound(t *testing.T) {
	h, _ := setupContactAdminHandlerTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/contact/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	h.DeleteContact(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d body=%s", w.Code, w.Body.String())
	}
}
