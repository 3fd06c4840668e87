package router

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/patoekipa/internal/auth"
	"github.com/patoekipa/internal/constants"
	"github.com/patoekipa/internal/http/handlers/shared"
	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func setupPrincipalMiddlewareTest(t *testing.T, legacyAdmins []string) (*gin.Engine, repository.AdminUserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.AdminUser{}); err != nil {
		t.Fatalf("migrate admin users failed: %v", err)
	}
	repo := repository.NewAdminUserRepository(db)
	authService := auth.NewService(repo, legacyAdmins, false)

	r := gin.New()
	r.Use(PrincipalAuthMiddleware(authService, "x-ms-client-principal"))
	r.GET("/whoami", func(c *gin.Context) {
		result, _ := shared.GetAuthorization(c)
		c.JSON(http.StatusOK, gin.H{
			"authenticated": result.Authenticated,
			"authorized":    result.Authorized,
			"role":          result.Role,
		})
	})
	r.GET("/admin-only", RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/users-only", RequireAdmin(), RequirePermission(func(p models.Permissions) bool { return p.CanManageUsers }), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, repo
}

func principalHeader(t *testing.T, userID, login string) string {
	t.Helper()
	payload := fmt.Sprintf(`{"userId":%q,"userDetails":%q,"claims":[{"typ":%q,"val":%q}]}`,
		userID, login, constants.ClaimTypeGitHubLogin, login)
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestPrincipalAuthMiddlewareUnauthenticated(t *testing.T) {
	r, _ := setupPrincipalMiddlewareTest(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing principal want 401 got %d", w.Code)
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req2.Header.Set("x-ms-client-principal", "!!not-base64!!")
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("malformed principal want 401 got %d", w2.Code)
	}
}

func TestPrincipalAuthMiddlewareForbiddenForStrangers(t *testing.T) {
	r, _ := setupPrincipalMiddlewareTest(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("x-ms-client-principal", principalHeader(t, "1", "stranger"))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("unknown identity want 403 got %d", w.Code)
	}
}

func TestPrincipalAuthMiddlewareLegacyAdmin(t *testing.T) {
	r, _ := setupPrincipalMiddlewareTest(t, []string{"mozdowski"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users-only", nil)
	req.Header.Set("x-ms-client-principal", principalHeader(t, "42", "mozdowski"))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("legacy admin want 200 got %d", w.Code)
	}
}

func TestRequirePermissionDeniesMissingCapability(t *testing.T) {
	r, repo := setupPrincipalMiddlewareTest(t, nil)
	editor := &models.AdminUser{
		GithubUsername: "editor",
		GithubUserID:   "7",
		Role:           constants.RoleEditor,
		Permissions:    models.Permissions{CanManageProjects: true},
		IsActive:       true,
	}
	if err := repo.Create(editor); err != nil {
		t.Fatalf("create editor failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users-only", nil)
	req.Header.Set("x-ms-client-principal", principalHeader(t, "7", "editor"))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("editor on users-only want 403 got %d", w.Code)
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req2.Header.Set("x-ms-client-principal", principalHeader(t, "7", "editor"))
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("editor on admin-only want 200 got %d", w2.Code)
	}
}
