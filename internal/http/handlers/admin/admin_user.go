package admin

import (
	"net/http"
	"strconv"

	"github.com/patoekipa/internal/http/response"
	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/repository"
	"github.com/patoekipa/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminUserCreateRequest 创建管理员请求
type AdminUserCreateRequest struct {
	GithubUsername string              `json:"githubUsername"`
	GithubUserID   string              `json:"githubUserId"`
	Email          string              `json:"email"`
	Role           string              `json:"role"`
	Permissions    *models.Permissions `json:"permissions"`
	Notes          string              `json:"notes"`
}

// AdminUserUpdateRequest 更新管理员请求，缺省字段不修改
type AdminUserUpdateRequest struct {
	Email       *string             `json:"email"`
	Role        *string             `json:"role"`
	Permissions *models.Permissions `json:"permissions"`
	IsActive    *bool               `json:"isActive"`
	Notes       *string             `json:"notes"`
}

// VerifyResponse 身份核验响应
type VerifyResponse struct {
	Authenticated bool               `json:"authenticated"`
	Authorized    bool               `json:"authorized"`
	Legacy        bool               `json:"legacy,omitempty"`
	Role          string             `json:"role,omitempty"`
	Permissions   models.Permissions `json:"permissions"`
	User          *models.AdminUser  `json:"user,omitempty"`
}

// Verify 返回调用者的授权判定结果
func (h *Handler) Verify(c *gin.Context) {
	result, ok := requireAuthorization(c)
	if !ok {
		return
	}
	response.Success(c, VerifyResponse{
		Authenticated: result.Authenticated,
		Authorized:    result.Authorized,
		Legacy:        result.Legacy,
		Role:          result.Role,
		Permissions:   result.Permissions,
		User:          result.User,
	})
}

// GetAdminUsers 获取管理员列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	filter := repository.AdminUserListFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
	}
	if raw := c.Query("isActive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid isActive filter", err)
			return
		}
		filter.IsActive = &parsed
	}

	users, err := h.AdminUserService.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch admin users", err)
		return
	}
	response.Success(c, users)
}

// GetAdminUser 获取单个管理员
func (h *Handler) GetAdminUser(c *gin.Context) {
	user, err := h.AdminUserService.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "failed to fetch admin user")
		return
	}
	response.Success(c, user)
}

// CreateAdminUser 创建管理员
func (h *Handler) CreateAdminUser(c *gin.Context) {
	actor, ok := requireAuthorization(c)
	if !ok {
		return
	}
	var req AdminUserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	input := service.CreateAdminUserInput{
		GithubUsername: req.GithubUsername,
		GithubUserID:   req.GithubUserID,
		Email:          req.Email,
		Role:           req.Role,
		Notes:          req.Notes,
		AddedBy:        actor.Identity.GithubUsername,
	}
	if req.Permissions != nil {
		input.Permissions = *req.Permissions
	}

	user, err := h.AdminUserService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "failed to create admin user")
		return
	}
	requestLog(c).Infow("admin_user_created",
		"admin_user_id", user.ID,
		"github_username", user.GithubUsername,
		"added_by", input.AddedBy,
	)
	response.Created(c, user)
}

// UpdateAdminUser 更新管理员
func (h *Handler) UpdateAdminUser(c *gin.Context) {
	var req AdminUserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.AdminUserService.Update(c.Request.Context(), c.Param("id"), service.UpdateAdminUserInput{
		Email:       req.Email,
		Role:        req.Role,
		Permissions: req.Permissions,
		IsActive:    req.IsActive,
		Notes:       req.Notes,
	})
	if err != nil {
		respondServiceError(c, err, "failed to update admin user")
		return
	}
	requestLog(c).Infow("admin_user_updated", "admin_user_id", user.ID)
	response.Success(c, user)
}

// DeleteAdminUser 删除管理员
func (h *Handler) DeleteAdminUser(c *gin.Context) {
	id := c.Param("id")
	if err := h.AdminUserService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete admin user")
		return
	}
	requestLog(c).Infow("admin_user_deleted", "admin_user_id", id)
	response.Success(c, gin.H{"deleted": true})
}
