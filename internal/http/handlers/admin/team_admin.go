package admin

import (
	"net/http"

	"github.com/patoekipa/internal/http/response"
	"github.com/patoekipa/internal/service"

	"github.com/gin-gonic/gin"
)

// TeamMemberRequest 团队成员创建/更新请求
type TeamMemberRequest struct {
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Bio         string   `json:"bio"`
	AvatarURL   string   `json:"avatarUrl"`
	Email       string   `json:"email"`
	GithubURL   string   `json:"githubUrl"`
	LinkedinURL string   `json:"linkedinUrl"`
	Skills      []string `json:"skills"`
	SortOrder   int      `json:"sortOrder"`
	IsActive    *bool    `json:"isActive"`
}

func (r TeamMemberRequest) toInput() service.TeamMemberInput {
	return service.TeamMemberInput{
		Name:        r.Name,
		Title:       r.Role,
		Bio:         r.Bio,
		AvatarURL:   r.AvatarURL,
		Email:       r.Email,
		GithubURL:   r.GithubURL,
		LinkedinURL: r.LinkedinURL,
		Skills:      r.Skills,
		SortOrder:   r.SortOrder,
		IsActive:    r.IsActive,
	}
}

// CreateTeamMember 创建团队成员
func (h *Handler) CreateTeamMember(c *gin.Context) {
	var req TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	member, err := h.TeamService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to create team member")
		return
	}
	response.Created(c, member)
}

// UpdateTeamMember 更新团队成员
func (h *Handler) UpdateTeamMember(c *gin.Context) {
	var req TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	member, err := h.TeamService.Update(c.Param("id"), req.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to update team member")
		return
	}
	response.Success(c, member)
}

// DeleteTeamMember 删除团队成员
func (h *Handler) DeleteTeamMember(c *gin.Context) {
	if err := h.TeamService.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err, "failed to delete team member")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
