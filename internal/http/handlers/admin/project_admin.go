package admin

import (
	"net/http"

	"github.com/patoekipa/internal/http/response"
	"github.com/patoekipa/internal/service"

	"github.com/gin-gonic/gin"
)

// ProjectRequest 项目创建/更新请求
type ProjectRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Status       string   `json:"status"`
	ProjectSize  string   `json:"projectSize"`
	Technologies []string `json:"technologies"`
	Tags         []string `json:"tags"`
	Featured     *bool    `json:"featured"`
	LiveURL      string   `json:"liveUrl"`
	RepoURL      string   `json:"repoUrl"`
	ImageURL     string   `json:"imageUrl"`
}

func (r ProjectRequest) toInput() service.ProjectInput {
	return service.ProjectInput{
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		Status:       r.Status,
		ProjectSize:  r.ProjectSize,
		Technologies: r.Technologies,
		Tags:         r.Tags,
		Featured:     r.Featured,
		LiveURL:      r.LiveURL,
		RepoURL:      r.RepoURL,
		ImageURL:     r.ImageURL,
	}
}

// CreateProject 创建项目
func (h *Handler) CreateProject(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	project, err := h.ProjectService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to create project")
		return
	}
	response.Created(c, project)
}

// UpdateProject 更新项目
func (h *Handler) UpdateProject(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	project, err := h.ProjectService.Update(c.Param("id"), req.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to update project")
		return
	}
	response.Success(c, project)
}

// DeleteProject 删除项目
func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.ProjectService.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err, "failed to delete project")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
